package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"ec2ctl/awsd"
	"ec2ctl/configuration"
	"ec2ctl/errors"
	"ec2ctl/lifecycle"
	"ec2ctl/logger"
)

const (
	packageName = "main"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr, newService))
}

func run(args []string, stdout, stderr io.Writer, factory serviceFactory) int {
	defer logger.Sync()

	// Cancelled on SIGINT/SIGTERM; the SDK aborts in-flight calls and waits
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, args, stdout, stderr, factory); err != nil {
		return 1
	}
	return 0
}

// execute runs the command tree. Errors cobra raises itself while parsing
// arguments and flags come back as ErrUsage; setup errors keep their type.
func execute(ctx context.Context, args []string, stdout, stderr io.Writer, factory serviceFactory) error {
	rootCmd := newRootCmd(factory)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if errors.TypeOf(err) == "" {
		err = errors.New(errors.ErrUsage, err.Error(),
			map[string]interface{}{
				"args": args,
			}, err)
	}

	logger.Debug("Command failed",
		zap.String("package", packageName),
		zap.String("operation", "command_execute"),
		zap.String("error_type", string(errors.TypeOf(err))),
		zap.Error(err),
	)
	return err
}

// newService loads configuration, installs the logger and builds the AWS client
func newService(ctx context.Context, out io.Writer) (*lifecycle.Service, error) {
	config, err := configuration.Initialize(configuration.DefaultEnvFile)
	if err != nil {
		return nil, err
	}

	if err := logger.Initialize(config.LogLevel); err != nil {
		return nil, errors.New(errors.ErrConfigInvalid, "Failed to initialize logger",
			map[string]interface{}{
				"operation": "logger_init",
			}, err)
	}

	awsClient, err := awsd.NewAWSClient(ctx, config)
	if err != nil {
		logger.Error("Failed to create AWS client",
			zap.String("package", packageName),
			zap.String("operation", "aws_client_creation"),
			zap.Error(err),
		)
		return nil, err
	}
	logger.Debug("AWS client created successfully",
		zap.String("package", packageName),
		zap.String("operation", "aws_client_creation"),
		zap.String("region", config.AWSRegion),
	)

	return lifecycle.NewService(awsClient, out, zap.L()), nil
}
