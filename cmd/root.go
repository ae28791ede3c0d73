package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ec2ctl/lifecycle"
	"ec2ctl/presenter"
)

const version = "1.1.4"

// serviceFactory builds the lifecycle service once a command actually needs AWS
type serviceFactory func(ctx context.Context, out io.Writer) (*lifecycle.Service, error)

func newRootCmd(newService serviceFactory) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ec2ctl",
		Short: "Simple EC2 Management.",
		Long: `Simple EC2 Management.

List and describe EC2 instances, and start, stop, reboot or terminate a single
instance by id. Credentials and region come from the environment, an optional
.env file or the ec2ctl.hcl settings file.`,
		Version: version,
	}
	rootCmd.SetVersionTemplate("ec2ctl {{.Version}}\n")
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(newListCmd(newService))
	rootCmd.AddCommand(newDescribeCmd(newService))
	for _, action := range lifecycle.Actions {
		rootCmd.AddCommand(newActionCmd(action, newService))
	}

	return rootCmd
}

func newListCmd(newService serviceFactory) *cobra.Command {
	var verbose, running, stopped bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List instances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			service, err := newService(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			filter := lifecycle.FilterAll
			switch {
			case running:
				filter = lifecycle.FilterRunning
			case stopped:
				filter = lifecycle.FilterStopped
			}

			printer := presenter.NewPrinter(cmd.OutOrStdout(), verbose)
			instances, err := service.List(cmd.Context(), filter)
			if err != nil {
				_, message := lifecycle.Explain(err)
				printer.Line(message)
				return nil
			}
			printer.PrintList(instances)
			return nil
		},
	}

	cmd.Flags().BoolVar(&verbose, "verbose", false, "Verbose output")
	cmd.Flags().BoolVarP(&running, "running", "r", false, "Show only running instances.")
	cmd.Flags().BoolVarP(&stopped, "stopped", "s", false, "Show only stopped instances.")
	cmd.MarkFlagsMutuallyExclusive("running", "stopped")

	return cmd
}

func newDescribeCmd(newService serviceFactory) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <instance_id>",
		Short: "Describe a single instance with every field",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			service, err := newService(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			printer := presenter.NewPrinter(cmd.OutOrStdout(), true)
			instance, err := service.Describe(cmd.Context(), args[0])
			if err != nil {
				_, message := lifecycle.Explain(err)
				printer.Line(message)
				return nil
			}
			printer.PrintDetail(*instance)
			return nil
		},
	}
}

func newActionCmd(action lifecycle.Action, newService serviceFactory) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   action.String() + " <instance_id>",
		Short: actionSummaries[action],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			service, err := newService(cmd.Context(), cmd.OutOrStdout())
			if err != nil {
				return err
			}

			result := service.Execute(cmd.Context(), action, args[0], dryRun)
			presenter.NewPrinter(cmd.OutOrStdout(), false).Line(result.Message)

			zap.L().Debug("Command finished",
				zap.String("package", packageName),
				zap.String("operation", "execute"),
				zap.Stringer("action", action),
				zap.String("outcome", string(result.Outcome)),
				zap.Bool("ok", result.OK()),
			)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false,
		"Runs the program in test mode to check permissions without actually making the request.")

	return cmd
}

var actionSummaries = map[lifecycle.Action]string{
	lifecycle.ActionStart:     "Start a stopped instance and wait until it is running",
	lifecycle.ActionStop:      "Stop a running instance and wait until it is stopped",
	lifecycle.ActionReboot:    "Request a reboot of an instance",
	lifecycle.ActionTerminate: "Terminate an instance and wait until it is terminated",
}
