package configuration

import (
	"os"

	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ec2ctl/errors"
)

const (
	packageName = "configuration"

	defaultSettingsFile = "ec2ctl.hcl"

	// DefaultEnvFile is the optional dotenv file read from the working directory
	DefaultEnvFile = ".env"
)

// Config holds the application configuration
type Config struct {
	AWSRegion    string
	AWSProfile   string
	AccessKeyID  string
	AccessSecret string
	SessionToken string
	EndpointURL  string
	LogLevel     string
	WaitTimeout  int
	SettingsFile string
}

// settingsFile is the optional HCL file layered under the environment.
type settingsFile struct {
	Region             *string `hcl:"region,optional"`
	Profile            *string `hcl:"profile,optional"`
	Endpoint           *string `hcl:"endpoint,optional"`
	LogLevel           *string `hcl:"log_level,optional"`
	WaitTimeoutSeconds *int    `hcl:"wait_timeout_seconds,optional"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Initialize sets up the configuration system. envFile is an optional dotenv
// file; a missing file falls back to the environment and defaults.
func Initialize(envFile string) (*Config, error) {
	logger := zap.L().With(
		zap.String("package", packageName),
		zap.String("function", "Initialize"),
	)

	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("LOG_LEVEL", "warn")
	viper.SetDefault("WAIT_TIMEOUT_SECONDS", 600)
	viper.SetDefault("EC2CTL_CONFIG", defaultSettingsFile)

	viper.AutomaticEnv()

	viper.SetConfigFile(envFile)
	viper.SetConfigType("env")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, errors.New(errors.ErrConfigParse, "error reading config file",
				map[string]interface{}{
					"config_file": envFile,
				}, err)
		}
		logger.Debug("No .env file found, using environment variables and defaults",
			zap.String("operation", "config_loading"),
		)
	}

	settingsPath := viper.GetString("EC2CTL_CONFIG")
	if err := applySettingsFile(settingsPath); err != nil {
		return nil, err
	}

	logLevel := viper.GetString("LOG_LEVEL")
	if !validLogLevels[logLevel] {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid LOG_LEVEL",
			map[string]interface{}{
				"config_key": "LOG_LEVEL",
				"value":      logLevel,
			}, nil)
	}

	region := viper.GetString("AWS_REGION")
	if region == "" {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid AWS_REGION",
			map[string]interface{}{
				"config_key": "AWS_REGION",
			}, nil)
	}

	waitTimeout := viper.GetInt("WAIT_TIMEOUT_SECONDS")
	if waitTimeout <= 0 {
		return nil, errors.New(errors.ErrConfigInvalid, "invalid WAIT_TIMEOUT_SECONDS",
			map[string]interface{}{
				"config_key": "WAIT_TIMEOUT_SECONDS",
				"value":      waitTimeout,
			}, nil)
	}

	accessKey := viper.GetString("AWS_ACCESS_KEY_ID")
	secret := viper.GetString("AWS_SECRET_ACCESS_KEY")
	if (accessKey == "") != (secret == "") {
		return nil, errors.New(errors.ErrConfigInvalid, "AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY must be set together",
			map[string]interface{}{
				"config_key": "AWS_ACCESS_KEY_ID",
			}, nil)
	}

	config := &Config{
		AWSRegion:    region,
		AWSProfile:   viper.GetString("AWS_PROFILE"),
		AccessKeyID:  accessKey,
		AccessSecret: secret,
		SessionToken: viper.GetString("AWS_SESSION_TOKEN"),
		EndpointURL:  viper.GetString("AWS_ENDPOINT_URL"),
		LogLevel:     logLevel,
		WaitTimeout:  waitTimeout,
		SettingsFile: settingsPath,
	}

	logger.Debug("Configuration loaded successfully",
		zap.String("operation", "config_complete"),
		zap.String("region", config.AWSRegion),
		zap.String("profile", config.AWSProfile),
		zap.Bool("custom_endpoint", config.EndpointURL != ""),
		zap.Int("wait_timeout_seconds", config.WaitTimeout),
	)
	return config, nil
}

// applySettingsFile decodes the HCL settings file at path and installs its
// values as viper defaults, so environment variables and .env still win.
// A missing file is not an error.
func applySettingsFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.New(errors.ErrConfigParse, "error reading settings file",
			map[string]interface{}{
				"settings_file": path,
			}, err)
	}

	var settings settingsFile
	if err := hclsimple.DecodeFile(path, nil, &settings); err != nil {
		return errors.New(errors.ErrConfigParse, "error parsing settings file",
			map[string]interface{}{
				"settings_file": path,
			}, err)
	}

	if settings.Region != nil {
		viper.SetDefault("AWS_REGION", *settings.Region)
	}
	if settings.Profile != nil {
		viper.SetDefault("AWS_PROFILE", *settings.Profile)
	}
	if settings.Endpoint != nil {
		viper.SetDefault("AWS_ENDPOINT_URL", *settings.Endpoint)
	}
	if settings.LogLevel != nil {
		viper.SetDefault("LOG_LEVEL", *settings.LogLevel)
	}
	if settings.WaitTimeoutSeconds != nil {
		viper.SetDefault("WAIT_TIMEOUT_SECONDS", *settings.WaitTimeoutSeconds)
	}

	zap.L().Debug("Settings file applied",
		zap.String("package", packageName),
		zap.String("operation", "settings_file"),
		zap.String("path", path),
	)
	return nil
}
