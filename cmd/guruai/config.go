package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/guruai/guruai/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Manage configuration",
	Long: `View or modify GuruAI configuration.

Without arguments, displays current configuration.
With one argument (key), displays the value for that key.
With two arguments (key value), sets the configuration value.

Configuration is stored at ~/.config/guruai/config.yaml
Project-specific overrides can be placed in .guruai.yaml`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		switch len(args) {
		case 0:
			displayAllConfig(cfg)
		case 1:
			displayConfigKey(cfg, args[0])
		default:
			setConfigKey(cfg, args[0], args[1])
		}
	},
}

// displayAllConfig prints all configuration values.
func displayAllConfig(cfg *config.Config) {
	fmt.Printf("anthropic.api_key: %s\n", config.MaskAPIKey(cfg.Anthropic.APIKey))
	fmt.Printf("anthropic.model: %s\n", cfg.Anthropic.Model)
	fmt.Printf("anthropic.use_aws_bedrock: %t\n", cfg.Anthropic.UseAWSBedrock)
	fmt.Printf("anthropic.aws_region: %s\n", cfg.Anthropic.AWSRegion)
	fmt.Printf("pipeline.max_concurrent: %d\n", cfg.Pipeline.MaxConcurrent)
	fmt.Printf("pipeline.retry_attempts: %d\n", cfg.Pipeline.RetryAttempts)
	fmt.Printf("timeouts.capability: %s\n", cfg.Timeouts.Capability)
	fmt.Printf("session.db_path: %s\n", cfg.Session.DBPath)
	fmt.Printf("culture.data_path: %s\n", cfg.Culture.DataPath)
	fmt.Printf("culture.default_region: %s\n", cfg.Culture.DefaultRegion)
}

// displayConfigKey prints a single configuration value.
func displayConfigKey(cfg *config.Config, key string) {
	value, err := getConfigValue(cfg, key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(value)
}

// setConfigKey sets a configuration value and saves the config.
func setConfigKey(cfg *config.Config, key, value string) {
	if err := setConfigValue(cfg, key, value); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.Save(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Set %s = %s\n", key, value)
}

// getConfigValue returns the string form of a configuration key.
func getConfigValue(cfg *config.Config, key string) (string, error) {
	switch key {
	case "anthropic.api_key":
		return config.MaskAPIKey(cfg.Anthropic.APIKey), nil
	case "anthropic.model":
		return cfg.Anthropic.Model, nil
	case "anthropic.use_aws_bedrock":
		return strconv.FormatBool(cfg.Anthropic.UseAWSBedrock), nil
	case "anthropic.aws_region":
		return cfg.Anthropic.AWSRegion, nil
	case "anthropic.aws_profile":
		return cfg.Anthropic.AWSProfile, nil
	case "pipeline.max_concurrent":
		return strconv.Itoa(cfg.Pipeline.MaxConcurrent), nil
	case "pipeline.retry_attempts":
		return strconv.Itoa(cfg.Pipeline.RetryAttempts), nil
	case "timeouts.capability":
		return cfg.Timeouts.Capability.String(), nil
	case "session.db_path":
		return cfg.Session.DBPath, nil
	case "culture.data_path":
		return cfg.Culture.DataPath, nil
	case "culture.default_region":
		return cfg.Culture.DefaultRegion, nil
	default:
		return "", fmt.Errorf("unknown configuration key: %s", key)
	}
}

// setConfigValue parses and assigns a configuration value by key.
func setConfigValue(cfg *config.Config, key, value string) error {
	switch key {
	case "anthropic.api_key":
		cfg.Anthropic.APIKey = value
	case "anthropic.model":
		cfg.Anthropic.Model = value
	case "anthropic.use_aws_bedrock":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %s", key, value)
		}
		cfg.Anthropic.UseAWSBedrock = b
	case "anthropic.aws_region":
		cfg.Anthropic.AWSRegion = value
	case "anthropic.aws_profile":
		cfg.Anthropic.AWSProfile = value
	case "pipeline.max_concurrent":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for %s: %s", key, value)
		}
		cfg.Pipeline.MaxConcurrent = n
	case "pipeline.retry_attempts":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("invalid value for %s: %s", key, value)
		}
		cfg.Pipeline.RetryAttempts = n
	case "timeouts.capability":
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration for %s: %s", key, value)
		}
		cfg.Timeouts.Capability = d
	case "session.db_path":
		cfg.Session.DBPath = value
	case "culture.data_path":
		cfg.Culture.DataPath = value
	case "culture.default_region":
		cfg.Culture.DefaultRegion = value
	default:
		return fmt.Errorf("unknown configuration key: %s", key)
	}
	return nil
}
