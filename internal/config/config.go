package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"ENVIRONMENT"`
	Port        string `mapstructure:"PORT"`
	LogLevel    string `mapstructure:"LOG_LEVEL"`

	// Document store configuration
	TableName      string `mapstructure:"TABLE_NAME"`
	AWSRegion      string `mapstructure:"AWS_REGION"`
	DynamoEndpoint string `mapstructure:"DYNAMO_ENDPOINT"`

	// JWT configuration
	JWTSecret string `mapstructure:"JWT_SECRET"`

	// Notification configuration
	SenderEmail string `mapstructure:"SENDER_EMAIL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Deleting a user keeps its global email lock by default, which blocks
	// re-signup with that address forever. Set this to release the lock
	// together with the user record.
	ReleaseEmailLockOnDelete bool `mapstructure:"RELEASE_EMAIL_LOCK_ON_DELETE"`
}

// Load reads configuration from environment variables and config files
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate required fields
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("PORT", "7010")
	viper.SetDefault("LOG_LEVEL", "info")

	// Document store defaults
	viper.SetDefault("TABLE_NAME", "pulse-crm")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("DYNAMO_ENDPOINT", "")

	// JWT defaults
	viper.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")

	// Notification defaults; empty sender disables outbound email
	viper.SetDefault("SENDER_EMAIL", "")

	// CORS defaults
	viper.SetDefault("ALLOWED_ORIGINS", []string{"*"})

	viper.SetDefault("RELEASE_EMAIL_LOCK_ON_DELETE", false)
}

func validate(config *Config) error {
	if config.Environment == "production" {
		if config.JWTSecret == "your-secret-key-change-in-production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	if config.TableName == "" {
		return fmt.Errorf("table name is required")
	}

	return nil
}

// IsDevelopment returns true if the environment is development
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if the environment is production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
