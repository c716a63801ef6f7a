/**
 * @description
 * This file handles the configuration management for the payout backend.
 * It uses the Viper library to read settings from environment variables or a .env file.
 *
 * @dependencies
 * - github.com/spf13/viper: For configuration management.
 */
package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config stores all configuration for the application.
type Config struct {
	ServerPort            string `mapstructure:"SERVER_PORT"`
	RazorpayKeyID         string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret     string `mapstructure:"RAZORPAY_KEY_SECRET"`
	RazorpayAPIBaseURL    string `mapstructure:"RAZORPAY_API_BASE_URL"`
	RazorpayAccountNumber string `mapstructure:"RAZORPAY_ACCOUNT_NUMBER"`
	UsersFile             string `mapstructure:"USERS_FILE"`
	DefaultUserID         string `mapstructure:"DEFAULT_USER_ID"`
	DefaultPayoutAmount   int64  `mapstructure:"DEFAULT_PAYOUT_AMOUNT"`
	DefaultPayoutCurrency string `mapstructure:"DEFAULT_PAYOUT_CURRENCY"`
	PayoutMode            string `mapstructure:"PAYOUT_MODE"`
	ContactEmail          string `mapstructure:"CONTACT_EMAIL"`
	ContactPhone          string `mapstructure:"CONTACT_PHONE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Set default values
	viper.SetDefault("SERVER_PORT", "3000")
	viper.SetDefault("RAZORPAY_API_BASE_URL", "https://api.razorpay.com/v1")
	viper.SetDefault("USERS_FILE", "users.json")
	viper.SetDefault("DEFAULT_USER_ID", "user1")
	viper.SetDefault("DEFAULT_PAYOUT_AMOUNT", 1000) // Rs 10 in paise
	viper.SetDefault("DEFAULT_PAYOUT_CURRENCY", "INR")
	viper.SetDefault("PAYOUT_MODE", "IMPS")
	viper.SetDefault("CONTACT_EMAIL", "user@example.com")
	viper.SetDefault("CONTACT_PHONE", "9876543210")

	// Bind envs explicitly so containers pick them up reliably
	_ = viper.BindEnv("SERVER_PORT")
	_ = viper.BindEnv("RAZORPAY_KEY_ID")
	_ = viper.BindEnv("RAZORPAY_KEY_SECRET")
	_ = viper.BindEnv("RAZORPAY_API_BASE_URL")
	_ = viper.BindEnv("RAZORPAY_ACCOUNT_NUMBER")
	_ = viper.BindEnv("USERS_FILE")
	_ = viper.BindEnv("DEFAULT_USER_ID")
	_ = viper.BindEnv("DEFAULT_PAYOUT_AMOUNT")
	_ = viper.BindEnv("DEFAULT_PAYOUT_CURRENCY")
	_ = viper.BindEnv("PAYOUT_MODE")
	_ = viper.BindEnv("CONTACT_EMAIL")
	_ = viper.BindEnv("CONTACT_PHONE")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Error reading config file: %s", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.RazorpayKeyID == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_ID is required")
	}
	if config.RazorpayKeySecret == "" {
		return nil, fmt.Errorf("RAZORPAY_KEY_SECRET is required")
	}
	if config.RazorpayAccountNumber == "" {
		return nil, fmt.Errorf("RAZORPAY_ACCOUNT_NUMBER is required")
	}
	if config.DefaultPayoutAmount <= 0 {
		return nil, fmt.Errorf("DEFAULT_PAYOUT_AMOUNT must be positive")
	}

	return &config, nil
}
