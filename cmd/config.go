/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/goalmate/llm"
	"github.com/josephgoksu/goalmate/types"
	"github.com/spf13/viper"
)

const (
	configName = ".goalmate"
	envPrefix  = "GOALMATE"

	defaultModelName          = "mixtral-8x7b-32768"
	defaultCommandTemperature = 0.2
	defaultCoachTemperature   = 0.7
	defaultCoachMaxTokens     = 1024
	defaultRequestTimeoutSecs = 60
)

// GlobalAppConfig holds the global application configuration instance.
var GlobalAppConfig types.AppConfig

// validate is a single validator instance; it caches struct info.
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// validateAppConfig performs validation on the AppConfig struct.
func validateAppConfig(config *types.AppConfig) error {
	errs := validate.Struct(config)
	if errs != nil {
		return errs
	}
	return nil
}

// setConfigDefaults registers every configurable value with its default so a
// bare install works without a config file.
func setConfigDefaults() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	viper.SetDefault("project.rootDir", filepath.Join(home, ".goalmate"))
	viper.SetDefault("project.templatesDir", "")
	viper.SetDefault("data.smartFile", "tasks.json")
	viper.SetDefault("data.todoFile", "todo.json")
	viper.SetDefault("data.plannerFile", "planner_messages.json")
	viper.SetDefault("data.format", "json")
	viper.SetDefault("llm.baseUrl", llm.DefaultBaseURL)
	viper.SetDefault("llm.modelName", defaultModelName)
	viper.SetDefault("llm.commandTemperature", defaultCommandTemperature)
	viper.SetDefault("llm.coachTemperature", defaultCoachTemperature)
	viper.SetDefault("llm.coachMaxTokens", defaultCoachMaxTokens)
	viper.SetDefault("llm.requestTimeoutSeconds", defaultRequestTimeoutSecs)
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig() {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix) // e.g., GOALMATE_VERBOSE
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setConfigDefaults()

	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// A present-but-broken config file should be loud, unlike a
			// missing one.
			fmt.Fprintf(os.Stderr, "Error reading config file %s: %v\n", viper.ConfigFileUsed(), err)
		}
	}

	// The original app read its key from the environment; accept the plain
	// GROQ_API_KEY as a fallback for the viper-managed llm.apiKey.
	if viper.GetString("llm.apiKey") == "" {
		if key := os.Getenv("GROQ_API_KEY"); key != "" {
			viper.Set("llm.apiKey", key)
		}
	}

	if err := viper.Unmarshal(&GlobalAppConfig); err != nil {
		HandleFatalError("Failed to load configuration", err)
	}
	if err := validateAppConfig(&GlobalAppConfig); err != nil {
		HandleFatalError("Invalid configuration", err)
	}
}

// GetConfig returns the loaded application configuration.
func GetConfig() types.AppConfig {
	return GlobalAppConfig
}

// requestTimeout returns the configured LLM request timeout.
func requestTimeout() time.Duration {
	secs := GetConfig().LLM.RequestTimeoutSeconds
	if secs <= 0 {
		secs = defaultRequestTimeoutSecs
	}
	return time.Duration(secs) * time.Second
}

// NewProvider builds the chat-completion client from configuration.
func NewProvider() (*llm.ChatProvider, error) {
	cfg := GetConfig().LLM
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("no API key configured: set llm.apiKey in %s.yaml or the GOALMATE_LLM_APIKEY / GROQ_API_KEY environment variable", configName)
	}
	debug := cfg.Debug || viper.GetBool("verbose")
	return llm.NewChatProvider(cfg.APIKey, cfg.BaseURL, requestTimeout(), debug), nil
}
