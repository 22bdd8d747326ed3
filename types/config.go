/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package types

// AppConfig represents the complete application configuration
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	Config  string        `mapstructure:"config"`
	Project ProjectConfig `mapstructure:"project" validate:"required"`
	Data    DataConfig    `mapstructure:"data" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm" validate:"omitempty"`
}

// ProjectConfig holds profile-level settings. RootDir is where every data
// file lives; TemplatesDir optionally overrides the built-in prompts.
type ProjectConfig struct {
	RootDir      string `mapstructure:"rootDir" validate:"required"`
	TemplatesDir string `mapstructure:"templatesDir"`
}

// DataConfig holds data storage configuration. The smart list and the plain
// todo list are separate files with the same record layout; the planner
// transcript is a third.
type DataConfig struct {
	SmartFile   string `mapstructure:"smartFile" validate:"required"`
	TodoFile    string `mapstructure:"todoFile" validate:"required"`
	PlannerFile string `mapstructure:"plannerFile" validate:"required"`
	Format      string `mapstructure:"format" validate:"required,oneof=json yaml toml"`
}

// LLMConfig holds configuration for the hosted chat-completion endpoint used
// by both the command interpreter and the advice chat.
type LLMConfig struct {
	BaseURL   string `mapstructure:"baseUrl" validate:"omitempty,url"`
	ModelName string `mapstructure:"modelName" validate:"omitempty,min=1"`
	APIKey    string `mapstructure:"apiKey" validate:"omitempty,min=1"`
	// Command interpretation wants near-deterministic output; coaching wants
	// a looser, more conversational one. Separate knobs for each.
	CommandTemperature float64 `mapstructure:"commandTemperature" validate:"omitempty,min=0,max=2"`
	CoachTemperature   float64 `mapstructure:"coachTemperature" validate:"omitempty,min=0,max=2"`
	CoachMaxTokens     int     `mapstructure:"coachMaxTokens" validate:"omitempty,min=1"`
	// RequestTimeoutSeconds controls the HTTP client timeout for LLM calls
	RequestTimeoutSeconds int `mapstructure:"requestTimeoutSeconds" validate:"omitempty,min=5,max=600"`
	// Debug enables extra request/response logging within the LLM provider (generally tied to --verbose)
	Debug bool `mapstructure:"debug"`
}
