package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds the CLI configuration
type Config struct {
	BaseURL  string
	Username string
	Password string

	DefaultModel string
	DefaultAgent string

	SkillDirectories []string
}

// LoadConfig loads configuration from config files and environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("BaseURL", "http://localhost:4096")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"BaseURL":          "OPENCODE_BASE_URL",
		"Username":         "OPENCODE_SERVER_USERNAME",
		"Password":         "OPENCODE_SERVER_PASSWORD",
		"DefaultModel":     "OPENCODE_DEFAULT_MODEL",
		"DefaultAgent":     "OPENCODE_DEFAULT_AGENT",
		"SkillDirectories": "OPENCODE_SKILL_DIRECTORIES",
	}

	for configKey, envVar := range envMappings {
		if err := v.BindEnv(configKey, envVar); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", envVar, configKey)
		}
	}

	v.SetConfigName("opencode")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/flowbaker-opencode")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		log.Debug().Msg("Config file not found, using environment variables and defaults")
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	// SkillDirectories may arrive as a single comma-separated env value.
	if len(config.SkillDirectories) == 1 && strings.Contains(config.SkillDirectories[0], ",") {
		config.SkillDirectories = strings.Split(config.SkillDirectories[0], ",")

		for i := range config.SkillDirectories {
			config.SkillDirectories[i] = strings.TrimSpace(config.SkillDirectories[i])
		}
	}

	if config.BaseURL == "" {
		return nil, fmt.Errorf("OPENCODE_BASE_URL is required")
	}

	return &config, nil
}
