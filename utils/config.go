package utils

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// This Config struct will hold all configuration variables of the address-space
// explorer that we read from file or environment variables.
type Config struct {
	//Viper uses the mapstructure package under the hood for unmarshaling values.
	StartNode          string `mapstructure:"START_NODE"`
	BrowseDirection    string `mapstructure:"BROWSE_DIRECTION"`
	ReferenceType      string `mapstructure:"REFERENCE_TYPE"`
	IncludeSubtypes    bool   `mapstructure:"INCLUDE_SUBTYPES"`
	NodeClassMask      uint32 `mapstructure:"NODE_CLASS_MASK"`
	MaxDepth           int    `mapstructure:"MAX_DEPTH"`
	SeedRootAttributes bool   `mapstructure:"SEED_ROOT_ATTRIBUTES"`
}

func NewConfig(logger *zap.SugaredLogger) *Config {
	cfg := &Config{}
	cfg.LoadConfig(logger)
	return cfg
}

// LoadConfig reads configuration from file or environment variables.
func (config *Config) LoadConfig(logger *zap.SugaredLogger) {
	viper.AddConfigPath("./configs/")
	viper.SetConfigName("config")
	viper.SetConfigType("json")

	// AutomaticEnv() automatically override values that it has read from config file with the values of
	// the corresponding environment variables if they exist.
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		// Environment variables have the highest priority!
		logger.Warn(Colorize("Config not found ❌ Using default values 🔧\n", Magenta),
			Colorize(err.Error(), Magenta))
		config.setDefaults(logger)
		return
	} else {
		logger.Info(Colorize("Config Found : Loading Config ⌛", Cyan))
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		config.setDefaults(logger)
	}
}

// Set default values : setDefaults only used when no value is provided by the user via config or ENV.
func (config *Config) setDefaults(logger *zap.SugaredLogger) {

	viper.SetDefault("START_NODE", "i=84") // Root folder
	viper.SetDefault("BROWSE_DIRECTION", "forward")
	viper.SetDefault("REFERENCE_TYPE", "")
	viper.SetDefault("INCLUDE_SUBTYPES", true)
	viper.SetDefault("NODE_CLASS_MASK", 0)
	viper.SetDefault("MAX_DEPTH", 4)
	viper.SetDefault("SEED_ROOT_ATTRIBUTES", false)

	err := viper.Unmarshal(&config)
	if err != nil {
		// Panics if the tags on the fields of the structure are not properly set
		logger.Panic(errors.Wrap(err, Colorize("Failed to unmarshal Configs ❌", Magenta)))
	}
}
