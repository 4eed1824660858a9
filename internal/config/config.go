// Package config loads tool configuration from file and environment and
// initializes the global logger.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
	Names    NamesConfig    `yaml:"names" mapstructure:"names"`
	Discover DiscoverConfig `yaml:"discover" mapstructure:"discover"`
	Analyze  AnalyzeConfig  `yaml:"analyze" mapstructure:"analyze"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// NamesConfig configures the name reconciler.
type NamesConfig struct {
	CSVEncoding string `yaml:"csv_encoding" mapstructure:"csv_encoding"`
}

// DiscoverConfig bounds the path-discovery pass of the extractor.
type DiscoverConfig struct {
	MaxFeatures int `yaml:"max_features" mapstructure:"max_features"`
	MaxDepth    int `yaml:"max_depth" mapstructure:"max_depth"`
	MaxSamples  int `yaml:"max_samples" mapstructure:"max_samples"`
}

// AnalyzeConfig configures the structure analyzer.
type AnalyzeConfig struct {
	SampleCap int `yaml:"sample_cap" mapstructure:"sample_cap"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("GIS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("names.csv_encoding", "")
	v.SetDefault("discover.max_features", 3)
	v.SetDefault("discover.max_depth", 3)
	v.SetDefault("discover.max_samples", 2)
	v.SetDefault("analyze.sample_cap", 5)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
