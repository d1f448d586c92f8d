// Package config resolves binary configuration from flags, SBD_* environment
// variables and an optional config file, in that order of precedence.
package config

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jamesainslie/go-sbd/classifier"
)

type Config struct {
	Classifier ClassifierConfig `mapstructure:"classifier"`
	Segment    SegmentConfig    `mapstructure:"segment"`
	Log        LogConfig        `mapstructure:"log"`
	Trace      TraceConfig      `mapstructure:"trace"`
}

type ClassifierConfig struct {
	Path                  string  `mapstructure:"path"`
	AbbreviationThreshold float64 `mapstructure:"abbreviation_threshold"`
	ProperNounThreshold   float64 `mapstructure:"proper_noun_threshold"`
}

// Thresholds returns the configured decision thresholds.
func (c ClassifierConfig) Thresholds() classifier.Thresholds {
	return classifier.Thresholds{
		Abbreviation: c.AbbreviationThreshold,
		ProperNoun:   c.ProperNounThreshold,
	}
}

type SegmentConfig struct {
	Concurrency int  `mapstructure:"concurrency"`
	SelfTrain   bool `mapstructure:"self_train"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type TraceConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Classifier: ClassifierConfig{
			Path:                  "",
			AbbreviationThreshold: classifier.DefaultAbbreviationThreshold,
			ProperNounThreshold:   classifier.DefaultProperNounThreshold,
		},
		Segment: SegmentConfig{
			Concurrency: runtime.NumCPU(),
			SelfTrain:   true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Trace: TraceConfig{
			Enabled: false,
		},
	}
}

// flagKeys maps every flag registered by RegisterFlags to its config key.
var flagKeys = map[string]string{
	"classifier":             "classifier.path",
	"abbreviation-threshold": "classifier.abbreviation_threshold",
	"proper-noun-threshold":  "classifier.proper_noun_threshold",
	"concurrency":            "segment.concurrency",
	"self-train":             "segment.self_train",
	"log-level":              "log.level",
	"log-format":             "log.format",
	"trace":                  "trace.enabled",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.String("classifier", defaults.Classifier.Path, "Path to a trained classifier state file")
	fs.Float64("abbreviation-threshold", defaults.Classifier.AbbreviationThreshold, "Abbreviation probability threshold")
	fs.Float64("proper-noun-threshold", defaults.Classifier.ProperNounThreshold, "Proper noun probability threshold")
	fs.Int("concurrency", defaults.Segment.Concurrency, "Documents segmented in parallel")
	fs.Bool("self-train", defaults.Segment.SelfTrain, "Train on the input itself when no classifier is available")
	fs.String("log-level", defaults.Log.Level, "Log level (debug|info|warn|error)")
	fs.String("log-format", defaults.Log.Format, "Log format (text|json)")
	fs.Bool("trace", defaults.Trace.Enabled, "Print OpenTelemetry spans to stderr")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		fs := opts.Cmd.Flags()
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	v.SetEnvPrefix("SBD")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("sbd")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("classifier.path", c.Classifier.Path)
	v.SetDefault("classifier.abbreviation_threshold", c.Classifier.AbbreviationThreshold)
	v.SetDefault("classifier.proper_noun_threshold", c.Classifier.ProperNounThreshold)
	v.SetDefault("segment.concurrency", c.Segment.Concurrency)
	v.SetDefault("segment.self_train", c.Segment.SelfTrain)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
	v.SetDefault("trace.enabled", c.Trace.Enabled)
}
