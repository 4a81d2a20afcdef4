package cli

import (
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "PAGEPROBE"

// Config is assembled from defaults, an optional config file, PAGEPROBE_*
// environment variables and command line flags, in increasing priority.
type Config struct {
	LogLevel   string        `mapstructure:"log-level"`
	HTML       string        `mapstructure:"html"`
	URL        string        `mapstructure:"url"`
	Map        string        `mapstructure:"map"`
	Selectors  []string      `mapstructure:"selector"`
	Headless   bool          `mapstructure:"headless"`
	ChromePath string        `mapstructure:"chrome-path"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Workers    int           `mapstructure:"workers"`
}

func loadConfig(cmd *cobra.Command) (Config, error) {
	v := viper.New()

	v.SetDefault("log-level", "info")
	v.SetDefault("headless", true)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("workers", 4)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
	}
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return Config{}, errors.Wrap(err, "bind flags")
	}

	var c Config
	hooks := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		selectorHook,
	))
	if err := v.Unmarshal(&c, hooks); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	return c, nil
}

// selectorHook turns a lone string into a one-element slice. Selector groups
// contain commas, so strings are never split.
func selectorHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf([]string(nil)) {
		return data, nil
	}
	if s := reflect.ValueOf(data).String(); s != "" {
		return []string{s}, nil
	}
	return []string{}, nil
}

func setupLogging(cmd *cobra.Command, level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return errors.Wrap(err, "log level")
	}
	logrus.SetLevel(lvl)
	logrus.SetOutput(cmd.ErrOrStderr())
	logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return nil
}
