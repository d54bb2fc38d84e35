package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/agbru/puzzlebook/internal/errors"
)

// configPath returns the config file named by --config or PUZZLEBOOK_CONFIG.
func configPath(config *AppConfig) string {
	if config.ConfigFile != "" {
		return config.ConfigFile
	}
	return os.Getenv(EnvPrefix + "CONFIG")
}

// applyFileConfig loads the config file, if any, and applies its values to
// settings that were not given on the command line. Environment overrides
// are applied afterwards and take precedence.
func applyFileConfig(config *AppConfig, fs *flag.FlagSet) error {
	path := configPath(config)
	if path == "" {
		return nil
	}
	config.ConfigFile = path

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("toml")
	}
	if err := v.ReadInConfig(); err != nil {
		return apperrors.NewConfigError("read config %s: %v", path, err)
	}

	for _, o := range overrides {
		key := o.fileKey()
		if !v.IsSet(key) || isFlagSetAny(fs, o.flags...) {
			continue
		}
		if err := o.apply(config, fileValue(v, key)); err != nil {
			return apperrors.NewConfigError("invalid %q in %s: %v", key, path, err)
		}
	}
	return nil
}

// fileValue renders a config-file value in the same textual form as its
// environment counterpart. Divisors may be a TOML array or a string.
func fileValue(v *viper.Viper, key string) string {
	if key == "divisors" {
		return strings.Join(v.GetStringSlice(key), ",")
	}
	return v.GetString(key)
}
