// Package config loads YAML configuration via viper.
package config

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Load reads a "config.yaml" from path and unmarshals it into out, which
// must be a pointer to a struct with viper-compatible field tags.
func Load(out interface{}, path string) error {
	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(path)

	if err := v.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading config from %s", path)
	}
	if err := v.Unmarshal(out); err != nil {
		return errors.Wrap(err, "unmarshalling config")
	}
	return nil
}
