package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type config struct {
	ChunkSize int    `mapstructure:"chunk_size"`
	Encoding  string `mapstructure:"encoding"`
	TabWidth  int    `mapstructure:"tab_width"`
	Workers   int    `mapstructure:"workers"`
	LogLevel  string `mapstructure:"log_level"`
}

// loadConfig reads the configuration file, if any, and returns the merged
// configuration.
func loadConfig(v *viper.Viper) (*config, error) {
	if f := v.GetString("config"); f != "" {
		v.SetConfigFile(f)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrap(err, "reading config")
		}
	} else {
		v.SetConfigName("parsekit")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var nf viper.ConfigFileNotFoundError
			if !errors.As(err, &nf) {
				return nil, errors.Wrap(err, "reading config")
			}
		}
	}

	var c config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.TabWidth < 1 {
		return nil, errors.Errorf("invalid tab width %d", c.TabWidth)
	}
	if c.ChunkSize < 0 {
		return nil, errors.Errorf("invalid chunk size %d", c.ChunkSize)
	}
	return &c, nil
}
