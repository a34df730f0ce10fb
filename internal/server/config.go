package server

import (
	"fmt"

	"github.com/spf13/viper"
)

// LoadConfig reads the Larder configuration. When path is empty, defaults
// apply and an optional larder.yaml next to the binary is picked up.
// Environment variables prefixed LARDER_ override file values.
func LoadConfig(path string) (*viper.Viper, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("store.path", "larder.db")
	v.SetDefault("dataset.source", "sample")
	v.SetDefault("dataset.timeout", "10s")
	v.SetDefault("modules.recipes.debounce", "60ms")

	v.SetEnvPrefix("LARDER")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %q: %w", path, err)
		}
		return v, nil
	}

	v.SetConfigName("larder")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine; defaults carry the day.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return v, nil
}
