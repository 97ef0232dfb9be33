package config

import "strings"

// GetDefaultConfig returns a configuration with no stores.
func GetDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults sets default values for any missing configuration fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "INFO"
	}
	cfg.Logging.Level = strings.ToUpper(cfg.Logging.Level)
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	cfg.Logging.Format = strings.ToLower(cfg.Logging.Format)

	if cfg.Stores == nil {
		cfg.Stores = make(map[string]StoreConfig)
	}
	for name, sc := range cfg.Stores {
		sc.Type = StoreType(strings.ToLower(string(sc.Type)))
		cfg.Stores[name] = sc
	}
}
