package config

// DefaultConfig returns configuration with sensible defaults.
// These defaults are used when no config file exists or when
// config file is missing specific fields.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			Exclude: []string{
				"vendor/**",
				"node_modules/**",
				"dist/**",
				"build/**",
				"**/testdata/**",
			},
			MaxFileSize: 1 << 20,
		},
		Context: ContextConfig{
			MaxNodes:      50,
			MaxFiles:      5,
			MaxCodeLength: 8000,
		},
		Output: OutputConfig{
			Format: "markdown",
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     "24h",
		},
	}
}

// Merge merges loaded config with defaults.
// Values from loaded config take precedence over defaults.
// Returns a new Config with merged values.
func Merge(loaded, defaults *Config) *Config {
	result := &Config{}

	result.Scan = mergeScanConfig(loaded.Scan, defaults.Scan)
	result.Context = mergeContextConfig(loaded.Context, defaults.Context)
	result.Output = mergeOutputConfig(loaded.Output, defaults.Output)
	result.Cache = mergeCacheConfig(loaded.Cache, defaults.Cache)

	return result
}

func mergeScanConfig(loaded, defaults ScanConfig) ScanConfig {
	result := ScanConfig{}

	if len(loaded.Include) > 0 {
		result.Include = loaded.Include
	} else {
		result.Include = defaults.Include
	}

	if len(loaded.Exclude) > 0 {
		result.Exclude = loaded.Exclude
	} else {
		result.Exclude = defaults.Exclude
	}

	if loaded.MaxFileSize != 0 {
		result.MaxFileSize = loaded.MaxFileSize
	} else {
		result.MaxFileSize = defaults.MaxFileSize
	}

	return result
}

func mergeContextConfig(loaded, defaults ContextConfig) ContextConfig {
	result := ContextConfig{}

	if loaded.MaxNodes != 0 {
		result.MaxNodes = loaded.MaxNodes
	} else {
		result.MaxNodes = defaults.MaxNodes
	}

	if loaded.MaxFiles != 0 {
		result.MaxFiles = loaded.MaxFiles
	} else {
		result.MaxFiles = defaults.MaxFiles
	}

	if loaded.MaxCodeLength != 0 {
		result.MaxCodeLength = loaded.MaxCodeLength
	} else {
		result.MaxCodeLength = defaults.MaxCodeLength
	}

	return result
}

func mergeOutputConfig(loaded, defaults OutputConfig) OutputConfig {
	result := OutputConfig{}

	if loaded.Format != "" {
		result.Format = loaded.Format
	} else {
		result.Format = defaults.Format
	}

	return result
}

func mergeCacheConfig(loaded, defaults CacheConfig) CacheConfig {
	result := CacheConfig{}

	// Booleans can't distinguish unset from false; users who want the
	// cache off set enabled: false together with a ttl, so an all-zero
	// section takes the defaults.
	if loaded.Enabled || loaded.TTL != "" {
		result.Enabled = loaded.Enabled
	} else {
		result.Enabled = defaults.Enabled
	}

	if loaded.TTL != "" {
		result.TTL = loaded.TTL
	} else {
		result.TTL = defaults.TTL
	}

	return result
}

// ValidFormats lists the valid values for output format
var ValidFormats = []string{"markdown", "text", "json", "yaml"}

// IsValidFormat checks if the given format value is valid
func IsValidFormat(format string) bool {
	for _, valid := range ValidFormats {
		if format == valid {
			return true
		}
	}
	return false
}
