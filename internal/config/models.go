package config

// StoreConfig represents the configuration for the model store backend
type StoreConfig struct {
	Type       string
	SQLitePath string
	MySQLDSN   string
}

// CacheConfig represents the configuration for the in-memory model cache
type CacheConfig struct {
	MaxAge         string
	EvictFrequency string
}

// ClassifierConfig represents the configuration for the text classifier
type ClassifierConfig struct {
	DefaultThreshold float64
}

// LoggingConfig represents the configuration for logging
type LoggingConfig struct {
	Level  string
	Format string
}

// RuleConfig represents a single matching rule entry
type RuleConfig struct {
	ID     string `mapstructure:"id"`
	Key    string `mapstructure:"key"`
	Case   string `mapstructure:"case"`
	Action string `mapstructure:"action"`
}

// ModelConfig represents a custom model entry referenced by model rules
type ModelConfig struct {
	ID        string  `mapstructure:"id"`
	Sample    string  `mapstructure:"sample"`
	Threshold float64 `mapstructure:"threshold"`
}

// RegexpConfig represents a user regular expression entry referenced by regexp rules
type RegexpConfig struct {
	ID      string `mapstructure:"id"`
	Pattern string `mapstructure:"pattern"`
	Flags   string `mapstructure:"flags"`
}

// GetStore returns the store configuration
func (c *Config) GetStore() StoreConfig {
	return StoreConfig{
		Type:       c.GetString("store.type"),
		SQLitePath: c.GetString("store.sqlite_path"),
		MySQLDSN:   c.GetString("store.mysql_dsn"),
	}
}

// GetCache returns the cache configuration
func (c *Config) GetCache() CacheConfig {
	return CacheConfig{
		MaxAge:         c.GetString("cache.max_age"),
		EvictFrequency: c.GetString("cache.evict_frequency"),
	}
}

// GetClassifier returns the classifier configuration
func (c *Config) GetClassifier() ClassifierConfig {
	return ClassifierConfig{
		DefaultThreshold: c.GetFloat64("classifier.default_threshold"),
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}

// GetRules returns the configured matching rules
func (c *Config) GetRules() ([]RuleConfig, error) {
	var rules []RuleConfig
	if err := c.v.UnmarshalKey("matcher.rules", &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// GetModels returns the configured custom models
func (c *Config) GetModels() ([]ModelConfig, error) {
	var models []ModelConfig
	if err := c.v.UnmarshalKey("matcher.models", &models); err != nil {
		return nil, err
	}
	return models, nil
}

// GetRegexps returns the configured user regular expressions
func (c *Config) GetRegexps() ([]RegexpConfig, error) {
	var regexps []RegexpConfig
	if err := c.v.UnmarshalKey("matcher.regexps", &regexps); err != nil {
		return nil, err
	}
	return regexps, nil
}
