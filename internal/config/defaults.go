package config

// Default values for optional configuration fields.
const (
	DefaultShards    = 0 // auto-size from CPU count
	DefaultQueueSize = 65536
	DefaultLogLevel  = "info"
)

// Default returns a fully defaulted configuration.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Engine.Shards == 0 {
		c.Engine.Shards = DefaultShards
	}
	if c.Engine.QueueSize == 0 {
		c.Engine.QueueSize = DefaultQueueSize
	}
	if c.Logging.Level == "" {
		c.Logging.Level = DefaultLogLevel
	}
}
