package config

import "fmt"

// Validate checks that all values are in range.
func (c *Config) Validate() error {
	if c.Engine.Shards < 0 || c.Engine.Shards > 65535 {
		return fmt.Errorf("engine.shards must be between 0 and 65535, got %d", c.Engine.Shards)
	}
	if c.Engine.QueueSize < 1 {
		return fmt.Errorf("engine.queue_size must be >= 1, got %d", c.Engine.QueueSize)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error, got %q", c.Logging.Level)
	}
	return nil
}
