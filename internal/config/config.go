package config

// Config is the root configuration for one engine run.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds shard worker settings.
type EngineConfig struct {
	Shards    int `yaml:"shards"`     // 0 = one shard per CPU
	QueueSize int `yaml:"queue_size"` // per-shard queue capacity
}

// LoggingConfig holds logging settings. Logs go to stderr; stdout is
// reserved for the balance snapshot.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}
