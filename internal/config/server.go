package config

import "time"

type ServerConfig struct {
	HTTP HTTPConfig `yaml:"http"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// QueueConfig controls the payment job queue.
type QueueConfig struct {
	// Name is the queue namespace in Redis.
	Name string `yaml:"name"`
	// LeaseDuration is how long an active job stays claimed before it
	// becomes re-deliverable to another worker.
	LeaseDuration time.Duration `yaml:"lease_duration"`
	// PollTimeout bounds each blocking dequeue call.
	PollTimeout time.Duration `yaml:"poll_timeout"`
}
