package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageConfig selects the key-value backend for durable state snapshots.
type StorageConfig struct {
	Backend string `koanf:"backend"` // memory | file | redis
	Dir     string `koanf:"dir"`     // file backend state directory
	Redis   struct {
		Addr     string        `koanf:"addr"`
		Password string        `koanf:"password"`
		DB       int           `koanf:"db"`
		Timeout  time.Duration `koanf:"timeout"`
	} `koanf:"redis"`
}

// String returns a string representation of the storage configuration.
func (c *StorageConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Storage ---\n")
	b.WriteString(fmt.Sprintf("  backend: %s\n", c.Backend))
	if c.Backend == "file" {
		b.WriteString(fmt.Sprintf("  dir: %s\n", c.Dir))
	}
	if c.Backend == "redis" {
		b.WriteString(fmt.Sprintf("  redis.addr: %s\n", c.Redis.Addr))
		b.WriteString(fmt.Sprintf("  redis.db: %d\n", c.Redis.DB))
	}
	return b.String()
}

func (c *StorageConfig) Validate() error {
	switch c.Backend {
	case "", "memory":
		return nil
	case "file":
		if c.Dir == "" {
			return fmt.Errorf("file storage backend requires storage.dir")
		}
		return nil
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis storage backend requires storage.redis.addr")
		}
		if c.Redis.Timeout <= 0 {
			return fmt.Errorf("redis storage backend requires storage.redis.timeout")
		}
		return nil
	}
	return fmt.Errorf("unknown storage backend: %s", c.Backend)
}
