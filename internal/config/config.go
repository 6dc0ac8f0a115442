package config

import (
	"fmt"
	"strings"

	"github.com/shopflow/storefront/pkg/config"
	"github.com/shopflow/storefront/pkg/config/configloader"
)

var _ configloader.Validator = (*Config)(nil)

type Config struct {
	HTTPServer config.HTTPConfig      `koanf:"server"`
	Log        config.LogConfig       `koanf:"log"`
	PProf      config.PProfConfig     `koanf:"pprof"`
	Shutdown   config.ShutdownConfig  `koanf:"shutdown"`
	Storage    config.StorageConfig   `koanf:"storage"`
	Catalog    CatalogConfig          `koanf:"catalog"`
	NATS       config.NATSConfig      `koanf:"nats"`
	Telemetry  config.TelemetryConfig `koanf:"telemetry"`
}

// CatalogConfig selects the catalog data source and the global price bounds
// the price-range selector clamps to. Prices are in cents.
type CatalogConfig struct {
	Source   string                `koanf:"source"` // memory | postgres
	Database config.DatabaseConfig `koanf:"database"`
	PriceMin int64                 `koanf:"priceMin"`
	PriceMax int64                 `koanf:"priceMax"`
}

func (c *CatalogConfig) Validate() error {
	switch c.Source {
	case "", "memory":
	case "postgres":
		if err := c.Database.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown catalog source: %s", c.Source)
	}
	if c.PriceMax <= c.PriceMin {
		return fmt.Errorf("catalog price bounds must satisfy priceMin < priceMax, got [%d, %d]", c.PriceMin, c.PriceMax)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder

	b.WriteString("\n--- Server Configuration ---\n")
	b.WriteString(fmt.Sprintf("  server.port: %d\n", c.HTTPServer.Port))
	b.WriteString(fmt.Sprintf("  server.maxHeaderBytes: %d\n", c.HTTPServer.MaxHeaderBytes))
	b.WriteString(fmt.Sprintf("  server.timeout.read: %v\n", c.HTTPServer.Timeout.Read))
	b.WriteString(fmt.Sprintf("  server.timeout.write: %v\n", c.HTTPServer.Timeout.Write))
	b.WriteString(fmt.Sprintf("  server.timeout.idle: %v\n", c.HTTPServer.Timeout.Idle))
	b.WriteString(fmt.Sprintf("  server.timeout.readHeader: %v\n", c.HTTPServer.Timeout.ReadHeader))

	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  catalog.source: %s\n", c.Catalog.Source))
	if c.Catalog.Source == "postgres" {
		b.WriteString(fmt.Sprintf("  catalog.database.url: %s\n", maskURL(c.Catalog.Database.URL)))
		b.WriteString(fmt.Sprintf("  catalog.database.timeout: %s\n", c.Catalog.Database.Timeout))
	}
	b.WriteString(fmt.Sprintf("  catalog.priceMin: %d\n", c.Catalog.PriceMin))
	b.WriteString(fmt.Sprintf("  catalog.priceMax: %d\n", c.Catalog.PriceMax))

	b.WriteString(c.Storage.String())
	b.WriteString(c.NATS.String())
	b.WriteString(c.Telemetry.String())
	b.WriteString(c.Log.String())
	b.WriteString(c.PProf.String())
	b.WriteString(c.Shutdown.String())

	return b.String()
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	parts := strings.Split(url, "@")
	if len(parts) == 2 {
		return "****@" + parts[1]
	}
	return "****"
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if err := c.HTTPServer.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.PProf.Validate(); err != nil {
		return err
	}
	if err := c.Shutdown.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if err := c.NATS.Validate(); err != nil {
		return err
	}
	if err := c.Telemetry.Validate(); err != nil {
		return err
	}
	return nil
}
