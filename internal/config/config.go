package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type Config struct {
	Amazon    AmazonConfig
	API       APIConfig
	Logging   LoggingConfig
	Simulator SimulatorConfig
}

// AmazonConfig carries the Product Advertising API credentials. All
// three values are required before any request can be signed.
type AmazonConfig struct {
	AccessKey    string
	SecretKey    string
	AssociateTag string
}

// APIConfig locates the catalog endpoint. The defaults point at the
// production service; the simulator overrides host and scheme for
// local runs.
type APIConfig struct {
	Scheme         string
	Host           string
	Path           string
	TimeoutSeconds int
}

type LoggingConfig struct {
	Level    string
	Encoding string
}

// SimulatorConfig configures the local catalog simulator binary.
type SimulatorConfig struct {
	Host        string
	Port        int
	CatalogPath string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigType("env")
	viper.AutomaticEnv()

	viper.SetDefault("API_SCHEME", "http")
	viper.SetDefault("API_HOST", "webservices.amazon.com")
	viper.SetDefault("API_PATH", "/onca/xml")
	viper.SetDefault("API_TIMEOUT_SECONDS", 10)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("SIMULATOR_PORT", 8080)
	viper.SetDefault("SIMULATOR_CATALOG_PATH", "configs/catalog.yaml")

	cfg := &Config{
		Amazon: AmazonConfig{
			AccessKey:    viper.GetString("AWS_ACCESS_KEY_ID"),
			SecretKey:    viper.GetString("AWS_SECRET_ACCESS_KEY"),
			AssociateTag: viper.GetString("AWS_ASSOCIATE_TAG"),
		},
		API: APIConfig{
			Scheme:         viper.GetString("API_SCHEME"),
			Host:           viper.GetString("API_HOST"),
			Path:           viper.GetString("API_PATH"),
			TimeoutSeconds: viper.GetInt("API_TIMEOUT_SECONDS"),
		},
		Logging: LoggingConfig{
			Level:    viper.GetString("LOG_LEVEL"),
			Encoding: viper.GetString("LOG_ENCODING"),
		},
		Simulator: SimulatorConfig{
			Host:        viper.GetString("SIMULATOR_HOST"),
			Port:        viper.GetInt("SIMULATOR_PORT"),
			CatalogPath: viper.GetString("SIMULATOR_CATALOG_PATH"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.validateAmazon(); err != nil {
		return fmt.Errorf("amazon config: %w", err)
	}
	if err := c.validateAPI(); err != nil {
		return fmt.Errorf("api config: %w", err)
	}
	if err := c.validateSimulator(); err != nil {
		return fmt.Errorf("simulator config: %w", err)
	}
	return nil
}

func (c *Config) validateAmazon() error {
	if c.Amazon.AccessKey == "" {
		return fmt.Errorf("access key is required (set AWS_ACCESS_KEY_ID)")
	}
	if c.Amazon.SecretKey == "" {
		return fmt.Errorf("secret key is required (set AWS_SECRET_ACCESS_KEY)")
	}
	if c.Amazon.AssociateTag == "" {
		return fmt.Errorf("associate tag is required (set AWS_ASSOCIATE_TAG)")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.Scheme != "http" && c.API.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", c.API.Scheme)
	}
	if c.API.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.API.Path == "" || c.API.Path[0] != '/' {
		return fmt.Errorf("path must start with /, got %q", c.API.Path)
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout seconds must be greater than 0")
	}
	return nil
}

func (c *Config) validateSimulator() error {
	if c.Simulator.Port <= 0 || c.Simulator.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	if c.Simulator.CatalogPath == "" {
		return fmt.Errorf("catalog path is required")
	}
	return nil
}
