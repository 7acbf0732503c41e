package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     App     `mapstructure:"app"`
	Catalog Catalog `mapstructure:"catalog"`
	Linking Linking `mapstructure:"linking"`
	Server  Server  `mapstructure:"server"`
	Logging Logging `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// Catalog holds the locations of the link catalog sources
type Catalog struct {
	ProductSource   string `mapstructure:"product_source"`
	LearningSource  string `mapstructure:"learning_source"`
	SitemapFallback string `mapstructure:"sitemap_fallback"`
	CuratedSource   string `mapstructure:"curated_source"`
	HostPrefix      string `mapstructure:"host_prefix"`
}

// Linking holds the suggestion and placement thresholds
type Linking struct {
	MinRelevance         float64 `mapstructure:"min_relevance"`
	MaxLinksPerDocument  int     `mapstructure:"max_links_per_document"`
	MinParagraphWords    int     `mapstructure:"min_paragraph_words"`
	MinWordsBetweenLinks int     `mapstructure:"min_words_between_links"`
	DefaultMaxLinks      int     `mapstructure:"default_max_links"`
	LinksPerSection      int     `mapstructure:"links_per_section"`
	DefaultTopic         string  `mapstructure:"default_topic"`
}

// Server holds HTTP server configuration
type Server struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORS         CORS          `mapstructure:"cors"`
}

// CORS holds cross-origin settings for the API
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".interlink")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	config.App.ConfigFile = viper.ConfigFileUsed()

	postProcessConfig(config)

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	// Catalog defaults
	viper.SetDefault("catalog.product_source", "data/sitemap.csv")
	viper.SetDefault("catalog.learning_source", "data/learning_topics.txt")
	viper.SetDefault("catalog.sitemap_fallback", "data/sitemap.txt")
	viper.SetDefault("catalog.curated_source", "")
	viper.SetDefault("catalog.host_prefix", "https://gcore.com")

	// Linking defaults
	viper.SetDefault("linking.min_relevance", 0.35)
	viper.SetDefault("linking.max_links_per_document", 3)
	viper.SetDefault("linking.min_paragraph_words", 20)
	viper.SetDefault("linking.min_words_between_links", 100)
	viper.SetDefault("linking.default_max_links", 5)
	viper.SetDefault("linking.links_per_section", 2)
	viper.SetDefault("linking.default_topic", "")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.cors.enabled", false)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "console")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	bindEnvKeys("catalog.product_source", []string{
		"INTERLINK_PRODUCT_SOURCE",
		"INTERLINK_SITEMAP_CSV",
	})

	bindEnvKeys("catalog.learning_source", []string{
		"INTERLINK_LEARNING_SOURCE",
		"INTERLINK_LEARNING_TOPICS",
	})

	bindEnvKeys("catalog.curated_source", []string{
		"INTERLINK_CURATED_SOURCE",
	})

	bindEnvKeys("server.port", []string{
		"INTERLINK_PORT",
		"PORT",
	})

	bindEnvKeys("app.debug", []string{
		"DEBUG",
		"INTERLINK_DEBUG",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) {
	config.Catalog.ProductSource = expandPath(config.Catalog.ProductSource)
	config.Catalog.LearningSource = expandPath(config.Catalog.LearningSource)
	config.Catalog.SitemapFallback = expandPath(config.Catalog.SitemapFallback)
	config.Catalog.CuratedSource = expandPath(config.Catalog.CuratedSource)

	if config.App.Debug {
		config.Logging.Level = "debug"
	}
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if path == "" {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures thresholds are usable
func validateConfig(config *Config) error {
	var errors []string

	if config.Linking.MinRelevance < 0 || config.Linking.MinRelevance > 1 {
		errors = append(errors, fmt.Sprintf("linking.min_relevance must be between 0 and 1, got %.2f", config.Linking.MinRelevance))
	}
	if config.Linking.MaxLinksPerDocument < 0 {
		errors = append(errors, "linking.max_links_per_document must not be negative")
	}
	if config.Linking.DefaultMaxLinks < 0 {
		errors = append(errors, "linking.default_max_links must not be negative")
	}
	if config.Linking.LinksPerSection < 0 {
		errors = append(errors, "linking.links_per_section must not be negative")
	}
	if config.Server.Port < 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("server.port out of range: %d", config.Server.Port))
	}
	switch strings.ToLower(config.Logging.Format) {
	case "json", "console":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging format: %s. Supported: json, console", config.Logging.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetCatalog() Catalog { return Get().Catalog }
func GetLinking() Linking { return Get().Linking }
func GetServer() Server   { return Get().Server }
func GetLogging() Logging { return Get().Logging }
func IsDebugMode() bool   { return Get().App.Debug }

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
