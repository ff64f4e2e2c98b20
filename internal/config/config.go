package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Logger    LoggerConfig    `mapstructure:"logger"`
	Wallet    WalletConfig    `mapstructure:"wallet"`
	Networks  []NetworkConfig `mapstructure:"networks"`
	Reader    ReaderConfig    `mapstructure:"reader"`
	Watcher   WatcherConfig   `mapstructure:"watcher"`
	Checker   CheckerConfig   `mapstructure:"checker"`
	Chainlist ChainlistConfig `mapstructure:"chainlist"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// LoggerConfig holds logging configuration.
// Output is "stdout", "stderr" or a file path; empty means stdout.
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
	Output   string `mapstructure:"output"`
}

// WalletConfig holds the signing key of the connected account.
// An empty key means no wallet is connected and only reads are possible.
type WalletConfig struct {
	PrivateKey string `mapstructure:"private_key"`
}

// NetworkConfig lists the RPC endpoints used to reach one chain.
type NetworkConfig struct {
	ChainID int64    `mapstructure:"chain_id"`
	RPCURLs []string `mapstructure:"rpc_urls"`
}

// ReaderConfig controls caching of contract reads.
type ReaderConfig struct {
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// WatcherConfig controls receipt polling for submitted transactions.
type WatcherConfig struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
}

// CheckerConfig holds settings related to the RPC checking process.
type CheckerConfig struct {
	CheckTimeout time.Duration `mapstructure:"check_timeout"`
	MaxWorkers   int           `mapstructure:"max_workers"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
	RunOnStartup bool          `mapstructure:"run_on_startup"`
}

// ChainlistConfig holds configuration for the Chainlist data source.
type ChainlistConfig struct {
	URL      string        `mapstructure:"url"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// TrackerConfig controls how long finished transaction statuses are kept.
type TrackerConfig struct {
	Retention       time.Duration `mapstructure:"retention"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Load reads configuration from file and environment variables.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("app.name", "bam-donation")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.encoding", "json")
	v.SetDefault("logger.output", "stdout")
	v.SetDefault("wallet.private_key", "")
	v.SetDefault("reader.cache_ttl", "15s")
	v.SetDefault("reader.cleanup_interval", "1m")
	v.SetDefault("watcher.poll_interval", "2s")
	v.SetDefault("checker.check_timeout", "5s")
	v.SetDefault("checker.max_workers", 10)
	v.SetDefault("checker.cache_ttl", "5m")
	v.SetDefault("checker.run_on_startup", false)
	v.SetDefault("chainlist.url", "https://chainid.network/chains.json")
	v.SetDefault("chainlist.cache_ttl", "1h")
	v.SetDefault("tracker.retention", "1h")
	v.SetDefault("tracker.cleanup_interval", "10m")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		fmt.Printf("Warning: Config file not found in %s or '.', using defaults/env vars\n", configPath)
	}

	v.SetEnvPrefix("BAM_DONATION")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// RPCURLs returns the configured endpoints for chainID, or nil.
func (c Config) RPCURLs(chainID int64) []string {
	for _, n := range c.Networks {
		if n.ChainID == chainID {
			return n.RPCURLs
		}
	}
	return nil
}

func (c CheckerConfig) GetTimeout() time.Duration {
	return c.CheckTimeout
}

func (c CheckerConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c ChainlistConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c ReaderConfig) GetCacheTTL() time.Duration {
	return c.CacheTTL
}

func (c ReaderConfig) GetCleanupInterval() time.Duration {
	return c.CleanupInterval
}

func (c WatcherConfig) GetPollInterval() time.Duration {
	if c.PollInterval <= 0 {
		return 2 * time.Second
	}
	return c.PollInterval
}
