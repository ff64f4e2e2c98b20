package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "bam-donation", cfg.App.Name)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Reader.GetCacheTTL())
	assert.Equal(t, 2*time.Second, cfg.Watcher.GetPollInterval())
	assert.Equal(t, 10, cfg.Checker.MaxWorkers)
	assert.Equal(t, "stdout", cfg.Logger.Output)
	assert.Empty(t, cfg.Wallet.PrivateKey)
	assert.Empty(t, cfg.Networks)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := `
logger:
  level: debug
networks:
  - chain_id: 84532
    rpc_urls: ["https://sepolia.base.org"]
watcher:
  poll_interval: 500ms
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("BAM_DONATION_WALLET_PRIVATE_KEY", "abc123")
	t.Setenv("BAM_DONATION_SERVER_PORT", "9090")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "abc123", cfg.Wallet.PrivateKey)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 500*time.Millisecond, cfg.Watcher.GetPollInterval())
	assert.Equal(t, []string{"https://sepolia.base.org"}, cfg.RPCURLs(84532))
	assert.Nil(t, cfg.RPCURLs(1))
}
