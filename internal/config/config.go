package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/floegence/chatoracle/internal/chain"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for chatoracle.
type Config struct {
	// ChainID selects the network used for explorer links and contract lookup.
	ChainID int64 `yaml:"chain_id"`
	// RPCURL overrides the chain's default RPC endpoint.
	RPCURL string `yaml:"rpc_url,omitempty"`
	// ContractAddresses overrides the deployed oracle address per chain id.
	ContractAddresses map[int64]string `yaml:"contract_addresses,omitempty"`

	// DebugMaxLogs bounds the debug ring buffer (default 100).
	DebugMaxLogs int `yaml:"debug_max_logs,omitempty"`
	// CurrencySymbol overrides the chain's native symbol in status lines.
	CurrencySymbol string `yaml:"currency_symbol,omitempty"`

	// LogFormat is "json" or "text".
	LogFormat string `yaml:"log_format,omitempty"`
	// LogLevel is "debug|info|warn|error".
	LogLevel string `yaml:"log_level,omitempty"`
}

const defaultDebugMaxLogs = 100

var addressRE = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

func Default() *Config {
	return &Config{ChainID: chain.ZGTestnetID}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if c.ChainID <= 0 {
		return fmt.Errorf("invalid chain_id: %d", c.ChainID)
	}
	if c.DebugMaxLogs < 0 {
		return fmt.Errorf("invalid debug_max_logs: %d", c.DebugMaxLogs)
	}
	for id, addr := range c.ContractAddresses {
		if !addressRE.MatchString(strings.TrimSpace(addr)) {
			return fmt.Errorf("invalid contract_addresses[%d]: %q", id, addr)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.LogFormat)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("invalid log_format: %q", c.LogFormat)
	}
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level: %q", c.LogLevel)
	}
	return nil
}

// ApplyEnv overlays CHATORACLE_* environment variables.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv("CHATORACLE_CHAIN_ID")); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid CHATORACLE_CHAIN_ID: %w", err)
		}
		c.ChainID = id
	}
	if v := strings.TrimSpace(getenv("CHATORACLE_RPC_URL")); v != "" {
		c.RPCURL = v
	}
	if v := strings.TrimSpace(getenv("CHATORACLE_DEBUG_MAX_LOGS")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CHATORACLE_DEBUG_MAX_LOGS: %w", err)
		}
		c.DebugMaxLogs = n
	}
	if v := strings.TrimSpace(getenv("CHATORACLE_LOG_FORMAT")); v != "" {
		c.LogFormat = v
	}
	if v := strings.TrimSpace(getenv("CHATORACLE_LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	return nil
}

func (c *Config) EffectiveDebugMaxLogs() int {
	if c == nil || c.DebugMaxLogs <= 0 {
		return defaultDebugMaxLogs
	}
	return c.DebugMaxLogs
}

func (c *Config) EffectiveRPCURL() string {
	if c == nil {
		return ""
	}
	if v := strings.TrimSpace(c.RPCURL); v != "" {
		return v
	}
	if ch, ok := chain.Lookup(c.ChainID); ok {
		return ch.RPCURL
	}
	return ""
}

func (c *Config) EffectiveCurrencySymbol() string {
	if c == nil {
		return "ETH"
	}
	if v := strings.TrimSpace(c.CurrencySymbol); v != "" {
		return v
	}
	if ch, ok := chain.Lookup(c.ChainID); ok {
		return ch.CurrencySymbol
	}
	return "ETH"
}

// ContractAddress resolves the oracle contract for the configured chain.
func (c *Config) ContractAddress() (string, bool) {
	if c == nil {
		return "", false
	}
	if addr := strings.TrimSpace(c.ContractAddresses[c.ChainID]); addr != "" {
		return addr, true
	}
	return chain.DefaultContractAddress(c.ChainID)
}

// DefaultConfigPath returns the default config path:
//
//	~/.chatoracle/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "chatoracle.config.yaml"
	}
	return filepath.Join(home, ".chatoracle", "config.yaml")
}

// Load reads path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	// Write atomically.
	tmp := path + ".tmp"
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
