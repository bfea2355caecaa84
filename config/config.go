// Package config handles loading and saving go-streamdock's on-disk
// policy file: the timeouts and intervals the device manager and its
// worker loops use by default.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Config holds the application configuration.
type Config struct {
	mu sync.RWMutex `json:"-"`

	HeartbeatIntervalSeconds   int `json:"heartbeat_interval_seconds"`
	SchedulerTickMillis        int `json:"scheduler_tick_millis"`
	HotplugPollIntervalSeconds int `json:"hotplug_poll_interval_seconds"`
	WriteTimeoutMillis         int `json:"write_timeout_millis"`
	ReadTimeoutMillis          int `json:"read_timeout_millis"`

	// DefaultKeyQuality and DefaultBackgroundQuality are JPEG quality
	// settings (1-100) the renderer falls back to when a caller doesn't
	// specify one explicitly.
	DefaultKeyQuality        int  `json:"default_key_quality"`
	DefaultBackgroundQuality int  `json:"default_background_quality"`
	LinuxVirtualizedHost     bool `json:"linux_virtualized_host"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HeartbeatIntervalSeconds:   10,
		SchedulerTickMillis:        10,
		HotplugPollIntervalSeconds: 2,
		WriteTimeoutMillis:         3000,
		ReadTimeoutMillis:          100,
		DefaultKeyQuality:          95,
		DefaultBackgroundQuality:   95,
	}
}

// Dir returns the OS-appropriate config directory for go-streamdock.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(base, "go-streamdock"), nil
}

// Path returns the full path to the config file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk. If the file doesn't exist, it creates
// a default config and saves it.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p)
	if os.IsNotExist(err) {
		cfg := DefaultConfig()
		if saveErr := cfg.Save(); saveErr != nil {
			return nil, fmt.Errorf("create default config: %w", saveErr)
		}
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig() // start with defaults so new fields get populated
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Save writes the config to disk atomically (write temp, rename).
func (c *Config) Save() error {
	c.mu.RLock()
	data, err := json.MarshalIndent(c, "", "  ")
	c.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	p, err := Path()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename config: %w", err)
	}
	return nil
}

// SetHeartbeatInterval updates the heartbeat interval and saves to disk.
func (c *Config) SetHeartbeatInterval(seconds int) error {
	c.mu.Lock()
	c.HeartbeatIntervalSeconds = seconds
	c.mu.Unlock()
	return c.Save()
}

// GetHeartbeatInterval returns the current heartbeat interval.
func (c *Config) GetHeartbeatInterval() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HeartbeatIntervalSeconds
}

// SetHotplugPollInterval updates the hot-plug poll interval and saves to
// disk.
func (c *Config) SetHotplugPollInterval(seconds int) error {
	c.mu.Lock()
	c.HotplugPollIntervalSeconds = seconds
	c.mu.Unlock()
	return c.Save()
}

// GetHotplugPollInterval returns the current hot-plug poll interval.
func (c *Config) GetHotplugPollInterval() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HotplugPollIntervalSeconds
}
