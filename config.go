package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	UI     UIConfig
	Panels PanelConfig
	Keys   KeysConfig
}

// UIConfig holds chrome presentation settings.
type UIConfig struct {
	Accent       string
	SidebarWidth int
}

// PanelConfig holds default sidebar panel heights.
type PanelConfig struct {
	LayersHeight      int
	AdjustmentsHeight int
	HistoryHeight     int
}

// KeysConfig holds shortcut combo overrides for the panel jumps.
type KeysConfig struct {
	Layers      string
	Adjustments string
	History     string
}

// LoadConfig reads configuration from file and env. Env var overrides
// use prefix EASEL_.
func LoadConfig() (Config, error) {
	v := viper.New()

	v.SetDefault("ui.accent", "mauve")
	v.SetDefault("ui.sidebar_width", 36)
	v.SetDefault("panels.layers_height", 12)
	v.SetDefault("panels.adjustments_height", 14)
	v.SetDefault("panels.history_height", 12)
	v.SetDefault("keys.layers", "alt+1")
	v.SetDefault("keys.adjustments", "alt+2")
	v.SetDefault("keys.history", "alt+3")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("EASEL_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "easel"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("EASEL")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		// no config file is fine, defaults apply
	}

	cfg := Config{
		UI: UIConfig{
			Accent:       v.GetString("ui.accent"),
			SidebarWidth: v.GetInt("ui.sidebar_width"),
		},
		Panels: PanelConfig{
			LayersHeight:      v.GetInt("panels.layers_height"),
			AdjustmentsHeight: v.GetInt("panels.adjustments_height"),
			HistoryHeight:     v.GetInt("panels.history_height"),
		},
		Keys: KeysConfig{
			Layers:      v.GetString("keys.layers"),
			Adjustments: v.GetString("keys.adjustments"),
			History:     v.GetString("keys.history"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.UI.SidebarWidth < 20 {
		return fmt.Errorf("ui.sidebar_width %d is too narrow (minimum 20)", c.UI.SidebarWidth)
	}
	for name, h := range map[string]int{
		"panels.layers_height":      c.Panels.LayersHeight,
		"panels.adjustments_height": c.Panels.AdjustmentsHeight,
		"panels.history_height":     c.Panels.HistoryHeight,
	} {
		if h < 1 {
			return fmt.Errorf("%s must be positive, got %d", name, h)
		}
	}
	return nil
}

// PanelShortcuts returns the jump combos in panel order.
func (c Config) PanelShortcuts() []string {
	return []string{c.Keys.Layers, c.Keys.Adjustments, c.Keys.History}
}
