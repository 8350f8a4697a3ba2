package cmd

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aliasimkazmi/core-components/internal/config"
)

// mergedConfig is the effective configuration after layering built-in
// defaults, the config file, and CLI flags (highest precedence).
type mergedConfig struct {
	Widget config.Options `yaml:"widget"`
	UI     uiConfig       `yaml:"ui"`
}

type uiConfig struct {
	Theme         string `yaml:"theme"`
	NoColor       bool   `yaml:"no_color"`
	Placeholder   string `yaml:"placeholder"`
	ConfirmSelect bool   `yaml:"confirm_select"`
}

// configLoader centralizes config loading so callers avoid duplicating merge logic.
type configLoader struct {
	defaultConfig func() mergedConfig
}

var cfgLoader = configLoader{defaultConfig: defaultMergedConfig}

func defaultMergedConfig() mergedConfig {
	return mergedConfig{
		Widget: config.Defaults(),
		UI: uiConfig{
			Theme: "dark",
		},
	}
}

func loadMergedConfig(cfgPath string) (mergedConfig, error) {
	return cfgLoader.loadMergedConfig(cfgPath)
}

func (l configLoader) loadMergedConfig(cfgPath string) (mergedConfig, error) {
	cfg := l.defaultConfig()
	if cfgPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return cfg, err
	}

	// Decode into a shadow struct with pointer fields so absent keys keep
	// their defaults instead of zeroing them.
	var file struct {
		Widget struct {
			Limit       *int    `yaml:"limit"`
			Highlight   *string `yaml:"highlight"`
			AjaxURL     *string `yaml:"ajax"`
			DebounceMs  *int    `yaml:"debounce_ms"`
			ExtractExpr *string `yaml:"extract"`
			RankMatches *bool   `yaml:"rank_matches"`
		} `yaml:"widget"`
		UI struct {
			Theme         *string `yaml:"theme"`
			NoColor       *bool   `yaml:"no_color"`
			Placeholder   *string `yaml:"placeholder"`
			ConfirmSelect *bool   `yaml:"confirm_select"`
		} `yaml:"ui"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", cfgPath, err)
	}

	if file.Widget.Limit != nil {
		cfg.Widget.Limit = *file.Widget.Limit
	}
	if file.Widget.Highlight != nil {
		cfg.Widget.Highlight = config.HighlightMode(strings.TrimSpace(*file.Widget.Highlight))
	}
	if file.Widget.AjaxURL != nil {
		cfg.Widget.AjaxURL = strings.TrimSpace(*file.Widget.AjaxURL)
	}
	if file.Widget.DebounceMs != nil {
		cfg.Widget.DebounceMs = *file.Widget.DebounceMs
	}
	if file.Widget.ExtractExpr != nil {
		cfg.Widget.ExtractExpr = *file.Widget.ExtractExpr
	}
	if file.Widget.RankMatches != nil {
		cfg.Widget.RankMatches = *file.Widget.RankMatches
	}

	if file.UI.Theme != nil {
		cfg.UI.Theme = strings.TrimSpace(*file.UI.Theme)
	}
	if file.UI.NoColor != nil {
		cfg.UI.NoColor = *file.UI.NoColor
	}
	if file.UI.Placeholder != nil {
		cfg.UI.Placeholder = *file.UI.Placeholder
	}
	if file.UI.ConfirmSelect != nil {
		cfg.UI.ConfirmSelect = *file.UI.ConfirmSelect
	}

	return cfg, nil
}

// applyFlagOverrides layers CLI flags on top of the merged config. Only flags
// the user actually set take effect, so config-file values survive defaults.
func applyFlagOverrides(cfg *mergedConfig, changed func(name string) bool) {
	if changed("limit") {
		cfg.Widget.Limit = limitFlag
	}
	if changed("highlight") {
		cfg.Widget.Highlight = config.HighlightMode(highlightFlag)
	}
	if changed("ajax") {
		cfg.Widget.AjaxURL = ajaxURL
	}
	if changed("debounce-ms") {
		cfg.Widget.DebounceMs = debounceMs
	}
	if changed("extract") {
		cfg.Widget.ExtractExpr = extractExpr
	}
	if changed("rank") {
		cfg.Widget.RankMatches = rankMatches
	}
	if changed("theme") {
		cfg.UI.Theme = themeName
	}
	if changed("no-color") {
		cfg.UI.NoColor = noColor
	}
	if changed("placeholder") {
		cfg.UI.Placeholder = placeholder
	}
	if changed("confirm") {
		cfg.UI.ConfirmSelect = confirmSelect
	}
}
