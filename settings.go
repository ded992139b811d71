package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings represents user-configurable settings stored in ~/.aimentor/settings.json
type Settings struct {
	Provider ProviderSettings `json:"provider"`
	Models   ModelSettings    `json:"models"`
	Tokens   TokenSettings    `json:"tokens"`
	History  HistorySettings  `json:"history"`
	Theme    ThemeSettings    `json:"theme"`
}

// ProviderSettings selects the oracle backend
type ProviderSettings struct {
	// Name is one of: gemini, anthropic, openai, bedrock
	Name string `json:"name"`
}

// ModelSettings configures which model tier each mentor task uses
type ModelSettings struct {
	// Analyze is used for code analysis (errors, suggestions, score)
	Analyze string `json:"analyze"`
	// Generate is used for code generation from a description
	Generate string `json:"generate"`
	// Visualize is used for step-by-step execution traces
	Visualize string `json:"visualize"`
	// Lesson is used for long-form concept explanations
	Lesson string `json:"lesson"`
}

// TokenSettings configures token budgets
type TokenSettings struct {
	// MaxPerResponse is the maximum tokens per API response
	MaxPerResponse int `json:"maxPerResponse"`
	// MaxPerSession is the maximum total tokens per session (0 = unlimited)
	MaxPerSession int `json:"maxPerSession"`
}

// HistorySettings configures local analysis history
type HistorySettings struct {
	// Enabled turns submission history on or off
	Enabled bool `json:"enabled"`
	// Path overrides the default database location (~/.aimentor/history.db)
	Path string `json:"path"`
}

// ThemeSettings configures the UI appearance
type ThemeSettings struct {
	Name string `json:"name"`
}

// ThemePreset defines colors for a complete theme
type ThemePreset struct {
	Prompt  string
	Success string
	Error   string
	Warning string
	Info    string
	Accent  string
}

// DefaultSettings returns the default settings
func DefaultSettings() *Settings {
	return &Settings{
		Provider: ProviderSettings{
			Name: "gemini",
		},
		Models: ModelSettings{
			Analyze:   "fast",
			Generate:  "balanced",
			Visualize: "fast",
			Lesson:    "balanced",
		},
		Tokens: TokenSettings{
			MaxPerResponse: 4096,
			MaxPerSession:  150000,
		},
		History: HistorySettings{
			Enabled: true,
		},
		Theme: ThemeSettings{
			Name: "default",
		},
	}
}

// SettingsPath returns the path to the settings file
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".aimentor", "settings.json"), nil
}

// LoadSettings loads settings from ~/.aimentor/settings.json
// Returns default settings if the file doesn't exist or can't be read
func LoadSettings() (*Settings, error) {
	settings := DefaultSettings()

	path, err := SettingsPath()
	if err != nil {
		// Can't determine home directory - return defaults (not an error for the user)
		return settings, nil //nolint:nilerr // intentional: return defaults when path unavailable
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, err
	}

	// Parse JSON, keeping defaults for missing fields
	if err := json.Unmarshal(data, settings); err != nil {
		return settings, err
	}

	return settings, nil
}

// SaveSettings saves settings to ~/.aimentor/settings.json
func SaveSettings(settings *Settings) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// HistoryDBPath resolves the history database location
func HistoryDBPath(settings *Settings) (string, error) {
	if settings.History.Path != "" {
		return settings.History.Path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".aimentor", "history.db"), nil
}

// ANSI color codes (256-color mode for richer themes)
var colorCodes = map[string]string{
	"black":   "\033[30m",
	"red":     "\033[91m",
	"green":   "\033[92m",
	"yellow":  "\033[93m",
	"blue":    "\033[94m",
	"magenta": "\033[95m",
	"cyan":    "\033[96m",
	"white":   "\033[97m",
	"reset":   "\033[0m",

	// Extended colors for themes (256-color)
	"ocean_blue":     "\033[38;5;39m",
	"ocean_teal":     "\033[38;5;43m",
	"ocean_coral":    "\033[38;5;209m",
	"ocean_sand":     "\033[38;5;223m",
	"mono_bright":    "\033[38;5;255m",
	"mono_mid":       "\033[38;5;250m",
	"mono_dim":       "\033[38;5;240m",
	"dracula_purple": "\033[38;5;141m",
	"dracula_pink":   "\033[38;5;212m",
	"dracula_green":  "\033[38;5;84m",
	"dracula_red":    "\033[38;5;210m",
	"dracula_cyan":   "\033[38;5;117m",
	"nord_blue":      "\033[38;5;67m",
	"nord_cyan":      "\033[38;5;110m",
	"nord_green":     "\033[38;5;108m",
	"nord_red":       "\033[38;5;174m",
	"nord_yellow":    "\033[38;5;222m",
}

// ThemePresets contains all available theme presets
var ThemePresets = map[string]ThemePreset{
	"default": {
		Prompt:  "blue",
		Success: "green",
		Error:   "red",
		Warning: "yellow",
		Info:    "cyan",
		Accent:  "magenta",
	},
	"ocean": {
		Prompt:  "ocean_blue",
		Success: "ocean_teal",
		Error:   "ocean_coral",
		Warning: "ocean_sand",
		Info:    "ocean_teal",
		Accent:  "ocean_blue",
	},
	"mono": {
		Prompt:  "mono_bright",
		Success: "mono_mid",
		Error:   "mono_bright",
		Warning: "mono_mid",
		Info:    "mono_dim",
		Accent:  "mono_bright",
	},
	"dracula": {
		Prompt:  "dracula_purple",
		Success: "dracula_green",
		Error:   "dracula_red",
		Warning: "dracula_pink",
		Info:    "dracula_cyan",
		Accent:  "dracula_purple",
	},
	"nord": {
		Prompt:  "nord_blue",
		Success: "nord_green",
		Error:   "nord_red",
		Warning: "nord_yellow",
		Info:    "nord_cyan",
		Accent:  "nord_blue",
	},
}

// Theme provides color formatting based on settings
type Theme struct {
	preset ThemePreset
}

// NewTheme creates a theme from settings
func NewTheme(settings *ThemeSettings) *Theme {
	preset, ok := ThemePresets[settings.Name]
	if !ok {
		preset = ThemePresets["default"]
	}
	return &Theme{preset: preset}
}

func (t *Theme) Prompt(text string) string {
	return t.colorize(t.preset.Prompt, text)
}

func (t *Theme) Success(text string) string {
	return t.colorize(t.preset.Success, text)
}

func (t *Theme) Error(text string) string {
	return t.colorize(t.preset.Error, text)
}

func (t *Theme) Warning(text string) string {
	return t.colorize(t.preset.Warning, text)
}

func (t *Theme) Info(text string) string {
	return t.colorize(t.preset.Info, text)
}

func (t *Theme) Accent(text string) string {
	return t.colorize(t.preset.Accent, text)
}

// Dim formats text with dim/faint styling
func (t *Theme) Dim(text string) string {
	return "\033[2m" + text + colorCodes["reset"]
}

// Reset returns the reset code
func (t *Theme) Reset() string {
	return colorCodes["reset"]
}

func (t *Theme) colorize(color, text string) string {
	return getColorCode(color) + text + colorCodes["reset"]
}

func getColorCode(color string) string {
	if code, ok := colorCodes[color]; ok {
		return code
	}
	return colorCodes["white"]
}

// AvailableThemes returns the list of available theme names
func AvailableThemes() []string {
	return []string{"default", "ocean", "mono", "dracula", "nord"}
}
