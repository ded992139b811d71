package main

import (
	"encoding/json"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Provider.Name != "gemini" {
		t.Errorf("Provider.Name = %q, want gemini", s.Provider.Name)
	}
	if s.Models.Analyze == "" {
		t.Error("Models.Analyze should not be empty")
	}
	if s.Models.Generate == "" {
		t.Error("Models.Generate should not be empty")
	}
	if s.Tokens.MaxPerResponse != 4096 {
		t.Errorf("Tokens.MaxPerResponse = %d, want 4096", s.Tokens.MaxPerResponse)
	}
	if !s.History.Enabled {
		t.Error("History.Enabled should default to true")
	}
	if s.Theme.Name != "default" {
		t.Errorf("Theme.Name = %q, want default", s.Theme.Name)
	}
}

func TestTheme(t *testing.T) {
	tests := []struct {
		name      string
		themeName string
	}{
		{"default theme", "default"},
		{"ocean theme", "ocean"},
		{"mono theme", "mono"},
		{"dracula theme", "dracula"},
		{"nord theme", "nord"},
		{"unknown theme falls back to default", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := &ThemeSettings{Name: tt.themeName}
			theme := NewTheme(settings)

			// Test that theme produces non-empty output
			if theme.Prompt("test") == "" {
				t.Error("Prompt() should return non-empty string")
			}
			if theme.Success("test") == "" {
				t.Error("Success() should return non-empty string")
			}
			if theme.Error("test") == "" {
				t.Error("Error() should return non-empty string")
			}
			if theme.Reset() == "" {
				t.Error("Reset() should return non-empty string")
			}
		})
	}
}

func TestAvailableThemes(t *testing.T) {
	themes := AvailableThemes()

	if len(themes) == 0 {
		t.Error("AvailableThemes() should return at least one theme")
	}

	// Check that all listed themes exist in ThemePresets
	for _, name := range themes {
		if _, ok := ThemePresets[name]; !ok {
			t.Errorf("Theme %q listed but not in ThemePresets", name)
		}
	}
}

func TestSettingsRoundtrip(t *testing.T) {
	settings := DefaultSettings()
	settings.Theme.Name = "ocean"
	settings.Provider.Name = "anthropic"
	settings.Tokens.MaxPerSession = 50000
	settings.History.Path = "/tmp/mentor-history.db"

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	loaded := DefaultSettings()
	if err := json.Unmarshal(data, loaded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if loaded.Theme.Name != "ocean" {
		t.Errorf("Theme.Name = %q, want ocean", loaded.Theme.Name)
	}
	if loaded.Provider.Name != "anthropic" {
		t.Errorf("Provider.Name = %q, want anthropic", loaded.Provider.Name)
	}
	if loaded.Tokens.MaxPerSession != 50000 {
		t.Errorf("Tokens.MaxPerSession = %d, want 50000", loaded.Tokens.MaxPerSession)
	}
	if loaded.History.Path != "/tmp/mentor-history.db" {
		t.Errorf("History.Path = %q, want /tmp/mentor-history.db", loaded.History.Path)
	}
}

func TestHistoryDBPath(t *testing.T) {
	t.Run("explicit path wins", func(t *testing.T) {
		settings := DefaultSettings()
		settings.History.Path = "/custom/path.db"

		got, err := HistoryDBPath(settings)
		if err != nil {
			t.Fatalf("HistoryDBPath failed: %v", err)
		}
		if got != "/custom/path.db" {
			t.Errorf("HistoryDBPath = %q, want /custom/path.db", got)
		}
	})

	t.Run("defaults under home", func(t *testing.T) {
		settings := DefaultSettings()

		got, err := HistoryDBPath(settings)
		if err != nil {
			t.Fatalf("HistoryDBPath failed: %v", err)
		}
		if got == "" {
			t.Error("HistoryDBPath should not be empty")
		}
	})
}
