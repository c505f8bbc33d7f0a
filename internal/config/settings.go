package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds all configuration options.
type Settings struct {
	// Account
	UserVid string `json:"user_vid"`
	Cookie  string `json:"cookie"`

	// Batch behavior
	Concurrency     int   `json:"concurrency"`
	TaskDelayMS     int   `json:"task_delay_ms"`
	RetryScheduleMS []int `json:"retry_schedule_ms"`
	MaxRounds       int   `json:"max_rounds"`

	// Output
	Format          string `json:"format"` // markdown, json, csv
	OutputDir       string `json:"output_dir"`
	SaveBookFiles   bool   `json:"save_book_files"`
	SaveCovers      bool   `json:"save_covers"`
	CoverMaxSize    int    `json:"cover_max_size"`
	CopyToClipboard bool   `json:"copy_to_clipboard"`

	// BaseURL overrides the API endpoint; empty means production.
	BaseURL string `json:"base_url"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	homeDir, _ := os.UserHomeDir()
	return &Settings{
		Concurrency:     3,
		TaskDelayMS:     500,
		RetryScheduleMS: []int{1000, 3000, 5000},
		MaxRounds:       3,

		Format:        "markdown",
		OutputDir:     filepath.Join(homeDir, "WeRead-Notes"),
		SaveBookFiles: true,
		SaveCovers:    false,
		CoverMaxSize:  1000,
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so a first run
// works without any configuration.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file, creating parent directories as
// needed.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
