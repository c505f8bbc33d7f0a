// Package config provides configuration management for weread-exporter.
//
// This package handles:
//   - Loading and saving settings from JSON files
//   - Default configuration values
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// 3 concurrent exports, 500ms pacing
//	// retry schedule 1s/3s/5s over up to 3 rounds
//	// markdown output to ~/WeRead-Notes
//
// # Loading from File
//
//	settings, err := config.Load("/path/to/config.json")
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// # Configuration Options
//
// Settings includes options for:
//   - Account identity (user vid, session cookie)
//   - Concurrency, pacing and the retry schedule
//   - Output format, directory and per-book files
//   - Cover image download and resizing
//   - Clipboard output
package config
