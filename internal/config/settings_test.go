package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	if s.Concurrency != 3 {
		t.Errorf("Concurrency = %d, want 3", s.Concurrency)
	}
	if s.TaskDelayMS != 500 {
		t.Errorf("TaskDelayMS = %d, want 500", s.TaskDelayMS)
	}
	if len(s.RetryScheduleMS) != 3 || s.RetryScheduleMS[0] != 1000 {
		t.Errorf("RetryScheduleMS = %v, want [1000 3000 5000]", s.RetryScheduleMS)
	}
	if s.MaxRounds != 3 {
		t.Errorf("MaxRounds = %d, want 3", s.MaxRounds)
	}
	if s.Format != "markdown" {
		t.Errorf("Format = %q, want markdown", s.Format)
	}
	if !s.SaveBookFiles {
		t.Error("SaveBookFiles should default to true")
	}
	if s.SaveCovers {
		t.Error("SaveCovers should default to false")
	}
	if s.OutputDir == "" {
		t.Error("OutputDir should have a default")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Concurrency != 3 || s.Format != "markdown" {
		t.Errorf("missing file should yield defaults, got %+v", s)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"user_vid": "12345", "concurrency": 5, "format": "csv"}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.UserVid != "12345" || s.Concurrency != 5 || s.Format != "csv" {
		t.Errorf("overrides not applied: %+v", s)
	}
	// Fields absent from the file keep their defaults.
	if s.TaskDelayMS != 500 || s.MaxRounds != 3 {
		t.Errorf("defaults lost for unset fields: %+v", s)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid JSON should fail")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "config.json")

	s := DefaultSettings()
	s.UserVid = "98765"
	s.RetryScheduleMS = []int{100, 200}
	if err := s.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.UserVid != "98765" {
		t.Errorf("UserVid = %q, want 98765", loaded.UserVid)
	}
	if len(loaded.RetryScheduleMS) != 2 || loaded.RetryScheduleMS[1] != 200 {
		t.Errorf("RetryScheduleMS = %v, want [100 200]", loaded.RetryScheduleMS)
	}
}
