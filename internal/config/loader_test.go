package config

import (
	"path/filepath"
	"testing"

	"github.com/oh-yeah-zzy/PhantomHand/internal/models"
)

func TestLoadYAMLOrDefaultMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	got, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("LoadYAMLOrDefault() error = %v", err)
	}
	want := models.NewSettings()
	if got.Worker.Port != want.Worker.Port {
		t.Errorf("default worker port = %d, want %d", got.Worker.Port, want.Worker.Port)
	}
}

func TestLoadYAMLOrDefaultExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	saved := models.NewSettings()
	saved.Worker.Port = 9000
	if err := SaveYAML(path, saved); err != nil {
		t.Fatalf("SaveYAML() error = %v", err)
	}

	got, err := LoadYAMLOrDefault(path, models.NewSettings)
	if err != nil {
		t.Fatalf("LoadYAMLOrDefault() error = %v", err)
	}
	if got.Worker.Port != 9000 {
		t.Errorf("loaded worker port = %d, want 9000", got.Worker.Port)
	}
}
