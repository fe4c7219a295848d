package appmanager

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServiceSequence_SortsByStartOrder(t *testing.T) {
	yaml := `
services:
  - name: gateway
    start_order: 7
    config:
      port: 8081
  - name: logger
    start_order: 1
    config:
      max_file_mb: 20
  - name: master
    start_order: 2
    config:
      port: 2143
`
	path := filepath.Join(t.TempDir(), "services.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}

	configs, err := LoadServiceSequence(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(configs) != 3 {
		t.Fatalf("expected 3 services, got %d", len(configs))
	}
	want := []string{"logger", "master", "gateway"}
	for i, name := range want {
		if configs[i].Name != name {
			t.Errorf("configs[%d].Name = %s, want %s", i, configs[i].Name, name)
		}
	}
	if configs[0].Config["max_file_mb"] != 20 {
		t.Errorf("logger config max_file_mb = %v, want 20", configs[0].Config["max_file_mb"])
	}
}

func TestLoadServiceSequence_MissingFile(t *testing.T) {
	if _, err := LoadServiceSequence("does-not-exist.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
