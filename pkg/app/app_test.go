package app

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/decker502/galaga/pkg/embedded"
)

// TestLoadFormationConfigEmbedded 未指定路径时读取嵌入配置
func TestLoadFormationConfigEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		DefaultFormationPath: &fstest.MapFile{Data: []byte("seed: 42\ngrid:\n  period: 450\n")},
	})

	cfg, err := LoadFormationConfig("")
	if err != nil {
		t.Fatalf("LoadFormationConfig failed: %v", err)
	}
	if cfg.Seed != 42 || cfg.Grid.Period != 450 {
		t.Errorf("seed = %d, period = %d, want 42, 450", cfg.Seed, cfg.Grid.Period)
	}
	if cfg.Grid.BaseSpacing != 50 {
		t.Errorf("missing fields should keep defaults, got baseSpacing %.1f", cfg.Grid.BaseSpacing)
	}
}

// TestLoadFormationConfigFile 从文件读取配置
func TestLoadFormationConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formation.yaml")
	data := []byte("waves:\n  - {class: boss, edge: top, lane: center_right, spawnTick: 5}\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFormationConfig(path)
	if err != nil {
		t.Fatalf("LoadFormationConfig failed: %v", err)
	}
	if len(cfg.Waves) != 1 || cfg.Waves[0].Class != "boss" {
		t.Errorf("waves = %+v, want one boss", cfg.Waves)
	}
}

// TestLoadFormationConfigErrors 测试错误配置
func TestLoadFormationConfigErrors(t *testing.T) {
	if _, err := LoadFormationConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("glide:\n  step: -1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := LoadFormationConfig(path); err == nil {
		t.Error("invalid glide step should fail")
	}
}
