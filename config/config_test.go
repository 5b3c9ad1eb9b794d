package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/kochimetro/induction/core/planner"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
planner:
  service_target: 15
  standby_target: 6
  planning_date: "2025-09-16"
http:
  addr: ":9999"
metrics:
  prometheus_enabled: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.ServiceTarget != 15 || cfg.Planner.StandbyTarget != 6 {
		t.Fatalf("unexpected planner config: %+v", cfg.Planner)
	}
	if cfg.Planner.CleaningRankBy != planner.CleaningMileageAscending {
		t.Fatalf("cleaning policy default missing: %q", cfg.Planner.CleaningRankBy)
	}
	if cfg.HTTP.Addr != ":9999" {
		t.Fatalf("unexpected http addr %q", cfg.HTTP.Addr)
	}
	if !cfg.Metrics.PrometheusEnabled || cfg.Metrics.PrometheusAddr != ":9090" {
		t.Fatalf("unexpected metrics config: %+v", cfg.Metrics)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", "planner:\n  service_target: 5\n")
	t.Setenv("KMI_PLANNER__SERVICE_TARGET", "9")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.ServiceTarget != 9 {
		t.Fatalf("env override ignored, got %d", cfg.Planner.ServiceTarget)
	}
}

func TestLoadInvalidTargets(t *testing.T) {
	path := writeConfig(t, "config.yaml", "planner:\n  service_target: -3\n")
	_, err := Load(path)
	var cerr planner.ConfigError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigError, got %v", err)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "x = 1")
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
