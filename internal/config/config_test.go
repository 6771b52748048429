package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.RedisURL == "" {
		t.Error("expected default redis url")
	}
	if cfg.Namespace != "famboard" {
		t.Errorf("expected default namespace famboard, got %s", cfg.Namespace)
	}
	if cfg.SevereThreshold != -50 {
		t.Errorf("expected severe threshold -50, got %d", cfg.SevereThreshold)
	}
	if cfg.ArchiveDatabaseURL != "" {
		t.Errorf("archive should be disabled by default, got %s", cfg.ArchiveDatabaseURL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FAMBOARD_NAMESPACE", "testing-ns")
	t.Setenv("FAMBOARD_SEVERE_THRESHOLD", "-30")
	t.Setenv("FAMBOARD_SEVERE_MARKER", "cheat")

	cfg := Load()
	if cfg.Namespace != "testing-ns" {
		t.Errorf("expected testing-ns, got %s", cfg.Namespace)
	}
	if cfg.SevereThreshold != -30 {
		t.Errorf("expected -30, got %d", cfg.SevereThreshold)
	}
	if cfg.SevereMarker != "cheat" {
		t.Errorf("expected cheat, got %s", cfg.SevereMarker)
	}
}

func TestGetenvIntBadValue(t *testing.T) {
	t.Setenv("FAMBOARD_SEVERE_THRESHOLD", "not-a-number")
	cfg := Load()
	if cfg.SevereThreshold != -50 {
		t.Errorf("bad value should fall back to -50, got %d", cfg.SevereThreshold)
	}
}
