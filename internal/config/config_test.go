package config

import (
	"math"
	"testing"

	matchuc "github.com/citymood/vibescout/internal/usecase/match"
)

func validConfig() Config {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8080},
		Catalog: CatalogConfig{Source: "file", Path: "data/catalog.json"},
	}
	cfg.ApplyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_UnknownCatalogSource(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Source = "s3"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown catalog source")
	}
}

func TestValidate_RedisSourceRequiresAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Catalog.Source = "redis"
	cfg.Catalog.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for redis source without addrs")
	}
}

func TestValidate_DisplayBandInverted(t *testing.T) {
	cfg := validConfig()
	cfg.Scoring.DisplayMin = 90
	cfg.Scoring.DisplayMax = 40
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for inverted display band")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8080}}
	cfg.ApplyDefaults()

	if cfg.Catalog.Source != "file" {
		t.Errorf("catalog source = %q, want file", cfg.Catalog.Source)
	}
	if cfg.Catalog.Key != "vibescout:catalog" {
		t.Errorf("catalog key = %q", cfg.Catalog.Key)
	}
	if cfg.HTTP.ReadTimeoutSec != 10 || cfg.HTTP.WriteTimeoutSec != 10 {
		t.Error("HTTP timeout defaults not applied")
	}
}

func TestToScoring_ZeroKeepsDefaults(t *testing.T) {
	got := ScoringConfig{}.ToScoring()
	want := matchuc.DefaultScoring()
	if got != want {
		t.Errorf("zero overrides changed calibration:\ngot:  %+v\nwant: %+v", got, want)
	}
}

func TestToScoring_Overrides(t *testing.T) {
	got := ScoringConfig{
		KeywordBoost: 0.12,
		DisplayMin:   40,
		DisplayMax:   95,
	}.ToScoring()

	if math.Abs(got.KeywordBoost-0.12) > 1e-9 {
		t.Errorf("KeywordBoost = %v", got.KeywordBoost)
	}
	if got.DisplayMin != 40 || got.DisplayMax != 95 {
		t.Errorf("display band = %d-%d", got.DisplayMin, got.DisplayMax)
	}
	// Untouched fields keep the shipped calibration.
	if got.PowerExponent != matchuc.DefaultScoring().PowerExponent {
		t.Errorf("PowerExponent = %v", got.PowerExponent)
	}
}
