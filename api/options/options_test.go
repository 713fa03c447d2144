package options_test

import (
	"testing"

	"github.com/statlang/statc/api/options"
)

func TestNewAppliesOptionsInOrder(t *testing.T) {
	cfg := options.New(
		options.WithModelName("eight_schools"),
		options.WithIncludePath("/usr/local/stan"),
		options.WithIncludePath("./include"),
		options.WithOptimizationLevel(0),
		options.WithTargetBackend("reference"),
		options.WithDebug(true),
	)
	if cfg.ModelName != "eight_schools" {
		t.Errorf("ModelName = %q, want eight_schools", cfg.ModelName)
	}
	if want := []string{"/usr/local/stan", "./include"}; !equalSlices(cfg.IncludePaths, want) {
		t.Errorf("IncludePaths = %v, want %v", cfg.IncludePaths, want)
	}
	if cfg.OptimizationLevel != 0 {
		t.Errorf("OptimizationLevel = %d, want 0", cfg.OptimizationLevel)
	}
	if cfg.TargetBackend != "reference" {
		t.Errorf("TargetBackend = %q, want reference", cfg.TargetBackend)
	}
	if !cfg.Debug {
		t.Errorf("Debug = false, want true")
	}
}

func TestNewDefaultsOptimizationLevelToOne(t *testing.T) {
	cfg := options.New()
	if cfg.OptimizationLevel != 1 {
		t.Errorf("default OptimizationLevel = %d, want 1", cfg.OptimizationLevel)
	}
}

func equalSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
