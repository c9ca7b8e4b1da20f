package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestNew_Defaults(t *testing.T) {
	cfg := New()

	if cfg.ProjectPath != DefaultProjectPath {
		t.Errorf("expected project path %q, got %q", DefaultProjectPath, cfg.ProjectPath)
	}
	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected %d workers, got %d", DefaultWorkers, cfg.Workers)
	}
	if cfg.OutputDir != DefaultOutputDir || cfg.OutputJSONFile != DefaultOutputJSONFile {
		t.Errorf("unexpected output settings: %q %q", cfg.OutputDir, cfg.OutputJSONFile)
	}
	if !reflect.DeepEqual(cfg.FeatureDirs, DefaultFeatureDirs) {
		t.Errorf("unexpected feature dirs: %v", cfg.FeatureDirs)
	}
	if cfg.Strict {
		t.Error("strict must default to off")
	}

	// the slices must be copies, not aliases of the default vars
	cfg.FeatureDirs[0] = "mutated"
	if DefaultFeatureDirs[0] == "mutated" {
		t.Error("New leaked the default slice")
	}
	DefaultFeatureDirs[0] = "features"
}

func TestLoad_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg := Load(Flags{ProjectPath: dir, Workers: 8, Strict: true})

	if cfg.ProjectPath != dir {
		t.Errorf("expected project path %q, got %q", dir, cfg.ProjectPath)
	}
	if cfg.Workers != 8 {
		t.Errorf("expected 8 workers, got %d", cfg.Workers)
	}
	if !cfg.Strict {
		t.Error("expected strict mode on")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("STEPCOV_FEATURE_DIRS", "acceptance, e2e/features")
	t.Setenv("STEPCOV_STEP_DIRS", "acceptance/steps")
	t.Setenv("STEPCOV_OUTPUT_DIR", ".coverage")
	t.Setenv("STEPCOV_WORKERS", "6")
	t.Setenv("STEPCOV_STRICT", "true")

	cfg := New()
	cfg.ProjectPath = t.TempDir()
	cfg.ApplyEnv()

	if !reflect.DeepEqual(cfg.FeatureDirs, []string{"acceptance", "e2e/features"}) {
		t.Errorf("unexpected feature dirs: %v", cfg.FeatureDirs)
	}
	if !reflect.DeepEqual(cfg.StepDirs, []string{"acceptance/steps"}) {
		t.Errorf("unexpected step dirs: %v", cfg.StepDirs)
	}
	if cfg.OutputDir != ".coverage" {
		t.Errorf("unexpected output dir: %q", cfg.OutputDir)
	}
	if cfg.Workers != 6 {
		t.Errorf("expected 6 workers, got %d", cfg.Workers)
	}
	if !cfg.Strict {
		t.Error("expected strict mode on")
	}
}

func TestApplyEnv_InvalidWorkers(t *testing.T) {
	t.Setenv("STEPCOV_WORKERS", "banana")

	cfg := New()
	cfg.ProjectPath = t.TempDir()
	cfg.ApplyEnv()
	if cfg.Workers != DefaultWorkers {
		t.Errorf("invalid worker count must keep the default, got %d", cfg.Workers)
	}
}

func TestApplyEnv_DotEnvFile(t *testing.T) {
	// godotenv never overrides variables already set in the environment,
	// so make sure this one is absent.
	os.Unsetenv("STEPCOV_OUTPUT_DIR")

	dir := t.TempDir()
	env := "STEPCOV_OUTPUT_DIR=.reports\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("STEPCOV_OUTPUT_DIR") })

	cfg := New()
	cfg.ProjectPath = dir
	cfg.ApplyEnv()
	if cfg.OutputDir != ".reports" {
		t.Errorf("expected .env override, got %q", cfg.OutputDir)
	}
}

func TestGetFeatureDirs(t *testing.T) {
	cfg := New()
	if !reflect.DeepEqual(cfg.GetFeatureDirs(), cfg.FeatureDirs) {
		t.Errorf("expected configured dirs without a flag")
	}

	cfg.Flags.FeaturePath = "acceptance"
	if !reflect.DeepEqual(cfg.GetFeatureDirs(), []string{"acceptance"}) {
		t.Errorf("expected the flag to win, got %v", cfg.GetFeatureDirs())
	}
}

func TestGetStepDirs(t *testing.T) {
	cfg := New()
	cfg.Flags.StepPath = "acceptance/steps"
	if !reflect.DeepEqual(cfg.GetStepDirs(), []string{"acceptance/steps"}) {
		t.Errorf("expected the flag to win, got %v", cfg.GetStepDirs())
	}
}

func TestGetOutputPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	got := cfg.GetOutputPath()
	if !filepath.IsAbs(got) {
		t.Errorf("expected absolute path, got %q", got)
	}
	want := filepath.Join(cfg.ProjectPath, DefaultOutputDir, DefaultOutputJSONFile)
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestGetHistoryPath(t *testing.T) {
	cfg := New()
	cfg.ProjectPath = t.TempDir()

	want := filepath.Join(cfg.ProjectPath, DefaultOutputDir, DefaultHistoryDBFile)
	if got := cfg.GetHistoryPath(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in       string
		expected []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b ", []string{"a", "b"}},
		{"a,,b", []string{"a", "b"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("splitList(%q) = %v, expected %v", tt.in, got, tt.expected)
		}
	}
}
