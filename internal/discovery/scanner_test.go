package discovery

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFiles(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"features/cart.feature",
		"features/checkout.feature",
		"features/notes.txt",
		"features/nested/login.feature",
		"tests/features/admin.feature",
	)

	scanner := NewScanner(nil)
	files, err := scanner.Scan(root, []string{"features", "tests/features"}, []string{"*.feature"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		filepath.Join(root, "features/cart.feature"),
		filepath.Join(root, "features/checkout.feature"),
		filepath.Join(root, "features/nested/login.feature"),
		filepath.Join(root, "tests/features/admin.feature"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("expected %v, got %v", want, files)
	}
}

func TestScanner_Scan_MissingDirSkipped(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "features/cart.feature")

	files, err := NewScanner(nil).Scan(root, []string{"features", "spec/features", "no/such/dir"}, []string{"*.feature"})
	if err != nil {
		t.Fatalf("expected missing directories to be skipped, got error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file, got %v", files)
	}
}

func TestScanner_Scan_SkipDirs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"features/cart.feature",
		"features/node_modules/dep.feature",
		"features/.hidden/secret.feature",
	)

	files, err := NewScanner([]string{"node_modules"}).Scan(root, []string{"features"}, []string{"*.feature"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 || filepath.Base(files[0]) != "cart.feature" {
		t.Errorf("expected only cart.feature, got %v", files)
	}
}

func TestScanner_Scan_OverlappingDirsDeduped(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "features/cart.feature")

	files, err := NewScanner(nil).Scan(root, []string{"features", "features"}, []string{"*.feature"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("expected deduplicated result, got %v", files)
	}
}

func TestScanner_Scan_MultipleGlobs(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"steps/cart_steps.js",
		"steps/auth.steps.ts",
		"steps/helper.js",
	)

	files, err := NewScanner(nil).Scan(root, []string{"steps"}, []string{"*_steps.js", "*.steps.ts"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("expected 2 step files, got %v", files)
	}
}

func TestFilter_FilterByName(t *testing.T) {
	files := []string{
		"features/login.feature",
		"features/logout.feature",
		"features/checkout.feature",
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{
			name:     "empty pattern keeps all",
			pattern:  "",
			expected: files,
		},
		{
			name:     "exact base name",
			pattern:  "checkout.feature",
			expected: []string{"features/checkout.feature"},
		},
		{
			name:     "wildcard pattern",
			pattern:  "log*.feature",
			expected: []string{"features/login.feature", "features/logout.feature"},
		},
		{
			name:     "substring fallback",
			pattern:  "check",
			expected: []string{"features/checkout.feature"},
		},
		{
			name:     "loose wildcard parts",
			pattern:  "*login*feature*",
			expected: []string{"features/login.feature"},
		},
		{
			name:     "no match",
			pattern:  "payments",
			expected: nil,
		},
	}

	f := NewFilter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FilterByName(files, tt.pattern); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}
