package config

const (
	// DefaultProjectPath is the default project root.
	DefaultProjectPath = "."
	// DefaultOutputJSONFile is the default coverage report file name.
	DefaultOutputJSONFile = "coverage.json"
	// DefaultOutputDir is the default directory for tool output.
	DefaultOutputDir = ".stepcov"
	// DefaultHistoryDBFile is the default coverage history database name.
	DefaultHistoryDBFile = "history.db"
	// DefaultWorkers is the default number of parse workers.
	DefaultWorkers = 4
)

// DefaultFeatureDirs are the conventional locations of feature files.
// Directories that do not exist are simply skipped during scanning.
var DefaultFeatureDirs = []string{
	"features",
	"tests/features",
	"spec/features",
	"test/features",
}

// DefaultFeatureGlobs match feature files by base name.
var DefaultFeatureGlobs = []string{
	"*.feature",
}

// DefaultStepDirs are the conventional locations of step definition files.
var DefaultStepDirs = []string{
	"features/steps",
	"features/step_definitions",
	"tests/steps",
	"test/steps",
	"steps",
}

// DefaultStepGlobs match step definition files by base name.
var DefaultStepGlobs = []string{
	"*.steps.js",
	"*.steps.ts",
	"*_steps.js",
	"*_steps.ts",
	"*_steps.go",
	"*.steps.go",
}

// DefaultSkipDirs are never descended into while scanning.
var DefaultSkipDirs = []string{
	"node_modules",
	"vendor",
	"dist",
	"build",
	"coverage",
	"storage",
}
