package cli

import "stepcov/internal/config"

// Flags holds command-line flags
type Flags struct {
	ProjectPath string
	FeaturePath string
	StepPath    string
	NameFilter  string
	Workers     int
	Strict      bool
	JSON        bool
	Details     bool
	FailUnder   float64
	Steps       bool
	Flat        bool
	Out         string
	Limit       int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		ProjectPath: f.ProjectPath,
		FeaturePath: f.FeaturePath,
		StepPath:    f.StepPath,
		NameFilter:  f.NameFilter,
		Workers:     f.Workers,
		Strict:      f.Strict,
		JSON:        f.JSON,
		Details:     f.Details,
		FailUnder:   f.FailUnder,
		Steps:       f.Steps,
		Flat:        f.Flat,
		Out:         f.Out,
		Limit:       f.Limit,
	}
}
