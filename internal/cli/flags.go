package cli

import "trp/internal/config"

// Flags holds command-line flags
type Flags struct {
	EventsFile string
	ReportDir  string
	Progress   bool
	History    bool
	Filter     string
	Limit      int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		EventsFile: f.EventsFile,
		ReportDir:  f.ReportDir,
		Progress:   f.Progress,
		History:    f.History,
		Filter:     f.Filter,
		Limit:      f.Limit,
	}
}
