package preflight

import (
	"platter/internal/config"
	"platter/internal/encoding"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDevice(cfg.Drive.Device),
	}

	var requirements []Requirement
	// WAV output copies the extracted audio directly and never invokes
	// ffmpeg.
	if cfg.Encoding.Format != string(encoding.FormatWAV) {
		requirements = append(requirements, Requirement{
			Name:        "FFmpeg",
			Command:     cfg.Encoding.FFmpegBinary,
			Description: "required for encoding",
		})
	}
	if cfg.Drive.ReadCDText {
		requirements = append(requirements, Requirement{
			Name:        "cd-info",
			Command:     cfg.Drive.CDInfoBinary,
			Description: "required for CD-Text; disable read_cdtext to skip",
			Optional:    true,
		})
	}
	if cfg.Drive.EjectAfterRip {
		requirements = append(requirements, Requirement{
			Name:        "eject",
			Command:     "eject",
			Description: "required for eject_after_rip",
			Optional:    true,
		})
	}
	results = append(results, CheckBinaries(requirements)...)

	return results
}

// AllPassed reports whether every required check succeeded. Optional
// checks never block a rip.
func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Optional {
			return false
		}
	}
	return true
}
