package diagnostics

import (
	"fmt"
	"os"

	"github.com/google/pprof/profile"
)

// MergeProfiles reads pprof profile files captured from separate runs
// (for instance, one per worker that built a portion of a bundle) and
// merges them into a single profile for aggregate analysis.
func MergeProfiles(paths ...string) (*profile.Profile, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("diagnostics: no profiles given")
	}
	profiles := make([]*profile.Profile, 0, len(paths))
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("diagnostics: open %s: %w", path, err)
		}
		p, err := profile.Parse(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("diagnostics: parse %s: %w", path, err)
		}
		profiles = append(profiles, p)
	}
	merged, err := profile.Merge(profiles)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: merge profiles: %w", err)
	}
	return merged, nil
}
