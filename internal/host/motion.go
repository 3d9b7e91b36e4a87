package host

import "strings"

var reducedMotionVars = []string{"PREFERS_REDUCED_MOTION", "REDUCED_MOTION"}

// ReducedMotion reports whether animation should be suppressed, either by
// explicit flag or by one of the environment variables above.
func ReducedMotion(flag bool, lookup func(string) (string, bool)) bool {
	if flag {
		return true
	}
	if lookup == nil {
		return false
	}
	for _, name := range reducedMotionVars {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "reduce":
			return true
		}
	}
	return false
}
