// Package registry holds the typed record model for the benchmark registry:
// primary-key classification, run entries with their pipeline stages, and the
// builder for new difference-plot requests. Everything here is pure and
// operates on in-memory values; storage and rendering live elsewhere.
package registry

import (
	"regexp"
	"strings"
)

// Classification labels and the API routes that serve each kind of entry.
const (
	LabelGCHPSimulation      = "GCHP Simulation"
	LabelGCClassicSimulation = "GC-Classic Simulation"
	LabelDifferencePlots     = "Difference Plots"
	LabelUnknown             = "Unknown"

	APISimulation = "simulation"
	APIDifference = "difference"
)

// Classification is derived from a primary key, never stored. API is empty
// for keys that no detail route can serve; CodeURL and CommitID are empty
// when the key carries no recognizable version or commit reference.
type Classification struct {
	Label    string
	API      string
	CodeURL  string
	CommitID string
}

const (
	semverPattern     = `(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)(?:-((?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*)(?:\.(?:0|[1-9]\d*|\d*[a-zA-Z-][0-9a-zA-Z-]*))*))?(?:\+([0-9a-zA-Z-]+(?:\.[0-9a-zA-Z-]+)*))?`
	commitHashPattern = `[0-9a-f]{7}`
	simulationPattern = `(gcc|gchp)-((2x25|2x2\.5|4x5|c24|c48|c90|c180)-)?(1Mon|1Hr)-(` + semverPattern + `|` + commitHashPattern + `)(\.bd)?`
)

var (
	simulationRE = regexp.MustCompile(`^` + simulationPattern + `$`)
	diffRE       = regexp.MustCompile(`^diff-` + simulationPattern + `-` + simulationPattern + `$`)
	semverRE     = regexp.MustCompile(semverPattern)
	commitHashRE = regexp.MustCompile(commitHashPattern)
)

// Classify maps a primary key to its classification. It is total: input that
// matches neither the simulation nor the difference grammar yields
// LabelUnknown, never an error.
func Classify(primaryKey string) Classification {
	switch {
	case simulationRE.MatchString(primaryKey):
		c := Classification{Label: LabelGCClassicSimulation, API: APISimulation}
		repo := "GCClassic"
		if strings.HasPrefix(primaryKey, "gchp") {
			c.Label = LabelGCHPSimulation
			repo = "GCHP"
		}
		if tag := semverRE.FindString(primaryKey); tag != "" {
			c.CommitID = strings.TrimSuffix(tag, ".bd") // old entries carry the marker inside the match
			c.CodeURL = "https://github.com/geoschem/" + repo + "/tree/" + c.CommitID
		}
		// The hash search runs unconditionally after the semver search; when
		// both match, the hash result is the one kept.
		if hash := commitHashRE.FindString(primaryKey); hash != "" {
			c.CommitID = strings.TrimSuffix(hash, ".bd")
			c.CodeURL = "https://github.com/geoschem/" + repo + "/commit/" + c.CommitID
		}
		return c
	case diffRE.MatchString(primaryKey):
		return Classification{Label: LabelDifferencePlots, API: APIDifference}
	default:
		return Classification{Label: LabelUnknown}
	}
}
