package registry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gcdashboard/internal/wire"
)

var (
	// ErrUnrecognizedCadence reports a reference id that names none of the
	// known sampling cadences.
	ErrUnrecognizedCadence = errors.New("registry: unrecognized cadence in reference id")
	// ErrUnknownSite reports an execution site with no configured storage
	// root.
	ErrUnknownSite = errors.New("registry: unknown execution site")
)

// Storage roots per execution site.
var siteStorageRoots = map[string]string{
	"AWS":   "s3://benchmarks-cloud",
	"WUSTL": "s3://benchmarks-wustl",
}

// NewDiffRequest builds the wire item for a new difference-plot run
// comparing the ref and dev simulations. The cadence is taken from the ref
// id, the storage root from the execution site; both fail fast rather than
// produce a malformed item. The result carries status PENDING, the calendar
// date of now, and an empty stage list.
func NewDiffRequest(refID, devID, site string, now time.Time) (wire.Item, error) {
	var cadence string
	switch {
	case strings.Contains(refID, "-1Hr-"):
		cadence = "1Hr"
	case strings.Contains(refID, "-1Day-"):
		cadence = "1Day"
	case strings.Contains(refID, "-1Mon-"):
		cadence = "1Mon"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedCadence, refID)
	}
	root, ok := siteStorageRoots[site]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSite, site)
	}
	key := "diff-" + refID + "-" + devID
	return wire.EncodeItem(map[string]any{
		AttrInstanceID:   key,
		AttrCreationDate: now.Format("2006-01-02"),
		AttrExecStatus:   StatusPending,
		AttrSite:         site,
		AttrS3URI:        root + "/diff-plots/" + cadence + "/" + key,
		AttrDescription:  fmt.Sprintf("%s Benchmark plot creation (ref: '%s'; dev:'%s')", cadence, refID, devID),
		AttrStages:       []any{},
	})
}
