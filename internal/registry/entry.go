package registry

import "gcdashboard/internal/wire"

// Execution statuses recorded by the benchmark pipeline. Treated as opaque
// strings everywhere; these constants just name the values the pipeline
// writes today.
const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusSuccessful = "SUCCESSFUL"
	StatusFailed     = "FAILED"
)

// Attribute names of a registry item.
const (
	AttrInstanceID   = "InstanceID"
	AttrCreationDate = "CreationDate"
	AttrExecStatus   = "ExecStatus"
	AttrSite         = "Site"
	AttrS3URI        = "S3Uri"
	AttrDescription  = "Description"
	AttrStages       = "Stages"
)

// Kind tags the variant of a registry entry so callers can branch
// exhaustively instead of relying on subtype dispatch.
type Kind string

const (
	KindGeneric    Kind = "generic"
	KindSimulation Kind = "simulation"
	KindDiff       Kind = "diff"
)

// Stage is one pipeline step's recorded outcome. Constructed once from a
// decoded stage mapping and immutable thereafter. Pointer fields are nil when
// the source mapping omits the attribute; Metadata defaults to the literal
// "{}" so templates always have JSON text to show.
type Stage struct {
	Name            *string
	Completed       *bool
	Log             *string
	StartTime       *string
	EndTime         *string
	Artifacts       []string
	PublicArtifacts []string
	Metadata        string
}

// NewStage builds a stage from a decoded stage mapping. A nil or empty
// mapping yields an empty stage, never an error.
func NewStage(item wire.Item) Stage {
	s := Stage{
		Name:            item.String("Name"),
		Completed:       item.Bool("Completed"),
		Log:             item.String("Log"),
		StartTime:       item.String("StartTime"),
		EndTime:         item.String("EndTime"),
		Artifacts:       item.Strings("Artifacts"),
		PublicArtifacts: item.Strings("PublicArtifacts"),
		Metadata:        "{}",
	}
	if md := item.String("Metadata"); md != nil {
		s.Metadata = *md
	}
	return s
}

// Entry carries the fields common to every registry item. Pointer fields are
// nil when the wire item omits them (the scan projection omits S3Uri, for
// one). Classification is derived from the primary key at construction.
type Entry struct {
	Kind           Kind
	PrimaryKey     *string
	CreationDate   *string
	ExecStatus     *string
	Site           *string
	S3URI          *string
	Description    *string
	Classification Classification
}

// NewEntry decodes the shared registry fields from a scan or point-query
// item and classifies the primary key.
func NewEntry(item wire.Item) Entry {
	e := Entry{
		Kind:         KindGeneric,
		PrimaryKey:   item.String(AttrInstanceID),
		CreationDate: item.String(AttrCreationDate),
		ExecStatus:   item.String(AttrExecStatus),
		Site:         item.String(AttrSite),
		S3URI:        item.String(AttrS3URI),
		Description:  item.String(AttrDescription),
	}
	key := ""
	if e.PrimaryKey != nil {
		key = *e.PrimaryKey
	}
	e.Classification = Classify(key)
	return e
}

// EntriesFromScan builds generic entries from a scan result, preserving
// order.
func EntriesFromScan(items []wire.Item) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		entries = append(entries, NewEntry(item))
	}
	return entries
}

// SimulationEntry is a run entry with the two simulation pipeline stages.
// Stage pointers are nil when the entry was built from the scan projection,
// signifying "detail not loaded"; a point-query form always populates both,
// substituting an empty stage for a missing list position.
type SimulationEntry struct {
	Entry
	Setup         *Stage
	RunSimulation *Stage
}

// NewSimulationEntry builds a simulation entry from a full point-query item.
func NewSimulationEntry(item wire.Item) SimulationEntry {
	e := SimulationEntry{Entry: NewEntry(item)}
	e.Kind = KindSimulation
	stages := item.List(AttrStages)
	e.Setup = stageAt(stages, 0)
	e.RunSimulation = stageAt(stages, 1)
	return e
}

// NewSimulationEntryFromScan builds a simulation entry from the scan
// projection, leaving both stages unset.
func NewSimulationEntryFromScan(item wire.Item) SimulationEntry {
	e := SimulationEntry{Entry: NewEntry(item)}
	e.Kind = KindSimulation
	return e
}

// DiffEntry is a difference-plot entry with its single comparison stage. The
// named output-table links are placeholders; the pipeline publishes those
// tables under the stage's public artifacts instead of dedicated attributes.
type DiffEntry struct {
	Entry
	RunComparison *Stage

	EmissionsTotalsLink     string
	GlobalMassTropLink      string
	GlobalMassTropStratLink string
	InventoryTotalsLink     string
	OHMetricsLink           string
}

// NewDiffEntry builds a difference entry from a full point-query item.
func NewDiffEntry(item wire.Item) DiffEntry {
	e := DiffEntry{Entry: NewEntry(item)}
	e.Kind = KindDiff
	e.RunComparison = stageAt(item.List(AttrStages), 0)
	return e
}

// NewDiffEntryFromScan builds a difference entry from the scan projection,
// leaving the stage unset.
func NewDiffEntryFromScan(item wire.Item) DiffEntry {
	e := DiffEntry{Entry: NewEntry(item)}
	e.Kind = KindDiff
	return e
}

// stageAt reads the stage mapping at the given position of the Stages list.
// A position past the end of the list yields an empty stage.
func stageAt(stages []wire.Value, idx int) *Stage {
	var item wire.Item
	if idx < len(stages) {
		item = stages[idx].AsItem()
	}
	s := NewStage(item)
	return &s
}
