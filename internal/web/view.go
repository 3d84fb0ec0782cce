package web

import (
	"context"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"gcdashboard/internal/registry"
)

// View models handed to the page templates. All fields are plain strings;
// absent wire attributes render as empty cells.

type entryRow struct {
	PrimaryKey string
	DetailURL  string // empty when no detail route serves this key
	Date       string
	Status     string
	Site       string
	CodeURL    string
	CommitID   string
}

type dashboardData struct {
	DiffRows      []entryRow
	GCHPRows      []entryRow
	GCClassicRows []entryRow
}

type entryFields struct {
	PrimaryKey   string
	CreationDate string
	ExecStatus   string
	Site         string
	S3URI        string
	Description  string
}

type link struct {
	Href string
	Text string
}

type stageView struct {
	Present         bool
	Completed       string
	Log             string
	StartTime       string
	EndTime         string
	Artifacts       []link
	PublicArtifacts []link
	Metadata        string
}

type simulationData struct {
	Entry         entryFields
	Setup         stageView
	RunSimulation stageView
}

type differenceData struct {
	Entry         entryFields
	RunComparison stageView
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// newDashboardData sorts entries newest first and groups them into the three
// dashboard tables by classification.
func newDashboardData(entries []registry.Entry) dashboardData {
	sorted := make([]registry.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return deref(sorted[i].CreationDate) > deref(sorted[j].CreationDate)
	})

	var data dashboardData
	for _, entry := range sorted {
		row := entryRow{
			PrimaryKey: deref(entry.PrimaryKey),
			Date:       deref(entry.CreationDate),
			Status:     deref(entry.ExecStatus),
			Site:       deref(entry.Site),
			CodeURL:    entry.Classification.CodeURL,
			CommitID:   entry.Classification.CommitID,
		}
		if entry.Classification.API != "" {
			row.DetailURL = entry.Classification.API + "?primary_key=" + url.QueryEscape(row.PrimaryKey)
		}
		switch entry.Classification.Label {
		case registry.LabelDifferencePlots:
			data.DiffRows = append(data.DiffRows, row)
		case registry.LabelGCHPSimulation:
			data.GCHPRows = append(data.GCHPRows, row)
		case registry.LabelGCClassicSimulation:
			data.GCClassicRows = append(data.GCClassicRows, row)
		}
	}
	return data
}

func newEntryFields(e registry.Entry) entryFields {
	return entryFields{
		PrimaryKey:   deref(e.PrimaryKey),
		CreationDate: deref(e.CreationDate),
		ExecStatus:   deref(e.ExecStatus),
		Site:         deref(e.Site),
		S3URI:        deref(e.S3URI),
		Description:  deref(e.Description),
	}
}

// newStageView flattens a stage for rendering. Internal artifacts are
// private s3:// locations; when a presigner is configured they become
// time-limited links, otherwise they render as plain text exactly like the
// registry stores them.
func (h *Handler) newStageView(ctx context.Context, stage *registry.Stage) stageView {
	if stage == nil {
		return stageView{}
	}
	v := stageView{
		Present:   true,
		Log:       deref(stage.Log),
		StartTime: deref(stage.StartTime),
		EndTime:   deref(stage.EndTime),
		Metadata:  stage.Metadata,
	}
	if stage.Completed != nil {
		v.Completed = strconv.FormatBool(*stage.Completed)
	}
	for _, artifact := range stage.PublicArtifacts {
		v.PublicArtifacts = append(v.PublicArtifacts, link{Href: artifact, Text: artifact})
	}
	for _, artifact := range stage.Artifacts {
		l := link{Text: artifact}
		if h.Presigner != nil && strings.HasPrefix(artifact, "s3://") {
			if signed, err := h.Presigner.PresignGet(ctx, artifact); err == nil {
				l.Href = signed
			}
		}
		v.Artifacts = append(v.Artifacts, l)
	}
	return v
}
