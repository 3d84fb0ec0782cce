package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gcdashboard/internal/registry"
	"gcdashboard/internal/regstore"
	"gcdashboard/internal/wire"
)

func seedEntry(t *testing.T, store regstore.Store, key, date, status string) {
	t.Helper()
	item, err := wire.EncodeItem(map[string]any{
		registry.AttrInstanceID:   key,
		registry.AttrCreationDate: date,
		registry.AttrExecStatus:   status,
		registry.AttrSite:         "AWS",
		registry.AttrDescription:  "entry " + key,
		registry.AttrS3URI:        "s3://benchmarks-cloud/benchmarks/" + key,
		registry.AttrStages: []any{
			map[string]any{
				"Name":            "SetupRunDirectory",
				"Completed":       true,
				"Log":             "http://s3.amazonaws.com/benchmarks-cloud/" + key + "/SetupRunDirectory.txt",
				"StartTime":       "2022-03-28T17:45:04+0000",
				"EndTime":         "2022-03-28T18:00:15+0000",
				"Artifacts":       []any{"s3://benchmarks-cloud/" + key + "/SetupRunDirectory_RunDirectory.tar.gz"},
				"PublicArtifacts": []any{},
				"Metadata":        "{}",
			},
			map[string]any{
				"Name":            "RunGCHP",
				"Completed":       false,
				"Artifacts":       []any{},
				"PublicArtifacts": []any{"http://s3.amazonaws.com/benchmarks-cloud/" + key + "/table.txt"},
			},
		},
	})
	if err != nil {
		t.Fatalf("encode seed: %v", err)
	}
	if err := store.Put(context.Background(), item); err != nil {
		t.Fatalf("seed put: %v", err)
	}
}

func newTestHandler(t *testing.T) (*Handler, regstore.Store) {
	t.Helper()
	store := regstore.NewMemory()
	h := NewHandler(store)
	h.now = func() time.Time {
		return time.Date(2022, 4, 4, 12, 0, 0, 0, time.UTC)
	}
	return h, store
}

func TestDashboardPage(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntry(t, store, "gchp-1Mon-13.4.0-rc.3.bd", "2022-03-28", registry.StatusSuccessful)
	seedEntry(t, store, "gcc-1Hr-f9a901a.bd", "2022-03-24", registry.StatusFailed)
	seedEntry(t, store, "diff-gcc-1Hr-3f70328.bd-gcc-1Hr-3f70328.bd", "2022-04-04", registry.StatusInProgress)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "text/html") {
		t.Fatalf("content type = %q", got)
	}
	body := rec.Body.String()

	for _, want := range []string{
		"<h2>Difference Plots</h2>",
		"<h2>GCHP Simulations</h2>",
		"<h2>GC-Classic Simulations</h2>",
		`href="simulation?primary_key=gchp-1Mon-13.4.0-rc.3.bd"`,
		`href="difference?primary_key=diff-gcc-1Hr-3f70328.bd-gcc-1Hr-3f70328.bd"`,
		`href="https://github.com/geoschem/GCClassic/commit/f9a901a"`,
		`<span style="color:green">&#9989; SUCCESSFUL</span>`,
		`<span style="color:red">&#10060; FAILED</span>`,
		`<span style="color:orange">&#8987; IN_PROGRESS</span>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("dashboard missing %q", want)
		}
	}
	if strings.Contains(body, "s3://benchmarks-cloud/benchmarks/") {
		t.Errorf("dashboard must not leak the storage uri (scan projection)")
	}
}

func TestDashboardSortsNewestFirst(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntry(t, store, "gcc-1Hr-1111111", "2022-01-01", registry.StatusSuccessful)
	seedEntry(t, store, "gcc-1Hr-2222222", "2022-06-01", registry.StatusSuccessful)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()

	newer := strings.Index(body, "gcc-1Hr-2222222")
	older := strings.Index(body, "gcc-1Hr-1111111")
	if newer < 0 || older < 0 {
		t.Fatalf("rows missing from dashboard")
	}
	if newer > older {
		t.Fatalf("entries not sorted newest first")
	}
}

func TestSimulationPage(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntry(t, store, "gchp-1Mon-13.4.0-rc.3.bd", "2022-03-28", registry.StatusSuccessful)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulation?primary_key=gchp-1Mon-13.4.0-rc.3.bd", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{
		"gchp-1Mon-13.4.0-rc.3.bd",
		"Setup Run Directory",
		"Run Simulation",
		"SetupRunDirectory.txt",
		"SetupRunDirectory_RunDirectory.tar.gz",
		"s3://benchmarks-cloud/benchmarks/gchp-1Mon-13.4.0-rc.3.bd",
		"<td>true</td>",
		"<td>false</td>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("simulation page missing %q", want)
		}
	}
}

func TestSimulationPageErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulation", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("missing primary_key: status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/simulation?primary_key=gcc-1Hr-absent0", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("absent key: status = %d", rec.Code)
	}
}

func TestDifferencePage(t *testing.T) {
	h, store := newTestHandler(t)
	seedEntry(t, store, "diff-gcc-1Hr-3f70328.bd-gcc-1Hr-3f70328.bd", "2022-04-04", registry.StatusSuccessful)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
		"/difference?primary_key=diff-gcc-1Hr-3f70328.bd-gcc-1Hr-3f70328.bd", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "GCPy Output") {
		t.Errorf("difference page missing comparison stage section")
	}
}

func TestCreateDiffRequest(t *testing.T) {
	h, store := newTestHandler(t)

	payload := `{"ref":"gcc-1Hr-3f70328.bd","dev":"gcc-1Hr-483b659","site":"AWS"}`
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/diff-requests", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		InstanceID string `json:"instance_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	wantKey := "diff-gcc-1Hr-3f70328.bd-gcc-1Hr-483b659"
	if resp.InstanceID != wantKey {
		t.Fatalf("instance_id = %q, want %q", resp.InstanceID, wantKey)
	}

	items, err := store.BatchGet(context.Background(), []string{wantKey})
	if err != nil || len(items) != 1 {
		t.Fatalf("stored item not found: %v %d", err, len(items))
	}
	if status := items[0].String(registry.AttrExecStatus); status == nil || *status != registry.StatusPending {
		t.Fatalf("ExecStatus = %v", status)
	}
	if date := items[0].String(registry.AttrCreationDate); date == nil || *date != "2022-04-04" {
		t.Fatalf("CreationDate = %v", date)
	}
	if uri := items[0].String(registry.AttrS3URI); uri == nil ||
		*uri != "s3://benchmarks-cloud/diff-plots/1Hr/"+wantKey {
		t.Fatalf("S3Uri = %v", uri)
	}
}

func TestCreateDiffRequestErrors(t *testing.T) {
	h, _ := newTestHandler(t)

	cases := []struct {
		name    string
		payload string
		status  int
	}{
		{"unknown site", `{"ref":"gcc-1Hr-3f70328","dev":"gcc-1Hr-483b659","site":"Mars"}`, http.StatusBadRequest},
		{"unrecognized cadence", `{"ref":"gcc-1Week-3f70328","dev":"gcc-1Hr-483b659","site":"AWS"}`, http.StatusBadRequest},
		{"missing fields", `{"ref":"gcc-1Hr-3f70328"}`, http.StatusBadRequest},
		{"bad json", `{`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/diff-requests", strings.NewReader(tc.payload)))
		if rec.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.status)
		}
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/diff-requests", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET: status = %d, want 405", rec.Code)
	}
}

func TestServeMuxMetricsEndpoint(t *testing.T) {
	h, _ := newTestHandler(t)
	mux := NewServeMux(h)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "gcdash_http_requests_total") {
		t.Fatalf("metrics output missing request counter")
	}
}
