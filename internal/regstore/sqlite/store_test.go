package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"gcdashboard/internal/registry"
	"gcdashboard/internal/wire"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(context.Background(), filepath.Join(t.TempDir(), "registry.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.DB().Close() })
	return s
}

func testItem(t *testing.T, key string) wire.Item {
	t.Helper()
	item, err := wire.EncodeItem(map[string]any{
		registry.AttrInstanceID:   key,
		registry.AttrCreationDate: "2022-03-28",
		registry.AttrExecStatus:   registry.StatusSuccessful,
		registry.AttrSite:         "AWS",
		registry.AttrDescription:  "sqlite driver test entry",
		registry.AttrS3URI:        "s3://benchmarks-cloud/benchmarks/1Mon/gchp/" + key,
		registry.AttrStages: []any{
			map[string]any{"Name": "SetupRunDirectory", "Completed": true},
		},
	})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	return item
}

func TestPutScanBatchGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	item := testItem(t, "gchp-1Mon-13.4.0-rc.3.bd")
	if err := s.Put(ctx, item); err != nil {
		t.Fatalf("put: %v", err)
	}

	scanned, err := s.Scan(ctx, 50)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(scanned) != 1 {
		t.Fatalf("scan returned %d items", len(scanned))
	}
	if scanned[0].String(registry.AttrS3URI) != nil {
		t.Fatalf("scan projection must omit S3Uri: %#v", scanned[0])
	}

	full, err := s.BatchGet(ctx, []string{"gchp-1Mon-13.4.0-rc.3.bd"})
	if err != nil {
		t.Fatalf("batch get: %v", err)
	}
	if len(full) != 1 {
		t.Fatalf("batch get returned %d items", len(full))
	}
	// JSON round-tripping swaps named wire types for plain maps, so compare
	// the decoded native forms.
	wantNative, err := wire.DecodeItem(item)
	if err != nil {
		t.Fatalf("decode want: %v", err)
	}
	gotNative, err := wire.DecodeItem(full[0])
	if err != nil {
		t.Fatalf("decode got: %v", err)
	}
	if !reflect.DeepEqual(gotNative, wantNative) {
		t.Fatalf("item drifted through sqlite:\ngot  %#v\nwant %#v", gotNative, wantNative)
	}

	entry := registry.NewSimulationEntry(full[0])
	if entry.Setup == nil || entry.Setup.Name == nil || *entry.Setup.Name != "SetupRunDirectory" {
		t.Fatalf("stage lost through sqlite: %+v", entry.Setup)
	}
}

func TestPutReplacesExisting(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Put(ctx, testItem(t, "gcc-1Hr-483b659")); err != nil {
		t.Fatalf("put: %v", err)
	}
	updated := testItem(t, "gcc-1Hr-483b659")
	updated[registry.AttrExecStatus] = wire.Value{wire.TagString: registry.StatusFailed}
	if err := s.Put(ctx, updated); err != nil {
		t.Fatalf("second put: %v", err)
	}

	got, err := s.BatchGet(ctx, []string{"gcc-1Hr-483b659"})
	if err != nil || len(got) != 1 {
		t.Fatalf("batch get: %v %d", err, len(got))
	}
	if status := got[0].String(registry.AttrExecStatus); status == nil || *status != registry.StatusFailed {
		t.Fatalf("ExecStatus = %v, want FAILED", status)
	}
}

func TestBatchGetEmptyKeys(t *testing.T) {
	s := newTestStore(t)
	got, err := s.BatchGet(context.Background(), nil)
	if err != nil {
		t.Fatalf("batch get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no items, got %d", len(got))
	}
}
