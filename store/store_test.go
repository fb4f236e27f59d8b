package store

import (
	"context"
	"reflect"
	"testing"

	tri "github.com/rmera/tricontact"
)

func TestNewStoreMemory(t *testing.T) {
	store, err := NewStore("memory", "")
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}
}

func TestNewStoreUnsupported(t *testing.T) {
	_, err := NewStore("unknown", "")
	if err == nil {
		t.Fatal("expected unsupported store error")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.SaveRun(ctx, Run{ID: "early"}); err == nil {
		t.Fatal("expected an error before init")
	}
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	table := &tri.Table{Rows: []tri.AggregateRow{{Anchor: 1, Prot: 2, Count: 3}}}
	run := Run{ID: "rep1", Structure: "sys.psf", Table: table}
	if err := store.SaveRun(ctx, run); err != nil {
		t.Fatalf("save run: %v", err)
	}
	table.Rows[0].Count = 99

	loaded, ok, err := store.GetRun(ctx, "rep1")
	if err != nil || !ok {
		t.Fatalf("get run: %v %v", ok, err)
	}
	if loaded.Structure != "sys.psf" || loaded.Table.Rows[0].Count != 3 {
		t.Fatalf("unexpected run loaded: %+v", loaded)
	}
	if _, ok, _ := store.GetRun(ctx, "missing"); ok {
		t.Fatal("expected no run")
	}
	if err := store.SaveRun(ctx, Run{}); err == nil {
		t.Fatal("expected an error for a run without id")
	}
	store.SaveRun(ctx, Run{ID: "a"})
	ids, _ := store.ListRuns(ctx)
	if !reflect.DeepEqual(ids, []string{"a", "rep1"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
	if err := CloseIfSupported(store); err != nil {
		t.Fatalf("close: %v", err)
	}
}
