package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"go.uber.org/multierr"
)

const currentJSON = `{"sheets":[{"name":"Semana","header":["Deportista","Distancia Total (km)"],"rows":[["Ana","12,5"]]}]}`
const historyJSON = `{"sheets":[{"name":"Distancia Total","header":["Nombre","Sem 1"],"rows":[["Ana",10]]}]}`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestFileLoader_Load(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cur := filepath.Join(dir, "current.json")
	hist := filepath.Join(dir, "history.json")
	writeFile(t, cur, currentJSON)
	writeFile(t, hist, historyJSON)

	store := NewMemoryStore()
	loader := NewFileLoader(store, cur, hist)

	if !loader.Stale() {
		t.Fatal("expected a loader that never loaded to be stale")
	}
	changed, err := loader.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("expected the first load to change the store")
	}

	snap, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	changed, err = loader.Load(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("expected unchanged files to be skipped")
	}
	again, _ := store.Snapshot(ctx)
	if again.ID != snap.ID {
		t.Error("expected snapshot id to survive a no-op reload")
	}
}

func TestFileLoader_Errors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cur := filepath.Join(dir, "current.json")
	writeFile(t, cur, currentJSON)
	bad := filepath.Join(dir, "history.json")
	writeFile(t, bad, `{"sheets":[]}`)

	store := NewMemoryStore()
	loader := NewFileLoader(store, cur, bad)
	_, err := loader.Load(ctx)
	if !errors.Is(err, workbook.ErrEmptyWorkbook) {
		t.Fatalf("expected ErrEmptyWorkbook, got %v", err)
	}
	if has, _ := store.Has(); !has {
		t.Error("expected the valid file to be stored despite the other failing")
	}

	missing := NewFileLoader(NewMemoryStore(), filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json"))
	_, err = missing.Load(ctx)
	if n := len(multierr.Errors(err)); n != 2 {
		t.Errorf("expected both failures to be reported, got %d: %v", n, err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestFileLoader_Stale(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	cur := filepath.Join(dir, "current.json")
	writeFile(t, cur, currentJSON)

	now := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	loader := NewFileLoader(NewMemoryStore(), cur, "",
		WithRefreshInterval(10*time.Minute),
		WithLoaderClock(func() time.Time { return now }),
	)
	if _, err := loader.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loader.Stale() {
		t.Error("expected a fresh load not to be stale")
	}
	now = now.Add(10 * time.Minute)
	if !loader.Stale() {
		t.Error("expected the load to go stale after the interval")
	}

	once := NewFileLoader(NewMemoryStore(), cur, "", WithRefreshInterval(0))
	if _, err := once.Load(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if once.Stale() {
		t.Error("expected a zero interval to never go stale")
	}

	if NewFileLoader(NewMemoryStore(), "", "").Stale() {
		t.Error("expected a loader without files to never be stale")
	}
}
