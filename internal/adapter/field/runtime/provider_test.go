package runtime

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

type fakeLayoutStore struct {
	layouts map[string]field.Layout
	saves   int
}

func (s *fakeLayoutStore) Get(_ context.Context, name string) (field.Layout, bool, error) {
	layout, ok := s.layouts[name]
	return layout, ok, nil
}

func (s *fakeLayoutStore) Save(_ context.Context, name string, layout field.Layout) error {
	s.layouts[name] = layout
	s.saves++
	return nil
}

func TestSnapshotIsDeterministic(t *testing.T) {
	p, err := NewProvider(Config{Layout: DefaultLayout()})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	ctx := context.Background()
	pos := grid.State{X: 0, Y: 0}

	a, err := p.SnapshotForDrive(ctx, "drv-1", pos, 42)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	b, err := p.SnapshotForDrive(ctx, "drv-1", pos, 42)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(a.Drives) != 1 || a.Drives[0] != b.Drives[0] {
		t.Fatalf("same tick must give same patrol positions: %+v vs %+v", a.Drives, b.Drives)
	}

	next, err := p.SnapshotForDrive(ctx, "drv-1", pos, 43)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	dx := a.Drives[0].X - next.Drives[0].X
	dy := a.Drives[0].Y - next.Drives[0].Y
	if dx*dx+dy*dy != 1 {
		t.Fatalf("patrol must advance one cell per tick: %+v -> %+v", a.Drives[0], next.Drives[0])
	}
}

func TestSnapshotContent(t *testing.T) {
	layout := DefaultLayout()
	p, err := NewProvider(Config{Layout: layout})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	snap, err := p.SnapshotForDrive(context.Background(), "drv-1", grid.State{X: 1, Y: 1}, 0)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.Player != (grid.State{X: 1, Y: 1}) || snap.Tick != 0 {
		t.Fatalf("unexpected player/tick: %+v", snap)
	}
	if snap.Goal != layout.Goals[0] {
		t.Fatalf("legacy goal must mirror first goal, got %+v", snap.Goal)
	}
	blocked := field.BlockedSet(snap.Boundaries)
	if _, ok := blocked[grid.State{X: -1, Y: 0}]; !ok {
		t.Fatalf("boundary ring missing")
	}
	if _, ok := blocked[grid.State{X: 3, Y: 3}]; !ok {
		t.Fatalf("rack cell missing from boundaries")
	}
	if _, ok := blocked[grid.State{X: 1, Y: 1}]; ok {
		t.Fatalf("open cell must not be blocked")
	}
}

func TestEnsureLayoutPersistsAndPrefersStored(t *testing.T) {
	store := &fakeLayoutStore{layouts: map[string]field.Layout{}}
	p, err := NewProvider(Config{Layout: DefaultLayout(), LayoutStore: store})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	ctx := context.Background()

	if err := p.EnsureLayout(ctx); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if store.saves != 1 {
		t.Fatalf("expected initial save, got %d", store.saves)
	}

	stored := DefaultLayout()
	stored.Goals = []grid.State{{X: 1, Y: 1}}
	store.layouts["default"] = stored
	if err := p.EnsureLayout(ctx); err != nil {
		t.Fatalf("ensure with stored: %v", err)
	}
	if got := p.Layout().Goals[0]; got != (grid.State{X: 1, Y: 1}) {
		t.Fatalf("stored layout must win, got goal %+v", got)
	}
	if store.saves != 1 {
		t.Fatalf("stored layout must not be overwritten, saves=%d", store.saves)
	}
}

func TestLoadLayout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.yaml")
	spec := `name: mini
width: 6
height: 5
racks:
  - {x: 2, y: 2, w: 2, h: 1}
goals:
  - {x: 5, y: 4}
routes:
  - waypoints:
      - {x: 0, y: 4}
      - {x: 5, y: 4}
`
	if err := os.WriteFile(path, []byte(spec), 0o644); err != nil {
		t.Fatalf("write layout: %v", err)
	}

	layout, err := LoadLayout(path)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	if layout.Name != "mini" || layout.Width != 6 || layout.Height != 5 {
		t.Fatalf("unexpected layout %+v", layout)
	}
	if len(layout.Racks) != 1 || len(layout.Routes) != 1 {
		t.Fatalf("unexpected layout contents %+v", layout)
	}

	if _, err := LoadLayout(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("width: 0\nheight: 0\n"), 0o644); err != nil {
		t.Fatalf("write bad layout: %v", err)
	}
	if _, err := LoadLayout(bad); err == nil {
		t.Fatalf("expected validation error")
	}
}
