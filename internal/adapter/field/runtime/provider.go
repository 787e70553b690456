package runtime

import (
	"context"
	"time"

	"driveyard/internal/app/ports"
	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

type Config struct {
	Layout      field.Layout
	LayoutName  string
	LayoutStore ports.FieldLayoutRepository
	Now         func() time.Time
}

// Provider serves deterministic sensor snapshots from a static layout.
// Patrolling drives walk their routes as a pure function of the tick,
// so the same tick always yields the same field.
type Provider struct {
	cfg        Config
	layout     field.Layout
	boundaries []grid.State
	routes     [][]grid.State
}

func NewProvider(cfg Config) (*Provider, error) {
	if cfg.LayoutName == "" {
		cfg.LayoutName = cfg.Layout.Name
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	p := &Provider{cfg: cfg}
	if err := p.setLayout(cfg.Layout); err != nil {
		return nil, err
	}
	return p, nil
}

// EnsureLayout reconciles the configured layout with the store: a
// previously persisted layout of the same name wins, otherwise the
// configured one is saved for the next restart.
func (p *Provider) EnsureLayout(ctx context.Context) error {
	if p.cfg.LayoutStore == nil {
		return nil
	}
	stored, found, err := p.cfg.LayoutStore.Get(ctx, p.cfg.LayoutName)
	if err != nil {
		return err
	}
	if found {
		return p.setLayout(stored)
	}
	return p.cfg.LayoutStore.Save(ctx, p.cfg.LayoutName, p.layout)
}

func (p *Provider) setLayout(layout field.Layout) error {
	if err := layout.Validate(); err != nil {
		return err
	}
	p.layout = layout
	p.boundaries = layout.BoundaryCells()
	p.routes = p.routes[:0]
	for _, route := range layout.Routes {
		p.routes = append(p.routes, route.Cells())
	}
	return nil
}

func (p *Provider) Layout() field.Layout {
	return p.layout
}

func (p *Provider) SnapshotForDrive(_ context.Context, _ string, pos grid.State, tick int64) (field.Snapshot, error) {
	snap := field.Snapshot{
		Tick:       tick,
		Player:     pos,
		Boundaries: p.boundaries,
		Drives:     p.patrolPositions(tick),
		Pods:       append([]grid.State(nil), p.layout.Pods...),
		Goals:      append([]grid.State(nil), p.layout.Goals...),
	}
	if len(snap.Goals) > 0 {
		snap.Goal = snap.Goals[0]
	}
	return snap, nil
}

func (p *Provider) patrolPositions(tick int64) []grid.State {
	if len(p.routes) == 0 {
		return nil
	}
	out := make([]grid.State, 0, len(p.routes))
	for _, cells := range p.routes {
		if len(cells) == 0 {
			continue
		}
		idx := tick % int64(len(cells))
		if idx < 0 {
			idx += int64(len(cells))
		}
		out = append(out, cells[idx])
	}
	return out
}
