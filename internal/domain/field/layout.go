package field

import (
	"errors"
	"fmt"

	"driveyard/internal/domain/grid"
)

var ErrInvalidLayout = errors.New("invalid field layout")

// Rect is an axis-aligned block of cells, used for rack placement.
type Rect struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
	W int `json:"w" yaml:"w"`
	H int `json:"h" yaml:"h"`
}

// Route describes the patrol loop of a non-player drive as a list of
// waypoints. Consecutive waypoints must share a row or a column; the
// drive walks the cells between them and wraps back to the start.
type Route struct {
	Waypoints []grid.State `json:"waypoints" yaml:"waypoints"`
}

// Layout is the static description of a warehouse field: its walkable
// area, rack blocks, goal cells, pod cells and patrol routes. The field
// itself is the open rectangle [0,Width) x [0,Height); everything
// outside it is boundary.
type Layout struct {
	Name   string       `json:"name" yaml:"name"`
	Width  int          `json:"width" yaml:"width"`
	Height int          `json:"height" yaml:"height"`
	Racks  []Rect       `json:"racks" yaml:"racks"`
	Goals  []grid.State `json:"goals" yaml:"goals"`
	Pods   []grid.State `json:"pods" yaml:"pods"`
	Routes []Route      `json:"routes" yaml:"routes"`
}

func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, l.Width, l.Height)
	}
	if len(l.Goals) == 0 {
		return fmt.Errorf("%w: no goal cells", ErrInvalidLayout)
	}
	for _, r := range l.Racks {
		if r.W <= 0 || r.H <= 0 || r.X < 0 || r.Y < 0 || r.X+r.W > l.Width || r.Y+r.H > l.Height {
			return fmt.Errorf("%w: rack %+v outside %dx%d field", ErrInvalidLayout, r, l.Width, l.Height)
		}
	}
	blocked := BlockedSet(l.BoundaryCells())
	for _, g := range l.Goals {
		if _, ok := blocked[g]; ok || !l.inField(g) {
			return fmt.Errorf("%w: goal %v not on a free cell", ErrInvalidLayout, g)
		}
	}
	for _, route := range l.Routes {
		if len(route.Waypoints) == 0 {
			return fmt.Errorf("%w: empty patrol route", ErrInvalidLayout)
		}
		for i, wp := range route.Waypoints {
			if !l.inField(wp) {
				return fmt.Errorf("%w: waypoint %v outside field", ErrInvalidLayout, wp)
			}
			prev := route.Waypoints[(i+len(route.Waypoints)-1)%len(route.Waypoints)]
			if wp.X != prev.X && wp.Y != prev.Y {
				return fmt.Errorf("%w: waypoints %v and %v not axis-aligned", ErrInvalidLayout, prev, wp)
			}
		}
	}
	return nil
}

func (l Layout) inField(s grid.State) bool {
	return s.X >= 0 && s.X < l.Width && s.Y >= 0 && s.Y < l.Height
}

// BoundaryCells lists every cell a drive may not occupy: the one-cell
// ring around the field plus all rack cells.
func (l Layout) BoundaryCells() []grid.State {
	out := make([]grid.State, 0, 2*(l.Width+l.Height)+4)
	for x := -1; x <= l.Width; x++ {
		out = append(out, grid.State{X: x, Y: -1}, grid.State{X: x, Y: l.Height})
	}
	for y := 0; y < l.Height; y++ {
		out = append(out, grid.State{X: -1, Y: y}, grid.State{X: l.Width, Y: y})
	}
	for _, r := range l.Racks {
		for x := r.X; x < r.X+r.W; x++ {
			for y := r.Y; y < r.Y+r.H; y++ {
				out = append(out, grid.State{X: x, Y: y})
			}
		}
	}
	return out
}

// Cells expands the waypoints into the full patrol loop, one cell per
// tick of travel.
func (r Route) Cells() []grid.State {
	if len(r.Waypoints) == 0 {
		return nil
	}
	if len(r.Waypoints) == 1 {
		return []grid.State{r.Waypoints[0]}
	}
	out := make([]grid.State, 0, len(r.Waypoints)*4)
	for i, wp := range r.Waypoints {
		next := r.Waypoints[(i+1)%len(r.Waypoints)]
		out = append(out, segment(wp, next)...)
	}
	return out
}

// PositionAt returns where the patrolling drive stands at the given tick.
func (r Route) PositionAt(tick int64) grid.State {
	cells := r.Cells()
	if len(cells) == 0 {
		return grid.State{}
	}
	idx := tick % int64(len(cells))
	if idx < 0 {
		idx += int64(len(cells))
	}
	return cells[idx]
}

// segment walks from a up to but excluding b, one cell at a time.
func segment(a, b grid.State) []grid.State {
	out := []grid.State{}
	for cur := a; cur != b; {
		out = append(out, cur)
		switch {
		case cur.X < b.X:
			cur.X++
		case cur.X > b.X:
			cur.X--
		case cur.Y < b.Y:
			cur.Y++
		default:
			cur.Y--
		}
	}
	return out
}
