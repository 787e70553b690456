package runtime

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"driveyard/internal/domain/field"
	"driveyard/internal/domain/grid"
)

// LoadLayout reads a layout description from a YAML file.
func LoadLayout(path string) (field.Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return field.Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}
	var layout field.Layout
	if err := yaml.Unmarshal(b, &layout); err != nil {
		return field.Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if err := layout.Validate(); err != nil {
		return field.Layout{}, err
	}
	return layout, nil
}

// DefaultLayout is a small warehouse: two rack blocks with an aisle
// between them, goal cells along the right edge and one patrolling
// drive circling the racks.
func DefaultLayout() field.Layout {
	return field.Layout{
		Name:   "default",
		Width:  20,
		Height: 12,
		Racks: []field.Rect{
			{X: 3, Y: 3, W: 6, H: 2},
			{X: 3, Y: 7, W: 6, H: 2},
		},
		Goals: []grid.State{
			{X: 18, Y: 3},
			{X: 18, Y: 8},
		},
		Pods: []grid.State{
			{X: 4, Y: 5},
			{X: 7, Y: 5},
		},
		Routes: []field.Route{
			{Waypoints: []grid.State{
				{X: 11, Y: 2},
				{X: 11, Y: 10},
				{X: 14, Y: 10},
				{X: 14, Y: 2},
			}},
		},
	}
}
