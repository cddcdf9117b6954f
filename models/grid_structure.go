package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrShapeMismatch is returned when the permission overlay does not have
	// the same dimensions as the value grid.
	ErrShapeMismatch = errors.New("permission shape does not match value shape")
	// ErrInvalidMergeRegion is returned when a merge region is malformed,
	// out of bounds, or overlaps another region.
	ErrInvalidMergeRegion = errors.New("invalid merge region")
)

// MergeRegion describes a rectangular cell merge anchored at (Row, Col).
type MergeRegion struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"rowSpan"`
	ColSpan int `json:"colSpan"`
}

// overlaps reports whether two regions share at least one cell. Spans are
// compared by subtraction so huge values cannot wrap the arithmetic.
func (m MergeRegion) overlaps(other MergeRegion) bool {
	if other.Row-m.Row >= m.RowSpan || m.Row-other.Row >= other.RowSpan {
		return false
	}
	if other.Col-m.Col >= m.ColSpan || m.Col-other.Col >= other.ColSpan {
		return false
	}
	return true
}

// GridStructure is one immutable version of a template grid: cell values,
// a parallel per-cell permission overlay, and the merge regions. Edits never
// mutate an existing structure; a change produces a new GridStructure inside
// a new Submission.
type GridStructure struct {
	Values       [][]interface{}   `json:"values"`
	Permissions  [][]PermissionSet `json:"permissions"`
	MergeRegions []MergeRegion     `json:"mergeRegions"`
}

// NewGridStructure validates and builds a grid structure. The permission
// overlay must match the value grid row for row and cell for cell, and merge
// regions must lie inside the grid without overlapping each other.
func NewGridStructure(values [][]interface{}, permissions [][]PermissionSet, mergeRegions []MergeRegion) (GridStructure, error) {
	if len(permissions) != len(values) {
		return GridStructure{}, fmt.Errorf("%w: %d permission rows for %d value rows", ErrShapeMismatch, len(permissions), len(values))
	}
	for i := range values {
		if len(permissions[i]) != len(values[i]) {
			return GridStructure{}, fmt.Errorf("%w: row %d has %d permission cells for %d value cells", ErrShapeMismatch, i, len(permissions[i]), len(values[i]))
		}
	}

	for i, region := range mergeRegions {
		if region.RowSpan < 1 || region.ColSpan < 1 {
			return GridStructure{}, fmt.Errorf("%w: region %d has span %dx%d", ErrInvalidMergeRegion, i, region.RowSpan, region.ColSpan)
		}
		if region.Row < 0 || region.Col < 0 || region.Row >= len(values) || region.RowSpan > len(values)-region.Row {
			return GridStructure{}, fmt.Errorf("%w: region %d is out of bounds", ErrInvalidMergeRegion, i)
		}
		for r := region.Row; r < region.Row+region.RowSpan; r++ {
			if region.Col >= len(values[r]) || region.ColSpan > len(values[r])-region.Col {
				return GridStructure{}, fmt.Errorf("%w: region %d exceeds row %d width", ErrInvalidMergeRegion, i, r)
			}
		}
		for j := 0; j < i; j++ {
			if region.overlaps(mergeRegions[j]) {
				return GridStructure{}, fmt.Errorf("%w: regions %d and %d overlap", ErrInvalidMergeRegion, j, i)
			}
		}
	}

	return GridStructure{
		Values:       values,
		Permissions:  permissions,
		MergeRegions: mergeRegions,
	}, nil
}

// RowCount returns the number of rows in the grid.
func (g GridStructure) RowCount() int {
	return len(g.Values)
}

// ColCount returns the number of cells in the given row, or 0 if the row
// does not exist.
func (g GridStructure) ColCount(row int) int {
	if row < 0 || row >= len(g.Values) {
		return 0
	}
	return len(g.Values[row])
}

// CellPermissions returns the permission set at a position. Out-of-bounds
// positions yield the empty set rather than an error; callers treat them as
// "no access".
func (g GridStructure) CellPermissions(row, col int) PermissionSet {
	if row < 0 || row >= len(g.Permissions) {
		return PermissionSet{}
	}
	if col < 0 || col >= len(g.Permissions[row]) {
		return PermissionSet{}
	}
	return g.Permissions[row][col]
}

// Value serializes the grid structure for storage in a JSON column.
func (g GridStructure) Value() (driver.Value, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("failed to encode grid structure: %w", err)
	}
	return string(data), nil
}

// Scan decodes a grid structure from its stored JSON form.
func (g *GridStructure) Scan(value interface{}) error {
	if value == nil {
		*g = GridStructure{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported grid structure column type %T", value)
	}

	if len(data) == 0 {
		*g = GridStructure{}
		return nil
	}
	if err := json.Unmarshal(data, g); err != nil {
		return fmt.Errorf("failed to decode grid structure: %w", err)
	}
	return nil
}
