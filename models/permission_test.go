package models

import "testing"

func TestClassifyThreeTier(t *testing.T) {
	grid := mustGrid(t,
		[][]interface{}{
			{"a", "b"},
			{"c", "d"},
		},
		[][]PermissionSet{
			{{"operator", "editor", "viewer"}, {"operator"}},
			{{}, {"viewer", "editor"}},
		},
		nil,
	)

	cases := []struct {
		row, col int
		want     AccessLevel
	}{
		{0, 0, AccessFull},       // operator plus two more tags
		{0, 1, AccessRestricted}, // operator alone
		{1, 0, AccessNone},       // empty set
		{1, 1, AccessNone},       // tags but no operator
	}
	for _, tc := range cases {
		if got := grid.ClassifyCell(tc.row, tc.col); got != tc.want {
			t.Errorf("cell (%d,%d): got %s, want %s", tc.row, tc.col, got, tc.want)
		}
	}
}

func TestClassifyOutOfBounds(t *testing.T) {
	grid := mustGrid(t,
		[][]interface{}{{"a"}},
		[][]PermissionSet{{{"operator", "editor", "viewer"}}},
		nil,
	)
	if got := grid.ClassifyCell(5, 5); got != AccessNone {
		t.Fatalf("out-of-bounds cell should classify as none, got %s", got)
	}
}

func TestClassifyCountsDistinctTags(t *testing.T) {
	set := PermissionSet{"operator", "operator", "editor"}
	if got := set.Count(); got != 2 {
		t.Fatalf("expected 2 distinct tags, got %d", got)
	}
	if got := set.Classify(); got != AccessRestricted {
		t.Fatalf("duplicated tags should not reach full access, got %s", got)
	}
}

func TestIsHeaderRow(t *testing.T) {
	grid := mustGrid(t,
		[][]interface{}{{"h"}, {"v"}},
		[][]PermissionSet{{{}}, {{}}},
		nil,
	)
	if !grid.IsHeaderRow(0) {
		t.Fatal("row 0 should be the header row")
	}
	if grid.IsHeaderRow(1) {
		t.Fatal("row 1 should not be the header row")
	}
}

func TestAccessMatrixShape(t *testing.T) {
	grid := mustGrid(t,
		[][]interface{}{
			{"a", "b", "c"},
			{"d", "e", "f"},
		},
		[][]PermissionSet{
			{{"operator"}, {}, {"operator", "editor", "viewer"}},
			{{}, {}, {}},
		},
		nil,
	)

	matrix := grid.AccessMatrix()
	if len(matrix) != 2 || len(matrix[0]) != 3 {
		t.Fatalf("matrix shape mismatch: %v", matrix)
	}
	if matrix[0][0] != AccessRestricted || matrix[0][2] != AccessFull || matrix[1][0] != AccessNone {
		t.Fatalf("unexpected classifications: %v", matrix)
	}
}
