package models

const (
	// TagOperator is the base operating capability. A cell without it is
	// closed to the current role entirely.
	TagOperator = "operator"

	// fullAccessTagCount is the minimum number of distinct capability tags a
	// cell needs before it counts as fully open. Cells with the operator tag
	// but fewer tags are restricted.
	fullAccessTagCount = 3
)

// AccessLevel is the three-tier classification of a cell under the
// permission overlay. It drives rendering, export, and audit identically.
type AccessLevel string

const (
	AccessFull       AccessLevel = "full"
	AccessRestricted AccessLevel = "restricted"
	AccessNone       AccessLevel = "none"
)

// PermissionSet is an open vocabulary of capability tags attached to one
// cell. New tags may appear without changing the classification rules.
type PermissionSet []string

// Has reports whether the set contains the given tag.
func (p PermissionSet) Has(tag string) bool {
	for _, t := range p {
		if t == tag {
			return true
		}
	}
	return false
}

// Count returns the number of distinct tags in the set.
func (p PermissionSet) Count() int {
	seen := make(map[string]struct{}, len(p))
	for _, t := range p {
		seen[t] = struct{}{}
	}
	return len(seen)
}

// Classify maps a permission set to its access level. Sets without the
// operator tag are closed; sets with it but below the full-access tag count
// are restricted.
func (p PermissionSet) Classify() AccessLevel {
	if !p.Has(TagOperator) {
		return AccessNone
	}
	if p.Count() < fullAccessTagCount {
		return AccessRestricted
	}
	return AccessFull
}

// ClassifyCell resolves the access level for one cell position. Out-of-bounds
// positions classify as no access, matching CellPermissions.
func (g GridStructure) ClassifyCell(row, col int) AccessLevel {
	return g.CellPermissions(row, col).Classify()
}

// IsHeaderRow reports whether the row carries the structural header
// classification. This is a presentation concern layered on top of the
// access level, not part of it.
func (g GridStructure) IsHeaderRow(row int) bool {
	return row == 0
}

// AccessMatrix computes the classification for every cell, in the same shape
// as the value grid. Used by export and audit consumers.
func (g GridStructure) AccessMatrix() [][]AccessLevel {
	matrix := make([][]AccessLevel, len(g.Values))
	for r := range g.Values {
		matrix[r] = make([]AccessLevel, len(g.Values[r]))
		for c := range g.Values[r] {
			matrix[r][c] = g.ClassifyCell(r, c)
		}
	}
	return matrix
}
