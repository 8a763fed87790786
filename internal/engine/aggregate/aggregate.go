// Package aggregate partitions the canonical dataset by institutional
// affiliation, reduces each identity to its first-observed usage, and builds
// the unit-by-application cross-tabulation with summary statistics.
package aggregate

import (
	"fmt"
	"sort"

	"github.com/crimson-sun/collate/internal/engine/affiliation"
	"github.com/crimson-sun/collate/internal/engine/apppath"
	"github.com/crimson-sun/collate/internal/model"
)

// Stats are the five overall metrics of one run.
type Stats struct {
	TotalUsers    int
	MemberUsers   int
	OtherUsers    int
	TotalRows     int
	DuplicateRows int
}

// FirstUsage is the earliest-observed category and unit for one member
// identity. Derived once per run, never mutated.
type FirstUsage struct {
	Identity string
	Category string
	Unit     string
}

// MatrixRow is one unit's counts: distinct identities plus one cell per
// category, aligned with Matrix.Categories.
type MatrixRow struct {
	Unit   string
	Users  int
	Counts []int
}

// Matrix is the unit-by-category cross-tabulation. Rows follow the fixed
// unit order; Total sums them.
type Matrix struct {
	Categories []string
	Rows       []MatrixRow
	Total      MatrixRow
}

// Leader is the unit with the most first-time users of one category.
type Leader struct {
	Category string
	Unit     string
	Count    int
}

// OtherUser is a non-member identity and its first-seen category.
type OtherUser struct {
	Identity string
	Category string
}

// Result is the full aggregation output consumed by the report builder.
type Result struct {
	Stats   Stats
	Matrix  Matrix
	Leaders []Leader
	Others  []OtherUser
}

// Aggregate computes the run's statistics, cross-tabulation, per-category
// leaders, and non-member summary from the merged dataset.
func Aggregate(ds model.Dataset) (Result, error) {
	stats, members, others := split(ds)
	if stats.OtherUsers < 0 {
		return Result{}, fmt.Errorf("negative non-member count: total %d, members %d", stats.TotalUsers, stats.MemberUsers)
	}

	first := firstUsages(members, ds.HasTimestamp)
	matrix := buildMatrix(first)
	leaders := buildLeaders(matrix)
	otherSummary := otherUsers(others, ds.HasTimestamp)

	return Result{
		Stats:   stats,
		Matrix:  matrix,
		Leaders: leaders,
		Others:  otherSummary,
	}, nil
}

// split partitions entries by membership and computes the distinct-identity
// counters. The non-member count is derived by subtraction, matching the
// total = members + others identity.
func split(ds model.Dataset) (Stats, []model.Entry, []model.Entry) {
	var members, others []model.Entry
	allIDs := make(map[string]struct{})
	memberIDs := make(map[string]struct{})

	for _, e := range ds.Entries {
		allIDs[e.Identity] = struct{}{}
		if affiliation.IsMember(e.Identity) {
			memberIDs[e.Identity] = struct{}{}
			members = append(members, e)
		} else {
			others = append(others, e)
		}
	}

	stats := Stats{
		TotalUsers:    len(allIDs),
		MemberUsers:   len(memberIDs),
		OtherUsers:    len(allIDs) - len(memberIDs),
		TotalRows:     ds.TotalRows,
		DuplicateRows: ds.DuplicateRows,
	}
	return stats, members, others
}

// sortByTimestamp stable-sorts entries by their raw timestamp, ascending.
// Ties and untimed datasets keep arrival order.
func sortByTimestamp(entries []model.Entry) []model.Entry {
	sorted := make([]model.Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp < sorted[j].Timestamp
	})
	return sorted
}

// firstUsages reduces member entries to one record per identity: the first
// row after timestamp ordering, in first-occurrence order.
func firstUsages(members []model.Entry, hasTimestamp bool) []FirstUsage {
	if hasTimestamp {
		members = sortByTimestamp(members)
	}

	var first []FirstUsage
	seen := make(map[string]struct{})
	for _, e := range members {
		if _, ok := seen[e.Identity]; ok {
			continue
		}
		seen[e.Identity] = struct{}{}
		first = append(first, FirstUsage{
			Identity: e.Identity,
			Category: e.Category,
			Unit:     affiliation.UnitOf(e.Identity),
		})
	}
	return first
}

// buildMatrix counts first usages per (unit, category) cell. Every
// whitelisted unit gets a row even when empty, so an all-zero matrix is
// still fully shaped.
func buildMatrix(first []FirstUsage) Matrix {
	units := affiliation.Units()
	categories := apppath.Categories()

	catIndex := make(map[string]int, len(categories))
	for i, c := range categories {
		catIndex[c] = i
	}

	byUnit := make(map[string][]FirstUsage)
	for _, fu := range first {
		byUnit[fu.Unit] = append(byUnit[fu.Unit], fu)
	}

	m := Matrix{
		Categories: categories,
		Total:      MatrixRow{Unit: "TOTAL", Counts: make([]int, len(categories))},
	}
	for _, unit := range units {
		row := MatrixRow{Unit: unit, Counts: make([]int, len(categories))}
		for _, fu := range byUnit[unit] {
			row.Users++
			if idx, ok := catIndex[fu.Category]; ok {
				row.Counts[idx]++
			}
		}
		m.Total.Users += row.Users
		for i, n := range row.Counts {
			m.Total.Counts[i] += n
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// buildLeaders finds, per category, the unit with the highest count.
// Ties resolve to the first unit in fixed order; zero-count categories are
// omitted. The result is ordered by count descending, category order within
// equal counts.
func buildLeaders(m Matrix) []Leader {
	var leaders []Leader
	for i, cat := range m.Categories {
		maxCount := 0
		maxUnit := ""
		for _, row := range m.Rows {
			if row.Counts[i] > maxCount {
				maxCount = row.Counts[i]
				maxUnit = row.Unit
			}
		}
		if maxCount > 0 {
			leaders = append(leaders, Leader{Category: cat, Unit: maxUnit, Count: maxCount})
		}
	}
	sort.SliceStable(leaders, func(i, j int) bool {
		return leaders[i].Count > leaders[j].Count
	})
	return leaders
}

// otherUsers reduces non-member entries to first-seen category per identity,
// sorted by identity.
func otherUsers(others []model.Entry, hasTimestamp bool) []OtherUser {
	if hasTimestamp {
		others = sortByTimestamp(others)
	}

	var summary []OtherUser
	seen := make(map[string]struct{})
	for _, e := range others {
		if _, ok := seen[e.Identity]; ok {
			continue
		}
		seen[e.Identity] = struct{}{}
		summary = append(summary, OtherUser{Identity: e.Identity, Category: e.Category})
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Identity < summary[j].Identity
	})
	return summary
}

// Validate checks the matrix invariants: the TOTAL identity cell equals the
// sum of per-unit identity cells and each category total equals its column
// sum. A violation is an internal error, never user input.
func (m Matrix) Validate() error {
	users := 0
	sums := make([]int, len(m.Categories))
	for _, row := range m.Rows {
		users += row.Users
		for i, n := range row.Counts {
			sums[i] += n
		}
	}
	if users != m.Total.Users {
		return fmt.Errorf("matrix total users %d != sum of unit users %d", m.Total.Users, users)
	}
	for i, n := range sums {
		if n != m.Total.Counts[i] {
			return fmt.Errorf("matrix total for %s is %d, column sums to %d", m.Categories[i], m.Total.Counts[i], n)
		}
	}
	return nil
}
