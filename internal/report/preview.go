package report

import (
	"sort"

	"github.com/crimson-sun/collate/internal/engine/aggregate"
)

// UnitCount is one unit's distinct-identity count.
type UnitCount struct {
	Unit  string `json:"unit"`
	Count int    `json:"count"`
}

// AppLeader mirrors one "highest users per app" row.
type AppLeader struct {
	Category string `json:"category"`
	Unit     string `json:"unit"`
	Count    int    `json:"count"`
}

// CollegeLeader is the (category, unit) projection of a leader row.
type CollegeLeader struct {
	Category string `json:"category"`
	Unit     string `json:"unit"`
}

// Preview mirrors the statistics and distribution sheets for immediate
// display, without reopening the artifact.
type Preview struct {
	TotalUsers             int             `json:"total_users"`
	USTStudentUsers        int             `json:"ust_student_users"`
	OtherUsers             int             `json:"other_users"`
	TotalRows              int             `json:"total_rows"`
	DuplicateRows          int             `json:"duplicate_rows"`
	AllColleges            []UnitCount     `json:"all_colleges"`
	HighestUsersPerApp     []AppLeader     `json:"highest_users_per_app"`
	HighestUsersPerCollege []CollegeLeader `json:"highest_users_per_college"`
}

// buildPreview projects the aggregation result into the preview structure.
// Colleges and app leaders are ordered by count descending; the per-college
// projection is re-sorted by unit name descending.
func buildPreview(res aggregate.Result) Preview {
	p := Preview{
		TotalUsers:      res.Stats.TotalUsers,
		USTStudentUsers: res.Stats.MemberUsers,
		OtherUsers:      res.Stats.OtherUsers,
		TotalRows:       res.Stats.TotalRows,
		DuplicateRows:   res.Stats.DuplicateRows,
	}

	p.AllColleges = make([]UnitCount, 0, len(res.Matrix.Rows))
	for _, row := range res.Matrix.Rows {
		p.AllColleges = append(p.AllColleges, UnitCount{Unit: row.Unit, Count: row.Users})
	}
	sort.SliceStable(p.AllColleges, func(i, j int) bool {
		return p.AllColleges[i].Count > p.AllColleges[j].Count
	})

	p.HighestUsersPerApp = make([]AppLeader, 0, len(res.Leaders))
	p.HighestUsersPerCollege = make([]CollegeLeader, 0, len(res.Leaders))
	for _, l := range res.Leaders {
		p.HighestUsersPerApp = append(p.HighestUsersPerApp, AppLeader(l))
		p.HighestUsersPerCollege = append(p.HighestUsersPerCollege, CollegeLeader{Category: l.Category, Unit: l.Unit})
	}
	sort.SliceStable(p.HighestUsersPerCollege, func(i, j int) bool {
		return p.HighestUsersPerCollege[i].Unit > p.HighestUsersPerCollege[j].Unit
	})

	return p
}
