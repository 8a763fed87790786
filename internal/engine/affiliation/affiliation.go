// Package affiliation classifies user identities by institutional
// affiliation. Student identities follow firstname.lastname.unit@ust.edu.ph;
// the trailing segment names the academic unit.
package affiliation

import "strings"

const (
	// Others marks a recognized-domain identity whose format or unit
	// segment does not match the whitelist.
	Others = "Others"
	// NonUST marks an identity outside the recognized domain.
	NonUST = "Non-UST"

	domainSuffix = "@ust.edu.ph"
)

// unitWhitelist is the fixed academic-unit order used for report rows.
var unitWhitelist = []string{
	"ab", "acct", "archi", "cfad", "cics", "comm", "crs", "cthm",
	"eccle", "educ", "ehs", "eng", "gs", "gslaw", "ipea", "jhs",
	"law", "med", "music", "nur", "pharma", "sc", "sci", "shs", "gensan",
}

var unitSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(unitWhitelist))
	for _, u := range unitWhitelist {
		m[u] = struct{}{}
	}
	return m
}()

// Units returns the whitelist in fixed order, upper-cased for display.
func Units() []string {
	units := make([]string, len(unitWhitelist))
	for i, u := range unitWhitelist {
		units[i] = strings.ToUpper(u)
	}
	return units
}

// UnitOf derives the academic-unit code from an identity. Total: any parse
// irregularity resolves to a fallback, never an error. Identities outside
// the recognized domain return NonUST; recognized-domain identities with
// fewer than three dotted segments or an unlisted unit return Others.
func UnitOf(identity string) string {
	if !strings.Contains(identity, domainSuffix) {
		return NonUST
	}
	local := strings.Split(identity, "@")[0]
	parts := strings.Split(local, ".")
	if len(parts) < 3 {
		return Others
	}
	unit := strings.ToLower(parts[len(parts)-1])
	if _, ok := unitSet[unit]; ok {
		return strings.ToUpper(unit)
	}
	return Others
}

// IsMember reports whether the identity matches the strict student format:
// three or more dotted segments under the recognized domain with a
// whitelisted trailing unit. Strictly narrower than UnitOf — false whenever
// UnitOf would fall back to Others or NonUST.
func IsMember(identity string) bool {
	if !strings.Contains(identity, domainSuffix) {
		return false
	}
	local := strings.Split(identity, "@")[0]
	parts := strings.Split(local, ".")
	if len(parts) < 3 {
		return false
	}
	_, ok := unitSet[strings.ToLower(parts[len(parts)-1])]
	return ok
}
