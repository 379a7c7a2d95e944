package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect captures the differences between the supported SQL databases.
// Queries in this package are written with '?' placeholders.
type Dialect struct {
	// Name is used in log and error messages.
	Name string

	// Placeholder renders the n-th (1-based) bind parameter. Nil keeps '?'.
	Placeholder func(n int) string

	// LockSuffix is appended to a SELECT to lock the selected rows until the
	// transaction ends. Empty where the database locks on write.
	LockSuffix string
}

// SQLite uses '?' placeholders.
var SQLite = Dialect{Name: "sqlite"}

// Postgres uses numbered placeholders.
var Postgres = Dialect{
	Name:        "postgres",
	Placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
	LockSuffix:  " FOR UPDATE",
}

// Rebind rewrites '?' placeholders for the dialect. Queries here never
// contain a literal question mark.
func (d Dialect) Rebind(query string) string {
	if d.Placeholder == nil {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString(d.Placeholder(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
