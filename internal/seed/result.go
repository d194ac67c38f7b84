// Package seed loads the player directory and raw career rows into Postgres.
package seed

import "fmt"

// Result tracks counts and errors from a seeding operation.
type Result struct {
	PlayersUpserted    int
	CareersSeeded      int
	SeasonRowsInserted int
	Errors             []string
}

// Add merges another Result into this one.
func (r *Result) Add(other Result) {
	r.PlayersUpserted += other.PlayersUpserted
	r.CareersSeeded += other.CareersSeeded
	r.SeasonRowsInserted += other.SeasonRowsInserted
	r.Errors = append(r.Errors, other.Errors...)
}

// AddError records an error message.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

// AddErrorf records a formatted error message.
func (r *Result) AddErrorf(format string, args ...interface{}) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// Summary returns a human-readable summary of the seed operation.
func (r *Result) Summary() string {
	return fmt.Sprintf(
		"players=%d careers=%d season_rows=%d errors=%d",
		r.PlayersUpserted, r.CareersSeeded, r.SeasonRowsInserted, len(r.Errors),
	)
}
