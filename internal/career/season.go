package career

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrInvalidSeason is returned by ParseSeason for identifiers it cannot read.
var ErrInvalidSeason = errors.New("invalid season identifier")

// Accepts "2019-20", "2019-2020" and a bare "2019".
var seasonPattern = regexp.MustCompile(`^(\d{4})(?:-(\d{2}|\d{4}))?$`)

// ParseSeason returns the start year embedded in a season identifier. The end
// year, when present, must follow the start year.
func ParseSeason(id string) (int, error) {
	m := seasonPattern.FindStringSubmatch(id)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, id)
	}
	start, _ := strconv.Atoi(m[1])
	if m[2] == "" {
		return start, nil
	}

	end, _ := strconv.Atoi(m[2])
	want := start + 1
	if len(m[2]) == 2 {
		want %= 100
	}
	if end != want {
		return 0, fmt.Errorf("%w: %q end year does not follow %d", ErrInvalidSeason, id, start)
	}
	return start, nil
}

// FormatSeason renders a start year in the provider's "YYYY-YY" form.
func FormatSeason(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// seasonKey is the sort key for one season identifier. Invalid identifiers
// order after every valid one.
type seasonKey struct {
	id    string
	start int
	valid bool
}

func newSeasonKey(id string) seasonKey {
	start, err := ParseSeason(id)
	return seasonKey{id: id, start: start, valid: err == nil}
}

// compare orders by start year, then by raw identifier.
func (k seasonKey) compare(o seasonKey) int {
	switch {
	case k.valid && !o.valid:
		return -1
	case !k.valid && o.valid:
		return 1
	case k.valid && k.start != o.start:
		if k.start < o.start {
			return -1
		}
		return 1
	case k.id < o.id:
		return -1
	case k.id > o.id:
		return 1
	}
	return 0
}
