package access

import (
	"fmt"
	"strings"
)

// Level is the capability tier granted for a module. Levels form a total
// order: read < write < admin. A single ordered type backs both the static
// role policy and dynamically resolved grants, so the two paths cannot drift.
type Level string

const (
	LevelRead  Level = "read"
	LevelWrite Level = "write"
	LevelAdmin Level = "admin"
)

var levelRank = map[Level]int{
	LevelRead:  0,
	LevelWrite: 1,
	LevelAdmin: 2,
}

// Valid reports whether l is one of the known tiers.
func (l Level) Valid() bool {
	_, ok := levelRank[l]
	return ok
}

// Satisfies reports whether a grant at level l covers an operation requiring
// the given level. Unknown levels never satisfy anything.
func (l Level) Satisfies(required Level) bool {
	lr, ok := levelRank[l]
	if !ok {
		return false
	}
	rr, ok := levelRank[required]
	if !ok {
		return false
	}
	return lr >= rr
}

// ParseLevel normalizes and validates a level string.
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(s)))
	if !l.Valid() {
		return "", fmt.Errorf("%w: unknown access level %q", ErrInvalidInput, s)
	}
	return l, nil
}
