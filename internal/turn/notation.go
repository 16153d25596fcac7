package turn

import (
	"errors"
	"strings"
)

// ErrInvalidNotation is returned for move names that are not in the catalog.
var ErrInvalidNotation = errors.New("turn: invalid move notation")

// Record is a move together with the direction it was played in.
type Record struct {
	Move      Move
	Direction int
}

// Notation returns the move name, with a trailing ' for the negative
// direction. Examples: AU, AU', wF, G'.
func (r Record) Notation() string {
	if r.Direction < 0 {
		return r.Move.Name + "'"
	}
	return r.Move.Name
}

// String returns the notation string (alias for Notation).
func (r Record) String() string {
	return r.Notation()
}

// Inverse returns the record played in the opposite direction.
func (r Record) Inverse() Record {
	r.Direction = -r.direction()
	return r
}

func (r Record) direction() int {
	if r.Direction < 0 {
		return -1
	}
	return 1
}

// InverseSequence returns the records that undo records: reversed, each
// played the other way.
func InverseSequence(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[len(records)-1-i] = r.Inverse()
	}
	return out
}

// Parse parses a single move such as "KU" or "wF'".
func Parse(s string) (Record, error) {
	s = strings.TrimSpace(s)
	dir := 1
	if strings.HasSuffix(s, "'") || strings.HasSuffix(s, "`") {
		dir = -1
		s = s[:len(s)-1]
	}
	if s == "" {
		return Record{}, ErrInvalidNotation
	}
	m, ok := Lookup(s)
	if !ok {
		return Record{}, ErrInvalidNotation
	}
	return Record{Move: m, Direction: dir}, nil
}

// ParseSequence parses a space-separated sequence of moves.
func ParseSequence(s string) ([]Record, error) {
	parts := strings.Fields(s)
	records := make([]Record, 0, len(parts))
	for _, part := range parts {
		r, err := Parse(part)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// FormatSequence formats records as a space-separated notation string.
func FormatSequence(records []Record) string {
	if len(records) == 0 {
		return ""
	}
	parts := make([]string, len(records))
	for i, r := range records {
		parts[i] = r.Notation()
	}
	return strings.Join(parts, " ")
}
