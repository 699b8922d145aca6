// Package triple defines the subject/predicate/object triple used for both
// schema relations and concrete edges, plus its text boundary encoding.
//
// Inside the program triples are structured values; the parenthesized string
// form "(a,b,c)" exists only where data crosses the file boundary. The
// encoding has no escaping, so labels carrying a delimiter character cannot
// round-trip; ValidLabel gates them out at input time.
package triple

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Triple is one subject/predicate/object triple. At the schema level the
// subject and object are node type names; at the edge level they are
// instance labels.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// Parse decodes the parenthesized triple form. One surrounding paren pair is
// stripped when present, parts are split on commas, trimmed and
// NFC-normalized. Anything other than exactly three parts is an error.
func Parse(s string) (Triple, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = s[1 : len(s)-1]
	}
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Triple{}, fmt.Errorf("triple %q: expected 3 comma-separated parts, got %d", s, len(parts))
	}
	for i := range parts {
		parts[i] = norm.NFC.String(strings.TrimSpace(parts[i]))
	}
	return Triple{Subject: parts[0], Predicate: parts[1], Object: parts[2]}, nil
}

// Key returns the canonical parenthesized form, used as the relation key in
// graph documents and as the edge string encoding.
func (t Triple) Key() string {
	return fmt.Sprintf("(%s,%s,%s)", t.Subject, t.Predicate, t.Object)
}

func (t Triple) String() string { return t.Key() }

// ValidLabel reports whether label survives a Key/Parse round trip. Labels
// containing a paren or comma would misalign the comma split on re-parse.
func ValidLabel(label string) bool {
	return !strings.ContainsAny(label, "(),")
}
