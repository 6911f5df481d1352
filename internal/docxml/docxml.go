// Package docxml reads documentation-comment records and matches them against
// canonical type and member keys.
//
// The record source is the documentation file produced next to a compiled library:
//
//	<doc>
//	  <members>
//	    <member name="T:Namespace.Type">
//	      <summary>Text.</summary>
//	    </member>
//	  </members>
//	</doc>
//
// Each member name carries a one-letter category marker followed by a colon
// (T:, F:, P:, M:, E:) in front of the canonical key.
package docxml

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// NotAvailable is the summary displayed when no record matches.
const NotAvailable = `N\A`

// ErrMalformedKey is returned when a record's name attribute is missing or
// does not start with a category marker.
var ErrMalformedKey = errors.New("malformed documentation record key")

// Record is a single documentation record.
type Record struct {
	// Key is the declared key, including its category marker.
	Key     string
	Summary string
}

// Set is an ordered collection of documentation records.
type Set struct {
	records []Record
	// index maps a canonical key to the first record declaring it.
	index map[string]int
}

// NewSet builds a [Set] from records, validating every declared key.
func NewSet(records []Record) (*Set, error) {
	s := &Set{
		records: records,
		index:   make(map[string]int, len(records)),
	}
	for i, r := range records {
		key, err := StripCategory(r.Key)
		if err != nil {
			return nil, err
		}
		if _, exists := s.index[key]; !exists {
			s.index[key] = i
		}
	}
	return s, nil
}

// Len returns the number of records.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// FindSummary returns the summary of the first record whose key, stripped of its
// category marker, equals key. The summary has its whitespace collapsed.
// If no record matches, [NotAvailable] is returned.
func (s *Set) FindSummary(key string) (string, bool) {
	if s == nil {
		return NotAvailable, false
	}
	i, ok := s.index[key]
	if !ok {
		return NotAvailable, false
	}
	return CollapseWhitespace(s.records[i].Summary), true
}

// StripCategory removes the category marker from a declared key.
func StripCategory(declared string) (string, error) {
	if len(declared) < 2 || declared[1] != ':' || !isASCIILetter(declared[0]) {
		return "", errors.Wrapf(ErrMalformedKey, "%q", declared)
	}
	return declared[2:], nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

var controlCharsRegex = regexp.MustCompile(`[\t\n\r]`)

// CollapseWhitespace removes tab, newline and carriage return characters and
// reduces runs of spaces to a single space, so that multi-line text fits
// a single table cell.
func CollapseWhitespace(s string) string {
	if s == "" {
		return s
	}
	line := controlCharsRegex.ReplaceAllString(s, "")
	for strings.Contains(line, "  ") {
		line = strings.ReplaceAll(line, "  ", " ")
	}
	return line
}

type xmlDoc struct {
	XMLName xml.Name    `xml:"doc"`
	Members []xmlMember `xml:"members>member"`
}

type xmlMember struct {
	Name    *string     `xml:"name,attr"`
	Summary *xmlSummary `xml:"summary"`
}

type xmlSummary struct {
	Inner []byte `xml:",innerxml"`
}

// Load reads a documentation file.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open documentation file %s", path)
	}
	defer func() { _ = f.Close() }()
	set, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse documentation file %s", path)
	}
	return set, nil
}

// Parse decodes documentation records from r.
func Parse(r io.Reader) (*Set, error) {
	var doc xmlDoc
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "invalid documentation XML")
	}
	records := make([]Record, 0, len(doc.Members))
	for i, m := range doc.Members {
		if m.Name == nil {
			return nil, errors.Wrapf(ErrMalformedKey, "member #%d has no name attribute", i)
		}
		record := Record{Key: *m.Name}
		if m.Summary != nil {
			text, err := innerText(m.Summary.Inner)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid summary of %s", *m.Name)
			}
			record.Summary = text
		}
		records = append(records, record)
	}
	return NewSet(records)
}

// innerText concatenates the character data of an XML fragment,
// dropping the markup of nested elements.
func innerText(fragment []byte) (string, error) {
	dec := xml.NewDecoder(bytes.NewReader(fragment))
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if cd, ok := tok.(xml.CharData); ok {
			sb.Write(cd)
		}
	}
}
