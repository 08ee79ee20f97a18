package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TagList is an ordered, case-insensitively deduplicated list of tag names.
// Membership and set operations ignore case; the first casing seen for a name
// is the one kept for display. The zero value is an empty list.
type TagList struct {
	names []string
}

// NewTagList builds a TagList from raw names. Surrounding whitespace is
// trimmed and blank names are dropped.
func NewTagList(names ...string) TagList {
	var l TagList
	l.Add(names...)
	return l
}

// ParseTagList parses a comma-delimited tag string. A segment wrapped in
// double or single quotes is taken verbatim, so a quoted name may contain
// commas; inside it, a doubled quote stands for one:
//
//	ruby, "foo, bar", RUBY  =>  [ruby, foo, bar]
//	"say ""hi"", it's"      =>  [say "hi", it's]
func ParseTagList(s string) TagList {
	return NewTagList(splitTagString(s)...)
}

// TagListFromTags builds a TagList from persisted tags, in the order given.
func TagListFromTags(tags ...Tag) TagList {
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return NewTagList(names...)
}

// Add appends names not already present. Copies of l taken before the call
// are not affected.
func (l *TagList) Add(names ...string) {
	l.names = slices.Clip(l.names)
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" || l.Contains(n) {
			continue
		}
		l.names = append(l.names, n)
	}
}

// Remove drops every name matching one of names, ignoring case.
func (l *TagList) Remove(names ...string) {
	drop := NewTagList(names...)
	kept := l.names[:0:0]
	for _, n := range l.names {
		if !drop.Contains(n) {
			kept = append(kept, n)
		}
	}
	l.names = kept
}

// Contains reports whether name is in the list, ignoring case.
func (l TagList) Contains(name string) bool {
	key := foldName(strings.TrimSpace(name))
	for _, n := range l.names {
		if foldName(n) == key {
			return true
		}
	}
	return false
}

// Names returns a copy of the names in list order.
func (l TagList) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Len returns the number of names in the list.
func (l TagList) Len() int {
	return len(l.names)
}

// Difference returns the names of l that are not in other, keeping l's order
// and casing.
func (l TagList) Difference(other TagList) TagList {
	var out TagList
	for _, n := range l.names {
		if !other.Contains(n) {
			out.names = append(out.names, n)
		}
	}
	return out
}

// Union returns l followed by the names of other that l lacks. Names present
// in both keep l's casing.
func (l TagList) Union(other TagList) TagList {
	out := TagList{names: l.Names()}
	out.Add(other.names...)
	return out
}

// Equal reports whether both lists hold the same names in the same order,
// ignoring case.
func (l TagList) Equal(other TagList) bool {
	if len(l.names) != len(other.names) {
		return false
	}
	for i := range l.names {
		if foldName(l.names[i]) != foldName(other.names[i]) {
			return false
		}
	}
	return true
}

// String formats the list as a tag string that ParseTagList reads back into
// an equal list.
func (l TagList) String() string {
	parts := make([]string, len(l.names))
	for i, n := range l.names {
		parts[i] = quoteName(n)
	}
	return strings.Join(parts, ", ")
}

// FoldName returns the case-insensitive comparison key for a tag name. It
// lower-cases the way Postgres lower() does, so two names share a key exactly
// when the tags table's unique index treats them as the same tag.
func FoldName(name string) string {
	return foldName(strings.TrimSpace(name))
}

// foldName lower-cases per rune without full folding, so "ß" and "ss" stay
// distinct. A Caser is stateful, so each call gets its own.
func foldName(s string) string {
	return cases.Lower(language.Und).String(s)
}

// quoteName wraps n in quotes when it contains a comma or starts with a quote
// character. Double quotes are preferred; single quotes are used when n holds
// a double quote but no single quote. A quote character equal to the wrapper
// is doubled.
func quoteName(n string) string {
	if !strings.Contains(n, ",") && !strings.HasPrefix(n, `"`) && !strings.HasPrefix(n, "'") {
		return n
	}
	q := `"`
	if strings.Contains(n, `"`) && !strings.Contains(n, "'") {
		q = "'"
	}
	return q + strings.ReplaceAll(n, q, q+q) + q
}

func splitTagString(s string) []string {
	var out []string
	i := 0
	for i < len(s) {
		for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
			i++
		}
		if i >= len(s) {
			break
		}

		if q := s[i]; q == '"' || q == '\'' {
			if name, next, ok := readQuoted(s, i, q); ok {
				out = append(out, name)
				i = next
				// Anything between the closing quote and the next comma is dropped.
				if c := strings.IndexByte(s[i:], ','); c >= 0 {
					i += c + 1
				} else {
					i = len(s)
				}
				continue
			}
		}

		end := strings.IndexByte(s[i:], ',')
		if end < 0 {
			out = append(out, s[i:])
			break
		}
		out = append(out, s[i:i+end])
		i += end + 1
	}
	return out
}

// readQuoted reads the segment opened by the quote q at s[start]. A doubled q
// stands for one literal q. It returns the unquoted text and the index after
// the closing quote; ok is false when the quote is never closed.
func readQuoted(s string, start int, q byte) (name string, next int, ok bool) {
	var b strings.Builder
	for j := start + 1; j < len(s); j++ {
		if s[j] != q {
			b.WriteByte(s[j])
			continue
		}
		if j+1 < len(s) && s[j+1] == q {
			b.WriteByte(q)
			j++
			continue
		}
		return b.String(), j + 1, true
	}
	return "", 0, false
}
