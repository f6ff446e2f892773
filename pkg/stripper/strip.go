package stripper

import (
	"strings"
)

// StripLine removes the first `"_id": <value>,` pair from an export line.
//
// The key is located lexically, the value is assumed to end at the first
// comma after it, and horizontal whitespace following that comma is dropped.
// ok reports whether both the key and its separator were found; when they
// were not, out is whatever mode prescribes for the line.
func StripLine(line string, mode MissingKeyMode) (out string, ok bool) {
	keyAt := strings.Index(line, FieldKey)
	if keyAt < 0 {
		if mode == MissingKeyLegacy {
			return legacyStrip(line, 0), false
		}
		return line, false
	}

	commaOff := strings.Index(line[keyAt:], Separator)
	if commaOff < 0 {
		if mode == MissingKeyLegacy {
			return line[:keyAt] + line, false
		}
		return line, false
	}

	rest := strings.TrimLeft(line[keyAt+commaOff+len(Separator):], " \t")
	return line[:keyAt] + rest, true
}

// legacyStrip returns the text after the first separator at or after from,
// or the whole line when there is none.
func legacyStrip(line string, from int) string {
	c := strings.Index(line[from:], Separator)
	if c < 0 {
		return line
	}
	return line[from+c+len(Separator):]
}

// BuildArray wraps entries into a JSON array literal, separating them with
// commas. No entry is parsed or re-encoded.
func BuildArray(entries []string) string {
	var b strings.Builder
	size := 2
	for _, e := range entries {
		size += len(e) + len(Separator)
	}
	b.Grow(size)

	b.WriteString("[")
	for i, e := range entries {
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(e)
	}
	b.WriteString("]")
	return b.String()
}
