package chunker

import (
	"regexp"
	"strconv"
	"unicode/utf8"
)

var pageMarker = regexp.MustCompile(`(?i)\[PAGE\s+(\d+)\]`)

// Marker is one [PAGE n] occurrence. Start and End are rune offsets.
type Marker struct {
	Page  int
	Start int
	End   int
}

// ScanMarkers finds every page marker in text, in order of appearance.
// Markers whose number does not fit an int are treated as plain text.
func ScanMarkers(text string) []Marker {
	matches := pageMarker.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}
	markers := make([]Marker, 0, len(matches))
	byteAt, runeAt := 0, 0
	toRune := func(b int) int {
		runeAt += utf8.RuneCountInString(text[byteAt:b])
		byteAt = b
		return runeAt
	}
	for _, m := range matches {
		page, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		start := toRune(m[0])
		end := toRune(m[1])
		markers = append(markers, Marker{Page: page, Start: start, End: end})
	}
	return markers
}
