package scraper

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/herb-scraper/internal/herb"
)

const (
	listEndMarker = `,"extraCols"`
	mapperMarker  = "var g_mapperData = "
)

var (
	// ErrMarkerNotFound means the page does not carry the expected embedded data
	ErrMarkerNotFound = errors.New("embedded data marker not found")
	// ErrUnterminated means the embedded object never closes
	ErrUnterminated = errors.New("embedded object not terminated")
)

// The listing array ends where the Listview options continue with extraCols.
var herbListPattern = regexp.MustCompile(`(?s)"data":(\[.*?\]),"extraCols"`)

// ExtractHerbList returns the raw JSON array of the herb listing page.
func ExtractHerbList(html string) (string, error) {
	script, ok := scriptContaining(html, listEndMarker)
	if !ok {
		return "", fmt.Errorf("herb list: %w", ErrMarkerNotFound)
	}

	m := herbListPattern.FindStringSubmatch(script)
	if m == nil {
		return "", fmt.Errorf("herb list: %w", ErrMarkerNotFound)
	}
	return strings.TrimSpace(m[1]), nil
}

// ParseHerbList decodes the listing array and slugifies each herb name.
// Fields other than id, name and displayName are ignored.
func ParseHerbList(raw string) ([]herb.Descriptor, error) {
	var herbs []herb.Descriptor
	if err := json.Unmarshal([]byte(raw), &herbs); err != nil {
		return nil, fmt.Errorf("parsing herb list: %w", err)
	}
	for i := range herbs {
		herbs[i].Name = herb.Slugify(herbs[i].Name)
	}
	return herbs, nil
}

// ExtractMapperData returns the g_mapperData object of a herb page as raw
// JSON text. The object ends at its balancing brace; braces and semicolons
// inside string values do not end it.
func ExtractMapperData(html string) (string, error) {
	script, ok := scriptContaining(html, mapperMarker)
	if !ok {
		return "", fmt.Errorf("g_mapperData: %w", ErrMarkerNotFound)
	}

	rest := script[strings.Index(script, mapperMarker)+len(mapperMarker):]
	rest = strings.TrimLeft(rest, " \t\r\n")
	if !strings.HasPrefix(rest, "{") {
		return "", fmt.Errorf("g_mapperData is not an object: %w", ErrMarkerNotFound)
	}

	end := objectEnd(rest)
	if end < 0 {
		return "", fmt.Errorf("g_mapperData: %w", ErrUnterminated)
	}
	return rest[:end+1], nil
}

// scriptContaining returns the text of the first script element that
// contains marker.
func scriptContaining(html, marker string) (string, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	var found string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, marker) {
			found = text
			return false
		}
		return true
	})
	return found, found != ""
}

// objectEnd returns the index of the brace closing the object that s starts
// with, or -1.
func objectEnd(s string) int {
	depth := 0
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
