package herb

import (
	"strings"
)

// Descriptor identifies one herb in the Wowhead listing
type Descriptor struct {
	ID          int    `json:"id"`
	Name        string `json:"name"` // slug form, used in page URLs and code lookups
	DisplayName string `json:"displayName"`
}

// RawCapture is the embedded mapper data extracted from one herb page
type RawCapture struct {
	HerbID   int    `json:"herb_id"`
	HerbName string `json:"herb_name"`
	RawData  string `json:"raw_data"`
}

// Coord is an (x, y) map position. Raw captures use the 0-100 percentage
// scale, normalized records use fractions in [0,1].
type Coord [2]float64

// MapBlock holds the node positions of one herb on one map
type MapBlock struct {
	UIMapID int     `json:"uiMapId"`
	Coords  []Coord `json:"coords"`
}

// Record is the normalized location data of one herb, keyed by uiMapId
type Record struct {
	HerbName string                `json:"herb_name"`
	HerbCode *int                  `json:"herb_code"`
	Data     map[string][]MapBlock `json:"data"`
}

// Resolved reports whether the record carries a GatherMate2 node id.
func (r *Record) Resolved() bool {
	return r.HerbCode != nil
}

// Slugify normalizes a herb name for URLs and code lookups:
// apostrophes are dropped, letters lowercased and spaces become hyphens.
func Slugify(name string) string {
	slug := strings.ReplaceAll(name, "'", "")
	slug = strings.ToLower(slug)
	return strings.ReplaceAll(slug, " ", "-")
}
