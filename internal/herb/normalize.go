package herb

import (
	"errors"
	"math"
	"strconv"

	"github.com/tidwall/gjson"
)

// ErrMalformedCapture is returned when mapper data is not a JSON object
var ErrMalformedCapture = errors.New("malformed mapper data")

// NormalizeMapperData parses a raw g_mapperData object and returns its
// blocks keyed by uiMapId.
//
// The top-level keys of the object do not match the public map ids, so each
// block is filed under its own uiMapId; blocks that share a uiMapId are
// concatenated in document order. Blocks without a positive uiMapId and
// values that are not arrays are ignored. Within a block, duplicate
// coordinate pairs are dropped (first occurrence kept) and percentages are
// rescaled to fractions rounded to 4 decimals.
func NormalizeMapperData(raw string) (map[string][]MapBlock, error) {
	if !gjson.Valid(raw) {
		return nil, ErrMalformedCapture
	}
	root := gjson.Parse(raw)
	if !root.IsObject() {
		return nil, ErrMalformedCapture
	}

	data := make(map[string][]MapBlock)
	root.ForEach(func(_, blocks gjson.Result) bool {
		if !blocks.IsArray() {
			return true
		}
		blocks.ForEach(func(_, block gjson.Result) bool {
			id := int(block.Get("uiMapId").Int())
			if id <= 0 {
				return true
			}
			key := strconv.Itoa(id)
			data[key] = append(data[key], MapBlock{
				UIMapID: id,
				Coords:  normalizeCoords(block.Get("coords")),
			})
			return true
		})
		return true
	})

	return data, nil
}

// normalizeCoords dedups raw pairs before rescaling them.
func normalizeCoords(coords gjson.Result) []Coord {
	out := make([]Coord, 0)
	seen := make(map[Coord]struct{})

	coords.ForEach(func(_, pair gjson.Result) bool {
		xy := pair.Array()
		if len(xy) < 2 {
			return true
		}
		c := Coord{xy[0].Float(), xy[1].Float()}
		if _, dup := seen[c]; dup {
			return true
		}
		seen[c] = struct{}{}
		out = append(out, Coord{rescale(c[0]), rescale(c[1])})
		return true
	})

	return out
}

// rescale converts a 0-100 percentage to a fraction with 4 decimals.
func rescale(v float64) float64 {
	return math.Round(v*100) / 10000
}
