package gathermate

import (
	"sort"

	"github.com/pfrederiksen/herb-scraper/internal/herb"
)

// Table maps uiMapId -> encoded location -> node id. A nil node id marks a
// herb without a GatherMate2 code.
type Table struct {
	maps map[int]map[int64]*int
}

// BuildOptions controls how records are folded into a Table
type BuildOptions struct {
	// KeepUnresolved keeps locations of herbs without a node id. They are
	// written as nil, which GatherMate2 ignores.
	KeepUnresolved bool
}

// NewTable creates an empty Table
func NewTable() *Table {
	return &Table{maps: make(map[int]map[int64]*int)}
}

// Build encodes every coordinate of records into a new Table. Records are
// applied in order, so when two coordinates encode to the same key on one
// map the later record wins.
func Build(records []*herb.Record, opts BuildOptions) *Table {
	t := NewTable()
	for _, rec := range records {
		if !rec.Resolved() && !opts.KeepUnresolved {
			continue
		}
		for _, blocks := range rec.Data {
			for _, block := range blocks {
				if block.UIMapID <= 0 || len(block.Coords) == 0 {
					continue
				}
				for _, c := range block.Coords {
					t.Set(block.UIMapID, Encode(c[0], c[1]), rec.HerbCode)
				}
			}
		}
	}
	return t
}

// Set stores code at loc on mapID, replacing any previous entry.
func (t *Table) Set(mapID int, loc int64, code *int) {
	nodes, ok := t.maps[mapID]
	if !ok {
		nodes = make(map[int64]*int)
		t.maps[mapID] = nodes
	}
	nodes[loc] = code
}

// Get returns the node id stored at loc on mapID.
func (t *Table) Get(mapID int, loc int64) (code *int, ok bool) {
	code, ok = t.maps[mapID][loc]
	return code, ok
}

// MapIDs returns the map ids in ascending order.
func (t *Table) MapIDs() []int {
	ids := make([]int, 0, len(t.maps))
	for id := range t.maps {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Locations returns the encoded locations of mapID in ascending order.
func (t *Table) Locations(mapID int) []int64 {
	nodes := t.maps[mapID]
	locs := make([]int64, 0, len(nodes))
	for loc := range nodes {
		locs = append(locs, loc)
	}
	sort.Slice(locs, func(i, j int) bool { return locs[i] < locs[j] })
	return locs
}

// Len returns the number of nodes across all maps.
func (t *Table) Len() int {
	n := 0
	for _, nodes := range t.maps {
		n += len(nodes)
	}
	return n
}
