package cli

import (
	"sort"

	"github.com/pfrederiksen/herb-scraper/internal/pipeline"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByMap   SortOrder = "map"
	SortByNodes SortOrder = "nodes"
)

// sortMaps sorts map summaries by the specified order. Ties on node count
// fall back to map id.
func sortMaps(maps []pipeline.MapSummary, order SortOrder) {
	switch order {
	case SortByMap:
		sort.SliceStable(maps, func(i, j int) bool {
			return maps[i].MapID < maps[j].MapID
		})
	case SortByNodes:
		sort.SliceStable(maps, func(i, j int) bool {
			if maps[i].Nodes != maps[j].Nodes {
				return maps[i].Nodes > maps[j].Nodes
			}
			return maps[i].MapID < maps[j].MapID
		})
	}
}
