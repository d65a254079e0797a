package pipeline

import (
	"strconv"
)

// MapSummary counts the nodes of one map in the GatherMate2 table
type MapSummary struct {
	MapID int            `json:"map_id"`
	Nodes int            `json:"nodes"`
	Codes map[string]int `json:"codes"` // node id -> node count
}

// Inspect summarizes the table Convert would write, per map in ascending
// map id order, without writing anything.
func (p *Pipeline) Inspect() ([]MapSummary, error) {
	table, _, err := p.loadTable()
	if err != nil {
		return nil, err
	}

	var out []MapSummary
	for _, mapID := range table.MapIDs() {
		s := MapSummary{MapID: mapID, Codes: make(map[string]int)}
		for _, loc := range table.Locations(mapID) {
			code, _ := table.Get(mapID, loc)
			key := "unresolved"
			if code != nil {
				key = strconv.Itoa(*code)
			}
			s.Codes[key]++
			s.Nodes++
		}
		out = append(out, s)
	}
	return out, nil
}
