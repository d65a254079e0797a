package gathermate

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// DefaultTableName is the global GatherMate2 reads herb nodes from
const DefaultTableName = "GatherMate2HerbDB"

// WriteLua writes t as a Lua assignment to the global name:
//
//	GatherMate2HerbDB = {
//	    [2248] = {
//	        [1000100000] = 1439,
//	    },
//	}
//
// Map ids and locations are written in ascending order.
func WriteLua(w io.Writer, name string, t *Table) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s = {\n", name)
	for _, mapID := range t.MapIDs() {
		fmt.Fprintf(bw, "    [%d] = {\n", mapID)
		for _, loc := range t.Locations(mapID) {
			code, _ := t.Get(mapID, loc)
			fmt.Fprintf(bw, "        [%d] = %s,\n", loc, luaValue(code))
		}
		fmt.Fprint(bw, "    },\n")
	}
	fmt.Fprint(bw, "}\n")

	return bw.Flush()
}

func luaValue(code *int) string {
	if code == nil {
		return "nil"
	}
	return strconv.Itoa(*code)
}
