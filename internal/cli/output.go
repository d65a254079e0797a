package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/herb-scraper/internal/pipeline"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// InspectResult is the JSON form of the inspect output
type InspectResult struct {
	Maps       []pipeline.MapSummary `json:"maps"`
	MapCount   int                   `json:"map_count"`
	TotalNodes int                   `json:"total_nodes"`
}

// WriteInspect writes per-map summaries in the specified format
func WriteInspect(w io.Writer, maps []pipeline.MapSummary, format OutputFormat) error {
	result := &InspectResult{Maps: maps, MapCount: len(maps)}
	for _, m := range maps {
		result.TotalNodes += m.Nodes
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *InspectResult) error {
	if result.Maps == nil {
		result.Maps = []pipeline.MapSummary{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs one block per map with its node ids by node count
func writeText(w io.Writer, result *InspectResult) error {
	if result.MapCount == 0 {
		fmt.Fprintln(w, "No herb nodes found.")
		return nil
	}

	for _, m := range result.Maps {
		fmt.Fprintf(w, "\nMap %d (%d nodes):\n", m.MapID, m.Nodes)

		codes := make([]string, 0, len(m.Codes))
		for code := range m.Codes {
			codes = append(codes, code)
		}
		sort.Slice(codes, func(i, j int) bool {
			if m.Codes[codes[i]] != m.Codes[codes[j]] {
				return m.Codes[codes[i]] > m.Codes[codes[j]]
			}
			return codes[i] < codes[j]
		})

		for _, code := range codes {
			fmt.Fprintf(w, "  %s: %d\n", code, m.Codes[code])
		}
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d nodes across %d maps\n", result.TotalNodes, result.MapCount)
	return err
}
