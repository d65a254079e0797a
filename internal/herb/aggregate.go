package herb

import (
	"fmt"

	"github.com/pfrederiksen/herb-scraper/internal/logger"
)

// Aggregator accumulates normalized records across captures, one record per
// herb name in first-seen order. It is not safe for concurrent use.
type Aggregator struct {
	resolver *Resolver
	log      *logger.Logger
	records  map[string]*Record
	order    []string
}

// NewAggregator creates an empty Aggregator. A nil log uses the default logger.
func NewAggregator(resolver *Resolver, log *logger.Logger) *Aggregator {
	if log == nil {
		log = logger.Default()
	}
	return &Aggregator{
		resolver: resolver,
		log:      log,
		records:  make(map[string]*Record),
	}
}

// Add normalizes one capture and merges it into the record for its herb name.
//
// When the herb already has a record, its data is updated per uiMapId: a map
// id present in the new capture replaces the earlier blocks for that id.
// The record keeps the code resolved on first sight. An unknown herb is
// logged and stored with a nil code. Malformed mapper data leaves the
// aggregator unchanged and returns an error wrapping ErrMalformedCapture.
func (a *Aggregator) Add(c RawCapture) error {
	data, err := NormalizeMapperData(c.RawData)
	if err != nil {
		return fmt.Errorf("herb %q (id %d): %w", c.HerbName, c.HerbID, err)
	}

	if rec, ok := a.records[c.HerbName]; ok {
		for mapID, blocks := range data {
			rec.Data[mapID] = blocks
		}
		a.log.Debug("Merged herb data", logger.Fields{
			"herb_name": c.HerbName,
			"maps":      len(data),
		})
		return nil
	}

	rec := &Record{HerbName: c.HerbName, Data: data}
	if code, ok := a.resolver.Lookup(c.HerbName); ok {
		rec.HerbCode = &code
	} else {
		logger.IncrCounter("resolve.miss")
		a.log.Warn("No herb code found", logger.Fields{
			"herb_name": c.HerbName,
			"herb_key":  Slugify(c.HerbName),
		})
	}

	a.records[c.HerbName] = rec
	a.order = append(a.order, c.HerbName)
	a.log.Debug("Added herb data", logger.Fields{
		"herb_name": c.HerbName,
		"maps":      len(data),
	})
	return nil
}

// Records returns the accumulated records in first-seen order.
func (a *Aggregator) Records() []*Record {
	out := make([]*Record, 0, len(a.order))
	for _, name := range a.order {
		out = append(out, a.records[name])
	}
	return out
}

// Len returns the number of distinct herbs seen.
func (a *Aggregator) Len() int {
	return len(a.order)
}
