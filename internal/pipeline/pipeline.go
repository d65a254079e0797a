package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/herb-scraper/internal/gathermate"
	"github.com/pfrederiksen/herb-scraper/internal/herb"
	"github.com/pfrederiksen/herb-scraper/internal/logger"
	"github.com/pfrederiksen/herb-scraper/internal/scraper"
	"github.com/pfrederiksen/herb-scraper/internal/storage"
)

const snippetLen = 100

// ErrListUnavailable wraps every failure to obtain the herb list from the
// listing page. Without the list there is nothing further to do.
var ErrListUnavailable = errors.New("herb list unavailable")

// Source fetches Wowhead pages. *scraper.Client implements it.
type Source interface {
	Fetch(url string) (string, error)
	HerbListURL() string
	HerbURL(d herb.Descriptor) string
}

// Options tune a Pipeline
type Options struct {
	TableName      string
	KeepUnresolved bool
	Now            func() time.Time
}

// Pipeline wires the stages to a page source and a checkpoint store
type Pipeline struct {
	src      Source
	store    *storage.Storage
	resolver *herb.Resolver
	log      *logger.Logger
	opts     Options
}

// FetchSummary reports the outcome of FetchRaw
type FetchSummary struct {
	Total           int `json:"total"`
	Captured        int `json:"captured"`
	FetchFailures   int `json:"fetch_failures"`
	ExtractFailures int `json:"extract_failures"`
}

// ParseSummary reports the outcome of Parse
type ParseSummary struct {
	Captures   int `json:"captures"`
	Malformed  int `json:"malformed"`
	Records    int `json:"records"`
	Unresolved int `json:"unresolved"`
}

// ConvertSummary reports the outcome of Convert
type ConvertSummary struct {
	Path    string `json:"path"`
	Records int    `json:"records"`
	Skipped int    `json:"skipped"`
	Maps    int    `json:"maps"`
	Nodes   int    `json:"nodes"`
}

// New creates a Pipeline. A nil resolver uses herb.DefaultCodes and a nil log
// the default logger.
func New(src Source, store *storage.Storage, resolver *herb.Resolver, log *logger.Logger, opts Options) *Pipeline {
	if resolver == nil {
		resolver = herb.DefaultResolver()
	}
	if log == nil {
		log = logger.Default()
	}
	if opts.TableName == "" {
		opts.TableName = gathermate.DefaultTableName
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Pipeline{
		src:      src,
		store:    store,
		resolver: resolver,
		log:      log,
		opts:     opts,
	}
}

// FetchList fetches the listing page, extracts the herb list and saves it.
// Fetch, extraction and parse failures wrap ErrListUnavailable.
func (p *Pipeline) FetchList() ([]herb.Descriptor, error) {
	url := p.src.HerbListURL()
	p.log.Info("Fetching herb list", logger.Fields{"url": url})

	html, err := p.src.Fetch(url)
	if err != nil {
		logger.IncrCounter("fetch.failure")
		p.log.Error("Failed to fetch HTML content for the herb list", logger.Fields{"url": url}, err)
		return nil, fmt.Errorf("%w: %v", ErrListUnavailable, err)
	}
	if html == "" {
		logger.IncrCounter("fetch.failure")
		p.log.Error("Herb list page is empty", logger.Fields{"url": url}, nil)
		return nil, fmt.Errorf("%w: empty page", ErrListUnavailable)
	}
	p.log.Debug("Fetched herb list page", logger.Fields{"snippet": logger.Snippet(html, snippetLen)})

	raw, err := scraper.ExtractHerbList(html)
	if err != nil {
		logger.IncrCounter("extract.failure")
		p.log.Error("Failed to extract raw herb list data", logger.Fields{
			"url":     url,
			"snippet": logger.Snippet(html, snippetLen),
		}, err)
		return nil, fmt.Errorf("%w: %v", ErrListUnavailable, err)
	}

	herbs, err := scraper.ParseHerbList(raw)
	if err != nil {
		logger.IncrCounter("parse.failure")
		p.log.Error("Failed to parse raw herb list data", logger.Fields{
			"snippet": logger.Snippet(raw, snippetLen),
		}, err)
		return nil, fmt.Errorf("%w: %v", ErrListUnavailable, err)
	}
	if len(herbs) == 0 {
		p.log.Error("Herb list is empty", logger.Fields{"url": url}, nil)
		return nil, fmt.Errorf("%w: no herbs listed", ErrListUnavailable)
	}

	if err := p.store.SaveHerbList(herbs); err != nil {
		return nil, err
	}
	logger.SetGauge("herbs.listed", float64(len(herbs)))
	p.log.Info("Saved herb list", logger.Fields{
		"herbs": len(herbs),
		"path":  p.store.HerbListPath(),
	})
	return herbs, nil
}

// FetchRaw fetches every herb page in order and writes one capture per herb
// whose page carries mapper data. Failing herbs are logged and skipped.
func (p *Pipeline) FetchRaw(herbs []herb.Descriptor) (FetchSummary, error) {
	summary := FetchSummary{Total: len(herbs)}

	w, err := p.store.CreateRaw()
	if err != nil {
		return summary, err
	}
	p.log.Info("Fetching raw herb data", logger.Fields{
		"herbs": len(herbs),
		"path":  p.store.RawPath(),
	})

	for _, h := range herbs {
		fields := logger.Fields{"herb_id": h.ID, "herb_name": h.Name}
		p.log.Info("Processing herb", logger.Fields{"herb_id": h.ID, "display_name": h.DisplayName})

		url := p.src.HerbURL(h)
		html, err := p.src.Fetch(url)
		if err == nil && html == "" {
			err = errors.New("empty page")
		}
		if err != nil {
			summary.FetchFailures++
			logger.IncrCounter("fetch.failure")
			fields["url"] = url
			p.log.Error("HTML content retrieval failed", fields, err)
			continue
		}

		raw, err := scraper.ExtractMapperData(html)
		if err != nil {
			summary.ExtractFailures++
			logger.IncrCounter("extract.failure")
			fields["snippet"] = logger.Snippet(html, snippetLen)
			p.log.Error("Data extraction failed", fields, err)
			continue
		}

		p.log.Debug("Extracted mapper data", logger.Fields{
			"herb_id": h.ID,
			"snippet": logger.Snippet(raw, snippetLen),
		})
		if err := w.Write(herb.RawCapture{HerbID: h.ID, HerbName: h.Name, RawData: raw}); err != nil {
			w.Close() // nolint:errcheck
			return summary, err
		}
		summary.Captured++
		logger.IncrCounter("herbs.processed")
		p.log.Info("Done processing herb", logger.Fields{
			"herb_id":   h.ID,
			"processed": fmt.Sprintf("%d/%d", summary.Captured, summary.Total),
		})
	}

	if err := w.Close(); err != nil {
		return summary, err
	}
	p.log.Info("Finished fetching raw data", logger.Fields{
		"captured": summary.Captured,
		"total":    summary.Total,
	})
	return summary, nil
}

// Parse normalizes the raw captures into per-herb records and saves them.
func (p *Pipeline) Parse() (ParseSummary, error) {
	var summary ParseSummary

	p.log.Info("Parsing raw data", logger.Fields{
		"input":  p.store.RawPath(),
		"output": p.store.ParsedPath(),
	})
	captures, err := p.store.ReadCaptures(func(line int, err error) {
		summary.Malformed++
		logger.IncrCounter("parse.failure")
		p.log.Error("Skipping unreadable capture line", logger.Fields{"line": line}, err)
	})
	if err != nil {
		return summary, err
	}
	summary.Captures = len(captures)

	agg := herb.NewAggregator(p.resolver, p.log)
	summary.Malformed += p.aggregate(agg, captures)

	records := agg.Records()
	for _, rec := range records {
		if !rec.Resolved() {
			summary.Unresolved++
		}
	}
	summary.Records = len(records)

	if err := p.store.SaveRecords(records); err != nil {
		return summary, err
	}
	p.log.Info("All parsed data saved", logger.Fields{
		"records":    summary.Records,
		"unresolved": summary.Unresolved,
		"path":       p.store.ParsedPath(),
	})
	return summary, nil
}

// aggregate feeds captures into agg and returns how many were malformed.
func (p *Pipeline) aggregate(agg *herb.Aggregator, captures []herb.RawCapture) int {
	malformed := 0
	for _, c := range captures {
		p.log.Debug("Parsing data for herb", logger.Fields{
			"herb_name": c.HerbName,
			"snippet":   logger.Snippet(c.RawData, snippetLen),
		})
		if err := agg.Add(c); err != nil {
			malformed++
			logger.IncrCounter("parse.failure")
			p.log.Error("Error parsing JSON for herb", logger.Fields{
				"herb_name": c.HerbName,
				"snippet":   logger.Snippet(c.RawData, snippetLen),
			}, err)
		}
	}
	return malformed
}

// Convert builds the GatherMate2 table from the parsed records and writes
// the date-stamped Lua file.
func (p *Pipeline) Convert() (ConvertSummary, error) {
	var summary ConvertSummary

	table, records, err := p.loadTable()
	if err != nil {
		return summary, err
	}
	summary.Records = len(records)
	for _, rec := range records {
		if !rec.Resolved() && !p.opts.KeepUnresolved {
			summary.Skipped++
		}
	}

	f, err := p.store.CreateOutput(p.opts.Now())
	if err != nil {
		return summary, err
	}
	summary.Path = f.Name()
	if err := gathermate.WriteLua(f, p.opts.TableName, table); err != nil {
		f.Close() // nolint:errcheck
		return summary, fmt.Errorf("writing lua: %w", err)
	}
	if err := f.Close(); err != nil {
		return summary, fmt.Errorf("closing lua file: %w", err)
	}

	summary.Maps = len(table.MapIDs())
	summary.Nodes = table.Len()
	p.log.Info("LUA file written", logger.Fields{
		"path":    summary.Path,
		"maps":    summary.Maps,
		"nodes":   summary.Nodes,
		"skipped": summary.Skipped,
	})
	return summary, nil
}

func (p *Pipeline) loadTable() (*gathermate.Table, []*herb.Record, error) {
	p.log.Info("Starting LUA conversion", logger.Fields{"input": p.store.ParsedPath()})
	records, err := p.store.LoadRecords(func(line int, err error) {
		logger.IncrCounter("parse.failure")
		p.log.Error("Error processing line", logger.Fields{"line": line}, err)
	})
	if err != nil {
		return nil, nil, err
	}
	return gathermate.Build(records, gathermate.BuildOptions{KeepUnresolved: p.opts.KeepUnresolved}), records, nil
}

// Run executes all stages. A missing herb list ends the run early without
// an error; only checkpoint I/O failures are returned.
func (p *Pipeline) Run() error {
	start := p.opts.Now()
	p.log.Info("Starting run", logger.Fields{"data_dir": p.store.Dir()})

	herbs, err := p.FetchList()
	if errors.Is(err, ErrListUnavailable) {
		p.log.Error("No herb list, nothing to do", nil, err)
		return nil
	}
	if err != nil {
		return err
	}

	if _, err := p.FetchRaw(herbs); err != nil {
		return err
	}
	if _, err := p.Parse(); err != nil {
		return err
	}
	if _, err := p.Convert(); err != nil {
		return err
	}

	p.log.Info("Run finished", logger.Fields{
		"duration": p.opts.Now().Sub(start).Round(time.Millisecond).String(),
		"metrics":  logger.GetMetricsSnapshot(),
	})
	return nil
}
