package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/herb-scraper/internal/config"
	"github.com/pfrederiksen/herb-scraper/internal/herb"
	"github.com/pfrederiksen/herb-scraper/internal/logger"
	"github.com/pfrederiksen/herb-scraper/internal/pipeline"
	"github.com/pfrederiksen/herb-scraper/internal/scraper"
	"github.com/pfrederiksen/herb-scraper/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	cfg config.Config

	flagBaseURL        string
	flagDataDir        string
	flagLogDir         string
	flagTimeout        int
	flagVerbose        bool
	flagKeepUnresolved bool
	flagFormat         string
	flagSort           string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = config.Load()

	cmd := &cobra.Command{
		Use:   "herb-scraper",
		Short: "Build a GatherMate2 herb database from Wowhead",
		Long: `Scrapes Wowhead herb pages for node locations and writes a GatherMate2
herb database (HerbData<date>.lua). Without a subcommand all stages run in order.`,
		SilenceUsage: true,
		RunE:         runAll,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", cfg.BaseURL, "Wowhead base URL")
	pf.StringVar(&flagDataDir, "data-dir", cfg.DataDir, "Data directory for checkpoints and output")
	pf.StringVar(&flagLogDir, "log-dir", cfg.LogDir, "Directory for debug.log and info.log")
	pf.IntVar(&flagTimeout, "timeout", int(cfg.Timeout/time.Second), "Per-request timeout in seconds")
	pf.BoolVar(&flagVerbose, "verbose", false, "Log debug output to stderr")
	pf.BoolVar(&flagKeepUnresolved, "keep-unresolved", cfg.KeepUnresolved, "Keep herbs without a GatherMate2 id as nil entries")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "Fetch the herb list",
			Args:  cobra.NoArgs,
			RunE:  runList,
		},
		&cobra.Command{
			Use:   "fetch",
			Short: "Fetch herb pages listed in the herb list checkpoint",
			Args:  cobra.NoArgs,
			RunE:  runFetch,
		},
		&cobra.Command{
			Use:   "parse",
			Short: "Normalize raw captures into herb records",
			Args:  cobra.NoArgs,
			RunE:  runParse,
		},
		&cobra.Command{
			Use:   "convert",
			Short: "Write the Lua database from herb records",
			Args:  cobra.NoArgs,
			RunE:  runConvert,
		},
		newInspectCmd(),
	)

	return cmd
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarize nodes per map from herb records",
		Args:  cobra.NoArgs,
		RunE:  runInspect,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagSort, "sort", "map", "Sort order: map or nodes")
	return cmd
}

// setup builds the run logger, store and pipeline from flags. The returned
// func closes the log files.
func setup() (*pipeline.Pipeline, *storage.Storage, func(), error) {
	level := logger.ParseLevel(cfg.LogLevel)
	if flagVerbose {
		level = logger.LevelDebug
	}

	log, err := logger.NewRunLogger(flagLogDir, level, os.Stderr)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	logger.SetDefault(log)

	store, err := storage.New(flagDataDir)
	if err != nil {
		log.Close() // nolint:errcheck
		return nil, nil, nil, fmt.Errorf("initializing storage: %w", err)
	}

	client := scraper.New(flagBaseURL, time.Duration(flagTimeout)*time.Second, nil)
	p := pipeline.New(client, store, herb.DefaultResolver(), log, pipeline.Options{
		TableName:      cfg.TableName,
		KeepUnresolved: flagKeepUnresolved,
	})

	return p, store, func() { log.Close() }, nil // nolint:errcheck
}

// runAll runs every stage
func runAll(cmd *cobra.Command, args []string) error {
	p, _, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	start := time.Now()
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Starting herb scrape... This may take a while.")
	fmt.Fprintf(out, "Start time: %s\n", start.Format(time.RFC1123))

	if err := p.Run(); err != nil {
		return err
	}

	fmt.Fprintf(out, "All done! Total time taken: %.2f seconds\n", time.Since(start).Seconds())
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	p, _, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	herbs, err := p.FetchList()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved %d herbs.\n", len(herbs))
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	p, store, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	herbs, err := store.LoadHerbList()
	if err != nil {
		return fmt.Errorf("loading herb list (run 'herb-scraper list' first): %w", err)
	}

	summary, err := p.FetchRaw(herbs)
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), "fetch", fmt.Sprintf("captured %d/%d herbs (%d fetch failures, %d extraction failures)",
		summary.Captured, summary.Total, summary.FetchFailures, summary.ExtractFailures))
}

func runParse(cmd *cobra.Command, args []string) error {
	p, _, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	summary, err := p.Parse()
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), "parse", fmt.Sprintf("%d records from %d captures (%d malformed, %d without herb code)",
		summary.Records, summary.Captures, summary.Malformed, summary.Unresolved))
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, _, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	summary, err := p.Convert()
	if err != nil {
		return err
	}
	return writeSummary(cmd.OutOrStdout(), "convert", fmt.Sprintf("wrote %d nodes on %d maps to %s (%d records skipped)",
		summary.Nodes, summary.Maps, summary.Path, summary.Skipped))
}

func runInspect(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}
	order := SortOrder(strings.ToLower(flagSort))
	if order != SortByMap && order != SortByNodes {
		return fmt.Errorf("invalid sort: %s (must be 'map' or 'nodes')", flagSort)
	}

	p, _, done, err := setup()
	if err != nil {
		return err
	}
	defer done()

	maps, err := p.Inspect()
	if err != nil {
		return err
	}
	sortMaps(maps, order)
	return WriteInspect(cmd.OutOrStdout(), maps, format)
}

func writeSummary(w io.Writer, stage, text string) error {
	_, err := fmt.Fprintf(w, "%s: %s\n", stage, text)
	return err
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
