package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/yokomichi/chintaiscan/internal/pipeline"
)

var (
	dbPath    string
	tableName string
	maxPages  int
	timeout   time.Duration
	noRobots  bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full scrape-normalize-dedup-geocode pipeline",
	Long: `Run fetches the configured page range from each listing site, extracts
one raw record per rentable unit, normalizes the free-text fields into
the typed schema, collapses cross-source duplicates, and writes the
result to SQLite. The table is written twice: once right after
deduplication and once more after geocoding, so an interrupted run
still leaves a queryable table without coordinates.

Example:
  chintaiscan run
  chintaiscan run --pages 2 --db /tmp/chintai.db -v`,
	Args: cobra.NoArgs,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (default from config)")
	runCmd.Flags().StringVar(&tableName, "table", "", "output table name (default from config)")
	runCmd.Flags().IntVar(&maxPages, "pages", 0, "override pages per source (0 = per-source config)")
	runCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Minute, "overall run timeout (geocoding dominates: one address per second)")
	runCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if dbPath != "" {
		cfg.Store.Path = dbPath
	}
	if tableName != "" {
		cfg.Store.Table = tableName
	}
	if maxPages > 0 {
		for i := range cfg.Sources {
			cfg.Sources[i].MaxPages = maxPages
		}
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		for _, src := range cfg.Sources {
			fmt.Fprintf(os.Stderr, "Source %s: %d pages\n", src.Name, src.MaxPages)
		}
		fmt.Fprintf(os.Stderr, "Output: %s table %q\n\n", cfg.Store.Path, cfg.Store.Table)
	}

	p := pipeline.New(cfg, stderrProgress{})

	result, err := p.Run(ctx)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "✓ Fetched %d pages\n", result.PagesFetched)
	fmt.Fprintf(os.Stderr, "✓ Extracted %d unit records\n", result.RawRecords)
	fmt.Fprintf(os.Stderr, "✓ Removed %d cross-source duplicates\n", result.DuplicatesRemoved)
	fmt.Fprintf(os.Stderr, "✓ Geocoded %d/%d records\n", result.Geocoded, result.Consolidated)
	if verbose && len(result.Issues) > 0 {
		fmt.Fprintf(os.Stderr, "\n%d recoverable issues:\n", len(result.Issues))
		for _, issue := range result.Issues {
			fmt.Fprintf(os.Stderr, "  [%s] %s %s: %s\n", issue.Kind, issue.Source, issue.Field, issue.Detail)
		}
	}

	return nil
}

// stderrProgress prints one line per geocoded address.
type stderrProgress struct{}

func (stderrProgress) Resolved(done, total int, lat, lon float64) {
	fmt.Fprintf(os.Stderr, "%d/%d geocoded: %f, %f\n", done, total, lat, lon)
}

func (stderrProgress) NotFound(done, total int) {
	fmt.Fprintf(os.Stderr, "%d/%d address not found\n", done, total)
}

func (stderrProgress) Failed(done, total int, address string, err error) {
	fmt.Fprintf(os.Stderr, "%d/%d failed for %s: %v\n", done, total, address, err)
}
