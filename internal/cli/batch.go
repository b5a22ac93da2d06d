package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/credlens/credlens/internal/pipeline"
	"github.com/credlens/credlens/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchOutDir      string
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <urls-file>",
	Short: "Analyze multiple URLs concurrently",
	Long: `Batch reads URLs from a file (one per line, # comments allowed) and
analyzes them concurrently through a worker pool with per-domain rate
limiting. One JSON report is written per URL.

Example:
  credlens batch urls.txt --concurrency 8 --out reports/`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 4, "number of concurrent analyses")
	batchCmd.Flags().StringVar(&batchOutDir, "out", "reports", "output directory for JSON reports")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "overall batch timeout")
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if batchConcurrency > 0 {
		cfg.Concurrency.BatchWorkers = batchConcurrency
	}

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(batchOutDir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.BatchWorkers,
		cfg.Concurrency.RequestsPerSecond, cfg.Concurrency.Burst)
	results, err := processor.ProcessFile(ctx, args[0])
	if err != nil {
		return err
	}

	renderer := pipeline.NewRenderer(cfg.Output.IncludeFooter)

	succeeded, failed := 0, 0
	for _, result := range results {
		if result.Error != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, result.Error)
			continue
		}

		succeeded++
		path := filepath.Join(batchOutDir, reportFilename(result.URL))
		if err := renderer.RenderJSON(result.Report, path); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.URL, err)
			continue
		}

		if verbose {
			fmt.Printf("✓ %s -> %s\n", result.URL, path)
		}
	}

	fmt.Printf("\nBatch complete: %d succeeded, %d failed\n", succeeded, failed)
	return nil
}

// reportFilename derives a filesystem-safe report name from a URL
func reportFilename(url string) string {
	name := strings.TrimPrefix(url, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-':
			return r
		default:
			return '_'
		}
	}, name)

	if len(name) > 120 {
		name = name[:120]
	}
	return name + ".json"
}
