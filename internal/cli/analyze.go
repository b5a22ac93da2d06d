package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/credlens/credlens/internal/model"
	"github.com/credlens/credlens/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	analyzeText  string
	analyzeFile  string
	analyzeTitle string
	outJSON      string
	outMD        string
	timeout      time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	noRobots     bool
	insecureTLS  bool
	catalogPath  string
	llmProvider  string
	llmModel     string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [url]",
	Short: "Analyze a URL or text block for credibility signals",
	Long: `Analyze scores a news article or free text for:
- Manipulative language patterns (fear mongering, false urgency, loaded
  language, absolutism, conspiracy rhetoric, clickbait)
- Source credibility (URL mode)
- Bias and transparency signals
- A composite trust score with an explicit confidence tier

Example:
  credlens analyze https://example.com/news/article
  credlens analyze --text "BREAKING: you won't believe this shocking truth!"
  credlens analyze --file article.txt --title "Article headline"
  credlens analyze https://example.com --json report.json --md report.md`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Input flags
	analyzeCmd.Flags().StringVar(&analyzeText, "text", "", "analyze this text instead of fetching a URL")
	analyzeCmd.Flags().StringVar(&analyzeFile, "file", "", "analyze the contents of this file")
	analyzeCmd.Flags().StringVar(&analyzeTitle, "title", "", "title for text/file input")

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	// HTTP flags
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().StringVar(&userAgent, "ua", "", "HTTP User-Agent override")
	analyzeCmd.Flags().Int64Var(&maxBytes, "max-bytes", 2_000_000, "max response bytes to read")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable page cache (force fresh fetch)")
	analyzeCmd.Flags().BoolVar(&noRobots, "no-robots", false, "skip robots.txt checks")
	analyzeCmd.Flags().BoolVar(&insecureTLS, "insecure", false, "skip TLS certificate verification")

	// Scoring flags
	analyzeCmd.Flags().StringVar(&catalogPath, "catalog", "", "custom indicator catalog YAML")

	// LLM flags
	analyzeCmd.Flags().StringVar(&llmProvider, "llm", "", "LLM summary provider (openai, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && analyzeText == "" && analyzeFile == "" {
		return fmt.Errorf("provide a URL, --text, or --file")
	}

	cfg := loadConfig()
	applyAnalyzeFlags(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	p, err := pipeline.NewPipeline(cfg)
	if err != nil {
		return err
	}

	report, err := runAnalysis(ctx, p, args)
	if err != nil {
		return err
	}

	return p.RenderReport(report, outJSON, outMD, verbose)
}

func runAnalysis(ctx context.Context, p *pipeline.Pipeline, args []string) (*model.Report, error) {
	switch {
	case len(args) == 1:
		if verbose {
			fmt.Fprintf(os.Stderr, "Analyzing: %s\n", args[0])
		}
		return p.AnalyzeURL(ctx, args[0])

	case analyzeFile != "":
		data, err := os.ReadFile(analyzeFile)
		if err != nil {
			return nil, fmt.Errorf("read input file: %w", err)
		}
		return p.AnalyzeText(ctx, string(data), analyzeTitle)

	default:
		return p.AnalyzeText(ctx, analyzeText, analyzeTitle)
	}
}

// applyAnalyzeFlags overlays explicit CLI flags onto the loaded config
func applyAnalyzeFlags(cfg *model.Config) {
	cfg.HTTP.Timeout = timeout
	cfg.HTTP.MaxBodyBytes = maxBytes
	if userAgent != "" {
		cfg.HTTP.UserAgent = userAgent
	}
	if insecureTLS {
		cfg.HTTP.InsecureTLS = true
	}
	if noRobots {
		cfg.HTTP.RespectRobots = false
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if catalogPath != "" {
		cfg.Catalog.Path = catalogPath
	}
	if llmProvider != "" {
		cfg.LLM.Provider = llmProvider
	}
	if llmModel != "" {
		cfg.LLM.Model = llmModel
	}
}
