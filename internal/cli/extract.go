package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/pipeline"
	"github.com/litmap/litmap/internal/store"
	"github.com/litmap/litmap/internal/verify"
	"github.com/litmap/litmap/internal/worker"
	"github.com/spf13/cobra"
)

var (
	extractInput    string
	extractProvider string
	extractModel    string
	extractWorkers  int
	extractTimeout  time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract place mentions from a JSONL sentence file",
	Long: `Extract reads sentences from a JSONL file, finds candidate place names
with layered pattern matching, resolves overlapping spans, verifies
ambiguous candidates against their context, and stores the surviving
places and mentions in the database.

Each input line is one JSON object:
  {"sentence_id":"s1","text":"三四郎は東京へ出た。","work_id":"w1","author_id":"a1"}

Example:
  litmap extract --input sentences.jsonl
  litmap extract --input sentences.jsonl --provider openai --model gpt-4o-mini`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractInput, "input", "i", "", "JSONL sentence file (required)")
	extractCmd.Flags().StringVar(&extractProvider, "provider", "", "verification provider (openai, ollama)")
	extractCmd.Flags().StringVar(&extractModel, "model", "", "verification model name")
	extractCmd.Flags().IntVar(&extractWorkers, "workers", 0, "extraction workers (0 = config default)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 30*time.Minute, "overall run timeout")
	_ = extractCmd.MarkFlagRequired("input")
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), extractTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if extractProvider != "" {
		cfg.Verifier.Provider = extractProvider
	}
	if extractModel != "" {
		cfg.Verifier.Model = extractModel
	}
	if extractWorkers > 0 {
		cfg.Concurrency.ExtractionWorkers = extractWorkers
	}
	if cfg.Verifier.Provider == "openai" && cfg.Verifier.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable not set")
	}

	knowledge, err := kb.Load(cfg.Extraction.KBPath)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	st, err := store.NewStore(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = st.Close() }()

	provider, err := verify.NewProvider(verify.ConfigFromModel(cfg.Verifier))
	if err != nil {
		return err
	}

	limiter := worker.NewLimiter(cfg.Verifier.RequestsPerSecond, cfg.Verifier.Burst)
	verifier := verify.NewVerifier(provider, limiter, cfg.Verifier)

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Reading sentences from %s...\n", extractInput)
	}
	sentences, err := pipeline.ReadSentencesFile(extractInput)
	if err != nil {
		return fmt.Errorf("read sentences: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Loaded %d sentences\n", len(sentences))
		if provider != nil {
			fmt.Fprintf(os.Stderr, "  Verifier:  %s/%s\n", cfg.Verifier.Provider, cfg.Verifier.Model)
		} else {
			fmt.Fprintf(os.Stderr, "  Verifier:  local context analysis only\n")
		}
		fmt.Fprintf(os.Stderr, "  Workers:   %d\n", cfg.Concurrency.ExtractionWorkers)
		fmt.Fprintf(os.Stderr, "  Database:  %s\n\n", st.Path())
	}

	p := pipeline.NewPipeline(cfg, knowledge, st, verifier)
	report, err := p.Run(ctx, sentences)
	if err != nil {
		printRunReport(report)
		return fmt.Errorf("extraction failed: %w", err)
	}

	printRunReport(report)
	return nil
}

func printRunReport(report *model.RunReport) {
	if report == nil {
		return
	}
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Extraction Run")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Sentences:   %d\n", report.SentencesProcessed)
	fmt.Printf("  Candidates:  %d\n", report.CandidatesExtracted)
	fmt.Printf("  Mentions:    %d\n", report.MentionsCreated)
	fmt.Printf("  Verified:    %d\n", report.Verified)
	fmt.Printf("  Rejected:    %d\n", report.Rejected)
	fmt.Printf("  Degraded:    %d\n", report.Degraded)
	fmt.Printf("  Duration:    %v\n", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	if len(report.Failures) > 0 {
		fmt.Printf("\n  Failures (%d):\n", len(report.Failures))
		for _, f := range report.Failures {
			fmt.Printf("    [%s] %s: %s\n", f.Stage, f.SentenceID, f.Error)
		}
	}
	fmt.Println()
}
