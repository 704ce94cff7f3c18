package cli

import (
	"context"
	"fmt"

	"github.com/litmap/litmap/internal/quality"
	"github.com/litmap/litmap/internal/store"
	"github.com/spf13/cobra"
)

var (
	qualityManifestDir   string
	qualityMinMentions   int
	qualityMinConfidence float64
	qualityYes           bool
)

// qualityCmd represents the quality command
var qualityCmd = &cobra.Command{
	Use:   "quality",
	Short: "Assess and clean up low-quality extracted places",
	Long: `Quality inspects the stored places against mention-count and confidence
thresholds.

  analyze  - assess every place (keep / review / delete)
  preview  - list what an automatic cleanup would delete, touching nothing
  cleanup  - delete places; automatic candidates by default, or an explicit
             list of names. Every cleanup writes a JSON manifest.`,
}

var qualityAnalyzeCmd = &cobra.Command{
	Use:   "analyze [place]",
	Short: "Assess every stored place, or one place by name",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := newQualityManager()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		findings, err := m.Analyze(context.Background())
		if err != nil {
			return err
		}

		if len(args) == 1 {
			for _, f := range findings {
				if f.Place.CanonicalName == args[0] {
					printFinding(f)
					return nil
				}
			}
			return fmt.Errorf("place %q not found", args[0])
		}

		counts := map[string]int{}
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Quality Analysis")
		fmt.Println("═══════════════════════════════════════════════════════════")
		for _, f := range findings {
			counts[f.Action]++
			if f.Action == quality.ActionKeep && !verbose {
				continue
			}
			printFinding(f)
		}
		fmt.Printf("\n  keep: %d   review: %d   delete: %d\n\n",
			counts[quality.ActionKeep], counts[quality.ActionReview], counts[quality.ActionDelete])
		return nil
	},
}

var qualityPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "List automatic cleanup candidates without deleting anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		m, st, err := newQualityManager()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		candidates, err := m.Preview(context.Background())
		if err != nil {
			return err
		}

		if len(candidates) == 0 {
			fmt.Println("No cleanup candidates.")
			return nil
		}

		fmt.Printf("Cleanup would delete %d place(s):\n\n", len(candidates))
		for _, f := range candidates {
			printFinding(f)
		}
		fmt.Println("\nRun 'litmap quality cleanup' to delete them.")
		return nil
	},
}

var qualityCleanupCmd = &cobra.Command{
	Use:   "cleanup [place...]",
	Short: "Delete low-quality places (or an explicit list of names)",
	Long: `Cleanup deletes the automatic candidates from preview. Passing place
names deletes exactly those, bypassing the thresholds:

  litmap quality cleanup --yes
  litmap quality cleanup 先日飯島 今飯島`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Threshold-based deletion wants an explicit go-ahead; a named
		// list is its own confirmation
		if len(args) == 0 && !qualityYes {
			return fmt.Errorf("automatic cleanup deletes data; rerun with --yes, or use 'litmap quality preview' first")
		}

		m, st, err := newQualityManager()
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		result, err := m.Cleanup(context.Background(), args)
		if err != nil {
			return err
		}

		if result.Deleted == 0 {
			fmt.Println("Nothing to delete.")
			return nil
		}

		fmt.Printf("✓ Deleted %d place(s): %v\n", result.Deleted, result.Names)
		fmt.Printf("✓ Manifest: %s\n", result.ManifestPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(qualityCmd)
	qualityCmd.AddCommand(qualityAnalyzeCmd)
	qualityCmd.AddCommand(qualityPreviewCmd)
	qualityCmd.AddCommand(qualityCleanupCmd)

	qualityCmd.PersistentFlags().StringVar(&qualityManifestDir, "manifest-dir", "", "directory for cleanup manifests (default: alongside the database)")
	qualityCmd.PersistentFlags().IntVar(&qualityMinMentions, "min-mentions", 0, "mention-count floor (0 = config default)")
	qualityCmd.PersistentFlags().Float64Var(&qualityMinConfidence, "min-confidence", 0, "average-confidence floor (0 = config default)")
	qualityCleanupCmd.Flags().BoolVarP(&qualityYes, "yes", "y", false, "confirm automatic threshold-based deletion")
}

func newQualityManager() (*quality.Manager, *store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if qualityMinMentions > 0 {
		cfg.Quality.MinMentions = qualityMinMentions
	}
	if qualityMinConfidence > 0 {
		cfg.Quality.MinConfidence = qualityMinConfidence
	}

	st, err := store.NewStore(cfg.DB.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return quality.NewManager(st, cfg.Quality, qualityManifestDir), st, nil
}

func printFinding(f quality.Finding) {
	coords := "no coordinates"
	if f.Place.Geocoded() {
		coords = fmt.Sprintf("%.4f, %.4f", *f.Place.Latitude, *f.Place.Longitude)
	}
	fmt.Printf("  [%-6s] %-12s mentions=%d avg=%.2f %s",
		f.Action, f.Place.CanonicalName, f.MentionCount, f.AvgConfidence, coords)
	if len(f.Reasons) > 0 {
		fmt.Printf("  (%v)", f.Reasons)
	}
	fmt.Println()
}
