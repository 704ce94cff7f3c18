package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/litmap/litmap/internal/cache"
	"github.com/litmap/litmap/internal/geocode"
	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/store"
	"github.com/litmap/litmap/internal/worker"
	"github.com/spf13/cobra"
)

var (
	geocodeLimit   int
	geocodeStats   bool
	geocodeNoAPI   bool
	geocodeTimeout time.Duration
)

// geocodeCmd represents the geocode command
var geocodeCmd = &cobra.Command{
	Use:   "geocode",
	Short: "Resolve stored places to coordinates",
	Long: `Geocode walks every stored place without coordinates and resolves it
through a fallback chain: exact knowledge base, historical names, partial
knowledge base, external geocoding API, prefecture centroid.

Results persist immediately, so an interrupted run keeps its progress and
a rerun picks up where it left off.

Example:
  litmap geocode
  litmap geocode --limit 50
  litmap geocode --stats`,
	RunE: runGeocode,
}

func init() {
	rootCmd.AddCommand(geocodeCmd)

	geocodeCmd.Flags().IntVar(&geocodeLimit, "limit", 0, "maximum places to resolve (0 = all)")
	geocodeCmd.Flags().BoolVar(&geocodeStats, "stats", false, "print geocoding coverage and exit")
	geocodeCmd.Flags().BoolVar(&geocodeNoAPI, "no-api", false, "skip the external geocoding service")
	geocodeCmd.Flags().DurationVar(&geocodeTimeout, "timeout", 30*time.Minute, "overall run timeout")
}

func runGeocode(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), geocodeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewStore(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() { _ = st.Close() }()

	if geocodeStats {
		return printGeocodeStats(ctx, st)
	}

	knowledge, err := kb.Load(cfg.Extraction.KBPath)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	var api geocode.APILookup
	if !geocodeNoAPI && cfg.Geocoding.APIEndpoint != "" {
		limiter := worker.NewLimiter(cfg.Geocoding.RequestsPerSecond, cfg.Geocoding.Burst)

		ttl := time.Duration(cfg.Geocoding.CacheTTLMinutes) * time.Minute
		var c cache.Cache
		if cfg.Geocoding.CacheDir != "" {
			c = cache.NewLayeredCache(ttl, cfg.Geocoding.CacheDir, ttl)
		} else {
			c = cache.NewMemoryCache(ttl, 10*time.Minute)
		}

		api = geocode.NewAPIClient(cfg.Geocoding, limiter, c)
	}

	batch := geocode.NewBatch(st, geocode.NewGeocoder(knowledge, api, cfg.Geocoding))
	if verbose {
		batch.OnProgress(func(name string, result geocode.Result) {
			if result.Found {
				fmt.Fprintf(os.Stderr, "✓ %s → %.4f, %.4f (%s, %.2f)\n",
					name, result.Latitude, result.Longitude, result.Source, result.Confidence)
			} else {
				fmt.Fprintf(os.Stderr, "✗ %s not found (tried: %v)\n", name, result.Attempted)
			}
		})
	}

	report, err := batch.Run(ctx, geocodeLimit)
	if report != nil {
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Println("  Geocoding Run")
		fmt.Println("═══════════════════════════════════════════════════════════")
		fmt.Printf("  Processed:  %d\n", report.Processed)
		fmt.Printf("  Resolved:   %d\n", report.Resolved)
		fmt.Printf("  Not found:  %d\n", report.NotFound)
		fmt.Println()
	}
	if err != nil {
		return fmt.Errorf("geocoding failed: %w", err)
	}
	return nil
}

func printGeocodeStats(ctx context.Context, st *store.Store) error {
	stats, err := st.Stats(ctx)
	if err != nil {
		return fmt.Errorf("load stats: %w", err)
	}

	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Println("  Geocoding Coverage")
	fmt.Println("═══════════════════════════════════════════════════════════")
	fmt.Printf("  Places:    %d\n", stats.TotalPlaces)
	fmt.Printf("  Geocoded:  %d\n", stats.Geocoded)
	fmt.Printf("  Mentions:  %d\n", stats.TotalMentions)
	if stats.TotalPlaces > 0 {
		fmt.Printf("  Coverage:  %.1f%%\n", 100*float64(stats.Geocoded)/float64(stats.TotalPlaces))
	}

	if len(stats.BySource) > 0 {
		fmt.Println("\n  By source:")
		sources := make([]string, 0, len(stats.BySource))
		for s := range stats.BySource {
			sources = append(sources, s)
		}
		sort.Strings(sources)
		for _, s := range sources {
			fmt.Printf("    %-20s %d\n", s, stats.BySource[s])
		}
	}
	fmt.Println()
	return nil
}
