package quality

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/store"
)

// Recommended actions from quality analysis.
const (
	ActionKeep   = "keep"
	ActionReview = "review"
	ActionDelete = "delete"
)

// Finding is one place with its quality assessment.
type Finding struct {
	Place         model.Place `json:"place"`
	MentionCount  int         `json:"mention_count"`
	AvgConfidence float64     `json:"avg_confidence"`
	Works         int         `json:"works"`
	Authors       int         `json:"authors"`
	Action        string      `json:"action"`
	Reasons       []string    `json:"reasons,omitempty"`
}

// CleanupResult records what a cleanup run removed.
type CleanupResult struct {
	Deleted      int64    `json:"deleted"`
	Names        []string `json:"names"`
	ManifestPath string   `json:"manifest_path,omitempty"`
}

// Manager assesses stored places against the quality thresholds and drives
// preview/cleanup. Deletion only ever happens through Cleanup, and every
// cleanup leaves a manifest behind.
type Manager struct {
	store       *store.Store
	cfg         model.QualityConfig
	manifestDir string
}

// NewManager creates a quality manager. Manifests land in manifestDir;
// empty means alongside the database.
func NewManager(s *store.Store, cfg model.QualityConfig, manifestDir string) *Manager {
	if cfg.MinMentions == 0 {
		cfg.MinMentions = 2
	}
	if cfg.MinConfidence == 0 {
		cfg.MinConfidence = 0.5
	}
	if manifestDir == "" {
		manifestDir = filepath.Dir(s.Path())
	}
	return &Manager{store: s, cfg: cfg, manifestDir: manifestDir}
}

// Analyze assesses every stored place. Deletion candidates fail all three
// quality signals; places failing only some get flagged for review.
func (m *Manager) Analyze(ctx context.Context) ([]Finding, error) {
	stats, err := m.store.PlaceStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load place stats: %w", err)
	}

	findings := make([]Finding, 0, len(stats))
	for _, agg := range stats {
		f := Finding{
			Place:         agg.Place,
			MentionCount:  agg.MentionCount,
			AvgConfidence: agg.AvgConfidence,
			Works:         agg.Works,
			Authors:       agg.Authors,
		}

		if agg.MentionCount < m.cfg.MinMentions {
			f.Reasons = append(f.Reasons, fmt.Sprintf("only %d mention(s)", agg.MentionCount))
		}
		if agg.AvgConfidence < m.cfg.MinConfidence {
			f.Reasons = append(f.Reasons, fmt.Sprintf("average confidence %.2f", agg.AvgConfidence))
		}
		if !agg.Place.Geocoded() {
			f.Reasons = append(f.Reasons, "no coordinates")
		}

		switch len(f.Reasons) {
		case 0:
			f.Action = ActionKeep
		case 3:
			f.Action = ActionDelete
		default:
			f.Action = ActionReview
		}
		findings = append(findings, f)
	}
	return findings, nil
}

// Preview lists the places an automatic cleanup would delete, without
// touching anything.
func (m *Manager) Preview(ctx context.Context) ([]Finding, error) {
	findings, err := m.Analyze(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []Finding
	for _, f := range findings {
		if f.Action == ActionDelete {
			candidates = append(candidates, f)
		}
	}
	return candidates, nil
}

// Cleanup deletes places. With an empty name list it deletes the automatic
// candidates from Preview; with explicit names it deletes exactly those,
// bypassing the thresholds. The manifest is written before any row is
// removed so the record survives a mid-delete crash.
func (m *Manager) Cleanup(ctx context.Context, names []string) (*CleanupResult, error) {
	var targets []Finding
	if len(names) == 0 {
		auto, err := m.Preview(ctx)
		if err != nil {
			return nil, err
		}
		targets = auto
	} else {
		for _, name := range names {
			p, err := m.store.GetPlace(ctx, name)
			if err != nil {
				return nil, fmt.Errorf("lookup %q: %w", name, err)
			}
			if p == nil {
				return nil, fmt.Errorf("place %q not found", name)
			}
			targets = append(targets, Finding{Place: *p, Action: ActionDelete})
		}
	}

	result := &CleanupResult{}
	if len(targets) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(targets))
	for _, f := range targets {
		ids = append(ids, f.Place.ID)
		result.Names = append(result.Names, f.Place.CanonicalName)
	}

	manifestPath, err := m.writeManifest(targets, len(names) > 0)
	if err != nil {
		return nil, err
	}
	result.ManifestPath = manifestPath

	deleted, err := m.store.DeletePlaces(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("delete places: %w", err)
	}
	result.Deleted = deleted
	return result, nil
}

type manifest struct {
	DeletedAt time.Time `json:"deleted_at"`
	Mode      string    `json:"mode"` // "auto" or "manual"
	Places    []Finding `json:"places"`
}

func (m *Manager) writeManifest(targets []Finding, manual bool) (string, error) {
	mode := "auto"
	if manual {
		mode = "manual"
	}

	data, err := json.MarshalIndent(manifest{
		DeletedAt: time.Now().UTC(),
		Mode:      mode,
		Places:    targets,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.MkdirAll(m.manifestDir, 0700); err != nil {
		return "", fmt.Errorf("create manifest dir: %w", err)
	}

	path := filepath.Join(m.manifestDir, fmt.Sprintf("cleanup-%s.json", time.Now().UTC().Format("20060102-150405")))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write manifest: %w", err)
	}
	return path, nil
}
