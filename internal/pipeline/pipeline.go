package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/litmap/litmap/internal/extract"
	"github.com/litmap/litmap/internal/kb"
	"github.com/litmap/litmap/internal/model"
	"github.com/litmap/litmap/internal/resolve"
	"github.com/litmap/litmap/internal/store"
	"github.com/litmap/litmap/internal/verify"
	"github.com/litmap/litmap/internal/worker"
)

// Pipeline orchestrates the extraction run: pattern extraction and span
// resolution fan out across workers, then verification and persistence run
// serially so the service quota and the database see ordered traffic.
type Pipeline struct {
	extractor *extract.Extractor
	resolver  *resolve.Resolver
	verifier  *verify.Verifier
	store     *store.Store
	workers   int
}

// NewPipeline wires the stages together.
func NewPipeline(cfg *model.Config, knowledge *kb.KB, st *store.Store, v *verify.Verifier) *Pipeline {
	workers := cfg.Concurrency.ExtractionWorkers
	if workers <= 0 {
		workers = 4
	}
	return &Pipeline{
		extractor: extract.NewExtractor(knowledge, cfg.Extraction),
		resolver:  resolve.NewResolver(),
		verifier:  v,
		store:     st,
		workers:   workers,
	}
}

// sentenceJob extracts and resolves one sentence on a pool worker.
type sentenceJob struct {
	pipeline *Pipeline
	sentence model.Sentence
}

// sentenceResult carries the resolved candidates back to the serial stage.
type sentenceResult struct {
	sentence   model.Sentence
	candidates []model.Candidate
	err        error
}

func (r sentenceResult) GetError() error { return r.err }

func (j sentenceJob) Execute(ctx context.Context) worker.Result {
	if err := ctx.Err(); err != nil {
		return sentenceResult{sentence: j.sentence, err: err}
	}
	candidates := j.pipeline.extractor.Extract(j.sentence.Text)
	return sentenceResult{
		sentence:   j.sentence,
		candidates: j.pipeline.resolver.Resolve(candidates),
	}
}

// Run processes every sentence: extract, resolve, verify, persist. A failing
// sentence is recorded in the report and skipped; only storage errors abort
// the run.
func (p *Pipeline) Run(ctx context.Context, sentences []model.Sentence) (*model.RunReport, error) {
	report := &model.RunReport{StartedAt: time.Now().UTC()}
	defer func() { report.FinishedAt = time.Now().UTC() }()

	pool := worker.NewPool(p.workers)
	pool.Start()

	jobs := make([]worker.Job, len(sentences))
	for i, s := range sentences {
		jobs[i] = sentenceJob{pipeline: p, sentence: s}
	}
	results := pool.Run(jobs)

	for _, r := range results {
		res := r.(sentenceResult)
		report.SentencesProcessed++

		if res.err != nil {
			slog.Warn("sentence failed", "sentence_id", res.sentence.ID, "error", res.err)
			report.Failures = append(report.Failures, model.Failure{
				SentenceID: res.sentence.ID,
				Stage:      "extract",
				Error:      res.err.Error(),
			})
			continue
		}
		report.CandidatesExtracted += len(res.candidates)

		if err := p.settle(ctx, res.sentence, res.candidates, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

// settle runs verification and persistence for one sentence's candidates.
func (p *Pipeline) settle(ctx context.Context, sentence model.Sentence, candidates []model.Candidate, report *model.RunReport) error {
	for _, cand := range candidates {
		matchedText := cand.Text

		outcome := p.verifier.Verify(ctx, cand, sentence)
		switch {
		case !outcome.Keep:
			report.Rejected++
			continue
		case outcome.Status == model.StatusVerified:
			report.Verified++
		case outcome.Degraded:
			slog.Warn("verification degraded, accepting unverified",
				"sentence_id", sentence.ID, "text", cand.Text)
			report.Degraded++
		}

		// Surface forms that differ from the canonical key (東京都 vs 東京)
		// survive as aliases on the merged place
		canonical := model.NormalizeName(outcome.Candidate.Text)
		var aliases []string
		if outcome.Candidate.Text != canonical {
			aliases = append(aliases, outcome.Candidate.Text)
		}
		if matchedText != canonical && matchedText != outcome.Candidate.Text {
			aliases = append(aliases, matchedText)
		}

		placeID, err := p.store.UpsertPlace(ctx, model.Place{
			CanonicalName: canonical,
			Aliases:       aliases,
			Type:          placeTypeFor(cand, outcome.PlaceType),
			Status:        outcome.Status,
		})
		if err != nil {
			return fmt.Errorf("persist place: %w", err)
		}

		written, err := p.store.UpsertMention(ctx, model.Mention{
			SentenceID:    sentence.ID,
			PlaceID:       placeID,
			WorkID:        sentence.WorkID,
			AuthorID:      sentence.AuthorID,
			MatchedText:   matchedText,
			Method:        cand.Method,
			Confidence:    outcome.Candidate.Confidence,
			Position:      cand.Start,
			ContextBefore: sentence.ContextBefore,
			ContextAfter:  sentence.ContextAfter,
			Status:        outcome.Status,
		})
		if err != nil {
			return fmt.Errorf("persist mention: %w", err)
		}
		// A lower-confidence replay leaves the stored row alone and does
		// not count as a created mention
		if written {
			report.MentionsCreated++
		}
	}
	return nil
}

// placeTypeFor maps the extraction method to a place type when the verifier
// did not supply one. Gazetteer and compound matches stay untyped here; the
// knowledge base knows better at geocoding time.
func placeTypeFor(cand model.Candidate, verified model.PlaceType) model.PlaceType {
	if verified != "" {
		return verified
	}
	switch cand.Method {
	case model.MethodPrefecture:
		return model.PlaceTypePrefecture
	case model.MethodCompound, model.MethodMunicipality:
		return model.PlaceTypeMunicipality
	case model.MethodNatural:
		return model.PlaceTypeNatural
	case model.MethodReligious:
		return model.PlaceTypeReligious
	default:
		return ""
	}
}
