// Package pipeline orchestrates one credibility analysis: segmentation,
// classification, fact-check lookup, reputation lookup and aggregation.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ppiankov/veracity/internal/cache"
	"github.com/ppiankov/veracity/internal/classify"
	"github.com/ppiankov/veracity/internal/factcheck"
	"github.com/ppiankov/veracity/internal/model"
	"github.com/ppiankov/veracity/internal/reputation"
	"github.com/ppiankov/veracity/internal/score"
	"github.com/ppiankov/veracity/internal/segment"
)

// Analyzer runs the credibility pipeline. It holds only read-only or
// internally synchronized state and is safe for concurrent requests;
// all per-request entities live and die within one Analyze call.
type Analyzer struct {
	classifier classify.Classifier
	fallback   classify.Classifier // deterministic stub for degraded mode
	normalizer *classify.Normalizer
	checker    factcheck.Checker
	reputation *reputation.Store
	aggregator *score.Aggregator

	minSentenceLength int
	minTextLength     int
	sentenceWorkers   int
	log               *slog.Logger
}

// New wires an analyzer from validated configuration. The classifier
// backend is loaded lazily on first use behind a concurrency guard.
func New(cfg *model.Config, log *slog.Logger) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	store, err := reputation.Load(cfg.Reputation.File, cfg.Reputation.Neutral)
	if err != nil {
		return nil, err
	}
	if cfg.Reputation.File != "" && store.Len() == 0 {
		log.Warn("reputation table empty or missing, all domains resolve to neutral", "file", cfg.Reputation.File)
	}

	modelCfg := cfg.Model
	var classifier classify.Classifier = classify.NewLazy(func() (classify.Classifier, error) {
		return classify.New(modelCfg)
	})
	if ttl := time.Duration(cfg.Model.CacheTTL) * time.Second; ttl > 0 {
		classifier = classify.NewCached(classifier, cache.NewMemoryCache(ttl, 2*ttl), ttl)
	}

	return &Analyzer{
		classifier:        classifier,
		fallback:          classify.NewHeuristic(cfg.Model.MaxLength),
		normalizer:        classify.NewNormalizer(cfg.Labels),
		checker:           factcheck.NewClient(cfg.FactCheck, log),
		reputation:        store,
		aggregator:        score.NewAggregator(cfg.Scoring),
		minSentenceLength: cfg.Model.MinSentenceLength,
		minTextLength:     cfg.Scoring.MinTextLength,
		sentenceWorkers:   cfg.Model.SentenceWorkers,
		log:               log,
	}, nil
}

// ModelName reports the active classifier backend (for health output).
func (a *Analyzer) ModelName() string {
	return a.classifier.Name()
}

// FactCheckConfigured reports whether the evidence service has a
// credential (for health output).
func (a *Analyzer) FactCheckConfigured() bool {
	return a.checker.Configured()
}

// Analyze scores one input and returns the immutable result. Input
// problems come back as InputError; downstream-service degradation
// never fails the request, it yields a flagged result instead.
func (a *Analyzer) Analyze(ctx context.Context, in model.AnalysisInput) (*model.CredibilityResult, error) {
	if err := in.Validate(a.minTextLength); err != nil {
		return nil, err
	}

	sentences, err := segment.Split(in.Text)
	if err != nil {
		return nil, err
	}

	// The fact-check lookup and the classifier calls are independent;
	// run them concurrently.
	verdictCh := make(chan []model.FactCheckVerdict, 1)
	go func() {
		verdictCh <- a.checker.Lookup(ctx, in.Text)
	}()

	primary, degraded := a.classifyOrFallback(ctx, in.Text)
	label := a.normalizer.Normalize(primary.RawLabel, primary.Confidence)

	sentenceScores, sentenceDegraded := a.scoreSentences(ctx, sentences)
	degraded = degraded || sentenceDegraded

	verdicts := <-verdictCh

	var rep *float64
	var source string
	if in.Kind == model.KindURL && in.SourceDomain != "" {
		source = reputation.Normalize(in.SourceDomain)
		value, known := a.reputation.Lookup(in.SourceDomain)
		rep = &value
		if !known {
			a.log.Debug("unknown source domain, using neutral reputation", "domain", source)
		}
	}

	outcome := a.aggregator.Aggregate(score.Inputs{
		Label:      label,
		Confidence: primary.Confidence,
		Sentences:  sentenceScores,
		Verdicts:   verdicts,
		Reputation: rep,
	})

	return &model.CredibilityResult{
		Label:            label,
		ModelConfidence:  primary.Confidence,
		CredibilityScore: outcome.CredibilityScore,
		Breakdown:        outcome.Breakdown,
		Highlights:       outcome.Highlights,
		FactCheck:        verdicts,
		Source:           source,
		SourceReputation: rep,
		Explainability: model.Explainability{
			Method:  "sentence_scoring",
			Details: fmt.Sprintf("analyzed %d sentences using %s", len(sentenceScores), a.classifier.Name()),
		},
		Meta: model.AnalysisMeta{
			TextLength:        len(in.Text),
			SentencesAnalyzed: len(sentenceScores),
			ModelTruncated:    primary.Truncated,
			DegradedModel:     degraded,
		},
	}, nil
}

// classifyOrFallback asks the configured backend and substitutes the
// deterministic stub when it is unavailable. The substitution is
// flagged, never silent: a degraded result must be recognizable.
func (a *Analyzer) classifyOrFallback(ctx context.Context, text string) (classify.Prediction, bool) {
	pred, err := a.classifier.Classify(ctx, text)
	if err == nil {
		return pred, false
	}
	a.log.Warn("classifier backend failed, substituting heuristic stub", "error", err)
	pred, _ = a.fallback.Classify(ctx, text) // the stub cannot fail
	return pred, true
}

// scoreSentences classifies each sentence concurrently and reassembles
// the results in original order. Sentences below the minimum length are
// skipped; surviving scores keep their original positions.
func (a *Analyzer) scoreSentences(ctx context.Context, sentences []segment.Sentence) ([]model.SentenceScore, bool) {
	results := make([]*model.SentenceScore, len(sentences))
	degraded := make([]bool, len(sentences))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, a.sentenceWorkers)

	for i, s := range sentences {
		if len(strings.TrimSpace(s.Text)) < a.minSentenceLength {
			continue
		}
		wg.Add(1)
		go func(idx int, s segment.Sentence) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			pred, wasDegraded := a.classifyOrFallback(ctx, s.Text)
			label := a.normalizer.Normalize(pred.RawLabel, pred.Confidence)

			// Suspicion tracks the probability of the suspicious class:
			// for a credible label it is the complement of confidence.
			suspicion := pred.Confidence
			if label.Credible() {
				suspicion = 1 - pred.Confidence
			}

			results[idx] = &model.SentenceScore{
				Sentence:       s.Text,
				Position:       s.Position,
				SuspicionScore: suspicion,
				Label:          label,
			}
			degraded[idx] = wasDegraded
		}(i, s)
	}
	wg.Wait()

	scores := make([]model.SentenceScore, 0, len(sentences))
	anyDegraded := false
	for i, r := range results {
		if r == nil {
			continue
		}
		scores = append(scores, *r)
		anyDegraded = anyDegraded || degraded[i]
	}
	return scores, anyDegraded
}
