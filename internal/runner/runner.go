// Package runner drives an evaluation: it samples the corpus, retrieves a
// document per question, asks the generator, classifies the answer, and folds
// everything into an aggregate report.
package runner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"finqa/internal/classify"
	"finqa/internal/config"
	"finqa/internal/corpus"
	"finqa/internal/logging"
	"finqa/internal/metrics"
	"finqa/internal/qa"
	"finqa/internal/retrieval"
	"finqa/internal/scoring"
)

// Record is the full trace of one evaluated question.
type Record struct {
	Index        int            `json:"index"`
	Question     string         `json:"question"`
	GroundTruth  string         `json:"ground_truth"`
	SourceDoc    string         `json:"source_doc"`
	RetrievedDoc string         `json:"retrieved_doc,omitempty"`
	RetrievalHit bool           `json:"retrieval_hit"`
	Prediction   qa.Prediction  `json:"prediction"`
	Result       metrics.Result `json:"result"`
}

// RunResult is everything one evaluation run produced.
type RunResult struct {
	RunID     string        `json:"run_id"`
	Model     string        `json:"model"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	CorpusSize int `json:"corpus_size"`
	Evaluated  int `json:"evaluated"`

	Records []Record                 `json:"records"`
	Report  *metrics.AggregateReport `json:"-"`
	Usage   qa.TokenUsage            `json:"usage"`
	Cost    qa.CostReport            `json:"cost"`
}

// RetrievalHits counts the questions whose top-ranked document was the one
// the question was asked about.
func (r *RunResult) RetrievalHits() int {
	hits := 0
	for _, rec := range r.Records {
		if rec.RetrievalHit {
			hits++
		}
	}
	return hits
}

// Runner evaluates a generator over a document corpus.
type Runner struct {
	cfg        config.Config
	docs       []*corpus.Document
	generator  qa.Generator
	classifier *scoring.Classifier
	taxonomy   *classify.Taxonomy
	logger     logging.Logger
}

// New validates the configuration and builds a Runner over the corpus.
func New(cfg config.Config, docs []*corpus.Document, generator qa.Generator) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	classifier, err := scoring.NewClassifier(scoring.Thresholds{
		ExactEpsilon:     cfg.ExactEpsilon,
		CloseTolerance:   cfg.CloseTolerance,
		MinorErrorCutoff: cfg.MinorErrorCutoff,
	})
	if err != nil {
		return nil, err
	}
	return &Runner{
		cfg:        cfg,
		docs:       docs,
		generator:  generator,
		classifier: classifier,
		taxonomy:   classify.DefaultTaxonomy(),
		logger:     logging.NewComponentLogger("runner"),
	}, nil
}

// Run evaluates the sampled questions and returns the aggregated result.
// Worker goroutines only generate and classify; the metrics fold happens
// single-threaded once every question has its verdict.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	runID := uuid.NewString()
	start := time.Now()

	answerable := corpus.FilterAnswerable(r.docs)
	if len(answerable) == 0 {
		return nil, fmt.Errorf("corpus has no answerable documents")
	}
	sample := r.sample(answerable)
	r.logger.Info("run %s: evaluating %d of %d answerable documents with %s",
		runID, len(sample), len(answerable), r.cfg.Model)

	index := retrieval.BuildIndex(r.docs, retrieval.DefaultWeights())
	keywordOpts := retrieval.KeywordOptions{MinTokenLen: r.cfg.MinKeywordLen}

	records := make([]Record, len(sample))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.cfg.Workers)
	for i, doc := range sample {
		group.Go(func() error {
			rec, err := r.evaluate(groupCtx, i, doc, index, keywordOpts)
			if err != nil {
				return err
			}
			records[i] = rec
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	results := make([]metrics.Result, len(records))
	var usage qa.TokenUsage
	for i, rec := range records {
		results[i] = rec.Result
		if !rec.Prediction.FromCache {
			usage.Add(rec.Prediction.Usage)
		}
	}

	result := &RunResult{
		RunID:      runID,
		Model:      r.cfg.Model,
		StartedAt:  start,
		Duration:   time.Since(start),
		CorpusSize: len(r.docs),
		Evaluated:  len(records),
		Records:    records,
		Report:     metrics.Aggregate(results),
		Usage:      usage,
		Cost:       qa.EstimateCost(usage, r.cfg.Model, r.cfg.CostPer1K),
	}
	if acc, ok := result.Report.Accuracy(); ok {
		r.logger.Info("run %s: accuracy %.1f%% over %d questions in %s",
			runID, acc, result.Evaluated, result.Duration.Round(time.Millisecond))
	}
	return result, nil
}

// evaluate runs the rank, generate, classify pipeline for one question.
func (r *Runner) evaluate(ctx context.Context, i int, doc *corpus.Document, index *retrieval.Index, opts retrieval.KeywordOptions) (Record, error) {
	question := doc.QA.Question
	rec := Record{
		Index:       i,
		Question:    question,
		GroundTruth: doc.QA.Answer,
		SourceDoc:   doc.ID,
		Result: metrics.Result{
			Question:   question,
			Type:       r.taxonomy.QuestionType(question),
			Difficulty: classify.QuestionDifficulty(question),
		},
	}

	terms := retrieval.ExtractKeywords(question, opts)
	ranked := index.Rank(terms, r.cfg.TopK)
	if len(ranked) == 0 {
		// No document to hand the model; the question still gets a verdict
		// against an empty answer.
		r.logger.Warn("question %d retrieved no documents: %s", i, question)
		rec.Result.Verdict = r.classifier.Classify(doc.QA.Answer, "")
		return rec, nil
	}
	target := ranked[0].Doc
	rec.RetrievedDoc = target.ID
	rec.RetrievalHit = target.ID == doc.ID

	prediction, err := r.generator.Answer(ctx, target, question)
	if err != nil {
		return Record{}, fmt.Errorf("question %d (%s): %w", i, doc.ID, err)
	}
	rec.Prediction = prediction
	rec.Result.Latency = prediction.Latency
	rec.Result.Verdict = r.classifier.Classify(doc.QA.Answer, prediction.Answer)
	return rec, nil
}

// sample shuffles with the seeded RNG when a seed is set, then applies the
// sample-size cap. Seed zero means corpus order, so runs are reproducible
// either way.
func (r *Runner) sample(docs []*corpus.Document) []*corpus.Document {
	out := make([]*corpus.Document, len(docs))
	copy(out, docs)
	if r.cfg.ShuffleSeed != 0 {
		rng := rand.New(rand.NewSource(r.cfg.ShuffleSeed))
		rng.Shuffle(len(out), func(i, j int) {
			out[i], out[j] = out[j], out[i]
		})
	}
	if r.cfg.SampleSize > 0 && len(out) > r.cfg.SampleSize {
		out = out[:r.cfg.SampleSize]
	}
	return out
}
