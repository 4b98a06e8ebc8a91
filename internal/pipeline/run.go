// Package pipeline orchestrates the full hunt: résumé extraction, concurrent
// board fetching, normalization, filtering, deduplication, scoring and
// optional archival. Per-item failures degrade; only configuration problems
// and résumé extraction failures abort the run.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cliffordnwanna/JOB-HUNTER/internal/boards"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/match"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/posting"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/profile"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/resume"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/semantic"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/store"
	"github.com/cliffordnwanna/JOB-HUNTER/internal/taxonomy"
)

// ProgressEvent is one progress update during a run.
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback receives progress events as the run advances.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds everything one hunt needs. Sources, weights and limits
// arrive already validated by the config layer.
type RunOptions struct {
	ResumePath         string
	PreferredTitles    []string
	PreferredLocations []string

	Query   string
	Sources []posting.Source

	ExcludeKeywords []string
	MaxAgeDays      int
	// MinScore drops ranked results whose composite falls below it. Zero keeps
	// everything.
	MinScore float64

	Weights     match.Weights
	TopN        int
	Concurrency int
	// EmbedTimeout is the shared budget for all embedding calls in one run.
	// Zero means unbounded.
	EmbedTimeout time.Duration

	APIKey       string
	DatabaseURL  string
	TaxonomyFile string

	Verbose    bool
	Logger     *zap.Logger
	OnProgress ProgressCallback

	// Embedder overrides the API-key-based selection. Used for offline runs
	// and tests.
	Embedder semantic.Embedder

	// Boards overrides the source-based board selection. Used in tests.
	Boards []boards.Board
}

// RunResult is everything a completed hunt produced.
type RunResult struct {
	Profile     *profile.CandidateProfile `json:"profile"`
	Results     []*match.MatchResult      `json:"results"`
	Diagnostics *match.Diagnostics        `json:"diagnostics"`
}

const totalSteps = 6

func emitProgress(opts *RunOptions, step int, message string) {
	fmt.Printf("Step %d/%d: %s\n", step, totalSteps, message)
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    fmt.Sprintf("%d/%d", step, totalSteps),
			Message: message,
		})
	}
}

// Run executes the hunt pipeline and returns the ranked results.
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("pipeline")

	tax, err := loadTaxonomy(opts.TaxonomyFile)
	if err != nil {
		return nil, err
	}

	engine, err := match.NewEngine(opts.Weights, tax)
	if err != nil {
		return nil, err
	}
	embedder, owned, err := selectEmbedder(ctx, &opts, logger)
	if err != nil {
		return nil, err
	}
	if owned {
		defer embedder.Close() //nolint:errcheck
	}

	topN := opts.TopN
	if topN == 0 {
		topN = match.DefaultTopN
	}
	ranker, err := match.NewRanker(engine, embedder, match.RankerConfig{
		TopN:         topN,
		Concurrency:  opts.Concurrency,
		EmbedTimeout: opts.EmbedTimeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	diags := match.NewDiagnostics()

	// Step 1: candidate profile
	emitProgress(&opts, 1, fmt.Sprintf("Extracting candidate profile from %s", opts.ResumePath))
	text, err := resume.ExtractText(opts.ResumePath)
	if err != nil {
		return nil, fmt.Errorf("resume extraction failed: %w", err)
	}
	prof, err := profile.NewExtractor(tax).Extract(text, opts.PreferredTitles, opts.PreferredLocations)
	if err != nil {
		return nil, fmt.Errorf("profile extraction failed: %w", err)
	}
	logger.Info("extracted candidate profile",
		zap.Int("skills", len(prof.Skills)),
		zap.Int("experience_years", prof.ExperienceYears),
	)
	if opts.Verbose {
		fmt.Printf("[VERBOSE] Profile skills: %s\n", strings.Join(prof.Skills, ", "))
	}

	// Step 2: fetch
	selected := opts.Boards
	if selected == nil {
		sources := opts.Sources
		if len(sources) == 0 {
			sources = posting.AllSources()
		}
		client := boards.NewClient(boards.Options{}, logger)
		selected, err = boards.ForSources(client, sources)
		if err != nil {
			return nil, err
		}
	}
	emitProgress(&opts, 2, fmt.Sprintf("Fetching postings from %d boards (query: %q)", len(selected), opts.Query))
	fetched := boards.FetchAll(ctx, selected, opts.Query, logger)
	for source, count := range fetched.Counts {
		diags.RecordFetch(string(source), count)
	}
	for _, failure := range fetched.Failures {
		diags.RecordSkip(failure.Source, failure.URL, "board fetch failed: "+failure.Error())
	}

	// Step 3: normalize
	emitProgress(&opts, 3, fmt.Sprintf("Normalizing %d raw postings", len(fetched.Raws)))
	normalizer := posting.NewNormalizer()
	postings := make([]*posting.JobPosting, 0, len(fetched.Raws))
	for _, raw := range fetched.Raws {
		p, err := normalizer.Normalize(raw)
		if err != nil {
			diags.RecordSkip(raw.Source, raw.URL, err.Error())
			continue
		}
		postings = append(postings, p)
	}

	// Step 4: filter
	if len(opts.ExcludeKeywords) > 0 || opts.MaxAgeDays > 0 {
		emitProgress(&opts, 4, "Applying exclude-keyword and age filters")
	} else {
		emitProgress(&opts, 4, "No filters configured, keeping all postings")
	}
	postings = NewFilters(opts.ExcludeKeywords, opts.MaxAgeDays).Apply(postings, diags)

	// Step 5: score and rank
	emitProgress(&opts, 5, fmt.Sprintf("Scoring %d postings (embedder: %s)", len(postings), embedder.Name()))
	results, err := ranker.Rank(ctx, prof, postings, diags)
	if err != nil {
		return nil, err
	}
	results = applyMinScore(results, opts.MinScore, diags)

	// Step 6: archive
	if opts.DatabaseURL != "" {
		emitProgress(&opts, 6, "Archiving run")
		archive(ctx, opts.DatabaseURL, opts.Query, diags, results, logger)
	} else {
		emitProgress(&opts, 6, "Archival disabled, run complete")
	}

	return &RunResult{Profile: prof, Results: results, Diagnostics: diags}, nil
}

func loadTaxonomy(path string) (*taxonomy.Taxonomy, error) {
	if path == "" {
		return taxonomy.Default(), nil
	}
	tax, err := taxonomy.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill taxonomy: %w", err)
	}
	return tax, nil
}

// selectEmbedder picks Gemini when an API key is configured and the caller
// did not inject an embedder; otherwise the deterministic local embedder.
// Injected embedders stay owned by the caller and are not closed here.
func selectEmbedder(ctx context.Context, opts *RunOptions, logger *zap.Logger) (semantic.Embedder, bool, error) {
	if opts.Embedder != nil {
		return opts.Embedder, false, nil
	}
	if opts.APIKey != "" {
		embedder, err := semantic.NewGeminiEmbedder(ctx, opts.APIKey, "")
		if err != nil {
			return nil, false, fmt.Errorf("failed to initialize embedder: %w", err)
		}
		return embedder, true, nil
	}
	logger.Info("no API key configured, using local hashing embedder")
	return semantic.NewLocalEmbedder(), true, nil
}

// archive persists the run best-effort. Storage failures warn and the run
// still succeeds; the results were already computed.
func archive(ctx context.Context, databaseURL, query string, diags *match.Diagnostics, results []*match.MatchResult, logger *zap.Logger) {
	st, err := store.Connect(ctx, databaseURL)
	if err != nil {
		fmt.Printf("Warning: failed to connect to database: %v\n", err)
		fmt.Printf("Continuing without persistence...\n")
		return
	}
	defer st.Close()

	if err := st.EnsureSchema(ctx); err != nil {
		logger.Warn("failed to ensure archive schema", zap.Error(err))
		return
	}
	runID, err := st.SaveRun(ctx, query, diags)
	if err != nil {
		logger.Warn("failed to archive run", zap.Error(err))
		return
	}
	if err := st.SaveResults(ctx, runID, results); err != nil {
		logger.Warn("failed to archive results", zap.Error(err))
		return
	}
	logger.Info("archived run", zap.String("run_id", runID.String()), zap.Int("results", len(results)))
}
