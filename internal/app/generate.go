package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/okian/poolpick/internal/domain/assign"
	"github.com/okian/poolpick/internal/domain/combine"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/game"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/internal/domain/scoring"
	"github.com/okian/poolpick/internal/domain/strategy"
	"github.com/okian/poolpick/internal/workerpool"
	"github.com/okian/poolpick/pkg/logger"
	"github.com/okian/poolpick/pkg/metrics"
)

const (
	consensusBonus = 5.0
	maxScore       = 100.0
	entryScale     = 5.0
	mergedSource   = "merged"
)

// Request is the input snapshot for one generation run. Zero values fall
// back to engine defaults.
type Request struct {
	Games    []string           `json:"games"`
	Ratings  map[string]float64 `json:"ratings,omitempty"`
	Deficit  float64            `json:"deficit"`
	Strategy string             `json:"strategy,omitempty"`
	Seed     *int64             `json:"seed,omitempty"`

	Analyses    []model.Analysis `json:"analyses,omitempty"`
	CombineMode string           `json:"combine_mode,omitempty"`
	MergeMode   string           `json:"merge_mode,omitempty"`
	Strict      *bool            `json:"strict,omitempty"`
	Reallocate  *bool            `json:"reallocate,omitempty"`
}

// Result is the outcome of one generation run.
type Result struct {
	RunID      string             `json:"run_id"`
	Strategy   strategy.Tag       `json:"strategy"`
	Picks      []model.Pick       `json:"picks"`
	ValuePlays []fusion.ValuePlay `json:"value_plays"`
	Combined   *combine.Result    `json:"combined,omitempty"`
	Empty      bool               `json:"empty"`
	Stats      scoring.Stats      `json:"stats"`
}

// Generate runs the full pipeline for req. Malformed games and invalid
// analyses are rejected before any scoring. An empty schedule yields an
// empty result, not an error.
func (e *Engine) Generate(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	res := Result{RunID: uuid.NewString()}
	log := e.logger.With(logger.String("run", res.RunID))

	games, err := e.schedule(ctx, log, req.Games)
	if err != nil {
		metrics.RecordValidationFailure("malformed_game")
		return Result{}, err
	}
	analyses, err := e.prepareAnalyses(req)
	if err != nil {
		metrics.RecordValidationFailure(failureKind(err))
		return Result{}, err
	}

	tag := strategy.Select(req.Deficit)
	if req.Strategy != "" {
		if tag, err = strategy.Parse(req.Strategy); err != nil {
			metrics.RecordValidationFailure("unknown_strategy")
			return Result{}, err
		}
	}
	res.Strategy = tag

	cands, stats, err := e.score(ctx, tag, games, req)
	if err != nil {
		return Result{}, err
	}
	res.Stats = stats
	metrics.RecordCandidates(string(tag), stats.Scored, stats.Skipped, stats.Flipped)

	entries := map[string]model.Entry{}
	if len(analyses) > 0 {
		combined, merged, err := e.combineAnalyses(req, analyses)
		if err != nil {
			metrics.RecordValidationFailure("unknown_mode")
			return Result{}, err
		}
		res.Combined = &combined
		for _, en := range merged {
			entries[model.CanonicalGame(en.Game)] = en
		}
		cands = applyAnalyses(games, cands, entries, combined, tag)
	}

	plays := make([]fusion.ValuePlay, len(cands))
	for i, c := range cands {
		en, ok := entries[c.Game.String()]
		if !ok {
			en = fusion.FromCandidate(c)
		}
		en.Game, en.Team = c.Game.String(), c.Winner
		plays[i] = fusion.Analyze(en)
		metrics.RecordRecommendation(string(plays[i].Recommendation))
	}
	res.ValuePlays = plays

	res.Picks = assign.Rank(cands)
	if e.reallocationEnabled(req) && len(res.Picks) > 0 {
		r := assign.Reallocate(res.Picks, plays)
		res.Picks = r.Picks
		metrics.RecordReallocationCollisions(r.Collisions)
		if r.Collisions > 0 {
			log.Debug(ctx, "reallocation collisions re-ranked", logger.Int("collisions", r.Collisions))
		}
	}
	if err := assign.Verify(res.Picks); err != nil {
		log.Error(ctx, "assignment invariant broken", logger.Error(err))
		return Result{}, err
	}

	res.Empty = len(res.Picks) == 0
	if res.Empty {
		log.Warn(ctx, "empty candidate pool", logger.Error(assign.ErrEmptyCandidatePool))
	}

	elapsed := time.Since(start)
	e.runs.Add(1)
	e.lastRun.Store(elapsed.Microseconds())
	metrics.RecordRun(string(tag), float64(elapsed.Microseconds())/1000)
	metrics.RecordPicks(len(res.Picks))
	log.Info(ctx, "picks generated",
		logger.String("strategy", string(tag)),
		logger.Int("games", len(games)),
		logger.Int("candidates", len(cands)),
		logger.Int("skipped", stats.Skipped),
		logger.Int("flipped", stats.Flipped),
		logger.Int("picks", len(res.Picks)),
		logger.Int("sources", len(analyses)),
		logger.Duration("elapsed", elapsed),
	)
	return res, nil
}

// schedule drops byes, parses every game and removes repeated games.
func (e *Engine) schedule(ctx context.Context, log logger.Logger, ids []string) ([]game.Game, error) {
	parsed, err := game.ParseAll(game.FilterBye(ids))
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(parsed))
	games := make([]game.Game, 0, len(parsed))
	for _, g := range parsed {
		key := g.String()
		if _, dup := seen[key]; dup {
			log.Warn(ctx, "duplicate game dropped", logger.String("game", key))
			continue
		}
		seen[key] = struct{}{}
		games = append(games, g)
	}
	return games, nil
}

// prepareAnalyses fills missing weights from configuration and validates
// every source. Inputs are copied, never modified.
func (e *Engine) prepareAnalyses(req Request) ([]model.Analysis, error) {
	strict := e.strict
	if req.Strict != nil {
		strict = *req.Strict
	}
	out := make([]model.Analysis, len(req.Analyses))
	for i, a := range req.Analyses {
		if a.Source.Weight == 0 {
			if w, ok := e.sourceWeights[a.Source.Name]; ok {
				a.Source.Weight = w
			} else {
				a.Source.Weight = 1
			}
		}
		if err := a.Validate(strict); err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func (e *Engine) score(ctx context.Context, tag strategy.Tag, games []game.Game, req Request) ([]model.Candidate, scoring.Stats, error) {
	strat, err := scoring.For(tag)
	if err != nil {
		return nil, scoring.Stats{}, err
	}
	seed := e.seed
	if req.Seed != nil {
		seed = *req.Seed
	}
	table := e.table(req.Ratings)
	newScorer := func() *scoring.Scorer {
		return scoring.New(strat, table, scoring.WithSeed(seed), scoring.WithCap(e.maxPicks))
	}

	pool := e.workers()
	if pool == nil || pool.Stopped() {
		return newScorer().ScoreAll(ctx, games)
	}
	sc := newScorer()
	results, err := pool.Score(ctx, sc, sc.Jobs(games))
	if errors.Is(err, workerpool.ErrStopped) && ctx.Err() == nil {
		e.logger.Warn(ctx, "worker pool stopped, scoring inline", logger.Int("games", len(games)))
		return newScorer().ScoreAll(ctx, games)
	}
	if err != nil {
		return nil, scoring.Stats{}, fmt.Errorf("score games: %w", err)
	}
	cands, stats := sc.Collect(results)
	return cands, stats, nil
}

func (e *Engine) combineAnalyses(req Request, analyses []model.Analysis) (combine.Result, []model.Entry, error) {
	mode, mergeMode := e.combineMode, e.mergeMode
	var err error
	if req.CombineMode != "" {
		if mode, err = combine.ParseMode(req.CombineMode); err != nil {
			return combine.Result{}, nil, err
		}
	}
	if req.MergeMode != "" {
		if mergeMode, err = combine.ParseMergeMode(req.MergeMode); err != nil {
			return combine.Result{}, nil, err
		}
	}
	combined, err := combine.Combine(mode, analyses)
	if err != nil {
		return combine.Result{}, nil, err
	}
	merged, err := combine.Merge(mergeMode, analyses)
	if err != nil {
		return combine.Result{}, nil, err
	}
	metrics.RecordCombine(string(mode))
	return combined, merged, nil
}

// applyAnalyses lets merged entries replace rating candidates for the games
// they cover and lifts games the sources agree on. Output follows schedule
// order.
func applyAnalyses(games []game.Game, cands []model.Candidate, entries map[string]model.Entry, combined combine.Result, tag strategy.Tag) []model.Candidate {
	byGame := make(map[string]model.Candidate, len(cands))
	for _, c := range cands {
		byGame[c.Game.String()] = c
	}
	agreed := make(map[string]struct{}, len(combined.Games))
	for _, g := range combined.Games {
		agreed[g] = struct{}{}
	}

	out := make([]model.Candidate, 0, len(games))
	for _, g := range games {
		key := g.String()
		c, scored := byGame[key]
		if en, ok := entries[key]; ok {
			c = fromEntry(g, en, tag)
			scored = true
		}
		if !scored {
			continue
		}
		if _, ok := agreed[key]; ok {
			c.Score = math.Min(maxScore, c.Score+consensusBonus)
		}
		out = append(out, c)
	}
	return out
}

func fromEntry(g game.Game, en model.Entry, tag strategy.Tag) model.Candidate {
	c := model.Candidate{
		Game:      g,
		Winner:    game.NormalizeTeam(en.Team),
		Score:     float64(en.Confidence) * entryScale,
		PublicPct: model.DefaultPublicPct,
		Strategy:  tag,
		Source:    mergedSource,
	}
	if en.Spread != nil {
		c.Spread = *en.Spread
	}
	if en.PublicPct != nil {
		c.PublicPct = *en.PublicPct
	}
	return c
}

func (e *Engine) reallocationEnabled(req Request) bool {
	if req.Reallocate != nil {
		return *req.Reallocate
	}
	return e.reallocate
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, model.ErrInvalidConfidenceRange):
		return "invalid_confidence"
	case errors.Is(err, model.ErrDuplicateConfidenceInSource):
		return "duplicate_confidence"
	case errors.Is(err, model.ErrTeamNotInGame):
		return "team_not_in_game"
	case errors.Is(err, game.ErrMalformedGameIdentifier):
		return "malformed_game"
	default:
		return "invalid_source"
	}
}
