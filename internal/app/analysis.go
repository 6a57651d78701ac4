package service

import (
	"context"

	"github.com/okian/poolpick/internal/domain/combine"
	"github.com/okian/poolpick/internal/domain/fusion"
	"github.com/okian/poolpick/internal/domain/model"
	"github.com/okian/poolpick/pkg/logger"
	"github.com/okian/poolpick/pkg/metrics"
)

// CombineRequest asks for a multi-source combination without scoring.
type CombineRequest struct {
	Analyses    []model.Analysis `json:"analyses"`
	CombineMode string           `json:"combine_mode,omitempty"`
	MergeMode   string           `json:"merge_mode,omitempty"`
	Strict      *bool            `json:"strict,omitempty"`
}

// CombineResult holds the signal combination, the merged entries and the
// consensus picks derived from the combined games.
type CombineResult struct {
	Combined combine.Result `json:"combined"`
	Merged   []model.Entry  `json:"merged"`
	Picks    []model.Entry  `json:"picks"`
}

// Combine validates and combines analyses.
func (e *Engine) Combine(ctx context.Context, req CombineRequest) (CombineResult, error) {
	analyses, err := e.prepareAnalyses(Request{Analyses: req.Analyses, Strict: req.Strict})
	if err != nil {
		metrics.RecordValidationFailure(failureKind(err))
		return CombineResult{}, err
	}
	combined, merged, err := e.combineAnalyses(Request{CombineMode: req.CombineMode, MergeMode: req.MergeMode}, analyses)
	if err != nil {
		return CombineResult{}, err
	}
	e.logger.Info(ctx, "analyses combined",
		logger.String("mode", string(combined.Mode)),
		logger.Int("sources", len(analyses)),
		logger.Int("games", len(combined.Games)),
		logger.Int("merged", len(merged)),
	)
	return CombineResult{Combined: combined, Merged: merged, Picks: combine.Picks(combined)}, nil
}

// ValueReport scores entries and aggregates them into a report.
func (e *Engine) ValueReport(ctx context.Context, entries []model.Entry) ([]fusion.ValuePlay, fusion.Report, error) {
	for _, en := range entries {
		if err := en.Validate(); err != nil {
			metrics.RecordValidationFailure(failureKind(err))
			return nil, fusion.Report{}, err
		}
	}
	plays := fusion.AnalyzeAll(entries)
	report, err := fusion.NewReport(plays)
	if err != nil {
		return nil, fusion.Report{}, err
	}
	e.logger.Debug(ctx, "value report built", logger.Int("plays", len(plays)))
	return plays, report, nil
}
