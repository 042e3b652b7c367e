// Package app wires the loading, classification, aggregation, rendering and
// export stages into the three analysis pipelines. Every pipeline is a
// single-threaded batch run: each stage produces a fresh table consumed by
// the next, nothing is mutated in place.
package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/internal/render"
	"github.com/Roberto-info/CDA2-Demokratie-Challange/internal/store"
	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

// ErrNoMatch is returned when a single-vote pipeline query matches nothing.
var ErrNoMatch = errors.New("no referendum matches the query")

// App carries the configuration and logger shared by all pipelines.
type App struct {
	cfg votes.Config
	log *zap.Logger
}

// New creates the pipeline runner.
func New(cfg votes.Config, logger *zap.Logger) *App {
	return &App{cfg: cfg, log: logger}
}

// loadClassified runs the shared core of every pipeline: load the table,
// classify it, and log the per-run data-integrity report.
func (a *App) loadClassified() ([]votes.Classified, *votes.LoadReport, error) {
	rows, report, err := votes.LoadReferenda(a.cfg.DataPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load referenda: %w", err)
	}
	a.log.Info("dataset loaded",
		zap.String("path", a.cfg.DataPath),
		zap.Int("rows", report.Rows),
		zap.Int("bad_dates", report.BadDates),
		zap.Int("bad_percents", report.BadPercents),
		zap.Int("missing_yes", report.MissingYes),
	)
	for _, issue := range report.Issues {
		a.log.Debug("malformed field",
			zap.String("row", issue.RowID),
			zap.String("column", issue.Column),
			zap.String("value", issue.Value),
			zap.String("reason", issue.Reason),
		)
	}
	classifier := votes.NewClassifier(a.cfg.Policy)
	return classifier.ClassifyAll(rows), report, nil
}

// RunOverview produces the epoch trend view: classified export, trend chart
// and acceptance trend line, plus summary statistics in the log.
func (a *App) RunOverview() error {
	runID := uuid.NewString()
	started := time.Now()
	classified, report, err := a.loadClassified()
	if err != nil {
		return err
	}

	trend, skipped := votes.EpochTrend(classified, a.cfg.Epochs)
	if skipped > 0 {
		a.log.Warn("rows excluded from epoch bucketing", zap.Int("skipped", skipped))
	}
	summary := votes.Summarize(classified)
	a.log.Info("classification summary",
		zap.String("run", runID),
		zap.Int("total", summary.TotalVotes),
		zap.Int("societal", summary.SocietalVotes),
		zap.Float64("societal_share", summary.SocietalShare),
	)
	for _, decade := range votes.DecadeHistogram(classified) {
		a.log.Debug("societal votes per decade",
			zap.Int("decade", decade.Decade),
			zap.Int("count", decade.Count),
		)
	}
	trendStats := votes.AnalyzeTrend(classified)
	if trendStats.Correlation != nil {
		a.log.Info("liberality trend over time",
			zap.Int("n", trendStats.N),
			zap.Float64("correlation", *trendStats.Correlation),
			zap.Float64("slope_per_decade", *trendStats.SlopePerDecade),
			zap.Float64("r_squared", *trendStats.RSquared),
		)
	} else {
		a.log.Warn("liberality trend not computable", zap.Int("n", trendStats.N))
	}

	if err := votes.WriteClassifiedCSV(a.outPath("classified.csv"), classified); err != nil {
		return err
	}
	if err := render.EpochTrendChart(trend, a.outPath("epoch_trend.svg")); err != nil {
		return err
	}
	if err := render.AcceptanceTrendChart(classified, a.outPath("acceptance_trend.svg")); err != nil {
		return err
	}
	return a.saveArtifacts(runID, "overview", started, classified, nil, report.Rows, skipped)
}

// RunDetail produces the liberality ranking, the regional breakdowns, the
// ranking chart and the liberality choropleth.
func (a *App) RunDetail() error {
	runID := uuid.NewString()
	started := time.Now()
	classified, report, err := a.loadClassified()
	if err != nil {
		return err
	}

	ranking := votes.LiberalityRanking(classified)
	for _, groups := range [][]votes.CantonGroup{votes.LanguageRegions(), votes.UrbanRural()} {
		for _, score := range votes.GroupBreakdown(classified, groups) {
			field := zap.Skip()
			if score.Score != nil {
				field = zap.Float64("mean_yes", *score.Score)
			}
			a.log.Info("group liberality",
				zap.String("group", score.Group),
				zap.Int("values", score.Count),
				field,
			)
		}
	}

	if err := votes.WriteRankingCSV(a.outPath("liberality_ranking.csv"), ranking); err != nil {
		return err
	}
	if err := votes.WriteDetailCSV(a.outPath("detailed_analysis.csv"), classified, a.cfg.Epochs); err != nil {
		return err
	}
	if err := render.RankingBarChart(ranking, a.outPath("liberality_ranking.svg")); err != nil {
		return err
	}

	boundaries, err := votes.LoadBoundaries(a.cfg.BoundaryPath)
	if err != nil {
		return fmt.Errorf("load boundaries: %w", err)
	}
	values := make(map[votes.Canton]*float64, len(ranking))
	for _, entry := range ranking {
		values[entry.Canton] = entry.Score
	}
	title := "Liberalität der Kantone bei gesellschaftsorientierten Abstimmungen"
	if err := render.ChoroplethMap(boundaries, values, title, a.outPath("liberality_map.svg")); err != nil {
		return err
	}
	// Rows with bad dates stay in the canton aggregation but count as
	// skipped in the run metadata, matching the overview pipeline.
	return a.saveArtifacts(runID, "detail", started, classified, ranking, report.Rows, report.BadDates)
}

// RunVote renders the per-canton choropleth for a single referendum found by
// title search. Re-votes under the same title are disambiguated by date: the
// earliest match renders, all matches are logged.
func (a *App) RunVote(query string) error {
	classified, _, err := a.loadClassified()
	if err != nil {
		return err
	}
	table := make([]votes.Referendum, len(classified))
	for i, rec := range classified {
		table[i] = rec.Referendum
	}
	matches := votes.SearchTitles(table, query)
	if len(matches) == 0 {
		return fmt.Errorf("%w: %q", ErrNoMatch, query)
	}
	for _, match := range matches {
		a.log.Info("match",
			zap.String("id", match.ID),
			zap.String("date", match.Date.Format("2006-01-02")),
			zap.String("title", match.TitleShort),
		)
	}
	vote := matches[0]
	if len(matches) > 1 {
		a.log.Warn("multiple matches, rendering the earliest",
			zap.Int("matches", len(matches)),
			zap.String("rendered", vote.ID),
		)
	}

	boundaries, err := votes.LoadBoundaries(a.cfg.BoundaryPath)
	if err != nil {
		return fmt.Errorf("load boundaries: %w", err)
	}
	title := vote.TitleShort
	if title == "" {
		title = vote.TitleOfficial
	}
	out := a.outPath(fmt.Sprintf("vote_%s.svg", vote.ID))
	return render.ChoroplethMap(boundaries, vote.Cantons, title, out)
}

// Search runs the title lookup and returns matches ordered by date.
func (a *App) Search(query string) ([]votes.Referendum, error) {
	rows, report, err := votes.LoadReferenda(a.cfg.DataPath)
	if err != nil {
		return nil, fmt.Errorf("load referenda: %w", err)
	}
	a.log.Debug("dataset loaded", zap.Int("rows", report.Rows))
	return votes.SearchTitles(rows, query), nil
}

// saveArtifacts persists the run into the sqlite artifact store when one is
// configured.
func (a *App) saveArtifacts(runID, pipeline string, started time.Time, classified []votes.Classified, ranking []votes.LiberalityScore, rows, skipped int) error {
	if a.cfg.SQLitePath == "" {
		return nil
	}
	db, err := store.Open(a.cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.SaveRun(runID, pipeline, started, rows, skipped); err != nil {
		return err
	}
	if err := db.SaveClassified(runID, classified); err != nil {
		return err
	}
	if ranking != nil {
		if err := db.SaveRanking(runID, ranking); err != nil {
			return err
		}
	}
	a.log.Info("artifacts stored", zap.String("run", runID), zap.String("db", a.cfg.SQLitePath))
	return nil
}

func (a *App) outPath(name string) string {
	return filepath.Join(a.cfg.OutputDir, name)
}
