package votes

import (
	"math"
	"sort"
)

// GroupStats describes one cell of the epoch trend view. MeanYes is nil when
// no nationwide yes-percentage was available; rows lacking it are counted as
// Incomplete instead of dragging the mean toward zero.
type GroupStats struct {
	Count      int
	Incomplete int
	MeanYes    *float64
}

// EpochTrendRow compares societal and other referenda within one epoch.
type EpochTrendRow struct {
	Epoch    Epoch
	Societal GroupStats
	Other    GroupStats
}

// EpochTrend buckets the classified table into the given epochs. Rows whose
// date falls outside every epoch (malformed or out-of-range dates) are
// skipped from bucketing only; the returned count keeps them traceable.
func EpochTrend(rows []Classified, epochs []Epoch) (trend []EpochTrendRow, skipped int) {
	type bucket struct {
		societal, other []float64
		row             EpochTrendRow
	}
	buckets := make([]bucket, len(epochs))
	for i, e := range epochs {
		buckets[i].row.Epoch = e
	}

	for _, rec := range rows {
		idx := -1
		for i, e := range epochs {
			if !rec.Date.IsZero() && e.Contains(rec.Year()) {
				idx = i
				break
			}
		}
		if idx < 0 {
			skipped++
			continue
		}
		b := &buckets[idx]
		stats, values := &b.row.Other, &b.other
		if rec.Societal {
			stats, values = &b.row.Societal, &b.societal
		}
		stats.Count++
		if rec.Yes == nil {
			stats.Incomplete++
		} else {
			*values = append(*values, *rec.Yes)
		}
	}

	trend = make([]EpochTrendRow, len(buckets))
	for i := range buckets {
		buckets[i].row.Societal.MeanYes = mean(buckets[i].societal)
		buckets[i].row.Other.MeanYes = mean(buckets[i].other)
		trend[i] = buckets[i].row
	}
	return trend, skipped
}

// LiberalityRanking computes each canton's mean yes-percentage across
// societal referenda with a present value for that canton. The result is a
// total order: score descending, ties by canton code ascending, cantons with
// no qualifying value last with a nil score.
func LiberalityRanking(rows []Classified) []LiberalityScore {
	values := make(map[Canton][]float64, len(AllCantons))
	for _, rec := range rows {
		if !rec.Societal {
			continue
		}
		for canton, v := range rec.Cantons {
			if v != nil {
				values[canton] = append(values[canton], *v)
			}
		}
	}

	ranking := make([]LiberalityScore, 0, len(AllCantons))
	for _, canton := range sortedCantons() {
		ranking = append(ranking, LiberalityScore{
			Canton: canton,
			Score:  mean(values[canton]),
			Count:  len(values[canton]),
		})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		a, b := ranking[i], ranking[j]
		switch {
		case a.Score == nil:
			return false
		case b.Score == nil:
			return true
		case *a.Score != *b.Score:
			return *a.Score > *b.Score
		default:
			return a.Canton < b.Canton
		}
	})
	return ranking
}

// GroupScore is the liberality aggregate of one canton group.
type GroupScore struct {
	Group string
	Score *float64
	Count int
}

// GroupBreakdown repeats the liberality aggregation per canton group with
// the same exclusion-of-missing-data rule. Every present value of a member
// canton across societal referenda contributes to the group mean.
func GroupBreakdown(rows []Classified, groups []CantonGroup) []GroupScore {
	out := make([]GroupScore, 0, len(groups))
	for _, group := range groups {
		members := make(map[Canton]bool, len(group.Members))
		for _, c := range group.Members {
			members[c] = true
		}
		var values []float64
		for _, rec := range rows {
			if !rec.Societal {
				continue
			}
			for canton, v := range rec.Cantons {
				if members[canton] && v != nil {
					values = append(values, *v)
				}
			}
		}
		out = append(out, GroupScore{Group: group.Name, Score: mean(values), Count: len(values)})
	}
	return out
}

// TrendAnalysis describes the linear relationship between time and the
// nationwide yes-percentage across societal referenda: Pearson correlation,
// least-squares slope and explained variance. The pointer fields are nil when
// fewer than two complete rows contribute or the contributing values carry no
// variance; an undefined statistic is never reported as zero.
type TrendAnalysis struct {
	N              int
	Correlation    *float64
	Slope          *float64
	SlopePerDecade *float64
	RSquared       *float64
}

// AnalyzeTrend regresses the nationwide yes-percentage of societal referenda
// on the vote year. A positive slope means liberality increased over time.
// Rows that are non-societal, dateless or missing the nationwide value are
// excluded; N counts the rows that contributed.
func AnalyzeTrend(rows []Classified) TrendAnalysis {
	var years, yes []float64
	for _, rec := range rows {
		if !rec.Societal || rec.Date.IsZero() || rec.Yes == nil {
			continue
		}
		years = append(years, float64(rec.Year()))
		yes = append(yes, *rec.Yes)
	}

	out := TrendAnalysis{N: len(years)}
	if len(years) < 2 {
		return out
	}
	mx := *mean(years)
	my := *mean(yes)
	var sxx, syy, sxy float64
	for i := range years {
		dx := years[i] - mx
		dy := yes[i] - my
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}
	if sxx == 0 {
		// All contributing votes fall in one year; no temporal trend exists.
		return out
	}
	slope := sxy / sxx
	perDecade := slope * 10
	out.Slope = &slope
	out.SlopePerDecade = &perDecade
	if syy == 0 {
		// Constant acceptance: the slope is zero and correlation undefined.
		return out
	}
	r := sxy / math.Sqrt(sxx*syy)
	r2 := r * r
	out.Correlation = &r
	out.RSquared = &r2
	return out
}

// DistStats holds the distribution of nationwide yes-percentages for one
// class of referenda.
type DistStats struct {
	Mean   *float64
	Median *float64
	StdDev *float64
}

// Summary aggregates the whole classified table: how many referenda are
// societal, how the two classes voted, and how much data is missing.
type Summary struct {
	TotalVotes    int
	SocietalVotes int
	SocietalShare float64
	Societal      DistStats
	Other         DistStats
	MissingDates  int
	MissingTitles int
	MissingYes    int
}

// Summarize computes the summary statistics over the classified table.
func Summarize(rows []Classified) Summary {
	s := Summary{TotalVotes: len(rows)}
	var societal, other []float64
	for _, rec := range rows {
		if rec.Societal {
			s.SocietalVotes++
		}
		if rec.Date.IsZero() {
			s.MissingDates++
		}
		if rec.TitleShort == "" && rec.TitleOfficial == "" {
			s.MissingTitles++
		}
		if rec.Yes == nil {
			s.MissingYes++
			continue
		}
		if rec.Societal {
			societal = append(societal, *rec.Yes)
		} else {
			other = append(other, *rec.Yes)
		}
	}
	if s.TotalVotes > 0 {
		s.SocietalShare = float64(s.SocietalVotes) / float64(s.TotalVotes) * 100
	}
	s.Societal = distStats(societal)
	s.Other = distStats(other)
	return s
}

// DecadeCount is the number of societal referenda held in one decade.
type DecadeCount struct {
	Decade int
	Count  int
}

// DecadeHistogram counts societal referenda per decade, ascending. Rows
// without a valid date are omitted.
func DecadeHistogram(rows []Classified) []DecadeCount {
	counts := make(map[int]int)
	for _, rec := range rows {
		if !rec.Societal || rec.Date.IsZero() {
			continue
		}
		counts[rec.Year()/10*10]++
	}
	decades := make([]int, 0, len(counts))
	for d := range counts {
		decades = append(decades, d)
	}
	sort.Ints(decades)
	out := make([]DecadeCount, len(decades))
	for i, d := range decades {
		out[i] = DecadeCount{Decade: d, Count: counts[d]}
	}
	return out
}

func distStats(values []float64) DistStats {
	return DistStats{
		Mean:   mean(values),
		Median: median(values),
		StdDev: stddev(values),
	}
}

// mean returns nil for empty input; a missing aggregate must never read as 0.
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

func median(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	m := sorted[mid]
	if len(sorted)%2 == 0 {
		m = (sorted[mid-1] + sorted[mid]) / 2
	}
	return &m
}

func stddev(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := *mean(values)
	var sum float64
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	sd := math.Sqrt(sum / float64(len(values)-1))
	return &sd
}
