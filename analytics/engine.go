// Package analytics aggregates feedback snapshots into dashboard views.
// It is pure computation: no I/O, deterministic for a given snapshot,
// filters, and reference time.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/poiesic/pulse/core"
)

const (
	positiveThreshold = 7
	negativeThreshold = 4

	// defaultActionLabel stands in when a record carries no recommended action.
	defaultActionLabel = "General Feedback"

	// maxClusterActions caps the action breakdown per category cluster.
	maxClusterActions = 5

	// maxProductSlices caps the product distribution chart.
	maxProductSlices = 8

	heatmapDays = 30
)

// Aggregate computes the full dashboard view for a record snapshot.
//
// KPI change values compare the filtered current window against a
// baseline window of the same length immediately preceding it. The
// baseline applies only the time window, never the attribute filters,
// so narrowing a filter changes the current numbers but not the base.
func Aggregate(snapshot []*core.FeedbackRecord, f Filters, now time.Time) *View {
	current := Filter(snapshot, f, now)
	baseline := baselineWindow(snapshot, f.Timeline, now)

	return &View{
		KPIs:                computeKPIs(current, baseline),
		VolumeByDay:         volumeByDay(current, now),
		ProductDistribution: productDistribution(current),
		RegionDistribution:  regionDistribution(current),
		SourceDistribution:  sourceDistribution(current),
		Clusters:            clusters(current),
		SentimentHeatmap:    sentimentHeatmap(current, now),
	}
}

// baselineWindow selects the comparison records for change metrics.
// The 7d window compares against days 8-14, the 30d window against days
// 31-60. Today and the unbounded view both fall back to days 31-60.
func baselineWindow(snapshot []*core.FeedbackRecord, timeline string, now time.Time) []*core.FeedbackRecord {
	var start, end time.Time
	switch timeline {
	case Timeline7d:
		start = now.Add(-14 * 24 * time.Hour)
		end = now.Add(-7 * 24 * time.Hour)
	default:
		start = now.Add(-60 * 24 * time.Hour)
		end = now.Add(-30 * 24 * time.Hour)
	}

	var out []*core.FeedbackRecord
	for _, rec := range snapshot {
		if !rec.ReceivedAt.Before(start) && rec.ReceivedAt.Before(end) {
			out = append(out, rec)
		}
	}
	return out
}

func computeKPIs(current, baseline []*core.FeedbackRecord) KPIs {
	currentStats := tally(current)
	baselineStats := tally(baseline)

	return KPIs{
		NPS:            currentStats.nps,
		NPSChange:      currentStats.nps - baselineStats.nps,
		Total:          currentStats.total,
		TotalChange:    delta(currentStats.total, baselineStats.total),
		PositivePct:    currentStats.positivePct,
		PositiveChange: delta(currentStats.positive, baselineStats.positive),
		NegativePct:    currentStats.negativePct,
		NegativeChange: delta(currentStats.negative, baselineStats.negative),
		CriticalRatio:  currentStats.criticalRatio,
		TopCategory:    topCategory(current),
	}
}

type windowStats struct {
	total         int
	positive      int
	negative      int
	nps           int
	positivePct   int
	negativePct   int
	criticalRatio int
}

func tally(records []*core.FeedbackRecord) windowStats {
	stats := windowStats{total: len(records)}
	if stats.total == 0 {
		return stats
	}

	var promoters, detractors, critical int
	for _, rec := range records {
		switch rec.NPSClass {
		case core.NPSPromoter:
			promoters++
		case core.NPSDetractor:
			detractors++
		}
		if rec.SentimentScore >= positiveThreshold {
			stats.positive++
		}
		if rec.SentimentScore <= negativeThreshold {
			stats.negative++
		}
		if rec.Urgency == core.UrgencyHigh {
			critical++
		}
	}

	stats.nps = roundPct(promoters-detractors, stats.total)
	stats.positivePct = roundPct(stats.positive, stats.total)
	stats.negativePct = roundPct(stats.negative, stats.total)
	stats.criticalRatio = roundPct(critical, stats.total)
	return stats
}

// delta is the percent change from prev to current. A zero baseline
// yields 100 for any nonzero current value.
func delta(current, prev int) int {
	if prev == 0 {
		if current == 0 {
			return 0
		}
		return 100
	}
	return int(math.Round(float64(current-prev) / float64(prev) * 100))
}

func roundPct(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}

// topCategory returns the most frequent product category, breaking ties
// by first appearance. Returns "N/A" for an empty window.
func topCategory(records []*core.FeedbackRecord) string {
	counter := newOrderedCounter()
	for _, rec := range records {
		counter.add(rec.ProductCategory)
	}
	top := counter.sortedDesc()
	if len(top) == 0 {
		return "N/A"
	}
	return top[0].Name
}

func volumeByDay(records []*core.FeedbackRecord, now time.Time) []DayCount {
	type dayTally struct {
		count, positive, neutral, negative int
		promoters, detractors              int
	}
	tallies := make(map[string]*dayTally)
	for _, rec := range records {
		key := dayKey(rec.ReceivedAt, now)
		t := tallies[key]
		if t == nil {
			t = &dayTally{}
			tallies[key] = t
		}
		t.count++
		switch {
		case rec.SentimentScore >= positiveThreshold:
			t.positive++
		case rec.SentimentScore <= negativeThreshold:
			t.negative++
		default:
			t.neutral++
		}
		switch rec.NPSClass {
		case core.NPSPromoter:
			t.promoters++
		case core.NPSDetractor:
			t.detractors++
		}
	}

	days := make([]string, 0, len(tallies))
	for day := range tallies {
		days = append(days, day)
	}
	sort.Strings(days)

	out := make([]DayCount, 0, len(days))
	for _, day := range days {
		t := tallies[day]
		out = append(out, DayCount{
			Date:     day,
			Count:    t.count,
			Positive: t.positive,
			Neutral:  t.neutral,
			Negative: t.negative,
			NPS:      roundPct(t.promoters-t.detractors, t.count),
		})
	}
	return out
}

func productDistribution(records []*core.FeedbackRecord) []NamedCount {
	counter := newOrderedCounter()
	for _, rec := range records {
		counter.add(rec.ProductCategory)
	}
	out := counter.sortedDesc()
	if len(out) > maxProductSlices {
		out = out[:maxProductSlices]
	}
	return out
}

func regionDistribution(records []*core.FeedbackRecord) []NamedCount {
	counter := newOrderedCounter()
	for _, rec := range records {
		counter.add(rec.Region)
	}
	return counter.sortedDesc()
}

func sourceDistribution(records []*core.FeedbackRecord) []NamedCount {
	counter := newOrderedCounter()
	for _, rec := range records {
		counter.add(rec.Source)
	}
	return counter.inOrder()
}

// clusters groups records by product category in first-appearance order,
// breaking out the first few recommended actions seen per category.
func clusters(records []*core.FeedbackRecord) []Cluster {
	categoryOrder := []string{}
	byCategory := make(map[string][]*core.FeedbackRecord)
	for _, rec := range records {
		category := rec.ProductCategory
		if category == "" {
			category = core.ValueUnknown
		}
		if _, seen := byCategory[category]; !seen {
			categoryOrder = append(categoryOrder, category)
		}
		byCategory[category] = append(byCategory[category], rec)
	}

	out := make([]Cluster, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		members := byCategory[category]

		actions := newOrderedCounter()
		for _, rec := range members {
			action := rec.RecommendedAction
			if action == "" {
				action = defaultActionLabel
			}
			actions.add(action)
		}

		groups := actions.inOrder()
		if len(groups) > maxClusterActions {
			groups = groups[:maxClusterActions]
		}

		actionGroups := make([]ActionGroup, 0, len(groups))
		for _, g := range groups {
			actionGroups = append(actionGroups, ActionGroup{Action: g.Name, Count: g.Count})
		}

		out = append(out, Cluster{
			Category: category,
			Count:    len(members),
			Actions:  actionGroups,
		})
	}
	return out
}

// sentimentHeatmap averages sentiment per calendar day over the last 30
// days, oldest first. Days without feedback get a nil average.
func sentimentHeatmap(records []*core.FeedbackRecord, now time.Time) []HeatmapCell {
	sums := make(map[string]int)
	counts := make(map[string]int)
	for _, rec := range records {
		key := dayKey(rec.ReceivedAt, now)
		sums[key] += rec.SentimentScore
		counts[key]++
	}

	cells := make([]HeatmapCell, 0, heatmapDays)
	for i := heatmapDays - 1; i >= 0; i-- {
		day := now.Add(-time.Duration(i) * 24 * time.Hour)
		key := dayKey(day, now)
		cell := HeatmapCell{Date: key}
		if n := counts[key]; n > 0 {
			avg := float64(sums[key]) / float64(n)
			cell.AverageSentiment = &avg
		}
		cells = append(cells, cell)
	}
	return cells
}

// dayKey buckets a timestamp into a calendar day in the reference
// time's location.
func dayKey(t time.Time, now time.Time) string {
	return t.In(now.Location()).Format("2006-01-02")
}

// orderedCounter tallies names while remembering first-appearance order.
type orderedCounter struct {
	order  []string
	counts map[string]int
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.order = append(c.order, name)
	}
	c.counts[name]++
}

// inOrder returns tallies in first-appearance order.
func (c *orderedCounter) inOrder() []NamedCount {
	out := make([]NamedCount, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, NamedCount{Name: name, Count: c.counts[name]})
	}
	return out
}

// sortedDesc returns tallies by count descending, ties keeping
// first-appearance order.
func (c *orderedCounter) sortedDesc() []NamedCount {
	out := c.inOrder()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}
