package analytics

// KPIs are the headline numbers on the dashboard. Change values compare
// the current window against the preceding baseline window and are
// expressed in percent, except NPSChange which is in absolute points.
type KPIs struct {
	NPS            int    `json:"nps"`
	NPSChange      int    `json:"nps_change"`
	Total          int    `json:"total"`
	TotalChange    int    `json:"total_change"`
	PositivePct    int    `json:"positive_pct"`
	PositiveChange int    `json:"positive_change"`
	NegativePct    int    `json:"negative_pct"`
	NegativeChange int    `json:"negative_change"`
	CriticalRatio  int    `json:"critical_ratio"`
	TopCategory    string `json:"top_category"`
}

// NamedCount is a labeled tally used by the distribution charts.
type NamedCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DayCount is the feedback volume for one calendar day, broken down by
// sentiment band, with that day's NPS.
type DayCount struct {
	Date     string `json:"date"`
	Count    int    `json:"count"`
	Positive int    `json:"positive"`
	Neutral  int    `json:"neutral"`
	Negative int    `json:"negative"`
	NPS      int    `json:"nps"`
}

// ActionGroup tallies one recommended action within a cluster.
type ActionGroup struct {
	Action string `json:"action"`
	Count  int    `json:"count"`
}

// Cluster groups feedback by product category, breaking out the first
// recommended actions seen for that category.
type Cluster struct {
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Actions  []ActionGroup `json:"actions"`
}

// HeatmapCell is one day of the sentiment heatmap. AverageSentiment is
// nil on days with no feedback.
type HeatmapCell struct {
	Date             string   `json:"date"`
	AverageSentiment *float64 `json:"average_sentiment"`
}

// View is the complete aggregated dashboard payload.
type View struct {
	KPIs                KPIs          `json:"kpis"`
	VolumeByDay         []DayCount    `json:"volume_by_day"`
	ProductDistribution []NamedCount  `json:"product_distribution"`
	RegionDistribution  []NamedCount  `json:"region_distribution"`
	SourceDistribution  []NamedCount  `json:"source_distribution"`
	Clusters            []Cluster     `json:"clusters"`
	SentimentHeatmap    []HeatmapCell `json:"sentiment_heatmap"`
}
