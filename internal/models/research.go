package models

type ResearchData struct {
	CompetitorAnalysis []CompetitorInsight `json:"competitorAnalysis"`
	MarketData         []MarketInsight     `json:"marketData"`
	SocialInsights     []SocialInsight     `json:"socialInsights"`
	IndustryTrends     []string            `json:"industryTrends"`
}

type SocialPresence struct {
	Platform   string `json:"platform"`
	Followers  *int64 `json:"followers,omitempty"`
	Engagement string `json:"engagement,omitempty"`
}

type CompetitorInsight struct {
	Name             string           `json:"name"`
	URL              string           `json:"url"`
	TargetAudience   string           `json:"targetAudience"`
	Messaging        []string         `json:"messaging"`
	UniqueValueProps []string         `json:"uniqueValueProps"`
	SocialPresence   []SocialPresence `json:"socialPresence"`
}

type MarketInsight struct {
	Category   string  `json:"category"`
	DataPoint  string  `json:"dataPoint"`
	Value      string  `json:"value"`
	Source     string  `json:"source"`
	Confidence float64 `json:"confidence"`
}

type SocialInsight struct {
	Platform  string `json:"platform"`
	Insight   string `json:"insight"`
	Relevance string `json:"relevance"` // high | medium | low
}

// MeanMarketConfidence averages the market insight confidences. An empty
// list contributes 0.
func (r ResearchData) MeanMarketConfidence() float64 {
	var sum float64
	for _, m := range r.MarketData {
		sum += m.Confidence
	}
	return sum / float64(max(len(r.MarketData), 1))
}
