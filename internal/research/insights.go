package research

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
)

type industryInsights struct {
	key      string
	insights []models.MarketInsight
}

// industryTable is ordered: the first key contained in the industry wins.
var industryTable = []industryInsights{
	{"fashion", []models.MarketInsight{
		{Category: "Market Size", DataPoint: "Global fashion e-commerce market", Value: "$759.5 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
		{Category: "Growth Rate", DataPoint: "Annual growth rate", Value: "10.3% CAGR", Source: "Market Analysis", Confidence: 0.8},
		{Category: "Consumer Behavior", DataPoint: "Mobile shopping preference", Value: "73% of fashion purchases via mobile", Source: "Consumer Research", Confidence: 0.75},
	}},
	{"saas", []models.MarketInsight{
		{Category: "Market Size", DataPoint: "Global SaaS market", Value: "$232 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
		{Category: "Growth Rate", DataPoint: "Annual growth rate", Value: "18% CAGR", Source: "Market Analysis", Confidence: 0.8},
		{Category: "Buyer Behavior", DataPoint: "Average evaluation time", Value: "3-6 months for enterprise", Source: "Sales Research", Confidence: 0.7},
	}},
	{"health", []models.MarketInsight{
		{Category: "Market Size", DataPoint: "Digital health & fitness market", Value: "$96.3 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
		{Category: "Consumer Trend", DataPoint: "Home workout preference", Value: "48% prefer home workouts", Source: "Consumer Research", Confidence: 0.75},
		{Category: "Spending", DataPoint: "Average annual fitness spending", Value: "$155/month average", Source: "Market Analysis", Confidence: 0.7},
	}},
	{"real estate", []models.MarketInsight{
		{Category: "Market Trend", DataPoint: "Online property search", Value: "97% start search online", Source: "Industry Reports", Confidence: 0.9},
		{Category: "Buyer Behavior", DataPoint: "Average search duration", Value: "10 weeks average", Source: "Consumer Research", Confidence: 0.75},
		{Category: "Digital Adoption", DataPoint: "Virtual tour preference", Value: "63% prefer virtual tours first", Source: "Market Analysis", Confidence: 0.7},
	}},
	{"education", []models.MarketInsight{
		{Category: "Market Size", DataPoint: "Online education market", Value: "$185 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
		{Category: "Growth Rate", DataPoint: "Annual growth rate", Value: "14% CAGR", Source: "Market Analysis", Confidence: 0.8},
		{Category: "Completion Rate", DataPoint: "Average course completion", Value: "15% for free, 60% for paid", Source: "Platform Data", Confidence: 0.7},
	}},
}

var genericInsights = []models.MarketInsight{
	{Category: "Digital Adoption", DataPoint: "Online research before purchase", Value: "81% of consumers", Source: "Consumer Research", Confidence: 0.85},
	{Category: "Social Influence", DataPoint: "Trust peer reviews", Value: "92% trust recommendations", Source: "Market Analysis", Confidence: 0.8},
	{Category: "Mobile Usage", DataPoint: "Mobile commerce growth", Value: "25% YoY increase", Source: "Industry Reports", Confidence: 0.75},
}

var b2bInsights = []models.MarketInsight{
	{Category: "B2B Behavior", DataPoint: "Research before contact", Value: "70% of journey before sales contact", Source: "B2B Research", Confidence: 0.8},
	{Category: "Decision Making", DataPoint: "Average stakeholders involved", Value: "6-10 people in buying committee", Source: "Sales Research", Confidence: 0.75},
}

// MarketInsights looks up the static insights for the business's industry.
func MarketInsights(info models.BusinessInfo) []models.MarketInsight {
	industry := strings.ToLower(info.Industry)

	var insights []models.MarketInsight
	for _, entry := range industryTable {
		if strings.Contains(industry, entry.key) {
			insights = append(insights, entry.insights...)
			break
		}
	}
	if len(insights) == 0 {
		insights = append(insights, genericInsights...)
	}
	if info.BusinessType == models.BusinessTypeB2B {
		insights = append(insights, b2bInsights...)
	}
	return insights
}

// TrendKeywords is the pool industry trends are sampled from.
var TrendKeywords = []string{
	"personalization", "AI integration", "sustainability",
	"mobile-first", "social commerce", "subscription models",
	"video content", "influencer marketing", "privacy-focused",
}

const trendCount = 5

// IndustryTrends samples five trend keywords. A nil r uses the global source.
func IndustryTrends(industry string, r *rand.Rand) []string {
	pool := append([]string(nil), TrendKeywords...)
	swap := func(i, j int) { pool[i], pool[j] = pool[j], pool[i] }
	if r != nil {
		r.Shuffle(len(pool), swap)
	} else {
		rand.Shuffle(len(pool), swap)
	}

	trends := make([]string, 0, trendCount)
	for _, t := range pool[:trendCount] {
		trends = append(trends, fmt.Sprintf("%s: %s trend growing", industry, t))
	}
	return trends
}

// SocialInsights lists the platforms worth targeting for the business type.
func SocialInsights(info models.BusinessInfo) []models.SocialInsight {
	platforms := []string{"Facebook", "Instagram", "TikTok", "Pinterest"}
	if info.BusinessType == models.BusinessTypeB2B {
		platforms = []string{"LinkedIn", "Twitter", "YouTube"}
	}

	insights := make([]models.SocialInsight, 0, len(platforms))
	for _, p := range platforms {
		insights = append(insights, models.SocialInsight{
			Platform:  p,
			Insight:   fmt.Sprintf("High engagement potential for %s content", info.Niche),
			Relevance: "high",
		})
	}
	return insights
}
