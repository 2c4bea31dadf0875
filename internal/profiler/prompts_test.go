package profiler

import (
	"strings"
	"testing"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
	"github.com/stretchr/testify/assert"
)

func sampleInfo() models.BusinessInfo {
	return models.BusinessInfo{
		Industry:                 "Health & Wellness",
		Niche:                    "Fitness",
		ProductService:           "Online personal training",
		BusinessType:             models.BusinessTypeB2C,
		PricePoint:               "$99/month",
		UniqueSellingProposition: "Coaching in 20 minutes a day",
		Competitors:              []string{"https://example.com"},
		TargetGeography:          []string{"United States", "Canada"},
	}
}

func sampleResearch() models.ResearchData {
	return models.ResearchData{
		CompetitorAnalysis: []models.CompetitorInsight{
			{Name: "Rival", URL: "https://rival.example", TargetAudience: "Women", Messaging: []string{"Best plans"}, UniqueValueProps: []string{"Quality products/services"}, SocialPresence: []models.SocialPresence{}},
			{Name: "Other", URL: "https://other.example", TargetAudience: "General audience", Messaging: []string{"Value-focused messaging"}, UniqueValueProps: []string{"Quality products/services"}, SocialPresence: []models.SocialPresence{}},
		},
		MarketData: []models.MarketInsight{
			{Category: "Market Size", DataPoint: "Digital health & fitness market", Value: "$96.3 billion (2024)", Source: "Industry Reports", Confidence: 0.85},
			{Category: "Consumer Trend", DataPoint: "Home workout preference", Value: "48% prefer home workouts", Source: "Consumer Research", Confidence: 0.75},
			{Category: "Spending", DataPoint: "Average annual fitness spending", Value: "$155/month average", Source: "Market Analysis", Confidence: 0.7},
		},
		IndustryTrends: []string{"Health & Wellness: personalization trend growing"},
	}
}

func TestBasePromptEmbedsBusinessAndResearch(t *testing.T) {
	p := DemographicsPrompt(sampleInfo(), sampleResearch())

	assert.Contains(t, p, "- Industry: Health & Wellness")
	assert.Contains(t, p, "- Target Geography: United States, Canada")
	assert.Contains(t, p, `"dataPoint":"Digital health & fitness market"`)
	assert.Contains(t, p, "Health & Wellness: personalization trend growing")
	assert.NotContains(t, p, "Existing Customers")
}

func TestBasePromptCapsCompetitorsAtThree(t *testing.T) {
	research := sampleResearch()
	for i := 0; i < 4; i++ {
		research.CompetitorAnalysis = append(research.CompetitorAnalysis, models.CompetitorInsight{Name: "Extra", URL: "https://extra.example"})
	}
	p := NarrativePrompt(sampleInfo(), research)
	assert.Equal(t, 1, strings.Count(p, `"name":"Extra"`))
}

func TestPromptsStateEnumOptions(t *testing.T) {
	info, research := sampleInfo(), sampleResearch()

	assert.Contains(t, PainPointsPrompt(info, research), "Severity options: low, medium, high, critical")
	assert.Contains(t, GoalsPrompt(info, research), "Timeframe options: immediate, short-term, long-term")
	assert.Contains(t, ObjectionsPrompt(info, research), "Category options: price, trust, timing, need, competition, other")
	assert.Contains(t, BuyingTriggersPrompt(info, research), "Urgency options: low, medium, high")
}

func TestPlatformTargetingPromptIncludesResolvedFacets(t *testing.T) {
	info := sampleInfo()
	demo := DefaultDemographics(info)
	p := PlatformTargetingPrompt(info, sampleResearch(), demo, DefaultPsychographics(info), DefaultOnlineBehavior())

	assert.Contains(t, p, "Current Avatar Profile:")
	assert.Contains(t, p, `"locations":["United States","Canada"]`)
	assert.Contains(t, p, `"researchBehavior":"Researches before buying"`)
}

func TestExistingCustomersLine(t *testing.T) {
	info := sampleInfo()
	info.ExistingCustomerDescription = "Busy parents"
	assert.Contains(t, GoalsPrompt(info, sampleResearch()), "- Existing Customers: Busy parents")
}
