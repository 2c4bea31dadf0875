package profiler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
)

// SystemPrompt is shared by every facet call of a generation.
const SystemPrompt = `You are an expert marketing strategist and customer research specialist.
Your task is to create highly accurate, data-driven customer avatars based on business and research data.
Always respond with valid JSON matching the exact structure requested.
Be specific, actionable, and base insights on the provided research data.
Focus on creating avatars that can be directly used for advertising targeting.`

// toJSON renders v compactly without HTML escaping, for embedding in prompts.
func toJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "null"
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func basePrompt(info models.BusinessInfo, research models.ResearchData) string {
	competitors := research.CompetitorAnalysis
	if len(competitors) > 3 {
		competitors = competitors[:3]
	}
	if competitors == nil {
		competitors = []models.CompetitorInsight{}
	}
	market := research.MarketData
	if market == nil {
		market = []models.MarketInsight{}
	}

	existing := ""
	if info.ExistingCustomerDescription != "" {
		existing = "- Existing Customers: " + info.ExistingCustomerDescription
	}

	return fmt.Sprintf(`
Business Information:
- Industry: %s
- Niche: %s
- Product/Service: %s
- Business Type: %s
- Price Point: %s
- USP: %s
- Target Geography: %s
%s

Research Data:
- Competitor Insights: %s
- Market Data: %s
- Industry Trends: %s
`,
		info.Industry,
		info.Niche,
		info.ProductService,
		info.BusinessType,
		info.PricePoint,
		info.UniqueSellingProposition,
		strings.Join(info.TargetGeography, ", "),
		existing,
		toJSON(competitors),
		toJSON(market),
		strings.Join(research.IndustryTrends, ", "),
	)
}

func NarrativePrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Create a compelling 2-3 paragraph customer avatar narrative that tells the story of the ideal customer.
Include their background, daily life, challenges, and what would motivate them to purchase this product/service.
Make it vivid and relatable. Return only the narrative text, no JSON.`
}

func DemographicsPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate detailed demographics for this customer avatar. Return ONLY valid JSON in this exact format:
{
  "ageRange": { "min": 25, "max": 45 },
  "gender": "all",
  "locations": ["United States", "Canada"],
  "incomeRange": { "min": 50000, "max": 150000, "currency": "USD" },
  "education": ["Bachelor's degree", "Some college"],
  "occupations": ["Professional", "Manager"],
  "maritalStatus": ["Married", "Single"],
  "hasChildren": true,
  "confidence": 0.85
}
Gender options: male, female, all, other`
}

func PsychographicsPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate detailed psychographics for this customer avatar. Return ONLY valid JSON in this exact format:
{
  "values": ["Quality", "Convenience", "Value for money"],
  "interests": ["Technology", "Business", "Self-improvement"],
  "lifestyle": ["Busy professional", "Health-conscious"],
  "personalityTraits": ["Analytical", "Achievement-oriented"],
  "attitudes": ["Early adopter", "Research-driven"],
  "confidence": 0.8
}`
}

func PainPointsPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate 5-7 specific pain points for this customer avatar. Return ONLY valid JSON as an array:
[
  {
    "description": "Specific pain point description",
    "severity": "high",
    "frequency": "Daily",
    "source": "Research/Inference"
  }
]
Severity options: low, medium, high, critical`
}

func GoalsPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate 4-6 goals and aspirations for this customer avatar. Return ONLY valid JSON as an array:
[
  {
    "description": "Goal description",
    "timeframe": "short-term",
    "priority": "high"
  }
]
Timeframe options: immediate, short-term, long-term
Priority options: low, medium, high`
}

func OnlineBehaviorPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate detailed online behavior profile. Return ONLY valid JSON:
{
  "platforms": [
    { "name": "Facebook", "usageFrequency": "Daily", "primaryUse": "News and entertainment" }
  ],
  "contentTypes": ["Video", "Articles", "Reviews"],
  "peakActivityTimes": ["Evening 7-10pm", "Weekend mornings"],
  "devicePreferences": ["Mobile", "Desktop"],
  "buyingHabits": {
    "frequency": "Monthly",
    "averageOrderValue": "$50-100",
    "preferredPaymentMethods": ["Credit card", "PayPal"],
    "researchBehavior": "Extensive research before purchase"
  },
  "confidence": 0.75
}`
}

func ObjectionsPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate 4-6 common objections this customer might have. Return ONLY valid JSON as an array:
[
  {
    "description": "Objection description",
    "category": "price",
    "counterArgument": "How to address this objection"
  }
]
Category options: price, trust, timing, need, competition, other`
}

func BuyingTriggersPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate 4-6 buying triggers for this customer. Return ONLY valid JSON as an array:
[
  {
    "trigger": "What triggers the purchase decision",
    "emotionalDriver": "Underlying emotional motivation",
    "urgencyLevel": "high"
  }
]
Urgency options: low, medium, high`
}

func CommunicationPrompt(info models.BusinessInfo, research models.ResearchData) string {
	return basePrompt(info, research) + `

Generate communication preferences. Return ONLY valid JSON:
{
  "tone": ["Professional", "Friendly", "Direct"],
  "channels": ["Email", "Social media", "Video"],
  "contentFormats": ["Short videos", "Case studies", "How-to guides"],
  "messagingStyle": "Clear, benefit-focused messaging with social proof"
}`
}

// PlatformTargetingPrompt is the only prompt that depends on other facets.
func PlatformTargetingPrompt(info models.BusinessInfo, research models.ResearchData,
	demo models.Demographics, psych models.Psychographics, behavior models.OnlineBehavior) string {
	return basePrompt(info, research) + fmt.Sprintf(`

Current Avatar Profile:
- Demographics: %s
- Psychographics: %s
- Online Behavior: %s
`, toJSON(demo), toJSON(psych), toJSON(behavior)) + `
Generate platform-specific targeting parameters. Return ONLY valid JSON:
{
  "facebook": {
    "interests": [
      { "id": "6003139266461", "name": "Business", "audienceSize": 500000000 }
    ],
    "behaviors": [
      { "id": "6002714895372", "name": "Online buyers" }
    ],
    "demographics": {
      "ageMin": 25,
      "ageMax": 55,
      "genders": [0],
      "locales": ["en_US"],
      "lifeEvents": ["Recently moved"]
    },
    "customAudiences": ["Website visitors", "Email list"],
    "lookalikes": ["1% lookalike of purchasers"],
    "detailedTargetingExpansion": true
  },
  "google": {
    "keywords": [
      { "keyword": "example keyword", "matchType": "phrase", "volume": 10000 }
    ],
    "affinityAudiences": ["Technology Enthusiasts", "Business Professionals"],
    "inMarketAudiences": ["Business Services"],
    "customIntentKeywords": ["buy product", "best solution"],
    "demographics": {
      "ageRanges": ["25-34", "35-44", "45-54"],
      "genders": ["All"],
      "parentalStatus": ["All"],
      "householdIncome": ["Top 30%"]
    },
    "placements": ["youtube.com", "industry-specific sites"]
  },
  "linkedin": {
    "jobTitles": ["Marketing Manager", "Director of Marketing"],
    "jobFunctions": ["Marketing", "Sales"],
    "industries": ["Technology", "Professional Services"],
    "companySizes": ["51-200", "201-500", "501-1000"],
    "seniorities": ["Manager", "Director", "VP"],
    "skills": ["Digital Marketing", "Lead Generation"],
    "groups": ["Digital Marketing Professionals"],
    "interests": ["Marketing Technology"]
  },
  "generic": {
    "primaryAudience": "Description of primary target audience",
    "secondaryAudiences": ["Secondary audience 1", "Secondary audience 2"],
    "keyCharacteristics": ["Key trait 1", "Key trait 2"],
    "exclusions": ["Who to exclude from targeting"]
  }
}
Facebook genders: 0 all, 1 male, 2 female
Google matchType options: broad, phrase, exact`
}
