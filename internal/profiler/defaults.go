package profiler

import (
	"fmt"

	"github.com/BerylCAtieno/customer-avatar-agent/internal/models"
)

// Fallback values substituted when a facet response cannot be parsed. Each
// one satisfies the same shape and enum domains as a parsed response.

func DefaultDemographics(info models.BusinessInfo) models.Demographics {
	return models.Demographics{
		AgeRange:      models.Range{Min: 25, Max: 55},
		Gender:        "all",
		Locations:     info.TargetGeography,
		IncomeRange:   models.IncomeRange{Min: 40000, Max: 120000, Currency: "USD"},
		Education:     []string{"High School", "Bachelor's degree"},
		Occupations:   []string{"Professional", "Manager", "Business Owner"},
		MaritalStatus: []string{"Single", "Married"},
		HasChildren:   nil,
		Confidence:    0.7,
	}
}

func DefaultPsychographics(info models.BusinessInfo) models.Psychographics {
	return models.Psychographics{
		Values:            []string{"Quality", "Convenience", "Trust"},
		Interests:         []string{info.Industry, "Self-improvement", "Technology"},
		Lifestyle:         []string{"Busy professional"},
		PersonalityTraits: []string{"Practical", "Goal-oriented"},
		Attitudes:         []string{"Open to new solutions"},
		Confidence:        0.7,
	}
}

func DefaultPainPoints() []models.PainPoint {
	return []models.PainPoint{
		{Description: "Difficulty finding reliable solutions", Severity: "high", Frequency: "Weekly", Source: "AI Inference"},
	}
}

func DefaultGoals() []models.Goal {
	return []models.Goal{
		{Description: "Improve efficiency and save time", Timeframe: "short-term", Priority: "high"},
	}
}

func DefaultOnlineBehavior() models.OnlineBehavior {
	return models.OnlineBehavior{
		Platforms:         []models.PlatformUsage{{Name: "Facebook", UsageFrequency: "Daily", PrimaryUse: "Social networking"}},
		ContentTypes:      []string{"Video", "Articles"},
		PeakActivityTimes: []string{"Evening"},
		DevicePreferences: []string{"Mobile", "Desktop"},
		BuyingHabits: models.BuyingHabits{
			Frequency:               "Monthly",
			AverageOrderValue:       "$50-150",
			PreferredPaymentMethods: []string{"Credit card"},
			ResearchBehavior:        "Researches before buying",
		},
		Confidence: 0.7,
	}
}

func DefaultObjections() []models.Objection {
	return []models.Objection{
		{Description: "Is this worth the investment?", Category: "price", CounterArgument: "Emphasize ROI and value"},
	}
}

func DefaultBuyingTriggers() []models.BuyingTrigger {
	return []models.BuyingTrigger{
		{Trigger: "Problem becomes urgent", EmotionalDriver: "Fear of missing out", UrgencyLevel: "high"},
	}
}

func DefaultCommunicationPreference() models.CommunicationPreference {
	return models.CommunicationPreference{
		Tone:           []string{"Professional", "Friendly"},
		Channels:       []string{"Email", "Social media"},
		ContentFormats: []string{"Video", "Articles"},
		MessagingStyle: "Clear and benefit-focused",
	}
}

func int64Ptr(v int64) *int64 { return &v }

// DefaultPlatformTargeting derives targeting from the business and the
// already resolved demographics.
func DefaultPlatformTargeting(info models.BusinessInfo, demo models.Demographics) models.PlatformTargeting {
	genders := []int{2}
	switch demo.Gender {
	case "all":
		genders = []int{0}
	case "male":
		genders = []int{1}
	}

	audience := "consumers"
	if info.BusinessType == models.BusinessTypeB2B {
		audience = "professionals"
	}

	return models.PlatformTargeting{
		Facebook: models.FacebookTargeting{
			Interests: []models.FacebookInterest{
				{ID: "6003139266461", Name: info.Industry, AudienceSize: int64Ptr(50000000)},
			},
			Behaviors: []models.FacebookBehavior{
				{ID: "6002714895372", Name: "Engaged Shoppers"},
			},
			Demographics: models.FacebookDemographics{
				AgeMin:     demo.AgeRange.Min,
				AgeMax:     demo.AgeRange.Max,
				Genders:    genders,
				Locales:    []string{"en_US"},
				LifeEvents: []string{},
			},
			CustomAudiences:            []string{"Website visitors"},
			Lookalikes:                 []string{"1% Lookalike of customers"},
			DetailedTargetingExpansion: true,
		},
		Google: models.GoogleTargeting{
			Keywords: []models.GoogleKeyword{
				{Keyword: info.ProductService, MatchType: "phrase", Volume: int64Ptr(10000)},
				{Keyword: "best " + info.Niche, MatchType: "broad", Volume: int64Ptr(5000)},
			},
			AffinityAudiences:    []string{"Technology Enthusiasts"},
			InMarketAudiences:    []string{info.Industry},
			CustomIntentKeywords: []string{"buy " + info.ProductService, info.Niche + " reviews"},
			Demographics: models.GoogleDemographics{
				AgeRanges:       []string{"25-34", "35-44", "45-54"},
				Genders:         []string{"All"},
				ParentalStatus:  []string{"All"},
				HouseholdIncome: []string{"Top 50%"},
			},
			Placements: []string{},
		},
		LinkedIn: models.LinkedInTargeting{
			JobTitles:    demo.Occupations,
			JobFunctions: []string{"Marketing", "Sales", "Operations"},
			Industries:   []string{info.Industry},
			CompanySizes: []string{"11-50", "51-200", "201-500"},
			Seniorities:  []string{"Manager", "Director", "VP"},
			Skills:       []string{},
			Groups:       []string{},
			Interests:    []string{info.Industry},
		},
		Generic: models.GenericTargeting{
			PrimaryAudience: fmt.Sprintf("%d-%d year old %s interested in %s",
				demo.AgeRange.Min, demo.AgeRange.Max, audience, info.Niche),
			SecondaryAudiences: []string{"Early adopters", "Value seekers"},
			KeyCharacteristics: []string{"Research-driven", "Quality-focused"},
			Exclusions:         []string{"Existing customers", "Competitors"},
		},
	}
}
