package models

type PlatformTargeting struct {
	Facebook FacebookTargeting `json:"facebook"`
	Google   GoogleTargeting   `json:"google"`
	LinkedIn LinkedInTargeting `json:"linkedin"`
	Generic  GenericTargeting  `json:"generic"`
}

type FacebookInterest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	AudienceSize *int64 `json:"audienceSize,omitempty"`
}

type FacebookBehavior struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type FacebookDemographics struct {
	AgeMin     int      `json:"ageMin"`
	AgeMax     int      `json:"ageMax"`
	Genders    []int    `json:"genders"` // 0 all, 1 male, 2 female
	Locales    []string `json:"locales"`
	LifeEvents []string `json:"lifeEvents,omitempty"`
}

type FacebookTargeting struct {
	Interests                  []FacebookInterest   `json:"interests"`
	Behaviors                  []FacebookBehavior   `json:"behaviors"`
	Demographics               FacebookDemographics `json:"demographics"`
	CustomAudiences            []string             `json:"customAudiences"`
	Lookalikes                 []string             `json:"lookalikes"`
	DetailedTargetingExpansion bool                 `json:"detailedTargetingExpansion"`
}

type GoogleKeyword struct {
	Keyword   string `json:"keyword"`
	MatchType string `json:"matchType"` // broad | phrase | exact
	Volume    *int64 `json:"volume,omitempty"`
}

type GoogleDemographics struct {
	AgeRanges       []string `json:"ageRanges"`
	Genders         []string `json:"genders"`
	ParentalStatus  []string `json:"parentalStatus"`
	HouseholdIncome []string `json:"householdIncome"`
}

type GoogleTargeting struct {
	Keywords             []GoogleKeyword    `json:"keywords"`
	AffinityAudiences    []string           `json:"affinityAudiences"`
	InMarketAudiences    []string           `json:"inMarketAudiences"`
	CustomIntentKeywords []string           `json:"customIntentKeywords"`
	Demographics         GoogleDemographics `json:"demographics"`
	Placements           []string           `json:"placements"`
}

type LinkedInTargeting struct {
	JobTitles    []string `json:"jobTitles"`
	JobFunctions []string `json:"jobFunctions"`
	Industries   []string `json:"industries"`
	CompanySizes []string `json:"companySizes"`
	Seniorities  []string `json:"seniorities"`
	Skills       []string `json:"skills"`
	Groups       []string `json:"groups"`
	Interests    []string `json:"interests"`
}

type GenericTargeting struct {
	PrimaryAudience    string   `json:"primaryAudience"`
	SecondaryAudiences []string `json:"secondaryAudiences"`
	KeyCharacteristics []string `json:"keyCharacteristics"`
	Exclusions         []string `json:"exclusions"`
}
