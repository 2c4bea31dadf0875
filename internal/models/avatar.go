package models

import (
	"time"
)

type BusinessType string

const (
	BusinessTypeB2B  BusinessType = "b2b"
	BusinessTypeB2C  BusinessType = "b2c"
	BusinessTypeBoth BusinessType = "both"
)

type GenerationMode string

const (
	ModeQuick         GenerationMode = "quick"
	ModeComprehensive GenerationMode = "comprehensive"
)

// Valid reports whether m is one of the known generation modes.
func (m GenerationMode) Valid() bool {
	return m == ModeQuick || m == ModeComprehensive
}

type BusinessInfo struct {
	Industry                    string       `json:"industry" binding:"required"`
	Niche                       string       `json:"niche" binding:"required"`
	ProductService              string       `json:"productService"`
	BusinessType                BusinessType `json:"businessType" binding:"required,oneof=b2b b2c both"`
	PricePoint                  string       `json:"pricePoint"`
	UniqueSellingProposition    string       `json:"uniqueSellingProposition"`
	Competitors                 []string     `json:"competitors"`
	TargetGeography             []string     `json:"targetGeography"`
	ExistingCustomerDescription string       `json:"existingCustomerDescription,omitempty"`
}

type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type IncomeRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	Currency string `json:"currency"`
}

type Demographics struct {
	AgeRange      Range       `json:"ageRange"`
	Gender        string      `json:"gender"` // male | female | all | other
	Locations     []string    `json:"locations"`
	IncomeRange   IncomeRange `json:"incomeRange"`
	Education     []string    `json:"education"`
	Occupations   []string    `json:"occupations"`
	MaritalStatus []string    `json:"maritalStatus"`
	HasChildren   *bool       `json:"hasChildren"`
	Confidence    float64     `json:"confidence"`
}

type Psychographics struct {
	Values            []string `json:"values"`
	Interests         []string `json:"interests"`
	Lifestyle         []string `json:"lifestyle"`
	PersonalityTraits []string `json:"personalityTraits"`
	Attitudes         []string `json:"attitudes"`
	Confidence        float64  `json:"confidence"`
}

type PainPoint struct {
	Description string `json:"description"`
	Severity    string `json:"severity"` // low | medium | high | critical
	Frequency   string `json:"frequency"`
	Source      string `json:"source"`
}

type Goal struct {
	Description string `json:"description"`
	Timeframe   string `json:"timeframe"` // immediate | short-term | long-term
	Priority    string `json:"priority"`  // low | medium | high
}

type PlatformUsage struct {
	Name           string `json:"name"`
	UsageFrequency string `json:"usageFrequency"`
	PrimaryUse     string `json:"primaryUse"`
}

type BuyingHabits struct {
	Frequency               string   `json:"frequency"`
	AverageOrderValue       string   `json:"averageOrderValue"`
	PreferredPaymentMethods []string `json:"preferredPaymentMethods"`
	ResearchBehavior        string   `json:"researchBehavior"`
}

type OnlineBehavior struct {
	Platforms         []PlatformUsage `json:"platforms"`
	ContentTypes      []string        `json:"contentTypes"`
	PeakActivityTimes []string        `json:"peakActivityTimes"`
	DevicePreferences []string        `json:"devicePreferences"`
	BuyingHabits      BuyingHabits    `json:"buyingHabits"`
	Confidence        float64         `json:"confidence"`
}

type Objection struct {
	Description     string `json:"description"`
	Category        string `json:"category"` // price | trust | timing | need | competition | other
	CounterArgument string `json:"counterArgument"`
}

type BuyingTrigger struct {
	Trigger         string `json:"trigger"`
	EmotionalDriver string `json:"emotionalDriver"`
	UrgencyLevel    string `json:"urgencyLevel"` // low | medium | high
}

type CommunicationPreference struct {
	Tone           []string `json:"tone"`
	Channels       []string `json:"channels"`
	ContentFormats []string `json:"contentFormats"`
	MessagingStyle string   `json:"messagingStyle"`
}

type Source struct {
	Type        string `json:"type"` // web | api | database | ai-inference
	Name        string `json:"name"`
	URL         string `json:"url,omitempty"`
	Reliability string `json:"reliability"` // high | medium | low
	DataPoint   string `json:"dataPoint"`
}

const (
	SourceWeb         = "web"
	SourceAPI         = "api"
	SourceDatabase    = "database"
	SourceAIInference = "ai-inference"

	ReliabilityHigh   = "high"
	ReliabilityMedium = "medium"
	ReliabilityLow    = "low"
)

type Avatar struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	UserID    string `json:"userId,omitempty"`

	BusinessInfo BusinessInfo `json:"businessInfo"`

	Narrative               string                  `json:"narrative"`
	Demographics            Demographics            `json:"demographics"`
	Psychographics          Psychographics          `json:"psychographics"`
	PainPoints              []PainPoint             `json:"painPoints"`
	Goals                   []Goal                  `json:"goals"`
	OnlineBehavior          OnlineBehavior          `json:"onlineBehavior"`
	Objections              []Objection             `json:"objections"`
	BuyingTriggers          []BuyingTrigger         `json:"buyingTriggers"`
	CommunicationPreference CommunicationPreference `json:"communicationPreference"`
	PlatformTargeting       PlatformTargeting       `json:"platformTargeting"`

	Sources           []Source       `json:"sources"`
	OverallConfidence float64        `json:"overallConfidence"`
	GenerationMode    GenerationMode `json:"generationMode"`
	Industry          string         `json:"industry"`
	Tags              []string       `json:"tags"`
	IsTemplate        bool           `json:"isTemplate"`
}

// Duplicate returns a copy of the avatar under a new identity. Only the id
// and the timestamps change.
func (a Avatar) Duplicate(id string, now time.Time) Avatar {
	dup := a
	dup.ID = id
	dup.CreatedAt = Timestamp(now)
	dup.UpdatedAt = dup.CreatedAt
	return dup
}

// Timestamp formats t the way avatars store createdAt/updatedAt.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// AvatarUpdate is a partial update. Nil fields are left untouched.
type AvatarUpdate struct {
	Name         *string       `json:"name,omitempty"`
	Tags         *[]string     `json:"tags,omitempty"`
	IsTemplate   *bool         `json:"isTemplate,omitempty"`
	BusinessInfo *BusinessInfo `json:"businessInfo,omitempty"`

	Narrative               *string                  `json:"narrative,omitempty"`
	Demographics            *Demographics            `json:"demographics,omitempty"`
	Psychographics          *Psychographics          `json:"psychographics,omitempty"`
	PainPoints              *[]PainPoint             `json:"painPoints,omitempty"`
	Goals                   *[]Goal                  `json:"goals,omitempty"`
	OnlineBehavior          *OnlineBehavior          `json:"onlineBehavior,omitempty"`
	Objections              *[]Objection             `json:"objections,omitempty"`
	BuyingTriggers          *[]BuyingTrigger         `json:"buyingTriggers,omitempty"`
	CommunicationPreference *CommunicationPreference `json:"communicationPreference,omitempty"`
	PlatformTargeting       *PlatformTargeting       `json:"platformTargeting,omitempty"`
	Sources                 *[]Source                `json:"sources,omitempty"`
}

// Apply merges the set fields of u into a. An empty name is ignored.
func (u AvatarUpdate) Apply(a *Avatar) {
	if u.Name != nil && *u.Name != "" {
		a.Name = *u.Name
	}
	if u.Tags != nil {
		a.Tags = *u.Tags
	}
	if u.IsTemplate != nil {
		a.IsTemplate = *u.IsTemplate
	}
	if u.BusinessInfo != nil {
		a.BusinessInfo = *u.BusinessInfo
	}
	if u.Narrative != nil {
		a.Narrative = *u.Narrative
	}
	if u.Demographics != nil {
		a.Demographics = *u.Demographics
	}
	if u.Psychographics != nil {
		a.Psychographics = *u.Psychographics
	}
	if u.PainPoints != nil {
		a.PainPoints = *u.PainPoints
	}
	if u.Goals != nil {
		a.Goals = *u.Goals
	}
	if u.OnlineBehavior != nil {
		a.OnlineBehavior = *u.OnlineBehavior
	}
	if u.Objections != nil {
		a.Objections = *u.Objections
	}
	if u.BuyingTriggers != nil {
		a.BuyingTriggers = *u.BuyingTriggers
	}
	if u.CommunicationPreference != nil {
		a.CommunicationPreference = *u.CommunicationPreference
	}
	if u.PlatformTargeting != nil {
		a.PlatformTargeting = *u.PlatformTargeting
	}
	if u.Sources != nil {
		a.Sources = *u.Sources
	}
}
