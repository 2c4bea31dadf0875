package models

// IndustryTemplate is seed data used to pre-fill a BusinessInfo.
type IndustryTemplate struct {
	ID                  string              `json:"id" yaml:"id"`
	Name                string              `json:"name" yaml:"name"`
	Industry            string              `json:"industry" yaml:"industry"`
	Description         string              `json:"description" yaml:"description"`
	DefaultBusinessInfo TemplateBusiness    `json:"defaultBusinessInfo" yaml:"defaultBusinessInfo"`
	SuggestedInterests  []string            `json:"suggestedInterests" yaml:"suggestedInterests"`
	CommonPainPoints    []string            `json:"commonPainPoints" yaml:"commonPainPoints"`
	TypicalDemographics TemplateDemographic `json:"typicalDemographics" yaml:"typicalDemographics"`
}

type TemplateBusiness struct {
	Industry     string       `json:"industry,omitempty" yaml:"industry"`
	Niche        string       `json:"niche,omitempty" yaml:"niche"`
	BusinessType BusinessType `json:"businessType,omitempty" yaml:"businessType"`
	PricePoint   string       `json:"pricePoint,omitempty" yaml:"pricePoint"`
}

type TemplateDemographic struct {
	AgeRange      *Range       `json:"ageRange,omitempty" yaml:"ageRange"`
	Gender        string       `json:"gender,omitempty" yaml:"gender"`
	IncomeRange   *IncomeRange `json:"incomeRange,omitempty" yaml:"incomeRange"`
	Education     []string     `json:"education,omitempty" yaml:"education"`
	Occupations   []string     `json:"occupations,omitempty" yaml:"occupations"`
	MaritalStatus []string     `json:"maritalStatus,omitempty" yaml:"maritalStatus"`
	HasChildren   *bool        `json:"hasChildren,omitempty" yaml:"hasChildren"`
}

// Prefill copies the template's business defaults into info, leaving fields
// the caller already set untouched.
func (t IndustryTemplate) Prefill(info BusinessInfo) BusinessInfo {
	d := t.DefaultBusinessInfo
	if info.Industry == "" {
		info.Industry = d.Industry
	}
	if info.Niche == "" {
		info.Niche = d.Niche
	}
	if info.BusinessType == "" {
		info.BusinessType = d.BusinessType
	}
	if info.PricePoint == "" {
		info.PricePoint = d.PricePoint
	}
	return info
}
