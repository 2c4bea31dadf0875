package models

import "fmt"

func checkConfidence(c float64) error {
	if c < 0 || c > 1 {
		return fmt.Errorf("confidence %v outside [0,1]", c)
	}
	return nil
}

func (d Demographics) Validate() error {
	switch d.Gender {
	case "male", "female", "all", "other":
	default:
		return fmt.Errorf("invalid gender %q", d.Gender)
	}
	return checkConfidence(d.Confidence)
}

func (p Psychographics) Validate() error {
	return checkConfidence(p.Confidence)
}

func (o OnlineBehavior) Validate() error {
	return checkConfidence(o.Confidence)
}
