package domain

// CompanyType is the verdict of company classification.
type CompanyType string

const (
	CompanySoftware CompanyType = "software"
	CompanyHardware CompanyType = "hardware"
	CompanyBoth     CompanyType = "both"
	CompanyUnknown  CompanyType = "unknown"
)

// ClassificationSource records whether a verdict came from the
// automatic signal vote or a manual override.
type ClassificationSource string

const (
	ClassifiedAuto   ClassificationSource = "auto"
	ClassifiedManual ClassificationSource = "manual"
)

// CompanyClassification is a cached verdict for one company name.
// A manual override always supersedes automatic computation.
type CompanyClassification struct {
	CompanyName string               `json:"company_name"`
	Type        CompanyType          `json:"type"`
	Confidence  float64              `json:"confidence"` // [0,1]
	Signals     map[string]float64   `json:"signals,omitempty"`
	Source      ClassificationSource `json:"source"`
}
