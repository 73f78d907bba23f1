package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CompanyProfile holds the bidder's company data entered in the wizard.
// Plain user-edited strings; no derived invariants.
type CompanyProfile struct {
	CompanyName      string  `json:"company_name"`
	ContactPerson    string  `json:"contact_person"`
	Email            string  `json:"email"`
	Phone            string  `json:"phone"`
	City             string  `json:"city"`
	FleetDescription string  `json:"fleet_description"`
	DistanceKm       float64 `json:"distance_km"`
}

// Value implements driver.Valuer for JSONB
func (p CompanyProfile) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *CompanyProfile) Scan(value interface{}) error {
	return scanJSONB(value, p)
}

// Answer is one supplementary question with the user's answer
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Required bool   `json:"required"`
}

// AnswerList is a JSONB-backed list of answers
type AnswerList []Answer

// Value implements driver.Valuer for JSONB
func (a AnswerList) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner for JSONB
func (a *AnswerList) Scan(value interface{}) error {
	if value == nil {
		*a = make(AnswerList, 0)
		return nil
	}
	return scanJSONB(value, a)
}

// DocItem is one entry of the required-documents checklist
type DocItem struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Present  bool   `json:"present"`
}

// DocItemList is a JSONB-backed document checklist
type DocItemList []DocItem

// Value implements driver.Valuer for JSONB
func (d DocItemList) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner for JSONB
func (d *DocItemList) Scan(value interface{}) error {
	if value == nil {
		*d = make(DocItemList, 0)
		return nil
	}
	return scanJSONB(value, d)
}

// CriterionCheck marks a must criterion as met or not
type CriterionCheck struct {
	Text string `json:"text"`
	Met  bool   `json:"met"`
}

// CriterionCheckList is a JSONB-backed list of must-criterion checks
type CriterionCheckList []CriterionCheck

// Value implements driver.Valuer for JSONB
func (c CriterionCheckList) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Scan implements sql.Scanner for JSONB
func (c *CriterionCheckList) Scan(value interface{}) error {
	if value == nil {
		*c = make(CriterionCheckList, 0)
		return nil
	}
	return scanJSONB(value, c)
}

// PricingInput holds the user-entered inputs of the linear price roll-up
type PricingInput struct {
	EquipmentDailyRate   float64 `json:"equipment_daily_rate"`
	Days                 int     `json:"days"`
	DistanceKm           float64 `json:"distance_km"`
	TransportCostPerKm   float64 `json:"transport_cost_per_km"`
	OperatorDailyRate    float64 `json:"operator_daily_rate"`
	FuelDailyRate        float64 `json:"fuel_daily_rate"`
	MaintenanceDailyRate float64 `json:"maintenance_daily_rate"`
	InsuranceDailyRate   float64 `json:"insurance_daily_rate"`
	SetupCost            float64 `json:"setup_cost"`
	MarginPct            float64 `json:"margin_pct"`
}

// Value implements driver.Valuer for JSONB
func (p PricingInput) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB
func (p *PricingInput) Scan(value interface{}) error {
	return scanJSONB(value, p)
}

// PriceBreakdown is the computed linear cost roll-up
type PriceBreakdown struct {
	EquipmentCost float64 `json:"equipment_cost"`
	TransportCost float64 `json:"transport_cost"`
	OperationCost float64 `json:"operation_cost"`
	SetupCost     float64 `json:"setup_cost"`
	Subtotal      float64 `json:"subtotal"`
	Margin        float64 `json:"margin"`
	Total         float64 `json:"total"`
}

// Submission is the bid bundle a user assembles for one tender
type Submission struct {
	ID                uuid.UUID          `json:"id"`
	TenderID          uuid.UUID          `json:"tender_id"`
	Profile           CompanyProfile     `json:"profile"`
	Answers           AnswerList         `json:"answers"`
	Documents         DocItemList        `json:"documents"`
	MustCriteria      CriterionCheckList `json:"must_criteria"`
	Pricing           PricingInput       `json:"pricing"`
	GeneratedDocument *string            `json:"generated_document,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

// scanJSONB decodes a JSONB column value, tolerating the different types pgx
// may hand back.
func scanJSONB(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, dest)
}
