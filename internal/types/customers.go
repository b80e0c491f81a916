package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SegmentRetail         = "retail"
	SegmentPremium        = "premium"
	SegmentCorporate      = "corporate"
	SegmentPrivateBanking = "private_banking"
)

// Customer is the master record kept in accounts_db. Address fields are
// carried along for the CRM profile but are not columns of the table.
type Customer struct {
	ID          string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	Email       string
	Phone       string
	CreatedAt   time.Time

	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

func (c Customer) Columns() []string {
	return []string{"customer_id", "first_name", "last_name", "date_of_birth", "email", "phone", "created_at"}
}

func (c Customer) Values() []any {
	return []any{c.ID, c.FirstName, c.LastName, c.DateOfBirth, c.Email, c.Phone, c.CreatedAt}
}

func (c Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c Customer) FullAddress() string {
	return c.Street + ", " + c.City + ", " + c.State + " " + c.ZipCode
}

// CustomerProfile is the CRM view of a customer in customer_db.
type CustomerProfile struct {
	CustomerID      string
	FullName        string
	Email           string
	Phone           string
	Address         string
	City            string
	Country         string
	Segment         string
	Status          string
	OnboardingDate  time.Time
	AssignedAgentID *string
	KYCStatus       string
	RiskRating      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (p CustomerProfile) Columns() []string {
	return []string{
		"customer_id", "full_name", "email", "phone", "address", "city", "country",
		"customer_segment", "customer_status", "onboarding_date", "assigned_agent_id",
		"kyc_status", "risk_rating", "created_at", "updated_at",
	}
}

func (p CustomerProfile) Values() []any {
	return []any{
		p.CustomerID, p.FullName, p.Email, p.Phone, p.Address, p.City, p.Country,
		p.Segment, p.Status, p.OnboardingDate, nullString(p.AssignedAgentID),
		p.KYCStatus, p.RiskRating, p.CreatedAt, p.UpdatedAt,
	}
}

type Campaign struct {
	ID            string
	Name          string
	Type          string
	StartDate     time.Time
	EndDate       time.Time
	Budget        decimal.Decimal
	TargetSegment string
	OwnerID       *string
}

func (c Campaign) Columns() []string {
	return []string{"campaign_id", "campaign_name", "campaign_type", "start_date", "end_date", "budget", "target_segment", "owner_id"}
}

func (c Campaign) Values() []any {
	return []any{c.ID, c.Name, c.Type, c.StartDate, c.EndDate, c.Budget, c.TargetSegment, nullString(c.OwnerID)}
}

type Interaction struct {
	ID              string
	CustomerID      string
	EmployeeID      *string
	Channel         string
	Type            string
	InteractionDate time.Time
	DurationMinutes int
	Outcome         string
	Notes           string
}

func (i Interaction) Columns() []string {
	return []string{"interaction_id", "customer_id", "employee_id", "channel", "interaction_type", "interaction_date", "duration_minutes", "outcome", "notes"}
}

func (i Interaction) Values() []any {
	return []any{i.ID, i.CustomerID, nullString(i.EmployeeID), i.Channel, i.Type, i.InteractionDate, i.DurationMinutes, i.Outcome, i.Notes}
}

type SatisfactionSurvey struct {
	ID            string
	InteractionID string
	CustomerID    string
	SurveyDate    time.Time
	Score         int
	NPS           int
	Comments      string
}

func (s SatisfactionSurvey) Columns() []string {
	return []string{"survey_id", "interaction_id", "customer_id", "survey_date", "satisfaction_score", "nps_score", "comments"}
}

func (s SatisfactionSurvey) Values() []any {
	return []any{s.ID, s.InteractionID, s.CustomerID, s.SurveyDate, s.Score, s.NPS, s.Comments}
}

type Complaint struct {
	ID           string
	CustomerID   string
	Type         string
	Severity     string
	Status       string
	FiledDate    time.Time
	ResolvedDate *time.Time
	AssignedTo   *string
	Description  string
}

func (c Complaint) Columns() []string {
	return []string{"complaint_id", "customer_id", "complaint_type", "severity", "status", "filed_date", "resolved_date", "assigned_to", "description"}
}

func (c Complaint) Values() []any {
	return []any{c.ID, c.CustomerID, c.Type, c.Severity, c.Status, c.FiledDate, nullTime(c.ResolvedDate), nullString(c.AssignedTo), c.Description}
}

type CampaignResponse struct {
	ID           string
	CampaignID   string
	CustomerID   string
	ResponseType string
	ResponseDate time.Time
}

func (r CampaignResponse) Columns() []string {
	return []string{"response_id", "campaign_id", "customer_id", "response_type", "response_date"}
}

func (r CampaignResponse) Values() []any {
	return []any{r.ID, r.CampaignID, r.CustomerID, r.ResponseType, r.ResponseDate}
}
