package generator

import (
	"github.com/Rana718/demoseed/internal/types"
)

const (
	interactionRate      = 0.60
	minInteractions      = 1
	maxInteractions      = 5
	surveyRate           = 0.30
	complaintRate        = 0.08
	campaignResponseRate = 0.40
	maxCampaignResponses = 3
)

var campaignNames = []string{
	"Spring Savings Boost",
	"Home Loan Rate Special",
	"Premium Card Upgrade",
	"Small Business Growth",
	"Student Banking Starter",
	"Auto Loan Summer Sale",
	"Retirement Planning Seminar",
	"Mobile App Launch",
	"Refer a Friend",
	"Holiday Cashback",
	"Wealth Management Insights",
	"Insurance Protection Week",
	"Digital Statements Drive",
	"First-Time Homebuyer Workshop",
	"Year-End CD Promotion",
}

var (
	campaignTypeDistribution = MustWeighted(
		Choice[string]{"email", 0.40},
		Choice[string]{"sms", 0.20},
		Choice[string]{"direct_mail", 0.15},
		Choice[string]{"social_media", 0.15},
		Choice[string]{"branch_event", 0.10},
	)
	channelDistribution = MustWeighted(
		Choice[string]{"phone", 0.35},
		Choice[string]{"branch", 0.25},
		Choice[string]{"email", 0.20},
		Choice[string]{"chat", 0.15},
		Choice[string]{"mobile_app", 0.05},
	)
	interactionTypeDistribution = MustWeighted(
		Choice[string]{"inquiry", 0.35},
		Choice[string]{"service_request", 0.25},
		Choice[string]{"product_inquiry", 0.20},
		Choice[string]{"complaint_followup", 0.10},
		Choice[string]{"account_update", 0.10},
	)
	outcomeDistribution = MustWeighted(
		Choice[string]{"resolved", 0.60},
		Choice[string]{"follow_up_required", 0.20},
		Choice[string]{"escalated", 0.10},
		Choice[string]{"pending", 0.10},
	)
	satisfactionDistribution = MustWeighted(
		Choice[int]{5, 0.35},
		Choice[int]{4, 0.35},
		Choice[int]{3, 0.15},
		Choice[int]{2, 0.10},
		Choice[int]{1, 0.05},
	)
	complaintTypeDistribution = MustWeighted(
		Choice[string]{"fee_dispute", 0.25},
		Choice[string]{"service_quality", 0.25},
		Choice[string]{"transaction_error", 0.20},
		Choice[string]{"fraud", 0.10},
		Choice[string]{"loan_terms", 0.10},
		Choice[string]{"account_access", 0.10},
	)
	severityDistribution = MustWeighted(
		Choice[string]{"low", 0.40},
		Choice[string]{"medium", 0.35},
		Choice[string]{"high", 0.20},
		Choice[string]{"critical", 0.05},
	)
	complaintStatusDistribution = MustWeighted(
		Choice[string]{"open", 0.20},
		Choice[string]{"investigating", 0.15},
		Choice[string]{"resolved", 0.55},
		Choice[string]{"closed", 0.10},
	)
	responseTypeDistribution = MustWeighted(
		Choice[string]{"opened", 0.40},
		Choice[string]{"clicked", 0.25},
		Choice[string]{"converted", 0.15},
		Choice[string]{"ignored", 0.15},
		Choice[string]{"unsubscribed", 0.05},
	)
	campaignSegments = []string{types.SegmentRetail, types.SegmentPremium, types.SegmentCorporate, types.SegmentPrivateBanking}
)

// CRMGenerator produces customer_db engagement data.
type CRMGenerator struct {
	env *Env
}

func NewCRMGenerator(env *Env) *CRMGenerator {
	return &CRMGenerator{env: env}
}

// employeesWhere filters registered employees by role.
func employeesWhere(env *Env, keep func(types.Role) bool) []string {
	var ids []string
	for _, id := range env.Registry.EmployeeIDs() {
		if role, ok := env.Registry.EmployeeRole(id); ok && keep(role) {
			ids = append(ids, id)
		}
	}
	return ids
}

func isRole(want types.Role) func(types.Role) bool {
	return func(r types.Role) bool { return r == want }
}

// Campaigns returns the fixed campaign catalog and registers it. Campaigns
// are owned by a marketing specialist when one exists.
func (g *CRMGenerator) Campaigns() []types.Campaign {
	r := g.env.Rand
	owners := employeesWhere(g.env, isRole(types.RoleMarketingSpecialist))
	if len(owners) == 0 {
		owners = g.env.Registry.EmployeeIDs()
	}

	campaigns := make([]types.Campaign, 0, len(campaignNames))
	for _, name := range campaignNames {
		start := Between(r, g.env.Now.AddDate(-2, 0, 0), g.env.Now)
		c := types.Campaign{
			ID:            g.env.ID("CAMP", 8),
			Name:          name,
			Type:          campaignTypeDistribution.Pick(r),
			StartDate:     start,
			EndDate:       start.Add(days(IntBetween(r, 14, 90))),
			Budget:        Money(r, 5_000, 250_000),
			TargetSegment: pick(r, campaignSegments),
		}
		if len(owners) > 0 {
			c.OwnerID = ptr(pick(r, owners))
		}
		campaigns = append(campaigns, c)
		g.env.Registry.AddCampaign(c.ID)
	}
	return campaigns
}

// Interactions samples a fixed share of customers without replacement. Each
// interaction is handled by a customer-facing employee when one exists.
func (g *CRMGenerator) Interactions(customers []types.Customer) []types.Interaction {
	r := g.env.Rand
	handlers := employeesWhere(g.env, types.Role.CustomerFacing)

	var interactions []types.Interaction
	for _, idx := range SampleIndices(r, len(customers), int(float64(len(customers))*interactionRate)) {
		c := customers[idx]
		count := IntBetween(r, minInteractions, maxInteractions)
		for i := 0; i < count; i++ {
			in := types.Interaction{
				ID:              g.env.ID("INT", 12),
				CustomerID:      c.ID,
				Channel:         channelDistribution.Pick(r),
				Type:            interactionTypeDistribution.Pick(r),
				InteractionDate: Between(r, c.CreatedAt, g.env.Now),
				DurationMinutes: IntBetween(r, 2, 60),
				Outcome:         outcomeDistribution.Pick(r),
				Notes:           g.env.Faker.Sentence(8),
			}
			if len(handlers) > 0 {
				in.EmployeeID = ptr(pick(r, handlers))
			}
			interactions = append(interactions, in)
			g.env.Registry.AddInteraction(in.ID)
		}
	}
	return interactions
}

// Surveys samples a fixed share of interactions without replacement.
func (g *CRMGenerator) Surveys(interactions []types.Interaction) []types.SatisfactionSurvey {
	r := g.env.Rand
	picked := SampleIndices(r, len(interactions), int(float64(len(interactions))*surveyRate))

	surveys := make([]types.SatisfactionSurvey, 0, len(picked))
	for _, idx := range picked {
		in := interactions[idx]
		surveys = append(surveys, types.SatisfactionSurvey{
			ID:            g.env.ID("SURV", 10),
			InteractionID: in.ID,
			CustomerID:    in.CustomerID,
			SurveyDate:    minTime(in.InteractionDate.Add(days(IntBetween(r, 0, 7))), g.env.Now),
			Score:         satisfactionDistribution.Pick(r),
			NPS:           IntBetween(r, 0, 10),
			Comments:      g.env.Faker.Sentence(10),
		})
	}
	return surveys
}

// Complaints samples a fixed share of customers without replacement. Fraud
// complaints go to compliance officers when any exist.
func (g *CRMGenerator) Complaints(customers []types.Customer) []types.Complaint {
	r := g.env.Rand
	compliance := g.env.Registry.ComplianceOfficers()
	handlers := employeesWhere(g.env, types.Role.CustomerFacing)
	picked := SampleIndices(r, len(customers), int(float64(len(customers))*complaintRate))

	complaints := make([]types.Complaint, 0, len(picked))
	for _, idx := range picked {
		c := customers[idx]
		cp := types.Complaint{
			ID:          g.env.ID("CMP", 10),
			CustomerID:  c.ID,
			Type:        complaintTypeDistribution.Pick(r),
			Severity:    severityDistribution.Pick(r),
			Status:      complaintStatusDistribution.Pick(r),
			FiledDate:   Between(r, c.CreatedAt, g.env.Now),
			Description: g.env.Faker.Sentence(15),
		}

		if cp.Status == "resolved" || cp.Status == "closed" {
			cp.ResolvedDate = ptr(Between(r, cp.FiledDate, minTime(cp.FiledDate.Add(days(30)), g.env.Now)))
		}

		assignees := handlers
		if cp.Type == "fraud" && len(compliance) > 0 {
			assignees = compliance
		}
		if len(assignees) > 0 {
			cp.AssignedTo = ptr(pick(r, assignees))
		}

		complaints = append(complaints, cp)
	}
	return complaints
}

// CampaignResponses draws an independent coin per customer. Responders
// answer between one and three distinct campaigns.
func (g *CRMGenerator) CampaignResponses(customers []types.Customer, campaigns []types.Campaign) []types.CampaignResponse {
	if len(campaigns) == 0 {
		return nil
	}

	r := g.env.Rand
	var responses []types.CampaignResponse
	for _, c := range customers {
		if !Chance(r, campaignResponseRate) {
			continue
		}
		for _, idx := range SampleIndices(r, len(campaigns), IntBetween(r, 1, maxCampaignResponses)) {
			camp := campaigns[idx]
			responses = append(responses, types.CampaignResponse{
				ID:           g.env.ID("RESP", 12),
				CampaignID:   camp.ID,
				CustomerID:   c.ID,
				ResponseType: responseTypeDistribution.Pick(r),
				ResponseDate: Between(r, camp.StartDate, minTime(camp.EndDate, g.env.Now)),
			})
		}
	}
	return responses
}
