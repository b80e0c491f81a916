package generator

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/Rana718/demoseed/internal/types"
)

const (
	minEnrollments       = 1
	maxEnrollments       = 4
	maxReviews           = 3
	firstReviewDelay     = 180
	retailAssignmentRate = 0.10
	year                 = 365 * 24 * time.Hour
)

var (
	trainingStatusDistribution = MustWeighted(
		Choice[string]{"completed", 0.70},
		Choice[string]{"in_progress", 0.20},
		Choice[string]{"enrolled", 0.10},
	)
	ratingDistribution = MustWeighted(
		Choice[string]{"exceeds_expectations", 0.20},
		Choice[string]{"meets_expectations", 0.60},
		Choice[string]{"needs_improvement", 0.15},
		Choice[string]{"unsatisfactory", 0.05},
	)
	ratingScores = map[string][2]float64{
		"exceeds_expectations": {4.5, 5.0},
		"meets_expectations":   {3.0, 4.5},
		"needs_improvement":    {2.0, 3.0},
		"unsatisfactory":       {1.0, 2.0},
	}
)

// assignmentTypes lists the roles that can own a customer relationship.
var assignmentTypes = map[types.Role]string{
	types.RoleBranchManager:                 "relationship_manager",
	types.RoleLoanOfficer:                   "loan_advisor",
	types.RoleInsuranceAgent:                "insurance_advisor",
	types.RoleCustomerServiceRepresentative: "service_contact",
}

// WorkforceGenerator produces employees_db records that depend on staff and
// customers: training enrollments, performance reviews and customer
// assignments.
type WorkforceGenerator struct {
	env *Env
}

func NewWorkforceGenerator(env *Env) *WorkforceGenerator {
	return &WorkforceGenerator{env: env}
}

// Enrollments gives every employee between one and four distinct programs.
func (g *WorkforceGenerator) Enrollments(employees []types.Employee, programs []types.TrainingProgram) []types.EmployeeTraining {
	if len(programs) == 0 {
		return nil
	}

	r := g.env.Rand
	var enrollments []types.EmployeeTraining
	for _, e := range employees {
		end := e.EmployedUntil(g.env.Now)
		for _, idx := range SampleIndices(r, len(programs), IntBetween(r, minEnrollments, maxEnrollments)) {
			p := programs[idx]
			t := types.EmployeeTraining{
				ID:             g.env.ID("ENR", 12),
				EmployeeID:     e.ID,
				ProgramID:      p.ID,
				EnrollmentDate: Between(r, e.HireDate, end),
				Status:         trainingStatusDistribution.Pick(r),
			}
			if t.Status == "completed" {
				t.CompletionDate = ptr(Between(r, t.EnrollmentDate, end))
				t.Score = ptr(IntBetween(r, 60, 100))
				t.CertificationIssued = p.OffersCertification
			}
			enrollments = append(enrollments, t)
		}
	}
	return enrollments
}

// Reviews writes one review per full year of tenure, capped at three.
func (g *WorkforceGenerator) Reviews(employees []types.Employee) []types.PerformanceReview {
	r := g.env.Rand
	managers := employeesWhere(g.env, isRole(types.RoleBranchManager))

	var reviews []types.PerformanceReview
	for _, e := range employees {
		count := int(tenure(e, g.env.Now) / year)
		if count > maxReviews {
			count = maxReviews
		}

		for i := 0; i < count; i++ {
			rating := ratingDistribution.Pick(r)
			bounds := ratingScores[rating]
			review := types.PerformanceReview{
				ID:         g.env.ID("REV", 12),
				EmployeeID: e.ID,
				ReviewDate: Between(r, e.HireDate.Add(days(firstReviewDelay)), e.EmployedUntil(g.env.Now)),
				Rating:     rating,
				Score:      decimal.NewFromFloat(Uniform(r, bounds[0], bounds[1])).Round(2),
				Comments:   g.env.Faker.Sentence(12),
			}
			review.ReviewerID = g.reviewer(e, managers)
			reviews = append(reviews, review)
		}
	}
	return reviews
}

func (g *WorkforceGenerator) reviewer(e types.Employee, managers []string) *string {
	if e.ManagerID != nil {
		return ptr(*e.ManagerID)
	}
	var candidates []string
	for _, id := range managers {
		if id != e.ID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	return ptr(pick(g.env.Rand, candidates))
}

// Assignments links every non-retail profile, and a share of retail profiles
// drawn independently, to an active employee of an assignable role.
func (g *WorkforceGenerator) Assignments(profiles []types.CustomerProfile, employees []types.Employee) []types.EmployeeAssignment {
	var staff []types.Employee
	for _, e := range employees {
		role, ok := g.env.Registry.EmployeeRole(e.ID)
		if !ok || !e.Active() {
			continue
		}
		if _, assignable := assignmentTypes[role]; assignable {
			staff = append(staff, e)
		}
	}
	if len(staff) == 0 {
		return nil
	}

	r := g.env.Rand
	var assignments []types.EmployeeAssignment
	for _, p := range profiles {
		if p.Segment == types.SegmentRetail && !Chance(r, retailAssignmentRate) {
			continue
		}

		e := pick(r, staff)
		role, _ := g.env.Registry.EmployeeRole(e.ID)
		assignments = append(assignments, types.EmployeeAssignment{
			ID:             g.env.ID("ASG", 12),
			EmployeeID:     e.ID,
			CustomerID:     p.CustomerID,
			AssignmentType: assignmentTypes[role],
			StartDate:      Between(r, maxTime(p.OnboardingDate, e.HireDate), g.env.Now),
		})
	}
	return assignments
}
