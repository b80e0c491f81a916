package generator

import (
	"github.com/Rana718/demoseed/internal/types"
	"github.com/Rana718/demoseed/internal/unique"
)

const (
	ageMean        = 42
	ageStddev      = 15
	minAge         = 18
	maxAge         = 85
	agentRate      = 0.80
	customerYears  = 7
	defaultCountry = "USA"
)

var (
	segmentDistribution = MustWeighted(
		Choice[string]{types.SegmentRetail, 0.60},
		Choice[string]{types.SegmentPremium, 0.25},
		Choice[string]{types.SegmentCorporate, 0.10},
		Choice[string]{types.SegmentPrivateBanking, 0.05},
	)
	customerStatusDistribution = MustWeighted(
		Choice[string]{"active", 0.90},
		Choice[string]{"dormant", 0.07},
		Choice[string]{"closed", 0.03},
	)
	kycDistribution = MustWeighted(
		Choice[string]{"verified", 0.85},
		Choice[string]{"pending", 0.10},
		Choice[string]{"expired", 0.05},
	)
	riskDistribution = MustWeighted(
		Choice[string]{"low", 0.70},
		Choice[string]{"medium", 0.25},
		Choice[string]{"high", 0.05},
	)
)

// CustomerGenerator produces the customer master records and their CRM
// profiles.
type CustomerGenerator struct {
	env *Env
	n   int
}

func NewCustomerGenerator(env *Env, n int) *CustomerGenerator {
	return &CustomerGenerator{env: env, n: n}
}

// Customers creates n customers and registers each one.
func (g *CustomerGenerator) Customers() ([]types.Customer, error) {
	r := g.env.Rand
	f := g.env.Faker
	customers := make([]types.Customer, 0, g.n)

	for i := 0; i < g.n; i++ {
		email, err := unique.Generate(g.env.Unique, CategoryCustomerEmail, 0, f.Email)
		if err != nil {
			return nil, err
		}
		phone, err := unique.Generate(g.env.Unique, CategoryCustomerPhone, 0, g.env.Phone)
		if err != nil {
			return nil, err
		}

		age := BoundedNormal(r, ageMean, ageStddev, minAge, maxAge)
		c := types.Customer{
			ID:          g.env.ID("CUST", 10),
			FirstName:   f.FirstName(),
			LastName:    f.LastName(),
			DateOfBirth: g.env.Now.AddDate(-age, 0, -IntBetween(r, 0, 364)),
			Email:       email,
			Phone:       phone,
			CreatedAt:   Between(r, g.env.Now.AddDate(-customerYears, 0, 0), g.env.Now),
			Street:      f.Street(),
			City:        f.City(),
			State:       f.StateAbr(),
			ZipCode:     f.Zip(),
			Country:     defaultCountry,
		}

		customers = append(customers, c)
		g.env.Registry.AddCustomer(c.ID)
	}

	return customers, nil
}

// Profiles builds one CRM profile per customer. The assigned agent is drawn
// from registered employees and left empty when there are none.
func (g *CustomerGenerator) Profiles(customers []types.Customer) []types.CustomerProfile {
	r := g.env.Rand
	employees := g.env.Registry.EmployeeIDs()
	profiles := make([]types.CustomerProfile, 0, len(customers))

	for _, c := range customers {
		p := types.CustomerProfile{
			CustomerID:     c.ID,
			FullName:       c.FullName(),
			Email:          c.Email,
			Phone:          c.Phone,
			Address:        c.FullAddress(),
			City:           c.City,
			Country:        c.Country,
			Segment:        segmentDistribution.Pick(r),
			Status:         customerStatusDistribution.Pick(r),
			KYCStatus:      kycDistribution.Pick(r),
			RiskRating:     riskDistribution.Pick(r),
			OnboardingDate: c.CreatedAt,
			CreatedAt:      c.CreatedAt,
			UpdatedAt:      c.CreatedAt,
		}
		if Chance(r, agentRate) && len(employees) > 0 {
			p.AssignedAgentID = ptr(pick(r, employees))
		}
		profiles = append(profiles, p)
	}

	return profiles
}
