package generator

import (
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rana718/demoseed/internal/types"
)

const draws = 20_000

func assertFrequencies[T comparable](t *testing.T, name string, w Weighted[T]) {
	t.Helper()
	r := rand.New(rand.NewSource(7))

	counts := make(map[T]int)
	for i := 0; i < draws; i++ {
		counts[w.Pick(r)]++
	}

	for _, c := range w.Choices() {
		got := float64(counts[c.Value]) / draws
		assert.InDelta(t, c.Weight, got, 0.03, "%s: frequency of %v", name, c.Value)
	}
}

func TestWeightedTablesMatchTheirWeights(t *testing.T) {
	assertFrequencies(t, "role", roleDistribution)
	assertFrequencies(t, "segment", segmentDistribution)
	assertFrequencies(t, "customer status", customerStatusDistribution)
	assertFrequencies(t, "kyc", kycDistribution)
	assertFrequencies(t, "risk", riskDistribution)
	assertFrequencies(t, "account type", accountTypeDistribution)
	assertFrequencies(t, "account status", accountStatusDistribution)
	assertFrequencies(t, "spending", spendingDistribution)
	assertFrequencies(t, "income", incomeDistribution)
	assertFrequencies(t, "campaign type", campaignTypeDistribution)
	assertFrequencies(t, "channel", channelDistribution)
	assertFrequencies(t, "interaction type", interactionTypeDistribution)
	assertFrequencies(t, "outcome", outcomeDistribution)
	assertFrequencies(t, "satisfaction", satisfactionDistribution)
	assertFrequencies(t, "complaint type", complaintTypeDistribution)
	assertFrequencies(t, "severity", severityDistribution)
	assertFrequencies(t, "complaint status", complaintStatusDistribution)
	assertFrequencies(t, "response type", responseTypeDistribution)
	assertFrequencies(t, "training status", trainingStatusDistribution)
	assertFrequencies(t, "rating", ratingDistribution)
	assertFrequencies(t, "loan type", loanTypeDistribution)
	assertFrequencies(t, "application status", applicationStatusDistribution)
	assertFrequencies(t, "loan status", loanStatusDistribution)
}

func TestNewWeightedRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name    string
		choices []Choice[string]
	}{
		{"empty", nil},
		{"sum below one", []Choice[string]{{"a", 0.5}, {"b", 0.4}}},
		{"sum above one", []Choice[string]{{"a", 0.7}, {"b", 0.4}}},
		{"negative weight", []Choice[string]{{"a", 1.2}, {"b", -0.2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWeighted(tt.choices...)
			assert.ErrorIs(t, err, ErrInvalidWeights)
		})
	}

	assert.Panics(t, func() { MustWeighted(Choice[string]{"a", 0.5}) })

	w, err := NewWeighted(Choice[string]{"a", 0.1}, Choice[string]{"b", 0.2}, Choice[string]{"c", 0.7})
	require.NoError(t, err)
	assert.Len(t, w.Choices(), 3)
}

func TestBoundedNormal(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	sum := 0
	for i := 0; i < draws; i++ {
		age := BoundedNormal(r, ageMean, ageStddev, minAge, maxAge)
		require.GreaterOrEqual(t, age, minAge)
		require.LessOrEqual(t, age, maxAge)
		sum += age
	}
	assert.InDelta(t, 42, float64(sum)/draws, 1.5)
}

func TestBetween(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	lo := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	hi := lo.Add(48 * time.Hour)

	for i := 0; i < 1000; i++ {
		v := Between(r, lo, hi)
		assert.False(t, v.Before(lo))
		assert.True(t, v.Before(hi))
	}

	assert.Equal(t, lo, Between(r, lo, lo), "empty interval")
	assert.Equal(t, hi, Between(r, hi, lo), "inverted interval falls back to lower bound")
}

func TestSampleIndices(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	picked := SampleIndices(r, 100, 25)
	require.Len(t, picked, 25)
	seen := make(map[int]bool)
	for _, i := range picked {
		assert.False(t, seen[i])
		assert.True(t, i >= 0 && i < 100)
		seen[i] = true
	}

	assert.Len(t, SampleIndices(r, 3, 10), 3)
	assert.Empty(t, SampleIndices(r, 10, 0))
	assert.Empty(t, SampleIndices(r, 0, 5))
}

func TestIntBetweenIsInclusive(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)
	for i := 0; i < 1000; i++ {
		v := IntBetween(r, 1, 3)
		require.True(t, v >= 1 && v <= 3)
		seen[v] = true
	}
	assert.Len(t, seen, 3)
	assert.Equal(t, 5, IntBetween(r, 5, 5))
}

func TestNewID(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	pattern := regexp.MustCompile(`^CUST-[0-9A-F]{10}$`)
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewID(r, "CUST", 10)
		require.Regexp(t, pattern, id)
		assert.False(t, seen[id])
		seen[id] = true
	}
}

func TestRoleQuota(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	roles := RoleQuota(r, 150)
	require.Len(t, roles, 150)

	counts := make(map[types.Role]int)
	for _, role := range roles {
		counts[role]++
	}
	for _, c := range roleDistribution.Choices() {
		assert.GreaterOrEqual(t, counts[c.Value], int(150*c.Weight), "quota of %s", c.Value)
	}

	assert.Len(t, RoleQuota(r, 7), 7)
	assert.Empty(t, RoleQuota(r, 0))
}
