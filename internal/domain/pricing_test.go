package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolvePlanFallsBackToBasic(t *testing.T) {
	assert.Equal(t, PlanStandard, ResolvePlan("standard"))
	assert.Equal(t, PlanPremium, ResolvePlan("premium"))
	assert.Equal(t, PlanBasic, ResolvePlan("basic"))
	assert.Equal(t, PlanBasic, ResolvePlan(""))
	assert.Equal(t, PlanBasic, ResolvePlan("enterprise"))
}

func TestFreeQuotaPerPlan(t *testing.T) {
	p := DefaultPricing()

	assert.Equal(t, QuotaUnlimited, p.FreeQuota(PlanPremium))
	assert.Equal(t, StandardMonthlyFreeQuota, p.FreeQuota(PlanStandard))
	assert.Equal(t, 0, p.FreeQuota(PlanBasic))
}

func TestChargedCentsDefaultsToZero(t *testing.T) {
	m := &Match{}
	assert.Equal(t, int64(0), m.ChargedCents())

	price := int64(999)
	m.EmployerPriceCharged = &price
	assert.Equal(t, int64(999), m.ChargedCents())
}
