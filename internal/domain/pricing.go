package domain

// Default unlock prices in cents. The basic price has appeared in product
// material as both 29 and 29.99; it is a single configurable constant so
// every call site reads the same value once product settles it.
const (
	DefaultBasicUnlockCents    int64 = 2999
	DefaultStandardUnlockCents int64 = 999
	DefaultFlexUnlockCents     int64 = 199

	StandardMonthlyFreeQuota = 10
)

// QuotaUnlimited marks plans without a monthly allowance cap.
const QuotaUnlimited = -1

// Pricing is the resolved price table the entitlement engine decides
// against. Built once from config at startup.
type Pricing struct {
	BasicUnlockCents    int64
	StandardUnlockCents int64
	FlexUnlockCents     int64
	StandardFreeQuota   int
}

func DefaultPricing() Pricing {
	return Pricing{
		BasicUnlockCents:    DefaultBasicUnlockCents,
		StandardUnlockCents: DefaultStandardUnlockCents,
		FlexUnlockCents:     DefaultFlexUnlockCents,
		StandardFreeQuota:   StandardMonthlyFreeQuota,
	}
}

// FreeQuota returns the monthly free unlock allowance for a plan.
// Premium is unlimited, standard gets a capped allowance, basic gets none.
func (p Pricing) FreeQuota(plan SubscriptionPlan) int {
	switch plan {
	case PlanPremium:
		return QuotaUnlimited
	case PlanStandard:
		return p.StandardFreeQuota
	default:
		return 0
	}
}
