package catalog

import "strings"

// Tier is a subscription level used for template gating.
type Tier string

// Subscription tiers, ordered from lowest to highest.
const (
	// TierFree is the lowest tier and the default for unknown viewers.
	TierFree Tier = "free"
	// TierStarter is the entry paid tier.
	TierStarter Tier = "starter"
	// TierPro is the professional tier.
	TierPro Tier = "pro"
	// TierEnterprise is the highest tier.
	TierEnterprise Tier = "enterprise"
)

// tierOrder fixes the ordinal position of each tier.
var tierOrder = []Tier{TierFree, TierStarter, TierPro, TierEnterprise}

// Rank returns the ordinal position of a tier, or -1 when the tier is not
// part of the ordering. Callers must treat -1 as deny.
func Rank(t Tier) int {
	for i, candidate := range tierOrder {
		if candidate == t {
			return i
		}
	}
	return -1
}

// ParseTier normalizes a raw plan value. Unknown or empty values collapse
// to TierFree, never to a higher tier.
func ParseTier(raw string) Tier {
	normalized := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if Rank(normalized) >= 0 {
		return normalized
	}
	return TierFree
}

// Tiers returns the ordered tier sequence.
func Tiers() []Tier {
	out := make([]Tier, len(tierOrder))
	copy(out, tierOrder)
	return out
}
