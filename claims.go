package identity

// Claim is a type/value assertion attached to a user or role.
type Claim struct {
	Type  string `bson:"type" json:"type"`
	Value string `bson:"value" json:"value"`
}

// Equal compares claims by (type, value).
func (c Claim) Equal(other Claim) bool {
	return c.Type == other.Type && c.Value == other.Value
}

// claimsUnion returns a new slice containing existing plus any incoming claims
// not already present. Duplicate (type, value) pairs collapse to one entry.
func claimsUnion(existing, incoming []Claim) []Claim {
	merged := make([]Claim, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	for _, claim := range incoming {
		if !containsClaim(merged, claim) {
			merged = append(merged, claim)
		}
	}

	return merged
}

// claimsExcept returns a new slice without any claim matching the removals
// by (type, value).
func claimsExcept(existing, removals []Claim) []Claim {
	kept := make([]Claim, 0, len(existing))
	for _, claim := range existing {
		if !containsClaim(removals, claim) {
			kept = append(kept, claim)
		}
	}
	return kept
}

func containsClaim(claims []Claim, claim Claim) bool {
	for _, c := range claims {
		if c.Equal(claim) {
			return true
		}
	}
	return false
}
