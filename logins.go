package identity

// LoginInfo links a user to an external provider identity.
// Two logins are the same login when provider and key match; the display
// name is presentation data and carries no identity.
type LoginInfo struct {
	Provider    string `bson:"provider" json:"provider"`
	Key         string `bson:"key" json:"key"`
	DisplayName string `bson:"display_name,omitempty" json:"display_name,omitempty"`
}

// Equal compares logins by (provider, key).
func (l LoginInfo) Equal(other LoginInfo) bool {
	return l.Provider == other.Provider && l.Key == other.Key
}

func loginsUnion(existing, incoming []LoginInfo) []LoginInfo {
	merged := make([]LoginInfo, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	for _, login := range incoming {
		if !containsLogin(merged, login) {
			merged = append(merged, login)
		}
	}

	return merged
}

func loginsExcept(existing []LoginInfo, provider, key string) []LoginInfo {
	kept := make([]LoginInfo, 0, len(existing))
	for _, login := range existing {
		if login.Provider == provider && login.Key == key {
			continue
		}
		kept = append(kept, login)
	}
	return kept
}

func containsLogin(logins []LoginInfo, login LoginInfo) bool {
	for _, l := range logins {
		if l.Equal(login) {
			return true
		}
	}
	return false
}
