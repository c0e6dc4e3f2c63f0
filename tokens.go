package identity

// AuthToken is a named secondary credential scoped to a login provider,
// keyed by (provider, name).
type AuthToken struct {
	Provider string `bson:"provider" json:"provider"`
	Name     string `bson:"name" json:"name"`
	Value    string `bson:"value" json:"value"`
}

// setToken upserts a token by (provider, name): an existing entry gets its
// value overwritten in place, otherwise the token is appended.
func setToken(tokens []AuthToken, provider, name, value string) []AuthToken {
	updated := make([]AuthToken, len(tokens))
	copy(updated, tokens)

	for i, t := range updated {
		if t.Provider == provider && t.Name == name {
			updated[i].Value = value
			return updated
		}
	}

	return append(updated, AuthToken{Provider: provider, Name: name, Value: value})
}

func removeToken(tokens []AuthToken, provider, name string) []AuthToken {
	kept := make([]AuthToken, 0, len(tokens))
	for _, t := range tokens {
		if t.Provider == provider && t.Name == name {
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// findToken returns the token for (provider, name), or false when absent.
func findToken(tokens []AuthToken, provider, name string) (AuthToken, bool) {
	for _, t := range tokens {
		if t.Provider == provider && t.Name == name {
			return t, true
		}
	}
	return AuthToken{}, false
}
