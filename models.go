package identity

import (
	"time"

	"github.com/google/uuid"
)

// User is the user document stored per identity.
//
// NormalizedName and NormalizedEmail hold the comparison form the host
// framework derives (typically upper-cased); the store never normalizes on
// the caller's behalf. Field mutation is plain assignment, collection
// mutation goes through the helper methods so the set invariants hold.
type User struct {
	ID                   string      `bson:"_id,omitempty" json:"id,omitempty"`
	Name                 string      `bson:"name" json:"name,omitempty"`
	NormalizedName       string      `bson:"normalized_name" json:"normalized_name,omitempty"`
	PasswordHash         string      `bson:"password_hash,omitempty" json:"-"`
	Email                string      `bson:"email,omitempty" json:"email,omitempty"`
	NormalizedEmail      string      `bson:"normalized_email,omitempty" json:"normalized_email,omitempty"`
	EmailConfirmed       bool        `bson:"email_confirmed" json:"email_confirmed,omitempty"`
	PhoneNumber          string      `bson:"phone_number,omitempty" json:"phone_number,omitempty"`
	PhoneNumberConfirmed bool        `bson:"phone_number_confirmed" json:"phone_number_confirmed,omitempty"`
	SecurityStamp        string      `bson:"security_stamp,omitempty" json:"-"`
	TwoFactorEnabled     bool        `bson:"two_factor_enabled" json:"two_factor_enabled,omitempty"`
	LockoutEnabled       bool        `bson:"lockout_enabled" json:"lockout_enabled,omitempty"`
	LockoutEnd           *time.Time  `bson:"lockout_end,omitempty" json:"lockout_end,omitempty"`
	AccessFailedCount    int         `bson:"access_failed_count" json:"access_failed_count,omitempty"`
	Logins               []LoginInfo `bson:"logins,omitempty" json:"logins,omitempty"`
	Claims               []Claim     `bson:"claims,omitempty" json:"claims,omitempty"`
	AuthTokens           []AuthToken `bson:"auth_tokens,omitempty" json:"auth_tokens,omitempty"`
	Roles                []string    `bson:"roles,omitempty" json:"roles,omitempty"`
}

// AddClaim adds a single claim, ignoring duplicates by (type, value).
func (u *User) AddClaim(claim Claim) {
	u.AddClaims(claim)
}

// AddClaims unions the given claims into the user's claim set.
func (u *User) AddClaims(claims ...Claim) {
	u.Claims = claimsUnion(u.Claims, claims)
}

// RemoveClaims drops every claim matching one of the given (type, value) pairs.
func (u *User) RemoveClaims(claims ...Claim) {
	u.Claims = claimsExcept(u.Claims, claims)
}

// ReplaceClaim swaps oldClaim for newClaim. When oldClaim is not present the
// claim set is left untouched; the replacement is contingent on a match.
func (u *User) ReplaceClaim(oldClaim, newClaim Claim) {
	if !containsClaim(u.Claims, oldClaim) {
		return
	}
	u.Claims = claimsUnion(claimsExcept(u.Claims, []Claim{oldClaim}), []Claim{newClaim})
}

// HasClaim reports whether the user carries the exact (type, value) claim.
func (u *User) HasClaim(claim Claim) bool {
	return containsClaim(u.Claims, claim)
}

// AddLogin records an external provider login, ignoring duplicates by
// (provider, key).
func (u *User) AddLogin(login LoginInfo) {
	u.AddLogins(login)
}

// AddLogins unions the given logins into the user's login set.
func (u *User) AddLogins(logins ...LoginInfo) {
	u.Logins = loginsUnion(u.Logins, logins)
}

// RemoveLogin drops the login for (provider, key) regardless of its
// display name.
func (u *User) RemoveLogin(provider, key string) {
	u.Logins = loginsExcept(u.Logins, provider, key)
}

// SetToken upserts the auth token for (provider, name), overwriting the
// value when the key already exists.
func (u *User) SetToken(provider, name, value string) {
	u.AuthTokens = setToken(u.AuthTokens, provider, name, value)
}

// RemoveToken drops the auth token for (provider, name), no-op when absent.
func (u *User) RemoveToken(provider, name string) {
	u.AuthTokens = removeToken(u.AuthTokens, provider, name)
}

// GetToken returns the token value for (provider, name), or false when absent.
func (u *User) GetToken(provider, name string) (string, bool) {
	token, ok := findToken(u.AuthTokens, provider, name)
	return token.Value, ok
}

// AddToRole records membership in the named role, no-op when already a member.
func (u *User) AddToRole(name string) {
	if u.IsInRole(name) {
		return
	}
	roles := make([]string, len(u.Roles), len(u.Roles)+1)
	copy(roles, u.Roles)
	u.Roles = append(roles, name)
}

// RemoveFromRole drops membership in the named role, no-op when absent.
func (u *User) RemoveFromRole(name string) {
	kept := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		if role == name {
			continue
		}
		kept = append(kept, role)
	}
	u.Roles = kept
}

// IsInRole reports membership in the named role.
func (u *User) IsInRole(name string) bool {
	for _, role := range u.Roles {
		if role == name {
			return true
		}
	}
	return false
}

// IncrementAccessFailedCount bumps the in-memory failure counter and returns
// the new value. Nothing is persisted until an explicit store Update.
func (u *User) IncrementAccessFailedCount() int {
	u.AccessFailedCount++
	return u.AccessFailedCount
}

// ResetAccessFailedCount zeroes the in-memory failure counter.
func (u *User) ResetAccessFailedCount() {
	u.AccessFailedCount = 0
}

// HasPassword reports whether a password hash is set.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// IsLockedOut reports whether the user is locked out at the given instant.
func (u *User) IsLockedOut(now time.Time) bool {
	return u.LockoutEnabled && u.LockoutEnd != nil && u.LockoutEnd.After(now)
}

// Role is the role document. Roles carry their own claim set with the same
// union/except semantics as users.
type Role struct {
	ID             string  `bson:"_id,omitempty" json:"id,omitempty"`
	Name           string  `bson:"name" json:"name,omitempty"`
	NormalizedName string  `bson:"normalized_name" json:"normalized_name,omitempty"`
	Claims         []Claim `bson:"claims,omitempty" json:"claims,omitempty"`
}

// AddClaim adds a single claim, ignoring duplicates by (type, value).
func (r *Role) AddClaim(claim Claim) {
	r.AddClaims(claim)
}

// AddClaims unions the given claims into the role's claim set.
func (r *Role) AddClaims(claims ...Claim) {
	r.Claims = claimsUnion(r.Claims, claims)
}

// RemoveClaims drops every claim matching one of the given (type, value) pairs.
func (r *Role) RemoveClaims(claims ...Claim) {
	r.Claims = claimsExcept(r.Claims, claims)
}

func prepareUserDefaults(record *User) {
	if record == nil {
		return
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}

	if record.SecurityStamp == "" {
		record.SecurityStamp = uuid.New().String()
	}
}

func prepareRoleDefaults(record *Role) {
	if record == nil {
		return
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
}
