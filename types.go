package identity

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Logger is the minimal logging surface the stores emit through
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// Collection is the slice of *mongo.Collection the stores drive. Everything a
// store does maps onto one of these calls.
type Collection interface {
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	DeleteOne(ctx context.Context, filter any, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOneAndReplace(ctx context.Context, filter any, replacement any, opts ...*options.FindOneAndReplaceOptions) *mongo.SingleResult
}

var _ Collection = (*mongo.Collection)(nil)

// UserWriter covers the mutating CRUD surface for users.
type UserWriter interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, user *User) error
}

// UserFinder resolves single users by their point-lookup keys. Finders return
// (nil, nil) when no record matches; absence is not an error.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByName(ctx context.Context, normalizedName string) (*User, error)
}

// UserEmailFinder resolves a user by normalized email.
type UserEmailFinder interface {
	FindByEmail(ctx context.Context, normalizedEmail string) (*User, error)
}

// UserLoginFinder resolves a user by external login key.
type UserLoginFinder interface {
	FindByLogin(ctx context.Context, provider, key string) (*User, error)
}

// UserClaimFinder lists users carrying a claim.
type UserClaimFinder interface {
	UsersForClaim(ctx context.Context, claim Claim) ([]*User, error)
}

// UserRoleFinder lists users belonging to a role.
type UserRoleFinder interface {
	UsersInRole(ctx context.Context, roleName string) ([]*User, error)
}

// UserLister enumerates every stored user.
type UserLister interface {
	AllUsers(ctx context.Context) ([]*User, error)
}

// Users is the full user capability set. Hosts that only need a subset should
// depend on the narrower interfaces instead.
type Users interface {
	UserWriter
	UserFinder
	UserEmailFinder
	UserLoginFinder
	UserClaimFinder
	UserRoleFinder
	UserLister
}

// RoleWriter covers the mutating CRUD surface for roles.
type RoleWriter interface {
	Create(ctx context.Context, role *Role) error
	Update(ctx context.Context, role *Role) error
	Delete(ctx context.Context, role *Role) error
}

// RoleFinder resolves single roles by id or normalized name.
type RoleFinder interface {
	FindByID(ctx context.Context, id string) (*Role, error)
	FindByName(ctx context.Context, normalizedName string) (*Role, error)
}

// RoleLister enumerates every stored role.
type RoleLister interface {
	AllRoles(ctx context.Context) ([]*Role, error)
}

// Roles is the full role capability set.
type Roles interface {
	RoleWriter
	RoleFinder
	RoleLister
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] IDENTITY "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] IDENTITY "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] IDENTITY "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
