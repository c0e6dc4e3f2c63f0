package identity

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserStore maps the user capability contracts onto a single MongoDB
// collection. Every method issues at most one database call; in-memory field
// access happens on the User record itself and reaches storage only through
// Update.
type UserStore struct {
	users Collection
	log   Logger
}

var (
	_ Users           = (*UserStore)(nil)
	_ UserWriter      = (*UserStore)(nil)
	_ UserFinder      = (*UserStore)(nil)
	_ UserEmailFinder = (*UserStore)(nil)
	_ UserLoginFinder = (*UserStore)(nil)
	_ UserClaimFinder = (*UserStore)(nil)
	_ UserRoleFinder  = (*UserStore)(nil)
	_ UserLister      = (*UserStore)(nil)
)

// UserStoreOption configures a UserStore.
type UserStoreOption func(*UserStore)

// WithUserStoreLogger overrides the default logger.
func WithUserStoreLogger(log Logger) UserStoreOption {
	return func(s *UserStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewUserStore builds a store over the given collection handle. The handle is
// shared by all concurrent calls and never reassigned except by Close.
func NewUserStore(users Collection, opts ...UserStoreOption) *UserStore {
	store := &UserStore{
		users: users,
		log:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store
}

// Create inserts the user as a new document, assigning an ID and security
// stamp when empty. Uniqueness violations surface as errors matching
// IsDuplicateKey.
func (s *UserStore) Create(ctx context.Context, user *User) error {
	if err := s.ready(user); err != nil {
		return err
	}

	prepareUserDefaults(user)

	_, err := s.users.InsertOne(ctx, user)
	return err
}

// Update replaces the stored document for the user's ID with the in-memory
// record. No partial patch, no concurrency token: the last Update wins, and
// updating a record that no longer exists is not an error.
func (s *UserStore) Update(ctx context.Context, user *User) error {
	if err := s.ready(user); err != nil {
		return err
	}

	res := s.users.FindOneAndReplace(ctx, bson.M{"_id": user.ID}, user)
	if err := res.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return nil
}

// Delete removes the user's document by ID. Deleting an already-deleted
// record succeeds.
func (s *UserStore) Delete(ctx context.Context, user *User) error {
	if err := s.ready(user); err != nil {
		return err
	}

	_, err := s.users.DeleteOne(ctx, bson.M{"_id": user.ID})
	return err
}

// FindByID returns the user with the given ID, or (nil, nil) when absent.
func (s *UserStore) FindByID(ctx context.Context, id string) (*User, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the user with the given normalized name, or (nil, nil)
// when absent. Normalization is the caller's job; the store compares the
// stored normalized_name field verbatim.
func (s *UserStore) FindByName(ctx context.Context, normalizedName string) (*User, error) {
	return s.findOne(ctx, bson.M{"normalized_name": normalizedName})
}

// FindByEmail returns the user with the given normalized email, or (nil, nil)
// when absent.
func (s *UserStore) FindByEmail(ctx context.Context, normalizedEmail string) (*User, error) {
	return s.findOne(ctx, bson.M{"normalized_email": normalizedEmail})
}

// FindByLogin returns the user holding the external login (provider, key),
// or (nil, nil) when absent.
func (s *UserStore) FindByLogin(ctx context.Context, provider, key string) (*User, error) {
	return s.findOne(ctx, bson.M{
		"logins": bson.M{
			"$elemMatch": bson.M{
				"provider": provider,
				"key":      key,
			},
		},
	})
}

// UsersForClaim lists every user carrying the exact (type, value) claim.
func (s *UserStore) UsersForClaim(ctx context.Context, claim Claim) ([]*User, error) {
	return s.findAll(ctx, bson.M{
		"claims": bson.M{
			"$elemMatch": bson.M{
				"type":  claim.Type,
				"value": claim.Value,
			},
		},
	})
}

// UsersInRole lists every user that is a member of the named role.
func (s *UserStore) UsersInRole(ctx context.Context, roleName string) ([]*User, error) {
	return s.findAll(ctx, bson.M{"roles": roleName})
}

// AllUsers lists every stored user.
func (s *UserStore) AllUsers(ctx context.Context) ([]*User, error) {
	return s.findAll(ctx, bson.M{})
}

// Close releases the collection handle. The store is unusable afterwards;
// every call returns ErrStoreClosed.
func (s *UserStore) Close() {
	s.users = nil
}

// findOne expects at most one match. Two matches mean a uniqueness invariant
// is broken, and the store fails loudly instead of picking one.
func (s *UserStore) findOne(ctx context.Context, filter bson.M) (*User, error) {
	if s.users == nil {
		return nil, ErrStoreClosed
	}

	cur, err := s.users.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, err
	}

	var matches []*User
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		s.log.Error("users query %v matched more than one record, uniqueness index missing or broken", filter)
		return nil, fmt.Errorf("users filter %v: %w", filter, ErrMultipleResults)
	}
}

func (s *UserStore) findAll(ctx context.Context, filter bson.M) ([]*User, error) {
	if s.users == nil {
		return nil, ErrStoreClosed
	}

	cur, err := s.users.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var matches []*User
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}

	return matches, nil
}

func (s *UserStore) ready(user *User) error {
	if s.users == nil {
		return ErrStoreClosed
	}
	if user == nil {
		return ErrNilRecord
	}
	return nil
}
