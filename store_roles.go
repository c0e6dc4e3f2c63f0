package identity

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RoleStore maps the role capability contracts onto a MongoDB collection,
// one database call per operation.
type RoleStore struct {
	roles Collection
	log   Logger
}

var (
	_ Roles      = (*RoleStore)(nil)
	_ RoleWriter = (*RoleStore)(nil)
	_ RoleFinder = (*RoleStore)(nil)
	_ RoleLister = (*RoleStore)(nil)
)

// RoleStoreOption configures a RoleStore.
type RoleStoreOption func(*RoleStore)

// WithRoleStoreLogger overrides the default logger.
func WithRoleStoreLogger(log Logger) RoleStoreOption {
	return func(s *RoleStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewRoleStore builds a store over the given collection handle.
func NewRoleStore(roles Collection, opts ...RoleStoreOption) *RoleStore {
	store := &RoleStore{
		roles: roles,
		log:   defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}

	return store
}

// Create inserts the role as a new document, assigning an ID when empty.
// Uniqueness violations surface as errors matching IsDuplicateKey.
func (s *RoleStore) Create(ctx context.Context, role *Role) error {
	if err := s.ready(role); err != nil {
		return err
	}

	prepareRoleDefaults(role)

	_, err := s.roles.InsertOne(ctx, role)
	return err
}

// Update replaces the stored document for the role's ID; the last Update
// wins, and a missing document is not an error.
func (s *RoleStore) Update(ctx context.Context, role *Role) error {
	if err := s.ready(role); err != nil {
		return err
	}

	res := s.roles.FindOneAndReplace(ctx, bson.M{"_id": role.ID}, role)
	if err := res.Err(); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}

	return nil
}

// Delete removes the role's document by ID, idempotently.
func (s *RoleStore) Delete(ctx context.Context, role *Role) error {
	if err := s.ready(role); err != nil {
		return err
	}

	_, err := s.roles.DeleteOne(ctx, bson.M{"_id": role.ID})
	return err
}

// FindByID returns the role with the given ID, or (nil, nil) when absent.
func (s *RoleStore) FindByID(ctx context.Context, id string) (*Role, error) {
	return s.findOne(ctx, bson.M{"_id": id})
}

// FindByName returns the role with the given normalized name, or (nil, nil)
// when absent. The caller supplies the normalized form.
func (s *RoleStore) FindByName(ctx context.Context, normalizedName string) (*Role, error) {
	return s.findOne(ctx, bson.M{"normalized_name": normalizedName})
}

// AllRoles lists every stored role.
func (s *RoleStore) AllRoles(ctx context.Context) ([]*Role, error) {
	if s.roles == nil {
		return nil, ErrStoreClosed
	}

	cur, err := s.roles.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var matches []*Role
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}

	return matches, nil
}

// Close releases the collection handle; the store is unusable afterwards.
func (s *RoleStore) Close() {
	s.roles = nil
}

func (s *RoleStore) findOne(ctx context.Context, filter bson.M) (*Role, error) {
	if s.roles == nil {
		return nil, ErrStoreClosed
	}

	cur, err := s.roles.Find(ctx, filter, options.Find().SetLimit(2))
	if err != nil {
		return nil, err
	}

	var matches []*Role
	if err := cur.All(ctx, &matches); err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		s.log.Error("roles query %v matched more than one record, uniqueness index missing or broken", filter)
		return nil, fmt.Errorf("roles filter %v: %w", filter, ErrMultipleResults)
	}
}

func (s *RoleStore) ready(role *Role) error {
	if s.roles == nil {
		return ErrStoreClosed
	}
	if role == nil {
		return ErrNilRecord
	}
	return nil
}
