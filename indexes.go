package identity

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureUserIndexes provisions the indexes the user store relies on: unique
// normalized name, unique sparse normalized email, and lookup indexes for
// role membership, logins, and claims. Creating an index that already exists
// is a no-op, so the call is safe to repeat.
func EnsureUserIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateMany(ctx, userIndexModels())
	return err
}

// EnsureRoleIndexes provisions the unique normalized-name index for roles.
func EnsureRoleIndexes(ctx context.Context, roles *mongo.Collection) error {
	_, err := roles.Indexes().CreateMany(ctx, roleIndexModels())
	return err
}

func userIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "normalized_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// Sparse: email is optional, and a unique index over missing
			// fields would reject the second user without one.
			Keys:    bson.D{{Key: "normalized_email", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "roles", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys: bson.D{
				{Key: "logins.provider", Value: 1},
				{Key: "logins.key", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "claims.type", Value: 1},
				{Key: "claims.value", Value: 1},
			},
		},
	}
}

func roleIndexModels() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "normalized_name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
}
