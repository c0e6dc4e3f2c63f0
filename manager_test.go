package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	identity "github.com/identikit/go-identity-mongo"
)

// The driver connects lazily, so wiring a manager around an injected client
// never touches the network as long as index management stays off.
func TestNewStoreManagerWithInjectedClient(t *testing.T) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)

	manager, err := identity.NewStoreManager(ctx, identity.Config{
		Database: "identity_test",
	}, identity.WithClient(client))

	require.NoError(t, err)
	require.NoError(t, manager.Validate())
	assert.NotNil(t, manager.Users())
	assert.NotNil(t, manager.Roles())

	// the manager does not own the injected client, Close must not
	// disconnect it
	require.NoError(t, manager.Close(ctx))
	require.NoError(t, client.Disconnect(ctx))
}

func TestNewStoreManagerRequiresDatabase(t *testing.T) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	_, err = identity.NewStoreManager(ctx, identity.Config{}, identity.WithClient(client))
	assert.Error(t, err)
}

func TestNewStoreManagerValidatesConfig(t *testing.T) {
	_, err := identity.NewStoreManager(context.Background(), identity.Config{})
	assert.Error(t, err)

	_, err = identity.NewStoreManager(context.Background(), identity.Config{URI: "mongodb://localhost:27017"})
	assert.Error(t, err)
}

func TestStoresAreUnusableAfterManagerClose(t *testing.T) {
	ctx := context.Background()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI("mongodb://localhost:27017"))
	require.NoError(t, err)
	defer client.Disconnect(ctx)

	manager, err := identity.NewStoreManager(ctx, identity.Config{
		Database: "identity_test",
	}, identity.WithClient(client))
	require.NoError(t, err)

	require.NoError(t, manager.Close(ctx))

	_, err = manager.Users().FindByID(ctx, "u1")
	assert.ErrorIs(t, err, identity.ErrStoreClosed)

	_, err = manager.Roles().FindByID(ctx, "r1")
	assert.ErrorIs(t, err, identity.ErrStoreClosed)
}
