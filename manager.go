package identity

import (
	"context"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// StoreManager exposes the wired stores. It owns the client connection when
// it opened one itself, and releases every handle on Close.
type StoreManager interface {
	Users() Users
	Roles() Roles
	Validate() error
	Close(ctx context.Context) error
}

type mngr struct {
	client     *mongo.Client
	ownsClient bool
	users      *UserStore
	roles      *RoleStore
	log        Logger
}

var _ StoreManager = (*mngr)(nil)

// ManagerOption configures a StoreManager before it connects.
type ManagerOption func(*mngr)

// WithClient makes the manager reuse an already-connected client instead of
// opening one from Config.URI. The caller keeps ownership: Close will not
// disconnect it.
func WithClient(client *mongo.Client) ManagerOption {
	return func(m *mngr) {
		m.client = client
	}
}

// WithLogger overrides the default logger for the manager and its stores.
func WithLogger(log Logger) ManagerOption {
	return func(m *mngr) {
		if log != nil {
			m.log = log
		}
	}
}

// NewStoreManager wires user and role stores from the given config. When
// cfg.ManageIndexes is set, index provisioning runs here, once, as part of
// bootstrap.
func NewStoreManager(ctx context.Context, cfg Config, opts ...ManagerOption) (StoreManager, error) {
	cfg.setDefaults()

	m := &mngr{
		log: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.client == nil {
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("identity config: %w", err)
		}

		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			return nil, fmt.Errorf("identity connect: %w", err)
		}

		m.client = client
		m.ownsClient = true
	} else if err := validation.Validate(cfg.Database, validation.Required); err != nil {
		return nil, fmt.Errorf("identity config: database: %w", err)
	}

	db := m.client.Database(cfg.Database)
	users := db.Collection(cfg.UsersCollection)
	roles := db.Collection(cfg.RolesCollection)

	if cfg.ManageIndexes {
		m.log.Info("ensuring identity indexes on %s.%s and %s.%s",
			cfg.Database, cfg.UsersCollection, cfg.Database, cfg.RolesCollection)

		if err := EnsureUserIndexes(ctx, users); err != nil {
			m.disconnect(ctx)
			return nil, fmt.Errorf("identity user indexes: %w", err)
		}

		if err := EnsureRoleIndexes(ctx, roles); err != nil {
			m.disconnect(ctx)
			return nil, fmt.Errorf("identity role indexes: %w", err)
		}
	}

	m.users = NewUserStore(users, WithUserStoreLogger(m.log))
	m.roles = NewRoleStore(roles, WithRoleStoreLogger(m.log))

	return m, nil
}

func (m *mngr) Users() Users {
	return m.users
}

func (m *mngr) Roles() Roles {
	return m.roles
}

func (m *mngr) Validate() error {
	if m.users == nil {
		return fmt.Errorf("store users should be initialized")
	}

	if m.roles == nil {
		return fmt.Errorf("store roles should be initialized")
	}

	return nil
}

// Close releases the store handles and, when the manager opened the
// connection itself, disconnects the client.
func (m *mngr) Close(ctx context.Context) error {
	if m.users != nil {
		m.users.Close()
	}

	if m.roles != nil {
		m.roles.Close()
	}

	return m.disconnect(ctx)
}

func (m *mngr) disconnect(ctx context.Context) error {
	if m.client == nil {
		return nil
	}

	client := m.client
	m.client = nil

	if !m.ownsClient {
		return nil
	}

	return client.Disconnect(ctx)
}
