package identity

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// DefaultUsersCollection is the collection name used when Config leaves
	// UsersCollection empty.
	DefaultUsersCollection = "users"
	// DefaultRolesCollection is the collection name used when Config leaves
	// RolesCollection empty.
	DefaultRolesCollection = "roles"
)

// Config holds the connection and provisioning options for the stores. It is
// meant to be populated programmatically or bound from structured
// configuration data.
type Config struct {
	// URI is the MongoDB connection string. Ignored when a client is
	// injected through WithClient.
	URI string `json:"uri"`
	// Database is the database holding the identity collections.
	Database string `json:"database"`
	// UsersCollection defaults to "users".
	UsersCollection string `json:"users_collection"`
	// RolesCollection defaults to "roles".
	RolesCollection string `json:"roles_collection"`
	// ManageIndexes makes the manager provision uniqueness and lookup
	// indexes during bootstrap.
	ManageIndexes bool `json:"manage_indexes"`
}

// Validate checks that the config can open its own connection.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.URI, validation.Required),
		validation.Field(&c.Database, validation.Required),
	)
}

func (c *Config) setDefaults() {
	if c.UsersCollection == "" {
		c.UsersCollection = DefaultUsersCollection
	}

	if c.RolesCollection == "" {
		c.RolesCollection = DefaultRolesCollection
	}
}
