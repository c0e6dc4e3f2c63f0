package identity

import "testing"

func TestConfigSetDefaults(t *testing.T) {
	cfg := Config{}
	cfg.setDefaults()

	if cfg.UsersCollection != DefaultUsersCollection {
		t.Fatalf("expected %q, got %q", DefaultUsersCollection, cfg.UsersCollection)
	}
	if cfg.RolesCollection != DefaultRolesCollection {
		t.Fatalf("expected %q, got %q", DefaultRolesCollection, cfg.RolesCollection)
	}

	custom := Config{UsersCollection: "accounts", RolesCollection: "groups"}
	custom.setDefaults()

	if custom.UsersCollection != "accounts" || custom.RolesCollection != "groups" {
		t.Fatal("defaults overwrote configured collection names")
	}
}
