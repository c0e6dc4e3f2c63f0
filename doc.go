// Package identity persists identity-framework users and roles in MongoDB.
//
// The package is a storage adapter, not an authentication system: it stores
// whatever password hashes, security stamps, claims, logins, and tokens the
// host framework hands it, one document per user or role, and translates each
// framework storage call into a single collection operation.
//
// Capability surface:
//   - Store contracts are split into small interface groups (UserWriter,
//     UserLoginFinder, RoleFinder, ...) so a host can depend on exactly the
//     subset it needs. UserStore and RoleStore satisfy every group, verified
//     at compile time rather than failing at call time.
//   - In-memory mutation helpers on User and Role enforce the set semantics
//     for claims, logins, auth tokens, and role memberships. They never touch
//     storage; an explicit Update call persists the record.
//
// Index management:
//   - EnsureUserIndexes and EnsureRoleIndexes provision the uniqueness and
//     lookup indexes the stores rely on. StoreManager runs them once during
//     bootstrap when Config.ManageIndexes is set, making initialization order
//     explicit instead of hiding it behind a lazy accessor.
package identity
