// Package registry provides the authorization registry aggregate: the admin
// identity plus the two allow-lists (eligible warehouse managers and eligible
// quality inspectors) consulted by role assignment operations.
//
// The registry is pure lookup and mutation; it carries no workflow logic.
// Both mutating operations (SetAuthorized, TransferAdmin) are admin-only and
// the admin role can never be transferred to the null identity.
package registry
