package db

import "errors"

// Domain-level database error sentinels.
var (
	ErrEntitlementNotFound = errors.New("entitlement not found")
)
