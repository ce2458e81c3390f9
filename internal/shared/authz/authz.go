// Package authz は所有者ベースの認可ポリシーを提供します。
package authz

import "errors"

// ErrForbidden is returned when an authenticated actor attempts a mutation on
// a resource owned by someone else. It is distinct from an authentication
// failure: the actor is known, just not entitled.
var ErrForbidden = errors.New("not authorized to modify this resource")

// CanMutate reports whether the actor may mutate a resource owned by ownerID.
// Only the owner may mutate. Used identically for deleting posts and editing
// profiles.
func CanMutate(actorID, ownerID uint) bool {
	return actorID == ownerID
}
