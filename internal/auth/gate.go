package auth

import (
	"github.com/spec-kit/esim-activation-service/internal/domain"
	apperrors "github.com/spec-kit/esim-activation-service/pkg/util"
)

// Operation enumerates the mutations and queries the gate rules on.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpList   Operation = "list"
	OpGet    Operation = "get"
)

// Decide is the access-control gate: a pure decision over the requested
// operation, the caller's identity, and (for create) whether a provisioning
// code is being set. It returns the identity to stamp on the record, or an
// UNAUTHORIZED error. Token validity itself is the verifier's concern; the
// gate only consumes its outcome.
func Decide(op Operation, identity domain.Identity, hasCode bool) (domain.Identity, error) {
	switch op {
	case OpList, OpUpdate, OpDelete:
		if identity.Anonymous() {
			return domain.Identity{}, apperrors.NewUnauthorized("authentication required")
		}
		return identity, nil
	case OpCreate:
		if identity.Anonymous() && hasCode {
			return domain.Identity{}, apperrors.NewUnauthorized("authentication required to set provisioning code")
		}
		return identity, nil
	case OpGet:
		// Public single-record reads are always allowed; the projection
		// layer decides what they see.
		return identity, nil
	}
	return domain.Identity{}, apperrors.NewUnauthorized("unknown operation")
}
