package service

import (
	"errors"
	"fmt"

	"teamflow-backend/internal/database/models"
	apperrors "teamflow-backend/internal/errors"
	"teamflow-backend/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Authorizer decides whether an actor may perform an action on an
// organization's resources. It is a pure decision function over current
// membership state: every call re-reads the membership row, since roles can
// change between requests.
type Authorizer struct {
	memberships repository.MembershipRepositoryInterface
}

// NewAuthorizer creates a new authorizer
func NewAuthorizer(memberships repository.MembershipRepositoryInterface) *Authorizer {
	return &Authorizer{memberships: memberships}
}

// Authorize checks that the actor holds at least the required role in the
// organization. Absent membership yields ErrNotAMember; an insufficient role
// yields ErrAdminRequired.
func (a *Authorizer) Authorize(actorID, organizationID uuid.UUID, required models.Role) error {
	membership, err := a.memberships.GetByUserAndOrg(actorID, organizationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotAMember
		}
		return fmt.Errorf("failed to look up membership: %w", err)
	}

	if !membership.Role.Satisfies(required) {
		return apperrors.ErrAdminRequired
	}

	return nil
}
