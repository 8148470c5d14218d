package employee

import (
	"context"
	"database/sql"

	"go-hrms/internal/domain"

	"github.com/google/uuid"
)

type NewIdentity struct {
	Email      string
	Password   string
	Name       string
	Department string
	Role       domain.Role
}

// IdentityProvisioner creates or finds login identities for new employees.
// auth.Service implements it; the interface lives here so employee does
// not import auth.
type IdentityProvisioner interface {
	ProvisionIdentity(ctx context.Context, tx *sql.Tx, in NewIdentity) (uuid.UUID, error)
	FindIdentityIDByEmail(ctx context.Context, email string) (uuid.UUID, bool, error)
}
