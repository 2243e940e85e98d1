package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/realty-service/internal/domain"
	"github.com/spec-kit/realty-service/internal/repository"
)

// ErrPrincipalNotFound means the token verified but the backing account row
// is gone. Tokens are not revoked on account deletion, so this lookup is the
// sole place staleness is caught.
var ErrPrincipalNotFound = errors.New("principal not found")

// PrincipalResolver loads the role record matching verified claims and
// produces a typed Principal. One lookup per request, chosen by subject
// kind; never more.
type PrincipalResolver struct {
	seekers repository.SeekerRepository
	agents  repository.AgentRepository
	admins  repository.AdminRepository
}

// NewPrincipalResolver constructs a resolver.
func NewPrincipalResolver(seekers repository.SeekerRepository, agents repository.AgentRepository, admins repository.AdminRepository) *PrincipalResolver {
	return &PrincipalResolver{seekers: seekers, agents: agents, admins: admins}
}

// Resolve maps verified claims onto a Principal variant.
func (r *PrincipalResolver) Resolve(ctx context.Context, claims *Claims) (*domain.Principal, error) {
	principal := &domain.Principal{Kind: claims.Kind}

	switch claims.Kind {
	case domain.SubjectKindSeeker:
		seeker, err := r.seekers.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		principal.Seeker = seeker
	case domain.SubjectKindAgent:
		agent, err := r.agents.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		principal.Agent = agent
	case domain.SubjectKindAdmin:
		admin, err := r.admins.GetByID(ctx, claims.SubjectID)
		if err != nil {
			return nil, mapLookupErr(err)
		}
		principal.Admin = admin
	default:
		return nil, ErrPrincipalNotFound
	}

	return principal, nil
}

func mapLookupErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPrincipalNotFound
	}
	return err
}
