package scope

import (
	"context"
	"net/http"

	"go-sirh/internal/identity"
	"go-sirh/internal/shared/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrChiefWithoutDepartment signals a chief account with no led department.
// Reads never return it: a misconfigured chief just sees an empty set.
// Writes fail hard with it so orphaned records cannot be created.
var ErrChiefWithoutDepartment = apperror.New(
	apperror.CodeConfiguration,
	"chief account has no department assigned",
	http.StatusInternalServerError,
)

//go:generate mockgen -source=resolver.go -destination=mock/resolver_mock.go -package=mock
type Resolver interface {
	// Resolve computes the read scope. Misconfiguration degrades to empty.
	Resolve(ctx context.Context, p identity.Principal) (Access, error)
	// ResolveForWrite computes the write scope and fails on misconfiguration.
	ResolveForWrite(ctx context.Context, p identity.Principal) (Access, error)
}

type resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) Resolver {
	return &resolver{db: db}
}

func (r *resolver) Resolve(ctx context.Context, p identity.Principal) (Access, error) {
	access, _, err := r.resolve(ctx, p)
	return access, err
}

func (r *resolver) ResolveForWrite(ctx context.Context, p identity.Principal) (Access, error) {
	access, misconfigured, err := r.resolve(ctx, p)
	if err != nil {
		return Access{}, err
	}
	if misconfigured {
		return Access{}, ErrChiefWithoutDepartment
	}
	return access, nil
}

func (r *resolver) resolve(ctx context.Context, p identity.Principal) (Access, bool, error) {
	if !p.Authenticated() {
		return Access{}, false, nil
	}

	switch {
	case p.Role == identity.RoleOrgAdmin:
		return Access{All: true}, false, nil

	case p.Role.IsChief():
		kind, _ := p.Role.LedKind()
		var ids []uuid.UUID
		err := r.db.WithContext(ctx).
			Table("departments").
			Where("chief_id = ?", p.UserID).
			Where("kind = ?", string(kind)).
			Limit(1).
			Pluck("id", &ids).Error
		if err != nil {
			return Access{}, false, err
		}
		if len(ids) == 0 {
			return Access{}, true, nil
		}
		return Access{DepartmentID: &ids[0]}, false, nil

	default:
		if p.PersonID == nil {
			return Access{}, false, nil
		}
		return Access{PersonID: p.PersonID}, false, nil
	}
}
