package secondment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-sirh/internal/identity"
	"go-sirh/internal/scope"
	"go-sirh/internal/secondment"
	secondmenterrors "go-sirh/internal/secondment/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeSecondmentRepository struct {
	createFn          func(ctx context.Context, s *secondment.Secondment) error
	findAllFn         func(ctx context.Context, access scope.Access, filter secondment.SecondmentFilter) ([]secondment.Secondment, int64, error)
	findByIDFn        func(ctx context.Context, access scope.Access, id string) (*secondment.Secondment, error)
	updateFn          func(ctx context.Context, s *secondment.Secondment) error
	personVisibleFn   func(ctx context.Context, access scope.Access, personID string) (bool, error)
	structuresExistFn func(ctx context.Context, ids []string) (bool, error)
}

func (f *fakeSecondmentRepository) WithTx(tx *sql.Tx) secondment.Repository {
	return f
}

func (f *fakeSecondmentRepository) Create(ctx context.Context, s *secondment.Secondment) error {
	if f.createFn != nil {
		return f.createFn(ctx, s)
	}
	return nil
}

func (f *fakeSecondmentRepository) FindAll(ctx context.Context, access scope.Access, filter secondment.SecondmentFilter) ([]secondment.Secondment, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, access, filter)
	}
	return nil, 0, nil
}

func (f *fakeSecondmentRepository) FindByID(ctx context.Context, access scope.Access, id string) (*secondment.Secondment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, access, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeSecondmentRepository) Update(ctx context.Context, s *secondment.Secondment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, s)
	}
	return nil
}

func (f *fakeSecondmentRepository) PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error) {
	if f.personVisibleFn != nil {
		return f.personVisibleFn(ctx, access, personID)
	}
	return true, nil
}

func (f *fakeSecondmentRepository) StructuresExist(ctx context.Context, ids []string) (bool, error) {
	if f.structuresExistFn != nil {
		return f.structuresExistFn(ctx, ids)
	}
	return true, nil
}

type fakeResolver struct {
	resolveFn         func(ctx context.Context, p identity.Principal) (scope.Access, error)
	resolveForWriteFn func(ctx context.Context, p identity.Principal) (scope.Access, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, p identity.Principal) (scope.Access, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, p)
	}
	return scope.Access{All: true}, nil
}

func (f *fakeResolver) ResolveForWrite(ctx context.Context, p identity.Principal) (scope.Access, error) {
	if f.resolveForWriteFn != nil {
		return f.resolveForWriteFn(ctx, p)
	}
	return scope.Access{All: true}, nil
}

type secondmentServiceDeps struct {
	service  secondment.Service
	repo     *fakeSecondmentRepository
	resolver *fakeResolver
}

func setupSecondmentServiceTest(t *testing.T) *secondmentServiceDeps {
	t.Helper()

	repo := &fakeSecondmentRepository{}
	resolver := &fakeResolver{}
	svc := secondment.NewService(nil, repo, resolver)

	return &secondmentServiceDeps{service: svc, repo: repo, resolver: resolver}
}

func validRequest() secondment.CreateSecondmentRequest {
	return secondment.CreateSecondmentRequest{
		PersonID:               uuid.New(),
		OriginStructureID:      uuid.New(),
		DestinationStructureID: uuid.New(),
		StartDate:              "2026-09-01",
	}
}

func TestSecondmentService_Create(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	t.Run("success open ended", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		req := validRequest()
		deps.repo.createFn = func(ctx context.Context, s *secondment.Secondment) error {
			assert.Equal(t, secondment.StatusInProgress, s.Status)
			assert.Nil(t, s.EndDate)
			return nil
		}

		resp, err := deps.service.Create(ctx, admin, req)

		assert.NoError(t, err)
		assert.Equal(t, secondment.StatusInProgress, resp.Status)
	})

	t.Run("success bounded period", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		end := "2027-02-28"
		req := validRequest()
		req.EndDate = &end
		deps.repo.createFn = func(ctx context.Context, s *secondment.Secondment) error {
			assert.NotNil(t, s.EndDate)
			assert.Equal(t, "2027-02-28", s.EndDate.Format("2006-01-02"))
			return nil
		}

		_, err := deps.service.Create(ctx, admin, req)

		assert.NoError(t, err)
	})

	t.Run("negative same origin and destination", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		req := validRequest()
		req.DestinationStructureID = req.OriginStructureID

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, secondmenterrors.ErrSameStructure)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		end := "2026-08-01"
		req := validRequest()
		req.EndDate = &end

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, secondmenterrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown structure", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		deps.repo.structuresExistFn = func(ctx context.Context, ids []string) (bool, error) {
			assert.Len(t, ids, 2)
			return false, nil
		}

		_, err := deps.service.Create(ctx, admin, validRequest())

		assert.ErrorIs(t, err, secondmenterrors.ErrStructureNotFound)
	})

	t.Run("negative person not visible to chief", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		deptID := uuid.New()
		chief := identity.Principal{UserID: uuid.New(), Role: identity.RoleChiefTeaching}
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return scope.Access{DepartmentID: &deptID}, nil
		}
		deps.repo.personVisibleFn = func(ctx context.Context, access scope.Access, personID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, chief, validRequest())

		assert.ErrorIs(t, err, secondmenterrors.ErrPersonNotVisible)
	})
}

func TestSecondmentService_Close(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	inProgress := func() *secondment.Secondment {
		return &secondment.Secondment{
			ID:                     uuid.New(),
			PersonID:               uuid.New(),
			OriginStructureID:      uuid.New(),
			DestinationStructureID: uuid.New(),
			StartDate:              time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			Status:                 secondment.StatusInProgress,
		}
	}

	t.Run("success complete", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		target := inProgress()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*secondment.Secondment, error) {
			return target, nil
		}

		resp, err := deps.service.Complete(ctx, admin, target.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, secondment.StatusCompleted, resp.Status)
	})

	t.Run("success cancel", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		target := inProgress()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*secondment.Secondment, error) {
			return target, nil
		}

		resp, err := deps.service.Cancel(ctx, admin, target.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, secondment.StatusCancelled, resp.Status)
	})

	t.Run("negative already completed", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		target := inProgress()
		target.Status = secondment.StatusCompleted
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*secondment.Secondment, error) {
			return target, nil
		}

		_, err := deps.service.Cancel(ctx, admin, target.ID.String())

		assert.ErrorIs(t, err, secondmenterrors.ErrAlreadyClosed)
	})

	t.Run("negative employee cannot close", func(t *testing.T) {
		deps := setupSecondmentServiceTest(t)

		ownID := uuid.New()
		emp := identity.Principal{UserID: uuid.New(), Role: identity.RoleEmployee, PersonID: &ownID}
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return scope.Access{PersonID: &ownID}, nil
		}

		_, err := deps.service.Complete(ctx, emp, uuid.New().String())

		assert.ErrorIs(t, err, secondmenterrors.ErrSecondmentForbidden)
	})
}
