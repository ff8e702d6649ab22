package department_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"go-sirh/internal/department"
	departmenterrors "go-sirh/internal/department/errors"
	"go-sirh/internal/identity"
	"go-sirh/internal/scope"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeDepartmentRepository struct {
	withTxFn     func(tx *sql.Tx) department.Repository
	createFn     func(ctx context.Context, d *department.Department) error
	findAllFn    func(ctx context.Context, access scope.Access) ([]department.Department, error)
	findByIDFn   func(ctx context.Context, access scope.Access, id string) (*department.Department, error)
	updateFn     func(ctx context.Context, d *department.Department) error
	deleteFn     func(ctx context.Context, id string) error
	getUserRole  func(ctx context.Context, userID string) (string, error)
	chiefLeadsFn func(ctx context.Context, chiefID string, excludeDeptID string) (bool, error)
}

func (f *fakeDepartmentRepository) WithTx(tx *sql.Tx) department.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeDepartmentRepository) Create(ctx context.Context, d *department.Department) error {
	if f.createFn != nil {
		return f.createFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) FindAll(ctx context.Context, access scope.Access) ([]department.Department, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, access)
	}
	return nil, nil
}

func (f *fakeDepartmentRepository) FindByID(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, access, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeDepartmentRepository) Update(ctx context.Context, d *department.Department) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, d)
	}
	return nil
}

func (f *fakeDepartmentRepository) Delete(ctx context.Context, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, id)
	}
	return nil
}

func (f *fakeDepartmentRepository) GetUserRole(ctx context.Context, userID string) (string, error) {
	if f.getUserRole != nil {
		return f.getUserRole(ctx, userID)
	}
	return "", nil
}

func (f *fakeDepartmentRepository) ChiefLeads(ctx context.Context, chiefID string, excludeDeptID string) (bool, error) {
	if f.chiefLeadsFn != nil {
		return f.chiefLeadsFn(ctx, chiefID, excludeDeptID)
	}
	return false, nil
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

type departmentServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  department.Service
	repo     *fakeDepartmentRepository
	resolver *fakeResolver
}

func setupDepartmentServiceTest(t *testing.T) *departmentServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeDepartmentRepository{}
	resolver := &fakeResolver{}
	svc := department.NewService(db, repo, resolver)

	return &departmentServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		resolver: resolver,
	}
}

func TestDepartmentService_AssignChief(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	teachingDept := func() *department.Department {
		return &department.Department{
			ID:   uuid.New(),
			Name: "Mathematics",
			Kind: department.KindTeaching,
		}
	}

	t.Run("success", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		target := teachingDept()
		chiefID := uuid.New()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return target, nil
		}
		deps.repo.getUserRole = func(ctx context.Context, userID string) (string, error) {
			return string(identity.RoleChiefTeaching), nil
		}
		deps.repo.updateFn = func(ctx context.Context, d *department.Department) error {
			assert.NotNil(t, d.ChiefID)
			assert.Equal(t, chiefID, *d.ChiefID)
			return nil
		}

		resp, err := deps.service.AssignChief(ctx, admin, target.ID.String(), department.AssignChiefRequest{
			ChiefID: chiefID.String(),
		})

		assert.NoError(t, err)
		assert.NotNil(t, resp.ChiefID)
		assert.Equal(t, chiefID.String(), *resp.ChiefID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative role does not match department kind", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		target := teachingDept()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return target, nil
		}
		deps.repo.getUserRole = func(ctx context.Context, userID string) (string, error) {
			return string(identity.RoleChiefContract), nil
		}

		_, err := deps.service.AssignChief(ctx, admin, target.ID.String(), department.AssignChiefRequest{
			ChiefID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, departmenterrors.ErrChiefRoleMismatch)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative chief already leads another department", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		target := teachingDept()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return target, nil
		}
		deps.repo.getUserRole = func(ctx context.Context, userID string) (string, error) {
			return string(identity.RoleChiefTeaching), nil
		}
		deps.repo.chiefLeadsFn = func(ctx context.Context, chiefID string, excludeDeptID string) (bool, error) {
			return true, nil
		}

		_, err := deps.service.AssignChief(ctx, admin, target.ID.String(), department.AssignChiefRequest{
			ChiefID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, departmenterrors.ErrChiefAlreadyLeads)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative unknown chief", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		target := teachingDept()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return target, nil
		}
		deps.repo.getUserRole = func(ctx context.Context, userID string) (string, error) {
			return "", nil
		}

		_, err := deps.service.AssignChief(ctx, admin, target.ID.String(), department.AssignChiefRequest{
			ChiefID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, departmenterrors.ErrChiefNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestDepartmentService_Update(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	t.Run("success kind change unassigns mismatched chief", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		chiefID := uuid.New()
		target := &department.Department{
			ID:      uuid.New(),
			Name:    "Maintenance",
			Kind:    department.KindAdminTechnical,
			ChiefID: &chiefID,
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return target, nil
		}
		deps.repo.getUserRole = func(ctx context.Context, userID string) (string, error) {
			return string(identity.RoleChiefAdminTechnical), nil
		}
		deps.repo.updateFn = func(ctx context.Context, d *department.Department) error {
			assert.Nil(t, d.ChiefID)
			return nil
		}

		resp, err := deps.service.Update(ctx, admin, target.ID.String(), department.UpdateDepartmentRequest{
			Name: "Maintenance",
			Kind: department.KindContract,
		})

		assert.NoError(t, err)
		assert.Nil(t, resp.ChiefID)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return nil, errors.New("db error")
		}

		_, err := deps.service.Update(ctx, admin, uuid.New().String(), department.UpdateDepartmentRequest{
			Name: "X",
			Kind: department.KindTeaching,
		})

		assert.Error(t, err)
	})
}

func TestDepartmentService_GetByID(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	t.Run("negative invalid id", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.GetByID(ctx, admin, "not-a-uuid")

		assert.ErrorIs(t, err, departmenterrors.ErrInvalidDepartmentID)
	})

	t.Run("negative out of scope reads as missing", func(t *testing.T) {
		deps := setupDepartmentServiceTest(t)
		defer deps.db.Close()

		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*department.Department, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.GetByID(ctx, admin, uuid.New().String())

		assert.ErrorIs(t, err, departmenterrors.ErrDepartmentNotFound)
	})
}
