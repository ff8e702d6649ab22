package absence_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"go-sirh/internal/absence"
	absenceerrors "go-sirh/internal/absence/errors"
	"go-sirh/internal/identity"
	"go-sirh/internal/messaging/kafka"
	"go-sirh/internal/scope"
	"go-sirh/internal/shared/apperror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeAbsenceRepository struct {
	withTxFn              func(tx *sql.Tx) absence.Repository
	createFn              func(ctx context.Context, a *absence.Absence) error
	findAllFn             func(ctx context.Context, access scope.Access, filter absence.AbsenceFilter) ([]absence.Absence, int64, error)
	findByIDFn            func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error)
	updateFn              func(ctx context.Context, a *absence.Absence) error
	getPersonDepartmentFn func(ctx context.Context, personID string) (string, error)
	personVisibleFn       func(ctx context.Context, access scope.Access, personID string) (bool, error)
	countByTypeFn         func(ctx context.Context, access scope.Access, from, to *time.Time) ([]absence.TypeCount, error)
	findCurrentFn         func(ctx context.Context, access scope.Access) ([]absence.Absence, error)
	planningFn            func(ctx context.Context, access scope.Access, from, to time.Time, includePending bool) ([]absence.PlanningDay, error)
}

func (f *fakeAbsenceRepository) WithTx(tx *sql.Tx) absence.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeAbsenceRepository) Create(ctx context.Context, a *absence.Absence) error {
	if f.createFn != nil {
		return f.createFn(ctx, a)
	}
	return nil
}

func (f *fakeAbsenceRepository) FindAll(ctx context.Context, access scope.Access, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, access, filter)
	}
	return nil, 0, nil
}

func (f *fakeAbsenceRepository) FindByID(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, access, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeAbsenceRepository) Update(ctx context.Context, a *absence.Absence) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, a)
	}
	return nil
}

func (f *fakeAbsenceRepository) GetPersonDepartment(ctx context.Context, personID string) (string, error) {
	if f.getPersonDepartmentFn != nil {
		return f.getPersonDepartmentFn(ctx, personID)
	}
	return "", nil
}

func (f *fakeAbsenceRepository) PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error) {
	if f.personVisibleFn != nil {
		return f.personVisibleFn(ctx, access, personID)
	}
	return true, nil
}

func (f *fakeAbsenceRepository) CountByType(ctx context.Context, access scope.Access, from, to *time.Time) ([]absence.TypeCount, error) {
	if f.countByTypeFn != nil {
		return f.countByTypeFn(ctx, access, from, to)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) FindCurrent(ctx context.Context, access scope.Access) ([]absence.Absence, error) {
	if f.findCurrentFn != nil {
		return f.findCurrentFn(ctx, access)
	}
	return nil, nil
}

func (f *fakeAbsenceRepository) Planning(ctx context.Context, access scope.Access, from, to time.Time, includePending bool) ([]absence.PlanningDay, error) {
	if f.planningFn != nil {
		return f.planningFn(ctx, access, from, to, includePending)
	}
	return nil, nil
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

type fakeOutboxRepository struct {
	withTxFn func(tx *sql.Tx) kafka.OutboxRepository
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type absenceServiceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  absence.Service
	repo     *fakeAbsenceRepository
	outbox   *fakeOutboxRepository
	resolver *fakeResolver
}

func setupAbsenceServiceTest(t *testing.T) *absenceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeAbsenceRepository{}
	outbox := &fakeOutboxRepository{}
	resolver := &fakeResolver{}
	svc := absence.NewService(db, repo, outbox, resolver)

	return &absenceServiceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  svc,
		repo:     repo,
		outbox:   outbox,
		resolver: resolver,
	}
}

func adminPrincipal() identity.Principal {
	return identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}
}

func chiefPrincipal() (identity.Principal, uuid.UUID) {
	deptID := uuid.New()
	return identity.Principal{UserID: uuid.New(), Role: identity.RoleChiefTeaching}, deptID
}

func employeePrincipal() (identity.Principal, uuid.UUID) {
	personID := uuid.New()
	return identity.Principal{
		UserID:   uuid.New(),
		Role:     identity.RoleEmployee,
		PersonID: &personID,
	}, personID
}

func employeeAccess(personID uuid.UUID) scope.Access {
	return scope.Access{PersonID: &personID}
}

func departmentAccess(deptID uuid.UUID) scope.Access {
	return scope.Access{DepartmentID: &deptID}
}

func TestAbsenceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success employee requests for self", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}
		deps.repo.createFn = func(ctx context.Context, a *absence.Absence) error {
			assert.Equal(t, personID, a.PersonID)
			assert.Equal(t, absence.StatusPending, a.Status)
			assert.Equal(t, absence.TypeAnnual, a.Type)
			return nil
		}

		resp, err := deps.service.Create(ctx, p, absence.CreateAbsenceRequest{
			Type:      absence.TypeAnnual,
			StartDate: "2026-09-01",
			EndDate:   "2026-09-03",
			Reason:    "family event",
		})

		assert.NoError(t, err)
		assert.Equal(t, personID, resp.PersonID)
		assert.Equal(t, 3, resp.DurationDays)
		assert.Equal(t, absence.StatusPending, resp.Status)
	})

	t.Run("success single day counts as one", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}

		resp, err := deps.service.Create(ctx, p, absence.CreateAbsenceRequest{
			Type:      absence.TypeSick,
			StartDate: "2026-09-01",
			EndDate:   "2026-09-01",
		})

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.DurationDays)
	})

	t.Run("success chief files on behalf of visible person", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, deptID := chiefPrincipal()
		target := uuid.New()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return departmentAccess(deptID), nil
		}
		deps.repo.personVisibleFn = func(ctx context.Context, access scope.Access, personID string) (bool, error) {
			assert.Equal(t, target.String(), personID)
			return true, nil
		}

		resp, err := deps.service.Create(ctx, p, absence.CreateAbsenceRequest{
			PersonID:  &target,
			Type:      absence.TypeTraining,
			StartDate: "2026-10-05",
			EndDate:   "2026-10-09",
		})

		assert.NoError(t, err)
		assert.Equal(t, target, resp.PersonID)
	})

	t.Run("negative person outside chief scope", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, deptID := chiefPrincipal()
		target := uuid.New()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return departmentAccess(deptID), nil
		}
		deps.repo.personVisibleFn = func(ctx context.Context, access scope.Access, personID string) (bool, error) {
			return false, nil
		}

		_, err := deps.service.Create(ctx, p, absence.CreateAbsenceRequest{
			PersonID:  &target,
			Type:      absence.TypeAnnual,
			StartDate: "2026-10-05",
			EndDate:   "2026-10-06",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrPersonNotVisible)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}

		_, err := deps.service.Create(ctx, p, absence.CreateAbsenceRequest{
			Type:      absence.TypeAnnual,
			StartDate: "2026-09-10",
			EndDate:   "2026-09-05",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrInvalidDateRange)
	})

	t.Run("negative admin without person_id", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, adminPrincipal(), absence.CreateAbsenceRequest{
			Type:      absence.TypeAnnual,
			StartDate: "2026-09-01",
			EndDate:   "2026-09-02",
		})

		assert.Error(t, err)
		httpErr := apperror.ToHTTP(err)
		assert.Equal(t, apperror.CodeInvalidInput, httpErr.Code)
	})
}

func TestAbsenceService_Approve(t *testing.T) {
	ctx := context.Background()

	pendingAbsence := func(personID uuid.UUID) *absence.Absence {
		return &absence.Absence{
			ID:        uuid.New(),
			PersonID:  personID,
			Type:      absence.TypeAnnual,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 3, 0, 0, 0, 0, time.UTC),
			Status:    absence.StatusPending,
		}
	}

	t.Run("success admin approves pending", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		p := adminPrincipal()
		target := pendingAbsence(uuid.New())
		outboxCalled := false

		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return target, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.Absence) error {
			assert.Equal(t, absence.StatusApproved, a.Status)
			assert.NotNil(t, a.DecidedBy)
			assert.Equal(t, p.UserID, *a.DecidedBy)
			assert.NotNil(t, a.DecidedAt)
			return nil
		}
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			outboxCalled = true
			assert.Equal(t, "absence.decided", event.EventType)
			assert.Equal(t, target.ID.String(), event.AggregateID)
			assert.Equal(t, kafka.OutboxStatusPending, event.Status)
			return nil
		}

		resp, err := deps.service.Approve(ctx, p, target.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, absence.StatusApproved, resp.Status)
		assert.True(t, outboxCalled)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative already decided", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		target := pendingAbsence(uuid.New())
		target.Status = absence.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return target, nil
		}

		_, err := deps.service.Approve(ctx, adminPrincipal(), target.ID.String())

		assert.ErrorIs(t, err, absenceerrors.ErrNotPending)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative employee cannot approve", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}

		_, err := deps.service.Approve(ctx, p, uuid.New().String())

		assert.ErrorIs(t, err, absenceerrors.ErrNotApprover)
	})

	t.Run("negative chief of another department", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		p, deptID := chiefPrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return departmentAccess(deptID), nil
		}
		target := pendingAbsence(uuid.New())
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return target, nil
		}
		deps.repo.getPersonDepartmentFn = func(ctx context.Context, personID string) (string, error) {
			return uuid.New().String(), nil
		}

		_, err := deps.service.Approve(ctx, p, target.ID.String())

		assert.ErrorIs(t, err, absenceerrors.ErrNotApprover)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative not found in scope", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Approve(ctx, adminPrincipal(), uuid.New().String())

		assert.ErrorIs(t, err, absenceerrors.ErrAbsenceNotFound)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestAbsenceService_Reject(t *testing.T) {
	ctx := context.Background()

	t.Run("success with reason", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()

		target := &absence.Absence{
			ID:        uuid.New(),
			PersonID:  uuid.New(),
			Type:      absence.TypeUnpaid,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			Status:    absence.StatusPending,
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return target, nil
		}
		deps.repo.updateFn = func(ctx context.Context, a *absence.Absence) error {
			assert.Equal(t, absence.StatusRejected, a.Status)
			assert.Equal(t, "staffing shortage", a.DecisionReason)
			return nil
		}

		resp, err := deps.service.Reject(ctx, adminPrincipal(), target.ID.String(), absence.RejectAbsenceRequest{
			Reason: "staffing shortage",
		})

		assert.NoError(t, err)
		assert.Equal(t, absence.StatusRejected, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative blank reason", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, adminPrincipal(), uuid.New().String(), absence.RejectAbsenceRequest{
			Reason: "   ",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrRejectReasonRequired)
	})
}

func TestAbsenceService_Cancel(t *testing.T) {
	ctx := context.Background()

	t.Run("success owner cancels pending", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}
		target := &absence.Absence{
			ID:        uuid.New(),
			PersonID:  personID,
			Status:    absence.StatusPending,
			StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return target, nil
		}

		resp, err := deps.service.Cancel(ctx, p, target.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, absence.StatusCancelled, resp.Status)
	})

	t.Run("success chief cancels within department", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, deptID := chiefPrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return departmentAccess(deptID), nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return &absence.Absence{
				ID:       uuid.New(),
				PersonID: uuid.New(),
				Status:   absence.StatusPending,
			}, nil
		}

		resp, err := deps.service.Cancel(ctx, p, uuid.New().String())

		assert.NoError(t, err)
		assert.Equal(t, absence.StatusCancelled, resp.Status)
	})

	t.Run("negative not the owner", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return &absence.Absence{
				ID:       uuid.New(),
				PersonID: uuid.New(),
				Status:   absence.StatusPending,
			}, nil
		}

		_, err := deps.service.Cancel(ctx, p, uuid.New().String())

		assert.ErrorIs(t, err, absenceerrors.ErrNotOwner)
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		p, personID := employeePrincipal()
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return employeeAccess(personID), nil
		}
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			return &absence.Absence{
				ID:       uuid.New(),
				PersonID: personID,
				Status:   absence.StatusApproved,
			}, nil
		}

		_, err := deps.service.Cancel(ctx, p, uuid.New().String())

		assert.ErrorIs(t, err, absenceerrors.ErrCancelNotPending)
	})
}

func TestAbsenceService_BulkDecide(t *testing.T) {
	ctx := context.Background()

	t.Run("mixed results never abort the batch", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		// First row commits, second rolls back on a decided absence.
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectCommit()
		deps.sqlMock.ExpectBegin()
		deps.sqlMock.ExpectRollback()

		okID := uuid.New()
		decidedID := uuid.New()

		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*absence.Absence, error) {
			status := absence.StatusPending
			if id == decidedID.String() {
				status = absence.StatusRejected
			}
			return &absence.Absence{
				ID:        uuid.MustParse(id),
				PersonID:  uuid.New(),
				Status:    status,
				StartDate: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		resp, err := deps.service.BulkDecide(ctx, adminPrincipal(), absence.BulkDecideRequest{
			AbsenceIDs: []uuid.UUID{okID, decidedID},
			Decision:   absence.StatusApproved,
		})

		assert.NoError(t, err)
		assert.Equal(t, 2, resp.Requested)
		assert.Equal(t, 1, resp.Processed)
		assert.Equal(t, 1, resp.Failed)
		assert.Len(t, resp.Results, 2)

		assert.True(t, resp.Results[0].Success)
		assert.Equal(t, okID, resp.Results[0].AbsenceID)

		assert.False(t, resp.Results[1].Success)
		assert.Equal(t, decidedID, resp.Results[1].AbsenceID)
		assert.Equal(t, apperror.CodeInvalidState, resp.Results[1].ErrorCode)
		assert.NotEmpty(t, resp.Results[1].Error)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative reject without reason", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.BulkDecide(ctx, adminPrincipal(), absence.BulkDecideRequest{
			AbsenceIDs: []uuid.UUID{uuid.New()},
			Decision:   absence.StatusRejected,
		})

		assert.ErrorIs(t, err, absenceerrors.ErrRejectReasonRequired)
	})
}

func TestAbsenceService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success defaults pagination", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, access scope.Access, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 20, filter.Limit)
			return []absence.Absence{{
				ID:        uuid.New(),
				PersonID:  uuid.New(),
				Type:      absence.TypeSick,
				StartDate: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
				EndDate:   time.Date(2026, 8, 14, 0, 0, 0, 0, time.UTC),
				Status:    absence.StatusApproved,
			}}, 1, nil
		}

		resp, total, err := deps.service.GetAll(ctx, adminPrincipal(), absence.AbsenceFilter{})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
		assert.Equal(t, 5, resp[0].DurationDays)
	})

	t.Run("negative repo error", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, access scope.Access, filter absence.AbsenceFilter) ([]absence.Absence, int64, error) {
			return nil, 0, errors.New("db error")
		}

		_, _, err := deps.service.GetAll(ctx, adminPrincipal(), absence.AbsenceFilter{})

		assert.Error(t, err)
	})
}

func TestAbsenceService_Planning(t *testing.T) {
	ctx := context.Background()

	t.Run("negative window reversed", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Planning(ctx, adminPrincipal(), absence.PlanningFilter{
			From: "2026-09-30",
			To:   "2026-09-01",
		})

		assert.ErrorIs(t, err, absenceerrors.ErrInvalidDateRange)
	})

	t.Run("success forwards window and pending flag", func(t *testing.T) {
		deps := setupAbsenceServiceTest(t)
		defer deps.db.Close()

		absentPerson := uuid.New()
		deps.repo.planningFn = func(ctx context.Context, access scope.Access, from, to time.Time, includePending bool) ([]absence.PlanningDay, error) {
			assert.Equal(t, "2026-09-01", from.Format("2006-01-02"))
			assert.Equal(t, "2026-09-07", to.Format("2006-01-02"))
			assert.True(t, includePending)
			return []absence.PlanningDay{{
				Date:        "2026-09-01",
				AbsentCount: 2,
				Absentees: []absence.PlanningAbsentee{
					{PersonID: absentPerson, FirstName: "Awa", LastName: "Diallo", Type: absence.TypeAnnual},
					{PersonID: uuid.New(), FirstName: "Moussa", LastName: "Traoré", Type: absence.TypeSick},
				},
			}}, nil
		}

		rows, err := deps.service.Planning(ctx, adminPrincipal(), absence.PlanningFilter{
			From:           "2026-09-01",
			To:             "2026-09-07",
			IncludePending: true,
		})

		assert.NoError(t, err)
		assert.Len(t, rows, 1)
		assert.Equal(t, int64(2), rows[0].AbsentCount)
		assert.Len(t, rows[0].Absentees, 2)
		assert.Equal(t, absentPerson, rows[0].Absentees[0].PersonID)
		assert.Equal(t, "Diallo", rows[0].Absentees[0].LastName)
	})
}
