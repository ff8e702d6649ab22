package recruitment_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-sirh/internal/identity"
	"go-sirh/internal/person"
	"go-sirh/internal/recruitment"
	recruitmenterrors "go-sirh/internal/recruitment/errors"
	"go-sirh/internal/scope"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRecruitmentRepository struct {
	createFn            func(ctx context.Context, r *recruitment.Recruitment) error
	findAllFn           func(ctx context.Context, access scope.Access, filter recruitment.RecruitmentFilter) ([]recruitment.Recruitment, int64, error)
	findByIDFn          func(ctx context.Context, access scope.Access, id string) (*recruitment.Recruitment, error)
	updateFn            func(ctx context.Context, r *recruitment.Recruitment) error
	getDepartmentKindFn func(ctx context.Context, departmentID string) (string, error)
	createCandidateFn   func(ctx context.Context, c *recruitment.Candidate) error
	findCandidatesFn    func(ctx context.Context, access scope.Access, recruitmentID string) ([]recruitment.Candidate, error)
	findCandidateByIDFn func(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error)
	updateCandidateFn   func(ctx context.Context, c *recruitment.Candidate) error
}

func (f *fakeRecruitmentRepository) WithTx(tx *sql.Tx) recruitment.Repository {
	return f
}

func (f *fakeRecruitmentRepository) Create(ctx context.Context, r *recruitment.Recruitment) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakeRecruitmentRepository) FindAll(ctx context.Context, access scope.Access, filter recruitment.RecruitmentFilter) ([]recruitment.Recruitment, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, access, filter)
	}
	return nil, 0, nil
}

func (f *fakeRecruitmentRepository) FindByID(ctx context.Context, access scope.Access, id string) (*recruitment.Recruitment, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, access, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecruitmentRepository) Update(ctx context.Context, r *recruitment.Recruitment) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, r)
	}
	return nil
}

func (f *fakeRecruitmentRepository) GetDepartmentKind(ctx context.Context, departmentID string) (string, error) {
	if f.getDepartmentKindFn != nil {
		return f.getDepartmentKindFn(ctx, departmentID)
	}
	return person.KindTeaching, nil
}

func (f *fakeRecruitmentRepository) CreateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	if f.createCandidateFn != nil {
		return f.createCandidateFn(ctx, c)
	}
	return nil
}

func (f *fakeRecruitmentRepository) FindCandidates(ctx context.Context, access scope.Access, recruitmentID string) ([]recruitment.Candidate, error) {
	if f.findCandidatesFn != nil {
		return f.findCandidatesFn(ctx, access, recruitmentID)
	}
	return nil, nil
}

func (f *fakeRecruitmentRepository) FindCandidateByID(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error) {
	if f.findCandidateByIDFn != nil {
		return f.findCandidateByIDFn(ctx, access, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRecruitmentRepository) UpdateCandidate(ctx context.Context, c *recruitment.Candidate) error {
	if f.updateCandidateFn != nil {
		return f.updateCandidateFn(ctx, c)
	}
	return nil
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

type recruitmentServiceDeps struct {
	service  recruitment.Service
	repo     *fakeRecruitmentRepository
	resolver *fakeResolver
}

func setupRecruitmentServiceTest(t *testing.T) *recruitmentServiceDeps {
	t.Helper()

	repo := &fakeRecruitmentRepository{}
	resolver := &fakeResolver{}
	svc := recruitment.NewService(nil, repo, resolver)

	return &recruitmentServiceDeps{service: svc, repo: repo, resolver: resolver}
}

func TestRecruitmentService_Create(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	validRequest := func(deptID uuid.UUID) recruitment.CreateRecruitmentRequest {
		return recruitment.CreateRecruitmentRequest{
			DepartmentID:   deptID,
			JobTitle:       "Lecturer in Computer Science",
			EmploymentKind: person.KindTeaching,
			Deadline:       "2026-12-31",
		}
	}

	t.Run("success opens the position", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		deps.repo.createFn = func(ctx context.Context, r *recruitment.Recruitment) error {
			assert.Equal(t, recruitment.StatusOpen, r.Status)
			return nil
		}

		resp, err := deps.service.Create(ctx, admin, validRequest(uuid.New()))

		assert.NoError(t, err)
		assert.Equal(t, recruitment.StatusOpen, resp.Status)
	})

	t.Run("success chief is forced into own department", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		ownDept := uuid.New()
		chief := identity.Principal{UserID: uuid.New(), Role: identity.RoleChiefTeaching}
		deps.resolver.resolveForWriteFn = func(ctx context.Context, p identity.Principal) (scope.Access, error) {
			return scope.Access{DepartmentID: &ownDept}, nil
		}
		deps.repo.getDepartmentKindFn = func(ctx context.Context, departmentID string) (string, error) {
			assert.Equal(t, ownDept.String(), departmentID)
			return person.KindTeaching, nil
		}
		deps.repo.createFn = func(ctx context.Context, r *recruitment.Recruitment) error {
			assert.Equal(t, ownDept, r.DepartmentID)
			return nil
		}

		resp, err := deps.service.Create(ctx, chief, validRequest(uuid.New()))

		assert.NoError(t, err)
		assert.Equal(t, ownDept, resp.DepartmentID)
	})

	t.Run("negative kind mismatch", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		deps.repo.getDepartmentKindFn = func(ctx context.Context, departmentID string) (string, error) {
			return person.KindContract, nil
		}

		_, err := deps.service.Create(ctx, admin, validRequest(uuid.New()))

		assert.ErrorIs(t, err, recruitmenterrors.ErrKindMismatch)
	})

	t.Run("negative bad deadline", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		req := validRequest(uuid.New())
		req.Deadline = "31/12/2026"

		_, err := deps.service.Create(ctx, admin, req)

		assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidDeadline)
	})
}

func TestRecruitmentService_AddCandidate(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	openRecruitment := func() *recruitment.Recruitment {
		return &recruitment.Recruitment{
			ID:             uuid.New(),
			DepartmentID:   uuid.New(),
			JobTitle:       "Lab Technician",
			EmploymentKind: person.KindAdminTechnical,
			Deadline:       time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
			Status:         recruitment.StatusOpen,
		}
	}

	t.Run("success enters pipeline as received", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		rec := openRecruitment()
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Recruitment, error) {
			return rec, nil
		}
		deps.repo.createCandidateFn = func(ctx context.Context, c *recruitment.Candidate) error {
			assert.Equal(t, recruitment.CandidateReceived, c.Status)
			assert.Equal(t, rec.ID, c.RecruitmentID)
			return nil
		}

		resp, err := deps.service.AddCandidate(ctx, admin, rec.ID.String(), recruitment.CreateCandidateRequest{
			FirstName: "Yacine",
			LastName:  "Brahimi",
			Email:     "yacine.brahimi@example.com",
		})

		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateReceived, resp.Status)
	})

	t.Run("negative recruitment closed", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		rec := openRecruitment()
		rec.Status = recruitment.StatusClosed
		deps.repo.findByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Recruitment, error) {
			return rec, nil
		}

		_, err := deps.service.AddCandidate(ctx, admin, rec.ID.String(), recruitment.CreateCandidateRequest{
			FirstName: "Yacine",
			LastName:  "Brahimi",
			Email:     "yacine.brahimi@example.com",
		})

		assert.ErrorIs(t, err, recruitmenterrors.ErrRecruitmentNotOpen)
	})

	t.Run("negative out of scope recruitment reads as missing", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		_, err := deps.service.AddCandidate(ctx, admin, uuid.New().String(), recruitment.CreateCandidateRequest{
			FirstName: "Yacine",
			LastName:  "Brahimi",
			Email:     "yacine.brahimi@example.com",
		})

		assert.ErrorIs(t, err, recruitmenterrors.ErrRecruitmentNotFound)
	})
}

func TestRecruitmentService_MoveCandidate(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	candidateAt := func(status string) *recruitment.Candidate {
		return &recruitment.Candidate{
			ID:            uuid.New(),
			RecruitmentID: uuid.New(),
			FirstName:     "Sara",
			LastName:      "Khelifi",
			Email:         "sara.khelifi@example.com",
			Status:        status,
		}
	}

	t.Run("success received to under_review", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		target := candidateAt(recruitment.CandidateReceived)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error) {
			return target, nil
		}

		resp, err := deps.service.MoveCandidate(ctx, admin, target.ID.String(), recruitment.MoveCandidateRequest{
			Status: recruitment.CandidateUnderReview,
		})

		assert.NoError(t, err)
		assert.Equal(t, recruitment.CandidateUnderReview, resp.Status)
	})

	t.Run("success rejection from any live stage", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		for _, from := range []string{
			recruitment.CandidateReceived,
			recruitment.CandidateUnderReview,
			recruitment.CandidateQualified,
			recruitment.CandidateInterview,
		} {
			target := candidateAt(from)
			deps.repo.findCandidateByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error) {
				return target, nil
			}

			resp, err := deps.service.MoveCandidate(ctx, admin, target.ID.String(), recruitment.MoveCandidateRequest{
				Status: recruitment.CandidateRejected,
			})

			assert.NoError(t, err, from)
			assert.Equal(t, recruitment.CandidateRejected, resp.Status)
		}
	})

	t.Run("negative skipping a stage", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		target := candidateAt(recruitment.CandidateReceived)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error) {
			return target, nil
		}

		_, err := deps.service.MoveCandidate(ctx, admin, target.ID.String(), recruitment.MoveCandidateRequest{
			Status: recruitment.CandidateInterview,
		})

		assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidPipelineMove)
	})

	t.Run("negative accepted is terminal", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		target := candidateAt(recruitment.CandidateAccepted)
		deps.repo.findCandidateByIDFn = func(ctx context.Context, access scope.Access, id string) (*recruitment.Candidate, error) {
			return target, nil
		}

		_, err := deps.service.MoveCandidate(ctx, admin, target.ID.String(), recruitment.MoveCandidateRequest{
			Status: recruitment.CandidateRejected,
		})

		assert.ErrorIs(t, err, recruitmenterrors.ErrInvalidPipelineMove)
	})
}

func TestRecruitmentService_ListCandidates(t *testing.T) {
	ctx := context.Background()
	admin := identity.Principal{UserID: uuid.New(), Role: identity.RoleOrgAdmin}

	t.Run("negative out of scope recruitment", func(t *testing.T) {
		deps := setupRecruitmentServiceTest(t)

		deps.repo.findCandidatesFn = func(ctx context.Context, access scope.Access, recruitmentID string) ([]recruitment.Candidate, error) {
			t.Fatal("candidates must not be listed for an invisible recruitment")
			return nil, nil
		}

		_, err := deps.service.ListCandidates(ctx, admin, uuid.New().String())

		assert.ErrorIs(t, err, recruitmenterrors.ErrRecruitmentNotFound)
	})
}
