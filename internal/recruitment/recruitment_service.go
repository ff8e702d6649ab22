package recruitment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-sirh/internal/identity"
	recruitmenterrors "go-sirh/internal/recruitment/errors"
	"go-sirh/internal/scope"
)

//go:generate mockgen -source=recruitment_service.go -destination=mock/recruitment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreateRecruitmentRequest) (RecruitmentResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter RecruitmentFilter) ([]RecruitmentResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (RecruitmentResponse, error)
	UpdateStatus(ctx context.Context, p identity.Principal, id string, req UpdateRecruitmentStatusRequest) (RecruitmentResponse, error)

	AddCandidate(ctx context.Context, p identity.Principal, recruitmentID string, req CreateCandidateRequest) (CandidateResponse, error)
	ListCandidates(ctx context.Context, p identity.Principal, recruitmentID string) ([]CandidateResponse, error)
	MoveCandidate(ctx context.Context, p identity.Principal, candidateID string, req MoveCandidateRequest) (CandidateResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("recruitment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("recruitment.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateRecruitmentRequest) (RecruitmentResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return RecruitmentResponse{}, err
	}
	if access.PersonID != nil {
		return RecruitmentResponse{}, recruitmenterrors.ErrRecruitmentForbidden
	}

	departmentID := req.DepartmentID
	if access.DepartmentID != nil {
		departmentID = *access.DepartmentID
	}

	deadline, err := time.Parse("2006-01-02", req.Deadline)
	if err != nil {
		return RecruitmentResponse{}, recruitmenterrors.ErrInvalidDeadline
	}

	kind, err := s.repo.GetDepartmentKind(ctx, departmentID.String())
	if err != nil {
		return RecruitmentResponse{}, err
	}
	if kind == "" {
		return RecruitmentResponse{}, recruitmenterrors.ErrDepartmentNotFound
	}
	if kind != req.EmploymentKind {
		return RecruitmentResponse{}, recruitmenterrors.ErrKindMismatch
	}

	entity := &Recruitment{
		ID:             uuid.New(),
		DepartmentID:   departmentID,
		StructureID:    req.StructureID,
		JobTitle:       req.JobTitle,
		EmploymentKind: req.EmploymentKind,
		Description:    req.Description,
		Deadline:       deadline,
		Status:         StatusOpen,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.logger.Error("create recruitment persist failed", zap.Error(err))
		return RecruitmentResponse{}, err
	}

	s.logger.Info("create recruitment success",
		zap.String("recruitment_id", entity.ID.String()),
		zap.String("job_title", req.JobTitle),
	)
	return toRecruitmentResponse(entity), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter RecruitmentFilter) ([]RecruitmentResponse, int64, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}

	recruitments, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return toRecruitmentResponseList(recruitments), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (RecruitmentResponse, error) {
	entity, err := s.findRecruitment(ctx, p, id)
	if err != nil {
		return RecruitmentResponse{}, err
	}
	return toRecruitmentResponse(entity), nil
}

func (s *service) UpdateStatus(ctx context.Context, p identity.Principal, id string, req UpdateRecruitmentStatusRequest) (RecruitmentResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return RecruitmentResponse{}, err
	}
	if access.PersonID != nil {
		return RecruitmentResponse{}, recruitmenterrors.ErrRecruitmentForbidden
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RecruitmentResponse{}, recruitmenterrors.ErrRecruitmentNotFound
		}
		return RecruitmentResponse{}, err
	}

	entity.Status = req.Status
	if err := s.repo.Update(ctx, entity); err != nil {
		return RecruitmentResponse{}, err
	}

	s.logger.Info("update recruitment status success",
		zap.String("recruitment_id", id),
		zap.String("status", req.Status),
	)
	return toRecruitmentResponse(entity), nil
}

func (s *service) AddCandidate(ctx context.Context, p identity.Principal, recruitmentID string, req CreateCandidateRequest) (CandidateResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return CandidateResponse{}, err
	}
	if access.PersonID != nil {
		return CandidateResponse{}, recruitmenterrors.ErrRecruitmentForbidden
	}

	rec, err := s.repo.FindByID(ctx, access, recruitmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrRecruitmentNotFound
		}
		return CandidateResponse{}, err
	}
	if rec.Status != StatusOpen {
		return CandidateResponse{}, recruitmenterrors.ErrRecruitmentNotOpen
	}

	entity := &Candidate{
		ID:            uuid.New(),
		RecruitmentID: rec.ID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Notes:         req.Notes,
		Status:        CandidateReceived,
	}

	if err := s.repo.CreateCandidate(ctx, entity); err != nil {
		s.logger.Error("create candidate persist failed", zap.Error(err))
		return CandidateResponse{}, err
	}

	s.logger.Info("create candidate success",
		zap.String("candidate_id", entity.ID.String()),
		zap.String("recruitment_id", recruitmentID),
	)
	return toCandidateResponse(entity), nil
}

func (s *service) ListCandidates(ctx context.Context, p identity.Principal, recruitmentID string) ([]CandidateResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	// Resolve the recruitment first so an out-of-scope id reads as
	// missing, not as an empty candidate list.
	if _, err := s.repo.FindByID(ctx, access, recruitmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recruitmenterrors.ErrRecruitmentNotFound
		}
		return nil, err
	}

	candidates, err := s.repo.FindCandidates(ctx, access, recruitmentID)
	if err != nil {
		return nil, err
	}
	return toCandidateResponseList(candidates), nil
}

func (s *service) MoveCandidate(ctx context.Context, p identity.Principal, candidateID string, req MoveCandidateRequest) (CandidateResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return CandidateResponse{}, err
	}
	if access.PersonID != nil {
		return CandidateResponse{}, recruitmenterrors.ErrRecruitmentForbidden
	}

	entity, err := s.repo.FindCandidateByID(ctx, access, candidateID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CandidateResponse{}, recruitmenterrors.ErrCandidateNotFound
		}
		return CandidateResponse{}, err
	}

	if !candidateTransitionAllowed(entity.Status, req.Status) {
		s.logger.Warn("candidate pipeline move refused",
			zap.String("candidate_id", candidateID),
			zap.String("from", entity.Status),
			zap.String("to", req.Status),
		)
		return CandidateResponse{}, recruitmenterrors.ErrInvalidPipelineMove
	}

	entity.Status = req.Status
	if err := s.repo.UpdateCandidate(ctx, entity); err != nil {
		return CandidateResponse{}, err
	}

	s.logger.Info("candidate pipeline move success",
		zap.String("candidate_id", candidateID),
		zap.String("status", req.Status),
	)
	return toCandidateResponse(entity), nil
}

func (s *service) findRecruitment(ctx context.Context, p identity.Principal, id string) (*Recruitment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, recruitmenterrors.ErrRecruitmentNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, recruitmenterrors.ErrRecruitmentNotFound
		}
		return nil, err
	}
	return entity, nil
}
