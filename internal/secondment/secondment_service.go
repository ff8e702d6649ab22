package secondment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-sirh/internal/identity"
	"go-sirh/internal/scope"
	secondmenterrors "go-sirh/internal/secondment/errors"
)

//go:generate mockgen -source=secondment_service.go -destination=mock/secondment_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreateSecondmentRequest) (SecondmentResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter SecondmentFilter) ([]SecondmentResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error)
	Complete(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error)
	Cancel(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("secondment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("secondment.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateSecondmentRequest) (SecondmentResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return SecondmentResponse{}, err
	}
	if access.PersonID != nil {
		return SecondmentResponse{}, secondmenterrors.ErrSecondmentForbidden
	}

	if req.OriginStructureID == req.DestinationStructureID {
		return SecondmentResponse{}, secondmenterrors.ErrSameStructure
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return SecondmentResponse{}, secondmenterrors.ErrInvalidDate
	}
	var end *time.Time
	if req.EndDate != nil {
		t, err := time.Parse("2006-01-02", *req.EndDate)
		if err != nil {
			return SecondmentResponse{}, secondmenterrors.ErrInvalidDate
		}
		if t.Before(start) {
			return SecondmentResponse{}, secondmenterrors.ErrInvalidDateRange
		}
		end = &t
	}

	visible, err := s.repo.PersonVisible(ctx, access, req.PersonID.String())
	if err != nil {
		return SecondmentResponse{}, err
	}
	if !visible {
		return SecondmentResponse{}, secondmenterrors.ErrPersonNotVisible
	}

	ok, err := s.repo.StructuresExist(ctx, []string{
		req.OriginStructureID.String(),
		req.DestinationStructureID.String(),
	})
	if err != nil {
		return SecondmentResponse{}, err
	}
	if !ok {
		return SecondmentResponse{}, secondmenterrors.ErrStructureNotFound
	}

	entity := &Secondment{
		ID:                     uuid.New(),
		PersonID:               req.PersonID,
		OriginStructureID:      req.OriginStructureID,
		DestinationStructureID: req.DestinationStructureID,
		StartDate:              start,
		EndDate:                end,
		Reason:                 req.Reason,
		Status:                 StatusInProgress,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.logger.Error("create secondment persist failed", zap.Error(err))
		return SecondmentResponse{}, err
	}

	s.logger.Info("create secondment success",
		zap.String("secondment_id", entity.ID.String()),
		zap.String("person_id", req.PersonID.String()),
	)
	return toResponse(entity), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter SecondmentFilter) ([]SecondmentResponse, int64, error) {
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

	secondments, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponseList(secondments), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SecondmentResponse{}, secondmenterrors.ErrSecondmentNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return SecondmentResponse{}, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SecondmentResponse{}, secondmenterrors.ErrSecondmentNotFound
		}
		return SecondmentResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *service) Complete(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error) {
	return s.close(ctx, p, id, StatusCompleted)
}

func (s *service) Cancel(ctx context.Context, p identity.Principal, id string) (SecondmentResponse, error) {
	return s.close(ctx, p, id, StatusCancelled)
}

func (s *service) close(ctx context.Context, p identity.Principal, id string, status string) (SecondmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SecondmentResponse{}, secondmenterrors.ErrSecondmentNotFound
	}

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return SecondmentResponse{}, err
	}
	if access.PersonID != nil {
		return SecondmentResponse{}, secondmenterrors.ErrSecondmentForbidden
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SecondmentResponse{}, secondmenterrors.ErrSecondmentNotFound
		}
		return SecondmentResponse{}, err
	}
	if entity.Status != StatusInProgress {
		return SecondmentResponse{}, secondmenterrors.ErrAlreadyClosed
	}

	entity.Status = status
	if err := s.repo.Update(ctx, entity); err != nil {
		return SecondmentResponse{}, err
	}

	s.logger.Info("close secondment success",
		zap.String("secondment_id", id),
		zap.String("status", status),
	)
	return toResponse(entity), nil
}
