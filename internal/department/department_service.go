package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "go-sirh/internal/department/errors"
	"go-sirh/internal/identity"
	"go-sirh/internal/scope"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	KindTeaching       = "TEACHING"
	KindAdminTechnical = "ADMIN_TECHNICAL"
	KindContract       = "CONTRACT"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, p identity.Principal) ([]DepartmentResponse, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (DepartmentResponse, error)
	Update(ctx context.Context, p identity.Principal, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	AssignChief(ctx context.Context, p identity.Principal, id string, req AssignChiefRequest) (DepartmentResponse, error)
	Delete(ctx context.Context, p identity.Principal, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateDepartmentRequest) (DepartmentResponse, error) {
	s.logger.Debug("create department requested",
		zap.String("name", req.Name),
		zap.String("kind", req.Kind),
	)

	d := &Department{
		ID:          uuid.New(),
		Name:        req.Name,
		Kind:        req.Kind,
		Description: req.Description,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success", zap.String("department_id", d.ID.String()))
	return mapToResponse(*d), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal) ([]DepartmentResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	depts, err := s.repo.FindAll(ctx, access)
	if err != nil {
		return nil, err
	}

	resp := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		resp[i] = mapToResponse(d)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (DepartmentResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return DepartmentResponse{}, departmenterrors.ErrInvalidDepartmentID
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}
	return mapToResponse(*d), nil
}

func (s *service) Update(ctx context.Context, p identity.Principal, id string, req UpdateDepartmentRequest) (DepartmentResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	d.Name = req.Name
	d.Kind = req.Kind
	d.Description = req.Description

	// Changing kind away from the chief's role unassigns the chief;
	// otherwise the chief-kind agreement would silently break.
	if d.ChiefID != nil {
		role, err := s.repo.GetUserRole(ctx, d.ChiefID.String())
		if err != nil {
			return DepartmentResponse{}, err
		}
		if !chiefRoleMatchesKind(role, d.Kind) {
			d.ChiefID = nil
		}
	}

	if err := s.repo.Update(ctx, d); err != nil {
		s.logger.Error("update department persist failed",
			zap.String("department_id", id),
			zap.Error(err),
		)
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success", zap.String("department_id", id))
	return mapToResponse(*d), nil
}

func (s *service) AssignChief(ctx context.Context, p identity.Principal, id string, req AssignChiefRequest) (DepartmentResponse, error) {
	s.logger.Debug("assign chief requested",
		zap.String("department_id", id),
		zap.String("chief_id", req.ChiefID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("assign chief begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return DepartmentResponse{}, err
	}

	d, err := qtx.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DepartmentResponse{}, departmenterrors.ErrDepartmentNotFound
		}
		return DepartmentResponse{}, err
	}

	role, err := qtx.GetUserRole(ctx, req.ChiefID)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if role == "" {
		return DepartmentResponse{}, departmenterrors.ErrChiefNotFound
	}
	if !chiefRoleMatchesKind(role, d.Kind) {
		s.logger.Warn("assign chief role mismatch",
			zap.String("department_id", id),
			zap.String("role", role),
			zap.String("kind", d.Kind),
		)
		return DepartmentResponse{}, departmenterrors.ErrChiefRoleMismatch
	}

	leads, err := qtx.ChiefLeads(ctx, req.ChiefID, id)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if leads {
		return DepartmentResponse{}, departmenterrors.ErrChiefAlreadyLeads
	}

	chiefID := uuid.MustParse(req.ChiefID)
	d.ChiefID = &chiefID
	if err := qtx.Update(ctx, d); err != nil {
		s.logger.Error("assign chief persist failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("assign chief commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("assign chief success",
		zap.String("department_id", id),
		zap.String("chief_id", req.ChiefID),
	)
	return mapToResponse(*d), nil
}

func (s *service) Delete(ctx context.Context, p identity.Principal, id string) error {
	if _, err := s.resolver.ResolveForWrite(ctx, p); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func chiefRoleMatchesKind(role, kind string) bool {
	led, ok := identity.Role(role).LedKind()
	return ok && string(led) == kind
}

func mapToResponse(d Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          d.ID.String(),
		Name:        d.Name,
		Kind:        d.Kind,
		Description: d.Description,
	}
	if d.ChiefID != nil {
		v := d.ChiefID.String()
		resp.ChiefID = &v
	}
	return resp
}
