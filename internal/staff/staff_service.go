package staff

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-sirh/internal/identity"
	"go-sirh/internal/person"
	"go-sirh/internal/scope"
	stafferrors "go-sirh/internal/staff/errors"
)

const contractExpiryWindow = 30 * 24 * time.Hour

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	UpsertTeaching(ctx context.Context, p identity.Principal, personID string, req UpsertTeachingStaffRequest) (TeachingStaffResponse, error)
	GetTeaching(ctx context.Context, p identity.Principal, personID string) (TeachingStaffResponse, error)

	UpsertAdminTechnical(ctx context.Context, p identity.Principal, personID string, req UpsertAdminTechnicalStaffRequest) (AdminTechnicalStaffResponse, error)
	GetAdminTechnical(ctx context.Context, p identity.Principal, personID string) (AdminTechnicalStaffResponse, error)

	UpsertContract(ctx context.Context, p identity.Principal, personID string, req UpsertContractStaffRequest) (ContractStaffResponse, error)
	GetContract(ctx context.Context, p identity.Principal, personID string) (ContractStaffResponse, error)

	TeachingByGrade(ctx context.Context, p identity.Principal) ([]GradeCount, error)
	ExpiringContracts(ctx context.Context, p identity.Principal) ([]ExpiringContract, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

// preparePerson loads the person inside the caller's write scope and
// checks the department kind allows the requested specialization. The
// person's employment_kind is forced to the specialization kind in the
// same transaction, so the two can never drift apart.
func (s *service) preparePerson(ctx context.Context, qtx Repository, access scope.Access, personID, kind string) error {
	if _, err := uuid.Parse(personID); err != nil {
		return stafferrors.ErrStaffRecordNotFound
	}
	if access.PersonID != nil {
		return stafferrors.ErrStaffForbidden
	}

	info, err := qtx.FindPerson(ctx, access, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return stafferrors.ErrStaffRecordNotFound
		}
		return err
	}
	if info.DepartmentKind != kind {
		s.logger.Warn("staff kind mismatch",
			zap.String("person_id", personID),
			zap.String("department_kind", info.DepartmentKind),
			zap.String("requested_kind", kind),
		)
		return stafferrors.ErrKindMismatch
	}

	if info.EmploymentKind != kind {
		if err := qtx.SetPersonEmploymentKind(ctx, personID, kind); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) UpsertTeaching(ctx context.Context, p identity.Principal, personID string, req UpsertTeachingStaffRequest) (TeachingStaffResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return TeachingStaffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeachingStaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.preparePerson(ctx, qtx, access, personID, person.KindTeaching); err != nil {
		return TeachingStaffResponse{}, err
	}

	entity := &TeachingStaff{
		PersonID:       uuid.MustParse(personID),
		Grade:          req.Grade,
		ResearchDomain: req.ResearchDomain,
		WeeklyHours:    req.WeeklyHours,
	}
	if err := qtx.UpsertTeaching(ctx, entity); err != nil {
		s.logger.Error("upsert teaching staff failed", zap.Error(err))
		return TeachingStaffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeachingStaffResponse{}, err
	}

	s.logger.Info("upsert teaching staff success", zap.String("person_id", personID))
	return toTeachingResponse(entity), nil
}

func (s *service) GetTeaching(ctx context.Context, p identity.Principal, personID string) (TeachingStaffResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return TeachingStaffResponse{}, err
	}

	entity, err := s.repo.FindTeaching(ctx, access, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeachingStaffResponse{}, stafferrors.ErrStaffRecordNotFound
		}
		return TeachingStaffResponse{}, err
	}
	return toTeachingResponse(entity), nil
}

func (s *service) UpsertAdminTechnical(ctx context.Context, p identity.Principal, personID string, req UpsertAdminTechnicalStaffRequest) (AdminTechnicalStaffResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return AdminTechnicalStaffResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AdminTechnicalStaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.preparePerson(ctx, qtx, access, personID, person.KindAdminTechnical); err != nil {
		return AdminTechnicalStaffResponse{}, err
	}

	entity := &AdminTechnicalStaff{
		PersonID:       uuid.MustParse(personID),
		Category:       req.Category,
		JobTitle:       req.JobTitle,
		OfficeLocation: req.OfficeLocation,
	}
	if err := qtx.UpsertAdminTechnical(ctx, entity); err != nil {
		s.logger.Error("upsert admin technical staff failed", zap.Error(err))
		return AdminTechnicalStaffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AdminTechnicalStaffResponse{}, err
	}

	s.logger.Info("upsert admin technical staff success", zap.String("person_id", personID))
	return toAdminTechnicalResponse(entity), nil
}

func (s *service) GetAdminTechnical(ctx context.Context, p identity.Principal, personID string) (AdminTechnicalStaffResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return AdminTechnicalStaffResponse{}, err
	}

	entity, err := s.repo.FindAdminTechnical(ctx, access, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AdminTechnicalStaffResponse{}, stafferrors.ErrStaffRecordNotFound
		}
		return AdminTechnicalStaffResponse{}, err
	}
	return toAdminTechnicalResponse(entity), nil
}

func (s *service) UpsertContract(ctx context.Context, p identity.Principal, personID string, req UpsertContractStaffRequest) (ContractStaffResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return ContractStaffResponse{}, err
	}

	start, err := time.Parse("2006-01-02", req.ContractStart)
	if err != nil {
		return ContractStaffResponse{}, stafferrors.ErrInvalidContractDate
	}
	end, err := time.Parse("2006-01-02", req.ContractEnd)
	if err != nil {
		return ContractStaffResponse{}, stafferrors.ErrInvalidContractDate
	}
	if end.Before(start) {
		return ContractStaffResponse{}, stafferrors.ErrInvalidContractDates
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return ContractStaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := s.preparePerson(ctx, qtx, access, personID, person.KindContract); err != nil {
		return ContractStaffResponse{}, err
	}

	entity := &ContractStaff{
		PersonID:      uuid.MustParse(personID),
		ContractType:  req.ContractType,
		ContractStart: start,
		ContractEnd:   end,
		Employer:      req.Employer,
	}
	if err := qtx.UpsertContract(ctx, entity); err != nil {
		s.logger.Error("upsert contract staff failed", zap.Error(err))
		return ContractStaffResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return ContractStaffResponse{}, err
	}

	s.logger.Info("upsert contract staff success", zap.String("person_id", personID))
	return toContractResponse(entity), nil
}

func (s *service) GetContract(ctx context.Context, p identity.Principal, personID string) (ContractStaffResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return ContractStaffResponse{}, err
	}

	entity, err := s.repo.FindContract(ctx, access, personID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ContractStaffResponse{}, stafferrors.ErrStaffRecordNotFound
		}
		return ContractStaffResponse{}, err
	}
	return toContractResponse(entity), nil
}

func (s *service) TeachingByGrade(ctx context.Context, p identity.Principal) ([]GradeCount, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.CountTeachingByGrade(ctx, access)
}

func (s *service) ExpiringContracts(ctx context.Context, p identity.Principal) ([]ExpiringContract, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}
	return s.repo.FindExpiringContracts(ctx, access, time.Now().Add(contractExpiryWindow))
}
