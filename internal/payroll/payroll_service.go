package payroll

import (
	"context"
	"database/sql"
	"errors"
	"regexp"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-sirh/internal/identity"
	payrollerrors "go-sirh/internal/payroll/errors"
	"go-sirh/internal/scope"
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// allowedTransitions lists the legal status moves. A paid sheet is final
// except for suspension review; cancelled is terminal.
var allowedTransitions = map[string][]string{
	StatusInProgress: {StatusPaid, StatusSuspended, StatusCancelled},
	StatusSuspended:  {StatusInProgress, StatusCancelled},
	StatusPaid:       {StatusSuspended},
	StatusCancelled:  {},
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreatePayrollRequest) (PayrollResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter PayrollFilter) ([]PayrollResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (PayrollResponse, error)
	Update(ctx context.Context, p identity.Principal, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	MonthSummary(ctx context.Context, p identity.Principal, month string) (MonthlySummary, error)
	Payslip(ctx context.Context, p identity.Principal, id string) ([]byte, string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreatePayrollRequest) (PayrollResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return PayrollResponse{}, err
	}
	if access.PersonID != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollForbidden
	}
	if !monthPattern.MatchString(req.Month) {
		return PayrollResponse{}, payrollerrors.ErrInvalidMonth
	}

	visible, err := s.repo.PersonVisible(ctx, access, req.PersonID.String())
	if err != nil {
		return PayrollResponse{}, err
	}
	if !visible {
		return PayrollResponse{}, payrollerrors.ErrPersonNotVisible
	}

	entity := &Payroll{
		ID:              uuid.New(),
		PersonID:        req.PersonID,
		Month:           req.Month,
		GrossCents:      req.GrossCents,
		DeductionsCents: req.DeductionsCents,
		NetCents:        req.GrossCents - req.DeductionsCents,
		Status:          StatusInProgress,
		Notes:           req.Notes,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.logger.Error("create payroll persist failed",
			zap.String("person_id", req.PersonID.String()),
			zap.String("month", req.Month),
			zap.Error(err),
		)
		return PayrollResponse{}, err
	}

	s.logger.Info("create payroll success",
		zap.String("payroll_id", entity.ID.String()),
		zap.String("month", req.Month),
	)
	return toResponse(entity), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter PayrollFilter) ([]PayrollResponse, int64, error) {
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

	payrolls, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponseList(payrolls), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (PayrollResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return PayrollResponse{}, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *service) Update(ctx context.Context, p identity.Principal, id string, req UpdatePayrollRequest) (PayrollResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return PayrollResponse{}, err
	}
	if access.PersonID != nil {
		return PayrollResponse{}, payrollerrors.ErrPayrollForbidden
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if req.Status != nil && *req.Status != entity.Status {
		if !transitionAllowed(entity.Status, *req.Status) {
			s.logger.Warn("payroll status change refused",
				zap.String("payroll_id", id),
				zap.String("from", entity.Status),
				zap.String("to", *req.Status),
			)
			return PayrollResponse{}, payrollerrors.ErrInvalidStatusChange
		}
		entity.Status = *req.Status
	}
	if req.GrossCents != nil {
		entity.GrossCents = *req.GrossCents
	}
	if req.DeductionsCents != nil {
		entity.DeductionsCents = *req.DeductionsCents
	}
	if req.Notes != nil {
		entity.Notes = *req.Notes
	}
	entity.NetCents = entity.GrossCents - entity.DeductionsCents

	if err := s.repo.Update(ctx, entity); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("update payroll success", zap.String("payroll_id", id))
	return toResponse(entity), nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *service) MonthSummary(ctx context.Context, p identity.Principal, month string) (MonthlySummary, error) {
	if !monthPattern.MatchString(month) {
		return MonthlySummary{}, payrollerrors.ErrInvalidMonth
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return MonthlySummary{}, err
	}
	return s.repo.MonthSummary(ctx, access, month)
}

func (s *service) Payslip(ctx context.Context, p identity.Principal, id string) ([]byte, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", payrollerrors.ErrPayrollNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, "", err
	}

	info, err := s.repo.FindPayslipInfo(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", payrollerrors.ErrPayrollNotFound
		}
		return nil, "", err
	}

	pdf, err := renderPayslip(info)
	if err != nil {
		s.logger.Error("payslip render failed", zap.String("payroll_id", id), zap.Error(err))
		return nil, "", err
	}

	filename := "payslip-" + info.EmployeeNumber + "-" + info.Payroll.Month + ".pdf"
	return pdf, filename, nil
}
