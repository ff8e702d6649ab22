package payroll

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	payrollerrors "go-sirh/internal/payroll/errors"
	"go-sirh/internal/scope"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Payroll) error
	FindAll(ctx context.Context, access scope.Access, filter PayrollFilter) ([]Payroll, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Payroll, error)
	Update(ctx context.Context, p *Payroll) error
	PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error)
	MonthSummary(ctx context.Context, access scope.Access, month string) (MonthlySummary, error)
	FindPayslipInfo(ctx context.Context, access scope.Access, id string) (*payslipInfo, error)
	ExistsForMonth(ctx context.Context, personID string, month string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	// Rebind the session onto the caller's transaction so every statement
	// issued through the returned repository joins it.
	db := r.db.Session(&gorm.Session{Context: r.db.Statement.Context, NewDB: true})
	db.Statement.ConnPool = tx
	return &repository{db: db}
}

func mapPersistenceError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_person_month" {
		return payrollerrors.ErrPayrollExists
	}
	if strings.Contains(err.Error(), "uq_payroll_person_month") {
		return payrollerrors.ErrPayrollExists
	}
	return err
}

func (r *repository) Create(ctx context.Context, p *Payroll) error {
	return mapPersistenceError(r.db.WithContext(ctx).Create(p).Error)
}

func applyFilter(filter PayrollFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PersonID != nil {
			db = db.Where("payrolls.person_id = ?", *filter.PersonID)
		}
		if filter.Month != "" {
			db = db.Where("payrolls.month = ?", filter.Month)
		}
		if filter.Status != "" {
			db = db.Where("payrolls.status = ?", filter.Status)
		}
		return db
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter PayrollFilter) ([]Payroll, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Scopes(scope.OwnedByPerson(access), applyFilter(filter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var payrolls []Payroll
	err := base.
		Order("payrolls.month DESC, payrolls.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&payrolls).Error
	return payrolls, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Payroll, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&p, "payrolls.id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Payroll) error {
	return mapPersistenceError(r.db.WithContext(ctx).Save(p).Error)
}

func (r *repository) PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("persons").
		Scopes(scope.Persons(access)).
		Where("persons.id = ?", personID).
		Where("persons.deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}

func (r *repository) MonthSummary(ctx context.Context, access scope.Access, month string) (MonthlySummary, error) {
	summary := MonthlySummary{Month: month}
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Scopes(scope.OwnedByPerson(access)).
		Where("payrolls.month = ?", month).
		Where("payrolls.status <> ?", StatusCancelled).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(gross_cents), 0) AS total_gross_cents,
			COALESCE(SUM(deductions_cents), 0) AS total_deductions_cents,
			COALESCE(SUM(net_cents), 0) AS total_net_cents`).
		Scan(&summary).Error
	return summary, err
}

func (r *repository) FindPayslipInfo(ctx context.Context, access scope.Access, id string) (*payslipInfo, error) {
	var p Payroll
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&p, "payrolls.id = ?", id).Error
	if err != nil {
		return nil, err
	}

	var who struct {
		FirstName      string
		LastName       string
		EmployeeNumber string
		Function       string
	}
	err = r.db.WithContext(ctx).
		Table("persons").
		Select("first_name, last_name, employee_number, function").
		Where("id = ?", p.PersonID).
		Take(&who).Error
	if err != nil {
		return nil, err
	}

	return &payslipInfo{
		Payroll:        p,
		FirstName:      who.FirstName,
		LastName:       who.LastName,
		EmployeeNumber: who.EmployeeNumber,
		Function:       who.Function,
	}, nil
}

func (r *repository) ExistsForMonth(ctx context.Context, personID string, month string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payroll{}).
		Where("person_id = ? AND month = ?", personID, month).
		Count(&count).Error
	return count > 0, err
}
