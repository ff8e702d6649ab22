package absence

import (
	"context"
	"database/sql"
	"time"

	"go-sirh/internal/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=absence_repo.go -destination=mock/absence_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, a *Absence) error
	FindAll(ctx context.Context, access scope.Access, filter AbsenceFilter) ([]Absence, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Absence, error)
	Update(ctx context.Context, a *Absence) error
	GetPersonDepartment(ctx context.Context, personID string) (string, error)
	PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error)
	CountByType(ctx context.Context, access scope.Access, from, to *time.Time) ([]TypeCount, error)
	FindCurrent(ctx context.Context, access scope.Access) ([]Absence, error)
	Planning(ctx context.Context, access scope.Access, from, to time.Time, includePending bool) ([]PlanningDay, error)
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

func (r *repository) Create(ctx context.Context, a *Absence) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func applyFilter(filter AbsenceFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PersonID != nil {
			db = db.Where("absences.person_id = ?", *filter.PersonID)
		}
		if filter.Status != "" {
			db = db.Where("absences.status = ?", filter.Status)
		}
		if filter.Type != "" {
			db = db.Where("absences.type = ?", filter.Type)
		}
		if filter.From != "" {
			db = db.Where("absences.end_date >= ?", filter.From)
		}
		if filter.To != "" {
			db = db.Where("absences.start_date <= ?", filter.To)
		}
		return db
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter AbsenceFilter) ([]Absence, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Absence{}).
		Scopes(scope.OwnedByPerson(access), applyFilter(filter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var absences []Absence
	err := base.
		Order("absences.start_date DESC, absences.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&absences).Error
	return absences, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Absence, error) {
	var a Absence
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&a, "absences.id = ?", id).Error
	return &a, err
}

func (r *repository) Update(ctx context.Context, a *Absence) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *repository) GetPersonDepartment(ctx context.Context, personID string) (string, error) {
	var deptID string
	err := r.db.WithContext(ctx).
		Table("persons").
		Select("department_id::text").
		Where("id = ?", personID).
		Where("deleted_at IS NULL").
		Scan(&deptID).Error
	return deptID, err
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

func (r *repository) CountByType(ctx context.Context, access scope.Access, from, to *time.Time) ([]TypeCount, error) {
	db := r.db.WithContext(ctx).
		Model(&Absence{}).
		Scopes(scope.OwnedByPerson(access)).
		Where("absences.status = ?", StatusApproved)
	if from != nil {
		db = db.Where("absences.end_date >= ?", *from)
	}
	if to != nil {
		db = db.Where("absences.start_date <= ?", *to)
	}

	var rows []TypeCount
	err := db.
		Select("absences.type, COUNT(*) AS count, SUM(absences.end_date - absences.start_date + 1) AS total_days").
		Group("absences.type").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

// FindCurrent returns approved absences whose range covers today.
func (r *repository) FindCurrent(ctx context.Context, access scope.Access) ([]Absence, error) {
	var absences []Absence
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		Where("absences.status = ?", StatusApproved).
		Where("CURRENT_DATE BETWEEN absences.start_date AND absences.end_date").
		Order("absences.end_date ASC").
		Find(&absences).Error
	return absences, err
}

type planningRow struct {
	Date      string
	PersonID  *uuid.UUID
	FirstName *string
	LastName  *string
	Type      *string
}

// Planning lists the persons absent on every day of the window, one
// entry per day, using a generated calendar so days without absences
// still appear with an empty list.
func (r *repository) Planning(ctx context.Context, access scope.Access, from, to time.Time, includePending bool) ([]PlanningDay, error) {
	statuses := []string{StatusApproved}
	if includePending {
		statuses = append(statuses, StatusPending)
	}

	sub := r.db.
		Table("absences").
		Select("absences.start_date, absences.end_date, absences.person_id, absences.type, persons.first_name, persons.last_name").
		Joins("JOIN persons ON persons.id = absences.person_id").
		Scopes(scope.OwnedByPerson(access)).
		Where("absences.status IN ?", statuses).
		Where("absences.deleted_at IS NULL")

	var rows []planningRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT to_char(d.day, 'YYYY-MM-DD') AS date,
		       a.person_id, a.first_name, a.last_name, a.type
		FROM generate_series(?::date, ?::date, interval '1 day') AS d(day)
		LEFT JOIN (?) AS a
		  ON d.day BETWEEN a.start_date AND a.end_date
		ORDER BY d.day, a.last_name, a.first_name
	`, from, to, sub).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	days := make([]PlanningDay, 0)
	for _, row := range rows {
		if len(days) == 0 || days[len(days)-1].Date != row.Date {
			days = append(days, PlanningDay{Date: row.Date, Absentees: []PlanningAbsentee{}})
		}
		if row.PersonID == nil {
			continue
		}
		day := &days[len(days)-1]
		day.AbsentCount++
		day.Absentees = append(day.Absentees, PlanningAbsentee{
			PersonID:  *row.PersonID,
			FirstName: *row.FirstName,
			LastName:  *row.LastName,
			Type:      *row.Type,
		})
	}
	return days, nil
}
