package person

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=person_repo.go -destination=mock/person_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, p *Person) error
	FindAll(ctx context.Context, access scope.Access, filter PersonFilter) ([]Person, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Person, error)
	Update(ctx context.Context, p *Person) error
	Delete(ctx context.Context, id string) error
	GetDepartmentKind(ctx context.Context, departmentID string) (string, error)
	ManagerExists(ctx context.Context, id string) (bool, error)
	CountTotal(ctx context.Context, access scope.Access) (int64, error)
	CountGroupedBy(ctx context.Context, access scope.Access, column string) ([]GroupCount, error)
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

func (r *repository) Create(ctx context.Context, p *Person) error {
	return mapPersistenceError(r.db.WithContext(ctx).Create(p).Error)
}

func applyFilter(filter PersonFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.DepartmentID != nil {
			db = db.Where("persons.department_id = ?", *filter.DepartmentID)
		}
		if filter.StructureID != nil {
			db = db.Where("persons.structure_id = ?", *filter.StructureID)
		}
		if filter.EmploymentKind != "" {
			db = db.Where("persons.employment_kind = ?", filter.EmploymentKind)
		}
		if filter.Active != nil {
			db = db.Where("persons.active = ?", *filter.Active)
		}
		if filter.Search != "" {
			like := "%" + filter.Search + "%"
			db = db.Where(
				"persons.first_name ILIKE ? OR persons.last_name ILIKE ? OR persons.employee_number ILIKE ?",
				like, like, like,
			)
		}
		return db
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter PersonFilter) ([]Person, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Person{}).
		Scopes(scope.Persons(access), applyFilter(filter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var persons []Person
	err := base.
		Order("persons.last_name ASC, persons.first_name ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&persons).Error
	return persons, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Person, error) {
	var p Person
	err := r.db.WithContext(ctx).
		Scopes(scope.Persons(access)).
		First(&p, "persons.id = ?", id).Error
	return &p, err
}

func (r *repository) Update(ctx context.Context, p *Person) error {
	return mapPersistenceError(r.db.WithContext(ctx).Save(p).Error)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Person{}, "id = ?", id).Error
}

func (r *repository) GetDepartmentKind(ctx context.Context, departmentID string) (string, error) {
	var kind string
	err := r.db.WithContext(ctx).
		Table("departments").
		Select("kind").
		Where("id = ?", departmentID).
		Where("deleted_at IS NULL").
		Scan(&kind).Error
	return kind, err
}

func (r *repository) ManagerExists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Person{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) CountTotal(ctx context.Context, access scope.Access) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&Person{}).
		Scopes(scope.Persons(access)).
		Where("persons.active = TRUE").
		Count(&total).Error
	return total, err
}

// CountGroupedBy aggregates active persons by a column. Callers pass a
// column from the statistics whitelist, never user input.
func (r *repository) CountGroupedBy(ctx context.Context, access scope.Access, column string) ([]GroupCount, error) {
	var rows []GroupCount
	err := r.db.WithContext(ctx).
		Model(&Person{}).
		Scopes(scope.Persons(access)).
		Select(column + " AS value, COUNT(*) AS count").
		Where("persons.active = TRUE").
		Group(column).
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}
