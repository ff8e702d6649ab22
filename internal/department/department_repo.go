package department

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=department_repo.go -destination=mock/department_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Department) error
	FindAll(ctx context.Context, access scope.Access) ([]Department, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Department, error)
	Update(ctx context.Context, d *Department) error
	Delete(ctx context.Context, id string) error
	GetUserRole(ctx context.Context, userID string) (string, error)
	ChiefLeads(ctx context.Context, chiefID string, excludeDeptID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Create(d).Error
}

// departmentScope narrows the departments table itself: chiefs see their
// own department, employees the one their person record belongs to.
func departmentScope(access scope.Access) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		switch {
		case access.All:
			return db
		case access.DepartmentID != nil:
			return db.Where("departments.id = ?", *access.DepartmentID)
		case access.PersonID != nil:
			return db.Where(
				"departments.id IN (SELECT department_id FROM persons WHERE id = ?)",
				*access.PersonID,
			)
		default:
			return db.Where("1 = 0")
		}
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access) ([]Department, error) {
	var depts []Department
	err := r.db.WithContext(ctx).
		Scopes(departmentScope(access)).
		Order("name ASC").
		Find(&depts).Error
	return depts, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Department, error) {
	var d Department
	err := r.db.WithContext(ctx).
		Scopes(departmentScope(access)).
		First(&d, "id = ?", id).Error
	return &d, err
}

func (r *repository) Update(ctx context.Context, d *Department) error {
	return r.db.WithContext(ctx).Save(d).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Department{}, "id = ?", id).Error
}

func (r *repository) GetUserRole(ctx context.Context, userID string) (string, error) {
	var role string
	err := r.db.WithContext(ctx).
		Table("users").
		Select("role").
		Where("id = ?", userID).
		Where("deleted_at IS NULL").
		Scan(&role).Error
	return role, err
}

func (r *repository) ChiefLeads(ctx context.Context, chiefID string, excludeDeptID string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&Department{}).
		Where("chief_id = ?", chiefID)
	if excludeDeptID != "" {
		db = db.Where("id <> ?", excludeDeptID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
