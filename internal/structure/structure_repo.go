package structure

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=structure_repo.go -destination=mock/structure_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, st *Structure) error
	FindAll(ctx context.Context, access scope.Access) ([]Structure, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Structure, error)
	Update(ctx context.Context, st *Structure) error
	Delete(ctx context.Context, id string) error
	IsAncestor(ctx context.Context, candidateID, structureID string) (bool, error)
	FindEmployees(ctx context.Context, access scope.Access, structureID string) ([]StructureEmployee, error)
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

func (r *repository) Create(ctx context.Context, st *Structure) error {
	return r.db.WithContext(ctx).Create(st).Error
}

func (r *repository) FindAll(ctx context.Context, access scope.Access) ([]Structure, error) {
	var structures []Structure
	err := r.db.WithContext(ctx).
		Scopes(scope.Structures(access)).
		Order("name ASC").
		Find(&structures).Error
	return structures, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Structure, error) {
	var st Structure
	err := r.db.WithContext(ctx).
		Scopes(scope.Structures(access)).
		First(&st, "id = ?", id).Error
	return &st, err
}

func (r *repository) Update(ctx context.Context, st *Structure) error {
	return r.db.WithContext(ctx).Save(st).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Structure{}, "id = ?", id).Error
}

func (r *repository) FindEmployees(ctx context.Context, access scope.Access, structureID string) ([]StructureEmployee, error) {
	var employees []StructureEmployee
	err := r.db.WithContext(ctx).
		Table("persons").
		Scopes(scope.Persons(access)).
		Select("id, first_name, last_name, employee_number, function, employment_kind").
		Where("persons.structure_id = ?", structureID).
		Where("persons.active = TRUE").
		Where("persons.deleted_at IS NULL").
		Order("last_name ASC, first_name ASC").
		Scan(&employees).Error
	return employees, err
}

// IsAncestor walks up from structureID and reports whether candidateID is
// on the path to the root. Used to refuse reparenting cycles.
func (r *repository) IsAncestor(ctx context.Context, candidateID, structureID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id FROM structures WHERE id = ?
			UNION ALL
			SELECT s.id, s.parent_id FROM structures s
			JOIN ancestors a ON s.id = a.parent_id
		)
		SELECT count(*) FROM ancestors WHERE id = ?
	`, structureID, candidateID).Scan(&count).Error
	return count > 0, err
}
