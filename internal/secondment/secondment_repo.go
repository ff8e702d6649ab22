package secondment

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=secondment_repo.go -destination=mock/secondment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, s *Secondment) error
	FindAll(ctx context.Context, access scope.Access, filter SecondmentFilter) ([]Secondment, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Secondment, error)
	Update(ctx context.Context, s *Secondment) error
	PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error)
	StructuresExist(ctx context.Context, ids []string) (bool, error)
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

func (r *repository) Create(ctx context.Context, s *Secondment) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func applyFilter(filter SecondmentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PersonID != nil {
			db = db.Where("secondments.person_id = ?", *filter.PersonID)
		}
		if filter.Status != "" {
			db = db.Where("secondments.status = ?", filter.Status)
		}
		return db
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter SecondmentFilter) ([]Secondment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Secondment{}).
		Scopes(scope.Secondments(access), applyFilter(filter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var secondments []Secondment
	err := base.
		Order("secondments.start_date DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&secondments).Error
	return secondments, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Secondment, error) {
	var s Secondment
	err := r.db.WithContext(ctx).
		Scopes(scope.Secondments(access)).
		First(&s, "secondments.id = ?", id).Error
	return &s, err
}

func (r *repository) Update(ctx context.Context, s *Secondment) error {
	return r.db.WithContext(ctx).Save(s).Error
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

func (r *repository) StructuresExist(ctx context.Context, ids []string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("structures").
		Where("id IN ?", ids).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count == int64(len(ids)), err
}
