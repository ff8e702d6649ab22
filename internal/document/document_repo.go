package document

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=document_repo.go -destination=mock/document_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, d *Document) error
	FindAll(ctx context.Context, access scope.Access, filter DocumentFilter) ([]Document, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Document, error)
	Delete(ctx context.Context, id string) error
	PersonVisible(ctx context.Context, access scope.Access, personID string) (bool, error)
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

func (r *repository) Create(ctx context.Context, d *Document) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func applyFilter(filter DocumentFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.PersonID != nil {
			db = db.Where("documents.person_id = ?", *filter.PersonID)
		}
		if filter.Type != "" {
			db = db.Where("documents.type = ?", filter.Type)
		}
		return db
	}
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter DocumentFilter) ([]Document, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Document{}).
		Scopes(scope.OwnedByPerson(access), applyFilter(filter))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var docs []Document
	err := base.
		Order("documents.created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&docs).Error
	return docs, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Document, error) {
	var d Document
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&d, "documents.id = ?", id).Error
	return &d, err
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Document{}, "id = ?", id).Error
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
