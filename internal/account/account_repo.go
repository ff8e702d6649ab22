package account

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	accounterrors "go-sirh/internal/account/errors"
	"go-sirh/internal/auth"
)

//go:generate mockgen -source=account_repo.go -destination=mock/account_repo_mock.go -package=mock
type Repository interface {
	Create(ctx context.Context, user *auth.User) error
	FindAll(ctx context.Context) ([]auth.User, error)
	FindByID(ctx context.Context, id string) (*auth.User, error)
	Update(ctx context.Context, user *auth.User) error
	Delete(ctx context.Context, id string) error
	PersonExists(ctx context.Context, personID string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func mapPersistenceError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "email") {
			return accounterrors.ErrEmailAlreadyRegistered
		}
		if strings.Contains(pgErr.ConstraintName, "person") {
			return accounterrors.ErrPersonAlreadyLinked
		}
	}
	msg := err.Error()
	if strings.Contains(msg, "email") && strings.Contains(msg, "duplicate") {
		return accounterrors.ErrEmailAlreadyRegistered
	}
	return err
}

func (r *repository) Create(ctx context.Context, user *auth.User) error {
	return mapPersistenceError(r.db.WithContext(ctx).Create(user).Error)
}

func (r *repository) FindAll(ctx context.Context) ([]auth.User, error) {
	var users []auth.User
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&users).Error
	return users, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	var user auth.User
	err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return &user, err
}

func (r *repository) Update(ctx context.Context, user *auth.User) error {
	return mapPersistenceError(r.db.WithContext(ctx).Save(user).Error)
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&auth.User{}, "id = ?", id).Error
}

func (r *repository) PersonExists(ctx context.Context, personID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("persons").
		Where("id = ?", personID).
		Where("deleted_at IS NULL").
		Count(&count).Error
	return count > 0, err
}
