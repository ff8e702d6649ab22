package account

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	accounterrors "go-sirh/internal/account/errors"
	"go-sirh/internal/auth"
	"go-sirh/internal/identity"
)

//go:generate mockgen -source=account_service.go -destination=mock/account_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateAccountRequest) (AccountResponse, error)
	GetAll(ctx context.Context) ([]AccountResponse, error)
	GetByID(ctx context.Context, id string) (AccountResponse, error)
	Update(ctx context.Context, id string, req UpdateAccountRequest) (AccountResponse, error)
	ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("account.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("account.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, req CreateAccountRequest) (AccountResponse, error) {
	// Employees need a person record to scope to; admin and chief
	// accounts may exist before their person record does.
	if identity.Role(req.Role) == identity.RoleEmployee && req.PersonID == nil {
		return AccountResponse{}, accounterrors.ErrEmployeeNeedsPerson
	}
	if req.PersonID != nil {
		ok, err := s.repo.PersonExists(ctx, req.PersonID.String())
		if err != nil {
			return AccountResponse{}, err
		}
		if !ok {
			return AccountResponse{}, accounterrors.ErrPersonNotFound
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AccountResponse{}, err
	}

	user := &auth.User{
		ID:       uuid.New(),
		PersonID: req.PersonID,
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
		IsActive: true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("create account persist failed", zap.Error(err))
		return AccountResponse{}, err
	}

	s.logger.Info("create account success",
		zap.String("account_id", user.ID.String()),
		zap.String("role", user.Role),
	)
	return toResponse(user), nil
}

func (s *service) GetAll(ctx context.Context) ([]AccountResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]AccountResponse, 0, len(users))
	for i := range users {
		resp = append(resp, toResponse(&users[i]))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (AccountResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return AccountResponse{}, err
	}
	return toResponse(user), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateAccountRequest) (AccountResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return AccountResponse{}, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.PersonID != nil {
		ok, err := s.repo.PersonExists(ctx, req.PersonID.String())
		if err != nil {
			return AccountResponse{}, err
		}
		if !ok {
			return AccountResponse{}, accounterrors.ErrPersonNotFound
		}
		user.PersonID = req.PersonID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if identity.Role(user.Role) == identity.RoleEmployee && user.PersonID == nil {
		return AccountResponse{}, accounterrors.ErrEmployeeNeedsPerson
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return AccountResponse{}, err
	}

	s.logger.Info("update account success", zap.String("account_id", id))
	return toResponse(user), nil
}

func (s *service) ResetPassword(ctx context.Context, id string, req ResetPasswordRequest) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashed)
	if err := s.repo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("reset password success", zap.String("account_id", id))
	return nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.find(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) find(ctx context.Context, id string) (*auth.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, accounterrors.ErrAccountNotFound
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, accounterrors.ErrAccountNotFound
		}
		return nil, err
	}
	return user, nil
}

func toResponse(user *auth.User) AccountResponse {
	return AccountResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		PersonID:  user.PersonID,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
