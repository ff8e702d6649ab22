package document

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	documenterrors "go-sirh/internal/document/errors"
	"go-sirh/internal/filestore"
	"go-sirh/internal/identity"
	"go-sirh/internal/scope"
)

// 20 MiB is generous for scanned administrative documents.
const MaxUploadBytes = 20 << 20

//go:generate mockgen -source=document_service.go -destination=mock/document_service_mock.go -package=mock
type Service interface {
	Upload(ctx context.Context, p identity.Principal, form UploadDocumentForm, name, contentType string, size int64, file io.Reader) (DocumentResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter DocumentFilter) ([]DocumentResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (DocumentResponse, error)
	Download(ctx context.Context, p identity.Principal, id string) (*Document, io.ReadCloser, error)
	Delete(ctx context.Context, p identity.Principal, id string) error
}

type service struct {
	repo     Repository
	files    filestore.Store
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(repo Repository, files filestore.Store, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("document.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.service")
	}
	return &service{repo: repo, files: files, resolver: resolver, logger: l}
}

func (s *service) Upload(ctx context.Context, p identity.Principal, form UploadDocumentForm, name, contentType string, size int64, file io.Reader) (DocumentResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return DocumentResponse{}, err
	}
	if size > MaxUploadBytes {
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	// Employees upload to their own record; chiefs and admins name the
	// target person.
	var personID uuid.UUID
	switch {
	case access.PersonID != nil:
		personID = *access.PersonID
	case form.PersonID != nil:
		visible, err := s.repo.PersonVisible(ctx, access, form.PersonID.String())
		if err != nil {
			return DocumentResponse{}, err
		}
		if !visible {
			return DocumentResponse{}, documenterrors.ErrPersonNotVisible
		}
		personID = *form.PersonID
	default:
		return DocumentResponse{}, documenterrors.ErrPersonNotVisible
	}

	key, written, err := s.files.Save(ctx, name, io.LimitReader(file, MaxUploadBytes+1))
	if err != nil {
		s.logger.Error("document store failed", zap.Error(err))
		return DocumentResponse{}, err
	}
	if written > MaxUploadBytes {
		s.files.Remove(ctx, key)
		return DocumentResponse{}, documenterrors.ErrFileTooLarge
	}

	entity := &Document{
		ID:          uuid.New(),
		PersonID:    personID,
		Type:        form.Type,
		Name:        name,
		ContentType: contentType,
		SizeBytes:   written,
		StorageKey:  key,
		UploadedBy:  &p.UserID,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.files.Remove(ctx, key)
		s.logger.Error("document persist failed", zap.Error(err))
		return DocumentResponse{}, err
	}

	s.logger.Info("upload document success",
		zap.String("document_id", entity.ID.String()),
		zap.String("person_id", personID.String()),
		zap.Int64("size_bytes", written),
	)
	return toResponse(entity), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter DocumentFilter) ([]DocumentResponse, int64, error) {
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

	docs, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponseList(docs), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (DocumentResponse, error) {
	entity, err := s.find(ctx, p, id)
	if err != nil {
		return DocumentResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *service) Download(ctx context.Context, p identity.Principal, id string) (*Document, io.ReadCloser, error) {
	entity, err := s.find(ctx, p, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.files.Open(ctx, entity.StorageKey)
	if err != nil {
		s.logger.Error("document open failed",
			zap.String("document_id", id),
			zap.Error(err),
		)
		return nil, nil, documenterrors.ErrDocumentNotFound
	}
	return entity, rc, nil
}

func (s *service) Delete(ctx context.Context, p identity.Principal, id string) error {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return err
	}
	if access.PersonID != nil {
		return documenterrors.ErrDocumentForbidden
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return documenterrors.ErrDocumentNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best effort; an orphaned blob is harmless.
	s.files.Remove(ctx, entity.StorageKey)

	s.logger.Info("delete document success", zap.String("document_id", id))
	return nil
}

func (s *service) find(ctx context.Context, p identity.Principal, id string) (*Document, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, documenterrors.ErrDocumentNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, documenterrors.ErrDocumentNotFound
		}
		return nil, err
	}
	return entity, nil
}
