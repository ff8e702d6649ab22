package structure

import (
	"context"
	"database/sql"
	"errors"

	"go-sirh/internal/identity"
	"go-sirh/internal/scope"
	structureerrors "go-sirh/internal/structure/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=structure_service.go -destination=mock/structure_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreateStructureRequest) (StructureResponse, error)
	GetAll(ctx context.Context, p identity.Principal) ([]StructureResponse, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (StructureResponse, error)
	GetTree(ctx context.Context, p identity.Principal) ([]StructureTreeNode, error)
	GetEmployees(ctx context.Context, p identity.Principal, id string) ([]StructureEmployee, error)
	Update(ctx context.Context, p identity.Principal, id string, req UpdateStructureRequest) (StructureResponse, error)
	Delete(ctx context.Context, p identity.Principal, id string) error
}

type service struct {
	db       *sql.DB
	repo     Repository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(db *sql.DB, repo Repository, resolver scope.Resolver, logger ...*zap.Logger) Service {
	l := zap.L().Named("structure.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("structure.service")
	}
	return &service{db: db, repo: repo, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateStructureRequest) (StructureResponse, error) {
	s.logger.Debug("create structure requested",
		zap.String("name", req.Name),
		zap.String("department_id", req.DepartmentID),
	)

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return StructureResponse{}, err
	}

	departmentID := uuid.MustParse(req.DepartmentID)
	// Chiefs may only build inside their own department, whatever the
	// client sent.
	if access.DepartmentID != nil {
		departmentID = *access.DepartmentID
	}

	st := &Structure{
		ID:           uuid.New(),
		Name:         req.Name,
		Type:         req.Type,
		Description:  req.Description,
		DepartmentID: departmentID,
	}

	if req.ParentID != nil {
		parent, err := s.repo.FindByID(ctx, access, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StructureResponse{}, structureerrors.ErrParentNotFound
			}
			return StructureResponse{}, err
		}
		if parent.DepartmentID != departmentID {
			return StructureResponse{}, structureerrors.ErrParentDepartmentMismatch
		}
		st.ParentID = &parent.ID
	}
	if req.ResponsibleID != nil {
		respID := uuid.MustParse(*req.ResponsibleID)
		st.ResponsibleID = &respID
	}

	if err := s.repo.Create(ctx, st); err != nil {
		s.logger.Error("create structure persist failed", zap.Error(err))
		return StructureResponse{}, err
	}

	s.logger.Info("create structure success", zap.String("structure_id", st.ID.String()))
	return mapToResponse(*st), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal) ([]StructureResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	structures, err := s.repo.FindAll(ctx, access)
	if err != nil {
		return nil, err
	}

	resp := make([]StructureResponse, len(structures))
	for i, st := range structures {
		resp[i] = mapToResponse(st)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (StructureResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StructureResponse{}, structureerrors.ErrInvalidStructureID
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return StructureResponse{}, err
	}

	st, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, structureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}
	return mapToResponse(*st), nil
}

// GetTree assembles the visible structures into root-anchored subtrees in
// memory; a scoped structure whose parent is out of scope becomes a root.
func (s *service) GetTree(ctx context.Context, p identity.Principal) ([]StructureTreeNode, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	structures, err := s.repo.FindAll(ctx, access)
	if err != nil {
		return nil, err
	}

	return buildTree(structures), nil
}

func buildTree(structures []Structure) []StructureTreeNode {
	byID := make(map[uuid.UUID]Structure, len(structures))
	children := make(map[uuid.UUID][]Structure)
	for _, st := range structures {
		byID[st.ID] = st
	}

	var roots []Structure
	for _, st := range structures {
		if st.ParentID != nil {
			if _, visible := byID[*st.ParentID]; visible {
				children[*st.ParentID] = append(children[*st.ParentID], st)
				continue
			}
		}
		roots = append(roots, st)
	}

	var build func(st Structure) StructureTreeNode
	build = func(st Structure) StructureTreeNode {
		node := StructureTreeNode{
			StructureResponse: mapToResponse(st),
			Children:          []StructureTreeNode{},
		}
		for _, child := range children[st.ID] {
			node.Children = append(node.Children, build(child))
		}
		return node
	}

	nodes := make([]StructureTreeNode, len(roots))
	for i, root := range roots {
		nodes[i] = build(root)
	}
	return nodes
}

func (s *service) GetEmployees(ctx context.Context, p identity.Principal, id string) ([]StructureEmployee, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, structureerrors.ErrInvalidStructureID
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	// Visibility of the structure itself gates the listing.
	if _, err := s.repo.FindByID(ctx, access, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, structureerrors.ErrStructureNotFound
		}
		return nil, err
	}

	employees, err := s.repo.FindEmployees(ctx, access, id)
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []StructureEmployee{}
	}
	return employees, nil
}

func (s *service) Update(ctx context.Context, p identity.Principal, id string, req UpdateStructureRequest) (StructureResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return StructureResponse{}, err
	}

	st, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return StructureResponse{}, structureerrors.ErrStructureNotFound
		}
		return StructureResponse{}, err
	}

	st.Name = req.Name
	st.Type = req.Type
	st.Description = req.Description

	if req.ParentID != nil {
		if *req.ParentID == id {
			return StructureResponse{}, structureerrors.ErrParentCycle
		}
		parent, err := s.repo.FindByID(ctx, access, *req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return StructureResponse{}, structureerrors.ErrParentNotFound
			}
			return StructureResponse{}, err
		}
		if parent.DepartmentID != st.DepartmentID {
			return StructureResponse{}, structureerrors.ErrParentDepartmentMismatch
		}
		descendant, err := s.repo.IsAncestor(ctx, id, *req.ParentID)
		if err != nil {
			return StructureResponse{}, err
		}
		if descendant {
			return StructureResponse{}, structureerrors.ErrParentCycle
		}
		st.ParentID = &parent.ID
	} else {
		st.ParentID = nil
	}

	if req.ResponsibleID != nil {
		respID := uuid.MustParse(*req.ResponsibleID)
		st.ResponsibleID = &respID
	} else {
		st.ResponsibleID = nil
	}

	if err := s.repo.Update(ctx, st); err != nil {
		s.logger.Error("update structure persist failed",
			zap.String("structure_id", id),
			zap.Error(err),
		)
		return StructureResponse{}, err
	}

	s.logger.Info("update structure success", zap.String("structure_id", id))
	return mapToResponse(*st), nil
}

func (s *service) Delete(ctx context.Context, p identity.Principal, id string) error {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, access, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return structureerrors.ErrStructureNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func mapToResponse(st Structure) StructureResponse {
	resp := StructureResponse{
		ID:           st.ID.String(),
		Name:         st.Name,
		Type:         st.Type,
		Description:  st.Description,
		DepartmentID: st.DepartmentID.String(),
	}
	if st.ParentID != nil {
		v := st.ParentID.String()
		resp.ParentID = &v
	}
	if st.ResponsibleID != nil {
		v := st.ResponsibleID.String()
		resp.ResponsibleID = &v
	}
	return resp
}
