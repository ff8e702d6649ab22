package recruitment

import (
	"context"
	"database/sql"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
)

//go:generate mockgen -source=recruitment_repo.go -destination=mock/recruitment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, r *Recruitment) error
	FindAll(ctx context.Context, access scope.Access, filter RecruitmentFilter) ([]Recruitment, int64, error)
	FindByID(ctx context.Context, access scope.Access, id string) (*Recruitment, error)
	Update(ctx context.Context, r *Recruitment) error
	GetDepartmentKind(ctx context.Context, departmentID string) (string, error)

	CreateCandidate(ctx context.Context, c *Candidate) error
	FindCandidates(ctx context.Context, access scope.Access, recruitmentID string) ([]Candidate, error)
	FindCandidateByID(ctx context.Context, access scope.Access, id string) (*Candidate, error)
	UpdateCandidate(ctx context.Context, c *Candidate) error
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

func (r *repository) Create(ctx context.Context, rec *Recruitment) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *repository) FindAll(ctx context.Context, access scope.Access, filter RecruitmentFilter) ([]Recruitment, int64, error) {
	base := r.db.WithContext(ctx).
		Model(&Recruitment{}).
		Scopes(scope.Recruitments(access))
	if filter.Status != "" {
		base = base.Where("recruitments.status = ?", filter.Status)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recruitments []Recruitment
	err := base.
		Order("recruitments.deadline ASC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&recruitments).Error
	return recruitments, total, err
}

func (r *repository) FindByID(ctx context.Context, access scope.Access, id string) (*Recruitment, error) {
	var rec Recruitment
	err := r.db.WithContext(ctx).
		Scopes(scope.Recruitments(access)).
		First(&rec, "recruitments.id = ?", id).Error
	return &rec, err
}

func (r *repository) Update(ctx context.Context, rec *Recruitment) error {
	return r.db.WithContext(ctx).Save(rec).Error
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

func (r *repository) CreateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) FindCandidates(ctx context.Context, access scope.Access, recruitmentID string) ([]Candidate, error) {
	var candidates []Candidate
	err := r.db.WithContext(ctx).
		Scopes(scope.Candidates(access)).
		Where("candidates.recruitment_id = ?", recruitmentID).
		Order("candidates.created_at ASC").
		Find(&candidates).Error
	return candidates, err
}

func (r *repository) FindCandidateByID(ctx context.Context, access scope.Access, id string) (*Candidate, error) {
	var c Candidate
	err := r.db.WithContext(ctx).
		Scopes(scope.Candidates(access)).
		First(&c, "candidates.id = ?", id).Error
	return &c, err
}

func (r *repository) UpdateCandidate(ctx context.Context, c *Candidate) error {
	return r.db.WithContext(ctx).Save(c).Error
}
