package staff

import (
	"context"
	"database/sql"
	"time"

	"go-sirh/internal/scope"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// personInfo is the slice of the persons row the specialization logic
// needs: the department kind decides which specialization is legal.
type personInfo struct {
	ID             string
	DepartmentKind string
	EmploymentKind string
}

//go:generate mockgen -source=staff_repo.go -destination=mock/staff_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindPerson(ctx context.Context, access scope.Access, personID string) (*personInfo, error)
	SetPersonEmploymentKind(ctx context.Context, personID string, kind string) error

	UpsertTeaching(ctx context.Context, t *TeachingStaff) error
	FindTeaching(ctx context.Context, access scope.Access, personID string) (*TeachingStaff, error)

	UpsertAdminTechnical(ctx context.Context, a *AdminTechnicalStaff) error
	FindAdminTechnical(ctx context.Context, access scope.Access, personID string) (*AdminTechnicalStaff, error)

	UpsertContract(ctx context.Context, c *ContractStaff) error
	FindContract(ctx context.Context, access scope.Access, personID string) (*ContractStaff, error)

	CountTeachingByGrade(ctx context.Context, access scope.Access) ([]GradeCount, error)
	FindExpiringContracts(ctx context.Context, access scope.Access, before time.Time) ([]ExpiringContract, error)
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

func (r *repository) FindPerson(ctx context.Context, access scope.Access, personID string) (*personInfo, error) {
	var info personInfo
	err := r.db.WithContext(ctx).
		Table("persons").
		Select("persons.id::text AS id, departments.kind AS department_kind, persons.employment_kind").
		Joins("JOIN departments ON departments.id = persons.department_id").
		Scopes(scope.Persons(access)).
		Where("persons.id = ?", personID).
		Where("persons.deleted_at IS NULL").
		Take(&info).Error
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (r *repository) SetPersonEmploymentKind(ctx context.Context, personID string, kind string) error {
	return r.db.WithContext(ctx).
		Table("persons").
		Where("id = ?", personID).
		Update("employment_kind", kind).Error
}

func upsertOnPersonID() clause.OnConflict {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "person_id"}},
		UpdateAll: true,
	}
}

func (r *repository) UpsertTeaching(ctx context.Context, t *TeachingStaff) error {
	return r.db.WithContext(ctx).Clauses(upsertOnPersonID()).Create(t).Error
}

func (r *repository) FindTeaching(ctx context.Context, access scope.Access, personID string) (*TeachingStaff, error) {
	var t TeachingStaff
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&t, "person_id = ?", personID).Error
	return &t, err
}

func (r *repository) UpsertAdminTechnical(ctx context.Context, a *AdminTechnicalStaff) error {
	return r.db.WithContext(ctx).Clauses(upsertOnPersonID()).Create(a).Error
}

func (r *repository) FindAdminTechnical(ctx context.Context, access scope.Access, personID string) (*AdminTechnicalStaff, error) {
	var a AdminTechnicalStaff
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&a, "person_id = ?", personID).Error
	return &a, err
}

func (r *repository) UpsertContract(ctx context.Context, c *ContractStaff) error {
	return r.db.WithContext(ctx).Clauses(upsertOnPersonID()).Create(c).Error
}

func (r *repository) FindContract(ctx context.Context, access scope.Access, personID string) (*ContractStaff, error) {
	var c ContractStaff
	err := r.db.WithContext(ctx).
		Scopes(scope.OwnedByPerson(access)).
		First(&c, "person_id = ?", personID).Error
	return &c, err
}

func (r *repository) CountTeachingByGrade(ctx context.Context, access scope.Access) ([]GradeCount, error) {
	var rows []GradeCount
	err := r.db.WithContext(ctx).
		Model(&TeachingStaff{}).
		Scopes(scope.OwnedByPerson(access)).
		Select("grade, COUNT(*) AS count").
		Group("grade").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) FindExpiringContracts(ctx context.Context, access scope.Access, before time.Time) ([]ExpiringContract, error) {
	var rows []ExpiringContract
	err := r.db.WithContext(ctx).
		Table("contract_staffs").
		Select(`contract_staffs.person_id,
			persons.first_name,
			persons.last_name,
			persons.employee_number,
			contract_staffs.contract_type,
			contract_staffs.contract_end`).
		Joins("JOIN persons ON persons.id = contract_staffs.person_id").
		Scopes(scope.OwnedByPerson(access)).
		Where("contract_staffs.deleted_at IS NULL").
		Where("contract_staffs.contract_end BETWEEN CURRENT_DATE AND ?", before).
		Order("contract_staffs.contract_end ASC").
		Scan(&rows).Error
	return rows, err
}
