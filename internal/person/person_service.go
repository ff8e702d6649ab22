package person

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"go-sirh/internal/events"
	"go-sirh/internal/identity"
	"go-sirh/internal/messaging/kafka"
	personerrors "go-sirh/internal/person/errors"
	"go-sirh/internal/scope"
	"go-sirh/internal/shared/contextutil"
	"go-sirh/internal/shared/counter"
)

const (
	employeeNumberCounter = "person_employee_number"
	statsCacheTTL         = 5 * time.Minute
	statsCacheKeyPrefix   = "stats:persons:"
)

//go:generate mockgen -source=person_service.go -destination=mock/person_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreatePersonRequest) (PersonResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter PersonFilter) ([]PersonResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (PersonResponse, error)
	Update(ctx context.Context, p identity.Principal, id string, req UpdatePersonRequest) (PersonResponse, error)
	Delete(ctx context.Context, p identity.Principal, id string) error
	Statistics(ctx context.Context, p identity.Principal) (PersonStatistics, error)
	WorkCertificate(ctx context.Context, p identity.Principal, id string) ([]byte, string, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	counter  counter.Repository
	resolver scope.Resolver
	cache    *redis.Client
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	counterRepo counter.Repository,
	resolver scope.Resolver,
	cache *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("person.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("person.service")
	}
	return &service{
		db:       db,
		repo:     repo,
		outbox:   outbox,
		counter:  counterRepo,
		resolver: resolver,
		cache:    cache,
		logger:   l,
	}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreatePersonRequest) (PersonResponse, error) {
	s.logger.Debug("create person requested",
		zap.String("national_id", req.NationalID),
		zap.String("employment_kind", req.EmploymentKind),
	)

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return PersonResponse{}, err
	}
	if access.PersonID != nil {
		return PersonResponse{}, personerrors.ErrPersonForbidden
	}

	// Chiefs always create into their own department, whatever the
	// request body says.
	departmentID := req.DepartmentID
	if access.DepartmentID != nil {
		departmentID = *access.DepartmentID
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return PersonResponse{}, personerrors.ErrInvalidBirthDate
	}
	hireDate, err := time.Parse("2006-01-02", req.HireDate)
	if err != nil {
		return PersonResponse{}, personerrors.ErrInvalidHireDate
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create person begin tx failed", zap.Error(err))
		return PersonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	kind, err := qtx.GetDepartmentKind(ctx, departmentID.String())
	if err != nil {
		return PersonResponse{}, err
	}
	if kind == "" {
		return PersonResponse{}, personerrors.ErrDepartmentNotFound
	}
	if kind != req.EmploymentKind {
		s.logger.Warn("create person kind mismatch",
			zap.String("department_kind", kind),
			zap.String("employment_kind", req.EmploymentKind),
		)
		return PersonResponse{}, personerrors.ErrEmploymentKindMismatch
	}

	if req.ManagerID != nil {
		ok, err := qtx.ManagerExists(ctx, req.ManagerID.String())
		if err != nil {
			return PersonResponse{}, err
		}
		if !ok {
			return PersonResponse{}, personerrors.ErrManagerNotFound
		}
	}

	seq, err := s.counter.GetNextValue(ctx, employeeNumberCounter)
	if err != nil {
		s.logger.Error("create person sequence failed", zap.Error(err))
		return PersonResponse{}, err
	}

	entity := &Person{
		ID:             uuid.New(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		BirthDate:      birthDate,
		BirthPlace:     req.BirthPlace,
		NationalID:     req.NationalID,
		Nationality:    req.Nationality,
		Gender:         req.Gender,
		MaritalStatus:  req.MaritalStatus,
		Address:        req.Address,
		FatherName:     req.FatherName,
		LastDiploma:    req.LastDiploma,
		DiplomaCountry: req.DiplomaCountry,
		DiplomaYear:    req.DiplomaYear,
		Specialty:      req.Specialty,
		Function:       req.Function,
		EmploymentKind: req.EmploymentKind,
		EmployeeNumber: fmt.Sprintf("EMP-%06d", seq),
		HireDate:       hireDate,
		DepartmentID:   departmentID,
		StructureID:    req.StructureID,
		ManagerID:      req.ManagerID,
		Active:         true,
	}

	if err := qtx.Create(ctx, entity); err != nil {
		s.logger.Error("create person persist failed", zap.Error(err))
		return PersonResponse{}, err
	}

	if err := s.enqueueHiredEvent(ctx, tx, entity); err != nil {
		s.logger.Error("create person outbox failed", zap.Error(err))
		return PersonResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create person commit failed", zap.Error(err))
		return PersonResponse{}, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("create person success",
		zap.String("person_id", entity.ID.String()),
		zap.String("employee_number", entity.EmployeeNumber),
	)
	return ToPersonResponse(entity), nil
}

// enqueueHiredEvent records the hire event in the same transaction as the
// person row, so the worker only ever publishes committed hires.
func (s *service) enqueueHiredEvent(ctx context.Context, tx *sql.Tx, entity *Person) error {
	evt := events.PersonHiredEvent{
		EventType:      "person.hired",
		PersonID:       entity.ID.String(),
		DepartmentID:   entity.DepartmentID.String(),
		EmploymentKind: entity.EmploymentKind,
		HireDate:       entity.HireDate.Format("2006-01-02"),
		OccurredAt:     time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "person",
		AggregateID:   entity.ID.String(),
		EventType:     evt.EventType,
		Topic:         events.PersonHiredTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter PersonFilter) ([]PersonResponse, int64, error) {
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

	persons, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return ToPersonResponseList(persons), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (PersonResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return PersonResponse{}, personerrors.ErrPersonNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return PersonResponse{}, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PersonResponse{}, personerrors.ErrPersonNotFound
		}
		return PersonResponse{}, err
	}
	return ToPersonResponse(entity), nil
}

func (s *service) WorkCertificate(ctx context.Context, p identity.Principal, id string) ([]byte, string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, "", personerrors.ErrPersonNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, "", err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", personerrors.ErrPersonNotFound
		}
		return nil, "", err
	}

	pdf, err := renderWorkCertificate(entity)
	if err != nil {
		s.logger.Error("work certificate render failed",
			zap.String("person_id", id),
			zap.Error(err),
		)
		return nil, "", err
	}

	filename := fmt.Sprintf("work-certificate-%s.pdf", entity.EmployeeNumber)
	return pdf, filename, nil
}

func (s *service) Update(ctx context.Context, p identity.Principal, id string, req UpdatePersonRequest) (PersonResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return PersonResponse{}, err
	}
	if access.PersonID != nil {
		return PersonResponse{}, personerrors.ErrPersonForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PersonResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entity, err := qtx.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PersonResponse{}, personerrors.ErrPersonNotFound
		}
		return PersonResponse{}, err
	}

	applyUpdate(entity, req)

	// A chief may never move a person out of their own department.
	if req.DepartmentID != nil && access.DepartmentID != nil {
		entity.DepartmentID = *access.DepartmentID
	}

	kind, err := qtx.GetDepartmentKind(ctx, entity.DepartmentID.String())
	if err != nil {
		return PersonResponse{}, err
	}
	if kind == "" {
		return PersonResponse{}, personerrors.ErrDepartmentNotFound
	}
	if kind != entity.EmploymentKind {
		return PersonResponse{}, personerrors.ErrEmploymentKindMismatch
	}

	if req.ManagerID != nil {
		if *req.ManagerID == entity.ID {
			return PersonResponse{}, personerrors.ErrSelfManager
		}
		ok, err := qtx.ManagerExists(ctx, req.ManagerID.String())
		if err != nil {
			return PersonResponse{}, err
		}
		if !ok {
			return PersonResponse{}, personerrors.ErrManagerNotFound
		}
	}

	if err := qtx.Update(ctx, entity); err != nil {
		s.logger.Error("update person persist failed",
			zap.String("person_id", id),
			zap.Error(err),
		)
		return PersonResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PersonResponse{}, err
	}

	s.invalidateStats(ctx)
	s.logger.Info("update person success", zap.String("person_id", id))
	return ToPersonResponse(entity), nil
}

func applyUpdate(entity *Person, req UpdatePersonRequest) {
	if req.FirstName != nil {
		entity.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		entity.LastName = *req.LastName
	}
	if req.BirthPlace != nil {
		entity.BirthPlace = *req.BirthPlace
	}
	if req.Nationality != nil {
		entity.Nationality = *req.Nationality
	}
	if req.MaritalStatus != nil {
		entity.MaritalStatus = *req.MaritalStatus
	}
	if req.Address != nil {
		entity.Address = *req.Address
	}
	if req.FatherName != nil {
		entity.FatherName = *req.FatherName
	}
	if req.LastDiploma != nil {
		entity.LastDiploma = *req.LastDiploma
	}
	if req.DiplomaCountry != nil {
		entity.DiplomaCountry = *req.DiplomaCountry
	}
	if req.DiplomaYear != nil {
		entity.DiplomaYear = *req.DiplomaYear
	}
	if req.Specialty != nil {
		entity.Specialty = *req.Specialty
	}
	if req.Function != nil {
		entity.Function = *req.Function
	}
	if req.EmploymentKind != nil {
		entity.EmploymentKind = *req.EmploymentKind
	}
	if req.DepartmentID != nil {
		entity.DepartmentID = *req.DepartmentID
	}
	if req.StructureID != nil {
		entity.StructureID = req.StructureID
	}
	if req.ManagerID != nil {
		entity.ManagerID = req.ManagerID
	}
	if req.Active != nil {
		entity.Active = *req.Active
	}
}

func (s *service) Delete(ctx context.Context, p identity.Principal, id string) error {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return err
	}
	if access.PersonID != nil {
		return personerrors.ErrPersonForbidden
	}

	if _, err := s.repo.FindByID(ctx, access, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return personerrors.ErrPersonNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateStats(ctx)
	s.logger.Info("delete person success", zap.String("person_id", id))
	return nil
}

func (s *service) Statistics(ctx context.Context, p identity.Principal) (PersonStatistics, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return PersonStatistics{}, err
	}

	key := statsCacheKey(access)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, key).Bytes(); err == nil {
			var cached PersonStatistics
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		}
	}

	// Collapse concurrent cache misses into one aggregation per scope.
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.computeStatistics(ctx, access)
	})
	if err != nil {
		return PersonStatistics{}, err
	}
	stats := v.(PersonStatistics)

	if s.cache != nil {
		if raw, err := json.Marshal(stats); err == nil {
			s.cache.Set(ctx, key, raw, statsCacheTTL)
		}
	}
	return stats, nil
}

func (s *service) computeStatistics(ctx context.Context, access scope.Access) (PersonStatistics, error) {
	total, err := s.repo.CountTotal(ctx, access)
	if err != nil {
		return PersonStatistics{}, err
	}
	byGender, err := s.repo.CountGroupedBy(ctx, access, "gender")
	if err != nil {
		return PersonStatistics{}, err
	}
	byNationality, err := s.repo.CountGroupedBy(ctx, access, "nationality")
	if err != nil {
		return PersonStatistics{}, err
	}
	return PersonStatistics{
		Total:         total,
		ByGender:      byGender,
		ByNationality: byNationality,
	}, nil
}

func statsCacheKey(access scope.Access) string {
	switch {
	case access.All:
		return statsCacheKeyPrefix + "all"
	case access.DepartmentID != nil:
		return statsCacheKeyPrefix + "dept:" + access.DepartmentID.String()
	case access.PersonID != nil:
		return statsCacheKeyPrefix + "person:" + access.PersonID.String()
	default:
		return statsCacheKeyPrefix + "none"
	}
}

func (s *service) invalidateStats(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, statsCacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.cache.Del(ctx, iter.Val())
	}
}
