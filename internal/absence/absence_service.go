package absence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	absenceerrors "go-sirh/internal/absence/errors"
	"go-sirh/internal/events"
	"go-sirh/internal/identity"
	"go-sirh/internal/messaging/kafka"
	"go-sirh/internal/scope"
	"go-sirh/internal/shared/apperror"
	"go-sirh/internal/shared/contextutil"
)

//go:generate mockgen -source=absence_service.go -destination=mock/absence_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, p identity.Principal, req CreateAbsenceRequest) (AbsenceResponse, error)
	GetAll(ctx context.Context, p identity.Principal, filter AbsenceFilter) ([]AbsenceResponse, int64, error)
	GetByID(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error)
	Approve(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error)
	Reject(ctx context.Context, p identity.Principal, id string, req RejectAbsenceRequest) (AbsenceResponse, error)
	Cancel(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error)
	BulkDecide(ctx context.Context, p identity.Principal, req BulkDecideRequest) (BulkDecideResponse, error)
	StatisticsByType(ctx context.Context, p identity.Principal, from, to string) ([]TypeCount, error)
	Current(ctx context.Context, p identity.Principal) ([]AbsenceResponse, error)
	Planning(ctx context.Context, p identity.Principal, filter PlanningFilter) ([]PlanningDay, error)
}

type service struct {
	db       *sql.DB
	repo     Repository
	outbox   kafka.OutboxRepository
	resolver scope.Resolver
	logger   *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	resolver scope.Resolver,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("absence.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("absence.service")
	}
	return &service{db: db, repo: repo, outbox: outbox, resolver: resolver, logger: l}
}

func (s *service) Create(ctx context.Context, p identity.Principal, req CreateAbsenceRequest) (AbsenceResponse, error) {
	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return AbsenceResponse{}, err
	}

	// Employees request for themselves; chiefs and admins may file on
	// behalf of any person they can see.
	var personID uuid.UUID
	switch {
	case access.PersonID != nil:
		personID = *access.PersonID
	case req.PersonID != nil:
		visible, err := s.repo.PersonVisible(ctx, access, req.PersonID.String())
		if err != nil {
			return AbsenceResponse{}, err
		}
		if !visible {
			return AbsenceResponse{}, absenceerrors.ErrPersonNotVisible
		}
		personID = *req.PersonID
	default:
		return AbsenceResponse{}, apperror.RequiredField("person_id")
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		return AbsenceResponse{}, absenceerrors.ErrInvalidDate
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		return AbsenceResponse{}, absenceerrors.ErrInvalidDate
	}
	if end.Before(start) {
		return AbsenceResponse{}, absenceerrors.ErrInvalidDateRange
	}

	entity := &Absence{
		ID:        uuid.New(),
		PersonID:  personID,
		Type:      req.Type,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    StatusPending,
	}

	if err := s.repo.Create(ctx, entity); err != nil {
		s.logger.Error("create absence persist failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	s.logger.Info("create absence success",
		zap.String("absence_id", entity.ID.String()),
		zap.String("person_id", personID.String()),
		zap.Int("duration_days", entity.DurationDays()),
	)
	return toResponse(entity), nil
}

func (s *service) GetAll(ctx context.Context, p identity.Principal, filter AbsenceFilter) ([]AbsenceResponse, int64, error) {
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

	absences, total, err := s.repo.FindAll(ctx, access, filter)
	if err != nil {
		return nil, 0, err
	}
	return toResponseList(absences), total, nil
}

func (s *service) GetByID(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
	}

	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return AbsenceResponse{}, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}
	return toResponse(entity), nil
}

func (s *service) Approve(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error) {
	return s.decide(ctx, p, id, StatusApproved, "")
}

func (s *service) Reject(ctx context.Context, p identity.Principal, id string, req RejectAbsenceRequest) (AbsenceResponse, error) {
	return s.decide(ctx, p, id, StatusRejected, req.Reason)
}

// decide runs one approval or rejection in its own transaction. Bulk
// decisions reuse it row by row so one bad row never drags the rest down.
func (s *service) decide(ctx context.Context, p identity.Principal, id string, decision string, reason string) (AbsenceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
	}
	if decision == StatusRejected && strings.TrimSpace(reason) == "" {
		return AbsenceResponse{}, absenceerrors.ErrRejectReasonRequired
	}

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return AbsenceResponse{}, err
	}
	if access.PersonID != nil {
		return AbsenceResponse{}, absenceerrors.ErrNotApprover
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return AbsenceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	entity, err := qtx.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}

	// A chief only decides for their own department. Out-of-department
	// rows are already filtered by the scope, so reaching here with a
	// department mismatch cannot happen; the check stays for admins
	// impersonation bugs to surface loudly.
	if access.DepartmentID != nil {
		dept, err := qtx.GetPersonDepartment(ctx, entity.PersonID.String())
		if err != nil {
			return AbsenceResponse{}, err
		}
		if dept != access.DepartmentID.String() {
			return AbsenceResponse{}, absenceerrors.ErrNotApprover
		}
	}

	if entity.Status != StatusPending {
		return AbsenceResponse{}, absenceerrors.ErrNotPending
	}

	now := time.Now().UTC()
	entity.Status = decision
	entity.DecisionReason = strings.TrimSpace(reason)
	entity.DecidedBy = &p.UserID
	entity.DecidedAt = &now

	if err := qtx.Update(ctx, entity); err != nil {
		s.logger.Error("decide absence persist failed",
			zap.String("absence_id", id),
			zap.Error(err),
		)
		return AbsenceResponse{}, err
	}

	if err := s.enqueueDecidedEvent(ctx, tx, entity); err != nil {
		s.logger.Error("decide absence outbox failed", zap.Error(err))
		return AbsenceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("decide absence success",
		zap.String("absence_id", id),
		zap.String("decision", decision),
	)
	return toResponse(entity), nil
}

func (s *service) enqueueDecidedEvent(ctx context.Context, tx *sql.Tx, entity *Absence) error {
	evt := events.AbsenceDecidedEvent{
		EventType:  "absence.decided",
		AbsenceID:  entity.ID.String(),
		PersonID:   entity.PersonID.String(),
		Status:     entity.Status,
		DecidedBy:  entity.DecidedBy.String(),
		OccurredAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "absence",
		AggregateID:   entity.ID.String(),
		EventType:     evt.EventType,
		Topic:         events.AbsenceDecidedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) Cancel(ctx context.Context, p identity.Principal, id string) (AbsenceResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
	}

	access, err := s.resolver.ResolveForWrite(ctx, p)
	if err != nil {
		return AbsenceResponse{}, err
	}

	entity, err := s.repo.FindByID(ctx, access, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AbsenceResponse{}, absenceerrors.ErrAbsenceNotFound
		}
		return AbsenceResponse{}, err
	}

	// Admins and chiefs cancel any request their write scope reaches;
	// everyone else only their own. Either way only while still pending.
	if !access.All && access.DepartmentID == nil {
		if p.PersonID == nil || *p.PersonID != entity.PersonID {
			return AbsenceResponse{}, absenceerrors.ErrNotOwner
		}
	}
	if entity.Status != StatusPending {
		return AbsenceResponse{}, absenceerrors.ErrCancelNotPending
	}

	entity.Status = StatusCancelled
	if err := s.repo.Update(ctx, entity); err != nil {
		return AbsenceResponse{}, err
	}

	s.logger.Info("cancel absence success", zap.String("absence_id", id))
	return toResponse(entity), nil
}

func (s *service) BulkDecide(ctx context.Context, p identity.Principal, req BulkDecideRequest) (BulkDecideResponse, error) {
	if req.Decision == StatusRejected && strings.TrimSpace(req.Reason) == "" {
		return BulkDecideResponse{}, absenceerrors.ErrRejectReasonRequired
	}

	resp := BulkDecideResponse{
		Requested: len(req.AbsenceIDs),
		Results:   make([]BulkDecideRowResult, 0, len(req.AbsenceIDs)),
	}

	for _, absenceID := range req.AbsenceIDs {
		row := BulkDecideRowResult{AbsenceID: absenceID}

		_, err := s.decide(ctx, p, absenceID.String(), req.Decision, req.Reason)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			row.Error = httpErr.Message
			row.ErrorCode = httpErr.Code
			resp.Failed++
		} else {
			row.Success = true
			resp.Processed++
		}
		resp.Results = append(resp.Results, row)
	}

	s.logger.Info("bulk decide finished",
		zap.Int("requested", resp.Requested),
		zap.Int("processed", resp.Processed),
		zap.Int("failed", resp.Failed),
	)
	return resp, nil
}

func (s *service) StatisticsByType(ctx context.Context, p identity.Principal, from, to string) ([]TypeCount, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	var fromT, toT *time.Time
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, absenceerrors.ErrInvalidDate
		}
		fromT = &t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, absenceerrors.ErrInvalidDate
		}
		toT = &t
	}

	return s.repo.CountByType(ctx, access, fromT, toT)
}

func (s *service) Current(ctx context.Context, p identity.Principal) ([]AbsenceResponse, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	absences, err := s.repo.FindCurrent(ctx, access)
	if err != nil {
		return nil, err
	}
	return toResponseList(absences), nil
}

func (s *service) Planning(ctx context.Context, p identity.Principal, filter PlanningFilter) ([]PlanningDay, error) {
	access, err := s.resolver.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	from, err := time.Parse("2006-01-02", filter.From)
	if err != nil {
		return nil, absenceerrors.ErrInvalidDate
	}
	to, err := time.Parse("2006-01-02", filter.To)
	if err != nil {
		return nil, absenceerrors.ErrInvalidDate
	}
	if to.Before(from) {
		return nil, absenceerrors.ErrInvalidDateRange
	}

	return s.repo.Planning(ctx, access, from, to, filter.IncludePending)
}
