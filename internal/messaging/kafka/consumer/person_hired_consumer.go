package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"go-sirh/internal/events"
	"go-sirh/internal/payroll"
	payrollerrors "go-sirh/internal/payroll/errors"
)

// ConsumePersonHired opens a draft payroll sheet for the hire month of
// every newly hired person. Duplicate deliveries are absorbed by the
// payroll unique index.
func ConsumePersonHired(
	ctx context.Context,
	reader *kafkago.Reader,
	payrollRepo payroll.Repository,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.person_hired")
	log.Info("person hired consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("person hired consumer stopped")
				return
			}
			log.Error("fetch person hired message failed", zap.Error(err))
			continue
		}

		var event events.PersonHiredEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode person.hired event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		personID, err := uuid.Parse(event.PersonID)
		if err != nil {
			log.Error("person.hired event carries invalid person id",
				zap.String("person_id", event.PersonID),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		// Hire month is the first payroll month.
		month := event.HireDate
		if len(month) >= 7 {
			month = month[:7]
		}

		err = payrollRepo.Create(ctx, &payroll.Payroll{
			ID:       uuid.New(),
			PersonID: personID,
			Month:    month,
			Status:   payroll.StatusInProgress,
		})
		if err != nil {
			if errors.Is(err, payrollerrors.ErrPayrollExists) {
				log.Warn("payroll already opened for hire month, skipping",
					zap.String("person_id", event.PersonID),
					zap.String("month", month),
				)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}

			log.Error("open draft payroll failed",
				zap.String("person_id", event.PersonID),
				zap.String("month", month),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit person hired message failed", zap.Error(err))
			continue
		}

		log.Info("draft payroll opened from person.hired event",
			zap.String("person_id", event.PersonID),
			zap.String("month", month),
		)
	}
}
