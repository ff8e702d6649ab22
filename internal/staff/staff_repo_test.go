package staff

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_WithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("statements join the caller's transaction", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer poolDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		txMock.ExpectExec(`UPDATE "persons" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectExec(`INSERT INTO "teaching_staffs"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectCommit()

		repo := NewRepository(gormDB).WithTx(tx)

		personID := uuid.New()
		assert.NoError(t, repo.SetPersonEmploymentKind(ctx, personID.String(), "TEACHING"))
		assert.NoError(t, repo.UpsertTeaching(ctx, &TeachingStaff{
			PersonID:    personID,
			Grade:       GradeLecturer,
			WeeklyHours: 12,
		}))
		assert.NoError(t, tx.Commit())

		// Nothing may reach the pool handle while the tx is in play.
		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("rollback discards both writes", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer poolDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		txMock.ExpectExec(`UPDATE "persons" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		txMock.ExpectRollback()

		repo := NewRepository(gormDB).WithTx(tx)

		assert.NoError(t, repo.SetPersonEmploymentKind(ctx, uuid.NewString(), "CONTRACT"))
		assert.NoError(t, tx.Rollback())

		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})

	t.Run("base repository keeps using the pool", func(t *testing.T) {
		poolDB, poolMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer poolDB.Close()

		gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: poolDB}), &gorm.Config{})
		assert.NoError(t, err)

		txDB, txMock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		assert.NoError(t, err)
		defer txDB.Close()

		txMock.ExpectBegin()
		tx, err := txDB.Begin()
		assert.NoError(t, err)

		repo := NewRepository(gormDB)
		_ = repo.WithTx(tx)

		poolMock.ExpectBegin()
		poolMock.ExpectExec(`UPDATE "persons" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		poolMock.ExpectCommit()

		assert.NoError(t, repo.SetPersonEmploymentKind(ctx, uuid.NewString(), "TEACHING"))

		assert.NoError(t, poolMock.ExpectationsWereMet())
		assert.NoError(t, txMock.ExpectationsWereMet())
	})
}
