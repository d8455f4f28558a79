package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockSettingsRepository(t *testing.T) (*GormSettingsRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSettingsRepository(gormDB), mock, mockDB
}

func TestGormSettingsRepository_GetOrCreate(t *testing.T) {
	t.Run("returns the existing row", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()
		rowID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "user_id", "finance_enabled", "version"}).
			AddRow(rowID, userID, true, 1)

		mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		s, err := repo.GetOrCreate(context.Background(), userID)

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, userID, s.UserID)
		assert.True(t, s.FinanceEnabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("inserts defaults on first read", func(t *testing.T) {
		repo, mock, mockDB := newMockSettingsRepository(t)
		defer mockDB.Close()

		userID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		mock.ExpectExec(`INSERT INTO "user_settings" .* ON CONFLICT \("user_id"\) DO NOTHING`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		rowID := uuid.New()
		rows := sqlmock.NewRows([]string{"id", "user_id", "finance_enabled", "version"}).
			AddRow(rowID, userID, false, 1)
		mock.ExpectQuery(`SELECT \* FROM "user_settings" WHERE user_id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(userID, 1).
			WillReturnRows(rows)

		s, err := repo.GetOrCreate(context.Background(), userID)

		assert.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, userID, s.UserID)
		assert.False(t, s.FinanceEnabled)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
