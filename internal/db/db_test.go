package db

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = sqlDB.Close()
	})

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return gdb, mock
}

// Colunas timestamptz exigem tstzrange; tsrange falharia na resolução da
// função e deixaria o banco sem a constraint de exclusão.
func TestApplyExclusionConstraint_UsesTstzrange(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE appointments\s+ADD CONSTRAINT appointments_no_overlap\s+EXCLUDE USING gist \(\s+barber_id WITH =,\s+tstzrange\(start_time, end_time\) WITH &&\s+\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	applyExclusionConstraint(gdb, zap.NewNop())
}

func TestApplyExclusionConstraint_ExistingConstraintIsFine(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectExec(`CREATE EXTENSION IF NOT EXISTS btree_gist`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`ALTER TABLE appointments`).
		WillReturnError(&pgconn.PgError{Code: "42710"})

	applyExclusionConstraint(gdb, zap.NewNop())
}
