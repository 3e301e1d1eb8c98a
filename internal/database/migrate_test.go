package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationNames(t *testing.T) {
	up, err := MigrationNames("up")
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_override_store.up.sql"}, up)

	down, err := MigrationNames("down")
	require.NoError(t, err)
	assert.Equal(t, []string{"000001_create_override_store.down.sql"}, down)
}

func TestRunMigrations(t *testing.T) {
	t.Run("Up", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE override_store")).WillReturnResult(sqlmock.NewResult(0, 0))

		require.NoError(t, RunMigrations(context.Background(), db, "up"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ExecError", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		execErr := errors.New("ORA-00955: name is already used by an existing object")
		mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE override_store")).WillReturnError(execErr)

		err = RunMigrations(context.Background(), db, "up")
		assert.ErrorIs(t, err, execErr)
		assert.Contains(t, err.Error(), "000001_create_override_store.up.sql")
	})

	t.Run("UnknownDirection", func(t *testing.T) {
		assert.Error(t, RunMigrations(context.Background(), nil, "sideways"))
	})
}
