package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const selectReactionForUpdate = `SELECT * FROM "reactions" WHERE user_id = $1 AND post_id = $2 ORDER BY "reactions"."id" LIMIT $3 FOR UPDATE`

func TestReactionRepository_Toggle(t *testing.T) {
	ctx := context.Background()

	t.Run("no existing row inserts", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewReactionRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectReactionForUpdate)).
			WithArgs(1, 5, 1).
			WillReturnError(gorm.ErrRecordNotFound)
		mock.ExpectQuery(`INSERT INTO "reactions"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
		mock.ExpectCommit()

		reaction, outcome, err := repo.Toggle(ctx, 1, 5, "fire")
		require.NoError(t, err)
		assert.Equal(t, ToggleAdded, outcome)
		require.NotNil(t, reaction)
		assert.Equal(t, uint(11), reaction.ID)
		assert.Equal(t, "fire", reaction.Kind)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("same kind removes", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewReactionRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectReactionForUpdate)).
			WithArgs(1, 5, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "kind"}).
				AddRow(11, 5, 1, "fire"))
		mock.ExpectExec(`DELETE FROM "reactions"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		reaction, outcome, err := repo.Toggle(ctx, 1, 5, "fire")
		require.NoError(t, err)
		assert.Equal(t, ToggleRemoved, outcome)
		assert.Nil(t, reaction)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("different kind replaces kind and refreshes created_at", func(t *testing.T) {
		db, mock := setupMockDB(t)
		repo := NewReactionRepository(db)

		stale := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
		mock.ExpectBegin()
		mock.ExpectQuery(regexp.QuoteMeta(selectReactionForUpdate)).
			WithArgs(1, 5, 1).
			WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "user_id", "kind", "created_at"}).
				AddRow(11, 5, 1, "fire", stale))
		// Both columns must be written; a kind-only update would leave the
		// replacement carrying the old reaction's timestamp.
		mock.ExpectExec(regexp.QuoteMeta(`UPDATE "reactions" SET "created_at"=$1,"kind"=$2 WHERE "id" = $3`)).
			WithArgs(sqlmock.AnyArg(), "clap", 11).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		reaction, outcome, err := repo.Toggle(ctx, 1, 5, "clap")
		require.NoError(t, err)
		assert.Equal(t, ToggleUpdated, outcome)
		require.NotNil(t, reaction)
		assert.Equal(t, "clap", reaction.Kind)
		assert.True(t, reaction.CreatedAt.After(stale))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReactionRepository_ListByPost(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewReactionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "post_id", "user_id", "kind"}).
		AddRow(1, 5, 1, "fire").
		AddRow(2, 5, 2, "heart")
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "reactions" WHERE post_id = $1 ORDER BY created_at ASC`)).
		WithArgs(5).
		WillReturnRows(rows)

	reactions, err := repo.ListByPost(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, reactions, 2)
	assert.Equal(t, "heart", reactions[1].Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}
