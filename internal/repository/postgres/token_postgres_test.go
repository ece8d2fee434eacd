package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"docvault/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestTokenPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewTokenPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	token := &model.Token{Digest: "abc123", Username: "admin", IssuedAt: now}

	mock.ExpectExec("INSERT INTO tokens").
		WithArgs(token.Digest, token.Username, token.IssuedAt, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.Create(ctx, token))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenPostgres_FindByDigest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewTokenPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		issued := time.Now().UTC()
		rows := sqlmock.NewRows([]string{"digest", "username", "issued_at", "expires_at"}).
			AddRow("abc123", "admin", issued, nil)

		mock.ExpectQuery("SELECT (.+) FROM tokens WHERE digest = ?").
			WithArgs("abc123").
			WillReturnRows(rows)

		token, err := repo.FindByDigest(ctx, "abc123")

		assert.NoError(t, err)
		assert.NotNil(t, token)
		assert.Equal(t, "admin", token.Username)
		assert.Nil(t, token.ExpiresAt)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM tokens WHERE digest = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		token, err := repo.FindByDigest(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, token)
	})
}

func TestTokenPostgres_DeleteByDigest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewTokenPostgres(db)
	ctx := context.Background()

	t.Run("deletes existing token", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tokens WHERE digest = ?").
			WithArgs("abc123").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.DeleteByDigest(ctx, "abc123"))
	})

	t.Run("deleting absent token is not an error", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM tokens WHERE digest = ?").
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.NoError(t, repo.DeleteByDigest(ctx, "missing"))
	})
}
