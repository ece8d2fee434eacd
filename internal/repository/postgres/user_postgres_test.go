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

var userColumns = []string{"username", "password_hash", "role", "created_at"}

func TestUserPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	user := &model.User{Username: "alice", PasswordHash: "$2a$10$hash", Role: "user"}

	rows := sqlmock.NewRows(userColumns).
		AddRow(user.Username, user.PasswordHash, user.Role, time.Now())

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Username, user.PasswordHash, user.Role).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, user)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "alice", result.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserPostgres_FindByUsername(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(userColumns).
			AddRow("alice", "$2a$10$hash", "user", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
			WithArgs("alice").
			WillReturnRows(rows)

		user, err := repo.FindByUsername(ctx, "alice")

		assert.NoError(t, err)
		assert.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "user", user.Role)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM users WHERE username = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		user, err := repo.FindByUsername(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, user)
	})
}

func TestUserPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("updates existing user", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("alice", "$2a$10$newhash", "admin").
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Update(ctx, &model.User{Username: "alice", PasswordHash: "$2a$10$newhash", Role: "admin"})
		assert.NoError(t, err)
	})

	t.Run("missing user maps to ErrNoRows", func(t *testing.T) {
		mock.ExpectExec("UPDATE users").
			WithArgs("ghost", "$2a$10$hash", "user").
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Update(ctx, &model.User{Username: "ghost", PasswordHash: "$2a$10$hash", Role: "user"})
		assert.ErrorIs(t, err, sql.ErrNoRows)
	})
}

func TestUserPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewUserPostgres(db)
	ctx := context.Background()

	t.Run("deletes existing user", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE username = ?").
			WithArgs("alice").
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Delete(ctx, "alice"))
	})

	t.Run("missing user maps to ErrNoRows", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM users WHERE username = ?").
			WithArgs("ghost").
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, repo.Delete(ctx, "ghost"), sql.ErrNoRows)
	})
}
