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

var docColumns = []string{"id", "filename", "storage_path", "size", "content_type", "owner", "created_at"}

func TestDocumentPostgres_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	now := time.Now().UTC()
	doc := &model.Document{
		ID:          "test-uuid",
		Filename:    "test.txt",
		StoragePath: "documents/test-uuid",
		Size:        123,
		ContentType: "text/plain",
		Owner:       "admin",
		CreatedAt:   now,
	}

	rows := sqlmock.NewRows(docColumns).
		AddRow(doc.ID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.Owner, doc.CreatedAt)

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(doc.ID, doc.Filename, doc.StoragePath, doc.Size, doc.ContentType, doc.Owner, doc.CreatedAt).
		WillReturnRows(rows)

	result, err := repo.Create(ctx, doc)

	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, doc.ID, result.ID)
	assert.Equal(t, doc.Owner, result.Owner)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows(docColumns).
			AddRow("test-id", "file.txt", "documents/test-id", 100, "text/plain", "admin", time.Now())

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("test-id").
			WillReturnRows(rows)

		doc, err := repo.FindByID(ctx, "test-id")

		assert.NoError(t, err)
		assert.NotNil(t, doc)
		assert.Equal(t, "test-id", doc.ID)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE id = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		doc, err := repo.FindByID(ctx, "missing")

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, doc)
	})
}

func TestDocumentPostgres_ListByOwner(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	t.Run("returns owner documents in creation order", func(t *testing.T) {
		first := time.Now().Add(-time.Hour)
		second := time.Now()
		rows := sqlmock.NewRows(docColumns).
			AddRow("id-1", "a.txt", "documents/id-1", 5, "text/plain", "admin", first).
			AddRow("id-2", "b.txt", "documents/id-2", 9, "text/plain", "admin", second)

		mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner = (.+) ORDER BY created_at ASC").
			WithArgs("admin").
			WillReturnRows(rows)

		items, err := repo.ListByOwner(ctx, "admin")

		assert.NoError(t, err)
		assert.Len(t, items, 2)
		assert.Equal(t, "id-1", items[0].ID)
		assert.Equal(t, "id-2", items[1].ID)
	})

	t.Run("no documents yields empty slice", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM documents WHERE owner = (.+) ORDER BY created_at ASC").
			WithArgs("nobody").
			WillReturnRows(sqlmock.NewRows(docColumns))

		items, err := repo.ListByOwner(ctx, "nobody")

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})
}

func TestDocumentPostgres_Delete(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewDocumentPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM documents WHERE id = ?").
		WithArgs("test-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Delete(ctx, "test-id")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
