package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
)

func setupMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	db := sqlx.NewDb(mockDB, "sqlmock")
	t.Cleanup(func() { db.Close() })

	return db, mock
}

func TestFollowRepository_Create_NewEdge(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO follows")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	created, err := repo.Create(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Error("expected created=true for a new edge")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFollowRepository_Create_DuplicateIsNoOp(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	// ON CONFLICT DO NOTHING reports zero rows affected for the duplicate
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO follows")).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	created, err := repo.Create(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Error("expected created=false for an existing edge")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFollowRepository_Delete(t *testing.T) {
	tests := []struct {
		name         string
		rowsAffected int64
		wantDeleted  bool
	}{
		{"edge present", 1, true},
		{"edge absent", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := setupMockDB(t)
			repo := NewFollowRepository(db)

			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM follows WHERE follower_id = $1 AND author_id = $2")).
				WithArgs(int64(1), int64(2)).
				WillReturnResult(sqlmock.NewResult(0, tt.rowsAffected))

			deleted, err := repo.Delete(context.Background(), 1, 2)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if deleted != tt.wantDeleted {
				t.Errorf("deleted = %v, want %v", deleted, tt.wantDeleted)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("unmet expectations: %v", err)
			}
		})
	}
}

func TestFollowRepository_Exists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFollowRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM follows")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected exists=true")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
