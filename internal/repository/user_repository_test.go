package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"

	"github.com/rayhank/busflow/internal/model"
)

func newUserRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(db), mock
}

func TestCreateUser(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), "  User@Example.COM ", "Test User", "s3cret", model.RolePassenger, 4)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if id != 5 {
		t.Errorf("id = %d, want 5", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'user@example.com' for key 'uq_users_email'"})

	_, err := repo.Create(context.Background(), "user@example.com", "Test User", "s3cret", model.RolePassenger, 4)
	if err != ErrEmailExists {
		t.Fatalf("create error = %v, want ErrEmailExists", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCountByRole(t *testing.T) {
	repo, mock := newUserRepo(t)

	mock.ExpectQuery("SELECT role, COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"role", "count"}).
			AddRow(model.RolePassenger, 12).
			AddRow(model.RoleDriver, 3).
			AddRow(model.RoleAdmin, 1))

	counts, err := repo.CountByRole(context.Background())
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if counts[model.RolePassenger] != 12 || counts[model.RoleDriver] != 3 || counts[model.RoleAdmin] != 1 {
		t.Errorf("counts = %v", counts)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
