package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atpsolar/credential-service/internal/logger"
	"github.com/atpsolar/credential-service/migrations"
	"github.com/atpsolar/credential-service/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func newTestUserRepo(t *testing.T) (*userRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.Nop()
	repo := &userRepository{
		db: &DB{
			DB:                 db,
			dialect:            migrations.DialectPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			retryAttempts:      1,
			logger:             l,
		},
		logger: l,
	}
	return repo, mock, db
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func userRows(users ...models.User) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"user_id", "email", "password_hash", "phone", "role", "created_at"})
	for _, u := range users {
		rows.AddRow(u.UserID, u.Email, u.PasswordHash, u.Phone, u.Role, u.CreatedAt)
	}
	return rows
}

func TestCreateUser_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{
		Email:        "john@solar.example",
		PasswordHash: "$2a$10$hash",
		Phone:        "0123",
		Role:         "user",
	}

	stored := user
	stored.UserID = 1
	stored.CreatedAt = time.Now()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(user.Email, user.PasswordHash, user.Phone, user.Role).
		WillReturnRows(userRows(stored))

	created, err := repo.CreateUser(ctx, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.UserID != 1 {
		t.Errorf("expected UserID=1, got %d", created.UserID)
	}
	if created.Email != user.Email {
		t.Errorf("expected email %s, got %s", user.Email, created.Email)
	}
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	ctx := context.Background()
	user := models.User{Email: "john@solar.example"}

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.CreateUser(ctx, user)
	if !errors.Is(err, ErrEmailAlreadyExists) {
		t.Errorf("expected ErrEmailAlreadyExists, got: %v", err)
	}
}

func TestCreateUser_UnexpectedDBError(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(pgError(pgerrcode.SyntaxError))

	_, err := repo.CreateUser(context.Background(), models.User{Email: "x@solar.example"})
	if !errors.Is(err, ErrExecutingStatement) {
		t.Errorf("expected ErrExecutingStatement, got: %v", err)
	}
}

func TestFindUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	stored := models.User{
		UserID:       7,
		Email:        "anna@solar.example",
		PasswordHash: "$2a$10$hash",
		Phone:        "0456",
		Role:         "admin",
		CreatedAt:    time.Now(),
	}

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs(stored.Email).
		WillReturnRows(userRows(stored))

	found, err := repo.FindUserByEmail(context.Background(), stored.Email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.UserID != 7 {
		t.Errorf("expected UserID=7, got %d", found.UserID)
	}
	if found.Role != "admin" {
		t.Errorf("expected role admin, got %s", found.Role)
	}
}

func TestFindUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM users").
		WithArgs("ghost@solar.example").
		WillReturnRows(userRows())

	_, err := repo.FindUserByEmail(context.Background(), "ghost@solar.example")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Errorf("expected ErrNoUserWasFound, got: %v", err)
	}
}

func TestListUsers_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	now := time.Now()
	first := models.User{UserID: 1, Email: "a@solar.example", PasswordHash: "h1", Role: "user", CreatedAt: now}
	second := models.User{UserID: 2, Email: "b@solar.example", PasswordHash: "h2", Role: "admin", CreatedAt: now}

	mock.ExpectQuery("SELECT .+ FROM users").
		WillReturnRows(userRows(first, second))

	users, err := repo.ListUsers(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Email != "a@solar.example" || users[1].Email != "b@solar.example" {
		t.Errorf("unexpected listing order: %v", users)
	}
}

func TestDeleteUserByEmail_Success(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("john@solar.example").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.DeleteUserByEmail(context.Background(), "john@solar.example"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteUserByEmail_NotFound(t *testing.T) {
	repo, mock, db := newTestUserRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("ghost@solar.example").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteUserByEmail(context.Background(), "ghost@solar.example")
	if !errors.Is(err, ErrNoUserWasFound) {
		t.Errorf("expected ErrNoUserWasFound, got: %v", err)
	}
}

func TestWithRetry_RetriesRetryableErrors(t *testing.T) {
	l := logger.Nop()
	db := &DB{
		errorClassificator: NewPostgresErrorClassifier(),
		retryAttempts:      3,
		logger:             l,
	}

	calls := 0
	err := db.withRetry(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return pgError(pgerrcode.ConnectionFailure)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
}

func TestWithRetry_DoesNotRetryNonRetryable(t *testing.T) {
	l := logger.Nop()
	db := &DB{
		errorClassificator: NewPostgresErrorClassifier(),
		retryAttempts:      3,
		logger:             l,
	}

	calls := 0
	err := db.withRetry(context.Background(), func(ctx context.Context) error {
		calls++
		return pgError(pgerrcode.UniqueViolation)
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 attempt, got %d", calls)
	}
}
