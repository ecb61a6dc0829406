package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/pkg/entity"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
)

var (
	accountID  = int64(1)
	routineID  = int64(7)
	exerciseID = int64(42)
)

func TestCreateAccount(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewAccountsRepoWithConn(mock)
	birthday := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	account := entity.Account{
		Username:     "test_account",
		PasswordHash: "digest",
		Email:        "test@example.com",
		Gender:       "other",
		Birthday:     &birthday,
		Age:          25,
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO accounts (username, password_hash, email, gender, birthday, age) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`)
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.Username, account.PasswordHash, account.Email, account.Gender, account.Birthday, account.Age).
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(accountID))
		id, err := repo.Create(ctx, &account)
		assert.NoError(t, err)
		assert.Equal(t, accountID, id)
	})
	t.Run("unique violation", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.Username, account.PasswordHash, account.Email, account.Gender, account.Birthday, account.Age).
			WillReturnError(&pgconn.PgError{Code: "23505"})
		_, err := repo.Create(ctx, &account)
		assert.ErrorIs(t, err, errorvalues.ErrUsernameTaken)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.Username, account.PasswordHash, account.Email, account.Gender, account.Birthday, account.Age).
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &account)
		assert.Error(t, err)
	})
	t.Run("nil account", func(t *testing.T) {
		_, err := repo.Create(ctx, nil)
		assert.Error(t, err)
	})
}

func TestFindAccountByUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewAccountsRepoWithConn(mock)
	account := entity.Account{
		ID:           accountID,
		Username:     "test_account",
		PasswordHash: "digest",
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, username, password_hash, email, gender, birthday, age FROM accounts WHERE username = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.Username).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "email", "gender", "birthday", "age"}).
				AddRow(account.ID, account.Username, account.PasswordHash, account.Email, account.Gender, account.Birthday, account.Age),
			)
		result, err := repo.FindByUsername(ctx, account.Username)
		assert.NoError(t, err)
		assert.Equal(t, account, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs("unexisted").
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByUsername(ctx, "unexisted")
		assert.ErrorIs(t, err, errorvalues.ErrAccountNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.Username).
			WillReturnError(errors.New("db error"))
		_, err := repo.FindByUsername(ctx, account.Username)
		assert.Error(t, err)
	})
}

func TestFindAccountByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewAccountsRepoWithConn(mock)
	account := entity.Account{
		ID:           accountID,
		Username:     "test_account",
		PasswordHash: "digest",
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`SELECT id, username, password_hash, email, gender, birthday, age FROM accounts WHERE id = $1;`)
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(account.ID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password_hash", "email", "gender", "birthday", "age"}).
				AddRow(account.ID, account.Username, account.PasswordHash, account.Email, account.Gender, account.Birthday, account.Age),
			)
		result, err := repo.FindByID(ctx, account.ID)
		assert.NoError(t, err)
		assert.Equal(t, account, *result)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(int64(999)).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, errorvalues.ErrAccountNotFound)
	})
}
