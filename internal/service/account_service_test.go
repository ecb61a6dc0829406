package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/limbo/regimen/internal/credentials"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/internal/service"
	"github.com/limbo/regimen/pkg/entity"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestMain(m *testing.M) {
	service.InitValidator()
	m.Run()
}

func TestAccountServiceIntegrational(t *testing.T) {
	dbCfg := setupTestDB(t)
	repo := repository.NewAccountsRepo(dbCfg)
	hasher := &credentials.SHA256Hasher{}
	as := service.NewAccountService(repo, hasher)
	ctx := context.Background()
	username := "test_account"
	password := "pw123"
	var account *entity.Account
	var err error
	t.Run("registered account", func(t *testing.T) {
		account, err = as.Register(ctx, &service.RegisterRequest{
			Username:        username,
			Password:        password,
			PasswordConfirm: password,
			Email:           "alice@example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, username, account.Username)
		assert.NotZero(t, account.ID)
		assert.True(t, hasher.Verify(password, account.PasswordHash))
	})
	t.Run("error registering already existed username", func(t *testing.T) {
		_, err = as.Register(ctx, &service.RegisterRequest{
			Username:        username,
			Password:        "pw456",
			PasswordConfirm: "pw456",
		})
		assert.ErrorIs(t, err, errorvalues.ErrUsernameTaken)
	})
	t.Run("error registering with mismatched confirmation", func(t *testing.T) {
		_, err := as.Register(ctx, &service.RegisterRequest{
			Username:        "another_account",
			Password:        "pw123",
			PasswordConfirm: "pw124",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("error registering with empty password", func(t *testing.T) {
		_, err := as.Register(ctx, &service.RegisterRequest{
			Username:        "another_account",
			Password:        "",
			PasswordConfirm: "",
		})
		assert.ErrorIs(t, err, errorvalues.ErrValidation)
	})
	t.Run("login", func(t *testing.T) {
		res, err := as.Login(ctx, username, password)
		assert.NoError(t, err)
		assert.Equal(t, *account, *res)
	})
	t.Run("error login with wrong password", func(t *testing.T) {
		_, err := as.Login(ctx, username, "wrongpw")
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("error login on unexisted account", func(t *testing.T) {
		_, err := as.Login(ctx, "nobody", password)
		assert.ErrorIs(t, err, errorvalues.ErrWrongCredentials)
	})
	t.Run("found by id", func(t *testing.T) {
		res, err := as.GetByID(ctx, account.ID)
		assert.NoError(t, err)
		assert.Equal(t, *account, *res)
	})
	t.Run("not found by id", func(t *testing.T) {
		_, err := as.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, errorvalues.ErrAccountNotFound)
	})
}

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("regimen"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}
	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func seedAccount(t *testing.T, connStr, username string) int64 {
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	var id int64
	err = conn.QueryRow(`INSERT INTO accounts (username, password_hash) VALUES ($1, $2) RETURNING id;`,
		username, "pass_hash").Scan(&id)
	if err != nil {
		t.Fatal(err)
	}
	return id
}
