package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/pkg/cleanup"
	"github.com/limbo/regimen/pkg/entity"
)

type AccountsRepository struct {
	conn PgConnection
}

func NewAccountsRepo(cfg DBConfig) *AccountsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for accountsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for accountsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &AccountsRepository{
		conn: pool,
	}
}

func NewAccountsRepoWithConn(conn PgConnection) *AccountsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for accountsRepo: " + err.Error())
	}
	return &AccountsRepository{
		conn: conn,
	}
}

func (ar *AccountsRepository) Create(ctx context.Context, account *entity.Account) (int64, error) {
	if account == nil {
		return 0, errors.New("account is nil")
	}
	var id int64
	row := ar.conn.QueryRow(ctx,
		`INSERT INTO accounts (username, password_hash, email, gender, birthday, age) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		account.Username,
		account.PasswordHash,
		account.Email,
		account.Gender,
		account.Birthday,
		account.Age,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// Unique violation
			case "23505":
				return 0, errorvalues.ErrUsernameTaken
			}
		}
		return 0, errors.New("creating account db error: " + err.Error())
	}
	return id, nil
}

func (ar *AccountsRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	var account entity.Account
	row := ar.conn.QueryRow(ctx,
		`SELECT id, username, password_hash, email, gender, birthday, age FROM accounts WHERE username = $1;`, username)
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash,
		&account.Email, &account.Gender, &account.Birthday, &account.Age); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrAccountNotFound
		}
		return nil, errors.New("searching account by username error: " + err.Error())
	}
	return &account, nil
}

func (ar *AccountsRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var account entity.Account
	row := ar.conn.QueryRow(ctx,
		`SELECT id, username, password_hash, email, gender, birthday, age FROM accounts WHERE id = $1;`, id)
	if err := row.Scan(&account.ID, &account.Username, &account.PasswordHash,
		&account.Email, &account.Gender, &account.Birthday, &account.Age); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrAccountNotFound
		}
		return nil, errors.New("searching account by id error: " + err.Error())
	}
	return &account, nil
}
