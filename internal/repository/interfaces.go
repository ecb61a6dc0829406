package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/regimen/pkg/entity"
)

type AccountsRepositoryI interface {
	// Creates new account. Fails with ErrUsernameTaken on a duplicate username
	Create(ctx context.Context, account *entity.Account) (int64, error)
	// Looks up account by username. Can be used for login
	FindByUsername(ctx context.Context, username string) (*entity.Account, error)
	// Looks up account by id. Can be used for authorization middleware
	FindByID(ctx context.Context, id int64) (*entity.Account, error)
}

type RoutinesRepositoryI interface {
	// Creates new routine. In routine only AccountID, Name, Days are necessary
	Create(ctx context.Context, routine *entity.Routine) (int64, error)
	// Searches routine with given id
	GetByID(ctx context.Context, id int64) (*entity.Routine, error)
	// Lists routines owned by account in insertion order
	GetByAccountID(ctx context.Context, accountID int64) ([]*entity.Routine, error)
	// Updates routine name and days by ID (ID in routine is necessary)
	Update(ctx context.Context, routine *entity.Routine) error
	// Deletes routine with id together with its exercises and their logs,
	// in one transaction
	Delete(ctx context.Context, id int64) error
}

type ExercisesRepositoryI interface {
	// Creates new exercise inside a routine
	Create(ctx context.Context, exercise *entity.Exercise) (int64, error)
	// Searches exercise with given id
	GetByID(ctx context.Context, id int64) (*entity.Exercise, error)
	// Resolves the account owning the exercise through its routine
	GetOwnerID(ctx context.Context, id int64) (int64, error)
	// Lists exercises of a routine in insertion order
	GetByRoutineID(ctx context.Context, routineID int64) ([]*entity.Exercise, error)
	// Lists every exercise across the account's routines for the log picker,
	// ordered by routine name then exercise name
	GetOptionsByAccountID(ctx context.Context, accountID int64) ([]entity.ExerciseOption, error)
	// Deletes exercise with id together with its logs, in one transaction
	Delete(ctx context.Context, id int64) error
}

type LogsRepositoryI interface {
	// Creates new exercise log
	Create(ctx context.Context, log *entity.ExerciseLog) (int64, error)
	// Lists account's history joined with routine and exercise names,
	// newest date first, then routine name, then exercise name
	GetByAccountID(ctx context.Context, accountID int64) ([]entity.LogView, error)
	// Deletes log with id
	Delete(ctx context.Context, id int64) error
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
