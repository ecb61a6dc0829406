package repository

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/pkg/cleanup"
	"github.com/limbo/regimen/pkg/entity"
)

type RoutinesRepository struct {
	conn PgConnection
}

func NewRoutinesRepo(cfg DBConfig) *RoutinesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for routinesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for routinesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &RoutinesRepository{
		conn: pool,
	}
}

func NewRoutinesRepoWithConn(conn PgConnection) *RoutinesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for routinesRepo: " + err.Error())
	}
	return &RoutinesRepository{
		conn: conn,
	}
}

// days are persisted as an ordered comma-joined list, e.g. "Mon,Wed,Fri"
func joinDays(days []string) string {
	return strings.Join(days, ",")
}

func splitDays(raw string) []string {
	if raw == "" {
		return []string{}
	}
	return strings.Split(raw, ",")
}

func (rr *RoutinesRepository) Create(ctx context.Context, routine *entity.Routine) (int64, error) {
	if routine == nil {
		return 0, errors.New("routine is nil")
	}
	var id int64
	row := rr.conn.QueryRow(ctx,
		`INSERT INTO routines (account_id, name, days_of_week) VALUES ($1, $2, $3) RETURNING id;`,
		routine.AccountID,
		routine.Name,
		joinDays(routine.Days),
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return 0, errorvalues.ErrAccountNotFound
			}
		}
		return 0, errors.New("creating routine db error: " + err.Error())
	}
	return id, nil
}

func (rr *RoutinesRepository) GetByID(ctx context.Context, id int64) (*entity.Routine, error) {
	var routine entity.Routine
	var days string
	routine.ID = id
	row := rr.conn.QueryRow(ctx,
		`SELECT account_id, name, days_of_week, created_at FROM routines WHERE id = $1;`, id)
	if err := row.Scan(&routine.AccountID, &routine.Name, &days, &routine.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrRoutineNotFound
		}
		return nil, errors.New("getting routine by id error: " + err.Error())
	}
	routine.Days = splitDays(days)
	return &routine, nil
}

func (rr *RoutinesRepository) GetByAccountID(ctx context.Context, accountID int64) ([]*entity.Routine, error) {
	routines := make([]*entity.Routine, 0)
	rows, err := rr.conn.Query(ctx,
		`SELECT id, account_id, name, days_of_week, created_at FROM routines WHERE account_id = $1 ORDER BY id;`, accountID)
	if err != nil {
		return nil, errors.New("getting routines by account id error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		r := entity.Routine{}
		var days string
		err = rows.Scan(&r.ID, &r.AccountID, &r.Name, &days, &r.CreatedAt)
		if err != nil {
			return nil, errors.New("unmarshalling routine error: " + err.Error())
		}
		r.Days = splitDays(days)
		routines = append(routines, &r)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return routines, nil
}

func (rr *RoutinesRepository) Update(ctx context.Context, routine *entity.Routine) error {
	ct, err := rr.conn.Exec(ctx, `UPDATE routines SET name = $1, days_of_week = $2 WHERE id = $3;`,
		routine.Name, joinDays(routine.Days), routine.ID,
	)
	if err != nil {
		return errors.New("error updating routine: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRoutineNotFound
	}
	return nil
}

// Delete removes the routine, its exercises and their logs in dependency
// order inside one transaction. The store's FK constraints have no
// ON DELETE CASCADE, so the cascade lives here.
func (rr *RoutinesRepository) Delete(ctx context.Context, id int64) error {
	tx, err := rr.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning routine deletion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx,
		`DELETE FROM exercise_logs WHERE exercise_id IN (SELECT id FROM exercises WHERE routine_id = $1);`, id)
	if err != nil {
		return errors.New("deleting routine logs error: " + err.Error())
	}
	_, err = tx.Exec(ctx, `DELETE FROM exercises WHERE routine_id = $1;`, id)
	if err != nil {
		return errors.New("deleting routine exercises error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `DELETE FROM routines WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting routine error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrRoutineNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing routine deletion error: " + err.Error())
	}
	return nil
}
