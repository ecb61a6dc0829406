package repository

import (
	"context"
	"errors"
	"log"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/pkg/cleanup"
	"github.com/limbo/regimen/pkg/entity"
)

type LogsRepository struct {
	conn PgConnection
}

func NewLogsRepo(cfg DBConfig) *LogsRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for logsRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for logsRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &LogsRepository{
		conn: pool,
	}
}

func NewLogsRepoWithConn(conn PgConnection) *LogsRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for logsRepo: " + err.Error())
	}
	return &LogsRepository{
		conn: conn,
	}
}

func (lr *LogsRepository) Create(ctx context.Context, exLog *entity.ExerciseLog) (int64, error) {
	if exLog == nil {
		return 0, errors.New("log is nil")
	}
	var id int64
	row := lr.conn.QueryRow(ctx,
		`INSERT INTO exercise_logs (account_id, exercise_id, log_date, actual_sets, actual_reps_or_duration, completed) VALUES ($1, $2, $3, $4, $5, $6) RETURNING id;`,
		exLog.AccountID,
		exLog.ExerciseID,
		exLog.LogDate,
		exLog.ActualSets,
		exLog.ActualRepsOrDuration,
		exLog.Completed,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return 0, errorvalues.ErrExerciseNotFound
			}
		}
		return 0, errors.New("creating log db error: " + err.Error())
	}
	return id, nil
}

func (lr *LogsRepository) GetByAccountID(ctx context.Context, accountID int64) ([]entity.LogView, error) {
	rows, err := lr.conn.Query(ctx,
		`SELECT el.id, el.log_date, r.name, e.name, el.actual_sets, el.actual_reps_or_duration, el.completed FROM exercise_logs el JOIN exercises e ON el.exercise_id = e.id JOIN routines r ON e.routine_id = r.id WHERE el.account_id = $1 ORDER BY el.log_date DESC, r.name, e.name;`,
		accountID,
	)
	if err != nil {
		return nil, errors.New("getting logs by account id error: " + err.Error())
	}
	defer rows.Close()
	result := make([]entity.LogView, 0)
	for rows.Next() {
		lv := entity.LogView{}
		err = rows.Scan(&lv.LogID, &lv.LogDate, &lv.RoutineName, &lv.ExerciseName,
			&lv.ActualSets, &lv.ActualRepsOrDuration, &lv.Completed)
		if err != nil {
			return nil, errors.New("unmarshalling log row error: " + err.Error())
		}
		result = append(result, lv)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return result, nil
}

func (lr *LogsRepository) Delete(ctx context.Context, id int64) error {
	ct, err := lr.conn.Exec(ctx, `DELETE FROM exercise_logs WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting log error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrLogNotFound
	}
	return nil
}
