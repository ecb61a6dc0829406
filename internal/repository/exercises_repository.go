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

type ExercisesRepository struct {
	conn PgConnection
}

func NewExercisesRepo(cfg DBConfig) *ExercisesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for exercisesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for exercisesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ExercisesRepository{
		conn: pool,
	}
}

func NewExercisesRepoWithConn(conn PgConnection) *ExercisesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for exercisesRepo: " + err.Error())
	}
	return &ExercisesRepository{
		conn: conn,
	}
}

func (er *ExercisesRepository) Create(ctx context.Context, exercise *entity.Exercise) (int64, error) {
	if exercise == nil {
		return 0, errors.New("exercise is nil")
	}
	var id int64
	row := er.conn.QueryRow(ctx,
		`INSERT INTO exercises (routine_id, name, sets, reps_or_duration) VALUES ($1, $2, $3, $4) RETURNING id;`,
		exercise.RoutineID,
		exercise.Name,
		exercise.Sets,
		exercise.RepsOrDuration,
	)
	if err := row.Scan(&id); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return 0, errorvalues.ErrRoutineNotFound
			}
		}
		return 0, errors.New("creating exercise db error: " + err.Error())
	}
	return id, nil
}

func (er *ExercisesRepository) GetByID(ctx context.Context, id int64) (*entity.Exercise, error) {
	var exercise entity.Exercise
	exercise.ID = id
	row := er.conn.QueryRow(ctx,
		`SELECT routine_id, name, sets, reps_or_duration FROM exercises WHERE id = $1;`, id)
	if err := row.Scan(&exercise.RoutineID, &exercise.Name, &exercise.Sets, &exercise.RepsOrDuration); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrExerciseNotFound
		}
		return nil, errors.New("getting exercise by id error: " + err.Error())
	}
	return &exercise, nil
}

func (er *ExercisesRepository) GetOwnerID(ctx context.Context, id int64) (int64, error) {
	var accountID int64
	row := er.conn.QueryRow(ctx,
		`SELECT r.account_id FROM exercises e JOIN routines r ON e.routine_id = r.id WHERE e.id = $1;`, id)
	if err := row.Scan(&accountID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, errorvalues.ErrExerciseNotFound
		}
		return 0, errors.New("getting exercise owner error: " + err.Error())
	}
	return accountID, nil
}

func (er *ExercisesRepository) GetByRoutineID(ctx context.Context, routineID int64) ([]*entity.Exercise, error) {
	exercises := make([]*entity.Exercise, 0)
	rows, err := er.conn.Query(ctx,
		`SELECT id, routine_id, name, sets, reps_or_duration FROM exercises WHERE routine_id = $1 ORDER BY id;`, routineID)
	if err != nil {
		return nil, errors.New("getting exercises by routine id error: " + err.Error())
	}
	defer rows.Close()
	for rows.Next() {
		e := entity.Exercise{}
		err = rows.Scan(&e.ID, &e.RoutineID, &e.Name, &e.Sets, &e.RepsOrDuration)
		if err != nil {
			return nil, errors.New("unmarshalling exercise error: " + err.Error())
		}
		exercises = append(exercises, &e)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return exercises, nil
}

func (er *ExercisesRepository) GetOptionsByAccountID(ctx context.Context, accountID int64) ([]entity.ExerciseOption, error) {
	rows, err := er.conn.Query(ctx,
		`SELECT e.id, r.name, e.name FROM routines r JOIN exercises e ON r.id = e.routine_id WHERE r.account_id = $1 ORDER BY r.name, e.name;`,
		accountID,
	)
	if err != nil {
		return nil, errors.New("getting exercise options error: " + err.Error())
	}
	defer rows.Close()
	options := make([]entity.ExerciseOption, 0)
	for rows.Next() {
		o := entity.ExerciseOption{}
		err = rows.Scan(&o.ExerciseID, &o.RoutineName, &o.ExerciseName)
		if err != nil {
			return nil, errors.New("unmarshalling exercise option error: " + err.Error())
		}
		options = append(options, o)
	}
	if rows.Err() != nil {
		return nil, errors.New("unexpected error after scanning: " + rows.Err().Error())
	}
	return options, nil
}

// Delete removes the exercise's logs first, then the exercise itself,
// inside one transaction.
func (er *ExercisesRepository) Delete(ctx context.Context, id int64) error {
	tx, err := er.conn.Begin(ctx)
	if err != nil {
		return errors.New("beginning exercise deletion tx error: " + err.Error())
	}
	defer tx.Rollback(ctx)
	_, err = tx.Exec(ctx, `DELETE FROM exercise_logs WHERE exercise_id = $1;`, id)
	if err != nil {
		return errors.New("deleting exercise logs error: " + err.Error())
	}
	ct, err := tx.Exec(ctx, `DELETE FROM exercises WHERE id = $1;`, id)
	if err != nil {
		return errors.New("deleting exercise error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrExerciseNotFound
	}
	if err = tx.Commit(ctx); err != nil {
		return errors.New("committing exercise deletion error: " + err.Error())
	}
	return nil
}
