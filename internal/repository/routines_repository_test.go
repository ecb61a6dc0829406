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

func TestCreateRoutine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRoutinesRepoWithConn(mock)
	routine := entity.Routine{
		AccountID: accountID,
		Name:      "Leg Day",
		Days:      []string{"Mon", "Wed"},
	}
	ctx := context.Background()
	query := regexp.QuoteMeta(`INSERT INTO routines (account_id, name, days_of_week) VALUES ($1, $2, $3) RETURNING id;`)
	t.Run("successfully created", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.AccountID, routine.Name, "Mon,Wed").
			WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(routineID))
		id, err := repo.Create(ctx, &routine)
		assert.NoError(t, err)
		assert.Equal(t, routineID, id)
	})
	t.Run("FK violation", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.AccountID, routine.Name, "Mon,Wed").
			WillReturnError(&pgconn.PgError{Code: "23503"})
		_, err := repo.Create(ctx, &routine)
		assert.ErrorIs(t, err, errorvalues.ErrAccountNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.AccountID, routine.Name, "Mon,Wed").
			WillReturnError(errors.New("db error"))
		_, err := repo.Create(ctx, &routine)
		assert.Error(t, err)
	})
}

func TestGetRoutineByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRoutinesRepoWithConn(mock)
	routine := entity.Routine{
		ID:        routineID,
		AccountID: accountID,
		Name:      "Leg Day",
		Days:      []string{"Mon", "Wed"},
		CreatedAt: time.Now(),
	}
	query := regexp.QuoteMeta(`SELECT account_id, name, days_of_week, created_at FROM routines WHERE id = $1;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.ID).
			WillReturnRows(pgxmock.NewRows([]string{"account_id", "name", "days_of_week", "created_at"}).
				AddRow(routine.AccountID, routine.Name, "Mon,Wed", routine.CreatedAt),
			)
		result, err := repo.GetByID(ctx, routine.ID)
		assert.NoError(t, err)
		assert.Equal(t, routine, *result)
	})
	t.Run("empty days", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.ID).
			WillReturnRows(pgxmock.NewRows([]string{"account_id", "name", "days_of_week", "created_at"}).
				AddRow(routine.AccountID, routine.Name, "", routine.CreatedAt),
			)
		result, err := repo.GetByID(ctx, routine.ID)
		assert.NoError(t, err)
		assert.Empty(t, result.Days)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(routine.ID).
			WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByID(ctx, routine.ID)
		assert.ErrorIs(t, err, errorvalues.ErrRoutineNotFound)
	})
}

func TestGetRoutinesByAccountID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRoutinesRepoWithConn(mock)
	routines := []*entity.Routine{
		{
			ID:        1,
			AccountID: accountID,
			Name:      "Leg Day",
			Days:      []string{"Mon", "Wed"},
			CreatedAt: time.Now(),
		},
		{
			ID:        2,
			AccountID: accountID,
			Name:      "Push Day",
			Days:      []string{"Tue"},
			CreatedAt: time.Now().Add(time.Hour),
		},
	}
	query := regexp.QuoteMeta(`SELECT id, account_id, name, days_of_week, created_at FROM routines WHERE account_id = $1 ORDER BY id;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		rows := pgxmock.NewRows([]string{"id", "account_id", "name", "days_of_week", "created_at"})
		for _, r := range routines {
			rows.AddRow(r.ID, r.AccountID, r.Name, "Mon,Wed", r.CreatedAt)
		}
		mock.ExpectQuery(query).
			WithArgs(accountID).
			WillReturnRows(rows)
		result, err := repo.GetByAccountID(ctx, accountID)
		assert.NoError(t, err)
		assert.Equal(t, len(routines), len(result))
		for i := range result {
			assert.Equal(t, routines[i].ID, result[i].ID)
			assert.Equal(t, []string{"Mon", "Wed"}, result[i].Days)
		}
	})
	t.Run("no routines", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(accountID).
			WillReturnRows(pgxmock.NewRows([]string{"id", "account_id", "name", "days_of_week", "created_at"}))
		result, err := repo.GetByAccountID(ctx, accountID)
		assert.NoError(t, err)
		assert.Empty(t, result)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(query).
			WithArgs(accountID).
			WillReturnError(errors.New("db error"))
		_, err := repo.GetByAccountID(ctx, accountID)
		assert.Error(t, err)
	})
}

func TestUpdateRoutine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRoutinesRepoWithConn(mock)
	routine := entity.Routine{
		ID:        routineID,
		AccountID: accountID,
		Name:      "Leg Day v2",
		Days:      []string{"Fri"},
	}
	query := regexp.QuoteMeta(`UPDATE routines SET name = $1, days_of_week = $2 WHERE id = $3;`)
	ctx := context.Background()
	t.Run("success", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(routine.Name, "Fri", routine.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		assert.NoError(t, repo.Update(ctx, &routine))
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(routine.Name, "Fri", routine.ID).
			WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.Update(ctx, &routine), errorvalues.ErrRoutineNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).
			WithArgs(routine.Name, "Fri", routine.ID).
			WillReturnError(errors.New("db error"))
		assert.Error(t, repo.Update(ctx, &routine))
	})
}

func TestDeleteRoutine(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatal(err)
	}
	repo := repository.NewRoutinesRepoWithConn(mock)
	deleteLogsQuery := regexp.QuoteMeta(`DELETE FROM exercise_logs WHERE exercise_id IN (SELECT id FROM exercises WHERE routine_id = $1);`)
	deleteExercisesQuery := regexp.QuoteMeta(`DELETE FROM exercises WHERE routine_id = $1;`)
	deleteRoutineQuery := regexp.QuoteMeta(`DELETE FROM routines WHERE id = $1;`)
	ctx := context.Background()
	t.Run("cascade deleted", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogsQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 3))
		mock.ExpectExec(deleteExercisesQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 2))
		mock.ExpectExec(deleteRoutineQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 1))
		mock.ExpectCommit()
		assert.NoError(t, repo.Delete(ctx, routineID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("not found rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogsQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(deleteExercisesQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(deleteRoutineQuery).
			WithArgs(routineID).
			WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectRollback()
		assert.ErrorIs(t, repo.Delete(ctx, routineID), errorvalues.ErrRoutineNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("db error rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(deleteLogsQuery).
			WithArgs(routineID).
			WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		assert.Error(t, repo.Delete(ctx, routineID))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
