package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/limbo/regimen/pkg/entity"
)

type RegisterRequest struct {
	Username        string `validate:"required,alphanum_underscore,min=3,max=100"`
	Password        string `validate:"required,max=72"`
	PasswordConfirm string `validate:"required,eqfield=Password"`
	Email           string `validate:"omitempty,email"`
	Gender          string `validate:"omitempty,max=32"`
	Birthday        *time.Time
	Age             int `validate:"omitempty,min=0,max=120"`
}

type RoutineRequest struct {
	Name string   `validate:"required,max=200"`
	Days []string `validate:"required,min=1,dive,weekday"`
}

type ExerciseRequest struct {
	Name           string `validate:"required,max=200"`
	Sets           int    `validate:"omitempty,min=0"`
	RepsOrDuration string `validate:"omitempty,max=200"`
}

type RecordLogRequest struct {
	ExerciseID           int64     `validate:"required"`
	LogDate              time.Time `validate:"required"`
	ActualSets           int       `validate:"omitempty,min=0"`
	ActualRepsOrDuration string    `validate:"omitempty,max=200"`
	Completed            bool
}

type AccountServiceI interface {
	// Validates credentials and profile fields, creates new row in database.
	// Returns account data with ID
	Register(ctx context.Context, req *RegisterRequest) (*entity.Account, error)
	// Compares given credentials. If ok, gives back account data with ID.
	// Failure never says whether the username or the password was wrong
	Login(ctx context.Context, username, password string) (*entity.Account, error)
	GetByID(ctx context.Context, id int64) (*entity.Account, error)
}

type RoutinesServiceI interface {
	CreateRoutine(ctx context.Context, accountID int64, req *RoutineRequest) (*entity.Routine, error)
	GetAccountRoutines(ctx context.Context, accountID int64) ([]*entity.Routine, error)
	UpdateRoutine(ctx context.Context, routineID, accountID int64, req *RoutineRequest) error
	// Two-phase deletion: a request arms a single-use token which must be
	// confirmed before it expires
	RequestDeleteRoutine(ctx context.Context, routineID, accountID int64) (uuid.UUID, error)
	ConfirmDeleteRoutine(ctx context.Context, token uuid.UUID, accountID int64) error
	AddExercise(ctx context.Context, routineID, accountID int64, req *ExerciseRequest) (*entity.Exercise, error)
	GetRoutineExercises(ctx context.Context, routineID, accountID int64) ([]*entity.Exercise, error)
	DeleteExercise(ctx context.Context, exerciseID, accountID int64) error
}

type LogsServiceI interface {
	RecordLog(ctx context.Context, accountID int64, req *RecordLogRequest) (int64, error)
	GetAccountLogs(ctx context.Context, accountID int64) ([]entity.LogView, error)
	ListExerciseOptions(ctx context.Context, accountID int64) ([]entity.ExerciseOption, error)
	// Deleting an already-deleted log is a no-op success
	DeleteLog(ctx context.Context, logID int64) error
}
