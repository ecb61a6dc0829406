package service

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/pkg/entity"
)

type RoutinesService struct {
	routinesRepo  repository.RoutinesRepositoryI
	exercisesRepo repository.ExercisesRepositoryI
	confirmations *confirmationStore
}

func NewRoutinesService(routinesRepo repository.RoutinesRepositoryI, exercisesRepo repository.ExercisesRepositoryI) *RoutinesService {
	if routinesRepo == nil || exercisesRepo == nil {
		log.Fatal("provided nil repos to routines service")
	}
	return &RoutinesService{
		routinesRepo:  routinesRepo,
		exercisesRepo: exercisesRepo,
		confirmations: newConfirmationStore(),
	}
}

func validateRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	if validationError, ok := err.(validator.ValidationErrors); ok {
		err = errorvalues.ErrValidation
		for _, fieldErr := range validationError {
			err = errors.Join(err, fieldErr)
		}
		return err
	}
	return errors.New("validation unexpected error: " + err.Error())
}

func validateRoutineRequest(req RoutineRequest) error {
	err := validateRequest(req)
	if err == nil {
		return nil
	}
	if req.Name == "" {
		err = errors.Join(err, errorvalues.ErrEmptyRoutineName)
	}
	if len(req.Days) == 0 {
		err = errors.Join(err, errorvalues.ErrNoDaysSelected)
	}
	return err
}

func validateExerciseRequest(req ExerciseRequest) error {
	err := validateRequest(req)
	if err == nil {
		return nil
	}
	if req.Name == "" {
		err = errors.Join(err, errorvalues.ErrEmptyExerciseName)
	}
	return err
}

func (rs *RoutinesService) CreateRoutine(ctx context.Context, accountID int64, req *RoutineRequest) (*entity.Routine, error) {
	if err := validateRoutineRequest(*req); err != nil {
		return nil, err
	}
	routine := entity.Routine{
		AccountID: accountID,
		Name:      req.Name,
		Days:      req.Days,
	}
	id, err := rs.routinesRepo.Create(ctx, &routine)
	if err != nil {
		if errors.Is(err, errorvalues.ErrAccountNotFound) {
			return nil, err
		}
		return nil, errors.New("routines repository error: " + err.Error())
	}
	routine.ID = id
	return &routine, nil
}

func (rs *RoutinesService) GetAccountRoutines(ctx context.Context, accountID int64) ([]*entity.Routine, error) {
	routines, err := rs.routinesRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, errors.New("routines repository error: " + err.Error())
	}
	return routines, nil
}

func (rs *RoutinesService) UpdateRoutine(ctx context.Context, routineID, accountID int64, req *RoutineRequest) error {
	if err := validateRoutineRequest(*req); err != nil {
		return err
	}
	routine, err := rs.routinesRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return err
		}
		return errors.New("routines repository error: " + err.Error())
	}
	if routine.AccountID != accountID {
		return errorvalues.ErrWrongOwner
	}
	routine.Name = req.Name
	routine.Days = req.Days
	err = rs.routinesRepo.Update(ctx, routine)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return err
		}
		return errors.New("routines repository error: " + err.Error())
	}
	return nil
}

// RequestDeleteRoutine arms deletion of a routine and hands back a
// single-use confirmation token. Nothing is deleted until the token is
// confirmed; unused tokens expire.
func (rs *RoutinesService) RequestDeleteRoutine(ctx context.Context, routineID, accountID int64) (uuid.UUID, error) {
	routine, err := rs.routinesRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return uuid.UUID{}, err
		}
		return uuid.UUID{}, errors.New("routines repository error: " + err.Error())
	}
	if routine.AccountID != accountID {
		return uuid.UUID{}, errorvalues.ErrWrongOwner
	}
	return rs.confirmations.Arm(routineID, accountID), nil
}

func (rs *RoutinesService) ConfirmDeleteRoutine(ctx context.Context, token uuid.UUID, accountID int64) error {
	routineID, err := rs.confirmations.Take(token, accountID)
	if err != nil {
		return err
	}
	err = rs.routinesRepo.Delete(ctx, routineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return err
		}
		return errors.New("routines repository error: " + err.Error())
	}
	return nil
}

func (rs *RoutinesService) AddExercise(ctx context.Context, routineID, accountID int64, req *ExerciseRequest) (*entity.Exercise, error) {
	if err := validateExerciseRequest(*req); err != nil {
		return nil, err
	}
	routine, err := rs.routinesRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return nil, err
		}
		return nil, errors.New("routines repository error: " + err.Error())
	}
	if routine.AccountID != accountID {
		return nil, errorvalues.ErrWrongOwner
	}
	exercise := entity.Exercise{
		RoutineID:      routineID,
		Name:           req.Name,
		Sets:           req.Sets,
		RepsOrDuration: req.RepsOrDuration,
	}
	id, err := rs.exercisesRepo.Create(ctx, &exercise)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return nil, err
		}
		return nil, errors.New("exercises repository error: " + err.Error())
	}
	exercise.ID = id
	return &exercise, nil
}

func (rs *RoutinesService) GetRoutineExercises(ctx context.Context, routineID, accountID int64) ([]*entity.Exercise, error) {
	routine, err := rs.routinesRepo.GetByID(ctx, routineID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrRoutineNotFound) {
			return nil, err
		}
		return nil, errors.New("routines repository error: " + err.Error())
	}
	if routine.AccountID != accountID {
		return nil, errorvalues.ErrWrongOwner
	}
	exercises, err := rs.exercisesRepo.GetByRoutineID(ctx, routineID)
	if err != nil {
		return nil, errors.New("exercises repository error: " + err.Error())
	}
	return exercises, nil
}

func (rs *RoutinesService) DeleteExercise(ctx context.Context, exerciseID, accountID int64) error {
	ownerID, err := rs.exercisesRepo.GetOwnerID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrExerciseNotFound) {
			return err
		}
		return errors.New("exercises repository error: " + err.Error())
	}
	if ownerID != accountID {
		return errorvalues.ErrWrongOwner
	}
	err = rs.exercisesRepo.Delete(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrExerciseNotFound) {
			return err
		}
		return errors.New("exercises repository error: " + err.Error())
	}
	return nil
}
