package service

import (
	"context"
	"errors"
	"log"

	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/pkg/entity"
)

type LogsService struct {
	logsRepo      repository.LogsRepositoryI
	exercisesRepo repository.ExercisesRepositoryI
}

func NewLogsService(logsRepo repository.LogsRepositoryI, exercisesRepo repository.ExercisesRepositoryI) *LogsService {
	if logsRepo == nil || exercisesRepo == nil {
		log.Fatal("provided nil repos to logs service")
	}
	return &LogsService{
		logsRepo:      logsRepo,
		exercisesRepo: exercisesRepo,
	}
}

func (ls *LogsService) RecordLog(ctx context.Context, accountID int64, req *RecordLogRequest) (int64, error) {
	if err := validateRequest(*req); err != nil {
		return 0, err
	}
	ownerID, err := ls.exercisesRepo.GetOwnerID(ctx, req.ExerciseID)
	if err != nil {
		if errors.Is(err, errorvalues.ErrExerciseNotFound) {
			return 0, err
		}
		return 0, errors.New("exercises repository error: " + err.Error())
	}
	if ownerID != accountID {
		return 0, errorvalues.ErrWrongOwner
	}
	id, err := ls.logsRepo.Create(ctx, &entity.ExerciseLog{
		AccountID:            accountID,
		ExerciseID:           req.ExerciseID,
		LogDate:              req.LogDate,
		ActualSets:           req.ActualSets,
		ActualRepsOrDuration: req.ActualRepsOrDuration,
		Completed:            req.Completed,
	})
	if err != nil {
		if errors.Is(err, errorvalues.ErrExerciseNotFound) {
			return 0, err
		}
		return 0, errors.New("logs repository error: " + err.Error())
	}
	return id, nil
}

func (ls *LogsService) GetAccountLogs(ctx context.Context, accountID int64) ([]entity.LogView, error) {
	logs, err := ls.logsRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		return nil, errors.New("logs repository error: " + err.Error())
	}
	return logs, nil
}

func (ls *LogsService) ListExerciseOptions(ctx context.Context, accountID int64) ([]entity.ExerciseOption, error) {
	options, err := ls.exercisesRepo.GetOptionsByAccountID(ctx, accountID)
	if err != nil {
		return nil, errors.New("exercises repository error: " + err.Error())
	}
	return options, nil
}

func (ls *LogsService) DeleteLog(ctx context.Context, logID int64) error {
	err := ls.logsRepo.Delete(ctx, logID)
	if err != nil {
		// already gone counts as deleted
		if errors.Is(err, errorvalues.ErrLogNotFound) {
			return nil
		}
		return errors.New("logs repository error: " + err.Error())
	}
	return nil
}
