package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/service"
	"github.com/limbo/regimen/pkg/entity"
	"github.com/limbo/regimen/pkg/httputil"
)

type RecordLogRequest struct {
	ExerciseID           int64  `json:"exercise_id"`
	LogDate              string `json:"log_date"`
	ActualSets           int    `json:"actual_sets"`
	ActualRepsOrDuration string `json:"actual_reps_or_duration"`
	Completed            bool   `json:"completed"`
}

type GetLogsResponse struct {
	AccountID int64            `json:"account_id"`
	Logs      []entity.LogView `json:"logs"`
}

type GetExerciseOptionsResponse struct {
	AccountID int64                   `json:"account_id"`
	Options   []entity.ExerciseOption `json:"options"`
}

func (s *Server) CreateLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("create log error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RecordLogRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create log error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	logDate, err := time.Parse(dateLayout, req.LogDate)
	if err != nil {
		logger.Error("create log error: invalid log date format")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "log_date must be YYYY-MM-DD", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	id, err := s.logsService.RecordLog(ctx, accountID, &service.RecordLogRequest{
		ExerciseID:           req.ExerciseID,
		LogDate:              logDate,
		ActualSets:           req.ActualSets,
		ActualRepsOrDuration: req.ActualRepsOrDuration,
		Completed:            req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create log error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "exercise and log date are required", err)
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("create log error: exercise doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "exercise doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("create log error: exercise has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "exercise doesn't exist", nil)
		default:
			logger.Error("create log error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while recording log", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"log_id": id})
	logger.Info("log recorded")
}

func (s *Server) GetLogs(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("get logs error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	logs, err := s.logsService.GetAccountLogs(ctx, accountID)
	if err != nil {
		logger.Error("getting logs list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting logs list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetLogsResponse{
		AccountID: accountID,
		Logs:      logs,
	})
	logger.Info("logs provided")
}

func (s *Server) GetExerciseOptions(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("get exercise options error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	options, err := s.logsService.ListExerciseOptions(ctx, accountID)
	if err != nil {
		logger.Error("getting exercise options error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting exercise options", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetExerciseOptionsResponse{
		AccountID: accountID,
		Options:   options,
	})
	logger.Info("exercise options provided")
}

func (s *Server) DeleteLog(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	_, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("log deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		logger.Error("log deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid log id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.logsService.DeleteLog(ctx, id)
	if err != nil {
		logger.Error("log deletion error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting log", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("log deleted")
}
