package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/regimen/internal/error_values"
	"github.com/limbo/regimen/internal/service"
	"github.com/limbo/regimen/pkg/entity"
	"github.com/limbo/regimen/pkg/httputil"
)

type RoutineRequest struct {
	Name string   `json:"name"`
	Days []string `json:"days"`
}

type ExerciseRequest struct {
	Name           string `json:"name"`
	Sets           int    `json:"sets"`
	RepsOrDuration string `json:"reps_or_duration"`
}

type ConfirmDeletionRequest struct {
	Token string `json:"token"`
}

type GetRoutinesResponse struct {
	AccountID int64             `json:"account_id"`
	Routines  []*entity.Routine `json:"routines"`
}

type GetExercisesResponse struct {
	RoutineID int64              `json:"routine_id"`
	Exercises []*entity.Exercise `json:"exercises"`
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func (s *Server) CreateRoutine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("create routine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req RoutineRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create routine error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	routine, err := s.routinesService.CreateRoutine(ctx, accountID, &service.RoutineRequest{
		Name: req.Name,
		Days: req.Days,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create routine error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "routine name and at least one weekday are required", err)
		case errors.Is(err, errorvalues.ErrAccountNotFound):
			logger.Error("create routine error: account doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "couldn't create routine: account doesn't exist", nil)
		default:
			logger.Error("create routine error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating routine", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"routine_id": routine.ID})
	logger.Info("routine created")
}

func (s *Server) GetRoutines(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("get routines error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	routines, err := s.routinesService.GetAccountRoutines(ctx, accountID)
	if err != nil {
		logger.Error("getting routines list error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting routines list", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetRoutinesResponse{
		AccountID: accountID,
		Routines:  routines,
	})
	logger.Info("routines provided")
}

func (s *Server) UpdateRoutine(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("update routine error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		logger.Error("update routine error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine id in path value", nil)
		return
	}
	var req RoutineRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update routine error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.routinesService.UpdateRoutine(ctx, id, accountID, &service.RoutineRequest{
		Name: req.Name,
		Days: req.Days,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("update routine error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "routine name and at least one weekday are required", err)
		case errors.Is(err, errorvalues.ErrRoutineNotFound):
			logger.Error("update routine error: routine doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("update routine error: routine has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		default:
			logger.Error("update routine error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating routine", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"routine_id": id})
	logger.Info("routine updated")
}

func (s *Server) RequestRoutineDeletion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("routine deletion request error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		logger.Error("routine deletion request error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	token, err := s.routinesService.RequestDeleteRoutine(ctx, id, accountID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoutineNotFound):
			logger.Error("routine deletion request error: routine doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("routine deletion request error: routine has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		default:
			logger.Error("routine deletion request error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while requesting routine deletion", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"token": token.String()})
	logger.Info("routine deletion armed")
}

func (s *Server) ConfirmRoutineDeletion(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("routine deletion confirm error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req ConfirmDeletionRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("routine deletion confirm error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	token, err := uuid.Parse(req.Token)
	if err != nil {
		logger.Error("routine deletion confirm error: invalid token format")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid confirmation token", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.routinesService.ConfirmDeleteRoutine(ctx, token, accountID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrConfirmationNotFound):
			logger.Error("routine deletion confirm error: unknown token")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no pending deletion for token", nil)
		case errors.Is(err, errorvalues.ErrConfirmationExpired):
			logger.Error("routine deletion confirm error: token expired")
			httputil.WriteErrorResponse(w, http.StatusGone, "deletion confirmation expired, request again", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("routine deletion confirm error: token armed by different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "no pending deletion for token", nil)
		case errors.Is(err, errorvalues.ErrRoutineNotFound):
			logger.Error("routine deletion confirm error: routine already gone")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		default:
			logger.Error("routine deletion confirm error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting routine", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("routine deleted")
}

func (s *Server) CreateExercise(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("create exercise error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	routineID, err := pathID(r)
	if err != nil {
		logger.Error("create exercise error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine id in path value", nil)
		return
	}
	var req ExerciseRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create exercise error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	exercise, err := s.routinesService.AddExercise(ctx, routineID, accountID, &service.ExerciseRequest{
		Name:           req.Name,
		Sets:           req.Sets,
		RepsOrDuration: req.RepsOrDuration,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("create exercise error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "exercise name is required", err)
		case errors.Is(err, errorvalues.ErrRoutineNotFound):
			logger.Error("create exercise error: routine doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("create exercise error: routine has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		default:
			logger.Error("create exercise error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating exercise", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"exercise_id": exercise.ID})
	logger.Info("exercise created")
}

func (s *Server) GetExercises(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("get exercises error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	routineID, err := pathID(r)
	if err != nil {
		logger.Error("get exercises error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid routine id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*15)
	defer cancel()
	exercises, err := s.routinesService.GetRoutineExercises(ctx, routineID, accountID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrRoutineNotFound):
			logger.Error("get exercises error: routine doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("get exercises error: routine has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "routine doesn't exist", nil)
		default:
			logger.Error("getting exercises list error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting exercises list", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, GetExercisesResponse{
		RoutineID: routineID,
		Exercises: exercises,
	})
	logger.Info("exercises provided")
}

func (s *Server) DeleteExercise(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	accountID, err := GetAccountIDFromContext(r)
	if err != nil {
		logger.Error("exercise deletion error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	id, err := pathID(r)
	if err != nil {
		logger.Error("exercise deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid exercise id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.routinesService.DeleteExercise(ctx, id, accountID)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrExerciseNotFound):
			logger.Error("exercise deletion error: exercise doesn't exist")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "exercise doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrWrongOwner):
			logger.Error("exercise deletion error: exercise has different owner")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "exercise doesn't exist", nil)
		default:
			logger.Error("exercise deletion error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting exercise", nil)
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("exercise deleted")
}
