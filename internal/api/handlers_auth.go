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
	"github.com/limbo/regimen/pkg/httputil"
)

const dateLayout = "2006-01-02"

type RegisterRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	Email           string `json:"email,omitempty"`
	Gender          string `json:"gender,omitempty"`
	Birthday        string `json:"birthday,omitempty"`
	Age             int    `json:"age,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req RegisterRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	var birthday *time.Time
	if req.Birthday != "" {
		parsed, err := time.Parse(dateLayout, req.Birthday)
		if err != nil {
			logger.Error("registering error: invalid birthday format")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "birthday must be YYYY-MM-DD", nil)
			return
		}
		birthday = &parsed
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	account, err := s.accountService.Register(ctx, &service.RegisterRequest{
		Username:        req.Username,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		Email:           req.Email,
		Gender:          req.Gender,
		Birthday:        birthday,
		Age:             req.Age,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUsernameTaken):
			logger.Error("registering error: username taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "account with such username already exists", nil)
			return
		case errors.Is(err, errorvalues.ErrValidation):
			logger.Error("registering error: validation failed")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid registration fields", err)
			return
		default:
			logger.Error("registering error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration", nil)
			return
		}
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{
		"account_id": account.ID,
	})
	logger.Info("successful registration")
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req LoginRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	account, err := s.accountService.Login(ctx, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrWrongCredentials):
			logger.Error("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "invalid username or password", nil)
			return
		default:
			logger.Error("login error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login", nil)
			return
		}
	}
	token, err := s.jwtService.GenerateToken(account)
	if err != nil {
		logger.Error("login error: generating token error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{
		"account_id": account.ID,
		"token":      token,
	})
	logger.Info("successful login")
}

// Logout is idempotent. Sessions live in the bearer token, so there is
// nothing server-side to clear; the client drops the token.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	w.WriteHeader(http.StatusNoContent)
	logger.Info("logout")
}
