package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/regimen/internal/service"
)

type Server struct {
	mx              *chi.Mux
	accountService  service.AccountServiceI
	routinesService service.RoutinesServiceI
	logsService     service.LogsServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	AccountService  service.AccountServiceI
	RoutinesService service.RoutinesServiceI
	LogsService     service.LogsServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:              chi.NewMux(),
		accountService:  servicesOptions.AccountService,
		routinesService: servicesOptions.RoutinesService,
		logsService:     servicesOptions.LogsService,
		jwtService:      servicesOptions.JwtService,
	}
}

func (s *Server) Run(address string) error {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Post("/auth/logout", s.Logout)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Get("/routines", s.GetRoutines)
			r.Post("/routines", s.CreateRoutine)
			r.Put("/routines/{id}", s.UpdateRoutine)
			r.Post("/routines/{id}/delete-request", s.RequestRoutineDeletion)
			r.Post("/routines/delete-confirm", s.ConfirmRoutineDeletion)
			r.Get("/routines/{id}/exercises", s.GetExercises)
			r.Post("/routines/{id}/exercises", s.CreateExercise)
			r.Delete("/exercises/{id}", s.DeleteExercise)
			r.Get("/exercises/options", s.GetExerciseOptions)
			r.Get("/logs", s.GetLogs)
			r.Post("/logs", s.CreateLog)
			r.Delete("/logs/{id}", s.DeleteLog)
		})
	})
	return http.ListenAndServe(address, s.mx)
}
