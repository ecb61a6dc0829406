// @title Regimen API
// @description API for the exercise-routine tracker "Regimen"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/regimen/internal/api"
	"github.com/limbo/regimen/internal/credentials"
	"github.com/limbo/regimen/internal/repository"
	"github.com/limbo/regimen/internal/service"
	"github.com/limbo/regimen/pkg/cleanup"
	"github.com/limbo/regimen/pkg/config"
	jwtservice "github.com/limbo/regimen/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	defer cleanup.CleanUp()
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	hasher := credentials.FromScheme(cfg.GetStringDefault("CREDENTIAL_SCHEME", credentials.SchemeSHA256))
	routinesRepo := repository.NewRoutinesRepo(&dbCfg)
	exercisesRepo := repository.NewExercisesRepo(&dbCfg)
	accountService := service.NewAccountService(repository.NewAccountsRepo(&dbCfg), hasher)
	routinesService := service.NewRoutinesService(routinesRepo, exercisesRepo)
	logsService := service.NewLogsService(repository.NewLogsRepo(&dbCfg), exercisesRepo)
	serv := api.New(&api.ServicesList{
		AccountService:  accountService,
		RoutinesService: routinesService,
		LogsService:     logsService,
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
