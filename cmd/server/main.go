package main

import (
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/go-petr/pay-ledger/internal/accountdelivery"
	"github.com/go-petr/pay-ledger/internal/accountrepo"
	"github.com/go-petr/pay-ledger/internal/accountservice"
	"github.com/go-petr/pay-ledger/internal/middleware"
	"github.com/go-petr/pay-ledger/internal/scheduledelivery"
	"github.com/go-petr/pay-ledger/internal/schedulerepo"
	"github.com/go-petr/pay-ledger/internal/scheduleservice"
	"github.com/go-petr/pay-ledger/internal/transferdelivery"
	"github.com/go-petr/pay-ledger/internal/transferrepo"
	"github.com/go-petr/pay-ledger/internal/transferservice"
	"github.com/go-petr/pay-ledger/pkg/configpkg"
	"github.com/go-petr/pay-ledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server := createServer(conn, logger)

	if err := server.Run(config.ServerAddress); err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger) *gin.Engine {
	accountRepo := accountrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)
	scheduleRepo := schedulerepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	transferService := transferservice.New(transferRepo)
	scheduleService := scheduleservice.New(scheduleRepo, transferService)

	accountHandler := accountdelivery.NewHandler(accountService)
	transferHandler := transferdelivery.NewHandler(transferService)
	scheduleHandler := scheduledelivery.NewHandler(scheduleService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/accounts", accountHandler.Create)
	server.GET("/accounts/:id", accountHandler.Get)
	server.GET("/accounts", accountHandler.List)

	server.POST("/transfers", transferHandler.Create)
	server.GET("/transfers/:id", transferHandler.Get)
	server.GET("/transfers", transferHandler.List)

	server.POST("/scheduled-payments", scheduleHandler.Create)
	server.GET("/scheduled-payments/:id", scheduleHandler.Get)
	server.GET("/scheduled-payments", scheduleHandler.List)
	server.POST("/scheduled-payments/:id/trigger", scheduleHandler.Trigger)

	return server
}
