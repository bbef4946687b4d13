// Command paydue executes the scheduled payments due today.
//
// It is intended to be invoked by cron once per day; the process itself
// holds no timer. Payments that fail (for example on insufficient balance)
// are logged and skipped, so a failing definition never blocks the rest of
// the daily run.
package main

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/go-petr/pay-ledger/internal/schedulerepo"
	"github.com/go-petr/pay-ledger/internal/scheduleservice"
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

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer conn.Close()

	transferService := transferservice.New(transferrepo.NewRepoPGS(conn))
	scheduleService := scheduleservice.New(schedulerepo.NewRepoPGS(conn), transferService)

	logger := log.Logger
	ctx := logger.WithContext(context.Background())

	day := int32(time.Now().Day())

	run, err := scheduleService.RunDue(ctx, day)
	if err != nil {
		logger.Fatal().Err(err).Int32("day", day).Msg("scheduled payments run failed")
	}

	logger.Info().
		Int32("day", day).
		Int("completed", len(run.Transfers)).
		Int("failed", len(run.Failed)).
		Msg("scheduled payments run done")
}
