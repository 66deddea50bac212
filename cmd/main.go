package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/saeidalz13/battleship-solo/api"
	"github.com/saeidalz13/battleship-solo/db"
	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

func main() {
	if os.Getenv("STAGE") != api.StageProd {
		if err := godotenv.Load(".env"); err != nil {
			panic(err)
		}
	}
	stage := os.Getenv("STAGE")
	if stage != api.StageDev && stage != api.StageProd {
		panic("stage must be either dev or prod")
	}

	zerolog.TimeFieldFormat = time.RFC3339
	if stage == api.StageDev {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		panic(err)
	}

	cfg := mb.DefaultConfig()
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	bsm := mc.NewBattleshipSessionManager()
	bmm := mb.NewBattleshipMatchManager(cfg)

	var analytics *sqlc.AnalyticsManager
	if psqlUrl := os.Getenv("DATABASE_URL"); psqlUrl != "" {
		analytics = sqlc.NewDbManager(db.MustConnectToDb(psqlUrl)).Analytics
	} else {
		log.Warn().Msg("DATABASE_URL not set; analytics disabled")
	}

	rp := api.NewRequestProcessor(bsm, bmm, analytics, api.WithStage(stage), api.WithAllowedOrigins(os.Getenv("ALLOWED_ORIGIN")))

	if analytics != nil {
		ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
		if err := analytics.EnsureServer(ctx, rp.ServerInet()); err != nil {
			panic(err)
		}
		cancel()
	}

	go bsm.CleanupPeriodically()
	go bmm.CleanupPeriodically()

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)

	log.Info().Int("port", port).Str("stage", stage).Msg("listening")
	log.Fatal().Err(http.ListenAndServe(fmt.Sprintf("0.0.0.0:%d", port), mux)).Msg("server stopped")
}
