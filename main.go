package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/psychic/internal/catalog"
	"github.com/robalobadob/psychic/internal/config"
	"github.com/robalobadob/psychic/internal/game"
	"github.com/robalobadob/psychic/internal/history"
	"github.com/robalobadob/psychic/internal/httpserver"
	"github.com/robalobadob/psychic/internal/hub"
	"github.com/robalobadob/psychic/internal/presenter"
	"github.com/robalobadob/psychic/internal/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := catalog.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word catalog")
	}

	db, err := history.Open(cfg.HistoryDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("open history db")
	}
	defer db.Close()
	if err := history.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate history db")
	}
	board := history.NewStore(db)

	p := presenter.New(game.New(catalog.List(), game.CryptoSource, game.WithLookup(catalog.Canonical)), schedule.Clock{}, presenter.Options{
		RoundDelay:   cfg.RoundDelay,
		SessionDelay: cfg.SessionDelay,
		Recorder:     board,
	})
	defer p.Close()

	events := hub.New(p, cfg.ClientOrigin)
	p.Subscribe(events)
	p.Open()

	srv := httpserver.New(httpserver.Deps{
		Game:         p,
		Board:        board,
		Events:       events,
		ClientOrigin: cfg.ClientOrigin,
		HistoryLimit: cfg.HistoryLimit,
	})
	log.Info().Str("port", cfg.Port).Msg("starting go-server")
	if err := srv.Start(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
