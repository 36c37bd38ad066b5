package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"lighthouses/communication/client"
	"lighthouses/communication/server"
	"lighthouses/game"
	"lighthouses/gamemaster"
	"lighthouses/meta"
	"lighthouses/metrics"
	"lighthouses/player"
	"lighthouses/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

type config struct {
	name          string
	listenAddress string
	serverAddress string
	width         int
	height        int
	verbose       bool
	journal       string
	localTurns    int
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.name, "bn", utils.GetEnvDefault("BOT_NAME", meta.DEFAULT_BOT_NAME), "bot name")
	flag.StringVar(&cfg.listenAddress, "la", utils.GetEnvDefault("LISTEN_ADDRESS", ""), "listen address")
	flag.StringVar(&cfg.serverAddress, "gs", utils.GetEnvDefault("GAME_SERVER_ADDRESS", ""), "game server address")
	flag.IntVar(&cfg.width, "width", meta.BOARD_WIDTH, "board width")
	flag.IntVar(&cfg.height, "height", meta.BOARD_HEIGHT, "board height")
	flag.BoolVar(&cfg.verbose, "verbose", false, "log decoded requests")
	flag.StringVar(&cfg.journal, "journal", "", "parquet file the turn journal is written to on exit")
	flag.IntVar(&cfg.localTurns, "local", 0, "play N turns against an in-process game instead of joining")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if cfg.verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	if cfg.localTurns > 0 {
		err = runLocal(ctx, cfg)
	} else {
		err = run(ctx, cfg)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal().Err(err).Msg("bot stopped")
	}
}

func run(ctx context.Context, cfg config) error {
	if cfg.listenAddress == "" || cfg.serverAddress == "" {
		return errors.New("both -la and -gs are required")
	}

	collector := metrics.NewCollector()
	p := player.NewPlayer(cfg.name, cfg.listenAddress, client.NewClientCommunicator(cfg.serverAddress),
		player.WithBoard(game.NewBoard(cfg.width, cfg.height)),
		player.WithMetrics(collector),
	)

	listener, err := net.Listen("tcp", cfg.listenAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.listenAddress, err)
	}
	log.Info().Msgf("%s listening on %s", cfg.name, cfg.listenAddress)

	// Serve before joining so the coordinator can call back as soon as it accepts us.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.NewServerCommunicator(p).Serve(gctx, listener)
	})
	g.Go(func() error {
		id, err := p.Join(gctx)
		if err != nil {
			return fmt.Errorf("join %s: %w", cfg.serverAddress, err)
		}
		log.Info().Msgf("joined %s as player %d", cfg.serverAddress, id)
		return nil
	})

	err = g.Wait()
	return errors.Join(err, writeJournal(cfg.journal, collector))
}

func runLocal(ctx context.Context, cfg config) error {
	gameCfg := gamemaster.DefaultConfig()
	gameCfg.Board = game.NewBoard(cfg.width, cfg.height)
	gameCfg.Lighthouses = lighthousesOn(gameCfg.Board, gameCfg.Lighthouses)

	e := gamemaster.NewLocalEngine(gameCfg)
	collector := metrics.NewCollector()
	p := player.NewPlayer(cfg.name, "local", e,
		player.WithBoard(gameCfg.Board),
		player.WithMetrics(collector),
	)
	if _, err := p.Join(ctx); err != nil {
		return err
	}

	result, err := e.Run(ctx, p, cfg.localTurns)
	log.Info().Msgf("local game over: %+v", result)
	return errors.Join(err, writeJournal(cfg.journal, collector))
}

// lighthousesOn keeps the lighthouses that fit on board.
func lighthousesOn(board game.Board, positions []game.Position) []game.Position {
	kept := positions[:0:0]
	for _, p := range positions {
		if board.Contains(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

func writeJournal(path string, collector metrics.Collector) error {
	if path == "" {
		return nil
	}
	w, err := metrics.NewWriter(path)
	if err != nil {
		return err
	}
	records := metrics.NewTurnRecords(collector.Complete(), collector.Turns())
	if err := w.WriteTurnRecords(records); err != nil {
		return fmt.Errorf("write journal: %w", err)
	}
	log.Info().Msgf("wrote %d turns to %s", len(records), w.Path())
	return nil
}
