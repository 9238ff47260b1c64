// Command ehdemo wires the hosted port, configuration, and structured
// logging together and runs a small multi-task scenario: a producer task
// notifies an event, a consumer task waits on it with a timeout, and a
// watchdog task joins both before stopping the loop.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xiaoapeng/go-eventhub/config"
	"github.com/xiaoapeng/go-eventhub/eh"
	"github.com/xiaoapeng/go-eventhub/event"
	"github.com/xiaoapeng/go-eventhub/port/hosted"
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file (optional)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"})

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatal().Err(err).Str("path", *configPath).Msg("ehdemo: failed to load config")
		}
		cfg = loaded
	}

	p, err := hosted.New(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("ehdemo: failed to build hosted port")
	}
	hosted.Register(p)

	if err := eh.GlobalInit(); err != nil {
		log.Fatal().Err(err).Msg("ehdemo: global init failed")
	}
	defer eh.GlobalExit()

	ready := event.New("ehdemo.ready")
	var produced int

	producer, err := eh.TaskCreate("producer", cfg.DefaultStackSize, nil, func(any) int {
		log.Info().Msg("ehdemo: producer running")
		produced = 42
		ready.Notify()
		return 0
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ehdemo: failed to create producer task")
	}

	consumer, err := eh.TaskCreate("consumer", cfg.DefaultStackSize, nil, func(any) int {
		predicate := func() bool { return produced != 0 }
		if err := eh.WaitEvent(context.Background(), ready, predicate, 2*time.Second); err != nil {
			log.Warn().Err(err).Msg("ehdemo: consumer wait failed")
			return 1
		}
		log.Info().Int("produced", produced).Msg("ehdemo: consumer observed value")
		return produced
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ehdemo: failed to create consumer task")
	}

	watchdog, err := eh.TaskCreate("watchdog", cfg.DefaultStackSize, nil, func(any) int {
		if _, err := eh.TaskJoin(context.Background(), producer, 2*time.Second); err != nil {
			log.Warn().Err(err).Msg("ehdemo: watchdog join producer failed")
		}
		if _, err := eh.TaskJoin(context.Background(), consumer, 2*time.Second); err != nil {
			log.Warn().Err(err).Msg("ehdemo: watchdog join consumer failed")
		}
		eh.LoopExit(0)
		return 0
	})
	if err != nil {
		log.Fatal().Err(err).Msg("ehdemo: failed to create watchdog task")
	}

	code, err := eh.LoopRun()
	if err != nil {
		log.Fatal().Err(err).Msg("ehdemo: loop run failed")
	}
	log.Info().Int("exit_code", code).Msg("ehdemo: loop stopped")
}
