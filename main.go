package main

import (
	"fmt"
	"os"

	"github.com/aetherspritee/kibun/src/cli"
	"github.com/aetherspritee/kibun/src/config"
	"github.com/aetherspritee/kibun/src/journal"
	"github.com/aetherspritee/kibun/src/logger"
	"github.com/aetherspritee/kibun/src/ui"
)

//////////////////////////////////////////////
// Welcome to 気分, a tiny mood journal! //
//////////////////////////////////////////////

func main() {
	os.Exit(run())
}

func run() int {
	if _, err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "kibun: %v\n", err)
		return 1
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "kibun: %v\n", err)
		return 1
	}

	log, closeLog, err := logger.New(logger.Options{
		Level: cfg.General.LogLevel,
		File:  cfg.General.LogFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "kibun: %v\n", err)
		return 1
	}
	defer closeLog()
	log.Debug().Str("config", cfg.String()).Msg("config loaded")

	r, err := ui.New(ui.Options{
		Width:          ui.TerminalWidth(os.Stdout, cfg.General.Width),
		MaxColumnWidth: cfg.General.MaxColumnWidth,
		Palette:        cfg.Palette(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "kibun: %v\n", err)
		return 1
	}

	// a journal that cannot be read is never overwritten
	store, err := journal.Open(cfg.General.StorePath, log)
	if err != nil {
		log.Error().Err(err).Msg("journal not opened")
		fmt.Fprintf(os.Stderr, "Alas, the journal could not be opened: %v\n", err)
		return 1
	}

	app := cli.New(cli.Options{Store: store, UI: r, Log: log})
	if err := app.Run(); err != nil {
		log.Error().Err(err).Msg("session ended with an error")
		fmt.Fprintf(os.Stderr, "Alas, there's been an error: %v\n", err)
		return 1
	}
	return 0
}
