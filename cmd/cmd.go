package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"togglcal/internal/config"

	"github.com/rs/zerolog/log"
)

// Blocks until the command is done or the context is cancelled.
type command func(ctx context.Context) error

type commandRegistry map[string]command

var commands = commandRegistry{
	"noop":      noopCmd,
	"sync":      syncCmd,
	"schedule":  scheduleCmd,
	"current":   currentCmd,
	"calendars": calendarsCmd,
	"version":   versionCmd,
	"menu":      menuCmd,
}

func Run() {
	cmd := config.Gist().String(config.CMD)
	if cmd == "" {
		cmd = "menu"
	}
	cmdFn, ok := commands[cmd]
	if !ok {
		help()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.Validate(cmd); err != nil {
		log.Error().Err(err).Msg("configuration error")
		os.Exit(1)
	}
	if err := cmdFn(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

func help() {
	fmt.Println("Usage: togglcal [command]")
	fmt.Println("Commands: sync, schedule, current, calendars, menu, version, noop")
	fmt.Println("Example: togglcal sync --days 7 --preview")
	fmt.Println("Config params (name|required|default):\v")
	fmt.Println(config.Sprint())
}
