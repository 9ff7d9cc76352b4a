package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/danmaku/internal/config"
	"github.com/tomz197/danmaku/internal/loop"
)

func main() {
	// The terminal belongs to the game, so logs go to a file if asked for.
	logger := log.New(os.Stderr)
	logger.SetLevel(log.FatalLevel)
	if path := config.GetEnv("DANMAKU_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = log.NewWithOptions(f, log.Options{ReportTimestamp: true, Level: log.DebugLevel})
	}

	store, err := config.OpenStore(config.AppName)
	if err != nil {
		logger.Warn("options will not be remembered", "err", err)
	}
	live, stop, err := config.OpenLive(config.GetEnv(config.EnvOptionsFile, ""), store, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load options: %v\n", err)
		os.Exit(1)
	}
	defer stop()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	session := loop.NewSession(bufio.NewReader(os.Stdin), os.Stdout, loop.Options{
		Username: config.GetEnv("USER", "player"),
		Live:     live,
		Logger:   logger,
	})
	if err := session.Run(ctx); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
