package main

import (
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/danmaku/internal/config"
	"github.com/tomz197/danmaku/internal/window"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	if config.GetEnv("DANMAKU_DEBUG", "") != "" {
		logger.SetLevel(log.DebugLevel)
	}

	store, err := config.OpenStore(config.AppName)
	if err != nil {
		logger.Warn("options will not be remembered", "err", err)
	}
	live, stop, err := config.OpenLive(config.GetEnv(config.EnvOptionsFile, ""), store, logger)
	if err != nil {
		logger.Fatal("failed to load options", "err", err)
	}
	defer stop()

	ebiten.SetWindowSize(window.ScreenWidth*2, window.ScreenHeight*2)
	ebiten.SetWindowTitle("danmaku")
	ebiten.SetTPS(config.TargetFPS)

	game := window.New(window.Options{Live: live, Logger: logger})
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("game error", "err", err)
	}
	logger.Info("bye", "score", game.Manager().Score())
}
