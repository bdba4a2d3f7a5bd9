package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/logging"
	"github.com/milk9111/reactor/settings"
	"github.com/milk9111/reactor/state"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "settings.toml", "path to the TOML settings file")
	debug := flag.Bool("debug", false, "enable the debug overlay and prefab hot reload")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "skip the menu and start a level (intro or one)")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg, err := settings.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("settings: load")
	}

	startLevel := state.LevelNone
	if *levelName != "" {
		lvl, ok := state.ParseLevel(*levelName)
		if !ok {
			log.Fatal().Str("level", *levelName).Msg("unknown level")
		}
		startLevel = lvl
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetFullscreen(cfg.Window.Fullscreen)
	ebiten.SetTPS(common.TPS)

	game := NewGame(cfg, startLevel, *debug)
	runErr := ebiten.RunGame(game)
	if err := game.Close(); err != nil {
		log.Warn().Err(err).Msg("close watcher")
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("run game")
	}
}
