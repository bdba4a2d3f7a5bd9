package main

import (
	"fmt"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/reactor/assets"
	"github.com/milk9111/reactor/common"
	"github.com/milk9111/reactor/ecs"
	"github.com/milk9111/reactor/ecs/component"
	"github.com/milk9111/reactor/ecs/entity"
	"github.com/milk9111/reactor/ecs/system"
	"github.com/milk9111/reactor/levels"
	"github.com/milk9111/reactor/prefabs"
	"github.com/milk9111/reactor/save"
	"github.com/milk9111/reactor/settings"
	"github.com/milk9111/reactor/state"
	"github.com/rs/zerolog/log"
)

const (
	// loadingDotFrames is how long each step of the loading dots lasts.
	loadingDotFrames = common.TPS / 2
	// loadingMinFrames keeps the loading screen up for at least 1.5s.
	loadingMinFrames = common.TPS * 3 / 2

	musicFadeFrames = common.TPS
	menuMusicVolume = 0.3
)

var menuBackground = color.NRGBA{R: 0x10, G: 0x12, B: 0x18, A: 0xff}

type Game struct {
	cfg        settings.Settings
	debug      bool
	startLevel state.LevelState
	nextLevel  state.LevelState

	world      *ecs.World
	singletons ecs.Entity
	gameState  *state.Machine[state.GameState]
	levelState *state.Machine[state.LevelState]

	kit       *uiKit
	loading   *loadingScreen
	menuUI    *ebitenui.UI
	playingUI *ebitenui.UI

	menuSystems *ecs.Scheduler
	playSystems *ecs.Scheduler
	physics     *system.PhysicsSystem
	persistence *system.PersistenceSystem
	renderer    *system.RenderSystem
	watcher     *prefabs.Watcher

	loadFrames int
	loaded     bool
	quit       bool
}

func NewGame(cfg settings.Settings, startLevel state.LevelState, debug bool) *Game {
	g := &Game{
		cfg:        cfg,
		debug:      debug,
		startLevel: startLevel,
		world:      ecs.NewWorld(),
		gameState:  state.NewMachine(state.PreLoading),
		levelState: state.NewMachine(state.LevelNone),
		renderer:   system.NewRenderSystem(),
	}
	g.buildSystems()

	g.gameState.OnEnter(state.Loading, func() { g.loadFrames = 0 })
	g.gameState.OnEnter(state.Menu, g.enterMenu)
	g.gameState.OnExit(state.Menu, g.exitMenu)
	g.gameState.OnEnter(state.Playing, g.enterPlaying)
	g.gameState.OnExit(state.Playing, g.exitPlaying)
	for _, lvl := range []state.LevelState{state.LevelIntro, state.LevelOne} {
		g.levelState.OnEnter(lvl, func() { g.loadLevel(lvl) })
		g.levelState.OnExit(lvl, g.unloadLevel)
	}
	return g
}

// buildSystems wires both schedulers. Systems with state (input priming,
// decoded players, the chipmunk space) are shared between them.
func (g *Game) buildSystems() {
	input := system.NewInputSystem()
	debug := system.NewDebugSystem()
	audio := system.NewAudioSystem()
	cleanup := system.NewEventCleanupSystem()
	g.physics = system.NewPhysicsSystem()
	g.persistence = system.NewPersistenceSystem(save.NewStore(g.cfg.Save.Path))

	g.menuSystems = ecs.NewScheduler(input, debug, audio, cleanup)

	inIntro := func(*ecs.World) bool { return g.levelState.Current() == state.LevelIntro }
	g.playSystems = ecs.NewScheduler(
		input,
		debug,
		system.NewCameraControllerSystem(),
		system.NewTweenSystem(),
		system.NewTransformSystem(),
		system.NewSceneSystem(),
		system.NewCursorSystem(),
		system.NewSwitchSystem(),
		system.NewDoorSystem(),
		system.NewBlasterSystem(),
		ecs.When(inIntro, system.NewTutorialSystem()),
		system.NewDispenserSystem(),
		g.physics,
		system.NewReactorSystem(),
		system.NewScoreSystem(),
		g.persistence,
		system.NewNexusSystem(),
		system.NewPelletSystem(),
		audio,
		cleanup,
	)
}

func (g *Game) Update() error {
	g.gameState.Apply()
	if g.quit {
		return ebiten.Termination
	}

	switch g.gameState.Current() {
	case state.PreLoading:
		g.kit = newUIKit()
		g.loading = newLoadingScreen(g.kit)
		g.menuUI = newMenuUI(g.kit,
			func() { g.play(state.LevelIntro) },
			func() { g.play(state.LevelOne) },
			func() { g.quit = true },
		)
		g.playingUI = newPlayingUI(g.kit, func() { g.gameState.Set(state.Menu) })
		g.gameState.Set(state.Loading)

	case state.Loading:
		if !g.loaded {
			g.load()
			g.loaded = true
		}
		g.loadFrames++
		g.loading.SetFrame(g.loadFrames)
		g.loading.ui.Update()
		if g.loadFrames >= loadingMinFrames {
			if g.startLevel != state.LevelNone {
				g.play(g.startLevel)
			} else {
				g.gameState.Set(state.Menu)
			}
		}

	case state.Menu:
		g.menuSystems.Update(g.world)
		g.menuUI.Update()
		if g.input().Escape {
			return ebiten.Termination
		}

	case state.Playing:
		g.hotReload()
		g.playSystems.Update(g.world)
		g.syncCursor()
		g.playingUI.Update()
		if g.input().Escape {
			g.gameState.Set(state.Menu)
		}
	}
	return nil
}

// load reads the clip manifest, creates the singletons and builds every
// prefab once so data errors show up before the menu.
func (g *Game) load() {
	clips := make(map[string]component.Clip)
	manifest, err := assets.LoadManifest()
	if err != nil {
		log.Error().Err(err).Msg("loading: manifest")
	}
	for _, c := range manifest.Clips {
		clips[c.Name] = component.Clip{File: c.File, Duration: c.Duration, Volume: c.Volume}
	}

	e, err := entity.SpawnSingletons(g.world, clips)
	if err != nil {
		log.Error().Err(err).Msg("loading: singletons")
		return
	}
	g.singletons = e
	if mixer, ok := ecs.Get(g.world, e, component.AudioMixerComponent.Kind()); ok {
		for _, ch := range []string{component.ChannelVoice, component.ChannelEffects, component.ChannelMusic} {
			mixer.Gains[ch] = g.cfg.Audio.ChannelVolume(ch)
		}
	}
	if dbg, ok := ecs.Get(g.world, e, component.DebugSettingsComponent.Kind()); ok {
		dbg.Overlay = g.debug
	}

	if err := entity.CheckPrefabs(); err != nil {
		log.Error().Err(err).Msg("loading: prefabs")
	}
	log.Info().Int("clips", len(clips)).Int("prefabs", len(prefabs.Names())).Int("levels", len(levels.Names())).Msg("loading: done")

	if g.debug {
		w, err := prefabs.NewWatcher(prefabs.Dir, levels.Dir)
		if err != nil {
			log.Warn().Err(err).Msg("loading: hot reload disabled")
			return
		}
		g.watcher = w
	}
}

func (g *Game) play(lvl state.LevelState) {
	g.nextLevel = lvl
	g.gameState.Set(state.Playing)
}

func (g *Game) enterMenu() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
	g.request(component.SoundRequest{
		Clip:         "intro",
		Channel:      component.ChannelMusic,
		Volume:       menuMusicVolume,
		Loop:         true,
		FadeInFrames: musicFadeFrames,
	})
}

func (g *Game) exitMenu() {
	g.request(component.SoundRequest{Channel: component.ChannelMusic, Stop: true, FadeOutFrames: musicFadeFrames})
}

func (g *Game) enterPlaying() {
	g.levelState.Set(g.nextLevel)
	g.levelState.Apply()
}

func (g *Game) exitPlaying() {
	g.levelState.Set(state.LevelNone)
	g.levelState.Apply()
}

func (g *Game) loadLevel(lvl state.LevelState) {
	if err := entity.RunLevelScript(g.world, lvl.Script()); err != nil {
		log.Error().Err(err).Str("script", lvl.Script()).Msg("level: script")
		g.gameState.Set(state.Menu)
		return
	}

	ecs.ForEach(g.world, component.CameraControllerComponent.Kind(), func(_ ecs.Entity, c *component.CameraController) {
		c.Sensitivity = g.cfg.Controls.Sensitivity
		c.WalkSpeed = g.cfg.Controls.WalkSpeed
		c.RunSpeed = g.cfg.Controls.RunSpeed
		c.Friction = g.cfg.Controls.Friction
	})
	if cfg, ok := ecs.Get(g.world, g.singletons, component.CameraPlayerConfigComponent.Kind()); ok {
		*cfg = component.CameraPlayerConfig{}
	}
	if sb, ok := ecs.Get(g.world, g.singletons, component.ScoreBoardComponent.Kind()); ok {
		sb.Score = 0
		sb.Running = false
	}
	g.persistence.Seed(g.world)
	log.Info().Str("level", lvl.String()).Int("entities", g.world.Count()).Msg("level: loaded")
}

func (g *Game) unloadLevel() {
	n := entity.CleanupLevel(g.world)
	g.physics.Reset()
	g.request(component.SoundRequest{Channel: component.ChannelVoice, Stop: true})
	log.Info().Int("destroyed", n).Msg("level: unloaded")
}

// hotReload rebuilds the current level when a watched file changed.
func (g *Game) hotReload() {
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	lvl := g.levelState.Current()
	if lvl == state.LevelNone {
		return
	}
	log.Info().Strs("files", changed).Str("level", lvl.String()).Msg("level: hot reload")
	g.unloadLevel()
	g.loadLevel(lvl)
}

// syncCursor captures the OS cursor in Player mode, where look follows the
// mouse, and releases it otherwise so the Exit button can be clicked.
func (g *Game) syncCursor() {
	want := ebiten.CursorModeVisible
	if m, ok := ecs.Get(g.world, g.singletons, component.CameraModeComponent.Kind()); ok && m.Mode == component.CameraModePlayer {
		want = ebiten.CursorModeCaptured
	}
	if ebiten.CursorMode() != want {
		ebiten.SetCursorMode(want)
	}
}

func (g *Game) request(req component.SoundRequest) {
	e := ecs.CreateEntity(g.world)
	if err := ecs.Add(g.world, e, component.SoundRequestComponent.Kind(), &req); err != nil {
		log.Warn().Err(err).Msg("audio: request")
		ecs.DestroyEntity(g.world, e)
	}
}

func (g *Game) input() component.Input {
	if in, ok := ecs.Get(g.world, g.singletons, component.InputComponent.Kind()); ok {
		return *in
	}
	return component.Input{}
}

func (g *Game) Draw(screen *ebiten.Image) {
	switch g.gameState.Current() {
	case state.Loading:
		g.loading.ui.Draw(screen)
	case state.Menu:
		screen.Fill(menuBackground)
		g.menuUI.Draw(screen)
	case state.Playing:
		g.renderer.Draw(g.world, screen)
		g.playingUI.Draw(screen)
		if dbg, ok := ecs.Get(g.world, g.singletons, component.DebugSettingsComponent.Kind()); ok && dbg.Overlay {
			line := fmt.Sprintf("game %s level %s", g.gameState.Current(), g.levelState.Current())
			ebitenutil.DebugPrintAt(screen, line, 8, screen.Bounds().Dy()-20)
		}
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if in, ok := ecs.Get(g.world, g.singletons, component.InputComponent.Kind()); ok {
		in.ScreenW = common.BaseWidth
		in.ScreenH = common.BaseHeight
	}
	return common.BaseWidth, common.BaseHeight
}

// Close releases the file watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}
