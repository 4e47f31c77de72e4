// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"go-arena-survivor/internal/app"
	"go-arena-survivor/internal/audio"
	"go-arena-survivor/internal/config"
	"go-arena-survivor/internal/defs"
	"go-arena-survivor/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/basicfont"
)

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	hero := flag.String("hero", "", "start immediately with this hero (KNIGHT, MAGE, ROGUE); empty opens the menu")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 seeds from the clock")
	obstacles := flag.Int("obstacles", 0, "number of rocks and barrels around the start")
	defsDir := flag.String("defs", "", "directory with heroes.json / enemies.json overrides")
	peaceful := flag.Bool("peaceful", false, "disable enemy spawns")
	volume := flag.Float64("volume", 0.5, "sound volume, 0 mutes")
	pprofAddr := flag.String("pprof", "", "serve net/http/pprof on this address")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)

	if *pprofAddr != "" {
		go func() {
			logger.Println(http.ListenAndServe(*pprofAddr, nil))
		}()
	}
	if *defsDir != "" {
		if err := defs.LoadDefinitionsDir(*defsDir); err != nil {
			logger.Fatalf("failed to load definitions: %v", err)
		}
	}

	session := app.NewSession(logger)
	sounds := audio.NewSoundManager(*volume)
	if *volume > 0 {
		if err := sounds.Initialize(); err != nil {
			// Без звука игра работает как обычно
			logger.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sounds.Cleanup()
	sounds.Attach(session)

	opts := app.Options{
		Seed:      *seed,
		Obstacles: *obstacles,
		Peaceful:  *peaceful,
	}
	ctx := &state.Context{
		Sim:     session,
		Options: opts,
		Font:    basicfont.Face7x13,
		Logger:  logger,
	}

	sm := state.NewStateMachine() // Создаём машину состояний
	if *hero != "" {
		opts.Hero = defs.HeroType(*hero)
		sm.SetState(state.NewPlayState(sm, ctx, opts))
	} else {
		sm.SetState(state.NewMenuState(sm, ctx))
	}
	game := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Arena Survivor")
	ebiten.SetTPS(config.TicksPerSec)
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal(err)
	}
}
