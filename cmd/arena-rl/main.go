// cmd/arena-rl/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go-arena-survivor/internal/app"
	"go-arena-survivor/internal/audio"
	"go-arena-survivor/internal/config"
	"go-arena-survivor/internal/defs"
	"go-arena-survivor/internal/input"
	"go-arena-survivor/internal/interfaces"
	"go-arena-survivor/internal/types"
	"go-arena-survivor/pkg/view"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type phase int

const (
	phaseMenu phase = iota
	phasePlay
	phaseResult
)

// viewer — raylib-хост: меню, игра и экран итогов в одном цикле.
type viewer struct {
	sim      interfaces.Simulation
	opts     app.Options
	logger   *log.Logger
	phase    phase
	paused   bool
	snap     app.Snapshot
	camera   *view.Camera
	health   *PlayerHealthIndicator
	wave     *WaveIndicator
	heroBtns []*Button
	heroes   []defs.HeroDefinition
}

func main() {
	seed := flag.Int64("seed", 0, "PRNG seed; 0 seeds from the clock")
	obstacles := flag.Int("obstacles", 0, "number of rocks and barrels around the start")
	defsDir := flag.String("defs", "", "directory with heroes.json / enemies.json overrides")
	peaceful := flag.Bool("peaceful", false, "disable enemy spawns")
	volume := flag.Float64("volume", 0.5, "sound volume, 0 mutes")
	flag.Parse()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	if *defsDir != "" {
		if err := defs.LoadDefinitionsDir(*defsDir); err != nil {
			logger.Fatalf("failed to load definitions: %v", err)
		}
	}

	session := app.NewSession(logger)
	sounds := audio.NewSoundManager(*volume)
	if *volume > 0 {
		if err := sounds.Initialize(); err != nil {
			logger.Printf("Audio initialization failed: %v", err)
		}
	}
	defer sounds.Cleanup()
	sounds.Attach(session)

	// --- Инициализация ---
	rl.InitWindow(config.ScreenWidth, config.ScreenHeight, "Arena Survivor | WASD - move, Space/LMB - attack, Shift/RMB - special, P - pause")
	defer rl.CloseWindow()
	rl.SetTargetFPS(config.TicksPerSec)

	v := &viewer{
		sim:    session,
		opts:   app.Options{Seed: *seed, Obstacles: *obstacles, Peaceful: *peaceful},
		logger: logger,
		camera: view.NewCamera(config.ScreenWidth, config.ScreenHeight, config.ScreenScale),
		health: NewPlayerHealthIndicator(20, 20),
		wave:   NewWaveIndicator(config.ScreenWidth/2, 16, 40),
		heroes: app.Heroes(),
	}
	for i, hero := range v.heroes {
		y := float32(config.ScreenHeight/2 - 60 + i*110)
		btn := NewButton(rl.NewRectangle(config.ScreenWidth/2-160, y, 320, 90), fmt.Sprintf("%d. %s", i+1, hero.Name))
		btn.Caption = hero.Description
		btn.Border = colorToRL(defs.ParseColor(hero.Color))
		v.heroBtns = append(v.heroBtns, btn)
	}

	// --- Главный цикл ---
	for !rl.WindowShouldClose() {
		v.update()

		rl.BeginDrawing()
		rl.ClearBackground(colorToRL(config.BackgroundColor))
		v.draw()
		rl.DrawFPS(config.ScreenWidth-90, config.ScreenHeight-30)
		rl.EndDrawing()
	}
	session.Stop()
}

var digitKeys = []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree}

func (v *viewer) update() {
	switch v.phase {
	case phaseMenu:
		mouse := rl.GetMousePosition()
		for i, hero := range v.heroes {
			if (i < len(digitKeys) && rl.IsKeyPressed(digitKeys[i])) || v.heroBtns[i].IsClicked(mouse) {
				v.start(hero.ID)
				return
			}
		}
	case phasePlay:
		v.updatePlay()
	case phaseResult:
		if rl.IsKeyPressed(rl.KeyEnter) || rl.IsMouseButtonPressed(rl.MouseLeftButton) {
			v.sim.Stop()
			v.phase = phaseMenu
		}
	}
}

func (v *viewer) start(hero defs.HeroType) {
	opts := v.opts
	opts.Hero = hero
	if err := v.sim.Start(opts); err != nil {
		v.logger.Printf("failed to start game: %v", err)
		return
	}
	v.paused = false
	v.snap = v.sim.Snapshot()
	v.camera.Snap(v.snap.PlayerPos)
	v.phase = phasePlay
}

func (v *viewer) updatePlay() {
	if rl.IsKeyPressed(rl.KeyP) {
		v.paused = !v.paused
		if err := v.sim.SetPaused(v.paused); err != nil {
			v.logger.Printf("pause failed: %v", err)
		}
	}
	if len(v.snap.Offer) > 0 {
		for i, u := range v.snap.Offer {
			if i < len(digitKeys) && rl.IsKeyPressed(digitKeys[i]) {
				if err := v.sim.SubmitUpgradeChoice(u.ID); err != nil {
					v.logger.Printf("upgrade %s rejected: %v", u.ID, err)
				}
			}
		}
	}

	var move types.Vector2
	if rl.IsKeyDown(rl.KeyW) || rl.IsKeyDown(rl.KeyUp) {
		move.Y--
	}
	if rl.IsKeyDown(rl.KeyS) || rl.IsKeyDown(rl.KeyDown) {
		move.Y++
	}
	if rl.IsKeyDown(rl.KeyA) || rl.IsKeyDown(rl.KeyLeft) {
		move.X--
	}
	if rl.IsKeyDown(rl.KeyD) || rl.IsKeyDown(rl.KeyRight) {
		move.X++
	}
	mouseAttack := rl.IsMouseButtonDown(rl.MouseLeftButton)
	var aim *types.Vector2
	if mouseAttack {
		m := rl.GetMousePosition()
		w := v.camera.ScreenToWorld(int(m.X), int(m.Y))
		aim = &w
	}
	v.sim.Input().Store(input.Snapshot{
		Move:    move,
		Attack:  rl.IsKeyDown(rl.KeySpace) || mouseAttack,
		Special: rl.IsKeyDown(rl.KeyLeftShift) || rl.IsMouseButtonDown(rl.MouseRightButton),
		Aim:     aim,
	})

	v.snap = v.sim.Step()
	v.camera.Follow(v.snap.PlayerPos)
	if v.snap.Result != nil {
		v.phase = phaseResult
	}
}

func (v *viewer) draw() {
	switch v.phase {
	case phaseMenu:
		title := "ARENA SURVIVOR"
		rl.DrawText(title, config.ScreenWidth/2-rl.MeasureText(title, 60)/2, config.ScreenHeight/5, 60, rl.RayWhite)
		mouse := rl.GetMousePosition()
		for _, btn := range v.heroBtns {
			btn.Draw(mouse)
		}
	case phasePlay:
		drawArena(v.camera, &v.snap)
		v.drawHUD()
	case phaseResult:
		v.drawResult()
	}
}

func (v *viewer) drawHUD() {
	s := &v.snap
	xpFrac := float32(0)
	if s.State.XPToNextLevel > 0 {
		xpFrac = float32(s.State.XP) / float32(s.State.XPToNextLevel)
	}
	rl.DrawRectangle(0, 0, int32(float32(config.ScreenWidth)*xpFrac), 6, rl.Gold)

	v.health.Draw(s.PlayerHP, s.PlayerMaxHP, s.Shield, s.ShieldMax)
	v.wave.Draw(s.State.Wave)
	seconds := s.State.Time / config.TicksPerSec
	rl.DrawText(fmt.Sprintf("%02d:%02d  LV %d  SCORE %d", seconds/60, seconds%60, s.State.Level, s.State.Score), config.ScreenWidth-360, 20, 20, rl.RayWhite)
	if s.SpecialCooldown > 0 {
		rl.DrawText(fmt.Sprintf("SPECIAL %d", s.SpecialCooldown), 20, config.ScreenHeight-40, 20, rl.Gray)
	} else {
		rl.DrawText("SPECIAL READY", 20, config.ScreenHeight-40, 20, rl.Gold)
	}

	if len(s.Offer) > 0 {
		rl.DrawRectangle(0, config.ScreenHeight-200, config.ScreenWidth, 200, rl.NewColor(25, 35, 45, 230))
		rl.DrawText("LEVEL UP! Press 1-3", 40, config.ScreenHeight-185, 24, rl.RayWhite)
		for i, u := range s.Offer {
			x := int32(40 + i*400)
			rarity := colorToRL(config.RarityColors[string(u.Rarity)])
			rl.DrawRectangleLines(x, config.ScreenHeight-140, 380, 110, rarity)
			rl.DrawText(fmt.Sprintf("%d. %s", i+1, u.Name), x+12, config.ScreenHeight-125, 22, rl.RayWhite)
			rl.DrawText(u.Description, x+12, config.ScreenHeight-90, 18, rarity)
		}
	}
	if v.paused {
		rl.DrawRectangle(0, 0, config.ScreenWidth, config.ScreenHeight, rl.NewColor(0, 0, 0, 128))
		rl.DrawText("PAUSED", config.ScreenWidth/2-rl.MeasureText("PAUSED", 40)/2, config.ScreenHeight/2-20, 40, rl.White)
	}
}

func (v *viewer) drawResult() {
	r := v.snap.Result
	title, clr := "YOU DIED", rl.Red
	if r.Victory {
		title, clr = "VICTORY", rl.Gold
	}
	rl.DrawText(title, config.ScreenWidth/2-rl.MeasureText(title, 80)/2, config.ScreenHeight/4, 80, clr)
	seconds := r.Time / config.TicksPerSec
	lines := []string{
		fmt.Sprintf("Score %d", r.Score),
		fmt.Sprintf("Wave %d   Level %d", r.Wave, r.Level),
		fmt.Sprintf("Survived %02d:%02d", seconds/60, seconds%60),
		"Press Enter to return to the menu",
	}
	for i, line := range lines {
		y := int32(config.ScreenHeight/2 + i*40)
		rl.DrawText(line, config.ScreenWidth/2-rl.MeasureText(line, 28)/2, y, 28, rl.RayWhite)
	}
}
