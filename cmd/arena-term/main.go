// cmd/arena-term/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go-arena-survivor/internal/app"
	"go-arena-survivor/internal/component"
	"go-arena-survivor/internal/config"
	"go-arena-survivor/internal/defs"
	"go-arena-survivor/internal/input"
	"go-arena-survivor/internal/types"

	"github.com/gdamore/tcell/v2"
)

const (
	// Размер клетки терминала в мировых единицах; клетка примерно вдвое выше ширины.
	cellWidth  = 4.0
	cellHeight = 8.0
	// Терминал не сообщает об отпускании клавиш: нажатие держит направление N тиков.
	moveHoldTicks = 8
)

var glyphs = map[defs.EntityType]rune{
	defs.EntityPlayer:         '@',
	defs.EntityPetDog:         'd',
	defs.EntityPetBird:        'v',
	defs.EntityEnemySlime:     's',
	defs.EntityEnemySkeleton:  'k',
	defs.EntityEnemyBat:       'b',
	defs.EntityEnemyArcher:    'a',
	defs.EntityEnemyGolem:     'G',
	defs.EntityEnemyBoss:      'B',
	defs.EntityLootXP:         '.',
	defs.EntityLootHP:         '+',
	defs.EntityLootChest:      '$',
	defs.EntityItemPotionRed:  '!',
	defs.EntityItemPotionBlue: '!',
	defs.EntityItemScrollNuke: '?',
	defs.EntityItemBootsSpeed: '^',
	defs.EntityObstacleRock:   '#',
	defs.EntityObstacleBarrel: 'O',
}

type terminal struct {
	screen   tcell.Screen
	session  *app.Session
	logger   *log.Logger
	move     types.Vector2
	moveHold int
	attack   bool
	special  bool
	paused   bool
	snap     app.Snapshot
}

func main() {
	heroFlag := flag.String("hero", string(defs.HeroKnight), "hero id: KNIGHT, ROGUE or MAGE")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 seeds from the clock")
	obstacles := flag.Int("obstacles", 0, "number of rocks and barrels around the start")
	peaceful := flag.Bool("peaceful", false, "disable enemy spawns")
	logPath := flag.String("log", "arena-term.log", "log file; the terminal is taken by the arena")
	flag.Parse()

	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logger := log.New(logFile, "", log.LstdFlags)

	session := app.NewSession(logger)
	opts := app.Options{
		Hero:      defs.HeroType(*heroFlag),
		Seed:      *seed,
		Obstacles: *obstacles,
		Peaceful:  *peaceful,
	}
	if err := session.Start(opts); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer session.Stop()

	screen, err := tcell.NewScreen()
	if err != nil {
		logger.Fatalf("failed to create screen: %v", err)
	}
	if err := screen.Init(); err != nil {
		logger.Fatalf("failed to initialize screen: %v", err)
	}
	defer screen.Fini()

	t := &terminal{screen: screen, session: session, logger: logger, snap: session.Snapshot()}

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			eventChan <- screen.PollEvent()
		}
	}()

	ticker := time.NewTicker(time.Second / config.TicksPerSec)
	defer ticker.Stop()

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			t.step()
			t.draw()
		}
	}
}

// handleKey возвращает false, если игрок вышел.
func (t *terminal) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		t.hold(types.Vector2{Y: -1})
	case tcell.KeyDown:
		t.hold(types.Vector2{Y: 1})
	case tcell.KeyLeft:
		t.hold(types.Vector2{X: -1})
	case tcell.KeyRight:
		t.hold(types.Vector2{X: 1})
	case tcell.KeyRune:
		switch r := ev.Rune(); r {
		case 'q':
			return false
		case 'w':
			t.hold(types.Vector2{Y: -1})
		case 's':
			t.hold(types.Vector2{Y: 1})
		case 'a':
			t.hold(types.Vector2{X: -1})
		case 'd':
			t.hold(types.Vector2{X: 1})
		case ' ':
			t.attack = !t.attack
		case 'e', 'E':
			t.special = true
		case 'p':
			t.paused = !t.paused
			if err := t.session.SetPaused(t.paused); err != nil {
				t.logger.Printf("pause failed: %v", err)
			}
		case '1', '2', '3':
			idx := int(r - '1')
			if idx < len(t.snap.Offer) {
				if err := t.session.SubmitUpgradeChoice(t.snap.Offer[idx].ID); err != nil {
					t.logger.Printf("upgrade rejected: %v", err)
				}
			}
		}
	}
	return true
}

func (t *terminal) hold(dir types.Vector2) {
	t.move = dir
	t.moveHold = moveHoldTicks
}

func (t *terminal) step() {
	if t.snap.Result != nil {
		return
	}
	if t.moveHold > 0 {
		t.moveHold--
	} else {
		t.move = types.Vector2{}
	}
	t.session.Input().Store(input.Snapshot{
		Move:    t.move,
		Attack:  t.attack,
		Special: t.special,
	})
	t.special = false
	t.snap = t.session.Step()
}

func (t *terminal) worldToCell(p types.Vector2, w, h int) (int, int) {
	x := int((p.X-t.snap.PlayerPos.X)/cellWidth) + w/2
	y := int((p.Y-t.snap.PlayerPos.Y)/cellHeight) + h/2
	return x, y
}

func (t *terminal) draw() {
	screen := t.screen
	screen.Clear()
	w, h := screen.Size()
	arenaH := h - 3

	floor := tcell.StyleDefault.Foreground(tcell.ColorDarkSlateGray)
	for y := 0; y < arenaH; y++ {
		for x := 0; x < w; x++ {
			screen.SetContent(x, y, ' ', nil, floor)
		}
	}

	for i := range t.snap.Entities {
		e := &t.snap.Entities[i]
		if e.Type == defs.EntityPlayer {
			continue
		}
		t.put(e.Pos, glyphFor(e), entityStyle(e), w, arenaH)
	}
	for i := range t.snap.Projectiles {
		p := &t.snap.Projectiles[i]
		clr := tcell.ColorYellow
		if p.IsHostile {
			clr = tcell.ColorRed
		}
		glyph := '*'
		if p.Kind == component.ProjectileArrow || p.Kind == component.ProjectileFeather {
			glyph = '-'
		}
		t.put(p.Pos, glyph, tcell.StyleDefault.Foreground(clr), w, arenaH)
	}
	playerStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	if t.snap.Invulnerable {
		playerStyle = playerStyle.Dim(true)
	}
	t.put(t.snap.PlayerPos, '@', playerStyle, w, arenaH)

	t.drawStatus(w, h)
	screen.Show()
}

func (t *terminal) put(p types.Vector2, r rune, style tcell.Style, w, h int) {
	x, y := t.worldToCell(p, w, h)
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.screen.SetContent(x, y, r, nil, style)
}

func glyphFor(e *component.Entity) rune {
	if r, ok := glyphs[e.Type]; ok {
		return r
	}
	return '?'
}

func entityStyle(e *component.Entity) tcell.Style {
	c := e.Color
	style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
	if e.IsElite {
		style = style.Bold(true).Underline(true)
	}
	if e.Status.Freeze > 0 {
		style = style.Foreground(tcell.ColorLightCyan)
	}
	return style
}

func (t *terminal) drawStatus(w, h int) {
	s := &t.snap
	seconds := s.State.Time / config.TicksPerSec
	line1 := fmt.Sprintf(" HP %.0f/%.0f  SH %.0f/%.0f  LV %d  XP %d/%d  WAVE %d  %02d:%02d  SCORE %d",
		s.PlayerHP, s.PlayerMaxHP, s.Shield, s.ShieldMax, s.State.Level, s.State.XP, s.State.XPToNextLevel,
		s.State.Wave, seconds/60, seconds%60, s.State.Score)
	line2 := " wasd move  space auto-attack  e special  p pause  q quit"
	if s.SpecialCooldown == 0 {
		line2 += "  [SPECIAL READY]"
	}
	line3 := ""
	switch {
	case s.Result != nil && s.Result.Victory:
		line3 = " VICTORY! press q to quit"
	case s.Result != nil:
		line3 = " YOU DIED. press q to quit"
	case len(s.Offer) > 0:
		line3 = " LEVEL UP:"
		for i, u := range s.Offer {
			line3 += fmt.Sprintf("  %d) %s", i+1, u.Name)
		}
	case t.paused:
		line3 = " PAUSED"
	}

	text := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	drawString(t.screen, 0, h-3, w, line1, text)
	drawString(t.screen, 0, h-2, w, line2, tcell.StyleDefault.Foreground(tcell.ColorGray))
	drawString(t.screen, 0, h-1, w, line3, text.Foreground(tcell.ColorGold).Bold(true))
}

func drawString(screen tcell.Screen, x, y, maxW int, s string, style tcell.Style) {
	for _, r := range s {
		if x >= maxW {
			return
		}
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
