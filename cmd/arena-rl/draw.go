// cmd/arena-rl/draw.go
package main

import (
	"math"

	"go-arena-survivor/internal/app"
	"go-arena-survivor/internal/component"
	"go-arena-survivor/internal/config"
	"go-arena-survivor/internal/defs"
	"go-arena-survivor/internal/types"
	"go-arena-survivor/pkg/view"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const floorGridStep = 40.0

func toScreen(cam *view.Camera, p types.Vector2) rl.Vector2 {
	x, y := cam.WorldToScreen(p)
	return rl.NewVector2(x, y)
}

// drawArena рисует мир арены из снимка.
func drawArena(cam *view.Camera, snap *app.Snapshot) {
	scale := float32(cam.Scale)
	drawFloor(cam)

	for i := range snap.Entities {
		e := &snap.Entities[i]
		if !cam.Visible(e.Pos, e.Radius) {
			continue
		}
		pos := toScreen(cam, e.Pos)
		radius := float32(e.Radius) * scale
		clr := colorToRL(e.Color)

		switch {
		case e.Type == defs.EntityPlayer:
			if snap.Invulnerable && snap.State.Time%10 < 5 {
				rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius, clr)
			} else {
				rl.DrawCircleV(pos, radius, clr)
			}
			if snap.Shield > 0 {
				rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius+3*scale, rl.SkyBlue)
			}
		case e.Type.IsLoot():
			rl.DrawPoly(pos, 4, radius, 45, clr)
		case e.Type == defs.EntityObstacleBarrel:
			rl.DrawRectangleV(rl.NewVector2(pos.X-radius, pos.Y-radius), rl.NewVector2(radius*2, radius*2), clr)
		default:
			if e.Status.Freeze > 0 {
				clr = ColorLerp(clr, rl.SkyBlue, 0.5)
			} else if e.Status.Burn > 0 {
				clr = ColorLerp(clr, rl.Orange, 0.4)
			} else if e.Status.Poison > 0 {
				clr = ColorLerp(clr, rl.Lime, 0.4)
			}
			rl.DrawCircleV(pos, radius, clr)
			if e.IsElite {
				rl.DrawCircleLines(int32(pos.X), int32(pos.Y), radius, rl.Gold)
			}
			if e.Type.IsEnemy() && e.MaxHP > 0 && e.HP < e.MaxHP {
				barY := int32(pos.Y - radius - 4*scale)
				rl.DrawRectangle(int32(pos.X-radius), barY, int32(radius*2), 3, rl.Maroon)
				rl.DrawRectangle(int32(pos.X-radius), barY, int32(radius*2*float32(e.HP/e.MaxHP)), 3, rl.Red)
			}
		}
	}

	for i := range snap.Projectiles {
		p := &snap.Projectiles[i]
		clr := colorToRL(config.FriendlyShot)
		if p.IsHostile {
			clr = colorToRL(config.HostileShot)
		}
		rl.DrawCircleV(toScreen(cam, p.Pos), float32(p.Radius)*scale, clr)
	}

	for i := range snap.Effects {
		drawEffect(cam, &snap.Effects[i])
	}

	for i := range snap.Texts {
		t := &snap.Texts[i]
		pos := toScreen(cam, t.Pos)
		alpha := float32(t.Life) / config.FloatingTextLife
		w := rl.MeasureText(t.Text, 16)
		rl.DrawText(t.Text, int32(pos.X)-w/2, int32(pos.Y), 16, rl.Fade(colorToRL(t.Color), alpha))
	}
}

func drawFloor(cam *view.Camera) {
	lineColor := colorToRL(config.FloorTileColor)
	halfW := float64(cam.Width) / 2 / cam.Scale
	halfH := float64(cam.Height) / 2 / cam.Scale
	for x := math.Floor((cam.Pos.X-halfW)/floorGridStep) * floorGridStep; x <= cam.Pos.X+halfW; x += floorGridStep {
		sx, _ := cam.WorldToScreen(types.Vector2{X: x})
		rl.DrawLine(int32(sx), 0, int32(sx), int32(cam.Height), lineColor)
	}
	for y := math.Floor((cam.Pos.Y-halfH)/floorGridStep) * floorGridStep; y <= cam.Pos.Y+halfH; y += floorGridStep {
		_, sy := cam.WorldToScreen(types.Vector2{Y: y})
		rl.DrawLine(0, int32(sy), int32(cam.Width), int32(sy), lineColor)
	}
}

func drawEffect(cam *view.Camera, fx *component.VisualEffect) {
	alpha := float32(1)
	if fx.MaxLife > 0 {
		alpha = float32(fx.Life) / float32(fx.MaxLife)
	}
	clr := rl.Fade(colorToRL(fx.Color), alpha)
	pos := toScreen(cam, fx.Pos)
	scale := float32(cam.Scale)

	switch fx.Kind {
	case component.VisualSlash:
		// raylib считает углы сектора в градусах
		start := float32((fx.Angle - fx.Arc/2) * 180 / math.Pi)
		end := float32((fx.Angle + fx.Arc/2) * 180 / math.Pi)
		rl.DrawCircleSector(pos, float32(fx.Range)*scale, start, end, 24, rl.Fade(clr, 0.35))
	case component.VisualLightning:
		rl.DrawLineEx(pos, toScreen(cam, fx.To), 2, clr)
	case component.VisualImpact:
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), (4+(1-alpha)*6)*scale, clr)
	case component.VisualExplosion:
		rl.DrawCircleV(pos, 60*(1-alpha*0.5)*scale, rl.Fade(clr, 0.6))
	case component.VisualNuke:
		rl.DrawRectangle(0, 0, int32(cam.Width), int32(cam.Height), rl.Fade(clr, 0.8*alpha))
	}
}
