// cmd/arena-rl/hud.go
package main

import (
	"image/color"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Button представляет собой кликабельную кнопку в UI.
type Button struct {
	Rect       rl.Rectangle
	Text       string
	Caption    string
	TextColor  rl.Color
	BgColor    rl.Color
	HoverColor rl.Color
	Border     rl.Color
	FontSize   int32
}

// NewButton создает новую кнопку.
func NewButton(rect rl.Rectangle, text string) *Button {
	return &Button{
		Rect:       rect,
		Text:       text,
		TextColor:  rl.RayWhite,
		BgColor:    rl.NewColor(40, 50, 65, 235),
		HoverColor: rl.NewColor(60, 75, 95, 235),
		Border:     rl.Gray,
		FontSize:   20,
	}
}

// IsClicked проверяет, был ли сделан клик по кнопке.
func (b *Button) IsClicked(mousePos rl.Vector2) bool {
	return rl.CheckCollisionPointRec(mousePos, b.Rect) && rl.IsMouseButtonPressed(rl.MouseLeftButton)
}

// Draw отрисовывает кнопку.
func (b *Button) Draw(mousePos rl.Vector2) {
	bgColor := b.BgColor
	if rl.CheckCollisionPointRec(mousePos, b.Rect) {
		bgColor = b.HoverColor
	}

	rl.DrawRectangleRec(b.Rect, bgColor)
	rl.DrawRectangleLinesEx(b.Rect, 2, b.Border)

	textWidth := rl.MeasureText(b.Text, b.FontSize)
	textX := int32(b.Rect.X) + (int32(b.Rect.Width)-textWidth)/2
	textY := int32(b.Rect.Y + b.Rect.Height/3 - float32(b.FontSize)/2)
	if b.Caption == "" {
		textY = int32(b.Rect.Y + (b.Rect.Height-float32(b.FontSize))/2)
	}
	rl.DrawText(b.Text, textX, textY, b.FontSize, b.TextColor)

	if b.Caption != "" {
		capSize := b.FontSize * 3 / 4
		capWidth := rl.MeasureText(b.Caption, capSize)
		capX := int32(b.Rect.X) + (int32(b.Rect.Width)-capWidth)/2
		capY := int32(b.Rect.Y + b.Rect.Height*2/3 - float32(capSize)/2)
		rl.DrawText(b.Caption, capX, capY, capSize, b.Border)
	}
}

const (
	HealthCols          = 10
	HealthCircleRadius  = 7.0
	HealthCircleSpacing = 4.0
)

// PlayerHealthIndicator отображает здоровье игрока рядом кружков, каждый — 10% запаса.
type PlayerHealthIndicator struct {
	Position rl.Vector2
}

func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{Position: rl.NewVector2(x, y)}
}

// Draw рисует здоровье красными кружками, щит поверх них синими.
func (i *PlayerHealthIndicator) Draw(health, maxHealth, shield, maxShield float64) {
	filled := 0
	if maxHealth > 0 {
		filled = int(health / maxHealth * HealthCols)
		if health > 0 && filled == 0 {
			filled = 1
		}
	}
	shielded := 0
	if maxShield > 0 {
		shielded = int(shield / maxShield * HealthCols)
	}

	for j := 0; j < HealthCols; j++ {
		x := i.Position.X + float32(j)*(HealthCircleRadius*2+HealthCircleSpacing) + HealthCircleRadius
		y := i.Position.Y + HealthCircleRadius

		var clr rl.Color
		switch {
		case j < shielded:
			clr = rl.Blue
		case j < filled:
			clr = rl.Red
		default:
			clr = rl.Black
		}
		rl.DrawCircle(int32(x), int32(y), HealthCircleRadius, clr)
		rl.DrawCircleLines(int32(x), int32(y), HealthCircleRadius, rl.White)
	}

	healthText := strconv.Itoa(int(health)) + "/" + strconv.Itoa(int(maxHealth))
	rl.DrawText(healthText, int32(i.Position.X), int32(i.Position.Y)+HealthCircleRadius*2+6, 20, rl.White)
}

// WaveIndicator отображает номер текущей волны римскими цифрами.
type WaveIndicator struct {
	X, Y             int32
	FontSize         int32
	Color            rl.Color
	OutlineColor     rl.Color
	OutlineThickness int32
}

func NewWaveIndicator(x, y, fontSize int32) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		FontSize:         fontSize,
		Color:            rl.SkyBlue,
		OutlineColor:     rl.Black,
		OutlineThickness: 2,
	}
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}

func (i *WaveIndicator) Draw(waveNumber int) {
	if waveNumber <= 0 {
		return
	}
	text := toRoman(waveNumber)
	textColor := i.Color
	if waveNumber%10 == 0 {
		textColor = rl.Red
	}

	textX := i.X - rl.MeasureText(text, i.FontSize)/2
	for y := -i.OutlineThickness; y <= i.OutlineThickness; y++ {
		for x := -i.OutlineThickness; x <= i.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			rl.DrawText(text, textX+x, i.Y+y, i.FontSize, i.OutlineColor)
		}
	}
	rl.DrawText(text, textX, i.Y, i.FontSize, textColor)
}

// colorToRL преобразует стандартный color.Color в rl.Color
func colorToRL(c color.Color) rl.Color {
	r, g, b, a := c.RGBA()
	return rl.NewColor(uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8))
}

// ColorLerp выполняет линейную интерполяцию между двумя цветами
func ColorLerp(c1, c2 rl.Color, t float32) rl.Color {
	return rl.NewColor(
		uint8(float32(c1.R)*(1-t)+float32(c2.R)*t),
		uint8(float32(c1.G)*(1-t)+float32(c2.G)*t),
		uint8(float32(c1.B)*(1-t)+float32(c2.B)*t),
		uint8(float32(c1.A)*(1-t)+float32(c2.A)*t),
	)
}
