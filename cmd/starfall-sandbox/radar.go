package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/starfall/engine"
	"github.com/lixenwraith/starfall/event"
	"github.com/lixenwraith/starfall/scene"
	"github.com/lixenwraith/starfall/vmath"
)

const (
	radarRange = 600.0 // World units from the ship to the nearest screen edge
	hudLines   = 2
)

var kindGlyph = map[scene.Kind]rune{
	scene.KindSpacecraft: '@',
	scene.KindAlien:      'W',
	scene.KindPlanet:     'O',
	scene.KindSatellite:  '*',
	scene.KindProjectile: '.',
	scene.KindExplosion:  '#',
	scene.KindImpact:     '+',
}

var kindColor = map[scene.Kind]tcell.Color{
	scene.KindSpacecraft: tcell.ColorAqua,
	scene.KindAlien:      tcell.ColorRed,
	scene.KindPlanet:     tcell.ColorBlue,
	scene.KindSatellite:  tcell.ColorSilver,
	scene.KindProjectile: tcell.ColorYellow,
	scene.KindExplosion:  tcell.ColorOrange,
	scene.KindImpact:     tcell.ColorWhite,
}

// Radar is a top-down terminal scene looking along -Y, centered on the player ship
type Radar struct {
	*scene.Recorder
	screen tcell.Screen
}

func NewRadar(screen tcell.Screen) *Radar {
	return &Radar{Recorder: scene.NewRecorder(), screen: screen}
}

// Draw renders every visible node and the HUD, called on the loop goroutine
func (r *Radar) Draw(sim *engine.Simulation) {
	r.screen.Clear()
	w, h := r.screen.Size()
	fieldH := h - hudLines
	if w <= 0 || fieldH <= 0 {
		r.screen.Show()
		return
	}

	var center vmath.Vec3
	if p := sim.Player(); p != nil {
		center = p.Position
	}
	// Terminal cells are roughly twice as tall as wide
	unit := radarRange / float64(min(w/2, fieldH)/2+1)

	for _, n := range r.Nodes() {
		if !n.Visible || n.Detail == scene.DetailHidden {
			continue
		}
		rel := n.Position.Sub(center)
		x := w/2 + int(rel.X()*2/unit)
		y := fieldH/2 - int(rel.Z()/unit)
		if x < 0 || x >= w || y < 0 || y >= fieldH {
			continue
		}
		style := tcell.StyleDefault.Foreground(kindColor[n.Kind])
		if n.Detail >= scene.DetailLow {
			style = style.Dim(true)
		}
		r.screen.SetContent(x, y, kindGlyph[n.Kind], nil, style)
	}

	r.drawHUD(sim.HUD(), w, fieldH)
	r.screen.Show()
}

func (r *Radar) drawHUD(hud engine.HUD, w, y int) {
	status := fmt.Sprintf(" HULL %3.0f%%  SHLD %3.0f%%  NRG %3.0f%%  SPD %5.1f  CR %d",
		hud.Health*100, hud.Shield*100, hud.Energy*100, hud.Speed, hud.Credits)
	if hud.TargetIndex >= 0 {
		status += fmt.Sprintf("  TGT %d/%d %.0fm", hud.TargetIndex+1, hud.TargetCount, hud.TargetDistance)
	} else if hud.TargetCount > 0 {
		status += fmt.Sprintf("  TGT -/%d", hud.TargetCount)
	}
	r.text(0, y, w, status, tcell.StyleDefault.Foreground(tcell.ColorWhite).Reverse(true))

	if hud.Notice != "" {
		r.text(0, y+1, w, " "+hud.Notice, tcell.StyleDefault.Foreground(severityColor(hud.Severity)))
	}
}

func (r *Radar) text(x, y, w int, s string, style tcell.Style) {
	for _, ch := range s {
		if x >= w {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
	for ; x < w; x++ {
		r.screen.SetContent(x, y, ' ', nil, style)
	}
}

func severityColor(s event.Severity) tcell.Color {
	switch s {
	case event.SeverityCritical:
		return tcell.ColorRed
	case event.SeverityWarning:
		return tcell.ColorYellow
	default:
		return tcell.ColorGreen
	}
}
