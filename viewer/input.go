package viewer

import (
	"github.com/der-antikeks/rtr/engine"
	"github.com/der-antikeks/rtr/navigator"
	"github.com/der-antikeks/rtr/scene"
)

const help = `keys:
	1..9      show model
	P T O     phong, toon, point shader
	B         cycle background
	X Y Z     rotation axis
	A         toggle animation
	S         toggle silhouette (toon)
	[ ]       silhouette threshold (toon)
	, .       discretize (toon)
	D         toggle discard (point)
	N M       density (point)
	K L       radius (point)
	I         cycle light intensity
	C         cycle light color
	F G J     cycle red, green, blue light channel
	arrows    rotate, distance
	+ -       distance
	R         reset rotation
	H         help
	Q Esc     quit`

// OnKey handles a printable key, letters upper case. It reports whether
// the key is bound.
func (v *Viewer) OnKey(r rune) bool {
	s := v.scene

	switch {
	case r >= '1' && r <= '9':
		i := int(r - '1')
		if i >= len(v.models) {
			return false
		}
		if err := s.SetSceneNode(v.models[i]); err != nil {
			engine.Logger().Warn("select model", "model", v.models[i], "err", err)
		}
		return true
	}

	switch r {
	case 'Q':
		v.quit = true

	case 'H':
		engine.Logger().Info(help)

	case 'P', 'T', 'O':
		name := map[rune]string{'P': "phong", 'T': "toon", 'O': "point"}[r]
		if err := s.SelectShader(name); err != nil {
			engine.Logger().Warn("select shader", "shader", name, "err", err)
		}

	case 'B':
		v.background = (v.background + 1) % len(Backgrounds)
		s.SetBackgroundColor(Backgrounds[v.background])

	case 'X':
		v.nav.SetRotateAxis(navigator.AxisX)
	case 'Y':
		v.nav.SetRotateAxis(navigator.AxisY)
	case 'Z':
		v.nav.SetRotateAxis(navigator.AxisZ)

	case 'A':
		s.ToggleAnimation(!s.Animating())

	case 'S':
		if s.EnableSilhouette(!v.silhouette) {
			v.silhouette = !v.silhouette
		}

	case '[', ']':
		t := v.threshold - 0.05
		if r == ']' {
			t = v.threshold + 0.05
		}
		t = clamp(t, 0, 1)
		if s.SetThreshold(t) {
			v.threshold = t
		}

	case ',', '.':
		d := v.discretize - 1
		if r == '.' {
			d = v.discretize + 1
		}
		if d < 0 {
			d = 0
		}
		if s.SetDiscretize(d) {
			v.discretize = d
		}

	case 'D':
		if s.SetDiscard(!v.discard) {
			v.discard = !v.discard
		}

	case 'N', 'M':
		d := v.density - 1
		if r == 'M' {
			d = v.density + 1
		}
		if d < 1 {
			d = 1
		}
		if s.SetDensity(d) {
			v.density = d
		}

	case 'K', 'L':
		rad := v.radius - 0.05
		if r == 'L' {
			rad = v.radius + 0.05
		}
		rad = clamp(rad, 0.05, 0.5)
		if s.SetRadius(rad) {
			v.radius = rad
		}

	case 'F', 'G', 'J':
		c := map[rune]int{'F': scene.Red, 'G': scene.Green, 'J': scene.Blue}[r]
		f := v.rgb[c] + 0.25
		if f > 1 {
			f = 0
		}
		if s.SetLightColorChannel(c, f) {
			v.rgb[c] = f
		}

	case 'I':
		v.intensity += 0.25
		if v.intensity > 1 {
			v.intensity = 0
		}
		for i := range s.Lights() {
			s.SetLightIntensity(i, v.intensity)
		}

	case 'C':
		v.lightColor = (v.lightColor + 1) % 4
		r, g, b := float32(1), float32(1), float32(1)
		switch v.lightColor {
		case 1:
			g, b = 0.2, 0.2
		case 2:
			r, b = 0.2, 0.2
		case 3:
			r, g = 0.2, 0.2
		}
		if s.SetRedIntensity(r) && s.SetGreenIntensity(g) && s.SetBlueIntensity(b) {
			v.rgb = [3]float32{r, g, b}
		}

	case 'R':
		return v.Navigate(navigator.KeyReset, navigator.Press)
	case '+', '=':
		return v.Navigate(navigator.KeyZoomIn, navigator.Press)
	case '-':
		return v.Navigate(navigator.KeyZoomOut, navigator.Press)

	default:
		return false
	}

	return true
}

// Navigate passes a key to the camera navigator.
func (v *Viewer) Navigate(k navigator.Key, a navigator.Action) bool {
	if !v.nav.OnKey(k, a) {
		return false
	}
	v.scene.RequestRedraw()
	return true
}

func (v *Viewer) Scroll(x, y float64) {
	if v.nav.OnScroll(x, y) {
		v.scene.RequestRedraw()
	}
}

// Resize redraws with the new aspect ratio.
func (v *Viewer) Resize(w, h int) {
	engine.Logger().Debug("resize", "width", w, "height", h)
	v.scene.RequestRedraw()
}

func clamp(f, min, max float32) float32 {
	if f < min {
		return min
	}
	if f > max {
		return max
	}
	return f
}
