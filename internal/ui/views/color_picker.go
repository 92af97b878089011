package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dori/quadro/internal/model"
	"github.com/dori/quadro/internal/ui/theme"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Slider indexes of the colour picker
const (
	sliderHue = iota
	sliderSaturation
	sliderValue
	sliderCount
)

// ColorPicker edits a colour with hue, saturation and value sliders
type ColorPicker struct {
	hue        float64 // [0, 360)
	saturation float64 // [0, 1]
	value      float64 // [0, 1]
	slider     int
	width      int
}

// NewColorPicker starts the picker at hex, or at the default category colour
// when hex does not parse
func NewColorPicker(hex string) ColorPicker {
	p := ColorPicker{width: 32}
	if next, ok := p.SetHex(hex); ok {
		return next
	}
	next, _ := p.SetHex(model.DefaultCategoryColor)
	return next
}

// normalizeHex accepts "#rrggbb" or "rrggbb" in any case and returns the
// lowercase "#rrggbb" form
func normalizeHex(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 7 {
		return "", false
	}
	if _, err := colorful.Hex(s); err != nil {
		return "", false
	}
	return s, true
}

// SetHex moves the sliders to the colour. It reports false and leaves the
// picker unchanged when hex is not a valid colour.
func (p ColorPicker) SetHex(hex string) (ColorPicker, bool) {
	hex, ok := normalizeHex(hex)
	if !ok {
		return p, false
	}
	c, _ := colorful.Hex(hex)
	p.hue, p.saturation, p.value = c.Hsv()
	if math.IsNaN(p.hue) {
		p.hue = 0
	}
	return p, true
}

// Hex returns the selected colour as lowercase "#rrggbb"
func (p ColorPicker) Hex() string {
	return colorful.Hsv(p.hue, p.saturation, p.value).Clamped().Hex()
}

// SetWidth sets the slider length in cells
func (p ColorPicker) SetWidth(width int) ColorPicker {
	if width < 8 {
		width = 8
	}
	p.width = width
	return p
}

// Slider returns the focused slider
func (p ColorPicker) Slider() int {
	return p.slider
}

// Focus selects a slider
func (p ColorPicker) Focus(slider int) ColorPicker {
	if slider >= 0 && slider < sliderCount {
		p.slider = slider
	}
	return p
}

// Update handles left/right on the focused slider and reports whether the
// colour changed. Shift moves in bigger steps.
func (p ColorPicker) Update(msg tea.KeyMsg) (ColorPicker, bool) {
	var steps float64
	switch msg.String() {
	case "left", "h":
		steps = -1
	case "right", "l":
		steps = 1
	case "shift+left", "H":
		steps = -5
	case "shift+right", "L":
		steps = 5
	default:
		return p, false
	}
	before := p.Hex()
	switch p.slider {
	case sliderHue:
		p.hue = math.Mod(p.hue+steps*5+360, 360)
	case sliderSaturation:
		p.saturation = clamp01(p.saturation + steps*0.02)
	case sliderValue:
		p.value = clamp01(p.value + steps*0.02)
	}
	return p, p.Hex() != before
}

func clamp01(f float64) float64 {
	return math.Max(0, math.Min(1, f))
}

// position returns the slider's fraction in [0, 1]
func (p ColorPicker) position(slider int) float64 {
	switch slider {
	case sliderHue:
		return p.hue / 360
	case sliderSaturation:
		return p.saturation
	default:
		return p.value
	}
}

// sample returns the colour at fraction f of a slider
func (p ColorPicker) sample(slider int, f float64) colorful.Color {
	switch slider {
	case sliderHue:
		return colorful.Hsv(f*360, 1, 1)
	case sliderSaturation:
		return colorful.Hsv(p.hue, f, p.value)
	default:
		return colorful.Hsv(p.hue, p.saturation, f)
	}
}

// View renders the three sliders and a swatch
func (p ColorPicker) View(focused bool) string {
	s := theme.Current.Styles
	labels := [sliderCount]string{"Matiz", "Saturação", "Brilho"}

	var rows []string
	for i := 0; i < sliderCount; i++ {
		marker := int(math.Round(p.position(i) * float64(p.width-1)))
		var bar strings.Builder
		for x := 0; x < p.width; x++ {
			f := float64(x) / float64(p.width-1)
			cell := lipgloss.NewStyle().Background(lipgloss.Color(p.sample(i, f).Clamped().Hex()))
			if x == marker {
				bar.WriteString(cell.Foreground(lipgloss.Color("#ffffff")).Bold(true).Render("┃"))
				continue
			}
			bar.WriteString(cell.Render(" "))
		}
		label := s.Label.Render(fmt.Sprintf("%-10s", labels[i]))
		if focused && i == p.slider {
			label = s.HelpKey.Render(fmt.Sprintf("%-10s", labels[i]))
		}
		rows = append(rows, label+bar.String())
	}
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(p.Hex())).Render("      ")
	rows = append(rows, s.Label.Render(fmt.Sprintf("%-10s", "Prévia"))+swatch+" "+s.Value.Render(p.Hex()))
	return strings.Join(rows, "\n")
}

// backgroundAlpha decodes the alpha suffix of a background colour
func backgroundAlpha(background string) float64 {
	if len(background) != 9 {
		background = model.BackgroundFor("#000000")
	}
	a, err := strconv.ParseUint(background[7:], 16, 8)
	if err != nil {
		return 0
	}
	return float64(a) / 255
}

// columnTint blends a category's translucent background over the theme
// background, since terminals have no alpha channel
func columnTint(c model.Category, base lipgloss.Color) lipgloss.Color {
	fg, err := colorful.Hex(c.Color)
	if err != nil {
		return base
	}
	bg, err := colorful.Hex(string(base))
	if err != nil {
		return base
	}
	return lipgloss.Color(bg.BlendRgb(fg, backgroundAlpha(c.BackgroundColor)).Hex())
}
