package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/dialsim/internal/scene"
)

const (
	background = "#0a0a0a"
	wallColor  = "#444466"
	linkColor  = "#888899"
	discColor  = "#00ccff"
	pinColor   = "#ffaa00"
)

// FrameToSVG draws one frame of a scene: the round wall, the links and
// every disc, scaled by scale.
func FrameToSVG(f scene.Frame, scale float64) string {
	if scale <= 0 {
		scale = 1
	}
	w, h := f.World.Width*scale, f.World.Height*scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background)

	fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="none" stroke="%s" stroke-width="2"/>
`, f.World.Center.X*scale, f.World.Center.Y*scale, f.World.Radius*scale, wallColor)

	sb.WriteString(`<g stroke="` + linkColor + `" stroke-width="2">` + "\n")
	for _, l := range f.Links {
		a, b := f.Discs[l.A].Pos, f.Discs[l.B].Pos
		fmt.Fprintf(&sb, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>
`, a.X*scale, a.Y*scale, b.X*scale, b.Y*scale)
	}
	sb.WriteString("</g>\n")

	for _, d := range f.Discs {
		color := d.Color
		if color == "" {
			color = discColor
		}
		if d.Pinned {
			color = pinColor
		}
		if len(d.Corners) > 0 {
			sb.WriteString(`<polygon fill="` + color + `" points="`)
			for i, c := range d.Corners {
				if i > 0 {
					sb.WriteByte(' ')
				}
				fmt.Fprintf(&sb, "%.1f,%.1f", c.X*scale, c.Y*scale)
			}
			sb.WriteString(`"/>` + "\n")
			continue
		}
		fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, d.Pos.X*scale, d.Pos.Y*scale, d.Radius*scale, color)
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// SeriesToSVG plots one metric series as a polyline.
func SeriesToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = min(minV, v)
		maxV = max(maxV, v)
	}
	span := maxV - minV
	if span == 0 {
		span = 1
	}
	minV -= span * 0.1
	span *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor)

	last := float64(len(values) - 1)
	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minV)/span*float64(height)
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
