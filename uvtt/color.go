package uvtt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MinOpacity is the floor applied to light opacity on import so that a light
// with a near-zero packed alpha never becomes invisible in the editor.
const MinOpacity = 0.2

// ParseColor splits a packed 8-hex-digit RRGGBBAA interchange color into a
// "#rrggbb" string and an opacity in [MinOpacity, 1]. Malformed input (wrong
// length or non-hex digits) falls back to opaque white.
func ParseColor(packed string) (color string, opacity float64) {
	if len(packed) != 8 {
		return "#ffffff", 1
	}
	v, err := strconv.ParseUint(packed, 16, 32)
	if err != nil {
		return "#ffffff", 1
	}

	rgb := v >> 8
	alpha := v & 0xff

	opacity = float64(alpha) / 255
	if opacity < MinOpacity {
		opacity = MinOpacity
	}
	return fmt.Sprintf("#%06x", rgb), opacity
}

// PackColor combines a "#rrggbb" color and an opacity into the canonical
// uppercase RRGGBBAA interchange form. Opacity is clamped to [0, 1];
// malformed colors pack as opaque white. Exact inverse of ParseColor apart
// from the MinOpacity floor: PackColor(ParseColor(x)) == x for any
// well-formed uppercase x whose alpha is at least 0.2*255.
func PackColor(color string, opacity float64) string {
	hex := strings.TrimPrefix(color, "#")
	rgb, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		rgb = 0xffffff
	}

	if opacity < 0 {
		opacity = 0
	} else if opacity > 1 {
		opacity = 1
	}
	alpha := uint64(math.Round(opacity * 255))

	return fmt.Sprintf("%06X%02X", rgb, alpha)
}
