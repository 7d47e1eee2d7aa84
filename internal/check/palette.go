package check

import (
	"image"
	"image/color"
	"sort"
)

// RGB is an 8-bit-per-channel color sample.
type RGB struct {
	R, G, B uint8
}

// PaletteColor is one named reference color.
type PaletteColor struct {
	Name  string
	Value RGB
}

// DefaultPalette is the named palette the color check classifies against.
// Order matters: nearest-distance ties resolve to the earlier entry.
func DefaultPalette() []PaletteColor {
	return []PaletteColor{
		{Name: "white", Value: RGB{255, 255, 255}},
		{Name: "red", Value: RGB{255, 0, 0}},
		{Name: "green", Value: RGB{0, 255, 0}},
		{Name: "blue", Value: RGB{0, 0, 255}},
	}
}

// ClosestColor classifies a sample to the nearest palette entry by squared
// Euclidean distance in channel space. Ties keep the earliest entry.
func ClosestColor(palette []PaletteColor, s RGB) string {
	best := ""
	bestDist := -1
	for _, p := range palette {
		d := sqDist(p.Value, s)
		if bestDist < 0 || d < bestDist {
			best = p.Name
			bestDist = d
		}
	}
	return best
}

func sqDist(a, b RGB) int {
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return dr*dr + dg*dg + db*db
}

// maxHistogramColors caps the distinct-color histogram. A crop with more
// distinct colors than this yields no histogram and the sampling rule does
// not apply; busy photographic crops carry no usable color signal.
const maxHistogramColors = 256

// dominantColors returns the crop's distinct colors ordered by decreasing
// pixel count, or nil when the crop is empty or exceeds the histogram cap.
// Count ties order by packed RGB value so results are deterministic.
func dominantColors(img image.Image, crop image.Rectangle) []RGB {
	crop = crop.Intersect(img.Bounds())
	if crop.Empty() {
		return nil
	}

	hist := make(map[RGB]int)
	for y := crop.Min.Y; y < crop.Max.Y; y++ {
		for x := crop.Min.X; x < crop.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			hist[RGB{c.R, c.G, c.B}]++
			if len(hist) > maxHistogramColors {
				return nil
			}
		}
	}

	out := make([]RGB, 0, len(hist))
	for c := range hist {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if hist[out[i]] != hist[out[j]] {
			return hist[out[i]] > hist[out[j]]
		}
		return packRGB(out[i]) < packRGB(out[j])
	})
	return out
}

func packRGB(c RGB) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
