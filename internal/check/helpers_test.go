package check

import (
	"image"
	"image/color"

	"annolint/internal/task"
)

// box builds an annotation with the given geometry and attributes.
func box(id string, left, top, width, height float64, occlusion string) task.Annotation {
	return task.Annotation{
		ID:     id,
		Label:  "car",
		Left:   left,
		Top:    top,
		Width:  width,
		Height: height,
		Attributes: task.Attributes{
			Occlusion:       occlusion,
			BackgroundColor: "yellow",
		},
	}
}

// solidImage returns a w x h image filled with one color.
func solidImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}
