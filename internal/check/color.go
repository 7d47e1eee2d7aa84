package check

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"annolint/internal/imagery"
	"annolint/internal/logging"
	"annolint/internal/task"
)

// trafficLightMaxRatio is the width/height ratio below which a
// traffic_control_sign box is considered a traffic-light silhouette.
const trafficLightMaxRatio = 0.55

// ColorCheck verifies that an annotation's declared background color is
// consistent with its label semantics and with the pixels inside its box.
//
// The rules run in order, first match wins:
//  1. non_visible_face must declare "not_applicable";
//  2. "not_applicable" is only valid on non_visible_face;
//  3. tall, narrow traffic_control_sign boxes (traffic lights) must declare
//     "other", not a named color;
//  4. a declared palette color is sampled against the two dominant colors
//     inside the box; matching either passes.
//
// Colors outside the palette that pass rules 1-3 pass silently: plausible
// but unrecognized colors are not penalized.
type ColorCheck struct {
	// Palette is the ordered set of named reference colors. Defaults to
	// DefaultPalette.
	Palette []PaletteColor

	src imagery.Source
	log *slog.Logger
}

// NewColorCheck returns the check; task images are retrieved through src.
func NewColorCheck(src imagery.Source) *ColorCheck {
	return &ColorCheck{
		Palette: DefaultPalette(),
		src:     src,
		log:     logging.New("check.color"),
	}
}

// Name implements Check.
func (c *ColorCheck) Name() Type { return TypeColor }

// Evaluate implements Check. An image fetch or decode failure is returned
// as an error and aborts the batch: a partial report would be misleading.
func (c *ColorCheck) Evaluate(ctx context.Context, t *task.Task) ([]Issue, error) {
	var issues []Issue

	structural := func(a *task.Annotation, explanation string) {
		issues = append(issues, Issue{
			Type:        TypeColor,
			Severity:    SeverityStructural,
			Annotations: []string{a.ID},
			TaskID:      t.ID,
			Explanation: explanation,
		})
	}

	for i := range t.Annotations {
		a := &t.Annotations[i]
		declared := a.Attributes.BackgroundColor

		switch {
		case declared != task.AttrNotApplicable && a.Label == task.LabelNonVisibleFace:
			structural(a, "Incorrect color labelled for non_visible_face")

		case declared == task.AttrNotApplicable && a.Label != task.LabelNonVisibleFace:
			structural(a, "Incorrect object labelled with not_applicable color")

		case a.Label == task.LabelTrafficControlSign &&
			isTrafficLight(a.Width, a.Height) &&
			declared != task.BackgroundOther:
			structural(a, "Traffic light labelled with a color")

		case c.inPalette(declared):
			ok, err := c.sampleMatches(ctx, t.ImageURL, a, declared)
			if err != nil {
				return nil, err
			}
			if !ok {
				issues = append(issues, Issue{
					Type:        TypeColor,
					Severity:    SeverityAdvisory,
					Annotations: []string{a.ID},
					TaskID:      t.ID,
					Explanation: "Potential color issue",
				})
			}
		}
	}
	return issues, nil
}

func isTrafficLight(width, height float64) bool {
	return width/height < trafficLightMaxRatio
}

func (c *ColorCheck) inPalette(name string) bool {
	for _, p := range c.Palette {
		if p.Name == name {
			return true
		}
	}
	return false
}

// sampleMatches fetches the task image, crops to the annotation's box and
// reports whether either of the two most frequent crop colors classifies to
// the declared palette color. A crop with no histogram (empty, or busier
// than the cap) passes: there is no signal to judge against.
func (c *ColorCheck) sampleMatches(ctx context.Context, url string, a *task.Annotation, declared string) (bool, error) {
	img, err := c.src.Fetch(ctx, url)
	if err != nil {
		return false, fmt.Errorf("fetch task image: %w", err)
	}

	crop := image.Rect(
		trunc(a.Left), trunc(a.Top),
		trunc(a.Left+a.Width), trunc(a.Top+a.Height),
	)
	dominant := dominantColors(img, crop)
	if dominant == nil {
		c.log.Debug("no color histogram for crop, passing",
			"annotation", a.ID, "crop", crop.String())
		return true, nil
	}
	if len(dominant) > 2 {
		dominant = dominant[:2]
	}

	for _, sample := range dominant {
		if ClosestColor(c.Palette, sample) == declared {
			return true, nil
		}
	}
	return false, nil
}
