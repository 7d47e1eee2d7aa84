// Package task defines the annotation-task data model shared by the
// platform client, the task cache, and the quality checks.
//
// Tasks and annotations are read-only inputs: the checks never mutate
// them, they only produce new issue records.
package task

// Labels used by the check rules. The platform label set is larger; only
// these two carry special semantics.
const (
	LabelNonVisibleFace     = "non_visible_face"
	LabelTrafficControlSign = "traffic_control_sign"
)

// Attribute sentinel values.
const (
	OcclusionZero     = "0%"
	AttrNotApplicable = "not_applicable"
	BackgroundOther   = "other"
)

// Task is one unit of annotator work: a source image plus the annotations
// submitted against it.
type Task struct {
	ID          string       `json:"task_id"`
	ImageURL    string       `json:"image_url"`
	Annotations []Annotation `json:"annotations"`
}

// Annotation is one labeled axis-aligned bounding box within a task.
// Coordinates are image pixels; width/height may be fractional when the
// annotator's tool reported sub-pixel geometry.
type Annotation struct {
	ID     string  `json:"uuid"`
	Label  string  `json:"label"`
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Attributes Attributes `json:"attributes"`
}

// Attributes holds the annotator-supplied attribute map fields the checks
// care about.
type Attributes struct {
	// Occlusion is the self-reported occlusion bucket, e.g. "0%", "25%",
	// or "not_applicable".
	Occlusion string `json:"occlusion"`
	// BackgroundColor is a named color, "not_applicable", or "other".
	BackgroundColor string `json:"background_color"`
}
