package scale

import "annolint/internal/task"

// PagedTasks is one page of the task listing response.
type PagedTasks struct {
	Docs   []TaskResource `json:"docs"`
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// TaskResource represents one platform task document.
type TaskResource struct {
	TaskID  string        `json:"task_id"`
	Type    string        `json:"type"`
	Status  string        `json:"status"`
	Project string        `json:"project,omitempty"`
	Params  TaskParams    `json:"params"`
	Reply   *TaskResponse `json:"response,omitempty"`
}

// TaskParams holds the task's input parameters; Attachment is the source
// image URL.
type TaskParams struct {
	Attachment     string `json:"attachment"`
	AttachmentType string `json:"attachment_type,omitempty"`
}

// TaskResponse holds the annotator's submitted work.
type TaskResponse struct {
	Annotations []AnnotationResource `json:"annotations"`
}

// AnnotationResource is one submitted bounding box.
type AnnotationResource struct {
	UUID       string            `json:"uuid"`
	Label      string            `json:"label"`
	Left       float64           `json:"left"`
	Top        float64           `json:"top"`
	Width      float64           `json:"width"`
	Height     float64           `json:"height"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// ToTask maps a platform task document into the auditor's task model.
// Tasks with no response yet map to an empty annotation list.
func (r *TaskResource) ToTask() task.Task {
	t := task.Task{
		ID:       r.TaskID,
		ImageURL: r.Params.Attachment,
	}
	if r.Reply == nil {
		return t
	}
	t.Annotations = make([]task.Annotation, 0, len(r.Reply.Annotations))
	for _, a := range r.Reply.Annotations {
		t.Annotations = append(t.Annotations, task.Annotation{
			ID:     a.UUID,
			Label:  a.Label,
			Left:   a.Left,
			Top:    a.Top,
			Width:  a.Width,
			Height: a.Height,
			Attributes: task.Attributes{
				Occlusion:       a.Attributes["occlusion"],
				BackgroundColor: a.Attributes["background_color"],
			},
		})
	}
	return t
}

// ToTasks maps a slice of platform documents, preserving order.
func ToTasks(docs []TaskResource) []task.Task {
	out := make([]task.Task, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].ToTask())
	}
	return out
}
