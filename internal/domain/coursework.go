package domain

import "time"

type Task struct {
	ID          string     `json:"id"`
	CourseID    string     `json:"courseId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	DueAt       *time.Time `json:"dueAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type Exam struct {
	ID              string    `json:"id"`
	CourseID        string    `json:"courseId"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	ScheduledAt     time.Time `json:"scheduledAt"`
	DurationMinutes int       `json:"durationMinutes"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ResourceKind clasifica el material publicado en un curso.
type ResourceKind string

const (
	ResourceLink     ResourceKind = "link"
	ResourceDocument ResourceKind = "document"
	ResourceVideo    ResourceKind = "video"
)

func (k ResourceKind) Valid() bool {
	switch k {
	case ResourceLink, ResourceDocument, ResourceVideo:
		return true
	}
	return false
}

type Resource struct {
	ID        string       `json:"id"`
	CourseID  string       `json:"courseId"`
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Kind      ResourceKind `json:"kind"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
