package domain

import "time"

type Course struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ProfessorID string    `json:"professorId"`
	CycleID     *string   `json:"cycleId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Enrollment struct {
	CourseID  string    `json:"courseId"`
	StudentID string    `json:"studentId"`
	CreatedAt time.Time `json:"createdAt"`
}
