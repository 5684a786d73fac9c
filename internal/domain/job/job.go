package job

import (
	"time"

	"talentdesk/internal/common"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusClosed    Status = "closed"
)

type Job struct {
	ID           common.UUID `json:"id"`
	Title        string      `json:"title"`
	Department   string      `json:"department"`
	Description  string      `json:"description"`
	Requirements []string    `json:"requirements"`
	Location     string      `json:"location"`
	Salary       string      `json:"salary"`
	Status       Status      `json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
