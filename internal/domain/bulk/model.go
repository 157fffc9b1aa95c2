package bulk

import "time"

// MaxRows is the admission cap on data rows in a single bulk request.
const MaxRows = 50000

// StatusPending is the only job status this service ever assigns. Later
// transitions happen outside this service.
const StatusPending = "pending"

// Request is an admission request for a bulk send. Exactly one of Rows or
// CSV carries the recipients; the first row (or line) is the header.
type Request struct {
	TemplateID   string
	Name         string
	Reference    string
	Rows         [][]string
	CSV          string
	ScheduledFor string
	ReplyToID    string
}

// Job is the record created for an admitted bulk request. Recipients are not
// parsed, the template is not dereferenced, and no message is sent.
type Job struct {
	ID                string    `json:"id"`
	TemplateID        string    `json:"template_id"`
	JobStatus         string    `json:"job_status"`
	NotificationCount int       `json:"notification_count"`
	CreatedAt         time.Time `json:"created_at"`
}
