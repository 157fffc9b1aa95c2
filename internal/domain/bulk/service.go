package bulk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"notigate/internal/common"

	"github.com/google/uuid"
)

// Service is the bulk admission controller: a pure shape/size gate plus
// job-record creation.
type Service struct{}

// NewService creates a new bulk admission service.
func NewService() *Service {
	return &Service{}
}

// Admit validates the request shape and size and creates a pending job
// record. Row counts exclude the header row.
func (s *Service) Admit(ctx context.Context, req Request) (Job, error) {
	hasRows := len(req.Rows) > 0
	hasCSV := req.CSV != ""

	if !hasRows && !hasCSV {
		return Job{}, common.NewValidationError("you should specify either rows or csv")
	}
	if hasRows && hasCSV {
		return Job{}, common.NewValidationError("you should specify either rows or csv, not both")
	}

	var count int
	if hasRows {
		count = len(req.Rows) - 1
	} else {
		count = len(strings.Split(req.CSV, "\n")) - 1
	}

	if count > MaxRows {
		return Job{}, common.NewValidationError(
			fmt.Sprintf("too many rows, maximum number of rows allowed is %d", MaxRows))
	}

	job := Job{
		ID:                uuid.NewString(),
		TemplateID:        req.TemplateID,
		JobStatus:         StatusPending,
		NotificationCount: count,
		CreatedAt:         time.Now().UTC(),
	}

	slog.Info("bulk job admitted",
		"id", job.ID,
		"template_id", job.TemplateID,
		"name", req.Name,
		"notification_count", job.NotificationCount,
	)
	return job, nil
}
