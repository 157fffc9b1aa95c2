package bulk

import (
	"context"
	"strings"
	"testing"

	"notigate/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdmitRowsCountsExcludeHeader(t *testing.T) {
	svc := NewService()

	job, err := svc.Admit(context.Background(), Request{
		TemplateID: "tpl-1",
		Name:       "welcome blast",
		Rows: [][]string{
			{"email address", "name"},
			{"a@example.com", "Alice"},
			{"b@example.com", "Bob"},
		},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, "tpl-1", job.TemplateID)
	assert.Equal(t, StatusPending, job.JobStatus)
	assert.Equal(t, 2, job.NotificationCount)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestAdmitCSVCountsNewlineSeparatedLines(t *testing.T) {
	svc := NewService()

	job, err := svc.Admit(context.Background(), Request{
		TemplateID: "tpl-1",
		Name:       "csv blast",
		CSV:        "email address,name\na@example.com,Alice\nb@example.com,Bob",
	})

	require.NoError(t, err)
	assert.Equal(t, 2, job.NotificationCount)
}

func TestAdmitRequiresRowsOrCSV(t *testing.T) {
	svc := NewService()

	_, err := svc.Admit(context.Background(), Request{TemplateID: "tpl-1", Name: "n"})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "you should specify either rows or csv", validation.Message)
}

func TestAdmitRejectsRowsAndCSVTogether(t *testing.T) {
	svc := NewService()

	_, err := svc.Admit(context.Background(), Request{
		TemplateID: "tpl-1",
		Name:       "n",
		Rows:       [][]string{{"email address"}, {"a@example.com"}},
		CSV:        "email address\na@example.com",
	})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
}

func TestAdmitEnforcesRowCap(t *testing.T) {
	svc := NewService()
	ctx := context.Background()

	rows := make([][]string, MaxRows+2) // header + 50001 data rows
	for i := range rows {
		rows[i] = []string{"a@example.com"}
	}
	_, err := svc.Admit(ctx, Request{TemplateID: "tpl-1", Name: "n", Rows: rows})
	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Message, "50000")

	job, err := svc.Admit(ctx, Request{TemplateID: "tpl-1", Name: "n", Rows: rows[:MaxRows+1]})
	require.NoError(t, err)
	assert.Equal(t, MaxRows, job.NotificationCount)
}

func TestAdmitEnforcesRowCapForCSV(t *testing.T) {
	svc := NewService()

	csv := "email address\n" + strings.TrimSuffix(strings.Repeat("a@example.com\n", MaxRows+1), "\n")
	_, err := svc.Admit(context.Background(), Request{TemplateID: "tpl-1", Name: "n", CSV: csv})

	var validation *common.ValidationError
	require.ErrorAs(t, err, &validation)
}
