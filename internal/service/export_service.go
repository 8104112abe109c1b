package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/mustafashaheen1/ai-support-dashboard/internal/domain"
)

var exportHeaders = []string{"ID", "Customer", "Subject", "Status", "Priority", "Sentiment", "Category", "Created At"}

// ExportService serializes a ticket list to the fixed-column CSV the
// dashboard downloads. The caller decides which list: the subscribed
// view or the active search results.
type ExportService struct {
	now func() time.Time
}

// NewExportService constructs the service.
func NewExportService(now func() time.Time) *ExportService {
	if now == nil {
		now = time.Now
	}
	return &ExportService{now: now}
}

// Filename templates the download name with the current date.
func (s *ExportService) Filename() string {
	return fmt.Sprintf("support-tickets-%s.csv", s.now().UTC().Format("2006-01-02"))
}

// BuildCSV renders the tickets with the fixed column set. The ID column
// carries the short display suffix, not the full store id.
func (s *ExportService) BuildCSV(tickets []domain.Ticket) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, ticket := range tickets {
		category := ticket.Category
		if category == "" {
			category = "N/A"
		}
		row := []string{
			shortID(ticket.ID),
			ticket.Customer,
			ticket.Subject,
			string(ticket.Status),
			string(ticket.Priority),
			string(ticket.Sentiment),
			category,
			ticket.ClientTimestamp,
		}
		if err := writer.Write(row); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// shortID keeps the trailing 6 characters shown in the ticket list.
func shortID(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
