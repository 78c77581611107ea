package llm

import (
	"fmt"
	"time"
)

const (
	StatusSuccess           = "success"
	StatusNeedClarification = "need_clarification"
)

// Response is the structured object every provider must produce. Fields
// beyond Status are optional; consumers must not assume presence. The report
// contract extends the intake contract with the *Update fields.
type Response struct {
	Status               string   `json:"status"`
	ClarificationMessage string   `json:"clarificationMessage"`
	Options              []string `json:"options"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	AssigneeName         string   `json:"assigneeName"`
	DueDate              string   `json:"dueDate"`
	Priority             string   `json:"priority"`

	StatusUpdate     string `json:"statusUpdate,omitempty"`
	ProgressUpdate   *int   `json:"progressUpdate,omitempty"`
	Accomplishments  string `json:"accomplishments,omitempty"`
	RemainingWork    string `json:"remainingWork,omitempty"`
	SummarizedReport string `json:"summarizedReport,omitempty"`
}

// NeedsClarification reports whether the model asked for more input instead
// of producing task fields.
func (response Response) NeedsClarification() bool {
	return response.Status == StatusNeedClarification
}

// ParsedDueDate returns the due date when it is a real YYYY-MM-DD value. The
// model sometimes echoes back sentinels like "No date" or "null"; those and
// unparsable values yield ok=false.
func (response Response) ParsedDueDate() (time.Time, bool) {
	raw := response.DueDate
	if raw == "" || raw == "No date" || raw == "null" {
		return time.Time{}, false
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, false
	}
	return parsed, true
}

// Validate enforces the response contract the JSON schema promises: the
// status variant is exhaustive and enum/range fields are in bounds. Providers
// without schema-constrained generation are held to the same contract here.
func (response Response) Validate(kind Kind) error {
	switch response.Status {
	case StatusSuccess, StatusNeedClarification:
	default:
		return fmt.Errorf("invalid response status %q", response.Status)
	}

	if response.NeedsClarification() {
		return nil
	}

	if response.Priority != "" {
		switch response.Priority {
		case "High", "Medium", "Low":
		default:
			return fmt.Errorf("invalid response priority %q", response.Priority)
		}
	}

	if kind == KindReport {
		if response.StatusUpdate != "" {
			switch response.StatusUpdate {
			case "Pending", "In Progress", "Completed", "Pending Approval", "Overdue":
			default:
				return fmt.Errorf("invalid response statusUpdate %q", response.StatusUpdate)
			}
		}
		if response.ProgressUpdate != nil {
			if *response.ProgressUpdate < 0 || *response.ProgressUpdate > 100 {
				return fmt.Errorf("response progressUpdate %d out of range", *response.ProgressUpdate)
			}
		}
	}

	return nil
}
