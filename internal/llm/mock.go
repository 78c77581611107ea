package llm

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Mock is the deterministic responder used when no provider credential is
// configured. It produces a structurally valid response for every input so
// the pipeline stays exercisable without a live key.
type Mock struct {
	Today     string
	UserNames []string
	Task      *TaskSnapshot
}

// TaskSnapshot is the state the report mock reasons about.
type TaskSnapshot struct {
	Title           string
	Description     string
	Status          string
	Priority        string
	AssigneeName    string
	DueDate         string
	Accomplishments string
	Progress        int
}

var percentPattern = regexp.MustCompile(`(\d{1,3})\s*%`)

var completionKeywords = []string{"done", "finished", "finish", "complete", "completed", "wrapped up"}

func (mock *Mock) Invoke(_ context.Context, request Request) (Response, error) {
	if request.Kind == KindReport {
		return mock.reportResponse(request.Prompt), nil
	}
	return mock.intakeResponse(request.Prompt), nil
}

func (mock *Mock) intakeResponse(prompt string) Response {
	title := prompt
	if runes := []rune(title); len(runes) > 50 {
		title = string(runes[:50])
	}

	return Response{
		Status:       StatusSuccess,
		Title:        title,
		Description:  prompt,
		AssigneeName: mock.guessAssignee(prompt),
		DueDate:      mock.Today,
		Priority:     "Medium",
	}
}

// guessAssignee picks the first directory user whose full name or first name
// token appears in the prompt, falling back to the first user.
func (mock *Mock) guessAssignee(prompt string) string {
	for _, name := range mock.UserNames {
		if strings.Contains(prompt, name) {
			return name
		}
		if first := firstNameToken(name); first != "" && strings.Contains(prompt, first) {
			return name
		}
	}
	if len(mock.UserNames) > 0 {
		return mock.UserNames[0]
	}
	return ""
}

func (mock *Mock) reportResponse(prompt string) Response {
	snapshot := mock.Task
	if snapshot == nil {
		snapshot = &TaskSnapshot{Status: "In Progress", Priority: "Medium"}
	}

	progress := snapshot.Progress
	reportedPercent, hasPercent := extractPercent(prompt)
	if hasPercent {
		progress = reportedPercent
	} else {
		progress += 10
	}

	// A completion keyword only counts as a whole-task claim when the message
	// does not also report a partial percentage.
	completionClaim := containsCompletionKeyword(prompt) && (!hasPercent || reportedPercent >= 100)

	status := "In Progress"
	if completionClaim {
		status = "Pending Approval"
		progress = 100
	} else if progress > 95 {
		progress = 95
	}
	if progress < snapshot.Progress {
		progress = snapshot.Progress
	}

	assigneeName := snapshot.AssigneeName
	accomplishment := condenseToLine(prompt)
	summary := "Progress recorded. Keep the momentum going."

	if mentioned := mock.mentionedUser(prompt); mentioned != "" && mentioned != snapshot.AssigneeName {
		assigneeName = EncodeMention(mentioned)
		previous := snapshot.AssigneeName
		if previous == "" {
			previous = "Unassigned"
		}
		accomplishment = fmt.Sprintf("(Reassigned: %s -> %s) %s", previous, mentioned, accomplishment)
		summary = fmt.Sprintf("The task has been handed over to %s. Brief them on the current state before stepping away.", mentioned)
	} else if completionClaim {
		summary = "Completion reported. The task is awaiting approval; double-check the original instructions for anything unaddressed."
	}

	accomplishments := snapshot.Accomplishments
	if accomplishments != "" {
		accomplishments += "\n"
	}
	accomplishments += fmt.Sprintf("[%s] %s", mock.Today, accomplishment)

	return Response{
		Status:           StatusSuccess,
		Options:          []string{"Log the next step", "Request a formal status review"},
		Title:            snapshot.Title,
		Description:      snapshot.Description,
		AssigneeName:     assigneeName,
		DueDate:          snapshot.DueDate,
		Priority:         snapshot.Priority,
		StatusUpdate:     status,
		ProgressUpdate:   &progress,
		Accomplishments:  accomplishments,
		RemainingWork:    "Review the remaining items against the task description.",
		SummarizedReport: summary,
	}
}

// mentionedUser finds an explicit @-mention of a directory user in the text.
func (mock *Mock) mentionedUser(prompt string) string {
	for _, name := range mock.UserNames {
		if strings.Contains(prompt, EncodeMention(name)) || strings.Contains(prompt, "@"+name) {
			return name
		}
		if first := firstNameToken(name); first != "" && strings.Contains(prompt, "@"+first) {
			return name
		}
	}
	return ""
}

func extractPercent(text string) (int, bool) {
	matches := percentPattern.FindStringSubmatch(text)
	if len(matches) != 2 {
		return 0, false
	}
	value, err := strconv.Atoi(matches[1])
	if err != nil || value > 100 {
		return 0, false
	}
	return value, true
}

func containsCompletionKeyword(text string) bool {
	lowered := strings.ToLower(text)
	for _, keyword := range completionKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func firstNameToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func condenseToLine(text string) string {
	line := strings.Join(strings.Fields(text), " ")
	if runes := []rune(line); len(runes) > 140 {
		line = string(runes[:140]) + "..."
	}
	return line
}
