package llm

import (
	"context"
	"strings"
	"testing"
)

func TestMockIntakeTruncatesTitle(t *testing.T) {
	mock := &Mock{Today: "2025-03-10", UserNames: []string{"Kim Chul-soo"}}

	long := strings.Repeat("a", 80)
	response, err := mock.Invoke(context.Background(), Request{Prompt: long, Kind: KindIntake})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if len([]rune(response.Title)) != 50 {
		t.Fatalf("expected 50-rune title, got %d", len([]rune(response.Title)))
	}
	if response.Description != long {
		t.Fatal("description should keep the full prompt")
	}
	if response.DueDate != "2025-03-10" {
		t.Fatalf("expected today as due date, got %q", response.DueDate)
	}
	if response.Priority != "Medium" {
		t.Fatalf("expected Medium priority, got %q", response.Priority)
	}
}

func TestMockIntakeGuessesAssigneeByFirstToken(t *testing.T) {
	mock := &Mock{Today: "2025-03-10", UserNames: []string{"Lee Young-hee", "Kim Chul-soo"}}

	response, err := mock.Invoke(context.Background(), Request{Prompt: "Kim should prepare the quarterly deck", Kind: KindIntake})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.AssigneeName != "Kim Chul-soo" {
		t.Fatalf("expected Kim Chul-soo, got %q", response.AssigneeName)
	}
}

func TestMockReportUsesReportedPercent(t *testing.T) {
	mock := &Mock{
		Today:     "2025-03-10",
		UserNames: []string{"Kim Chul-soo"},
		Task:      &TaskSnapshot{Status: "In Progress", Priority: "Medium", Progress: 30},
	}

	response, err := mock.Invoke(context.Background(), Request{Prompt: "about 60% through the data migration", Kind: KindReport})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.StatusUpdate != "In Progress" {
		t.Fatalf("expected In Progress, got %q", response.StatusUpdate)
	}
	if response.ProgressUpdate == nil || *response.ProgressUpdate != 60 {
		t.Fatalf("expected progress 60, got %v", response.ProgressUpdate)
	}
}

func TestMockReportPartialPercentBeatsCompletionKeyword(t *testing.T) {
	mock := &Mock{
		Today: "2025-03-10",
		Task:  &TaskSnapshot{Status: "In Progress", Priority: "Medium", Progress: 40},
	}

	response, err := mock.Invoke(context.Background(), Request{
		Prompt: "finished the design part, about 60% done overall",
		Kind:   KindReport,
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.StatusUpdate != "In Progress" {
		t.Fatalf("a partial percentage must not complete the task, got %q", response.StatusUpdate)
	}
	if response.ProgressUpdate == nil || *response.ProgressUpdate != 60 {
		t.Fatalf("expected progress 60, got %v", response.ProgressUpdate)
	}
}

func TestMockReportCompletionClaimAwaitsApproval(t *testing.T) {
	mock := &Mock{
		Today: "2025-03-10",
		Task:  &TaskSnapshot{Status: "In Progress", Priority: "Medium", Progress: 80},
	}

	response, err := mock.Invoke(context.Background(), Request{Prompt: "everything is done now", Kind: KindReport})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.StatusUpdate != "Pending Approval" {
		t.Fatalf("completion claims go to approval, got %q", response.StatusUpdate)
	}
	if response.ProgressUpdate == nil || *response.ProgressUpdate != 100 {
		t.Fatalf("expected progress 100, got %v", response.ProgressUpdate)
	}
}

func TestMockReportProgressIsCappedAndMonotonic(t *testing.T) {
	mock := &Mock{
		Today: "2025-03-10",
		Task:  &TaskSnapshot{Status: "In Progress", Priority: "Medium", Progress: 90},
	}

	response, err := mock.Invoke(context.Background(), Request{Prompt: "made a bit of headway today", Kind: KindReport})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.ProgressUpdate == nil || *response.ProgressUpdate != 95 {
		t.Fatalf("expected cap at 95, got %v", response.ProgressUpdate)
	}

	regressed, err := mock.Invoke(context.Background(), Request{Prompt: "only 20% I think", Kind: KindReport})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if regressed.ProgressUpdate == nil || *regressed.ProgressUpdate != 90 {
		t.Fatalf("progress must never drop below the snapshot, got %v", regressed.ProgressUpdate)
	}
}

func TestMockReportReassignmentMention(t *testing.T) {
	mock := &Mock{
		Today:     "2025-03-10",
		UserNames: []string{"Kim Chul-soo", "Lee Young-hee"},
		Task: &TaskSnapshot{
			Status:       "In Progress",
			Priority:     "Medium",
			AssigneeName: "Kim Chul-soo",
			Progress:     50,
		},
	}

	response, err := mock.Invoke(context.Background(), Request{
		Prompt: "please hand this over to @Lee Young-hee",
		Kind:   KindReport,
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if response.AssigneeName != EncodeMention("Lee Young-hee") {
		t.Fatalf("expected marker-wrapped new assignee, got %q", response.AssigneeName)
	}
	if !strings.Contains(response.Accomplishments, "(Reassigned: Kim Chul-soo -> Lee Young-hee)") {
		t.Fatalf("expected reassignment note in accomplishments, got %q", response.Accomplishments)
	}
}

func TestMockReportAppendsExactlyOneDatedLine(t *testing.T) {
	existing := "[2025-03-09] drafted the outline"
	mock := &Mock{
		Today: "2025-03-10",
		Task:  &TaskSnapshot{Status: "In Progress", Priority: "Medium", Progress: 20, Accomplishments: existing},
	}

	response, err := mock.Invoke(context.Background(), Request{Prompt: "reviewed the outline with the team", Kind: KindReport})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if !strings.HasPrefix(response.Accomplishments, existing+"\n") {
		t.Fatalf("existing log must stay an immutable prefix, got %q", response.Accomplishments)
	}
	added := strings.TrimPrefix(response.Accomplishments, existing+"\n")
	if strings.Contains(added, "\n") {
		t.Fatalf("expected exactly one appended line, got %q", added)
	}
	if !strings.HasPrefix(added, "[2025-03-10] ") {
		t.Fatalf("appended line must carry today's date, got %q", added)
	}
}
