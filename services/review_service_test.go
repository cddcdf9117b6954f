package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"template-review-api/models"
)

func TestCurrentOf(t *testing.T) {
	if _, err := CurrentOf(nil); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}

	history := []models.Submission{
		{SubmissionID: 1, Version: 1, Status: models.SubmissionStatusRejected},
		{SubmissionID: 3, Version: 3, Status: models.SubmissionStatusPending},
		{SubmissionID: 2, Version: 2, Status: models.SubmissionStatusRejected},
	}
	current, err := CurrentOf(history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Version != 3 {
		t.Fatalf("expected version 3, got %d", current.Version)
	}
}

func TestNextVersion(t *testing.T) {
	if got := NextVersion(nil); got != 1 {
		t.Fatalf("empty history should start at version 1, got %d", got)
	}
	history := []models.Submission{{Version: 1}, {Version: 2}, {Version: 3}}
	if got := NextVersion(history); got != 4 {
		t.Fatalf("expected version 4, got %d", got)
	}
}

func TestEnsureNoPending(t *testing.T) {
	approvedOnly := []models.Submission{
		{Version: 1, Status: models.SubmissionStatusApproved},
	}
	if err := EnsureNoPending(approvedOnly); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	withPending := append(approvedOnly, models.Submission{Version: 2, Status: models.SubmissionStatusPending})
	if err := EnsureNoPending(withPending); !errors.Is(err, ErrConcurrentPendingSubmission) {
		t.Fatalf("expected ErrConcurrentPendingSubmission, got %v", err)
	}
}

func TestValidateReviewComment(t *testing.T) {
	cases := []struct {
		name     string
		decision string
		comment  string
		wantErr  error
	}{
		{"approve empty", models.SubmissionStatusApproved, "", nil},
		{"reject empty", models.SubmissionStatusRejected, "", ErrCommentRequired},
		{"reject whitespace", models.SubmissionStatusRejected, "    ", ErrCommentRequired},
		{"reject four chars", models.SubmissionStatusRejected, "four", ErrCommentRequired},
		{"reject five chars", models.SubmissionStatusRejected, "fiver", nil},
		{"reject max length", models.SubmissionStatusRejected, strings.Repeat("x", 500), nil},
		{"reject over max", models.SubmissionStatusRejected, strings.Repeat("x", 501), ErrCommentTooLong},
		{"approve over max", models.SubmissionStatusApproved, strings.Repeat("x", 501), ErrCommentTooLong},
	}
	for _, tc := range cases {
		err := ValidateReviewComment(tc.decision, tc.comment)
		if tc.wantErr == nil && err != nil {
			t.Errorf("%s: unexpected error %v", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: got %v, want %v", tc.name, err, tc.wantErr)
		}
	}
}

func TestCanonicalDecision(t *testing.T) {
	approvals := []string{"approved", "Approve", " AGREE ", "accepted"}
	for _, verb := range approvals {
		got, err := CanonicalDecision(verb)
		if err != nil || got != models.SubmissionStatusApproved {
			t.Errorf("%q: got (%q, %v)", verb, got, err)
		}
	}

	rejections := []string{"rejected", "reject", "disagree", "DENIED"}
	for _, verb := range rejections {
		got, err := CanonicalDecision(verb)
		if err != nil || got != models.SubmissionStatusRejected {
			t.Errorf("%q: got (%q, %v)", verb, got, err)
		}
	}

	for _, verb := range []string{"", "maybe", "pending"} {
		if _, err := CanonicalDecision(verb); !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("%q: expected ErrInvalidDecision, got %v", verb, err)
		}
	}
}

func TestCheckExpectedVersion(t *testing.T) {
	if err := checkExpectedVersion(nil, 5); err != nil {
		t.Fatalf("nil expected version should pass, got %v", err)
	}
	matching := 5
	if err := checkExpectedVersion(&matching, 5); err != nil {
		t.Fatalf("matching version should pass, got %v", err)
	}
	stale := 4
	if err := checkExpectedVersion(&stale, 5); !errors.Is(err, ErrStaleVersion) {
		t.Fatalf("expected ErrStaleVersion, got %v", err)
	}
}

func TestDecideRejectsBadCommentBeforeTouchingStorage(t *testing.T) {
	// Validation failures must short-circuit; passing a nil DB proves no
	// query ever runs.
	if _, err := Decide(nil, 1, "rejected", 9, "", nil); !errors.Is(err, ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
	if _, err := Decide(nil, 1, "approved", 9, strings.Repeat("x", 501), nil); !errors.Is(err, ErrCommentTooLong) {
		t.Fatalf("expected ErrCommentTooLong, got %v", err)
	}
	if _, err := Decide(nil, 1, "maybe", 9, "", nil); !errors.Is(err, ErrInvalidDecision) {
		t.Fatalf("expected ErrInvalidDecision, got %v", err)
	}
}

func TestDecideApprovesPendingSubmission(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*ORDER BY version DESC.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 2, models.SubmissionStatusPending, now),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("UPDATE `template_submissions` SET"),
			result:  scriptedResult{rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `template_status_history`"),
			result:  scriptedResult{lastInsertID: 1, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	updated, err := Decide(db, 7, "agree", 9, "Looks good", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.SubmissionStatusApproved {
		t.Fatalf("expected approved, got %s", updated.Status)
	}
	if updated.ReviewerID == nil || *updated.ReviewerID != 9 {
		t.Fatalf("reviewer not recorded: %+v", updated)
	}
	if updated.ReviewedAt == nil {
		t.Fatal("reviewed_at not recorded")
	}
	if updated.ReviewComment == nil || *updated.ReviewComment != "Looks good" {
		t.Fatalf("comment not recorded: %+v", updated)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideFailsWhenAlreadyDecided(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 2, models.SubmissionStatusApproved, now),
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if _, err := Decide(db, 7, "approved", 9, "", nil); !errors.Is(err, ErrNoPendingSubmission) {
		t.Fatalf("expected ErrNoPendingSubmission, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideFailsOnEmptyHistory(t *testing.T) {
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*FOR UPDATE"),
			columns: submissionColumns,
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if _, err := Decide(db, 7, "approved", 9, "", nil); !errors.Is(err, ErrEmptyHistory) {
		t.Fatalf("expected ErrEmptyHistory, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestDecideFailsOnStaleVersion(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 3, models.SubmissionStatusPending, now),
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	expected := 2
	if _, err := Decide(db, 7, "approved", 9, "", &expected); !errors.Is(err, ErrStaleVersion) {
		t.Fatalf("expected ErrStaleVersion, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestResubmitAppendsAfterRejection(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*ORDER BY version ASC.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 1, models.SubmissionStatusRejected, now),
			},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `template_submissions`"),
			result:  scriptedResult{lastInsertID: 22, rowsAffected: 1},
		},
		{
			kind:    kindExec,
			pattern: regexp.MustCompile("INSERT INTO `template_status_history`"),
			result:  scriptedResult{lastInsertID: 2, rowsAffected: 1},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	structure, err := models.NewGridStructure(
		[][]interface{}{{"a"}},
		[][]models.PermissionSet{{{"operator"}}},
		nil,
	)
	if err != nil {
		t.Fatalf("failed to build structure: %v", err)
	}

	created, err := Resubmit(db, 7, structure, 4, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Version != 2 {
		t.Fatalf("expected version 2, got %d", created.Version)
	}
	if created.Status != models.SubmissionStatusPending {
		t.Fatalf("resubmission should re-enter pending, got %s", created.Status)
	}
	if created.SubmissionNumber == "" {
		t.Fatal("submission number not assigned")
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestResubmitFailsWhenNotRejected(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 1, models.SubmissionStatusPending, now),
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	if _, err := Resubmit(db, 7, models.GridStructure{}, 4, nil); !errors.Is(err, ErrNotRejected) {
		t.Fatalf("expected ErrNotRejected, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestStartNewFailsWhilePending(t *testing.T) {
	now := time.Now()
	steps := []*queryStep{
		{
			kind:    kindQuery,
			pattern: regexp.MustCompile("SELECT \\* FROM `template_submissions`.*FOR UPDATE"),
			columns: submissionColumns,
			rows: [][]driver.Value{
				submissionRow(21, 7, 1, models.SubmissionStatusPending, now),
			},
		},
	}
	db, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	_, err := StartNewSubmission(db, 7, models.GridStructure{}, 4, nil)
	if !errors.Is(err, ErrConcurrentPendingSubmission) {
		t.Fatalf("expected ErrConcurrentPendingSubmission, got %v", err)
	}
	if err := state.verifyComplete(); err != nil {
		t.Fatal(err)
	}
}

func TestResubmissionVersionSequence(t *testing.T) {
	// Submit, reject, resubmit, reject, resubmit: versions must come out
	// 1, 2, 3 with version 3 current.
	var history []models.Submission

	submit := func() {
		if err := EnsureNoPending(history); err != nil {
			t.Fatalf("unexpected pending guard failure: %v", err)
		}
		history = append(history, models.Submission{
			Version: NextVersion(history),
			Status:  models.SubmissionStatusPending,
		})
	}
	reject := func() {
		current, err := CurrentOf(history)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !current.IsPending() {
			t.Fatal("cannot reject a non-pending submission")
		}
		current.Status = models.SubmissionStatusRejected
	}

	submit()
	reject()
	submit()
	reject()
	submit()

	if len(history) != 3 {
		t.Fatalf("expected 3 submissions, got %d", len(history))
	}
	for i, sub := range history {
		if sub.Version != i+1 {
			t.Fatalf("submission %d has version %d", i, sub.Version)
		}
	}
	current, err := CurrentOf(history)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if current.Version != 3 || !current.IsPending() {
		t.Fatalf("unexpected current submission: %+v", current)
	}
}
