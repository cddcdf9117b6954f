package services

import "errors"

// Review workflow failures. Controllers map these with errors.Is; the
// services never retry on their own.
var (
	// ErrEmptyHistory means the template has no submissions at all.
	ErrEmptyHistory = errors.New("template has no submissions")

	// ErrConcurrentPendingSubmission means a new submission was attempted
	// while another one is still awaiting review.
	ErrConcurrentPendingSubmission = errors.New("a pending submission already exists for this template")

	// ErrNoPendingSubmission means a review decision targeted a submission
	// that already left the pending state.
	ErrNoPendingSubmission = errors.New("no pending submission to review")

	// ErrNotRejected means a resubmission was attempted while the current
	// version is not rejected.
	ErrNotRejected = errors.New("current submission is not rejected")

	// ErrCommentRequired means a rejection was attempted without a usable
	// review comment.
	ErrCommentRequired = errors.New("rejection requires a review comment")

	// ErrCommentTooLong means the review comment exceeds the storage limit.
	ErrCommentTooLong = errors.New("review comment is too long")

	// ErrStaleVersion means the caller's expected version no longer matches
	// the stored current version; the caller may re-read and retry once.
	ErrStaleVersion = errors.New("current version has advanced since it was read")

	// ErrInvalidDecision means the decision value is not a recognized
	// approve/reject verb.
	ErrInvalidDecision = errors.New("invalid review decision")
)
