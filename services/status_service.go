package services

import (
	"fmt"
	"strings"

	"template-review-api/models"
)

// Decision verbs accepted at the boundary. Clients have historically sent a
// mix of agree/disagree and approve/reject; everything is normalized to the
// canonical submission statuses before it reaches the workflow.
var decisionSynonyms = map[string][]string{
	models.SubmissionStatusApproved: {
		"approved",
		"approve",
		"agree",
		"accepted",
	},
	models.SubmissionStatusRejected: {
		"rejected",
		"reject",
		"disagree",
		"denied",
	},
}

var decisionAliasToCanonical = buildDecisionAliasMap()

func buildDecisionAliasMap() map[string]string {
	aliasMap := make(map[string]string)
	for canonical, synonyms := range decisionSynonyms {
		aliasMap[normalizeDecision(canonical)] = canonical
		for _, alias := range synonyms {
			if normalized := normalizeDecision(alias); normalized != "" {
				aliasMap[normalized] = canonical
			}
		}
	}
	return aliasMap
}

func normalizeDecision(decision string) string {
	return strings.ToLower(strings.TrimSpace(decision))
}

// CanonicalDecision resolves a decision verb to approved or rejected.
func CanonicalDecision(decision string) (string, error) {
	normalized := normalizeDecision(decision)
	if normalized == "" {
		return "", fmt.Errorf("%w: empty decision", ErrInvalidDecision)
	}
	canonical, ok := decisionAliasToCanonical[normalized]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}
	return canonical, nil
}

// StatusLabel returns the user-facing label for a submission status.
func StatusLabel(status string) string {
	switch status {
	case models.SubmissionStatusPending:
		return "Pending review"
	case models.SubmissionStatusApproved:
		return "Approved"
	case models.SubmissionStatusRejected:
		return "Rejected"
	default:
		return status
	}
}
