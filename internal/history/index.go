package history

import (
	"fmt"
	"strings"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// Sentinel strings returned instead of emptiness so downstream prompts
// never silently receive nothing.
const (
	NoCaseData         = "No historical data available for this type of issue."
	NoConversationData = "No relevant conversation history available."
)

// Case is one resolved historical support case.
type Case struct {
	TicketID         string
	IssueCategory    string
	Sentiment        string
	Priority         string
	Solution         string
	ResolutionStatus string
	DateOfResolution string
}

// Conversation is an exemplar support transcript for one issue category.
// Categories are kept in a slice so tie-breaking on equal match counts is
// stable: the first declared category wins.
type Conversation struct {
	Category   string
	Transcript string
}

// Index matches tickets against the historical case catalog and the
// exemplar conversations to build grounding context for the recommender
// and time estimator agents.
type Index struct {
	cases         []Case
	conversations []Conversation
}

// NewIndex builds an index over the built-in catalogs.
func NewIndex() *Index {
	return &Index{cases: builtinCases, conversations: builtinConversations}
}

// NewIndexWithCases builds an index over a replacement case catalog, keeping
// the built-in conversations.
func NewIndexWithCases(cases []Case) *Index {
	if len(cases) == 0 {
		return NewIndex()
	}
	return &Index{cases: cases, conversations: builtinConversations}
}

// RelevantHistory combines matching resolved cases and the best-matching
// exemplar conversation into one text blob for a ticket.
func (ix *Index) RelevantHistory(ticket domain.Ticket) string {
	return ix.RelevantCases(ticket) + "\n\n" + ix.RelevantConversation(ticket)
}

// RelevantCases returns all catalog cases whose category contains any
// ticket token longer than three characters, in catalog order.
func (ix *Index) RelevantCases(ticket domain.Ticket) string {
	keywords := tokenize(ticket)

	var lines []string
	for _, c := range ix.cases {
		category := strings.ToLower(c.IssueCategory)
		for _, kw := range keywords {
			if len(kw) > 3 && strings.Contains(category, kw) {
				lines = append(lines, fmt.Sprintf(
					"Case #%s: %s (%s). Solution: %s. Priority: %s. Resolved on: %s.",
					c.TicketID, c.IssueCategory, c.Sentiment, c.Solution, c.Priority, c.DateOfResolution))
				break
			}
		}
	}

	if len(lines) == 0 {
		return NoCaseData
	}
	return strings.Join(lines, "\n")
}

// RelevantConversation returns the transcript whose category matches the
// most ticket tokens. Ties keep the earlier category.
func (ix *Index) RelevantConversation(ticket domain.Ticket) string {
	keywords := tokenize(ticket)

	best := -1
	bestCount := 0
	for i, conv := range ix.conversations {
		category := strings.ToLower(conv.Category)
		count := 0
		for _, kw := range keywords {
			if len(kw) > 3 && strings.Contains(category, kw) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = i
		}
	}

	if best < 0 {
		return NoConversationData
	}
	conv := ix.conversations[best]
	return fmt.Sprintf("Related conversation about %q:\n%s", conv.Category, conv.Transcript)
}

func tokenize(ticket domain.Ticket) []string {
	subject := strings.Fields(strings.ToLower(ticket.Subject))
	description := strings.Fields(strings.ToLower(ticket.Description))
	return append(subject, description...)
}
