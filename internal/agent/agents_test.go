package agent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

type fakeGateway struct {
	text       string
	err        error
	lastPrompt string
	lastSystem string
}

func (g *fakeGateway) Complete(_ context.Context, prompt, systemPrompt string) (string, error) {
	g.lastPrompt = prompt
	g.lastSystem = systemPrompt
	return g.text, g.err
}

func testTicket() domain.Ticket {
	return domain.Ticket{
		ID:            "T001",
		Subject:       "Cannot access my account",
		Description:   "I've been trying to log in for the past hour",
		CustomerName:  "John Smith",
		CustomerEmail: "john.smith@example.com",
		CreatedAt:     time.Now(),
		Status:        domain.TicketStatusNew,
	}
}

func TestSummarizeParsesValidJSON(t *testing.T) {
	gw := &fakeGateway{text: `{"summary":"Login failure","keyPoints":["cannot log in"],"sentiment":"negative"}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.Summarize(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, "Login failure", got.Summary)
	assert.Equal(t, domain.SentimentNegative, got.Sentiment)
	assert.Contains(t, gw.lastPrompt, "Ticket #T001")
	assert.Contains(t, gw.lastPrompt, "From: John Smith (john.smith@example.com)")
}

func TestSummarizeExtractsEmbeddedJSON(t *testing.T) {
	gw := &fakeGateway{text: "Here is my analysis:\n```json\n" +
		`{"summary":"Login failure","keyPoints":["cannot log in"],"sentiment":"neutral"}` +
		"\n```\nLet me know if you need more."}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.Summarize(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, "Login failure", got.Summary)
	assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
}

func TestSummarizeFallbackOnProse(t *testing.T) {
	gw := &fakeGateway{text: "The customer cannot log in and sounds upset."}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.Summarize(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, "Error generating summary", got.Summary)
	assert.Equal(t, []string{"Error processing the ticket"}, got.KeyPoints)
	assert.Equal(t, domain.SentimentNeutral, got.Sentiment)
}

func TestSummarizeFallbackOnTransportError(t *testing.T) {
	gw := &fakeGateway{err: errors.New("connection refused")}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.Summarize(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, "Error generating summary", got.Summary)
}

func TestSummarizeFallbackOnUnknownSentiment(t *testing.T) {
	gw := &fakeGateway{text: `{"summary":"ok","keyPoints":[],"sentiment":"angry"}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.Summarize(context.Background(), testTicket())

	assert.Equal(t, "Error generating summary", got.Summary)
}

func TestExtractActionsParsesValidJSON(t *testing.T) {
	gw := &fakeGateway{text: `{"actions":[{"type":"escalation","description":"Escalate to tier 2","priority":"high"}]}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.ExtractActions(context.Background(), testTicket())

	require.NotNil(t, got)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, domain.ActionEscalation, got.Actions[0].Type)
	assert.Equal(t, domain.PriorityHigh, got.Actions[0].Priority)
}

func TestExtractActionsFallback(t *testing.T) {
	gw := &fakeGateway{text: "no json here"}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.ExtractActions(context.Background(), testTicket())

	require.NotNil(t, got)
	require.Len(t, got.Actions, 1)
	assert.Equal(t, domain.ActionInformation, got.Actions[0].Type)
	assert.Equal(t, "Error extracting actions from ticket", got.Actions[0].Description)
	assert.Equal(t, domain.PriorityMedium, got.Actions[0].Priority)
}

func TestExtractActionsFallbackOnBadPriority(t *testing.T) {
	gw := &fakeGateway{text: `{"actions":[{"type":"follow-up","description":"call back","priority":"urgent"}]}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.ExtractActions(context.Background(), testTicket())

	require.Len(t, got.Actions, 1)
	assert.Equal(t, domain.PriorityMedium, got.Actions[0].Priority)
}

func TestSuggestRoutingParsesValidJSON(t *testing.T) {
	gw := &fakeGateway{text: `{"recommendedTeam":"technical-support","confidence":0.9,"alternativeTeams":[{"team":"product","confidence":0.3}],"reasoning":"login issue"}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.SuggestRouting(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, domain.TeamTechnicalSupport, got.RecommendedTeam)
	assert.InDelta(t, 0.9, got.Confidence, 1e-9)
	require.Len(t, got.AlternativeTeams, 1)
}

func TestSuggestRoutingFallback(t *testing.T) {
	gw := &fakeGateway{err: errors.New("timeout")}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.SuggestRouting(context.Background(), testTicket())

	require.NotNil(t, got)
	assert.Equal(t, domain.TeamGeneral, got.RecommendedTeam)
	assert.InDelta(t, 0.5, got.Confidence, 1e-9)
	assert.NotNil(t, got.AlternativeTeams)
	assert.Empty(t, got.AlternativeTeams)
}

func TestSuggestRoutingFallbackOnUnknownTeam(t *testing.T) {
	gw := &fakeGateway{text: `{"recommendedTeam":"devops","confidence":0.8,"alternativeTeams":[],"reasoning":"x"}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.SuggestRouting(context.Background(), testTicket())

	assert.Equal(t, domain.TeamGeneral, got.RecommendedTeam)
}

func TestRecommendResolutionsIncludesHistory(t *testing.T) {
	gw := &fakeGateway{text: `{"suggestedResolutions":[{"title":"Reset password","steps":["send reset link"],"confidence":0.8,"source":"TECH_021"}]}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.RecommendResolutions(context.Background(), testTicket(), "Case TECH_021: password reset resolved the issue")

	require.NotNil(t, got)
	require.Len(t, got.SuggestedResolutions, 1)
	assert.Equal(t, "Reset password", got.SuggestedResolutions[0].Title)
	assert.Contains(t, gw.lastPrompt, "Historical similar cases:")
	assert.Contains(t, gw.lastPrompt, "Case TECH_021")
}

func TestRecommendResolutionsDefaultsEmptyHistory(t *testing.T) {
	gw := &fakeGateway{text: "garbage"}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.RecommendResolutions(context.Background(), testTicket(), "")

	assert.Contains(t, gw.lastPrompt, "No historical data available.")
	require.Len(t, got.SuggestedResolutions, 1)
	assert.Equal(t, "Error generating recommendations", got.SuggestedResolutions[0].Title)
	assert.Equal(t, []string{"Please review the ticket manually"}, got.SuggestedResolutions[0].Steps)
	assert.InDelta(t, 0.1, got.SuggestedResolutions[0].Confidence, 1e-9)
}

func TestEstimateResolutionTimeParsesValidJSON(t *testing.T) {
	gw := &fakeGateway{text: `{"estimatedMinutes":90,"confidence":0.7,"factors":[{"name":"complexity","impact":0.5}]}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.EstimateResolutionTime(context.Background(), testTicket(), "avg 85 minutes")

	require.NotNil(t, got)
	assert.Equal(t, 90, got.EstimatedMinutes)
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	assert.Contains(t, gw.lastPrompt, "Historical resolution times for similar cases:")
}

func TestEstimateResolutionTimeFallback(t *testing.T) {
	gw := &fakeGateway{text: "roughly an hour, maybe"}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.EstimateResolutionTime(context.Background(), testTicket(), "")

	require.NotNil(t, got)
	assert.Equal(t, 60, got.EstimatedMinutes)
	assert.InDelta(t, 0.3, got.Confidence, 1e-9)
	require.Len(t, got.Factors, 1)
	assert.Equal(t, "error in estimation", got.Factors[0].Name)
}

func TestEstimateResolutionTimeRejectsNegativeMinutes(t *testing.T) {
	gw := &fakeGateway{text: `{"estimatedMinutes":-5,"confidence":0.7,"factors":[]}`}
	suite := NewSuite(gw, zap.NewNop())

	got := suite.EstimateResolutionTime(context.Background(), testTicket(), "")

	assert.Equal(t, 60, got.EstimatedMinutes)
}

func TestParseStructuredTwoStage(t *testing.T) {
	type payload struct {
		Value string `json:"value"`
	}

	direct, ok := parseStructured[payload](`{"value":"a"}`, nil)
	require.True(t, ok)
	assert.Equal(t, "a", direct.Value)

	embedded, ok := parseStructured[payload]("prefix {\"value\":\"b\"} suffix", nil)
	require.True(t, ok)
	assert.Equal(t, "b", embedded.Value)

	_, ok = parseStructured[payload]("no braces at all", nil)
	assert.False(t, ok)

	_, ok = parseStructured[payload]("} backwards {", nil)
	assert.False(t, ok)
}
