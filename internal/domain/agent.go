package domain

import "time"

// Sentiment is the summarizer's read of the customer's mood.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
)

// Team enumerates routing targets.
type Team string

const (
	TeamTechnicalSupport Team = "technical-support"
	TeamBilling          Team = "billing"
	TeamProduct          Team = "product"
	TeamSales            Team = "sales"
	TeamGeneral          Team = "general"
)

// AgentSummary is the summarizer agent's result.
type AgentSummary struct {
	Summary   string    `json:"summary"`
	KeyPoints []string  `json:"keyPoints"`
	Sentiment Sentiment `json:"sentiment"`
}

// ActionType classifies an extracted action.
type ActionType string

const (
	ActionEscalation  ActionType = "escalation"
	ActionFollowUp    ActionType = "follow-up"
	ActionInformation ActionType = "information"
	ActionResolution  ActionType = "resolution"
)

// ActionItem is a single action extracted from a ticket.
type ActionItem struct {
	Type        ActionType `json:"type"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
}

// AgentAction is the action extractor agent's result.
type AgentAction struct {
	Actions []ActionItem `json:"actions"`
}

// TeamConfidence pairs an alternative team with its confidence score.
type TeamConfidence struct {
	Team       string  `json:"team"`
	Confidence float64 `json:"confidence"`
}

// AgentRouting is the routing agent's result.
type AgentRouting struct {
	RecommendedTeam  Team             `json:"recommendedTeam"`
	Confidence       float64          `json:"confidence"`
	AlternativeTeams []TeamConfidence `json:"alternativeTeams"`
	Reasoning        string           `json:"reasoning"`
}

// SuggestedResolution is one recommended fix with ordered steps.
type SuggestedResolution struct {
	Title      string   `json:"title"`
	Steps      []string `json:"steps"`
	Confidence float64  `json:"confidence"`
	Source     string   `json:"source,omitempty"`
}

// AgentRecommendation is the resolution recommender agent's result.
type AgentRecommendation struct {
	SuggestedResolutions []SuggestedResolution `json:"suggestedResolutions"`
}

// EstimationFactor names something that pushed the estimate up or down.
type EstimationFactor struct {
	Name   string  `json:"name"`
	Impact float64 `json:"impact"`
}

// AgentTimeEstimation is the time estimator agent's result.
type AgentTimeEstimation struct {
	EstimatedMinutes int                `json:"estimatedMinutes"`
	Confidence       float64            `json:"confidence"`
	Factors          []EstimationFactor `json:"factors"`
}

// AgentResponse accumulates the five sub-results for one processing run.
// The record is appended with only ID, TicketID and Timestamp set before the
// agents run; a response with all sub-results nil is the pending marker.
// Consumers treat the most recently appended response per ticket as
// authoritative.
type AgentResponse struct {
	ID              string               `json:"id"`
	TicketID        string               `json:"ticketId"`
	Timestamp       time.Time            `json:"timestamp"`
	Summary         *AgentSummary        `json:"summary,omitempty"`
	Actions         *AgentAction         `json:"actions,omitempty"`
	Routing         *AgentRouting        `json:"routing,omitempty"`
	Recommendations *AgentRecommendation `json:"recommendations,omitempty"`
	TimeEstimation  *AgentTimeEstimation `json:"timeEstimation,omitempty"`
}

// Pending reports whether no sub-result has been filled in yet.
func (r *AgentResponse) Pending() bool {
	return r.Summary == nil && r.Actions == nil && r.Routing == nil &&
		r.Recommendations == nil && r.TimeEstimation == nil
}

// Complete reports whether every sub-result is present.
func (r *AgentResponse) Complete() bool {
	return r.Summary != nil && r.Actions != nil && r.Routing != nil &&
		r.Recommendations != nil && r.TimeEstimation != nil
}
