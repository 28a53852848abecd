package agent

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/domain"
)

// Gateway is the completion surface agents run on.
type Gateway interface {
	Complete(ctx context.Context, prompt, systemPrompt string) (string, error)
}

// Suite bundles the five specialized agents. All of them share one
// call/parse/fallback protocol over the same gateway; only the system
// prompt, response contract and fallback literal differ. No agent ever
// returns an error: transport failures and malformed model output both
// resolve to the agent's fallback object so a fan-out join can never fail
// on a single agent.
type Suite struct {
	gateway Gateway
	logger  *zap.Logger
}

// NewSuite constructs the agent suite.
func NewSuite(gateway Gateway, logger *zap.Logger) *Suite {
	return &Suite{gateway: gateway, logger: logger}
}

// spec ties together everything that distinguishes one agent: its system
// prompt, its fallback literal, and a structural check applied after a
// successful parse. A result failing the check is discarded wholesale in
// favor of the fallback; partially valid objects are never returned.
type spec[T any] struct {
	name     string
	system   string
	fallback T
	valid    func(*T) bool
}

func run[T any](ctx context.Context, s *Suite, sp spec[T], prompt string) *T {
	text, err := s.gateway.Complete(ctx, prompt, sp.system)
	if err != nil {
		s.logger.Warn("model call failed, using fallback",
			zap.String("agent", sp.name), zap.Error(err))
		fb := sp.fallback
		return &fb
	}

	if out, ok := parseStructured[T](text, sp.valid); ok {
		return out
	}

	s.logger.Warn("unparseable model output, using fallback",
		zap.String("agent", sp.name), zap.Int("response_len", len(text)))
	fb := sp.fallback
	return &fb
}

func ticketPrompt(ticket domain.Ticket) string {
	return fmt.Sprintf("Ticket #%s\nSubject: %s\nDescription: %s\nFrom: %s (%s)",
		ticket.ID, ticket.Subject, ticket.Description, ticket.CustomerName, ticket.CustomerEmail)
}

func withHistory(base, label, historicalData string) string {
	if historicalData == "" {
		historicalData = "No historical data available."
	}
	return fmt.Sprintf("%s\n\n%s:\n%s", base, label, historicalData)
}

// Summarize produces a concise summary, key points and sentiment.
func (s *Suite) Summarize(ctx context.Context, ticket domain.Ticket) *domain.AgentSummary {
	sp := spec[domain.AgentSummary]{
		name: "summarizer",
		system: `You are an expert customer support summarizer.
Analyze the ticket and provide a concise summary, key points, and the sentiment of the customer.
Format your response as JSON like this: { "summary": "...", "keyPoints": ["point1", "point2"], "sentiment": "positive|neutral|negative" }`,
		fallback: domain.AgentSummary{
			Summary:   "Error generating summary",
			KeyPoints: []string{"Error processing the ticket"},
			Sentiment: domain.SentimentNeutral,
		},
		valid: func(v *domain.AgentSummary) bool {
			switch v.Sentiment {
			case domain.SentimentPositive, domain.SentimentNeutral, domain.SentimentNegative:
				return v.Summary != ""
			}
			return false
		},
	}
	return run(ctx, s, sp, ticketPrompt(ticket))
}

// ExtractActions identifies the actions required to resolve the ticket.
func (s *Suite) ExtractActions(ctx context.Context, ticket domain.Ticket) *domain.AgentAction {
	sp := spec[domain.AgentAction]{
		name: "action-extractor",
		system: `You are an expert at identifying necessary actions from customer support tickets.
Analyze the ticket and extract a list of actions that should be taken, including type, description and priority (low, medium, high).
Format your response as JSON like this: { "actions": [{"type": "escalation|follow-up|information|resolution", "description": "...", "priority": "low|medium|high"}] }`,
		fallback: domain.AgentAction{
			Actions: []domain.ActionItem{{
				Type:        domain.ActionInformation,
				Description: "Error extracting actions from ticket",
				Priority:    domain.PriorityMedium,
			}},
		},
		valid: func(v *domain.AgentAction) bool {
			if len(v.Actions) == 0 {
				return false
			}
			for _, a := range v.Actions {
				switch a.Priority {
				case domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh:
				default:
					return false
				}
			}
			return true
		},
	}
	return run(ctx, s, sp, ticketPrompt(ticket))
}

// SuggestRouting recommends the team the ticket should be routed to.
func (s *Suite) SuggestRouting(ctx context.Context, ticket domain.Ticket) *domain.AgentRouting {
	sp := spec[domain.AgentRouting]{
		name: "router",
		system: `You are an expert at routing customer support tickets to the correct team.
Analyze the ticket and suggest the most appropriate team, along with confidence score and reasoning.
Format your response as JSON like this: { "recommendedTeam": "technical-support|billing|product|sales|general", "confidence": 0.85, "alternativeTeams": [{"team": "...", "confidence": 0.4}], "reasoning": "..." }`,
		fallback: domain.AgentRouting{
			RecommendedTeam:  domain.TeamGeneral,
			Confidence:       0.5,
			AlternativeTeams: []domain.TeamConfidence{},
			Reasoning:        "Error determining the appropriate team for this ticket",
		},
		valid: func(v *domain.AgentRouting) bool {
			if v.Confidence < 0 || v.Confidence > 1 {
				return false
			}
			switch v.RecommendedTeam {
			case domain.TeamTechnicalSupport, domain.TeamBilling, domain.TeamProduct, domain.TeamSales, domain.TeamGeneral:
				return true
			}
			return false
		},
	}
	return run(ctx, s, sp, ticketPrompt(ticket))
}

// RecommendResolutions suggests fixes, grounded on historical context.
func (s *Suite) RecommendResolutions(ctx context.Context, ticket domain.Ticket, historicalData string) *domain.AgentRecommendation {
	sp := spec[domain.AgentRecommendation]{
		name: "recommender",
		system: `You are an expert at recommending solutions for customer support tickets based on historical data.
Analyze the ticket and provide suggested resolutions with confidence scores.
Format your response as JSON like this: { "suggestedResolutions": [{"title": "...", "steps": ["step1", "step2"], "confidence": 0.75, "source": "..."}] }`,
		fallback: domain.AgentRecommendation{
			SuggestedResolutions: []domain.SuggestedResolution{{
				Title:      "Error generating recommendations",
				Steps:      []string{"Please review the ticket manually"},
				Confidence: 0.1,
			}},
		},
		valid: func(v *domain.AgentRecommendation) bool {
			if len(v.SuggestedResolutions) == 0 {
				return false
			}
			for _, r := range v.SuggestedResolutions {
				if r.Confidence < 0 || r.Confidence > 1 {
					return false
				}
			}
			return true
		},
	}
	prompt := withHistory(ticketPrompt(ticket), "Historical similar cases", historicalData)
	return run(ctx, s, sp, prompt)
}

// EstimateResolutionTime predicts resolution time in minutes, grounded on
// historical context.
func (s *Suite) EstimateResolutionTime(ctx context.Context, ticket domain.Ticket, historicalData string) *domain.AgentTimeEstimation {
	sp := spec[domain.AgentTimeEstimation]{
		name: "time-estimator",
		system: `You are an expert at estimating resolution times for customer support tickets.
Analyze the ticket and provide an estimated resolution time in minutes, along with confidence and factors.
Format your response as JSON like this: { "estimatedMinutes": 45, "confidence": 0.7, "factors": [{"name": "complexity", "impact": 0.5}] }`,
		fallback: domain.AgentTimeEstimation{
			EstimatedMinutes: 60,
			Confidence:       0.3,
			Factors:          []domain.EstimationFactor{{Name: "error in estimation", Impact: 1.0}},
		},
		valid: func(v *domain.AgentTimeEstimation) bool {
			return v.EstimatedMinutes >= 0 && v.Confidence >= 0 && v.Confidence <= 1
		},
	}
	prompt := withHistory(ticketPrompt(ticket), "Historical resolution times for similar cases", historicalData)
	return run(ctx, s, sp, prompt)
}
