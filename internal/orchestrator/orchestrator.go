package orchestrator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/support-dashboard/internal/backend"
	"github.com/spec-kit/support-dashboard/internal/config"
	"github.com/spec-kit/support-dashboard/internal/domain"
	"github.com/spec-kit/support-dashboard/internal/events"
	"github.com/spec-kit/support-dashboard/internal/store"
	apperrors "github.com/spec-kit/support-dashboard/pkg/util/errorutil"
)

// AgentRunner is the fan-out surface: the five specialized agents. None of
// these can fail; transport and parse failures resolve to fallback objects
// inside the agent layer.
type AgentRunner interface {
	Summarize(ctx context.Context, ticket domain.Ticket) *domain.AgentSummary
	ExtractActions(ctx context.Context, ticket domain.Ticket) *domain.AgentAction
	SuggestRouting(ctx context.Context, ticket domain.Ticket) *domain.AgentRouting
	RecommendResolutions(ctx context.Context, ticket domain.Ticket, historicalData string) *domain.AgentRecommendation
	EstimateResolutionTime(ctx context.Context, ticket domain.Ticket, historicalData string) *domain.AgentTimeEstimation
}

// ContextIndex produces precedent text for a ticket.
type ContextIndex interface {
	RelevantHistory(ticket domain.Ticket) string
}

// BackendProcessor runs the whole analysis server-side in backend mode.
type BackendProcessor interface {
	ProcessTicket(ctx context.Context, ticket domain.Ticket, model string) (*backend.ProcessResult, error)
}

// ResponseCache receives the latest complete response per ticket,
// best-effort.
type ResponseCache interface {
	StoreLatest(ctx context.Context, resp domain.AgentResponse) error
}

// ConnectionInfo reports the connection mode and model to use for a run.
// Wiring it makes runtime reconfiguration take effect on the next run;
// without it the values from the initial configuration apply.
type ConnectionInfo interface {
	Mode() string
	Model() string
}

// Orchestrator owns the lifecycle of a "process ticket" run: mark the
// ticket in-progress, append a pending response record, fan out the five
// agents, join, replace the record with the complete one and derive the
// ticket's priority and estimated resolution in a single store mutation.
//
// Concurrent runs for the same ticket are not mutually excluded; the
// latest-appended response wins. This is a documented limitation, not a
// protocol.
type Orchestrator struct {
	store      *store.TicketStore
	index      ContextIndex
	agents     AgentRunner
	backend    BackendProcessor
	cache      ResponseCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	conn       ConnectionInfo
	mode       string
	model      string

	now   func() time.Time
	newID func() string
}

// Dependencies bundles orchestrator collaborators. Backend and Cache are
// optional; Backend is required only in backend mode.
type Dependencies struct {
	Store      *store.TicketStore
	Index      ContextIndex
	Agents     AgentRunner
	Backend    BackendProcessor
	Cache      ResponseCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
	Conn       ConnectionInfo
}

// New constructs an orchestrator for the configured connection mode.
func New(cfg config.ModelConfig, deps Dependencies) *Orchestrator {
	return &Orchestrator{
		store:      deps.Store,
		index:      deps.Index,
		agents:     deps.Agents,
		backend:    deps.Backend,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		conn:       deps.Conn,
		mode:       cfg.Mode,
		model:      cfg.Model,
		now:        time.Now,
		newID:      func() string { return "resp-" + uuid.NewString() },
	}
}

// ProcessTicket runs the full analysis for one ticket and returns the
// complete response record. An unknown ticket id is a terminal failure with
// no state mutated. In backend mode an upstream error is returned to the
// caller and the ticket is left in-progress.
func (o *Orchestrator) ProcessTicket(ctx context.Context, ticketID string) (*domain.AgentResponse, error) {
	ticket, err := o.store.GetTicket(ticketID)
	if err != nil {
		return nil, err
	}

	oldStatus := ticket.Status
	ticket, err = o.store.UpdateTicket(ticketID, func(t domain.Ticket) domain.Ticket {
		t.Status = domain.TicketStatusInProgress
		return t
	})
	if err != nil {
		return nil, err
	}
	if oldStatus != domain.TicketStatusInProgress {
		o.publish(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticketID,
			Payload: events.TicketStatusChangedPayload{
				OldStatus: oldStatus,
				NewStatus: domain.TicketStatusInProgress,
			},
		})
	}

	// The pending record is observable before any agent completes.
	pending := domain.AgentResponse{
		ID:        o.newID(),
		TicketID:  ticketID,
		Timestamp: o.now(),
	}
	o.store.AppendResponse(pending)

	mode := o.currentMode()
	o.publish(ctx, events.Event{
		Type:     events.EventTicketProcessingStarted,
		TicketID: ticketID,
		Payload:  events.TicketProcessingStartedPayload{ResponseID: pending.ID, Mode: mode},
	})

	complete := pending
	if mode == config.ModeBackend {
		result, err := o.backend.ProcessTicket(ctx, ticket, o.currentModel())
		if err != nil {
			// The ticket stays in-progress; there is no rollback on a
			// backend failure.
			o.logger.Error("backend processing failed",
				zap.String("ticket_id", ticketID), zap.Error(err))
			o.publish(ctx, events.Event{
				Type:     events.EventTicketProcessingFailed,
				TicketID: ticketID,
				Payload:  events.TicketProcessingFailedPayload{ResponseID: pending.ID, Reason: err.Error()},
			})
			return nil, apperrors.NewUpstreamError("ticket processing via backend failed", err)
		}
		complete.Summary = result.Summary
		complete.Actions = result.Actions
		complete.Routing = result.Routing
		complete.Recommendations = result.Recommendations
		complete.TimeEstimation = result.TimeEstimation
	} else {
		o.fanOut(ctx, ticket, &complete)
	}

	o.store.ReplaceResponse(complete)

	updated, err := o.store.UpdateTicket(ticketID, func(t domain.Ticket) domain.Ticket {
		t.Priority = derivePriority(complete.Actions)
		if complete.TimeEstimation != nil {
			eta := o.now().Add(time.Duration(complete.TimeEstimation.EstimatedMinutes) * time.Minute)
			t.EstimatedResolution = &eta
		} else {
			t.EstimatedResolution = nil
		}
		return t
	})
	if err != nil {
		return nil, err
	}

	o.cacheLatest(ctx, complete)
	o.publish(ctx, events.Event{
		Type:     events.EventTicketProcessed,
		TicketID: ticketID,
		Payload: events.TicketProcessedPayload{
			ResponseID:          complete.ID,
			Priority:            updated.Priority,
			RecommendedTeam:     recommendedTeam(complete.Routing),
			EstimatedResolution: updated.EstimatedResolution,
			Status:              updated.Status,
		},
	})

	o.logger.Info("ticket processed",
		zap.String("ticket_id", ticketID),
		zap.String("response_id", complete.ID),
		zap.String("priority", string(updated.Priority)))
	return &complete, nil
}

// fanOut runs the historical lookup synchronously, then the five agents
// concurrently, joining when all have settled. Every agent resolves, so the
// join cannot fail and the record is filled either fully or not at all.
func (o *Orchestrator) fanOut(ctx context.Context, ticket domain.Ticket, resp *domain.AgentResponse) {
	historicalData := o.index.RelevantHistory(ticket)

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		resp.Summary = o.agents.Summarize(ctx, ticket)
	}()
	go func() {
		defer wg.Done()
		resp.Actions = o.agents.ExtractActions(ctx, ticket)
	}()
	go func() {
		defer wg.Done()
		resp.Routing = o.agents.SuggestRouting(ctx, ticket)
	}()
	go func() {
		defer wg.Done()
		resp.Recommendations = o.agents.RecommendResolutions(ctx, ticket, historicalData)
	}()
	go func() {
		defer wg.Done()
		resp.TimeEstimation = o.agents.EstimateResolutionTime(ctx, ticket, historicalData)
	}()
	wg.Wait()
}

func (o *Orchestrator) currentMode() string {
	if o.conn != nil {
		return o.conn.Mode()
	}
	return o.mode
}

func (o *Orchestrator) currentModel() string {
	if o.conn != nil {
		return o.conn.Model()
	}
	return o.model
}

// derivePriority picks the highest severity among the extracted actions.
func derivePriority(actions *domain.AgentAction) domain.Priority {
	if actions == nil {
		return domain.PriorityLow
	}
	hasMedium := false
	for _, a := range actions.Actions {
		switch a.Priority {
		case domain.PriorityHigh:
			return domain.PriorityHigh
		case domain.PriorityMedium:
			hasMedium = true
		}
	}
	if hasMedium {
		return domain.PriorityMedium
	}
	return domain.PriorityLow
}

func recommendedTeam(routing *domain.AgentRouting) domain.Team {
	if routing == nil {
		return ""
	}
	return routing.RecommendedTeam
}

func (o *Orchestrator) cacheLatest(ctx context.Context, resp domain.AgentResponse) {
	if o.cache == nil {
		return
	}
	if err := o.cache.StoreLatest(ctx, resp); err != nil {
		o.logger.Warn("caching latest response failed",
			zap.String("ticket_id", resp.TicketID), zap.Error(err))
	}
}

func (o *Orchestrator) publish(ctx context.Context, event events.Event) {
	if o.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = o.now()
	}
	_ = o.dispatcher.Publish(ctx, event)
}
