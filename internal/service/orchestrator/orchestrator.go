package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/internal/service/agent"
	"github.com/sandevgo/medagent/internal/storage/sessionlog"
	"github.com/sandevgo/medagent/pkg/log"
)

// historyCap bounds the shared conversation history across the
// orchestrator's lifetime.
const historyCap = 100

// Orchestrator owns the six role agents and the shared conversation
// history. It is constructed once at startup and passed to whichever
// transport needs it; there is no package-level instance.
//
// A run is strictly sequential. The mutex only serializes concurrent
// transport requests against each other; agent memory and the shared
// history must never see interleaved runs.
type Orchestrator struct {
	mu      sync.Mutex
	agents  map[string]*agent.RoleAgent
	history []core.HistoryRecord
	logs    *sessionlog.Writer
	index   core.SessionIndex
	now     func() time.Time
}

// New builds the orchestrator with a fresh set of role agents backed by the
// given completion client. The index may be nil; session logs are then only
// written to disk.
func New(client core.CompletionClient, logs *sessionlog.Writer, index core.SessionIndex) *Orchestrator {
	agents := make(map[string]*agent.RoleAgent)
	for _, role := range agent.Roles() {
		agents[role.Key] = agent.New(role, client)
	}
	return &Orchestrator{
		agents: agents,
		logs:   logs,
		index:  index,
		now:    time.Now,
	}
}

// Run executes the fixed pipeline against a patient report: the five
// specialists in order, each given the original report, then the
// multidisciplinary synthesis over all their outputs. The completed session
// is persisted as JSON and text before the result is returned. Any failure
// aborts the run; nothing is persisted for a failed session.
//
// The General Physician's role text asks it to pick specialists, but all
// five are always consulted regardless of its answer. The triage wording
// only shapes the GP's notes, not the routing.
func (o *Orchestrator) Run(ctx context.Context, reportText string) (*core.SessionResult, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	logger := log.FromCtx(ctx)
	started := o.now()
	timestamp := started.Format(core.TimestampLayout)
	sessionID := newSessionID(timestamp)

	logger.Info().Str("session", sessionID).Msg("starting diagnosis pipeline")

	outputs := make(map[string]string, len(core.OutputKeys))
	for _, key := range core.SpecialistKeys {
		out, err := o.agents[key].Analyze(ctx, reportText)
		if err != nil {
			logger.Error().Err(err).Str("session", sessionID).Str("agent", key).Msg("specialist analysis failed")
			return nil, err
		}
		outputs[key] = out
		o.appendHistory(core.HistoryRecord{Agent: key, Text: out, Time: timestamp})
	}

	final, err := o.agents[core.KeyTeam].Analyze(ctx, buildSynthesisInput(reportText, outputs))
	if err != nil {
		logger.Error().Err(err).Str("session", sessionID).Msg("synthesis failed")
		return nil, err
	}
	outputs[core.KeyFinal] = final
	o.appendHistory(core.HistoryRecord{Agent: core.KeyTeam, Text: final, Time: timestamp})

	sessLog := &core.SessionLog{
		SessionID:           sessionID,
		Timestamp:           timestamp,
		ReportText:          reportText,
		Outputs:             outputs,
		ConversationHistory: o.historyTail(),
	}
	jsonPath, txtPath, err := o.logs.Write(sessLog)
	if err != nil {
		return nil, err
	}

	if o.index != nil {
		entry := core.SessionEntry{
			SessionID: sessionID,
			Timestamp: timestamp,
			Patient:   patientLabel(reportText),
			JSONPath:  jsonPath,
			TXTPath:   txtPath,
			CreatedAt: started,
		}
		// The session is already persisted; a broken index must not
		// fail the run.
		if err := o.index.Add(ctx, entry); err != nil {
			logger.Error().Err(err).Str("session", sessionID).Msg("failed to index session")
		}
	}

	logger.Info().
		Str("session", sessionID).
		Dur("elapsed", o.now().Sub(started)).
		Msg("diagnosis pipeline complete")

	return &core.SessionResult{
		SessionID:  sessionID,
		Timestamp:  timestamp,
		ReportText: reportText,
		Outputs:    outputs,
		LogJSON:    jsonPath,
		LogTXT:     txtPath,
	}, nil
}

// Session loads a persisted session by id.
func (o *Orchestrator) Session(sessionID string) (*core.SessionLog, error) {
	return o.logs.Read(sessionID)
}

func (o *Orchestrator) appendHistory(rec core.HistoryRecord) {
	o.history = append(o.history, rec)
	if len(o.history) > historyCap {
		o.history = o.history[len(o.history)-historyCap:]
	}
}

func (o *Orchestrator) historyTail() []core.HistoryRecord {
	tail := make([]core.HistoryRecord, len(o.history))
	copy(tail, o.history)
	return tail
}

func buildSynthesisInput(reportText string, outputs map[string]string) string {
	var b strings.Builder
	b.WriteString("Patient report:\n")
	b.WriteString(reportText)
	b.WriteString("\n\n")
	for _, key := range core.SpecialistKeys {
		fmt.Fprintf(&b, "%s:\n%s\n\n", key, outputs[key])
	}
	b.WriteString("Combine the above specialist notes into a concise final diagnosis, recommended tests, urgency, and next steps.")
	return b.String()
}

// newSessionID combines the second-resolution timestamp with a short random
// suffix so two sessions started within the same second cannot collide.
func newSessionID(timestamp string) string {
	return fmt.Sprintf("diag_%s_%s", timestamp, uuid.NewString()[:8])
}

// patientLabel is the short description stored in the session index.
func patientLabel(reportText string) string {
	label := strings.ReplaceAll(reportText, "\n", " ")
	if runes := []rune(label); len(runes) > 80 {
		label = string(runes[:80])
	}
	return label
}
