package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/pkg/log"
)

const (
	// memoryCap bounds the short-term memory; the oldest entries are
	// evicted first.
	memoryCap = 50
	// memoryWindow is how many of the latest entries are injected into
	// a prompt.
	memoryWindow = 6
	// summaryLength caps the slice of output embedded in a memory line.
	summaryLength = 240
)

// RoleAgent is a named persona with fixed instructions and its own bounded
// short-term memory. Memory is owned exclusively by the agent and mutated
// only by Analyze; the orchestrator serializes calls, so no lock is held
// here.
type RoleAgent struct {
	key          string
	name         string
	instructions string
	client       core.CompletionClient
	memory       []string
	now          func() time.Time
}

func New(role Role, client core.CompletionClient) *RoleAgent {
	return &RoleAgent{
		key:          role.Key,
		name:         role.Name,
		instructions: strings.TrimSpace(role.Instructions),
		client:       client,
		now:          time.Now,
	}
}

func (a *RoleAgent) Key() string  { return a.key }
func (a *RoleAgent) Name() string { return a.name }

// Analyze builds the role prompt for the given input, performs a single
// blocking completion call and, on success, appends a one-line summary of
// the result to the agent's memory. The full untruncated output is
// returned. A completion failure propagates unchanged and leaves memory
// untouched.
func (a *RoleAgent) Analyze(ctx context.Context, inputText string) (string, error) {
	prompt := a.buildPrompt(inputText)
	log.FromCtx(ctx).Debug().
		Str("agent", a.key).
		Int("prompt_len", len(prompt)).
		Int("memory_len", len(a.memory)).
		Msg("running analysis")

	text, err := a.client.Complete(ctx, prompt)
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	a.remember(text)
	return text, nil
}

func (a *RoleAgent) buildPrompt(inputText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a medical specialist: %s.\n", a.name)
	b.WriteString(a.instructions)
	b.WriteString("\n\nPatient report and context:\n")
	b.WriteString(inputText)
	b.WriteString("\n\n")

	if len(a.memory) > 0 {
		recent := a.memory
		if len(recent) > memoryWindow {
			recent = recent[len(recent)-memoryWindow:]
		}
		b.WriteString("Short-term memory (latest):\n")
		b.WriteString(strings.Join(recent, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("Provide a clear concise analysis, key findings, recommended next steps, tests (if any), and urgency level.\n")
	return b.String()
}

// remember stores a one-line summary: timestamp, role name and the first
// 240 characters of the output with newlines flattened.
func (a *RoleAgent) remember(text string) {
	summary := strings.ReplaceAll(text, "\n", " ")
	if runes := []rune(summary); len(runes) > summaryLength {
		summary = string(runes[:summaryLength])
	}
	line := fmt.Sprintf("[%s] %s summary: %s", a.now().Format(time.RFC3339), a.name, summary)

	a.memory = append(a.memory, line)
	if len(a.memory) > memoryCap {
		a.memory = a.memory[len(a.memory)-memoryCap:]
	}
}
