package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	reply   string
	err     error
	prompts []string
}

func (c *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	if c.err != nil {
		return "", c.err
	}
	return c.reply, nil
}

func testRole() Role {
	return Role{
		Key:          "Cardiologist",
		Name:         "Cardiologist",
		Instructions: "Focus on cardiac causes.",
	}
}

func TestAnalyze_PromptContainsRoleAndInput(t *testing.T) {
	client := &stubClient{reply: "ECG advised."}
	a := New(testRole(), client)

	out, err := a.Analyze(context.Background(), "chest pain on exertion")
	require.NoError(t, err)
	assert.Equal(t, "ECG advised.", out)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "You are a medical specialist: Cardiologist.")
	assert.Contains(t, prompt, "Focus on cardiac causes.")
	assert.Contains(t, prompt, "Patient report and context:\nchest pain on exertion")
	assert.NotContains(t, prompt, "Short-term memory", "first call must not carry memory")
}

func TestAnalyze_MemoryWindowHoldsLastSix(t *testing.T) {
	client := &stubClient{}
	a := New(testRole(), client)
	a.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	for i := 0; i < 10; i++ {
		client.reply = fmt.Sprintf("finding %d", i)
		_, err := a.Analyze(context.Background(), "report")
		require.NoError(t, err)
	}

	// The 11th prompt sees only findings 4..9.
	client.reply = "done"
	_, err := a.Analyze(context.Background(), "report")
	require.NoError(t, err)

	prompt := client.prompts[len(client.prompts)-1]
	assert.Contains(t, prompt, "Short-term memory (latest):")
	assert.NotContains(t, prompt, "finding 3")
	for i := 4; i < 10; i++ {
		assert.Contains(t, prompt, fmt.Sprintf("finding %d", i))
	}
	assert.Contains(t, prompt, "[2026-01-02T03:04:05Z] Cardiologist summary:")
}

func TestAnalyze_MemoryCappedAtFifty(t *testing.T) {
	client := &stubClient{reply: "ok"}
	a := New(testRole(), client)

	for i := 0; i < 60; i++ {
		_, err := a.Analyze(context.Background(), "report")
		require.NoError(t, err)
	}
	assert.Len(t, a.memory, 50)
}

func TestAnalyze_SummaryTruncatedAndFlattened(t *testing.T) {
	client := &stubClient{reply: "line one\nline two " + strings.Repeat("x", 300)}
	a := New(testRole(), client)

	_, err := a.Analyze(context.Background(), "report")
	require.NoError(t, err)

	require.Len(t, a.memory, 1)
	line := a.memory[0]
	assert.NotContains(t, line, "\n")

	_, summary, found := strings.Cut(line, "summary: ")
	require.True(t, found)
	assert.Len(t, []rune(summary), 240)
	assert.True(t, strings.HasPrefix(summary, "line one line two "))
}

func TestAnalyze_ErrorLeavesMemoryUntouched(t *testing.T) {
	wantErr := errors.New("upstream unavailable")
	client := &stubClient{err: wantErr}
	a := New(testRole(), client)

	_, err := a.Analyze(context.Background(), "report")
	require.ErrorIs(t, err, wantErr)
	assert.Empty(t, a.memory)
}
