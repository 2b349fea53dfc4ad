package sessionlog

import (
	"os"
	"testing"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSession() *core.SessionLog {
	return &core.SessionLog{
		SessionID:  "diag_20260102_030405_ab12cd34",
		Timestamp:  "20260102_030405",
		ReportText: "Patient: A, Age: 40, Gender: Female. Symptoms: cough",
		Outputs: map[string]string{
			core.KeyGeneralPhysician: "gp notes",
			core.KeyCardiologist:     "cardio notes",
			core.KeyPulmonologist:    "pulmo notes",
			core.KeyPsychologist:     "psych notes",
			core.KeyNeurologist:      "neuro notes",
			core.KeyFinal:            "final synthesis",
		},
		ConversationHistory: []core.HistoryRecord{
			{Agent: core.KeyGeneralPhysician, Text: "gp notes", Time: "20260102_030405"},
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	sess := sampleSession()
	jsonPath, txtPath, err := w.Write(sess)
	require.NoError(t, err)
	assert.Equal(t, w.JSONPath(sess.SessionID), jsonPath)
	assert.Equal(t, w.TXTPath(sess.SessionID), txtPath)

	loaded, err := w.Read(sess.SessionID)
	require.NoError(t, err)
	assert.Equal(t, sess, loaded)
}

func TestWrite_TextRendering(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	sess := sampleSession()
	_, txtPath, err := w.Write(sess)
	require.NoError(t, err)

	data, err := os.ReadFile(txtPath)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "=== MedAgent Diagnosis Log ===")
	assert.Contains(t, text, "Session ID: "+sess.SessionID)
	assert.Contains(t, text, "Timestamp: "+sess.Timestamp)
	assert.Contains(t, text, "=== Report ===\n"+sess.ReportText)
	for _, key := range core.OutputKeys {
		assert.Contains(t, text, "--- "+key+" ---\n"+sess.Outputs[key])
	}
}

func TestRead_Missing(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	_, err = w.Read("diag_never_written")
	assert.Error(t, err)
}

func TestRemove_DeletesBothAndToleratesMissing(t *testing.T) {
	w, err := NewWriter(t.TempDir())
	require.NoError(t, err)

	sess := sampleSession()
	jsonPath, txtPath, err := w.Write(sess)
	require.NoError(t, err)

	require.NoError(t, w.Remove(sess.SessionID))
	for _, path := range []string{jsonPath, txtPath} {
		_, statErr := os.Stat(path)
		assert.True(t, os.IsNotExist(statErr), path)
	}

	// Second removal is a no-op.
	assert.NoError(t, w.Remove(sess.SessionID))
}
