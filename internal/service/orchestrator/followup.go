package orchestrator

import (
	"context"
	"fmt"

	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/pkg/log"
)

// Short role keys used by the follow-up UI.
var followupNames = map[string]string{
	"gp":     "General Physician",
	"cardio": "Cardiologist",
	"pulmo":  "Pulmonologist",
	"psych":  "Psychologist",
	"neuro":  "Neurologist",
	"final":  "Multidisciplinary Team",
}

var followupOutputs = map[string]string{
	"gp":     core.KeyGeneralPhysician,
	"cardio": core.KeyCardiologist,
	"pulmo":  core.KeyPulmonologist,
	"psych":  core.KeyPsychologist,
	"neuro":  core.KeyNeurologist,
	"final":  core.KeyFinal,
}

// OutputKeyFor maps a short follow-up role key to the output-map key whose
// text serves as context. Unknown keys fall back to the final synthesis.
func OutputKeyFor(roleKey string) string {
	if key, ok := followupOutputs[roleKey]; ok {
		return key
	}
	return core.KeyFinal
}

// Followup answers one-shot questions in a role's voice. It calls the
// completion client directly and never touches agent memory, so a follow-up
// cannot influence later pipeline runs.
type Followup struct {
	client core.CompletionClient
}

func NewFollowup(client core.CompletionClient) *Followup {
	return &Followup{client: client}
}

// Ask builds a single prompt from the role, the supplied context and the
// question. An unknown role key is not an error: the synthesizer persona
// answers instead.
func (f *Followup) Ask(ctx context.Context, roleKey, question, contextText string) (string, error) {
	name, ok := followupNames[roleKey]
	if !ok {
		name = followupNames["final"]
	}
	log.FromCtx(ctx).Debug().Str("role", roleKey).Str("name", name).Msg("asking follow-up")

	prompt := fmt.Sprintf(
		"You are %s. Based on the following context, answer the user's question succinctly.\n\n"+
			"Context:\n%s\n\n"+
			"User question: %s\n\n"+
			"Provide a clear clinical-style answer and recommended next steps if applicable.",
		name, contextText, question,
	)
	return f.client.Complete(ctx, prompt)
}
