package agent

import "github.com/sandevgo/medagent/internal/core"

// Role pairs a display name with the fixed instructions injected into every
// prompt for that specialist.
type Role struct {
	Key          string
	Name         string
	Instructions string
}

// Roles returns the six personas in pipeline order: five specialists, then
// the synthesizer.
func Roles() []Role {
	return []Role{
		{
			Key:  core.KeyGeneralPhysician,
			Name: "General Physician",
			Instructions: "Perform triage: determine likely systems affected (cardiac, neuro, pulmonary, " +
				"psychiatric, general). Recommend which specialists should review. Keep answer short and explicit.",
		},
		{
			Key:  core.KeyCardiologist,
			Name: "Cardiologist",
			Instructions: "Focus on cardiovascular causes: evaluate chest pain, palpitations, dyspnea, syncope. " +
				"Recommend tests such as ECG, cardiac enzymes, echo.",
		},
		{
			Key:  core.KeyPulmonologist,
			Name: "Pulmonologist",
			Instructions: "Focus on respiratory causes: evaluate cough, breathlessness, wheeze, hemoptysis. " +
				"Recommend chest X-ray, spirometry, CT or labs if needed.",
		},
		{
			Key:  core.KeyPsychologist,
			Name: "Psychologist",
			Instructions: "Focus on mental health aspects: assess anxiety, depression, somatic symptoms, " +
				"cognitive change. Suggest screening and red flags for urgent psychiatric referral.",
		},
		{
			Key:  core.KeyNeurologist,
			Name: "Neurologist",
			Instructions: "Focus on neurological causes: evaluate headache, dizziness, focal deficits, seizures. " +
				"Suggest neuro exam elements and imaging if needed.",
		},
		{
			Key:  core.KeyTeam,
			Name: "Multidisciplinary Team",
			Instructions: "Synthesize the specialists' outputs into a single, clear final diagnosis and action " +
				"plan suitable for a clinician. Provide a short summary for patient notes and recommended next steps.",
		},
	}
}
