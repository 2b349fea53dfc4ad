package core

const (
	AppName    = "MedAgent"
	AppVersion = "0.1.0"
	UserAgent  = "MedAgent/0.1"

	// TimestampLayout is the wall-clock part of session ids and the
	// timestamp field of persisted logs.
	TimestampLayout = "20060102_150405"
)

// Role keys used across prompts, persisted outputs and the UI. The first
// five are specialists consulted in this exact order; the synthesizer runs
// last over their combined output.
const (
	KeyGeneralPhysician = "GeneralPhysician"
	KeyCardiologist     = "Cardiologist"
	KeyPulmonologist    = "Pulmonologist"
	KeyPsychologist     = "Psychologist"
	KeyNeurologist      = "Neurologist"
	KeyTeam             = "MultidisciplinaryTeam"

	// KeyFinal is the output-map key for the synthesized diagnosis.
	KeyFinal = "Final"
)

// SpecialistKeys is the fixed consultation order.
var SpecialistKeys = []string{
	KeyGeneralPhysician,
	KeyCardiologist,
	KeyPulmonologist,
	KeyPsychologist,
	KeyNeurologist,
}

// OutputKeys is the order in which per-role outputs appear in the text log
// and the PDF export.
var OutputKeys = []string{
	KeyGeneralPhysician,
	KeyCardiologist,
	KeyPulmonologist,
	KeyPsychologist,
	KeyNeurologist,
	KeyFinal,
}

// HistoryRecord is one entry of the orchestrator's shared conversation
// history. Time carries the session-start timestamp, not the per-call time.
type HistoryRecord struct {
	Agent string `json:"agent"`
	Text  string `json:"text"`
	Time  string `json:"time"`
}

// SessionLog is the persisted form of a completed session. It round-trips
// through the JSON log file byte-for-byte per field.
type SessionLog struct {
	SessionID           string            `json:"session_id"`
	Timestamp           string            `json:"timestamp"`
	ReportText          string            `json:"report_text"`
	Outputs             map[string]string `json:"outputs"`
	ConversationHistory []HistoryRecord   `json:"conversation_history"`
}

// SessionResult is the bundle returned to transports after a run.
type SessionResult struct {
	SessionID  string
	Timestamp  string
	ReportText string
	Outputs    map[string]string
	LogJSON    string
	LogTXT     string
}

// Final returns the synthesized diagnosis text.
func (r *SessionResult) Final() string {
	return r.Outputs[KeyFinal]
}
