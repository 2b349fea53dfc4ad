package web

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sandevgo/medagent/internal/core"
	"github.com/sandevgo/medagent/internal/service/orchestrator"
	"github.com/sandevgo/medagent/pkg/conv"
	"github.com/sandevgo/medagent/pkg/log"
)

// Section headers shown on result cards and in the PDF, in output order.
var sectionNames = map[string]string{
	core.KeyGeneralPhysician: "General Physician",
	core.KeyCardiologist:     "Cardiologist",
	core.KeyPulmonologist:    "Pulmonologist",
	core.KeyPsychologist:     "Psychologist",
	core.KeyNeurologist:      "Neurologist",
	core.KeyFinal:            "Final Multidisciplinary Diagnosis",
}

type formView struct {
	Error    string
	Name     string
	Age      string
	Gender   string
	Symptoms string
}

type sectionView struct {
	Key   string
	Name  string
	HTML  template.HTML
	Final bool
}

type resultView struct {
	SessionID  string
	Timestamp  string
	ReportText string
	Sections   []sectionView
}

type followupView struct {
	SessionID string
	Roles     []roleOption
	Role      string
	Question  string
	Answer    template.HTML
	Error     string
}

type roleOption struct {
	Key  string
	Name string
}

var followupRoles = []roleOption{
	{Key: "final", Name: "Multidisciplinary (final)"},
	{Key: "gp", Name: "General Physician"},
	{Key: "cardio", Name: "Cardiologist"},
	{Key: "pulmo", Name: "Pulmonologist"},
	{Key: "psych", Name: "Psychologist"},
	{Key: "neuro", Name: "Neurologist"},
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "index.html", formView{})
}

// handleAnalyze validates the report form, runs the pipeline and renders
// the result cards. Validation happens before the orchestrator is invoked;
// a rejected form never costs a completion call.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := formView{
		Name:     strings.TrimSpace(r.FormValue("name")),
		Age:      strings.TrimSpace(r.FormValue("age")),
		Gender:   r.FormValue("gender"),
		Symptoms: strings.TrimSpace(r.FormValue("symptoms")),
	}

	age, ageErr := strconv.Atoi(form.Age)
	switch {
	case form.Name == "" || form.Symptoms == "":
		form.Error = "Please complete the form (name, gender, and symptoms)."
	case form.Gender != "Male" && form.Gender != "Female" && form.Gender != "Other":
		form.Error = "Please select a gender."
	case ageErr != nil || age < 0 || age > 120:
		form.Error = "Age must be between 0 and 120."
	}
	if form.Error != "" {
		s.render(w, r, "index.html", form)
		return
	}

	reportText := "Patient: " + form.Name + ", Age: " + form.Age + ", Gender: " + form.Gender +
		". Symptoms: " + form.Symptoms

	result, err := s.pipeline.Run(r.Context(), reportText)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("analysis failed")
		form.Error = "Error running agents: " + err.Error()
		s.render(w, r, "index.html", form)
		return
	}

	s.render(w, r, "result.html", resultViewFrom(result.SessionID, result.Timestamp, result.ReportText, result.Outputs))
}

func (s *Server) handleFollowupForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "followup.html", followupView{
		SessionID: r.URL.Query().Get("session"),
		Roles:     followupRoles,
		Role:      "final",
	})
}

func (s *Server) handleFollowup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	view := followupView{
		SessionID: strings.TrimSpace(r.FormValue("session_id")),
		Roles:     followupRoles,
		Role:      r.FormValue("role"),
		Question:  strings.TrimSpace(r.FormValue("question")),
	}

	if view.SessionID == "" || view.Question == "" {
		view.Error = "Please provide a session id and a question."
		s.render(w, r, "followup.html", view)
		return
	}

	sess, err := s.pipeline.Session(view.SessionID)
	if err != nil {
		view.Error = "Unknown session: " + view.SessionID
		s.render(w, r, "followup.html", view)
		return
	}

	contextText := sess.Outputs[orchestrator.OutputKeyFor(view.Role)]
	answer, err := s.followup.Ask(r.Context(), view.Role, view.Question, contextText)
	if err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("follow-up failed")
		view.Error = "Follow-up error: " + err.Error()
		s.render(w, r, "followup.html", view)
		return
	}

	view.Answer = template.HTML(conv.MarkdownToHTML([]byte(answer)))
	s.render(w, r, "followup.html", view)
}

func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	entries, err := s.index.ListRecent(r.Context(), 50)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.render(w, r, "sessions.html", struct{ Sessions []core.SessionEntry }{entries})
}

func (s *Server) handleDownloadJSON(w http.ResponseWriter, r *http.Request) {
	entry := s.lookupSession(w, r)
	if entry == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+entry.SessionID+`.json"`)
	http.ServeFile(w, r, entry.JSONPath)
}

func (s *Server) handleDownloadTXT(w http.ResponseWriter, r *http.Request) {
	entry := s.lookupSession(w, r)
	if entry == nil {
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+entry.SessionID+`.txt"`)
	http.ServeFile(w, r, entry.TXTPath)
}

// handleDownloadPDF builds the PDF export on demand from the stored JSON
// log, so any indexed session can be exported after a restart.
func (s *Server) handleDownloadPDF(w http.ResponseWriter, r *http.Request) {
	entry := s.lookupSession(w, r)
	if entry == nil {
		return
	}
	sess, err := s.pipeline.Session(entry.SessionID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="MedAgent_`+sess.SessionID+`.pdf"`)
	if err := renderPDF(sess, w); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Msg("pdf export failed")
	}
}

// lookupSession resolves the path parameter through the index, which also
// keeps download paths confined to files the app actually wrote.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) *core.SessionEntry {
	sessionID := chi.URLParam(r, "sessionID")
	entry, err := s.index.Get(r.Context(), sessionID)
	if err != nil {
		http.NotFound(w, r)
		return nil
	}
	return entry
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.FromCtx(r.Context()).Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func resultViewFrom(sessionID, timestamp, reportText string, outputs map[string]string) resultView {
	view := resultView{
		SessionID:  sessionID,
		Timestamp:  timestamp,
		ReportText: reportText,
	}
	for _, key := range core.OutputKeys {
		view.Sections = append(view.Sections, sectionView{
			Key:   key,
			Name:  sectionNames[key],
			HTML:  template.HTML(conv.MarkdownToHTML([]byte(outputs[key]))),
			Final: key == core.KeyFinal,
		})
	}
	return view
}
