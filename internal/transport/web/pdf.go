package web

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/sandevgo/medagent/internal/core"
)

// renderPDF writes the formatted diagnosis report. Sections mirror the
// text log; the core fonts only cover latin-1, so other runes are dropped
// rather than rendered as boxes.
func renderPDF(sess *core.SessionLog, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "MedAgent Multi-Agent Diagnosis Report", "", 1, "C", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Arial", "", 11)

	pdf.MultiCell(0, 8, latin1(fmt.Sprintf("Session: %s  |  %s", sess.SessionID, sess.Timestamp)), "", "", false)
	pdf.Ln(4)
	pdf.MultiCell(0, 8, latin1("Patient Report:\n"+sess.ReportText), "", "", false)

	for _, key := range core.OutputKeys {
		pdf.Ln(2)
		header := fmt.Sprintf("=== %s ===", sectionNames[key])
		pdf.MultiCell(0, 8, latin1(header+"\n"+sess.Outputs[key]), "", "", false)
	}
	return pdf.Output(w)
}

func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 256 {
			b.WriteRune(r)
		}
	}
	return b.String()
}
