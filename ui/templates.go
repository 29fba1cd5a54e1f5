package ui

import (
	"bytes"
	"encoding/json"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"evidencija/app"
	"evidencija/domain/calendar"
	"evidencija/internal/errors"
	"evidencija/models"
)

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"decimal": models.FormatDecimal,
		"km": func(d decimal.NullDecimal) string {
			if !d.Valid {
				return "-"
			}
			return d.Decimal.StringFixed(1)
		},
		"hrDate": func(iso string) string {
			s, err := calendar.FormatISOAsHR(iso)
			if err != nil {
				return iso
			}
			return s
		},
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			return template.JS(b), err
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
}

// renderTemplate executes a template into a buffer first so a failing
// template never produces half a page
func (a *App) renderTemplate(w http.ResponseWriter, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := a.templates.ExecuteTemplate(&buf, name, data); err != nil {
		a.logger.Error("template %s failed: %v", name, err)
		http.Error(w, "Template error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		a.logger.Debug("writing %s: %v", name, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps application error codes to HTTP statuses
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeUnauthorized:
		return http.StatusUnauthorized
	case errors.CodeNotConfigured, errors.CodeInvalidInput, errors.CodeValidationError:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	case errors.CodeExternalService:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers a failed API call. Client errors carry their message,
// server errors are logged and answered generically.
func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	message := http.StatusText(status)
	if status < http.StatusInternalServerError {
		message = errors.Message(err)
	} else {
		a.logger.Error("%s %s: %v", r.Method, r.URL.Path, err)
	}
	writeJSON(w, status, map[string]string{"error": message})
}

// writeDocument streams a rendered spreadsheet as an attachment
func writeDocument(w http.ResponseWriter, doc *app.Document) {
	h := w.Header()
	h.Set("Content-Type", doc.ContentType)
	h.Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	h.Set("Content-Length", strconv.Itoa(len(doc.Body)))
	h.Set("Cache-Control", "no-store")
	if len(doc.Warnings) > 0 {
		h.Set("X-Export-Warnings", strings.Join(doc.Warnings, "; "))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}
