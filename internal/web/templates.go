package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/kmalov/cashlogger/internal/forms"
	"github.com/kmalov/cashlogger/internal/models"
	"github.com/kmalov/cashlogger/internal/storage"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// pageData is the view model shared by all pages. Pages use the fields
// relevant to them; the header uses Title, Flash and LoggedIn.
type pageData struct {
	Title    string
	Flash    string
	LoggedIn bool
	UserName string

	// Form re-render state: field errors and the entered values.
	// Password values are never placed in Values.
	Errors forms.Errors
	Values url.Values

	// History page.
	Transactions []models.Transaction
	Totals       []storage.DateTotal
	Balance      int64
}

func render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("Template render failed", "template", name, "error", err)
	}
}
