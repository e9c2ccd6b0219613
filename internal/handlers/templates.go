package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/investx-portal/internal/common"
	"github.com/bobmcallan/investx-portal/internal/config"
	"github.com/bobmcallan/investx-portal/internal/format"
	"github.com/bobmcallan/investx-portal/internal/invest"
	"github.com/bobmcallan/investx-portal/internal/session"
)

// Renderer executes the page templates with the portal's formatting helpers.
type Renderer struct {
	logger    *common.Logger
	templates *template.Template
	formatter *format.Formatter
	devMode   bool
}

// NewRenderer parses pages/*.html and pages/partials/*.html.
func NewRenderer(logger *common.Logger, formatter *format.Formatter, devMode bool) *Renderer {
	if formatter == nil {
		formatter = format.New("", "")
	}
	pagesDir := FindPagesDir()

	templates := template.New("").Funcs(templateFuncs(formatter))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "*.html")))
	template.Must(templates.ParseGlob(filepath.Join(pagesDir, "partials", "*.html")))

	return &Renderer{
		logger:    logger,
		templates: templates,
		formatter: formatter,
		devMode:   devMode,
	}
}

// FindPagesDir locates the pages directory.
func FindPagesDir() string {
	dirs := []string{
		"./pages",
		"../pages",
		"../../pages",
	}

	for _, dir := range dirs {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			abs, _ := filepath.Abs(dir)
			return abs
		}
	}

	return "."
}

func templateFuncs(f *format.Formatter) template.FuncMap {
	return template.FuncMap{
		"currency":    f.Currency,
		"number":      f.Number,
		"date":        format.Date,
		"capitalize":  func(v any) string { return format.Capitalize(fmt.Sprint(v)) },
		"typeLabel":   func(v any) string { return format.TypeLabel(fmt.Sprint(v)) },
		"typeStyle":   func(v any) string { return string(format.InvestmentTypeStyle(fmt.Sprint(v))) },
		"riskStyle":   func(v any) string { return string(format.RiskLevelStyle(fmt.Sprint(v))) },
		"gainPercent": format.GainPercent,
		"projected":   invest.CalculateReturns,
		"year":        func() int { return time.Now().Year() },
	}
}

// pageData builds the fields every page template expects.
func (rd *Renderer) pageData(r *http.Request, page string) map[string]interface{} {
	state := session.FromContext(r.Context())
	return map[string]interface{}{
		"Page":          page,
		"DevMode":       rd.devMode,
		"LoggedIn":      state.IsAuthenticated(),
		"User":          state.User(),
		"CSRFToken":     CSRFToken(r),
		"CSRFField":     CSRFFieldName,
		"PortalVersion": config.GetVersion(),
	}
}

// Render executes name into a buffer and writes it with status.
func (rd *Renderer) Render(w http.ResponseWriter, status int, name string, data map[string]interface{}) {
	var buf bytes.Buffer
	if err := rd.templates.ExecuteTemplate(&buf, name, data); err != nil {
		if rd.logger != nil {
			rd.logger.Error().Str("template", name).Err(err).Msg("Failed to render page")
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// ServePage returns a handler that renders a template with only the
// common page fields.
func (rd *Renderer) ServePage(templateName, pageName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !RequireMethod(w, r, http.MethodGet) {
			return
		}
		rd.Render(w, http.StatusOK, templateName, rd.pageData(r, pageName))
	}
}

// StaticFileHandler serves files under pages/static.
func (rd *Renderer) StaticFileHandler(w http.ResponseWriter, r *http.Request) {
	staticDir := filepath.Join(FindPagesDir(), "static")

	path := r.URL.Path[len("/static/"):]
	fullPath := filepath.Join(staticDir, path)

	absStaticDir, _ := filepath.Abs(staticDir)
	absFullPath, _ := filepath.Abs(fullPath)
	if len(absFullPath) <= len(absStaticDir) || absFullPath[:len(absStaticDir)+1] != absStaticDir+string(filepath.Separator) {
		http.NotFound(w, r)
		return
	}
	if info, err := os.Stat(absFullPath); err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, absFullPath)
}
