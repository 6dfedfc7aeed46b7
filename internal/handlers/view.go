// File: internal/handlers/view.go
package handlers

import (
	"bytes"
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"

	"github.com/shayanh/go-chatbox/internal/domain"
)

// TemplateDir is where page templates are loaded from. Tests point it at a
// fixture directory.
var TemplateDir = "web/templates"

// Template cache to avoid parsing templates on every request
var (
	templateCache     map[string]*template.Template
	templateCacheOnce sync.Once
)

// loadTemplateCache creates separate template sets for each page
func loadTemplateCache() {
	templateCache = make(map[string]*template.Template)

	templates := []string{"chat.html", "error.html"}

	for _, tmpl := range templates {
		ts := template.New(tmpl)

		ts, err := ts.ParseFiles(TemplateDir + "/layout.html")
		if err != nil {
			log.Fatalf("Error parsing layout for %s: %v", tmpl, err)
		}

		ts, err = ts.ParseFiles(TemplateDir + "/" + tmpl)
		if err != nil {
			log.Fatalf("Error parsing %s: %v", tmpl, err)
		}

		templateCache[tmpl] = ts
	}
}

// renderTemplate uses individual template cache and injects security headers
func renderTemplate(w http.ResponseWriter, tmpl string, data map[string]interface{}) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	if data == nil {
		data = make(map[string]interface{})
	}

	t, ok := templateCache[tmpl]
	if !ok {
		log.Printf("Template %s not found in cache", tmpl)
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	err := t.ExecuteTemplate(w, "layout.html", data)
	if err != nil {
		log.Printf("Template render error for %s: %v", tmpl, err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}

// renderErrorPage shows the error page with the given status code.
func renderErrorPage(w http.ResponseWriter, code int, message, description string) {
	addSecurityHeaders(w)
	w.WriteHeader(code)
	renderTemplate(w, "error.html", map[string]interface{}{
		"Code":        code,
		"Message":     message,
		"Description": description,
	})
}

// MessageView is a message prepared for display.
type MessageView struct {
	Sender string
	HTML   template.HTML
	Text   string
}

// buildMessageViews renders assistant replies as markdown; user text stays
// plain and is escaped by the template.
func buildMessageViews(messages []domain.Message) []MessageView {
	views := make([]MessageView, 0, len(messages))
	for _, m := range messages {
		v := MessageView{Sender: m.Sender, Text: m.Text}
		if m.Sender == domain.SenderAI {
			v.HTML = renderMarkdown(m.Text)
		}
		views = append(views, v)
	}
	return views
}

// renderMarkdown converts markdown to HTML. Goldmark's default renderer drops
// raw HTML, so stored text cannot inject markup.
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		log.Printf("Markdown render error: %v", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(buf.String())
}
