// Package notifications renders and delivers the transactional emails MoodAI sends.
// Delivery is fire-and-forget: callers are never blocked or failed by mail errors.
package notifications

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"sync"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

const sendTimeout = 30 * time.Second

// WelcomeData populates the welcome email.
type WelcomeData struct {
	Username string
}

// ConsultationData populates the consultation confirmation email.
type ConsultationData struct {
	Username  string
	BookingID string
	PaymentID string
	Amount    int
	Currency  string
}

// SessionData populates the chat session summary email.
type SessionData struct {
	Username string
	Mood     string
	Color    string
	Response string
}

// MoodCount is one row of the weekly mood breakdown.
type MoodCount struct {
	Mood  string
	Count int
}

// WeeklyData populates the weekly report email.
type WeeklyData struct {
	Username      string
	From          string
	To            string
	Entries       int
	Dominant      string
	DominantColor string
	AverageScore  float64
	Counts        []MoodCount
}

// Notifier sends templated emails in the background.
type Notifier struct {
	mailer    Mailer
	logger    *slog.Logger
	templates map[string]*template.Template
	wg        sync.WaitGroup
}

// New creates a Notifier, parsing the embedded templates.
func New(mailer Mailer, logger *slog.Logger) (*Notifier, error) {
	n := &Notifier{
		mailer:    mailer,
		logger:    logger.With("system", "notifications"),
		templates: make(map[string]*template.Template),
	}

	for _, name := range []string{"welcome", "consultation", "session", "weekly"} {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		n.templates[name] = t
	}

	return n, nil
}

// Welcome greets a newly registered user.
func (n *Notifier) Welcome(to string, data WelcomeData) {
	n.dispatch(to, "Welcome to MoodAI!", "welcome", data)
}

// ConsultationConfirmed confirms a paid consultation booking.
func (n *Notifier) ConsultationConfirmed(to string, data ConsultationData) {
	n.dispatch(to, "Your MoodAI consultation is confirmed", "consultation", data)
}

// SessionSummary recaps a chat exchange.
func (n *Notifier) SessionSummary(to string, data SessionData) {
	n.dispatch(to, "Your MoodAI Session Summary", "session", data)
}

// WeeklyReport delivers a weekly mood report.
func (n *Notifier) WeeklyReport(to string, data WeeklyData) {
	n.dispatch(to, "Your MoodAI Weekly Report", "weekly", data)
}

// Render executes the named template with data.
func (n *Notifier) Render(name string, data any) (string, error) {
	t, ok := n.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template: %s", name)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Wait blocks until every in-flight send has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) dispatch(to, subject, name string, data any) {
	if to == "" {
		return
	}

	html, err := n.Render(name, data)
	if err != nil {
		n.logger.Error("render failed", "template", name, "error", err)
		return
	}

	n.wg.Go(func() {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		msg := Message{To: to, Subject: subject, HTML: html}
		if err := n.mailer.Send(ctx, msg); err != nil {
			n.logger.Error("send failed", "template", name, "to", to, "error", err)
			return
		}
		n.logger.Debug("mail sent", "template", name, "to", to)
	})
}
