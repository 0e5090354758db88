package notifications_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"go.uber.org/goleak"

	"github.com/JaimeStill/moodai/internal/notifications"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type recordingMailer struct {
	mu   sync.Mutex
	sent []notifications.Message
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg notifications.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []notifications.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]notifications.Message(nil), m.sent...)
}

func newNotifier(t *testing.T, mailer notifications.Mailer) *notifications.Notifier {
	t.Helper()
	n, err := notifications.New(mailer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	return n
}

func TestWelcome(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotifier(t, mailer)

	n.Welcome("sam@example.com", notifications.WelcomeData{Username: "sam"})
	n.Wait()

	sent := mailer.messages()
	if len(sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(sent))
	}
	if sent[0].Subject != "Welcome to MoodAI!" {
		t.Errorf("subject = %q", sent[0].Subject)
	}
	if !strings.Contains(sent[0].HTML, "Hello sam!") {
		t.Errorf("html missing greeting:\n%s", sent[0].HTML)
	}
}

func TestSessionSummaryEscapesResponse(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotifier(t, mailer)

	n.SessionSummary("sam@example.com", notifications.SessionData{
		Username: "sam",
		Mood:     "Anxious",
		Color:    "#8b5cf6",
		Response: "<script>alert(1)</script>",
	})
	n.Wait()

	html := mailer.messages()[0].HTML
	if strings.Contains(html, "<script>") {
		t.Error("response was not escaped")
	}
	if !strings.Contains(html, "Detected mood:</strong> Anxious") {
		t.Errorf("html missing mood:\n%s", html)
	}
}

func TestRenderWeekly(t *testing.T) {
	n := newNotifier(t, &recordingMailer{})

	html, err := n.Render("weekly", notifications.WeeklyData{
		Username:      "sam",
		From:          "2026-10-08",
		To:            "2026-10-15",
		Entries:       4,
		Dominant:      "Stressed",
		DominantColor: "#f59e0b",
		AverageScore:  47.5,
		Counts:        []notifications.MoodCount{{Mood: "Stressed", Count: 3}, {Mood: "Neutral", Count: 1}},
	})
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}

	for _, want := range []string{"<strong>4</strong>", "Stressed: 3", "Neutral: 1", "With care"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}

	empty, err := n.Render("weekly", notifications.WeeklyData{Username: "sam"})
	if err != nil {
		t.Fatalf("Render error = %v", err)
	}
	if !strings.Contains(empty, "didn't hear from you") {
		t.Error("empty week message missing")
	}
}

func TestRenderUnknown(t *testing.T) {
	n := newNotifier(t, &recordingMailer{})
	if _, err := n.Render("invoice", nil); err == nil {
		t.Error("expected error")
	}
}

func TestSendFailureIsSwallowed(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	n := newNotifier(t, mailer)

	n.ConsultationConfirmed("sam@example.com", notifications.ConsultationData{Username: "sam", Amount: 999, Currency: "INR"})
	n.WeeklyReport("sam@example.com", notifications.WeeklyData{Username: "sam"})
	n.Wait()

	if len(mailer.messages()) != 0 {
		t.Error("failed sends should not be recorded")
	}
}

func TestEmptyRecipientSkipped(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotifier(t, mailer)

	n.Welcome("", notifications.WelcomeData{Username: "sam"})
	n.Wait()

	if len(mailer.messages()) != 0 {
		t.Error("empty recipient should not send")
	}
}

func TestConcurrentDispatch(t *testing.T) {
	mailer := &recordingMailer{}
	n := newNotifier(t, mailer)

	for range 20 {
		n.Welcome("sam@example.com", notifications.WelcomeData{Username: "sam"})
	}
	n.Wait()

	if got := len(mailer.messages()); got != 20 {
		t.Errorf("sent = %d, want 20", got)
	}
}

func TestLogMailer(t *testing.T) {
	m := notifications.NewMailer(notifications.Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err := m.Send(context.Background(), notifications.Message{To: "a@b.c", Subject: "hi"}); err != nil {
		t.Errorf("log mailer error = %v", err)
	}
}

func TestCompose(t *testing.T) {
	html := "<p>" + strings.Repeat("calm breathing ", 200) + "</p>"
	msg, err := notifications.Compose(`"MoodAI" <no-reply@moodai.app>`, notifications.Message{
		To:      "user@example.com",
		Subject: "Résumé of your session",
		HTML:    html,
	})
	if err != nil {
		t.Fatalf("Compose error = %v", err)
	}

	var b strings.Builder
	if _, err := msg.WriteTo(&b); err != nil {
		t.Fatalf("WriteTo error = %v", err)
	}
	raw := b.String()

	for _, want := range []string{
		"Content-Transfer-Encoding: quoted-printable",
		"Content-Type: text/html",
		"To: <user@example.com>",
	} {
		if !strings.Contains(raw, want) {
			t.Errorf("message missing %q", want)
		}
	}
	for i, line := range strings.Split(raw, "\r\n") {
		if len(line) > 998 {
			t.Fatalf("line %d is %d octets, exceeds 998", i, len(line))
		}
	}
	if strings.Contains(raw, "Subject: Résumé of your session") {
		t.Error("non-ASCII subject written unencoded")
	}
}

func TestComposeRejectsBadRecipient(t *testing.T) {
	if _, err := notifications.Compose("no-reply@moodai.app", notifications.Message{To: "not an address"}); err == nil {
		t.Error("expected recipient error")
	}
}

func TestSMTPMailerHonorsContext(t *testing.T) {
	m := notifications.NewMailer(notifications.Config{
		Host: "127.0.0.1",
		Port: 1,
		From: "no-reply@moodai.app",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := m.Send(ctx, notifications.Message{To: "user@example.com", Subject: "hi", HTML: "<p>hi</p>"}); err == nil {
		t.Error("Send succeeded with a canceled context")
	}
}

func TestConfigFinalize(t *testing.T) {
	var cfg notifications.Config
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize error = %v", err)
	}
	if cfg.Port != 587 {
		t.Errorf("port = %d, want 587", cfg.Port)
	}

	bad := notifications.Config{From: "not an address"}
	if err := bad.Finalize(nil); err == nil {
		t.Error("expected invalid from error")
	}
}
