package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"platter/internal/config"
)

const userAgent = "platter/0.1"

// Service defines the notification surface exposed to the rip workflow.
// One notification is sent per job, never per track.
type Service interface {
	NotifyRipStarted(ctx context.Context, albumTitle string, trackCount int) error
	NotifyRipCompleted(ctx context.Context, albumTitle string, completed, failed int, duration time.Duration) error
	NotifyRipFailed(ctx context.Context, albumTitle string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ntfyService{
		endpoint: topic,
		client:   &http.Client{Timeout: timeout},
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) NotifyRipStarted(ctx context.Context, albumTitle string, trackCount int) error {
	data := payload{
		title:   "Platter - Rip Started",
		message: fmt.Sprintf("Started ripping: %s (%d tracks)", displayTitle(albumTitle), trackCount),
		tags:    []string{"platter", "rip", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRipCompleted(ctx context.Context, albumTitle string, completed, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}

	var title, message string
	if failed == 0 {
		title = "Platter - Rip Complete"
		message = fmt.Sprintf("Rip complete: %s, %d tracks in %s", displayTitle(albumTitle), completed, duration)
	} else {
		title = "Platter - Rip Complete (with errors)"
		message = fmt.Sprintf("Rip complete: %s, %d succeeded, %d failed in %s", displayTitle(albumTitle), completed, failed, duration)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"platter", "rip", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) NotifyRipFailed(ctx context.Context, albumTitle string, cause error) error {
	reason := "unknown"
	if cause != nil {
		reason = strings.TrimSpace(cause.Error())
	}
	data := payload{
		title:    "Platter - Rip Failed",
		message:  fmt.Sprintf("Rip failed: %s: %s", displayTitle(albumTitle), reason),
		tags:     []string{"platter", "rip", "error"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Platter - Test",
		message:  "Notification system test",
		tags:     []string{"platter", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func displayTitle(albumTitle string) string {
	albumTitle = strings.TrimSpace(albumTitle)
	if albumTitle == "" {
		return "Unknown Album"
	}
	return albumTitle
}

type noopService struct{}

func (noopService) NotifyRipStarted(context.Context, string, int) error { return nil }
func (noopService) NotifyRipCompleted(context.Context, string, int, int, time.Duration) error {
	return nil
}
func (noopService) NotifyRipFailed(context.Context, string, error) error { return nil }
func (noopService) TestNotification(context.Context) error               { return nil }
