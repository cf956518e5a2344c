package notifications

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pacphi/statusboard/pkg/api"
	"github.com/pacphi/statusboard/pkg/config"
	"github.com/pacphi/statusboard/pkg/utils"
)

// StatusChange records a status page moving from one status to another
type StatusChange struct {
	Page api.StatusPage
	From api.Status
	To   api.Status
	At   time.Time
}

// Recovered reports whether the page went from failing back to up
func (c StatusChange) Recovered() bool {
	return c.To.IsHealthy() && !c.From.IsHealthy()
}

// Notifier interface for sending notifications
type Notifier interface {
	SendStatusChanges(ctx context.Context, changes []StatusChange) error
	SendTestMessage(ctx context.Context) error
}

// Manager manages multiple notification channels
type Manager struct {
	notifiers []Notifier
	logger    *utils.Logger
}

// NewManager creates a new notification manager
func NewManager(cfg *config.Config) *Manager {
	manager := &Manager{
		logger: utils.GetGlobalLogger().WithComponent("notifications"),
	}

	slack := cfg.Notifications.Slack
	if slack.Enabled || slack.WebhookURL != "" {
		webhookURL := resolveEnvVar(slack.WebhookURL)
		if webhookURL != "" {
			manager.AddNotifier(NewSlackNotifier(SlackConfig{
				WebhookURL: webhookURL,
				Channel:    slack.Channel,
				Username:   slack.Username,
				Retry: utils.NewRetryConfig(cfg.Behavior.Retry.MaxAttempts,
					cfg.Behavior.Retry.Backoff, cfg.Behavior.Retry.MaxBackoff),
			}))
		} else {
			manager.logger.Warn("Slack notifications enabled but webhook URL is empty")
		}
	}

	return manager
}

// AddNotifier registers an additional notification channel
func (m *Manager) AddNotifier(n Notifier) {
	m.notifiers = append(m.notifiers, n)
}

// SendStatusChanges sends status transitions to all configured notifiers
func (m *Manager) SendStatusChanges(ctx context.Context, changes []StatusChange) error {
	if len(m.notifiers) == 0 || len(changes) == 0 {
		m.logger.Debug("Nothing to notify")
		return nil
	}

	var errs []string
	for _, notifier := range m.notifiers {
		if err := notifier.SendStatusChanges(ctx, changes); err != nil {
			m.logger.WithError(err).Error("Failed to send status change notification")
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// SendTestMessage sends a test message to all configured notifiers
func (m *Manager) SendTestMessage(ctx context.Context) error {
	if len(m.notifiers) == 0 {
		return fmt.Errorf("no notifiers configured")
	}

	var errs []string
	for _, notifier := range m.notifiers {
		if err := notifier.SendTestMessage(ctx); err != nil {
			m.logger.WithError(err).Error("Failed to send test notification")
			errs = append(errs, err.Error())
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("test notification errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetNotifierCount returns the number of configured notifiers
func (m *Manager) GetNotifierCount() int {
	return len(m.notifiers)
}

// HasNotifiers returns true if any notifiers are configured
func (m *Manager) HasNotifiers() bool {
	return len(m.notifiers) > 0
}

// DetectChanges compares two snapshots of the dashboard and returns the pages whose status changed.
// Pages missing from prev are new and never reported. Transitions into or out of UNKNOWN are ignored.
func DetectChanges(prev, curr []api.StatusPage, at time.Time) []StatusChange {
	before := make(map[string]api.Status, len(prev))
	for _, page := range prev {
		before[page.URL] = api.ParseStatus(string(page.Status))
	}

	var changes []StatusChange
	for _, page := range curr {
		from, ok := before[page.URL]
		if !ok {
			continue
		}
		to := api.ParseStatus(string(page.Status))
		if from == to || from == api.StatusUnknown || to == api.StatusUnknown {
			continue
		}
		changes = append(changes, StatusChange{Page: page, From: from, To: to, At: at})
	}

	return changes
}

// resolveEnvVar resolves a "$VAR" reference to its environment value
func resolveEnvVar(value string) string {
	if strings.HasPrefix(value, "$") {
		return os.Getenv(strings.TrimPrefix(value, "$"))
	}
	return value
}
