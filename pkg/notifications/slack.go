package notifications

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pacphi/statusboard/pkg/utils"
)

const defaultSlackUsername = "Statusboard"

// maxChangesPerMessage keeps attachments under Slack's message size limit
const maxChangesPerMessage = 20

// SlackNotifier handles Slack notifications
type SlackNotifier struct {
	webhookURL string
	channel    string
	username   string
	http       *utils.HTTPClient
	retry      *utils.RetryConfig
	logger     *utils.Logger
}

// SlackConfig contains Slack configuration
type SlackConfig struct {
	WebhookURL string
	Channel    string
	Username   string
	Timeout    time.Duration
	Retry      *utils.RetryConfig
}

// SlackMessage represents a Slack message
type SlackMessage struct {
	Text        string            `json:"text"`
	Username    string            `json:"username,omitempty"`
	Channel     string            `json:"channel,omitempty"`
	IconEmoji   string            `json:"icon_emoji,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

// SlackAttachment represents a Slack message attachment
type SlackAttachment struct {
	Color     string       `json:"color,omitempty"`
	Title     string       `json:"title,omitempty"`
	TitleLink string       `json:"title_link,omitempty"`
	Text      string       `json:"text,omitempty"`
	Fields    []SlackField `json:"fields,omitempty"`
	Footer    string       `json:"footer,omitempty"`
	Timestamp int64        `json:"ts,omitempty"`
}

// SlackField represents a field in a Slack attachment
type SlackField struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Short bool   `json:"short"`
}

// NewSlackNotifier creates a new Slack notifier
func NewSlackNotifier(config SlackConfig) *SlackNotifier {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retry := config.Retry
	if retry == nil {
		retry = utils.DefaultRetryConfig()
	}

	// Slack allows roughly one webhook post per second
	limiter := utils.NewRateLimiter(&utils.RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             1,
		Timeout:           timeout,
		Name:              "slack",
	})

	return &SlackNotifier{
		webhookURL: config.WebhookURL,
		channel:    config.Channel,
		username:   config.Username,
		http: utils.NewHTTPClientFromConfig(utils.HTTPClientConfig{
			Timeout:     timeout,
			RateLimiter: limiter,
		}),
		retry:  retry,
		logger: utils.GetGlobalLogger().WithComponent("slack"),
	}
}

// SendStatusChanges posts one attachment per status transition
func (s *SlackNotifier) SendStatusChanges(ctx context.Context, changes []StatusChange) error {
	if s.webhookURL == "" {
		return fmt.Errorf("slack webhook URL not configured")
	}
	if len(changes) == 0 {
		return nil
	}

	return s.sendMessage(ctx, s.buildStatusChangesMessage(changes))
}

// SendTestMessage sends a test message to Slack
func (s *SlackNotifier) SendTestMessage(ctx context.Context) error {
	if s.webhookURL == "" {
		return fmt.Errorf("slack webhook URL not configured")
	}

	message := SlackMessage{
		Text:      "Testovací zpráva ze Statusboardu",
		Username:  s.getUsername(),
		Channel:   s.channel,
		IconEmoji: ":white_check_mark:",
		Attachments: []SlackAttachment{
			{
				Color:     "good",
				Title:     "Notifikace fungují",
				Text:      "Změny stavu externích služeb budou hlášeny do tohoto kanálu.",
				Footer:    defaultSlackUsername,
				Timestamp: time.Now().Unix(),
			},
		},
	}

	return s.sendMessage(ctx, message)
}

func (s *SlackNotifier) buildStatusChangesMessage(changes []StatusChange) SlackMessage {
	failing := 0
	for _, change := range changes {
		if change.To.IsFailing() {
			failing++
		}
	}

	var summary strings.Builder
	summary.WriteString("*Změna stavu externích služeb*\n")
	summary.WriteString(fmt.Sprintf("Změněno: %d, s chybou: %d", len(changes), failing))

	attachments := make([]SlackAttachment, 0, len(changes))
	for i, change := range changes {
		if i >= maxChangesPerMessage {
			attachments = append(attachments, SlackAttachment{
				Text: fmt.Sprintf("... a %d dalších", len(changes)-maxChangesPerMessage),
			})
			break
		}

		attachments = append(attachments, SlackAttachment{
			Color:     changeColor(change),
			Title:     change.Page.DisplayName(),
			TitleLink: change.Page.URL,
			Fields: []SlackField{
				{Title: "Předchozí stav", Value: change.From.Label(), Short: true},
				{Title: "Aktuální stav", Value: change.To.Label(), Short: true},
			},
			Footer:    defaultSlackUsername,
			Timestamp: change.At.Unix(),
		})
	}

	return SlackMessage{
		Text:        summary.String(),
		Username:    s.getUsername(),
		Channel:     s.channel,
		Attachments: attachments,
	}
}

func changeColor(change StatusChange) string {
	switch {
	case change.Recovered():
		return "good"
	case change.To.IsFailing():
		return "danger"
	default:
		return "warning"
	}
}

// sendMessage posts a message to the webhook, retrying 429 and 5xx responses
func (s *SlackNotifier) sendMessage(ctx context.Context, message SlackMessage) error {
	err := utils.Retry(ctx, s.retry, func() error {
		return s.http.Post(ctx, s.webhookURL, message, nil)
	})
	if err != nil {
		return fmt.Errorf("failed to send message to Slack: %w", err)
	}

	s.logger.Debug("Slack notification sent successfully")
	return nil
}

// getUsername returns the username to use for Slack messages
func (s *SlackNotifier) getUsername() string {
	return utils.FirstNonEmpty(s.username, defaultSlackUsername)
}
