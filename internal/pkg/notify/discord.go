package notify

import (
	"Fanboard/internal/api/dto"
	"Fanboard/internal/pkg/logger"
	"Fanboard/internal/pkg/report"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/go-resty/resty/v2"
)

// 绿色 rgb(46, 204, 113)
const embedColor = 46<<16 | 204<<8 | 113

// Notifier 推送日报
type Notifier interface {
	NotifyReport(ctx context.Context, r *dto.DailyReport) error
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type EmbedFooter struct {
	Text string `json:"text"`
}

type Embed struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   string       `json:"timestamp"`
	Color       int          `json:"color"`
	Fields      []EmbedField `json:"fields"`
	Footer      EmbedFooter  `json:"footer"`
}

type WebhookPayload struct {
	Embeds []Embed `json:"embeds"`
}

type DiscordNotifier struct {
	client     *resty.Client
	webhookURL string
}

// NewDiscordNotifier webhookURL 为空时返回的 Notifier 不做任何事
func NewDiscordNotifier(webhookURL string) *DiscordNotifier {
	client := resty.New()
	client.SetTimeout(15 * time.Second)
	client.SetTransport(logger.NewHTTPTransport())
	client.SetHeader("Content-Type", "application/json")
	return &DiscordNotifier{client: client, webhookURL: webhookURL}
}

func (n *DiscordNotifier) NotifyReport(ctx context.Context, r *dto.DailyReport) error {
	if n.webhookURL == "" {
		log.DebugContext(ctx, "webhook url not configured, skip notify")
		return nil
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(BuildPayload(r)).
		Post(n.webhookURL)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("post webhook: unexpected status %d", resp.StatusCode())
	}
	return nil
}

// BuildPayload 每个展示块对应一个 "Member Performance" 字段
func BuildPayload(r *dto.DailyReport) *WebhookPayload {
	fields := make([]EmbedField, 0, len(r.Blocks)+1)
	fields = append(fields, EmbedField{
		Name:  "Club Total",
		Value: fmt.Sprintf("📈 **%s** fans today", report.SignedComma(r.TotalGain)),
	})
	for _, block := range r.Blocks {
		fields = append(fields, EmbedField{Name: "Member Performance", Value: block})
	}

	return &WebhookPayload{
		Embeds: []Embed{{
			Title:       r.Title,
			Description: fmt.Sprintf("**Target:** %s", r.Target),
			Timestamp:   r.GeneratedAt.Format(time.RFC3339),
			Color:       embedColor,
			Fields:      fields,
			Footer:      EmbedFooter{Text: r.Legend},
		}},
	}
}
