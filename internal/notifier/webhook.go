package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dealpick/backend/internal/models"
)

// Embed colors by discount tier.
const (
	colorMinor = 3092790  // #2F3136
	colorGood  = 16753920 // #FFA500
	colorHot   = 16711680 // #FF0000
	colorSteal = 16776960 // #FFFF00

	discountThresholdGood = 20
	discountThresholdHot  = 40
	discountThresholdBig  = 60
)

// Client announces newly created deals to a Discord-compatible webhook.
// An empty webhook URL makes every call a no-op.
type Client struct {
	webhookURL string
	client     *http.Client
}

func New(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Enabled reports whether a webhook is configured.
func (c *Client) Enabled() bool {
	return c.webhookURL != ""
}

// AnnounceDeal posts a new-deal embed to the webhook.
func (c *Client) AnnounceDeal(ctx context.Context, deal *models.Deal) error {
	if c.webhookURL == "" {
		return nil
	}
	return c.post(ctx, formatDealEmbed(deal))
}

type webhookPayload struct {
	Content string  `json:"content,omitempty"`
	Embeds  []embed `json:"embeds"`
}

type embedThumbnail struct {
	URL string `json:"url,omitempty"`
}

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

type embed struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description,omitempty"`
	URL         string         `json:"url,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Color       int            `json:"color,omitempty"`
	Thumbnail   embedThumbnail `json:"thumbnail,omitempty"`
	Fields      []embedField   `json:"fields,omitempty"`
}

func formatDealEmbed(deal *models.Deal) embed {
	title := deal.Title
	if deal.DiscountPercentage > 0 {
		title = fmt.Sprintf("%s (-%d%%)", deal.Title, deal.DiscountPercentage)
	}

	fields := []embedField{
		{Name: "Was", Value: fmt.Sprintf("$%.2f", deal.OriginalPrice), Inline: true},
		{Name: "Now", Value: fmt.Sprintf("$%.2f", deal.DiscountedPrice), Inline: true},
	}
	if deal.Category != "" {
		fields = append(fields, embedField{Name: "Category", Value: deal.Category, Inline: true})
	}

	var thumbnail embedThumbnail
	if deal.Image != "" {
		thumbnail.URL = deal.Image
	}

	return embed{
		Title:       title,
		URL:         deal.AffiliateLink,
		Description: deal.Description,
		Timestamp:   deal.CreatedAt.Format(time.RFC3339),
		Color:       discountColor(deal.DiscountPercentage),
		Thumbnail:   thumbnail,
		Fields:      fields,
	}
}

func (c *Client) post(ctx context.Context, e embed) error {
	payload, err := json.Marshal(webhookPayload{Embeds: []embed{e}})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("webhook status: %s, body: %s", resp.Status, string(body))
}

func discountColor(percent int) int {
	switch {
	case percent >= discountThresholdBig:
		return colorSteal
	case percent >= discountThresholdHot:
		return colorHot
	case percent >= discountThresholdGood:
		return colorGood
	default:
		return colorMinor
	}
}
