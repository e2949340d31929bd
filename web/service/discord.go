package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/officeportal/portal/util/common"

	"github.com/goccy/go-json"
	"github.com/valyala/fasthttp"
)

type discordField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbed struct {
	Title  string         `json:"title"`
	URL    string         `json:"url,omitempty"`
	Color  int            `json:"color"`
	Fields []discordField `json:"fields"`
	Footer struct {
		Text string `json:"text"`
	} `json:"footer"`
}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordChannel posts an embed to a Discord webhook.
type DiscordChannel struct {
	webhookURL string
	timeout    time.Duration
	client     *fasthttp.Client
}

func NewDiscordChannel(webhookURL string, timeout time.Duration) *DiscordChannel {
	return &DiscordChannel{
		webhookURL: webhookURL,
		timeout:    timeout,
		client:     &fasthttp.Client{Name: "portal"},
	}
}

func (d *DiscordChannel) Name() string { return "discord" }

func (d *DiscordChannel) Enabled() bool { return d.webhookURL != "" }

func (d *DiscordChannel) Send(ctx context.Context, event Event) error {
	body, err := json.Marshal(discordPayload{Embeds: []discordEmbed{buildEmbed(event)}})
	if err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(d.webhookURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	deadline := time.Now().Add(d.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	if err := d.client.DoDeadline(req, resp, deadline); err != nil {
		return err
	}
	if code := resp.StatusCode(); code < 200 || code >= 300 {
		msg := resp.Body()
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return fmt.Errorf("discord webhook returned %d: %s", code, bytes.TrimSpace(msg))
	}
	return nil
}

func buildEmbed(event Event) discordEmbed {
	embed := discordEmbed{
		Title: event.Title,
		URL:   event.Link(),
		Color: event.Color,
	}
	for _, f := range event.Fields {
		embed.Fields = append(embed.Fields, discordField{Name: f.Name, Value: f.Value, Inline: true})
	}
	if event.Body != "" {
		embed.Fields = append(embed.Fields, discordField{
			Name:  event.BodyLabel,
			Value: common.Truncate(event.Body, externalTextLimit),
		})
	}
	embed.Footer.Text = footerText
	return embed
}
