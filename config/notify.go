package config

import (
	"os"
	"strings"
	"time"
)

const notifyTimeout = 10 * time.Second

// SMTPConfig configures the e-mail notification channel.
type SMTPConfig struct {
	Enabled       bool
	Server        string
	Port          int
	Username      string
	Password      string
	From          string
	SkipTLSVerify bool
	Recipients    []string
}

// Configured reports whether the channel has everything it needs to send.
func (c SMTPConfig) Configured() bool {
	return c.Enabled && c.Server != "" && c.Username != "" && c.Password != "" && len(c.Recipients) > 0
}

// TelegramConfig configures the Telegram notification channel.
type TelegramConfig struct {
	BotToken  string
	ChatID    string
	APIServer string
}

func (c TelegramConfig) Configured() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// NotifyConfig groups the optional external notification channels.
// A channel is active only when its settings are present.
type NotifyConfig struct {
	SMTP              SMTPConfig
	DiscordWebhookURL string
	Telegram          TelegramConfig
	Timeout           time.Duration
}

func GetNotifyConfig() NotifyConfig {
	smtp := SMTPConfig{
		Enabled:       getBool("SMTP_ENABLED"),
		Server:        os.Getenv("SMTP_SERVER"),
		Port:          getInt("SMTP_PORT", 587),
		Username:      os.Getenv("SMTP_USERNAME"),
		Password:      os.Getenv("SMTP_PASSWORD"),
		From:          os.Getenv("SMTP_FROM"),
		SkipTLSVerify: getBool("SMTP_SKIP_TLS_VERIFY"),
		Recipients:    splitList(os.Getenv("NOTIFY_EMAIL_TO")),
	}
	if smtp.Server == "" {
		smtp.Server = "smtp.gmail.com"
	}
	if smtp.From == "" {
		smtp.From = smtp.Username
	}

	return NotifyConfig{
		SMTP:              smtp,
		DiscordWebhookURL: strings.TrimSpace(os.Getenv("DISCORD_WEBHOOK_URL")),
		Telegram: TelegramConfig{
			BotToken:  strings.TrimSpace(os.Getenv("TELEGRAM_BOT_TOKEN")),
			ChatID:    strings.TrimSpace(os.Getenv("TELEGRAM_CHAT_ID")),
			APIServer: strings.TrimSpace(os.Getenv("TELEGRAM_API_SERVER")),
		},
		Timeout: notifyTimeout,
	}
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
