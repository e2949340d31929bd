package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/util/common"

	"github.com/mymmrac/telego"
	tu "github.com/mymmrac/telego/telegoutil"
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// TelegramChannel sends Markdown messages to one chat through the Bot API.
// The bot is created on first use.
type TelegramChannel struct {
	cfg config.TelegramConfig

	mu  sync.Mutex
	bot *telego.Bot
}

func NewTelegramChannel(cfg config.TelegramConfig) *TelegramChannel {
	return &TelegramChannel{cfg: cfg}
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Enabled() bool { return t.cfg.Configured() }

func (t *TelegramChannel) getBot() (*telego.Bot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.bot != nil {
		return t.bot, nil
	}
	var opts []telego.BotOption
	if t.cfg.APIServer != "" {
		opts = append(opts, telego.WithAPIServer(t.cfg.APIServer))
	}
	bot, err := telego.NewBot(t.cfg.BotToken, opts...)
	if err != nil {
		return nil, err
	}
	t.bot = bot
	return bot, nil
}

func (t *TelegramChannel) chatID() telego.ChatID {
	if id, err := strconv.ParseInt(t.cfg.ChatID, 10, 64); err == nil {
		return tu.ID(id)
	}
	return tu.Username(t.cfg.ChatID)
}

func (t *TelegramChannel) Send(ctx context.Context, event Event) error {
	bot, err := t.getBot()
	if err != nil {
		return err
	}
	msg := tu.Message(t.chatID(), telegramText(event)).WithParseMode(telego.ModeMarkdown)
	_, err = bot.SendMessage(ctx, msg)
	return err
}

func telegramText(event Event) string {
	limit := event.BodyLimit
	if limit <= 0 {
		limit = externalTextLimit
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*%s*\n\n", markdownEscaper.Replace(event.Title))
	for _, f := range event.Fields {
		fmt.Fprintf(&b, "*%s:* %s\n", f.Name, markdownEscaper.Replace(f.Value))
	}
	if event.Body != "" {
		fmt.Fprintf(&b, "\n*%s:*\n%s\n", event.BodyLabel, markdownEscaper.Replace(common.Truncate(event.Body, limit)))
	}
	if link := event.Link(); link != "" {
		fmt.Fprintf(&b, "\n[Открыть в админке](%s)", link)
	}
	return b.String()
}
