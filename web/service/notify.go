package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/officeportal/portal/config"
	"github.com/officeportal/portal/database/model"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"

	"go.uber.org/atomic"
	"gorm.io/gorm"
)

const (
	externalTextLimit = 1000
	dateLayout        = "02.01.2006 15:04"
	footerText        = "СК РФ - Интернет-приёмная"
)

// Field is a labelled value rendered by the external channels.
type Field struct {
	Name  string
	Value string
}

// Event describes something staff should hear about. Title and Message form the
// internal inbox entry; the other fields feed the external channels.
type Event struct {
	Title      string
	Message    string
	FeedbackId *int

	Subject   string
	Fields    []Field
	BodyLabel string
	Body      string
	// BodyLimit overrides externalTextLimit for the Telegram message.
	BodyLimit int
	Path      string
	Color     int
	CreatedAt time.Time

	// InternalOnly events are never sent to external channels.
	InternalOnly bool
}

// Link returns the absolute admin URL of the event, or "" without a configured domain.
func (e Event) Link() string {
	if e.Path == "" {
		return ""
	}
	domain := config.GetWebDomain()
	if domain == "" {
		return ""
	}
	return "https://" + domain + e.Path
}

// Channel is an external delivery target.
type Channel interface {
	Name() string
	Enabled() bool
	Send(ctx context.Context, event Event) error
}

// ChannelStats counts deliveries of one channel since start.
type ChannelStats struct {
	Name   string
	Sent   int64
	Failed int64
}

type channelCounter struct {
	sent   atomic.Int64
	failed atomic.Int64
}

var (
	channelsMu sync.RWMutex
	channels   []Channel
	counters   sync.Map // channel name -> *channelCounter
)

// InitChannels builds the external channels from configuration.
func InitChannels(cfg config.NotifyConfig) {
	SetChannels(
		NewMailChannel(cfg.SMTP),
		NewDiscordChannel(cfg.DiscordWebhookURL, cfg.Timeout),
		NewTelegramChannel(cfg.Telegram),
	)
	for _, ch := range GetChannels() {
		if ch.Enabled() {
			logger.Infof("notification channel %s enabled", ch.Name())
		}
	}
}

func SetChannels(chs ...Channel) {
	channelsMu.Lock()
	defer channelsMu.Unlock()
	channels = chs
}

func GetChannels() []Channel {
	channelsMu.RLock()
	defer channelsMu.RUnlock()
	return append([]Channel(nil), channels...)
}

func counterFor(name string) *channelCounter {
	v, _ := counters.LoadOrStore(name, &channelCounter{})
	return v.(*channelCounter)
}

// GetChannelStats reports delivery counters for every configured channel.
func GetChannelStats() []ChannelStats {
	var stats []ChannelStats
	for _, ch := range GetChannels() {
		c := counterFor(ch.Name())
		stats = append(stats, ChannelStats{Name: ch.Name(), Sent: c.sent.Load(), Failed: c.failed.Load()})
	}
	return stats
}

type NotifyService struct{}

// Record writes the internal inbox entry of the event using tx.
func (s *NotifyService) Record(tx *gorm.DB, event Event) (*model.Notification, error) {
	n := &model.Notification{
		Title:      event.Title,
		Message:    event.Message,
		FeedbackId: event.FeedbackId,
	}
	if err := tx.Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

// Dispatch delivers the event to every enabled external channel, one after the
// other. A failing channel is logged and counted but never stops the rest.
func (s *NotifyService) Dispatch(ctx context.Context, event Event) {
	if event.InternalOnly {
		return
	}
	timeout := config.GetNotifyConfig().Timeout
	for _, ch := range GetChannels() {
		if !ch.Enabled() {
			continue
		}
		counter := counterFor(ch.Name())
		if err := sendSafely(ctx, ch, event, timeout); err != nil {
			counter.failed.Inc()
			logger.Warningf("notification via %s failed: %v", ch.Name(), err)
			continue
		}
		counter.sent.Inc()
	}
}

func sendSafely(ctx context.Context, ch Channel, event Event, timeout time.Duration) (err error) {
	defer common.Recover("", &err)
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return ch.Send(ctx, event)
}

func feedbackEvent(f *model.Feedback) Event {
	return Event{
		Title:      fmt.Sprintf("Новое заявление #%d", f.Id),
		Message:    fmt.Sprintf("Поступило заявление от %s", f.FullName),
		FeedbackId: &f.Id,
		Subject:    fmt.Sprintf("Новое заявление #%d - СК РФ", f.Id),
		Fields: []Field{
			{Name: "ФИО", Value: f.FullName},
			{Name: "Email", Value: common.OrDefault(f.Email, "не указан")},
			{Name: "Телефон", Value: common.OrDefault(f.Phone, "не указан")},
			{Name: "Дата", Value: f.CreatedAt.Format(dateLayout)},
		},
		BodyLabel: "Текст",
		Body:      f.Message,
		Path:      "/admin/feedback/" + strconv.Itoa(f.Id),
		Color:     0xff0000,
		CreatedAt: f.CreatedAt,
	}
}

func reviewEvent(r *model.Review) Event {
	return Event{
		Title:   fmt.Sprintf("Новый отзыв #%d", r.Id),
		Message: fmt.Sprintf("Поступил отзыв от %s (оценка: %d/5)", r.AuthorName, r.Rating),
		Subject: "Новый отзыв на сайте СК РФ",
		Fields: []Field{
			{Name: "Автор", Value: r.AuthorName},
			{Name: "Оценка", Value: fmt.Sprintf("%d/5", r.Rating)},
			{Name: "Заголовок", Value: r.Title},
			{Name: "Дата", Value: r.CreatedAt.Format(dateLayout)},
		},
		BodyLabel: "Содержание",
		Body:      r.Content,
		Path:      "/admin/reviews/" + strconv.Itoa(r.Id),
		Color:     0x00ff00,
		CreatedAt: r.CreatedAt,
	}
}

func documentEvent(d *model.Document, author *model.AdminUser) Event {
	return Event{
		Title:   fmt.Sprintf("Новый документ #%d", d.Id),
		Message: fmt.Sprintf("Поступил документ '%s' от %s", d.Title, author.DisplayName()),
		Subject: "Новый документ в СК РФ",
		Fields: []Field{
			{Name: "Название", Value: d.Title},
			{Name: "Тип", Value: d.DocumentType},
			{Name: "Автор", Value: author.DisplayName()},
			{Name: "Дата", Value: d.CreatedAt.Format(dateLayout)},
		},
		BodyLabel: "Содержание",
		Body:      d.Content,
		BodyLimit: 500,
		Path:      "/admin/documents/" + strconv.Itoa(d.Id),
		Color:     0x0066cc,
		CreatedAt: d.CreatedAt,
	}
}

func jobApplicationEvent(a *model.JobApplication) Event {
	return Event{
		Title:        fmt.Sprintf("Новая заявка на работу #%d", a.Id),
		Message:      fmt.Sprintf("Заявка от %s на должность с логином %s", a.FullName, a.DesiredUsername),
		InternalOnly: true,
	}
}

func staleFeedbackEvent(list []model.Feedback) Event {
	fields := make([]Field, 0, len(list))
	for i, f := range list {
		if i == 10 {
			fields = append(fields, Field{Name: "...", Value: fmt.Sprintf("и ещё %d", len(list)-i)})
			break
		}
		fields = append(fields, Field{
			Name:  fmt.Sprintf("#%d", f.Id),
			Value: fmt.Sprintf("%s, %s", f.FullName, f.CreatedAt.Format(dateLayout)),
		})
	}
	return Event{
		Title:     "Необработанные заявления",
		Message:   fmt.Sprintf("Заявлений без ответа: %d", len(list)),
		Subject:   fmt.Sprintf("Необработанные заявления (%d) - СК РФ", len(list)),
		Fields:    fields,
		Path:      "/admin/feedback",
		Color:     0xffa500,
		CreatedAt: time.Now(),
	}
}
