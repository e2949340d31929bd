package job

import (
	"context"
	"time"

	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"
	"github.com/officeportal/portal/web/service"
)

// FeedbackReminderJob reminds the external channels about feedback nobody has
// picked up yet.
type FeedbackReminderJob struct {
	feedbackService service.FeedbackService

	ctx context.Context
	age time.Duration
}

// NewFeedbackReminderJob reports feedback older than age; deliveries stop when
// ctx is cancelled.
func NewFeedbackReminderJob(ctx context.Context, age time.Duration) *FeedbackReminderJob {
	return &FeedbackReminderJob{ctx: ctx, age: age}
}

func (j *FeedbackReminderJob) Run() {
	defer common.Recover("feedback reminder job", nil)
	if j.ctx.Err() != nil {
		return
	}
	n, err := j.feedbackService.RemindStale(j.ctx, j.age)
	if err != nil {
		logger.Warning("feedback reminder failed:", err)
		return
	}
	if n > 0 {
		logger.Infof("reminded about %d unanswered feedback entries", n)
	}
}
