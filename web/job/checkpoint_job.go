package job

import (
	"github.com/officeportal/portal/database"
	"github.com/officeportal/portal/logger"
	"github.com/officeportal/portal/util/common"
)

// CheckpointJob folds the SQLite write-ahead log back into the database file.
type CheckpointJob struct{}

func NewCheckpointJob() *CheckpointJob {
	return new(CheckpointJob)
}

// Run is the cron.Job entry point.
func (j *CheckpointJob) Run() {
	defer common.Recover("checkpoint job", nil)
	if err := database.Checkpoint(); err != nil {
		logger.Warning("database checkpoint failed:", err)
		return
	}
	logger.Debug("database checkpoint done")
}
