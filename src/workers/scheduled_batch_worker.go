package workers

import (
	"context"

	"schnorr-batch/pkg/logger"
	"schnorr-batch/pkg/rabbitmq"
	"schnorr-batch/src/history"
	"schnorr-batch/src/verification"

	"github.com/robfig/cron"
)

// ScheduledBatchWorker runs a file-sourced batch on a cron schedule.
type ScheduledBatchWorker struct {
	service   verification.BatchVerificationService
	schedule  string
	publisher rabbitmq.IRabbitmqPublisher
	cron      *cron.Cron
	logger    *logger.Logger
}

// NewScheduledBatchWorker returns nil for an empty schedule. publisher may be
// nil, results are then only logged and kept in history.
func NewScheduledBatchWorker(
	service verification.BatchVerificationService,
	schedule string,
	publisher rabbitmq.IRabbitmqPublisher,
) rabbitmq.WorkerService {
	if schedule == "" {
		return nil
	}

	return &ScheduledBatchWorker{
		service:   service,
		schedule:  schedule,
		publisher: publisher,
		cron:      cron.New(),
		logger:    logger.Default(),
	}
}

func (sw *ScheduledBatchWorker) GetServiceName() string {
	return scheduledBatchWorkerName
}

func (sw *ScheduledBatchWorker) StartService() {
	if err := sw.cron.AddFunc(sw.schedule, sw.runOnce); err != nil {
		sw.logger.Errorf(err, "Could not add function to %s", scheduledBatchWorkerName)
		return
	}

	sw.logger.Infof("%s scheduled with %q", scheduledBatchWorkerName, sw.schedule)
	sw.cron.Start()
}

func (sw *ScheduledBatchWorker) Stop() {
	sw.cron.Stop()
}

func (sw *ScheduledBatchWorker) runOnce() {
	result := sw.service.RunFromFiles(context.Background(), "", history.SourceSchedule)
	sw.logger.Infof("Scheduled run %s finished: %s", result.RunId, result.Outcome)

	if sw.publisher == nil {
		return
	}
	if err := sw.publisher.Publish(result); err != nil {
		sw.logger.Errorf(err, "Could not publish scheduled run %s", result.RunId)
	}
}
