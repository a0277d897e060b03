package workers

import (
	"context"
	"encoding/json"
	"errors"

	dtocommon "schnorr-batch/pkg/dto_common"
	"schnorr-batch/pkg/logger"
	"schnorr-batch/pkg/rabbitmq"
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/history"
	"schnorr-batch/src/types/incoming"
	"schnorr-batch/src/verification"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

var errNoRecords = errors.New("request carries no records and use_files is not set")

// BatchRequestWorker runs one batch per queued request. Completed runs go to
// the result queue, aborted runs and malformed requests to the failure queue.
type BatchRequestWorker struct {
	service          verification.BatchVerificationService
	consumer         rabbitmq.IRabbitmqConsumer
	resultPublisher  rabbitmq.IRabbitmqPublisher
	failurePublisher rabbitmq.IRabbitmqPublisher
	logger           *logger.Logger
}

// NewBatchRequestWorker resolves its queues from the registries, which must
// be initialized first.
func NewBatchRequestWorker(service verification.BatchVerificationService) *BatchRequestWorker {
	return NewBatchRequestWorkerWith(
		service,
		rabbitmq.GetConsumer(BatchRequestConsumerAlias),
		rabbitmq.GetPublisher(BatchResultPublisherAlias),
		rabbitmq.GetPublisher(BatchFailurePublisherAlias),
	)
}

func NewBatchRequestWorkerWith(
	service verification.BatchVerificationService,
	consumer rabbitmq.IRabbitmqConsumer,
	resultPublisher rabbitmq.IRabbitmqPublisher,
	failurePublisher rabbitmq.IRabbitmqPublisher,
) *BatchRequestWorker {
	return &BatchRequestWorker{
		service:          service,
		consumer:         consumer,
		resultPublisher:  resultPublisher,
		failurePublisher: failurePublisher,
		logger:           logger.Default(),
	}
}

func (w *BatchRequestWorker) GetServiceName() string {
	return string(BatchRequestConsumerAlias)
}

func (w *BatchRequestWorker) StartService() {
	if err := w.consumer.StartConsuming(w.handleDelivery); err != nil {
		w.logger.Errorf(err, "Could not start consuming for %s", w.GetServiceName())
	}
}

func (w *BatchRequestWorker) handleDelivery(d amqp.Delivery) {
	var request incoming.BatchRunRequestDto
	responseFactory := dtocommon.NewBatchFailureFactory("", d.Body)

	if err := json.Unmarshal(d.Body, &request); err != nil {
		w.publishFailure(responseFactory.CreateErrorDto(err, reasoncodes.ErrUnmarshal))
		return
	}
	if request.RequestId == "" {
		request.RequestId = uuid.NewString()
	}
	responseFactory = dtocommon.NewBatchFailureFactory(request.RequestId, d.Body)

	var result dtocommon.BatchVerificationResultDto
	switch {
	case request.UseFiles:
		result = w.service.RunFromFiles(context.Background(), request.RequestId, history.SourceQueue)
	case len(request.Records) > 0:
		result = w.service.RunRecords(context.Background(), request.RequestId, request.DomainRecords(), history.SourceQueue)
	default:
		w.publishFailure(responseFactory.CreateErrorDto(errNoRecords, reasoncodes.ErrInvalidRecord))
		return
	}

	if result.Outcome == "aborted" {
		w.publishFailure(responseFactory.CreateErrorDto(errors.New(result.Message), result.ReasonCode))
		return
	}

	if err := w.resultPublisher.Publish(result); err != nil {
		w.logger.Errorf(err, "Could not publish result of run %s", result.RunId)
		return
	}
	w.logger.Infof("Processed batch request %s: run %s %s", request.RequestId, result.RunId, result.Outcome)
}

func (w *BatchRequestWorker) publishFailure(failure utilities.Serializable) {
	if err := w.failurePublisher.Publish(failure); err != nil {
		w.logger.Errorf(err, "Could not publish batch failure")
	}
}
