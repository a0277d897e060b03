package workers

import "schnorr-batch/pkg/rabbitmq"

const (
	BatchRequestConsumerAlias  rabbitmq.ConsumerAlias  = "BatchRequestConsumer"
	BatchResultPublisherAlias  rabbitmq.PublisherAlias = "BatchResultPublisher"
	BatchFailurePublisherAlias rabbitmq.PublisherAlias = "BatchFailurePublisher"
	LogPublisherAlias          rabbitmq.PublisherAlias = "LogPublisher"

	scheduledBatchWorkerName = "ScheduledBatchWorker"
)
