package main

import (
	"context"

	appbuilder "schnorr-batch/pkg/app_builder"
	"schnorr-batch/pkg/logger"
	"schnorr-batch/pkg/rabbitmq"
	"schnorr-batch/pkg/rest"
	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/config"
	"schnorr-batch/src/database"
	"schnorr-batch/src/handlers"
	"schnorr-batch/src/history"
	"schnorr-batch/src/records"
	"schnorr-batch/src/verification"
	"schnorr-batch/src/workers"
)

const serviceName = "batch-client"

func main() {
	var (
		service      verification.BatchVerificationService
		runHistory   history.BatchRunService
		batchHandler *handlers.BatchHandler
	)

	builder := appbuilder.New[config.BatchClientConfigJson, config.BatchClientConfig]().
		InitLogger(logger.GlobalLoggerConfig{
			Args: []logger.LoggerArg{
				{Key: "application", Value: serviceName},
				{Key: "version", Value: "1.0.0"},
			},
		}).
		ResolveEnvironment().
		LoadConfig("config.json").
		WithOption(func(a *appbuilder.AppBuilder[config.BatchClientConfigJson, config.BatchClientConfig]) {
			// ----- DATABASE -----
			if a.Config.DatabaseConf.Enabled {
				db, err := database.ConnectToDatabase(a.Config.DatabaseConf)
				utilities.FailOnError(err, "Failed to connect to database")
				runHistory = history.NewBatchRunService(history.NewBatchRunRepository(db))
			}

			// ----- LEDGER + ENGINE -----
			group, err := config.BuildGroup(a.Config.ProtocolConf)
			utilities.FailOnError(err, "Invalid protocol group")

			ledger, err := config.BuildLedger(context.Background(), a.Config.LedgerConf, group)
			utilities.FailOnError(err, "Failed to initialize ledger")
			a.Logger.Infof("Using %s ledger with group %s", a.Config.LedgerConf.Kind, group.Name())

			engine, err := config.BuildEngine(a.Config.ProtocolConf, group, ledger, a.Logger)
			utilities.FailOnError(err, "Failed to build batch engine")

			files := records.NewFileSource(a.Config.RecordsConf.AclPath, a.Config.RecordsConf.PayloadPath)
			service = verification.NewBatchVerificationService(engine, files, runHistory, a.Logger)
			batchHandler = handlers.NewBatchHandler(service, runHistory)
		}).

		// ----- RABBITMQ -----
		InitRabbitmqConnection().
		InitRabbitmqRegistries()

	var queueWorker rabbitmq.WorkerService
	var resultPublisher rabbitmq.IRabbitmqPublisher
	if builder.Conn != nil {
		// ----- RABBITMQ LOGGING SINK -----
		if logPublisher := rabbitmq.GetPublisher(workers.LogPublisherAlias); logPublisher != nil {
			logger.AddSinkToLoggerInstance(logger.Default(), rabbitmq.CreateRabbitmqLoggerSink(logPublisher, serviceName))
		}
		queueWorker = workers.NewBatchRequestWorker(service)
		resultPublisher = rabbitmq.GetPublisher(workers.BatchResultPublisherAlias)
	}

	builder.
		// ----- WORKERS -----
		AddWorkerServices(
			queueWorker,
			workers.NewScheduledBatchWorker(service, builder.Config.Schedule, resultPublisher),
		).
		AddGinMiddleware(
			rest.NewMiddleware("*", rest.RequestLogger(logger.Default())),
		).

		// ----- ROUTES -----
		AddGinRoutes(
			rest.NewRoute(rest.POST, "v1", "batch/verify-json", batchHandler.VerifyFromFiles),
			rest.NewRoute(rest.POST, "v1", "batch/verify", batchHandler.VerifyRecords),
			rest.NewRoute(rest.GET, "v1", "batch/runs", batchHandler.GetRuns),
			rest.NewRoute(rest.GET, "v1", "batch/runs/:run_id", batchHandler.GetRun),
		).
		InitGinRouter().
		Build().
		Start()
}
