package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	dtocommon "schnorr-batch/pkg/dto_common"
	"schnorr-batch/pkg/logger"
	"schnorr-batch/pkg/utilities"
	"schnorr-batch/src/config"
	"schnorr-batch/src/database"
	"schnorr-batch/src/history"
	"schnorr-batch/src/records"
	"schnorr-batch/src/verification"

	"github.com/google/uuid"
	"github.com/markkurossi/tabulate"
)

func main() {
	configPath := flag.String("config", "config.json", "service config file")
	aclPath := flag.String("acl", "", "ACL file, overrides records.acl_path")
	payloadPath := flag.String("payload", "", "payload file, overrides records.payload_path")
	ledgerKind := flag.String("ledger", "", "ledger kind (local|solana), overrides ledger.kind")
	asJson := flag.Bool("json", false, "print the raw result instead of a table")
	flag.Parse()

	cfg, err := utilities.ReadConfig[config.BatchClientConfigJson, config.BatchClientConfig](*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reading %s: %v\n", *configPath, err)
		os.Exit(2)
	}

	logger.InitDefaultLogger(logger.GlobalLoggerConfig{
		Config: cfg.LoggerConf,
		Args:   []logger.LoggerArg{{Key: "application", Value: "batch-verify"}},
	})
	cliLogger := logger.Default().WithOutput(os.Stderr)

	cfg.RecordsConf.AclPath = utilities.Ternary(*aclPath == "", cfg.RecordsConf.AclPath, *aclPath)
	cfg.RecordsConf.PayloadPath = utilities.Ternary(*payloadPath == "", cfg.RecordsConf.PayloadPath, *payloadPath)
	cfg.LedgerConf.Kind = utilities.Ternary(*ledgerKind == "", cfg.LedgerConf.Kind, *ledgerKind)

	result, err := run(context.Background(), cfg, cliLogger)
	if err != nil {
		cliLogger.Fatal(err, "Could not set up batch run")
	}

	if *asJson {
		raw, err := result.Serialize()
		if err != nil {
			cliLogger.Fatal(err, "Could not encode result")
		}
		fmt.Println(string(raw))
	} else {
		printResult(os.Stdout, result)
	}

	if !result.Success {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.BatchClientConfig, l *logger.Logger) (dtocommon.BatchVerificationResultDto, error) {
	var runHistory history.BatchRunService
	if cfg.DatabaseConf.Enabled {
		db, err := database.ConnectToDatabase(cfg.DatabaseConf)
		if err != nil {
			return dtocommon.BatchVerificationResultDto{}, err
		}
		runHistory = history.NewBatchRunService(history.NewBatchRunRepository(db))
	}

	group, err := config.BuildGroup(cfg.ProtocolConf)
	if err != nil {
		return dtocommon.BatchVerificationResultDto{}, err
	}
	ledger, err := config.BuildLedger(ctx, cfg.LedgerConf, group)
	if err != nil {
		return dtocommon.BatchVerificationResultDto{}, err
	}
	engine, err := config.BuildEngine(cfg.ProtocolConf, group, ledger, l)
	if err != nil {
		return dtocommon.BatchVerificationResultDto{}, err
	}

	files := records.NewFileSource(cfg.RecordsConf.AclPath, cfg.RecordsConf.PayloadPath)
	service := verification.NewBatchVerificationService(engine, files, runHistory, l)

	return service.RunFromFiles(ctx, uuid.NewString(), history.SourceCli), nil
}

func printResult(w io.Writer, result dtocommon.BatchVerificationResultDto) {
	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Field").SetAlign(tabulate.ML)
	tab.Header("Value").SetAlign(tabulate.ML)

	add := func(field, value string) {
		row := tab.Row()
		row.Column(field)
		row.Column(value)
	}

	add("Run", result.RunId)
	add("Outcome", result.Outcome)
	add("Message", result.Message)
	add("Records", strconv.Itoa(result.Records))

	if result.ReasonCode != "" {
		add("Reason", string(result.ReasonCode))
	}
	if result.Outcome != "aborted" {
		add("Verification time", fmt.Sprintf("%.3fs", result.VerificationTime))
		add("Total time", fmt.Sprintf("%.3fs", result.TotalTime))
		add("Units used", strconv.FormatUint(result.UnitsUsed, 10))
		add("Unit price", result.UnitPrice)
		add("Total cost", result.TotalCost)
		add("Total cost ("+result.CostUnit+")", strconv.FormatFloat(result.TotalCostDisplay, 'f', -1, 64))
		add("Reference", result.Reference)
	}

	tab.Print(w)
}
