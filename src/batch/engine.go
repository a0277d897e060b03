package batch

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sync"
	"time"

	"schnorr-batch/pkg/logger"
	reasoncodes "schnorr-batch/pkg/reason_codes"
	"schnorr-batch/src/schnorr"
	"schnorr-batch/src/types/domain"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Engine runs the commit/challenge/response exchange for every record of a
// run and submits the proofs as one batch.
type Engine struct {
	group             schnorr.Group
	ledger            Ledger
	hash              schnorr.HashFunc
	random            io.Reader
	concurrency       int
	challengeTimeout  time.Duration
	submissionTimeout time.Duration
	now               func() time.Time
	logger            *logger.Logger
}

type Option func(*Engine)

// WithConcurrency bounds how many records are proved at once. Values below 2
// keep the run sequential.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		e.concurrency = n
	}
}

func WithChallengeTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.challengeTimeout = d
	}
}

func WithSubmissionTimeout(d time.Duration) Option {
	return func(e *Engine) {
		e.submissionTimeout = d
	}
}

func WithHashFunc(hash schnorr.HashFunc) Option {
	return func(e *Engine) {
		if hash != nil {
			e.hash = hash
		}
	}
}

// WithRandom sets the nonce source. The reader may be shared between
// concurrently proved records.
func WithRandom(random io.Reader) Option {
	return func(e *Engine) {
		if random != nil {
			e.random = &lockedReader{r: random}
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

func NewEngine(group schnorr.Group, ledger Ledger, opts ...Option) *Engine {
	e := &Engine{
		group:       group,
		ledger:      ledger,
		hash:        schnorr.SHA256,
		concurrency: 1,
		now:         time.Now,
		logger:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

func (e *Engine) Group() schnorr.Group {
	return e.group
}

// Run proves every record and submits the batch once. Failures before
// finality produce an aborted outcome; nothing is submitted in that case.
func (e *Engine) Run(ctx context.Context, records []domain.Record) Outcome {
	runId := uuid.New()
	runLogger := e.logger.WithField("run_id", runId.String())
	start := e.now()

	runLogger.Infof("Starting batch run with %d records over group %s", len(records), e.group.Name())

	if len(records) == 0 {
		return e.abort(runLogger, runId, 0, newRunError(reasoncodes.ErrInvalidRecord, -1, ErrNoRecords))
	}

	entries, err := e.proveAll(ctx, runLogger, records)
	if err != nil {
		return e.abort(runLogger, runId, len(records), err)
	}

	assembler := NewAssembler(len(entries))
	for _, entry := range entries {
		if err := assembler.Append(entry); err != nil {
			return e.abort(runLogger, runId, len(records), newRunError(reasoncodes.ErrProofGeneration, -1, err))
		}
	}
	batch := assembler.Freeze()

	outcome := e.submit(ctx, runLogger, batch)
	outcome.RunId = runId
	outcome.Records = len(records)
	outcome.TotalElapsed = e.now().Sub(start)

	if outcome.Completed() {
		runLogger.Infof(
			"Batch run finished: %s, %d units, cost %s %s, submission took %s",
			outcome.Kind, outcome.UnitsUsed, outcome.DisplayCostString(), outcome.UnitPrice.Symbol, outcome.Elapsed,
		)
	}

	return outcome
}

func (e *Engine) proveAll(ctx context.Context, runLogger *logger.Logger, records []domain.Record) ([]domain.ProofEntry, error) {
	entries := make([]domain.ProofEntry, len(records))

	if e.concurrency < 2 {
		for i, record := range records {
			entry, err := e.prove(ctx, runLogger, i, record)
			if err != nil {
				return nil, err
			}
			entries[i] = entry
		}
		return entries, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, record := range records {
		g.Go(func() error {
			entry, err := e.prove(gctx, runLogger, i, record)
			if err != nil {
				return err
			}
			entries[i] = entry
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return entries, nil
}

// prove runs hash, commit, challenge and response for one record.
func (e *Engine) prove(ctx context.Context, runLogger *logger.Logger, index int, record domain.Record) (domain.ProofEntry, error) {
	if err := ctx.Err(); err != nil {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrChallengeOracle, index, err)
	}

	subjectID := CanonicalSubjectID(record.SubjectID)
	if subjectID == "" {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrInvalidRecord, index, ErrEmptySubject)
	}

	secret, err := schnorr.HashSecret(record.Secret, e.group, e.hash)
	if err != nil {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrInvalidRecord, index, err)
	}

	commitment, err := schnorr.Commit(e.group, e.random)
	if err != nil {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrProofGeneration, index, err)
	}
	runLogger.Debugf("Record %d commitment %s", index, commitment)

	challenge, err := e.fetchChallenge(ctx, commitment)
	if err != nil {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrChallengeOracle, index, err)
	}

	response, err := commitment.Respond(challenge, secret, e.group)
	if err != nil {
		return domain.ProofEntry{}, newRunError(reasoncodes.ErrProofGeneration, index, err)
	}

	return domain.ProofEntry{
		Commitment:   commitment.Value,
		Response:     response,
		Generator:    e.group.Generator(),
		Modulus:      e.group.Modulus(),
		Challenge:    challenge,
		SubjectID:    subjectID,
		SecretDigest: secret.Digest,
	}, nil
}

func (e *Engine) fetchChallenge(ctx context.Context, commitment *schnorr.Commitment) (*big.Int, error) {
	ctx, cancel := withOptionalTimeout(ctx, e.challengeTimeout)
	defer cancel()

	challenge, err := e.ledger.GetChallenge(ctx, commitment.Value)
	if err != nil {
		return nil, err
	}
	if challenge == nil {
		return nil, ErrNilChallenge
	}

	return challenge, nil
}

func (e *Engine) submit(ctx context.Context, runLogger *logger.Logger, batch domain.Batch) Outcome {
	ctx, cancel := withOptionalTimeout(ctx, e.submissionTimeout)
	defer cancel()

	runLogger.Infof("Submitting batch of %d proofs", batch.Len())
	submitStart := e.now()

	receipt, err := e.ledger.BatchVerify(ctx, batch)
	if err != nil {
		return e.abort(runLogger, uuid.Nil, batch.Len(), newRunError(reasoncodes.ErrBatchSubmission, -1, err))
	}

	price, err := e.ledger.UnitPrice(ctx)
	if err != nil {
		return e.abort(runLogger, uuid.Nil, batch.Len(), newRunError(reasoncodes.ErrBatchSubmission, -1, fmt.Errorf("unit price: %w", err)))
	}

	cost, displayCost := settlementCost(receipt.UnitsUsed, price)

	outcome := Outcome{
		Kind:        OutcomeRejected,
		Message:     MessageRejected,
		Elapsed:     e.now().Sub(submitStart),
		UnitsUsed:   receipt.UnitsUsed,
		UnitPrice:   price,
		Cost:        cost,
		DisplayCost: displayCost,
		Reference:   receipt.Reference,
		Reason:      reasoncodes.ErrBatchRejected,
	}
	if receipt.Accepted {
		outcome.Kind = OutcomeSuccess
		outcome.Message = MessageVerified
		outcome.Reason = ""
	}

	return outcome
}

func (e *Engine) abort(runLogger *logger.Logger, runId uuid.UUID, records int, err error) Outcome {
	runLogger.Errorf(err, "Batch run aborted before finality")
	return AbortedOutcome(runId, records, err)
}

func withOptionalTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

type lockedReader struct {
	mu sync.Mutex
	r  io.Reader
}

func (lr *lockedReader) Read(p []byte) (int, error) {
	lr.mu.Lock()
	defer lr.mu.Unlock()
	return lr.r.Read(p)
}
