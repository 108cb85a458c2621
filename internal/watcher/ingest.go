package watcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/hyperjump/internai/internal/extract"
	"github.com/hyperjump/internai/internal/fileid"
	"github.com/hyperjump/internai/internal/mentor"
	"github.com/hyperjump/internai/internal/models"
	"github.com/hyperjump/internai/internal/session"
	"go.uber.org/zap"
)

// Submitter creates a daily log. *mentor.Mentor implements it.
type Submitter interface {
	SubmitLog(ctx context.Context, date models.Date, text string) (*mentor.LogView, error)
}

// Outcome is what happened to one journal file.
type Outcome string

const (
	Submitted  Outcome = "submitted"
	Rejected   Outcome = "rejected"
	Skipped    Outcome = "skipped"
	Superseded Outcome = "superseded"
)

// Result reports the handling of one journal file.
type Result struct {
	Path    string
	Date    models.Date
	Outcome Outcome
	View    *mentor.LogView
	Err     error
}

var errUnchanged = errors.New("unchanged since last submission")

// Ingester submits journal files as daily logs. Each file is its own session surface:
// a newer version of a file supersedes a submission still in flight for it.
type Ingester struct {
	submitter Submitter
	extractor *extract.Extractor
	board     *session.Board
	logger    *zap.Logger
	onResult  func(Result)
	settle    time.Duration

	mu        sync.Mutex
	submitted map[string]string // file key -> digest of the last submitted text
}

// IngesterOption configures an Ingester.
type IngesterOption func(*Ingester)

// WithIngestLogger sets the ingester's logger.
func WithIngestLogger(l *zap.Logger) IngesterOption {
	return func(in *Ingester) { in.logger = l }
}

// WithResults registers fn to receive every Result.
func WithResults(fn func(Result)) IngesterOption {
	return func(in *Ingester) { in.onResult = fn }
}

// WithSettleDelay returns a file's surface to Idle d after its submission completes.
func WithSettleDelay(d time.Duration) IngesterOption {
	return func(in *Ingester) { in.settle = d }
}

// NewIngester creates an ingester that submits through s.
func NewIngester(s Submitter, opts ...IngesterOption) *Ingester {
	in := &Ingester{
		submitter: s,
		extractor: extract.NewExtractor(),
		logger:    zap.NewNop(),
		submitted: make(map[string]string),
	}
	for _, opt := range opts {
		opt(in)
	}
	var boardOpts []session.Option
	if in.settle > 0 {
		boardOpts = append(boardOpts, session.WithResetDelay(in.settle))
	}
	in.board = session.NewBoard(boardOpts...)
	return in
}

// Ingest reads path and submits it for the date in its name. It matches FileFunc.
func (in *Ingester) Ingest(ctx context.Context, path string) {
	in.report(in.ingest(ctx, path))
}

func (in *Ingester) ingest(ctx context.Context, path string) Result {
	res := Result{Path: path}
	date, ok := extract.DateFromFilename(path)
	if !ok {
		res.Outcome = Skipped
		res.Err = errors.New("file name does not start with a date")
		return res
	}
	res.Date = date
	text, err := in.extractor.Extract(path)
	if err != nil {
		res.Outcome, res.Err = Skipped, err
		return res
	}
	if strings.TrimSpace(text) == "" {
		res.Outcome = Skipped
		res.Err = errors.New("file is empty")
		return res
	}

	key, digest := fileid.Key(path), fileid.Digest(text)
	if in.lastDigest(key) == digest {
		res.Outcome, res.Err = Skipped, errUnchanged
		return res
	}

	surface := in.board.Surface(key)
	surface.Reset()
	view, applied, err := session.Do(ctx, surface, func(ctx context.Context) (*mentor.LogView, error) {
		return in.submitter.SubmitLog(ctx, date, text)
	})
	switch {
	case errors.Is(err, session.ErrBusy) || !applied:
		res.Outcome = Superseded
	case err != nil:
		res.Outcome, res.Err = Rejected, err
	default:
		res.Outcome, res.View = Submitted, view
		in.mu.Lock()
		in.submitted[key] = digest
		in.mu.Unlock()
	}
	return res
}

func (in *Ingester) lastDigest(key string) string {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.submitted[key]
}

func (in *Ingester) report(res Result) {
	fields := []zap.Field{zap.String("path", res.Path), zap.String("outcome", string(res.Outcome))}
	switch res.Outcome {
	case Submitted:
		in.logger.Info("journal file submitted", append(fields, zap.String("date", res.Date.String()))...)
	case Rejected:
		in.logger.Warn("journal file rejected", append(fields, zap.Error(res.Err))...)
	default:
		in.logger.Debug("journal file not submitted", append(fields, zap.Error(res.Err))...)
	}
	if in.onResult != nil {
		in.onResult(res)
	}
}

// States returns the session state of every file seen so far.
func (in *Ingester) States() []session.Snapshot {
	return in.board.Snapshots()
}

// Close releases the per-file surfaces.
func (in *Ingester) Close() {
	in.board.Close()
}
