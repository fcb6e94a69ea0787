package esclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// BulkConcurrency computes the degree of parallelism for one bulk session:
// the shard count caps useful server-side parallelism, the CPU count caps
// useful local encoding parallelism, and the configured cap is the
// operator's ceiling. Degenerate configurations still get one worker.
func BulkConcurrency(shards, cpus, configuredCap int) int {
	n := min(shards, min(cpus, configuredCap))
	if n < 1 {
		return 1
	}
	return n
}

// bulkQueueDepth bounds how far submitters can run ahead of the workers.
const bulkQueueDepth = 10_000

type bulkOp struct {
	action string // "index", "create", "update" or "delete"
	id     string
	doc    json.RawMessage // nil for delete
}

// BulkSession drives concurrent bulk indexing. Obtain one from StartBulk,
// submit operations from any goroutine, then call Finish exactly once.
// The concurrency plan is computed when the session starts and is only read
// afterwards.
type BulkSession struct {
	id      string
	c       *Client
	ctx     context.Context
	log     *slog.Logger
	queue   chan bulkOp
	workers sync.WaitGroup

	submitted atomic.Int64

	mu       sync.Mutex
	firstErr error
	finished bool
}

// BulkOption configures a bulk session.
type BulkOption func(*BulkSession)

// WithLogger attaches a logger for per-batch diagnostics. Sessions are
// silent by default.
func WithLogger(log *slog.Logger) BulkOption {
	return func(s *BulkSession) {
		if log != nil {
			s.log = log
		}
	}
}

// StartBulk opens a bulk session sized by BulkConcurrency from the target's
// shard count, the host CPU count and the configured cap. Workers batch
// operations into NDJSON payloads up to the target's batch size before
// submitting them.
func (c *Client) StartBulk(ctx context.Context, opts ...BulkOption) *BulkSession {
	s := &BulkSession{
		id:    uuid.NewString(),
		c:     c,
		ctx:   ctx,
		log:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		queue: make(chan bulkOp, bulkQueueDepth),
	}
	for _, opt := range opts {
		opt(s)
	}

	concurrency := BulkConcurrency(c.target.Shards, runtime.NumCPU(), c.target.BulkConcurrency)
	s.log.InfoContext(ctx, "bulk session started",
		slog.String("session", s.id),
		slog.Int("concurrency", concurrency))

	s.workers.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go s.worker()
	}
	return s
}

// Index queues a full-document index operation.
func (s *BulkSession) Index(id string, doc any) error {
	return s.submitDoc("index", id, doc)
}

// Create queues a create operation that fails remotely if the id exists.
func (s *BulkSession) Create(id string, doc any) error {
	return s.submitDoc("create", id, doc)
}

// Update queues a partial-document update.
func (s *BulkSession) Update(id string, partial any) error {
	return s.submitDoc("update", id, map[string]any{"doc": partial})
}

// Delete queues a delete operation.
func (s *BulkSession) Delete(id string) error {
	return s.submit(bulkOp{action: "delete", id: id})
}

func (s *BulkSession) submitDoc(action, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode bulk document %q: %w", id, err)
	}
	return s.submit(bulkOp{action: action, id: id, doc: data})
}

func (s *BulkSession) submit(op bulkOp) error {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return ErrBulkFinished
	}
	// Fail fast once any worker has reported an error.
	if s.firstErr != nil {
		err := s.firstErr
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	select {
	case s.queue <- op:
		return nil
	case <-s.ctx.Done():
		return &ResponseError{Message: s.ctx.Err().Error()}
	}
}

// Finish flushes outstanding batches, waits for all workers and returns the
// number of successfully submitted operations together with the first error
// any worker encountered.
func (s *BulkSession) Finish() (int64, error) {
	s.mu.Lock()
	if s.finished {
		s.mu.Unlock()
		return s.submitted.Load(), ErrBulkFinished
	}
	s.finished = true
	s.mu.Unlock()

	close(s.queue)
	s.workers.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.log.InfoContext(s.ctx, "bulk session finished",
		slog.String("session", s.id),
		slog.Int64("submitted", s.submitted.Load()))
	return s.submitted.Load(), s.firstErr
}

func (s *BulkSession) setErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.firstErr == nil {
		s.firstErr = err
	}
}

// worker drains the queue, encoding operations into one NDJSON buffer and
// flushing whenever the buffer crosses the target's batch size.
func (s *BulkSession) worker() {
	defer s.workers.Done()

	var buf bytes.Buffer
	count := 0
	for op := range s.queue {
		action, err := json.Marshal(map[string]any{
			op.action: map[string]any{"_id": op.id},
		})
		if err != nil {
			s.setErr(err)
			continue
		}
		buf.Write(action)
		buf.WriteByte('\n')
		if op.doc != nil {
			buf.Write(op.doc)
			buf.WriteByte('\n')
		}
		count++

		if buf.Len() >= s.c.target.BatchSize {
			s.flush(&buf, &count)
		}
	}
	if count > 0 {
		s.flush(&buf, &count)
	}
}

// bulkResponse is the part of the _bulk response needed to detect per-item
// failures.
type bulkResponse struct {
	Errors bool `json:"errors"`
	Items  []map[string]struct {
		ID     string `json:"_id"`
		Status int    `json:"status"`
		Error  *struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		} `json:"error"`
	} `json:"items"`
}

func (s *BulkSession) flush(buf *bytes.Buffer, count *int) {
	defer func() {
		buf.Reset()
		*count = 0
	}()

	url := s.c.BaseURL() + "/_bulk?filter_path=errors,items.*._id,items.*.status,items.*.error"
	resp, err := s.c.do(s.ctx, http.MethodPost, url, "application/x-ndjson",
		bytes.NewReader(buf.Bytes()))
	if err != nil {
		s.log.ErrorContext(s.ctx, "bulk batch failed",
			slog.String("session", s.id), slog.Any("error", err))
		s.setErr(err)
		return
	}
	defer resp.Body.Close()

	result, err := DecodeJSON[bulkResponse](resp.Body)
	if err != nil {
		s.setErr(fmt.Errorf("%w: %w", ErrDecode, err))
		return
	}
	if result.Errors {
		for _, item := range result.Items {
			for _, detail := range item {
				if detail.Error != nil {
					s.setErr(&ResponseError{
						Status: detail.Status,
						Message: fmt.Sprintf("bulk item %q: %s: %s",
							detail.ID, detail.Error.Type, detail.Error.Reason),
					})
					return
				}
			}
		}
	}

	s.submitted.Add(int64(*count))
	s.log.DebugContext(s.ctx, "bulk batch submitted",
		slog.String("session", s.id),
		slog.Int("operations", *count),
		slog.Int("bytes", buf.Len()))
}
