package workers

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/staticWagomU/slack-remind-generator/internal/command"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
	"github.com/staticWagomU/slack-remind-generator/internal/queue"
	"github.com/staticWagomU/slack-remind-generator/internal/results"
	"github.com/staticWagomU/slack-remind-generator/internal/services/ai"
	"go.uber.org/zap"
)

// DefaultRequeueBackoffBase is the delay before the first re-enqueue of a job
// that failed transiently. It doubles on each further retry.
const DefaultRequeueBackoffBase = 5 * time.Second

// MsgJobExpired is stored for jobs that were not processed before NotAfter
const MsgJobExpired = "変換ジョブの有効期限が切れました"

// Generator produces reminder commands from free text
type Generator interface {
	Generate(ctx context.Context, input string) (*models.AIResponse, error)
}

// ConversionWorker processes ai_conversion jobs
type ConversionWorker struct {
	generator Generator
	results   results.Store
	jobQueue  queue.Enqueuer // For re-enqueueing jobs with delays
	backoff   func(retry int) time.Duration
	logger    *zap.Logger
}

// NewConversionWorker creates a worker. jobQueue may be nil, in which case
// transient failures are stored as failed instead of retried.
func NewConversionWorker(generator Generator, store results.Store, jobQueue queue.Enqueuer, logger *zap.Logger) *ConversionWorker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversionWorker{
		generator: generator,
		results:   store,
		jobQueue:  jobQueue,
		backoff:   ai.ExponentialBackoff(DefaultRequeueBackoffBase),
		logger:    logger,
	}
}

// WithBackoff replaces the re-enqueue delay schedule
func (w *ConversionWorker) WithBackoff(backoff func(retry int) time.Duration) *ConversionWorker {
	w.backoff = backoff
	return w
}

// Run processes messages until ctx is cancelled or the delivery channel closes
func (w *ConversionWorker) Run(ctx context.Context, msgChan <-chan *queue.Message, errChan <-chan error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err, ok := <-errChan:
			if !ok {
				errChan = nil
				continue
			}
			w.logger.Error("queue_error", zap.Error(err))
		case msg, ok := <-msgChan:
			if !ok {
				w.logger.Info("message_channel_closed")
				return nil
			}
			if msg.Redelivered {
				w.logger.Info("job_redelivered", zap.Uint64("delivery_tag", msg.DeliveryTag))
			}
			if err := w.ProcessJob(ctx, msg); err != nil {
				fields := []zap.Field{zap.Error(err)}
				if job := msg.GetJob(); job != nil {
					fields = append(fields,
						zap.String("job_id", job.ID.String()),
						zap.String("job_type", string(job.Type)),
					)
				}
				w.logger.Error("job_processing_failed", fields...)
			}
		}
	}
}

// ProcessJob runs one job and settles its message. A returned error means
// the job could not be settled normally; AI failures stored as a failed
// result are not errors.
func (w *ConversionWorker) ProcessJob(ctx context.Context, msg queue.MessageInterface) error {
	job := msg.GetJob()
	if job == nil {
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return errors.New("message without job")
	}

	if job.Type != queue.JobTypeAIConversion {
		if nackErr := msg.Nack(false); nackErr != nil { // Unknown job type, send to DLQ
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("unknown job type: %s", job.Type)
	}

	if job.IsExpired() {
		return w.expire(ctx, msg, job)
	}

	requestID := job.RequestID
	if requestID == "" {
		requestID = job.ID.String()
	}
	ctx = ai.WithRequestID(ctx, requestID)

	start := time.Now()
	resp, err := w.generator.Generate(ctx, job.Input)
	if err != nil {
		return w.handleJobError(ctx, msg, job, err)
	}

	result := results.Completed(job.ID, resp, command.FromAIResponse(resp))
	if err := w.results.Put(ctx, result); err != nil {
		if nackErr := msg.Nack(true); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("store result: %w", err)
	}
	if err := msg.Ack(); err != nil {
		return fmt.Errorf("failed to ack job: %w", err)
	}

	w.logger.Info("conversion_completed",
		zap.String("job_id", job.ID.String()),
		zap.String("request_id", requestID),
		zap.Int("command_count", len(resp.Commands)),
		zap.Float64("confidence", resp.Confidence),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// expire records a job that outlived its deadline as failed and acks it
func (w *ConversionWorker) expire(ctx context.Context, msg queue.MessageInterface, job *queue.Job) error {
	aiErr := models.NewAIError(models.CodeInvalidInput, MsgJobExpired)
	if err := w.results.Put(ctx, results.Failed(job.ID, aiErr)); err != nil {
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("store expired result: %w", err)
	}
	if err := msg.Ack(); err != nil {
		return fmt.Errorf("failed to ack job: %w", err)
	}
	w.logger.Info("job_expired",
		zap.String("job_id", job.ID.String()),
		zap.Int("retry_count", job.RetryCount),
	)
	return nil
}

// handleJobError re-enqueues transient failures while the job has retries
// left, otherwise records the failure for the client.
func (w *ConversionWorker) handleJobError(ctx context.Context, msg queue.MessageInterface, job *queue.Job, err error) error {
	aiErr := ai.ClassifyError(err)

	if ai.IsRetryable(aiErr) && job.CanRetry() && w.jobQueue != nil {
		delay := w.backoff(job.RetryCount)
		next := job.Retry(delay)
		enqueueErr := w.jobQueue.Enqueue(ctx, next)
		if enqueueErr == nil {
			if ackErr := msg.Ack(); ackErr != nil {
				w.logger.Warn("ack_failed", zap.Error(ackErr))
			}
			w.logger.Info("conversion_requeued",
				zap.String("job_id", job.ID.String()),
				zap.Int("retry", next.RetryCount),
				zap.Int("max_retries", job.MaxRetries),
				zap.Duration("delay", delay),
				zap.String("code", string(aiErr.Code)),
				zap.Int("status_code", aiErr.StatusCode),
			)
			return nil
		}
		w.logger.Warn("requeue_failed",
			zap.String("job_id", job.ID.String()),
			zap.Error(enqueueErr),
		)
	}

	if storeErr := w.results.Put(ctx, results.Failed(job.ID, aiErr)); storeErr != nil {
		// Nothing recorded for the client; keep the job around in the DLQ
		if nackErr := msg.Nack(false); nackErr != nil {
			w.logger.Warn("nack_failed", zap.Error(nackErr))
		}
		return fmt.Errorf("store failed result: %w", storeErr)
	}
	if ackErr := msg.Ack(); ackErr != nil {
		return fmt.Errorf("failed to ack job: %w", ackErr)
	}

	w.logger.Warn("conversion_failed",
		zap.String("job_id", job.ID.String()),
		zap.String("code", string(aiErr.Code)),
		zap.Int("status_code", aiErr.StatusCode),
		zap.Int("retry_count", job.RetryCount),
	)
	return nil
}
