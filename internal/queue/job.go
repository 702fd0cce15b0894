package queue

import (
	"time"

	"github.com/google/uuid"
)

// JobType represents the type of job
type JobType string

const (
	// JobTypeAIConversion turns one natural-language request into /remind commands
	JobTypeAIConversion JobType = "ai_conversion"

	// DefaultMaxRetries bounds how often a job is re-enqueued after a retryable failure
	DefaultMaxRetries = 3
)

// Job represents a job in the queue
type Job struct {
	ID         uuid.UUID  `json:"id"`
	Type       JobType    `json:"type"`
	Input      string     `json:"input"`
	RequestID  string     `json:"request_id,omitempty"`
	NotBefore  *time.Time `json:"not_before,omitempty"` // Earliest time to process job (nil = immediate)
	NotAfter   *time.Time `json:"not_after,omitempty"`  // Latest time to process job (nil = no expiration)
	CreatedAt  time.Time  `json:"created_at"`
	RetryCount int        `json:"retry_count"`
	MaxRetries int        `json:"max_retries"`
}

// NewConversionJob creates an ai_conversion job. A positive ttl sets NotAfter
// so a job nobody is polling for any more is dropped unprocessed.
func NewConversionJob(input string, ttl time.Duration) *Job {
	now := time.Now()
	job := &Job{
		ID:         uuid.New(),
		Type:       JobTypeAIConversion,
		Input:      input,
		CreatedAt:  now,
		MaxRetries: DefaultMaxRetries,
	}
	if ttl > 0 {
		notAfter := now.Add(ttl)
		job.NotAfter = &notAfter
	}
	return job
}

// ShouldProcess checks if the job should be processed now
func (j *Job) ShouldProcess() bool {
	now := time.Now()
	if j.NotBefore != nil && now.Before(*j.NotBefore) {
		return false
	}
	if j.NotAfter != nil && now.After(*j.NotAfter) {
		return false
	}
	return true
}

// IsExpired checks if the job has expired
func (j *Job) IsExpired() bool {
	if j.NotAfter == nil {
		return false
	}
	return time.Now().After(*j.NotAfter)
}

// CanRetry checks if the job can be retried
func (j *Job) CanRetry() bool {
	return j.RetryCount < j.MaxRetries
}

// IncrementRetry increments the retry count
func (j *Job) IncrementRetry() {
	j.RetryCount++
}

// Retry returns a copy of the job scheduled no earlier than now+delay,
// with the retry count bumped.
func (j *Job) Retry(delay time.Duration) *Job {
	next := *j
	next.IncrementRetry()
	if delay > 0 {
		notBefore := time.Now().Add(delay)
		next.NotBefore = &notBefore
	} else {
		next.NotBefore = nil
	}
	return &next
}
