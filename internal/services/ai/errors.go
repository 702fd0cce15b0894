package ai

import (
	"context"
	"errors"
	"net/http"

	"github.com/openai/openai-go/v3"
	"github.com/staticWagomU/slack-remind-generator/internal/models"
)

// User-facing messages
const (
	MsgAPIKeyMissing      = "APIキーが設定されていません"
	MsgEmptyInput         = "変換する文章を入力してください"
	MsgEmptyResponse      = "OpenAI APIからのレスポンスが空です"
	MsgAPICallFailed      = "API呼び出しに失敗しました"
	MsgNetworkFailed      = "OpenAI APIに接続できませんでした"
	MsgMaxRetriesExceeded = "最大リトライ回数を超えました"
)

// RetryableStatusCodes are upstream statuses worth another attempt
var RetryableStatusCodes = []int{
	http.StatusTooManyRequests,
	http.StatusInternalServerError,
	http.StatusBadGateway,
	http.StatusServiceUnavailable,
	http.StatusGatewayTimeout,
}

// IsRetryableStatus reports whether status is in RetryableStatusCodes
func IsRetryableStatus(status int) bool {
	for _, s := range RetryableStatusCodes {
		if s == status {
			return true
		}
	}
	return false
}

// ClassifyError converts a provider failure into an AIError.
// HTTP failures become API_ERROR with the status, failures without any
// response become NETWORK_ERROR. AIErrors pass through unchanged.
func ClassifyError(err error) *models.AIError {
	if err == nil {
		return nil
	}

	var aiErr *models.AIError
	if errors.As(err, &aiErr) {
		return aiErr
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = MsgAPICallFailed
		}
		return &models.AIError{
			Code:       models.CodeAPIError,
			Message:    msg,
			StatusCode: apiErr.StatusCode,
			Details:    apiErr.Type,
			Err:        err,
		}
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || isTransportError(err) {
		return &models.AIError{
			Code:    models.CodeNetworkError,
			Message: MsgNetworkFailed,
			Details: err.Error(),
			Err:     err,
		}
	}

	return &models.AIError{
		Code:    models.CodeAPIError,
		Message: err.Error(),
		Err:     err,
	}
}

// IsRetryable reports whether err is a transient failure: API_ERROR with a
// retryable status, or NETWORK_ERROR.
func IsRetryable(err error) bool {
	var aiErr *models.AIError
	if !errors.As(err, &aiErr) {
		return false
	}
	switch aiErr.Code {
	case models.CodeNetworkError:
		return true
	case models.CodeAPIError:
		return IsRetryableStatus(aiErr.StatusCode)
	default:
		return false
	}
}

// IsRateLimitError checks if an error is an upstream 429
func IsRateLimitError(err error) bool {
	var aiErr *models.AIError
	if errors.As(err, &aiErr) {
		return aiErr.Code == models.CodeAPIError && aiErr.StatusCode == http.StatusTooManyRequests
	}
	return false
}
