package queue

import (
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// InquiryMessage is the wire form of one queued inquiry. Inquiries are keyed
// by their marketplace ID; the attempt counter travels with the message so
// retries survive consumer restarts.
type InquiryMessage struct {
	ID        string
	InquiryID string
	Attempt   int
	TraceID   string
	LastError string
	Raw       redis.XMessage
}

func ParseMessage(msg redis.XMessage) (InquiryMessage, error) {
	inquiryID, err := parseString(msg.Values, "inquiry_id")
	if err != nil {
		return InquiryMessage{}, err
	}
	if inquiryID == "" {
		return InquiryMessage{}, fmt.Errorf("empty inquiry_id")
	}

	attempt, err := parseOptionalInt(msg.Values, "attempt")
	if err != nil {
		return InquiryMessage{}, err
	}
	if attempt == 0 {
		attempt = 1
	}

	traceID, err := parseOptionalString(msg.Values, "trace_id")
	if err != nil {
		return InquiryMessage{}, err
	}
	lastError, err := parseOptionalString(msg.Values, "last_error")
	if err != nil {
		return InquiryMessage{}, err
	}

	return InquiryMessage{
		ID:        msg.ID,
		InquiryID: inquiryID,
		Attempt:   attempt,
		TraceID:   traceID,
		LastError: lastError,
		Raw:       msg,
	}, nil
}

func messageValues(msg InquiryMessage, attempt int) map[string]any {
	values := map[string]any{
		"inquiry_id": msg.InquiryID,
		"attempt":    attempt,
	}
	if msg.TraceID != "" {
		values["trace_id"] = msg.TraceID
	}
	return values
}

func parseString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", fmt.Errorf("missing %s", key)
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalString(values map[string]any, key string) (string, error) {
	raw, ok := values[key]
	if !ok {
		return "", nil
	}
	return fmt.Sprint(raw), nil
}

func parseOptionalInt(values map[string]any, key string) (int, error) {
	raw, ok := values[key]
	if !ok {
		return 0, nil
	}
	str := fmt.Sprint(raw)
	num, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", key, err)
	}
	return num, nil
}
