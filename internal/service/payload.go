package service

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment event types understood by the webhook processor
const (
	EventPaymentCompleted = "payment.completed"
	EventPaymentFailed    = "payment.failed"
	EventRefundProcessed  = "refund.processed"

	// eventTypeUnknown is recorded when the body could not be decoded at all
	eventTypeUnknown = "unknown"
)

// Column widths of payment_webhooks.webhook_id and transactions.reference_id
const (
	maxWebhookIDLength     = 255
	maxTransactionIDLength = 255
)

var errNotInteger = errors.New("not an integer")

// PaymentEvent is a decoded webhook delivery. The envelope fields are read
// eagerly; user_id and amount are coerced when the event is applied so that
// bad values are recorded under the delivery's own webhook id.
type PaymentEvent struct {
	fields        map[string]json.RawMessage
	TransactionID *string
	WebhookID     string
	EventType     string
	FailureReason string
	Synthesized   bool
}

// decodePaymentEvent parses the JSON object body of a delivery. A nil event
// means the body is not a JSON object at all. When the body is an object but an
// envelope field is unusable, the event is returned together with the error so
// the failure is recorded, and deduplicated, under the delivery's own id.
func decodePaymentEvent(body []byte) (*PaymentEvent, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if fields == nil {
		return nil, errors.New("payload must be a JSON object")
	}

	event := &PaymentEvent{fields: fields, EventType: EventPaymentCompleted}
	var errs []error

	id, synthesized, err := deliveryID(fields["webhook_id"])
	if err != nil {
		errs = append(errs, fmt.Errorf("webhook_id: %w", err))
	}
	event.WebhookID = id
	event.Synthesized = synthesized

	eventType, err := optionalText(fields["event_type"])
	switch {
	case err != nil:
		event.EventType = eventTypeUnknown
		errs = append(errs, fmt.Errorf("event_type: %w", err))
	case eventType != "":
		event.EventType = eventType
	}

	txnID, err := optionalText(fields["transaction_id"])
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("transaction_id: %w", err))
	case len(txnID) > maxTransactionIDLength:
		errs = append(errs, fmt.Errorf("transaction_id longer than %d characters", maxTransactionIDLength))
	case txnID != "":
		event.TransactionID = &txnID
	}

	if reason, err := optionalText(fields["failure_reason"]); err == nil {
		event.FailureReason = reason
	}

	return event, errors.Join(errs...)
}

// deliveryID returns the id a delivery is deduplicated under. An absent id is
// synthesized. An id that is present but unusable as a key is replaced by a
// digest of its raw JSON, so replays of the same delivery map to the same key.
func deliveryID(raw json.RawMessage) (string, bool, error) {
	id, err := optionalText(raw)
	if err != nil {
		return digestWebhookID(raw), false, err
	}
	if id == "" {
		return synthesizeWebhookID(), true, nil
	}
	if len(id) > maxWebhookIDLength {
		return digestWebhookID(raw), false, fmt.Errorf("longer than %d characters", maxWebhookIDLength)
	}
	return id, false, nil
}

func digestWebhookID(raw json.RawMessage) string {
	sum := sha256.Sum256(bytes.TrimSpace(raw))
	return "whd_" + hex.EncodeToString(sum[:])
}

// UserID coerces user_id. Absent means 0, which never resolves to an account.
func (e *PaymentEvent) UserID() (int64, error) {
	raw, ok := e.fields["user_id"]
	if !ok || isNull(raw) {
		return 0, nil
	}

	text, err := optionalText(raw)
	if err != nil {
		return 0, fmt.Errorf("user_id: %w", err)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user_id %q: %w", text, errNotInteger)
	}
	return id, nil
}

// Amount coerces amount to a non-negative value rounded to two decimals.
// Absent means 0.
func (e *PaymentEvent) Amount() (decimal.Decimal, error) {
	raw, ok := e.fields["amount"]
	if !ok || isNull(raw) {
		return decimal.Zero, nil
	}

	text, err := optionalText(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount: %w", err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("amount %q is not numeric", text)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %s must not be negative", amount)
	}
	return amount.Round(2), nil
}

// optionalText reads a JSON string or number as text. Null and absent yield "".
func optionalText(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || isNull(raw) {
		return "", nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", err
		}
		return n.String(), nil
	default:
		return "", errors.New("must be a string or number")
	}
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func synthesizeWebhookID() string {
	return "wh_" + uuid.NewString()
}
