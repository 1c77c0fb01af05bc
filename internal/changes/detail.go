package changes

import (
	"encoding/json"
	"fmt"

	"order-notifier/internal/notify"
)

// MarshalDetail encodes ev as an EventBridge detail document.
func MarshalDetail(ev notify.ChangeEvent) (string, error) {
	b, err := json.Marshal(ev)
	if err != nil {
		return "", fmt.Errorf("failed to marshal change event: %w", err)
	}
	return string(b), nil
}

// DecodeDetail is the inverse of MarshalDetail. It rejects events that
// could not come from a real write.
func DecodeDetail(detail []byte) (notify.ChangeEvent, error) {
	var ev notify.ChangeEvent
	if err := json.Unmarshal(detail, &ev); err != nil {
		return notify.ChangeEvent{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if !ev.Valid() {
		return notify.ChangeEvent{}, fmt.Errorf("%w: document %q existedBefore=%t existedAfter=%t",
			ErrInvalidEvent, ev.DocumentID, ev.ExistedBefore, ev.ExistedAfter)
	}
	return ev, nil
}
