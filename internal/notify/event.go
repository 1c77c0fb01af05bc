package notify

// ChangeEvent describes a single write to a watched order document.
// It is built by an adapter at the platform boundary and never mutated.
type ChangeEvent struct {
	DocumentID    string `json:"documentId"`
	ExistedBefore bool   `json:"existedBefore"`
	ExistedAfter  bool   `json:"existedAfter"`

	// Collection and EventID are only used for log correlation.
	Collection string `json:"collection,omitempty"`
	EventID    string `json:"eventId,omitempty"`
}

// IsNew reports whether the write is treated as an order creation. A write
// whose previous state did not exist is always new, whatever the new state.
func (e ChangeEvent) IsNew() bool {
	return !e.ExistedBefore
}

// Valid reports whether the event could have come from a real write.
func (e ChangeEvent) Valid() bool {
	return e.DocumentID != "" && (e.ExistedBefore || e.ExistedAfter)
}

// Message is a single plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}
