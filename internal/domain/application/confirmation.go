package application

import "time"

// ConfirmationState is a tagged variant instead of a pile of nullable flags,
// so states like confirmed-and-auto-rejected cannot be represented.
type ConfirmationState string

const (
	ConfirmationPending      ConfirmationState = "pending"
	ConfirmationConfirmed    ConfirmationState = "confirmed"
	ConfirmationDeclined     ConfirmationState = "declined"
	ConfirmationAutoRejected ConfirmationState = "auto_rejected"
)

// Confirmation tracks one candidate acknowledgment request (interview slot,
// offer acceptance). Overdue is derived from the clock, never stored.
type Confirmation struct {
	Type        string            `json:"type"`
	RequestedAt time.Time         `json:"requested_at"`
	Deadline    time.Time         `json:"deadline"`
	State       ConfirmationState `json:"state"`
	ResolvedAt  *time.Time        `json:"resolved_at,omitempty"`
}

func NewConfirmation(confirmationType string, now time.Time, deadlineDays int) *Confirmation {
	return &Confirmation{
		Type:        confirmationType,
		RequestedAt: now,
		Deadline:    now.AddDate(0, 0, deadlineDays),
		State:       ConfirmationPending,
	}
}

func (c *Confirmation) Resolved() bool {
	return c.State != ConfirmationPending
}

// Overdue is strict: a response exactly at the deadline is still on time.
func (c *Confirmation) Overdue(now time.Time) bool {
	return c.State == ConfirmationPending && now.After(c.Deadline)
}

// Respond resolves a pending confirmation. Responding to an already
// resolved confirmation is an idempotent no-op and reports false.
func (c *Confirmation) Respond(accepted bool, now time.Time) bool {
	if c.Resolved() {
		return false
	}
	if accepted {
		c.State = ConfirmationConfirmed
	} else {
		c.State = ConfirmationDeclined
	}
	resolved := now
	c.ResolvedAt = &resolved
	return true
}

// AutoReject moves a pending confirmation to its terminal auto-rejected
// state. Only the sweeper path calls this, and only once per confirmation.
func (c *Confirmation) AutoReject(now time.Time) bool {
	if c.Resolved() {
		return false
	}
	c.State = ConfirmationAutoRejected
	resolved := now
	c.ResolvedAt = &resolved
	return true
}

// View is the flat wire shape the dashboard consumes, with the derived
// booleans computed from the variant and the supplied clock.
type View struct {
	Type          string     `json:"type"`
	RequestedAt   time.Time  `json:"requested_at"`
	Deadline      time.Time  `json:"deadline"`
	Confirmed     *bool      `json:"confirmed"`
	ConfirmedDate *time.Time `json:"confirmed_date,omitempty"`
	Overdue       bool       `json:"overdue"`
	AutoRejected  bool       `json:"auto_rejected"`
}

func (c *Confirmation) View(now time.Time) View {
	v := View{
		Type:        c.Type,
		RequestedAt: c.RequestedAt,
		Deadline:    c.Deadline,
	}
	switch c.State {
	case ConfirmationConfirmed:
		confirmed := true
		v.Confirmed = &confirmed
		v.ConfirmedDate = c.ResolvedAt
	case ConfirmationDeclined:
		confirmed := false
		v.Confirmed = &confirmed
		v.ConfirmedDate = c.ResolvedAt
	case ConfirmationAutoRejected:
		confirmed := false
		v.Confirmed = &confirmed
		v.ConfirmedDate = c.ResolvedAt
		v.Overdue = true
		v.AutoRejected = true
	default:
		v.Overdue = c.Overdue(now)
	}
	return v
}
