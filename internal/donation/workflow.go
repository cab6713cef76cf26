package donation

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// State identifies a step of the donation wizard.
type State string

const (
	StateDetails      State = "details"
	StatePayment      State = "payment"
	StateConfirmation State = "confirmation"
	StateSubmitted    State = "submitted"
)

// ErrInvalidTransition reports an attempt to move the wizard along an edge
// that does not exist from its current state.
var ErrInvalidTransition = errors.New("donation: invalid workflow transition")

// Draft is the in-progress donation collected across the wizard steps. The
// amount stays in its raw string form so the two-decimal rule can be checked
// against what the donor actually typed.
type Draft struct {
	DonorName       string `json:"donor_name"`
	Email           string `json:"email"`
	Amount          string `json:"amount"`
	ProjectID       int    `json:"project_id"`
	Country         string `json:"country"`
	PaymentMethod   string `json:"payment_method"`
	TransactionID   string `json:"transaction_id"`
	PaymentProofRef string `json:"payment_proof_ref"`
	Currency        string `json:"currency"`
}

// DraftUpdate carries field mutations; nil pointers leave fields untouched.
type DraftUpdate struct {
	DonorName       *string `json:"donor_name"`
	Email           *string `json:"email"`
	Amount          *string `json:"amount"`
	ProjectID       *int    `json:"project_id"`
	Country         *string `json:"country"`
	PaymentMethod   *string `json:"payment_method"`
	TransactionID   *string `json:"transaction_id"`
	PaymentProofRef *string `json:"payment_proof_ref"`
}

// Submission is the creation payload handed to the gateway on the final
// transition.
type Submission struct {
	DonorName       string
	Email           string
	Amount          float64
	ProjectID       int
	Country         string
	PaymentMethod   string
	TransactionID   string
	PaymentProofRef string
	Currency        string
}

// Gateway is the workflow's view of the backend: one creation call and the
// invalidation that must follow a successful one.
type Gateway interface {
	CreateDonation(ctx context.Context, sub Submission) (int, error)
	InvalidateDonations()
}

// Workflow is the wizard state machine. It is not safe for concurrent use;
// the owning registry serialises access per wizard.
type Workflow struct {
	state      State
	draft      Draft
	donationID int
}

// NewWorkflow starts a wizard at the Details step with an empty draft.
func NewWorkflow() *Workflow {
	return &Workflow{state: StateDetails}
}

// State returns the current step.
func (w *Workflow) State() State { return w.state }

// Draft returns a copy of the collected data.
func (w *Workflow) Draft() Draft { return w.draft }

// DonationID returns the server-assigned identifier, valid once submitted.
func (w *Workflow) DonationID() int { return w.donationID }

// Apply mutates draft fields. Data entry is allowed in every non-terminal
// state so back navigation never loses input.
func (w *Workflow) Apply(upd DraftUpdate) error {
	if w.state == StateSubmitted {
		return fmt.Errorf("%w: draft is sealed after submission", ErrInvalidTransition)
	}
	if upd.DonorName != nil {
		w.draft.DonorName = *upd.DonorName
	}
	if upd.Email != nil {
		w.draft.Email = *upd.Email
	}
	if upd.Amount != nil {
		w.draft.Amount = *upd.Amount
	}
	if upd.ProjectID != nil {
		w.draft.ProjectID = *upd.ProjectID
	}
	if upd.Country != nil {
		w.draft.Country = *upd.Country
	}
	if upd.PaymentMethod != nil {
		w.draft.PaymentMethod = *upd.PaymentMethod
	}
	if upd.TransactionID != nil {
		w.draft.TransactionID = *upd.TransactionID
	}
	if upd.PaymentProofRef != nil {
		w.draft.PaymentProofRef = *upd.PaymentProofRef
	}
	return nil
}

// AdvanceToPayment guards Details -> Payment. Every Details field must pass
// its rule; any failure blocks the transition and is returned for inline
// display. No network call happens here.
func (w *Workflow) AdvanceToPayment() ([]FieldError, error) {
	if w.state != StateDetails {
		return nil, fmt.Errorf("%w: advance to payment from %s", ErrInvalidTransition, w.state)
	}
	if errs := w.draft.ValidateDetails(); len(errs) > 0 {
		return errs, nil
	}
	w.state = StatePayment
	return nil, nil
}

// ConfirmPayment moves Payment -> Confirmation. The donor's claim of having
// paid is taken at face value; correctness is deferred to submission.
func (w *Workflow) ConfirmPayment() error {
	if w.state != StatePayment {
		return fmt.Errorf("%w: confirm payment from %s", ErrInvalidTransition, w.state)
	}
	w.state = StateConfirmation
	return nil
}

// Back performs the explicit backward navigation: Payment -> Details or
// Confirmation -> Payment. No data is discarded.
func (w *Workflow) Back() error {
	switch w.state {
	case StatePayment:
		w.state = StateDetails
	case StateConfirmation:
		w.state = StatePayment
	default:
		return fmt.Errorf("%w: back from %s", ErrInvalidTransition, w.state)
	}
	return nil
}

// Submit guards Confirmation -> Submitted. It requires a transaction id,
// issues exactly one creation call, and only after observing success
// invalidates the donations resources and seals the wizard. On failure the
// wizard stays in Confirmation with the draft intact so the donor can retry.
func (w *Workflow) Submit(ctx context.Context, gw Gateway) (*FieldError, error) {
	if w.state != StateConfirmation {
		return nil, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, w.state)
	}
	if fieldErr := ValidateTransactionID(w.draft.TransactionID); fieldErr != nil {
		return fieldErr, nil
	}

	currency := strings.TrimSpace(w.draft.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	id, err := gw.CreateDonation(ctx, Submission{
		DonorName:       w.draft.DonorName,
		Email:           strings.TrimSpace(w.draft.Email),
		Amount:          w.draft.AmountValue(),
		ProjectID:       w.draft.ProjectID,
		Country:         w.draft.Country,
		PaymentMethod:   w.draft.PaymentMethod,
		TransactionID:   w.draft.TransactionID,
		PaymentProofRef: w.draft.PaymentProofRef,
		Currency:        currency,
	})
	if err != nil {
		return nil, err
	}

	gw.InvalidateDonations()
	w.donationID = id
	w.state = StateSubmitted
	return nil, nil
}
