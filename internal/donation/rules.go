package donation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/youths4change/webgate/internal/models"
)

// Validation patterns matching the backend's own validators. The messages are
// part of the contract with the form: they render inline next to the field.
var (
	namePattern   = regexp.MustCompile(`^[a-zA-Z\s]{2,50}$`)
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	amountPattern = regexp.MustCompile(`^\d+(\.\d{2})?$`)
)

const (
	// MinimumAmount is the smallest accepted donation, in the primary currency.
	MinimumAmount = 1.00

	// DefaultCurrency is applied when a draft leaves the currency unset.
	DefaultCurrency = "USD"

	// LocalCurrencyCode and localCurrencyRate drive the display-only
	// equivalent amount shown beside the primary one. The converted value is
	// never transmitted and never validated.
	LocalCurrencyCode = "GHS"
	localCurrencyRate = 15.60
)

// FieldError is a field-specific validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidateDonorName checks the donor name rule: 2-50 characters, letters and
// spaces only.
func ValidateDonorName(name string) *FieldError {
	if name == "" {
		return &FieldError{Field: "donor_name", Message: "Donor name is required"}
	}
	if !namePattern.MatchString(name) {
		return &FieldError{Field: "donor_name", Message: "Name must be 2-50 characters, letters and spaces only"}
	}
	return nil
}

// ValidateEmail trims and checks the email against the standard pattern.
func ValidateEmail(email string) *FieldError {
	email = strings.TrimSpace(email)
	if email == "" {
		return &FieldError{Field: "email", Message: "Email is required"}
	}
	if !emailPattern.MatchString(email) {
		return &FieldError{Field: "email", Message: "Invalid email format"}
	}
	return nil
}

// ValidateAmount checks the raw amount string: numeric, at least
// MinimumAmount, and at most two decimal places.
func ValidateAmount(amount string) *FieldError {
	amount = strings.TrimSpace(amount)
	if amount == "" {
		return &FieldError{Field: "amount", Message: "Amount is required"}
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil || value <= 0 {
		return &FieldError{Field: "amount", Message: "Amount is required"}
	}
	if value < MinimumAmount {
		return &FieldError{Field: "amount", Message: fmt.Sprintf("Minimum donation is %.2f", MinimumAmount)}
	}
	if !amountPattern.MatchString(amount) {
		return &FieldError{Field: "amount", Message: "Invalid amount format (use XX.XX)"}
	}
	return nil
}

// ValidateProjectID requires a selected project.
func ValidateProjectID(id int) *FieldError {
	if id == 0 {
		return &FieldError{Field: "project_id", Message: "Please select a project"}
	}
	return nil
}

// ValidateCountry requires a country picked from the selectable list.
func ValidateCountry(country string) *FieldError {
	if country == "" || !models.KnownCountry(country) {
		return &FieldError{Field: "country", Message: "Please select your country"}
	}
	return nil
}

// ValidateTransactionID enforces the final-step requirement.
func ValidateTransactionID(id string) *FieldError {
	if strings.TrimSpace(id) == "" {
		return &FieldError{Field: "transaction_id", Message: "Transaction ID is required"}
	}
	return nil
}

// ValidateField evaluates a single draft field by name, mirroring the
// on-blur checks the form performs. Unknown fields validate clean.
func (d Draft) ValidateField(field string) *FieldError {
	switch field {
	case "donor_name":
		return ValidateDonorName(d.DonorName)
	case "email":
		return ValidateEmail(d.Email)
	case "amount":
		return ValidateAmount(d.Amount)
	case "project_id":
		return ValidateProjectID(d.ProjectID)
	case "country":
		return ValidateCountry(d.Country)
	case "transaction_id":
		return ValidateTransactionID(d.TransactionID)
	default:
		return nil
	}
}

// ValidateDetails runs every rule guarding the Details step, returning all
// failures so the form can surface them together.
func (d Draft) ValidateDetails() []FieldError {
	var errs []FieldError
	for _, field := range []string{"donor_name", "email", "amount", "project_id", "country"} {
		if err := d.ValidateField(field); err != nil {
			errs = append(errs, *err)
		}
	}
	return errs
}

// AmountValue parses the raw amount. Only meaningful after ValidateAmount
// has passed.
func (d Draft) AmountValue() float64 {
	value, _ := strconv.ParseFloat(strings.TrimSpace(d.Amount), 64)
	return value
}

// LocalDisplayAmount renders the fixed-rate equivalent in the secondary local
// currency, for display only.
func (d Draft) LocalDisplayAmount() string {
	return fmt.Sprintf("%s %.2f", LocalCurrencyCode, d.AmountValue()*localCurrencyRate)
}
