package validator

import (
	"testing"
)

type applicationPayload struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
}

func TestValidateStructSuccess(t *testing.T) {
	payload := applicationPayload{
		FullName: "Ama Mensah",
		Email:    "ama@example.com",
		Phone:    "+233201234567",
	}

	if err := ValidateStruct(payload); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	payload := applicationPayload{
		FullName: "",
		Email:    "invalid",
		Phone:    "123",
	}

	err := ValidateStruct(payload)
	if err == nil {
		t.Fatal("expected validation error")
	}

	vErrs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}

	if len(vErrs) != 3 {
		t.Fatalf("expected 3 validation errors, got %d", len(vErrs))
	}

	foundEmail := false
	for _, v := range vErrs {
		if v.Field == "email" {
			foundEmail = true
		}
	}

	if !foundEmail {
		t.Fatal("expected email field to be present in validation errors")
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	errs := ValidationErrors{
		{Field: "phone", Tag: "min", Param: "10"},
		{Field: "email", Tag: "email"},
	}

	msg := errs.Error()
	if msg != "phone must be at least 10; email must be a valid email address" {
		t.Fatalf("unexpected message: %s", msg)
	}
}

func TestValidationErrorMessagePerTag(t *testing.T) {
	cases := []struct {
		err  ValidationError
		want string
	}{
		{ValidationError{Field: "name", Tag: "required"}, "name is required"},
		{ValidationError{Field: "status", Tag: "oneof", Param: "active completed"}, "status must be one of: active completed"},
		{ValidationError{Field: "budget", Tag: "gte", Param: "0"}, "budget must be 0 or more"},
		{ValidationError{Field: "code", Tag: "alphanum"}, "code failed on alphanum"},
	}

	for _, tc := range cases {
		if got := tc.err.Message(); got != tc.want {
			t.Fatalf("Message() = %q, want %q", got, tc.want)
		}
	}
}
