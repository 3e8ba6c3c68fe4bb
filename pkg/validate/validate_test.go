package validate_test

import (
	"testing"

	"github.com/ananyakrishnan/zaika/pkg/validate"
)

type registerInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=100"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    string  `json:"phone"    validate:"required,digits=10"`
	Address  string  `json:"address"  validate:"required,min=10"`
	Referrer string  `json:"referrer" validate:"nullable,email"`
	Tip      float64 `json:"tip"      validate:"nullable,between=0,500"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret123",
		Phone:    "9876543210",
		Address:  "12 MG Road, Bengaluru",
		Referrer: "", // nullable — allowed to be empty
		Tip:      50,
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Error("expected required errors")
	}
	for _, field := range []string{"name", "email", "password", "phone", "address"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("expected %s to be required", field)
		}
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{Email: "not-an-email"})
	if _, ok := errs["email"]; !ok {
		t.Error("expected email validation error")
	}
	errs = validate.Struct(in{Email: "valid@example.com"})
	if validate.HasErrors(errs) {
		t.Errorf("expected valid email to pass, got: %v", errs)
	}
}

func TestMinRuleOnStrings(t *testing.T) {
	type in struct {
		Address string `json:"address" validate:"required,min=10"`
	}
	if errs := validate.Struct(in{Address: "123 Main"}); !validate.HasErrors(errs) {
		t.Error("expected 8-char address to fail")
	}
	if errs := validate.Struct(in{Address: "123 Main Street"}); validate.HasErrors(errs) {
		t.Errorf("expected 15-char address to pass, got: %v", errs)
	}
}

func TestDigitsRule(t *testing.T) {
	type in struct {
		Phone string `json:"phone" validate:"required,digits=10"`
	}
	for _, phone := range []string{"12345", "123456789012", "98765abc10"} {
		if errs := validate.Struct(in{Phone: phone}); !validate.HasErrors(errs) {
			t.Errorf("expected phone %q to fail", phone)
		}
	}
	if errs := validate.Struct(in{Phone: "9876543210"}); validate.HasErrors(errs) {
		t.Errorf("expected 10-digit phone to pass: %v", errs)
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Status string `json:"status" validate:"required,in=pending,confirmed,preparing,delivered,cancelled"`
	}
	if errs := validate.Struct(in{Status: "shipped"}); !validate.HasErrors(errs) {
		t.Error("expected unknown status to fail")
	}
	if errs := validate.Struct(in{Status: "pending"}); validate.HasErrors(errs) {
		t.Errorf("expected pending to pass: %v", errs)
	}
}

func TestNullableSkipsRules(t *testing.T) {
	type in struct {
		Referrer string `json:"referrer" validate:"nullable,email"`
	}
	if errs := validate.Struct(in{Referrer: ""}); validate.HasErrors(errs) {
		t.Errorf("expected empty nullable to pass: %v", errs)
	}
	if errs := validate.Struct(in{Referrer: "not-an-email"}); !validate.HasErrors(errs) {
		t.Error("expected invalid referrer to fail")
	}
}

func TestBetweenRule(t *testing.T) {
	type in struct {
		Tip float64 `json:"tip" validate:"required,between=0,500"`
	}
	if errs := validate.Struct(in{Tip: 1000}); !validate.HasErrors(errs) {
		t.Error("expected tip > 500 to fail")
	}
	if errs := validate.Struct(in{Tip: 75}); validate.HasErrors(errs) {
		t.Errorf("expected tip 75 to pass: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Quantity int `json:"quantity" validate:"required,gte=1,lte=50"`
	}
	if errs := validate.Struct(in{Quantity: 0}); !validate.HasErrors(errs) {
		t.Error("expected quantity 0 to fail")
	}
	if errs := validate.Struct(in{Quantity: 3}); validate.HasErrors(errs) {
		t.Errorf("expected quantity 3 to pass: %v", errs)
	}
}
