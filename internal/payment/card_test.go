package payment

import (
	"testing"
	"time"

	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
)

func validNewCard() NewCardInput {
	return NewCardInput{
		CardNumber:     "4111 1111 1111 1111",
		CardHolderName: "Ada Lovelace",
		ExpiryDate:     "12/30",
		CVV:            "123",
		ZipCode:        "94000",
	}
}

func TestValidateNewCardAcceptsSpacedNumber(t *testing.T) {
	t.Parallel()

	if err := ValidateNewCard(validNewCard()); err != nil {
		t.Fatalf("expected valid card, got %v", err)
	}
}

func TestValidateNewCardFieldFailures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*NewCardInput)
		field  string
	}{
		{"short number", func(c *NewCardInput) { c.CardNumber = "4111" }, "cardNumber"},
		{"letters in number", func(c *NewCardInput) { c.CardNumber = "4111x1111x1111x111" }, "cardNumber"},
		{"missing holder", func(c *NewCardInput) { c.CardHolderName = "" }, "cardHolderName"},
		{"bad expiry format", func(c *NewCardInput) { c.ExpiryDate = "2030-12" }, "expiryDate"},
		{"month thirteen", func(c *NewCardInput) { c.ExpiryDate = "13/30" }, "expiryDate"},
		{"short cvv", func(c *NewCardInput) { c.CVV = "12" }, "cvv"},
		{"missing zip", func(c *NewCardInput) { c.ZipCode = "" }, "zipCode"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			input := validNewCard()
			tc.mutate(&input)

			err := ValidateNewCard(input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
			details, ok := typed.Details().(map[string]string)
			if !ok {
				t.Fatalf("expected field details, got %T", typed.Details())
			}
			if _, ok := details[tc.field]; !ok {
				t.Fatalf("expected detail for %q, got %v", tc.field, details)
			}
		})
	}
}

func TestValidateSavedCard(t *testing.T) {
	t.Parallel()

	if err := ValidateSavedCard(SavedCardInput{CardID: "card-1", CVV: "4321", ZipCode: "94000"}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	err := ValidateSavedCard(SavedCardInput{CVV: "4321", ZipCode: "94000"})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateExpiryMonthBoundary(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)

	if err := ValidateExpiry("06/24", now); err != nil {
		t.Fatalf("card expiring this month must be accepted, got %v", err)
	}
	if err := ValidateExpiry("05/24", now); err == nil {
		t.Fatal("card expired last month must be rejected")
	}
	if err := ValidateExpiry("01/25", now); err != nil {
		t.Fatalf("future card rejected: %v", err)
	}
	if err := ValidateExpiry("6/24", now); err == nil {
		t.Fatal("single-digit month must be rejected")
	}
}

func TestNormalizeCardNumber(t *testing.T) {
	t.Parallel()

	if got := NormalizeCardNumber("4111 1111 1111 1111"); got != "4111111111111111" {
		t.Fatalf("got %q", got)
	}
	if got := NormalizeCardNumber("  4111\t1111 "); got != "41111111" {
		t.Fatalf("got %q", got)
	}
}
