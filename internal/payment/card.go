package payment

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	pkgerrors "github.com/shashidharbabu/aerive-client/pkg/errors"
)

var (
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	digitsPattern = regexp.MustCompile(`^\d+$`)
)

// NewCardInput is the raw card payload for a first-time card payment.
type NewCardInput struct {
	CardNumber     string `json:"cardNumber" validate:"required,cardnumber"`
	CardHolderName string `json:"cardHolderName" validate:"required"`
	ExpiryDate     string `json:"expiryDate" validate:"required,expiry"`
	CVV            string `json:"cvv" validate:"required,cvv"`
	ZipCode        string `json:"zipCode" validate:"required"`
}

// SavedCardInput selects a vaulted card. The CVV is fresh per attempt and the
// zip rides along for the server-side match against the stored card.
type SavedCardInput struct {
	CardID  string `json:"cardId" validate:"required"`
	CVV     string `json:"cvv" validate:"required,cvv"`
	ZipCode string `json:"zipCode" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return validCardNumber(fl.Field().String())
	})
	mustRegister(v, "expiry", func(fl validator.FieldLevel) bool {
		return ValidateExpiry(fl.Field().String(), time.Now()) == nil
	})
	mustRegister(v, "cvv", func(fl validator.FieldLevel) bool {
		return cvvPattern.MatchString(fl.Field().String())
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateNewCard runs the client-side checks for the new-card path. Nothing
// goes over the wire until this passes.
func ValidateNewCard(input NewCardInput) error {
	return formatValidationErrors(validate.Struct(input))
}

// ValidateSavedCard runs the client-side checks for the saved-card path.
func ValidateSavedCard(input SavedCardInput) error {
	return formatValidationErrors(validate.Struct(input))
}

// NormalizeCardNumber strips whitespace so "4111 1111 1111 1111" and the
// compact form share one identity.
func NormalizeCardNumber(value string) string {
	return strings.Join(strings.Fields(value), "")
}

// validCardNumber accepts digit strings of Luhn-eligible length once
// whitespace is stripped. The checksum itself is verified server-side.
func validCardNumber(value string) bool {
	normalized := NormalizeCardNumber(value)
	if !digitsPattern.MatchString(normalized) {
		return false
	}
	return len(normalized) >= 13 && len(normalized) <= 19
}

// ValidateExpiry checks the MM/YY format and rejects months before the
// current one; the current month is still accepted.
func ValidateExpiry(value string, now time.Time) error {
	if !expiryPattern.MatchString(value) {
		return fmt.Errorf("expiry must be MM/YY")
	}
	parsed, err := time.Parse("01/06", value)
	if err != nil {
		return fmt.Errorf("expiry must be MM/YY")
	}
	cardYear, cardMonth := parsed.Year(), parsed.Month()
	nowYear, nowMonth := now.Year(), now.Month()
	if cardYear < nowYear || (cardYear == nowYear && cardMonth < nowMonth) {
		return fmt.Errorf("card is expired")
	}
	return nil
}

func formatValidationErrors(err error) error {
	if err == nil {
		return nil
	}
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := map[string]string{}
		for _, fieldErr := range errs {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}
		return pkgerrors.New(pkgerrors.CodeValidation, "card validation failed").WithDetails(details)
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "card validation failed")
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "cardnumber":
		return "must be 13-19 digits"
	case "expiry":
		return "must be MM/YY and not in the past"
	case "cvv":
		return "must be 3 or 4 digits"
	}
	return "is invalid"
}
