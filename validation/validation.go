// Package validation holds the declarative schema checks applied to
// incoming payloads before they reach the services. Failures are rendered
// as a list of human-readable messages, matching the wire contract.
package validation

import (
	stderrors "errors"
	"fmt"
	"strings"

	"batepapo/errors"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validate = validator.New()

type ParticipantRequest struct {
	Name       string `json:"name" validate:"required,alpha"`
	LastStatus *int64 `json:"lastStatus"`
}

type MessageRequest struct {
	To   string `json:"to" validate:"required,alpha"`
	Text string `json:"text" validate:"required"`
	Type string `json:"type" validate:"required,oneof=message private_message"`
}

// Participant returns the list of violations for a registration payload,
// empty when the payload is valid.
func Participant(req ParticipantRequest) []string {
	return messagesFor(validate.Struct(req))
}

// Message returns the list of violations for a message payload.
func Message(req MessageRequest) []string {
	return messagesFor(validate.Struct(req))
}

func messagesFor(err error) []string {
	if err == nil {
		return nil
	}
	var fieldErrors validator.ValidationErrors
	if !stderrors.As(err, &fieldErrors) {
		return []string{errors.ErrInvalidPayload.Error()}
	}
	return lo.Map(fieldErrors, func(fe validator.FieldError, _ int) string {
		return messageFor(fe)
	})
}

func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", field)
	case "alpha":
		return fmt.Sprintf("%q must contain only letters", field)
	case "oneof":
		return fmt.Sprintf("%q must be one of [%s]", field, fe.Param())
	default:
		return fmt.Sprintf("%q is invalid", field)
	}
}
