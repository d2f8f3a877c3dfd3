package authstate

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
)

// ValidateOtpParams requires the one time password code. The controller
// forwards params to collaborators unchecked, these helpers are opt in,
// usually through Action.WithValidator.
func ValidateOtpParams(p OtpParams) error {
	return wrapValidation(validation.Errors{
		"otp": validation.Validate(p.OTP, validation.Required),
	}.Filter(), "invalid one time password request")
}

// ValidateResetPasswordParams requires a well formed email
func ValidateResetPasswordParams(p ResetPasswordParams) error {
	return wrapValidation(validation.Errors{
		"email": validation.Validate(p.Email, validation.Required, is.Email),
	}.Filter(), "invalid password reset request")
}

// ValidateUpdatePasswordParams requires the new password
func ValidateUpdatePasswordParams(p UpdatePasswordParams) error {
	return wrapValidation(validation.Errors{
		"password": validation.Validate(p.Password, validation.Required),
	}.Filter(), "invalid password update request")
}

func wrapValidation(err error, message string) error {
	if err == nil {
		return nil
	}

	fields := map[string]any{}
	if errs, ok := err.(validation.Errors); ok {
		for field, ferr := range errs {
			fields[field] = ferr.Error()
		}
	}

	return goerrors.Wrap(err, goerrors.CategoryValidation, message).
		WithTextCode(TextCodeInvalidParams).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{"fields": fields})
}
