package authstate_test

import (
	"context"
	"errors"
	"testing"

	authstate "github.com/goliatone/go-auth-state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoginActionTracksResult(t *testing.T) {
	backend := newFakeBackend()
	c := authstate.New(backend.callbacks())

	action := authstate.NewLoginAction(c, authstate.ActionLogIn)
	assert.False(t, action.State().Loading)

	user, err := action.Run(context.Background(), authstate.AuthParams{Email: "a@b.com"}, authstate.AuthOptions{})
	require.NoError(t, err)
	require.NotNil(t, user)

	state := action.State()
	assert.False(t, state.Loading)
	assert.NoError(t, state.Err)
	assert.Equal(t, "u1", state.Data.GetID())
	assert.True(t, c.State().IsAuthenticated)
}

func TestLoginActionSignUpKind(t *testing.T) {
	backend := &MockBackend{}
	params := authstate.AuthParams{Email: "a@b.com"}
	backend.On("Signup", mock.Anything, params, authstate.AuthOptions{}).Return(nil, nil).Once()
	backend.On("GetToken", mock.Anything).Return(authstate.Token(""), nil).Once()

	c := authstate.New(backend.Callbacks())

	_, err := authstate.NewLoginAction(c, authstate.ActionSignUp).Run(context.Background(), params, authstate.AuthOptions{})
	require.NoError(t, err)
	backend.AssertExpectations(t)
	backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoginActionUnknownKindFallsBackToLogIn(t *testing.T) {
	backend := &MockBackend{}
	params := authstate.AuthParams{Email: "a@b.com"}
	backend.On("Login", mock.Anything, params, authstate.AuthOptions{}).Return(nil, nil).Once()
	backend.On("GetToken", mock.Anything).Return(authstate.Token(""), nil).Once()

	c := authstate.New(backend.Callbacks())

	_, err := authstate.NewLoginAction(c, "magiclink").Run(context.Background(), params, authstate.AuthOptions{})
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestActionRecordsErrorsAndReset(t *testing.T) {
	otpErr := errors.New("invalid code")
	backend := &MockBackend{}
	params := authstate.OtpParams{AuthParams: authstate.AuthParams{OTP: "000000"}}
	backend.On("VerifyOtp", mock.Anything, params, authstate.AuthOptions{}).Return(false, otpErr).Once()

	action := authstate.NewOtpAction(authstate.New(backend.Callbacks()))

	ok, err := action.Run(context.Background(), params, authstate.AuthOptions{})
	require.ErrorIs(t, err, otpErr)
	assert.False(t, ok)
	assert.ErrorIs(t, action.State().Err, otpErr)

	action.Reset()
	assert.Equal(t, authstate.ActionState[bool]{}, action.State())
}

func TestActionLoadingWhileRunning(t *testing.T) {
	var action *authstate.Action[string, int]
	action = authstate.NewAction(func(ctx context.Context, p string, _ authstate.AuthOptions) (int, error) {
		assert.True(t, action.State().Loading)
		return len(p), nil
	})

	n, err := action.Run(context.Background(), "abc", authstate.AuthOptions{})
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.False(t, action.State().Loading)
	assert.Equal(t, 3, action.State().Data)
}

func TestPasswordActions(t *testing.T) {
	backend := &MockBackend{}
	reset := authstate.ResetPasswordParams{Email: "a@b.com"}
	update := authstate.UpdatePasswordParams{Password: "n3w-secret"}
	backend.On("ResetPassword", mock.Anything, reset, authstate.AuthOptions{}).Return(true, nil).Once()
	backend.On("UpdatePassword", mock.Anything, update, authstate.AuthOptions{}).Return(true, nil).Once()

	c := authstate.New(backend.Callbacks())

	_, err := authstate.NewResetPasswordAction(c).Run(context.Background(), reset, authstate.AuthOptions{})
	require.NoError(t, err)

	_, err = authstate.NewUpdatePasswordAction(c).Run(context.Background(), update, authstate.AuthOptions{})
	require.NoError(t, err)
	backend.AssertExpectations(t)
}

func TestActionValidatorBlocksInvalidParams(t *testing.T) {
	backend := &MockBackend{}
	c := authstate.New(backend.Callbacks())

	action := authstate.NewResetPasswordAction(c).WithValidator(authstate.ValidateResetPasswordParams)

	_, err := action.Run(context.Background(), authstate.ResetPasswordParams{}, authstate.AuthOptions{})
	require.Error(t, err)
	assert.True(t, authstate.IsValidationError(err))
	assert.True(t, authstate.IsValidationError(action.State().Err))
	assert.False(t, action.State().Loading)
	backend.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestActionValidatorPassesValidParams(t *testing.T) {
	backend := &MockBackend{}
	params := authstate.OtpParams{AuthParams: authstate.AuthParams{OTP: "123456"}}
	backend.On("VerifyOtp", mock.Anything, params, authstate.AuthOptions{}).Return(true, nil).Once()

	action := authstate.NewOtpAction(authstate.New(backend.Callbacks())).WithValidator(authstate.ValidateOtpParams)

	ok, err := action.Run(context.Background(), params, authstate.AuthOptions{})
	require.NoError(t, err)
	assert.True(t, ok)
	backend.AssertExpectations(t)
}
