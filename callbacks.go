package authstate

import "context"

// Callbacks is the collaborator set that performs the real authentication
// work. Every field is optional, missing ones resolve to zero values.
type Callbacks struct {
	// OnLoadUser loads user data after authentication
	OnLoadUser func(ctx context.Context) (User, error)
	// OnSignup is the signup method
	OnSignup func(ctx context.Context, params AuthParams, opts AuthOptions) (User, error)
	// OnLogin is the login method
	OnLogin func(ctx context.Context, params AuthParams, opts AuthOptions) (User, error)
	// OnResetPassword requests a password reset
	OnResetPassword func(ctx context.Context, params ResetPasswordParams, opts AuthOptions) (any, error)
	// OnUpdatePassword updates the password
	OnUpdatePassword func(ctx context.Context, params UpdatePasswordParams, opts AuthOptions) (any, error)
	// OnVerifyOtp verifies a one time password (2fa)
	OnVerifyOtp func(ctx context.Context, params OtpParams, opts AuthOptions) (bool, error)
	// OnLogout is the logout method
	OnLogout func(ctx context.Context, opts AuthOptions) error
	// OnAuthStateChange should call fn whenever the authentication state changes
	OnAuthStateChange func(fn AuthStateChangeFunc) (unsubscribe func())
	// OnGetToken returns the session token
	OnGetToken func(ctx context.Context) (Token, error)
}

// collaborators is Callbacks with every hole filled in
type collaborators struct {
	loadUser       func(ctx context.Context) (User, error)
	signup         func(ctx context.Context, params AuthParams, opts AuthOptions) (User, error)
	login          func(ctx context.Context, params AuthParams, opts AuthOptions) (User, error)
	resetPassword  func(ctx context.Context, params ResetPasswordParams, opts AuthOptions) (any, error)
	updatePassword func(ctx context.Context, params UpdatePasswordParams, opts AuthOptions) (any, error)
	verifyOtp      func(ctx context.Context, params OtpParams, opts AuthOptions) (bool, error)
	logout         func(ctx context.Context, opts AuthOptions) error
	stateChange    func(fn AuthStateChangeFunc) func()
	getToken       func(ctx context.Context) (Token, error)

	hasStateChange bool
	hasGetToken    bool
}

func normalizeCallbacks(cb Callbacks) collaborators {
	c := collaborators{
		loadUser:       cb.OnLoadUser,
		signup:         cb.OnSignup,
		login:          cb.OnLogin,
		resetPassword:  cb.OnResetPassword,
		updatePassword: cb.OnUpdatePassword,
		verifyOtp:      cb.OnVerifyOtp,
		logout:         cb.OnLogout,
		stateChange:    cb.OnAuthStateChange,
		getToken:       cb.OnGetToken,
		hasStateChange: cb.OnAuthStateChange != nil,
		hasGetToken:    cb.OnGetToken != nil,
	}

	if c.loadUser == nil {
		c.loadUser = func(context.Context) (User, error) { return nil, nil }
	}
	if c.signup == nil {
		c.signup = func(context.Context, AuthParams, AuthOptions) (User, error) { return nil, nil }
	}
	if c.login == nil {
		c.login = func(context.Context, AuthParams, AuthOptions) (User, error) { return nil, nil }
	}
	if c.resetPassword == nil {
		c.resetPassword = func(context.Context, ResetPasswordParams, AuthOptions) (any, error) { return nil, nil }
	}
	if c.updatePassword == nil {
		c.updatePassword = func(context.Context, UpdatePasswordParams, AuthOptions) (any, error) { return nil, nil }
	}
	if c.verifyOtp == nil {
		c.verifyOtp = func(context.Context, OtpParams, AuthOptions) (bool, error) { return false, nil }
	}
	if c.logout == nil {
		c.logout = func(context.Context, AuthOptions) error { return nil }
	}
	if c.stateChange == nil {
		c.stateChange = func(AuthStateChangeFunc) func() { return func() {} }
	}
	if c.getToken == nil {
		c.getToken = func(context.Context) (Token, error) { return "", nil }
	}

	return c
}
