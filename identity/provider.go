// Package identity defines the contract between the auth gateway and the
// managed identity provider that owns users, passwords and tokens.
package identity

import "context"

// Provider is the external identity service. Implementations return either a
// result or an error; failures the gateway knows how to report are returned
// as *Error with a specific Condition.
type Provider interface {
	// SignUp registers a user whose username and email attribute are email
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	// Authenticate runs the password authentication flow
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	// ConfirmSignUp submits the confirmation code sent to the user
	ConfirmSignUp(ctx context.Context, email, code string) error
}

// SignUpResult is the provider's answer to a successful registration
type SignUpResult struct {
	UserSub       string
	UserConfirmed bool
}

// AuthResult holds the tokens issued by a successful authentication
type AuthResult struct {
	AccessToken  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int32
	TokenType    string

	// Subject is the sub claim of IDToken, read without verification and
	// only used for log correlation.
	Subject string
}
