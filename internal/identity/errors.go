package identity

import "errors"

var (
	ErrMissingCode       = errors.New("authorization code is empty")
	ErrExchangeFailed    = errors.New("authorization code exchange failed")
	ErrUserInfoFailed    = errors.New("user info request failed")
	ErrEmailNotVerified  = errors.New("account e-mail is not verified")
	ErrMalformedResponse = errors.New("malformed identity provider response")
)
