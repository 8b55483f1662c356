package auth

import "errors"

var (
	// ErrDuplicateUsername means the username is already taken.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidRole means the requested role is outside the allowed set for
	// the operation.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUserNotFound means no account matches the username and role jointly.
	// A correct username with the wrong role is indistinguishable from a
	// missing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredential means the account exists but the password does not
	// match.
	ErrInvalidCredential = errors.New("incorrect password")

	// ErrNoLinkedRecord means a patient logged in before any clinical record
	// was linked to the account.
	ErrNoLinkedRecord = errors.New("no patient record linked yet")

	// ErrUnauthenticated means the request carried no valid session token.
	ErrUnauthenticated = errors.New("not authenticated")
)
