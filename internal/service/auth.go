package service

import (
	"utmbot/internal/domain"
	"utmbot/internal/repository"
)

// Users get this many password attempts before a ban
const maxPasswordAttempts = 3

// PasswordVerdict is the outcome of a password submission
type PasswordVerdict int

const (
	PasswordAccepted PasswordVerdict = iota
	PasswordRejected
	PasswordLockedOut
)

// AuthService handles the password gate and user administration
type AuthService struct {
	ledger repository.LedgerRepository
}

// NewAuthService creates a new auth service
func NewAuthService(ledger repository.LedgerRepository) *AuthService {
	return &AuthService{ledger: ledger}
}

// IsAuthorized checks if user is in the authorized set
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.ledger.IsAuthorized(userID)
}

// IsBanned checks if user is in the banned set
func (s *AuthService) IsBanned(userID int64) (bool, error) {
	return s.ledger.IsBanned(userID)
}

// Authorize adds the user to the authorized set, refreshing the username
func (s *AuthService) Authorize(userID int64, username string) error {
	return s.ledger.Authorize(userID, username)
}

// SubmitPassword compares the input against the current shared password.
// A match authorizes the user and clears their attempt counter. A miss
// increments the counter; the third consecutive miss bans the user with
// reason "invalid_password", which also clears the counter.
// remaining is meaningful only for PasswordRejected.
func (s *AuthService) SubmitPassword(userID int64, username, password string) (verdict PasswordVerdict, remaining int, err error) {
	current, err := s.ledger.GetPassword()
	if err != nil {
		return PasswordRejected, 0, err
	}

	if password == current {
		if err := s.ledger.Authorize(userID, username); err != nil {
			return PasswordRejected, 0, err
		}
		return PasswordAccepted, 0, nil
	}

	attempts, err := s.ledger.IncrementAttempts(userID)
	if err != nil {
		return PasswordRejected, 0, err
	}

	if attempts >= maxPasswordAttempts {
		if err := s.ledger.Ban(userID, username, "invalid_password"); err != nil {
			return PasswordRejected, 0, err
		}
		return PasswordLockedOut, 0, nil
	}

	remaining = maxPasswordAttempts - attempts
	if remaining < 0 {
		remaining = 0
	}
	return PasswordRejected, remaining, nil
}

// SetPassword overwrites the shared bot password
func (s *AuthService) SetPassword(password string) error {
	return s.ledger.SetPassword(password)
}

// DeleteUser removes the user from every ledger table; reports whether the
// user was actually present
func (s *AuthService) DeleteUser(userID int64) (bool, error) {
	return s.ledger.DeleteUser(userID)
}

// ListAuthorized returns all authorized users, newest first
func (s *AuthService) ListAuthorized() ([]domain.AuthorizedUser, error) {
	return s.ledger.ListAuthorized()
}

// ListBanned returns all banned users, newest first
func (s *AuthService) ListBanned() ([]domain.BannedUser, error) {
	return s.ledger.ListBanned()
}
