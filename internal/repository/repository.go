package repository

import "utmbot/internal/domain"

// LedgerRepository defines authorization, ban, password and history bookkeeping
type LedgerRepository interface {
	IsAuthorized(userID int64) (bool, error)
	IsBanned(userID int64) (bool, error)
	Authorize(userID int64, username string) error
	Ban(userID int64, username, reason string) error

	IncrementAttempts(userID int64) (int, error)
	ResetAttempts(userID int64) error

	GetPassword() (string, error)
	SetPassword(password string) error
	EnsurePassword(initial string) error

	AddHistory(userID int64, baseURL, utmURL, shortURL string) error
	GetHistory(userID int64, limit int) ([]domain.HistoryEntry, error)

	ListAuthorized() ([]domain.AuthorizedUser, error)
	ListBanned() ([]domain.BannedUser, error)
	DeleteUser(userID int64) (bool, error)
}
