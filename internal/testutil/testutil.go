package testutil

import (
	"time"

	"utmbot/internal/domain"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestAuthorizedUser creates a test authorized user
func NewTestAuthorizedUser(userID int64, username string) domain.AuthorizedUser {
	return domain.AuthorizedUser{
		UserID:       userID,
		Username:     username,
		AuthorizedAt: time.Now(),
	}
}

// NewTestBannedUser creates a test banned user
func NewTestBannedUser(userID int64, username, reason string) domain.BannedUser {
	return domain.BannedUser{
		UserID:   userID,
		Username: username,
		BannedAt: time.Now(),
		Reason:   reason,
	}
}
