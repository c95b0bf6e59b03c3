package domain

import "time"

// AuthorizedUser is a staff member allowed to use the bot
type AuthorizedUser struct {
	UserID       int64
	Username     string
	AuthorizedAt time.Time
}

// BannedUser is a user locked out of the bot
type BannedUser struct {
	UserID   int64
	Username string
	BannedAt time.Time
	Reason   string
}

// HistoryEntry is one generated link record (append-only)
type HistoryEntry struct {
	UserID    int64
	BaseURL   string
	UTMURL    string
	ShortURL  string
	CreatedAt time.Time
}
