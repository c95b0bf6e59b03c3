package postgres

import (
	"database/sql"

	"utmbot/internal/domain"
)

// LedgerRepo implements repository.LedgerRepository
type LedgerRepo struct {
	db *sql.DB
}

// NewLedgerRepo creates a new ledger repository
func NewLedgerRepo(db *sql.DB) *LedgerRepo {
	return &LedgerRepo{db: db}
}

// IsAuthorized checks if user is in the authorized set
func (r *LedgerRepo) IsAuthorized(userID int64) (bool, error) {
	var one int
	query := `SELECT 1 FROM users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// IsBanned checks if user is in the banned set
func (r *LedgerRepo) IsBanned(userID int64) (bool, error) {
	var one int
	query := `SELECT 1 FROM banned_users WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Authorize adds the user to the authorized set (refreshing the username on
// conflict) and clears their attempt counter
func (r *LedgerRepo) Authorize(userID int64, username string) error {
	query := `
		INSERT INTO users (user_id, username, authorized_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id)
		DO UPDATE SET username = EXCLUDED.username
	`
	if _, err := r.db.Exec(query, userID, username); err != nil {
		return err
	}
	return r.ResetAttempts(userID)
}

// Ban adds the user to the banned set and clears their attempt counter
func (r *LedgerRepo) Ban(userID int64, username, reason string) error {
	query := `
		INSERT INTO banned_users (user_id, username, banned_at, reason)
		VALUES ($1, $2, NOW(), $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(query, userID, username, reason); err != nil {
		return err
	}
	return r.ResetAttempts(userID)
}

// IncrementAttempts bumps the failed-password counter and returns its value
func (r *LedgerRepo) IncrementAttempts(userID int64) (int, error) {
	var attempts int
	query := `
		INSERT INTO auth_attempts (user_id, attempts)
		VALUES ($1, 1)
		ON CONFLICT (user_id)
		DO UPDATE SET attempts = auth_attempts.attempts + 1
		RETURNING attempts
	`
	if err := r.db.QueryRow(query, userID).Scan(&attempts); err != nil {
		return 0, err
	}
	return attempts, nil
}

// ResetAttempts deletes the failed-password counter
func (r *LedgerRepo) ResetAttempts(userID int64) error {
	query := `DELETE FROM auth_attempts WHERE user_id = $1`
	_, err := r.db.Exec(query, userID)
	return err
}

// GetPassword returns the current shared bot password
func (r *LedgerRepo) GetPassword() (string, error) {
	var password string
	query := `SELECT value FROM app_settings WHERE key = 'bot_password'`
	err := r.db.QueryRow(query).Scan(&password)
	if err != nil {
		return "", err
	}
	return password, nil
}

// SetPassword overwrites the shared bot password
func (r *LedgerRepo) SetPassword(password string) error {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ('bot_password', $1)
		ON CONFLICT (key)
		DO UPDATE SET value = EXCLUDED.value
	`
	_, err := r.db.Exec(query, password)
	return err
}

// EnsurePassword seeds the password row if it does not exist yet
func (r *LedgerRepo) EnsurePassword(initial string) error {
	query := `
		INSERT INTO app_settings (key, value)
		VALUES ('bot_password', $1)
		ON CONFLICT (key) DO NOTHING
	`
	_, err := r.db.Exec(query, initial)
	return err
}

// AddHistory appends one link-generation record
func (r *LedgerRepo) AddHistory(userID int64, baseURL, utmURL, shortURL string) error {
	query := `
		INSERT INTO history (user_id, base_url, utm_url, short_url, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	_, err := r.db.Exec(query, userID, baseURL, utmURL, shortURL)
	return err
}

// GetHistory returns the user's most recent records, newest first
func (r *LedgerRepo) GetHistory(userID int64, limit int) ([]domain.HistoryEntry, error) {
	query := `
		SELECT base_url, utm_url, short_url, created_at
		FROM history
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2
	`
	rows, err := r.db.Query(query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		entry := domain.HistoryEntry{UserID: userID}
		if err := rows.Scan(&entry.BaseURL, &entry.UTMURL, &entry.ShortURL, &entry.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// ListAuthorized returns all authorized users, newest first
func (r *LedgerRepo) ListAuthorized() ([]domain.AuthorizedUser, error) {
	query := `
		SELECT user_id, COALESCE(username, ''), authorized_at
		FROM users
		ORDER BY authorized_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.AuthorizedUser
	for rows.Next() {
		var u domain.AuthorizedUser
		if err := rows.Scan(&u.UserID, &u.Username, &u.AuthorizedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// ListBanned returns all banned users, newest first
func (r *LedgerRepo) ListBanned() ([]domain.BannedUser, error) {
	query := `
		SELECT user_id, COALESCE(username, ''), banned_at, COALESCE(reason, '')
		FROM banned_users
		ORDER BY banned_at DESC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.BannedUser
	for rows.Next() {
		var u domain.BannedUser
		if err := rows.Scan(&u.UserID, &u.Username, &u.BannedAt, &u.Reason); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes the user from every ledger table. The deletes run
// sequentially without a transaction; each table's delete is idempotent.
// Returns true when the user was present in the authorized or banned set.
func (r *LedgerRepo) DeleteUser(userID int64) (bool, error) {
	if _, err := r.db.Exec(`DELETE FROM history WHERE user_id = $1`, userID); err != nil {
		return false, err
	}
	if _, err := r.db.Exec(`DELETE FROM auth_attempts WHERE user_id = $1`, userID); err != nil {
		return false, err
	}

	res, err := r.db.Exec(`DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	fromUsers, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	res, err = r.db.Exec(`DELETE FROM banned_users WHERE user_id = $1`, userID)
	if err != nil {
		return false, err
	}
	fromBanned, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return fromUsers+fromBanned > 0, nil
}
