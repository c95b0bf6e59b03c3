package testutil

import (
	"utmbot/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository is a mock for repository.LedgerRepository
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) IsBanned(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedgerRepository) Authorize(userID int64, username string) error {
	args := m.Called(userID, username)
	return args.Error(0)
}

func (m *MockLedgerRepository) Ban(userID int64, username, reason string) error {
	args := m.Called(userID, username, reason)
	return args.Error(0)
}

func (m *MockLedgerRepository) IncrementAttempts(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}

func (m *MockLedgerRepository) ResetAttempts(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetPassword() (string, error) {
	args := m.Called()
	return args.String(0), args.Error(1)
}

func (m *MockLedgerRepository) SetPassword(password string) error {
	args := m.Called(password)
	return args.Error(0)
}

func (m *MockLedgerRepository) EnsurePassword(initial string) error {
	args := m.Called(initial)
	return args.Error(0)
}

func (m *MockLedgerRepository) AddHistory(userID int64, baseURL, utmURL, shortURL string) error {
	args := m.Called(userID, baseURL, utmURL, shortURL)
	return args.Error(0)
}

func (m *MockLedgerRepository) GetHistory(userID int64, limit int) ([]domain.HistoryEntry, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

func (m *MockLedgerRepository) ListAuthorized() ([]domain.AuthorizedUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuthorizedUser), args.Error(1)
}

func (m *MockLedgerRepository) ListBanned() ([]domain.BannedUser, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BannedUser), args.Error(1)
}

func (m *MockLedgerRepository) DeleteUser(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

// MockShortener is a mock for shortener.Shortener
type MockShortener struct {
	mock.Mock
}

func (m *MockShortener) Shorten(longURL string) (string, error) {
	args := m.Called(longURL)
	return args.String(0), args.Error(1)
}
