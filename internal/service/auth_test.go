package service

import (
	"testing"

	"utmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_SubmitPassword_Accepted(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("GetPassword").Return("secret123", nil)
	mockRepo.On("Authorize", int64(123), "alice").Return(nil)

	service := NewAuthService(mockRepo)

	verdict, _, err := service.SubmitPassword(123, "alice", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, PasswordAccepted, verdict)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SubmitPassword_CaseSensitive(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("GetPassword").Return("Secret123", nil)
	mockRepo.On("IncrementAttempts", int64(123)).Return(1, nil)

	service := NewAuthService(mockRepo)

	verdict, remaining, err := service.SubmitPassword(123, "alice", "secret123")

	assert.NoError(t, err)
	assert.Equal(t, PasswordRejected, verdict)
	assert.Equal(t, 2, remaining)
	mockRepo.AssertNotCalled(t, "Authorize", int64(123), "alice")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SubmitPassword_RemainingAttempts(t *testing.T) {
	tests := []struct {
		name              string
		attempts          int
		expectedVerdict   PasswordVerdict
		expectedRemaining int
		expectBan         bool
	}{
		{
			name:              "first wrong attempt",
			attempts:          1,
			expectedVerdict:   PasswordRejected,
			expectedRemaining: 2,
		},
		{
			name:              "second wrong attempt",
			attempts:          2,
			expectedVerdict:   PasswordRejected,
			expectedRemaining: 1,
		},
		{
			name:            "third wrong attempt locks out",
			attempts:        3,
			expectedVerdict: PasswordLockedOut,
			expectBan:       true,
		},
		{
			name:            "counter past the limit still locks out",
			attempts:        4,
			expectedVerdict: PasswordLockedOut,
			expectBan:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockLedgerRepository)
			mockRepo.On("GetPassword").Return("secret123", nil)
			mockRepo.On("IncrementAttempts", int64(42)).Return(tt.attempts, nil)
			if tt.expectBan {
				mockRepo.On("Ban", int64(42), "mallory", "invalid_password").Return(nil)
			}

			service := NewAuthService(mockRepo)

			verdict, remaining, err := service.SubmitPassword(42, "mallory", "wrong")

			assert.NoError(t, err)
			assert.Equal(t, tt.expectedVerdict, verdict)
			if tt.expectedVerdict == PasswordRejected {
				assert.Equal(t, tt.expectedRemaining, remaining)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

// Three consecutive wrong submissions starting from a clean counter must end
// in a ban; fewer must leave the user unauthenticated with the counter equal
// to the number of misses.
func TestAuthService_LockoutAfterThreeFailures(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("GetPassword").Return("secret123", nil)
	mockRepo.On("IncrementAttempts", int64(7)).Return(1, nil).Once()
	mockRepo.On("IncrementAttempts", int64(7)).Return(2, nil).Once()
	mockRepo.On("IncrementAttempts", int64(7)).Return(3, nil).Once()
	mockRepo.On("Ban", int64(7), "eve", "invalid_password").Return(nil).Once()

	service := NewAuthService(mockRepo)

	verdict, remaining, err := service.SubmitPassword(7, "eve", "nope")
	assert.NoError(t, err)
	assert.Equal(t, PasswordRejected, verdict)
	assert.Equal(t, 2, remaining)

	verdict, remaining, err = service.SubmitPassword(7, "eve", "nope")
	assert.NoError(t, err)
	assert.Equal(t, PasswordRejected, verdict)
	assert.Equal(t, 1, remaining)

	verdict, _, err = service.SubmitPassword(7, "eve", "nope")
	assert.NoError(t, err)
	assert.Equal(t, PasswordLockedOut, verdict)

	mockRepo.AssertExpectations(t)
}

// Wrong, wrong, correct: the user ends up authorized, not banned
func TestAuthService_RecoveryBeforeLockout(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("GetPassword").Return("secret123", nil)
	mockRepo.On("IncrementAttempts", int64(8)).Return(1, nil).Once()
	mockRepo.On("IncrementAttempts", int64(8)).Return(2, nil).Once()
	mockRepo.On("Authorize", int64(8), "bob").Return(nil).Once()

	service := NewAuthService(mockRepo)

	verdict, _, err := service.SubmitPassword(8, "bob", "guess1")
	assert.NoError(t, err)
	assert.Equal(t, PasswordRejected, verdict)

	verdict, _, err = service.SubmitPassword(8, "bob", "guess2")
	assert.NoError(t, err)
	assert.Equal(t, PasswordRejected, verdict)

	verdict, _, err = service.SubmitPassword(8, "bob", "secret123")
	assert.NoError(t, err)
	assert.Equal(t, PasswordAccepted, verdict)

	mockRepo.AssertNotCalled(t, "Ban", int64(8), "bob", "invalid_password")
	mockRepo.AssertExpectations(t)
}

func TestAuthService_DeleteUser(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("DeleteUser", int64(555)).Return(true, nil)

	service := NewAuthService(mockRepo)

	deleted, err := service.DeleteUser(555)

	assert.NoError(t, err)
	assert.True(t, deleted)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_SetPassword(t *testing.T) {
	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("SetPassword", "newpass").Return(nil)

	service := NewAuthService(mockRepo)

	assert.NoError(t, service.SetPassword("newpass"))
	mockRepo.AssertExpectations(t)
}
