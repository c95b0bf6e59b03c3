package service

import (
	"errors"
	"testing"

	"utmbot/internal/domain"
	"utmbot/internal/shortener"
	"utmbot/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLinkService_Generate(t *testing.T) {
	state := &domain.LinkState{
		BaseURL:  "https://x.com/actions/concert",
		Source:   "vk",
		Medium:   "cpc",
		Campaign: "spectacle",
	}
	expectedFull := "https://x.com/actions/concert?utm_source=vk&utm_medium=cpc&utm_campaign=spectacle&utm_content=concert"

	mockRepo := new(testutil.MockLedgerRepository)
	mockShort := new(testutil.MockShortener)
	mockShort.On("Shorten", expectedFull).Return("https://clc.li/abc", nil)
	mockRepo.On("AddHistory", int64(123), state.BaseURL, expectedFull, "https://clc.li/abc").Return(nil)

	service := NewLinkService(mockRepo, mockShort, testutil.NewTestLogger())

	result, err := service.Generate(123, state)

	require.NoError(t, err)
	assert.Equal(t, state.BaseURL, result.BaseURL)
	assert.Equal(t, expectedFull, result.UTMURL)
	assert.Equal(t, "https://clc.li/abc", result.ShortURL)
	mockRepo.AssertExpectations(t)
	mockShort.AssertExpectations(t)
}

func TestLinkService_Generate_DateSuffixedContent(t *testing.T) {
	state := &domain.LinkState{
		BaseURL:  "https://x.com/actions/concert",
		Source:   "vk",
		Medium:   "cpc",
		Campaign: "spectacle",
		Date:     "2025-10-10",
	}
	expectedFull := "https://x.com/actions/concert?utm_source=vk&utm_medium=cpc&utm_campaign=spectacle&utm_content=concert-10-10"

	mockRepo := new(testutil.MockLedgerRepository)
	mockShort := new(testutil.MockShortener)
	mockShort.On("Shorten", expectedFull).Return("https://clc.li/abc", nil)
	mockRepo.On("AddHistory", int64(123), state.BaseURL, expectedFull, "https://clc.li/abc").Return(nil)

	service := NewLinkService(mockRepo, mockShort, testutil.NewTestLogger())

	result, err := service.Generate(123, state)

	require.NoError(t, err)
	assert.Equal(t, expectedFull, result.UTMURL)
}

func TestLinkService_Generate_ManualContentOverridesDate(t *testing.T) {
	state := &domain.LinkState{
		BaseURL:       "https://x.com/actions/concert",
		Source:        "vk",
		Medium:        "cpc",
		Campaign:      "spectacle",
		Date:          "2025-10-10",
		ManualContent: "custom_promo",
	}
	expectedFull := "https://x.com/actions/concert?utm_source=vk&utm_medium=cpc&utm_campaign=spectacle&utm_content=custom_promo"

	mockRepo := new(testutil.MockLedgerRepository)
	mockShort := new(testutil.MockShortener)
	mockShort.On("Shorten", expectedFull).Return("https://clc.li/abc", nil)
	mockRepo.On("AddHistory", int64(123), state.BaseURL, expectedFull, "https://clc.li/abc").Return(nil)

	service := NewLinkService(mockRepo, mockShort, testutil.NewTestLogger())

	result, err := service.Generate(123, state)

	require.NoError(t, err)
	assert.Equal(t, expectedFull, result.UTMURL)
}

// A shortener failure must not produce a history entry
func TestLinkService_Generate_ShortenerFailureWritesNoHistory(t *testing.T) {
	state := &domain.LinkState{
		BaseURL:  "https://x.com/actions/concert",
		Source:   "vk",
		Medium:   "cpc",
		Campaign: "spectacle",
	}

	tests := []struct {
		name string
		err  error
	}{
		{name: "empty result", err: shortener.ErrNoResult},
		{name: "transport error", err: errors.New("connection refused")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockLedgerRepository)
			mockShort := new(testutil.MockShortener)
			mockShort.On("Shorten", mock.AnythingOfType("string")).Return("", tt.err)

			service := NewLinkService(mockRepo, mockShort, testutil.NewTestLogger())

			result, err := service.Generate(123, state)

			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, result)
			mockRepo.AssertNotCalled(t, "AddHistory")
		})
	}
}

func TestLinkService_Generate_HistoryFailureStillReturnsLink(t *testing.T) {
	state := &domain.LinkState{
		BaseURL:  "https://x.com/a",
		Source:   "vk",
		Medium:   "cpc",
		Campaign: "spectacle",
	}

	mockRepo := new(testutil.MockLedgerRepository)
	mockShort := new(testutil.MockShortener)
	mockShort.On("Shorten", mock.AnythingOfType("string")).Return("https://clc.li/x", nil)
	mockRepo.On("AddHistory", int64(9), state.BaseURL, mock.AnythingOfType("string"), "https://clc.li/x").
		Return(errors.New("db down"))

	service := NewLinkService(mockRepo, mockShort, testutil.NewTestLogger())

	result, err := service.Generate(9, state)

	require.NoError(t, err)
	assert.Equal(t, "https://clc.li/x", result.ShortURL)
}

func TestLinkService_History(t *testing.T) {
	entries := []domain.HistoryEntry{
		{UserID: 1, BaseURL: "https://x.com/a", UTMURL: "https://x.com/a?utm_source=vk", ShortURL: "https://clc.li/a"},
	}

	mockRepo := new(testutil.MockLedgerRepository)
	mockRepo.On("GetHistory", int64(1), 20).Return(entries, nil)

	service := NewLinkService(mockRepo, new(testutil.MockShortener), testutil.NewTestLogger())

	result, err := service.History(1, 20)

	require.NoError(t, err)
	assert.Equal(t, entries, result)
	mockRepo.AssertExpectations(t)
}
