package service

import (
	"utmbot/internal/domain"
	"utmbot/internal/repository"
	"utmbot/internal/shortener"
	"utmbot/internal/utm"

	"go.uber.org/zap"
)

// GeneratedLink is the finalize result presented to the user
type GeneratedLink struct {
	BaseURL  string
	UTMURL   string
	ShortURL string
}

// LinkService finalizes a completed link-generation flow: it composes the
// tracking URL, shortens it and records the result in history
type LinkService struct {
	ledger    repository.LedgerRepository
	shortener shortener.Shortener
	logger    *zap.Logger
}

// NewLinkService creates a new link service
func NewLinkService(ledger repository.LedgerRepository, sh shortener.Shortener, logger *zap.Logger) *LinkService {
	return &LinkService{
		ledger:    ledger,
		shortener: sh,
		logger:    logger,
	}
}

// Generate builds the full UTM URL from collected fields, shortens it and
// appends a history entry. Any shortener failure returns before the history
// write; the caller tears the session down either way, so a failed flow is
// restarted from the base URL.
func (s *LinkService) Generate(userID int64, state *domain.LinkState) (*GeneratedLink, error) {
	content := state.ManualContent
	if content == "" {
		slug := utm.ExtractSlug(state.BaseURL)
		content = utm.ContentWithDate(slug, state.Date)
	}

	fullURL := utm.BuildURL(state.BaseURL, state.Source, state.Medium, state.Campaign, content)

	s.logger.Info("Built UTM URL",
		zap.Int64("user_id", userID),
		zap.String("url", fullURL),
	)

	shortURL, err := s.shortener.Shorten(fullURL)
	if err != nil {
		return nil, err
	}

	if err := s.ledger.AddHistory(userID, state.BaseURL, fullURL, shortURL); err != nil {
		// The link already exists; losing one history row is not a reason
		// to hide it from the user
		s.logger.Error("Failed to record history entry",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	return &GeneratedLink{
		BaseURL:  state.BaseURL,
		UTMURL:   fullURL,
		ShortURL: shortURL,
	}, nil
}

// History returns the user's most recent generated links
func (s *LinkService) History(userID int64, limit int) ([]domain.HistoryEntry, error) {
	return s.ledger.GetHistory(userID, limit)
}
