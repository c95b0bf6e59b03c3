package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"utmbot/internal/domain"

	"go.uber.org/zap"
)

// Category keys addressable from keyboards and flows
const (
	CategorySource        = "source"
	CategorySourceOther   = "source_other"
	CategoryMedium        = "medium"
	CategoryCampaignSPB   = "campaign_spb"
	CategoryCampaignMSK   = "campaign_msk"
	CategoryCampaignReg   = "campaign_regions"
	CategoryCampaignForgn = "campaign_foreign"
)

// Regions of the campaign buckets, in keyboard order
var CampaignRegions = []string{"spb", "msk", "regions", "foreign"}

// Category is a catalog bucket with a display title
type Category struct {
	Key   string
	Title string
}

// Categories lists all editable buckets in a fixed order
func Categories() []Category {
	return []Category{
		{CategorySource, "📊 Источники трафика (utm_source)"},
		{CategorySourceOther, "🧩 Источники: Другое (utm_source)"},
		{CategoryMedium, "📎 Типы трафика (utm_medium)"},
		{CategoryCampaignSPB, "📍 СПБ кампании"},
		{CategoryCampaignMSK, "🏙 МСК кампании"},
		{CategoryCampaignReg, "🌍 Регионы кампании"},
		{CategoryCampaignForgn, "🌐 Зарубежье кампании"},
	}
}

// CategoryTitle returns the display title for a category key
func CategoryTitle(key string) string {
	for _, cat := range Categories() {
		if cat.Key == key {
			return cat.Title
		}
	}
	return key
}

// CampaignCategory maps a region to its campaign category key
func CampaignCategory(region string) (string, bool) {
	switch region {
	case "spb":
		return CategoryCampaignSPB, true
	case "msk":
		return CategoryCampaignMSK, true
	case "regions":
		return CategoryCampaignReg, true
	case "foreign":
		return CategoryCampaignForgn, true
	}
	return "", false
}

// document is the persisted catalog file shape
type document struct {
	Sources      []domain.Item            `json:"sources"`
	SourcesOther []domain.Item            `json:"sources_other"`
	Mediums      []domain.Item            `json:"mediums"`
	Campaigns    map[string][]domain.Item `json:"campaigns"`
}

// Store holds the selectable tag vocabulary, backed by a JSON file.
// Every mutation is flushed to disk before it is reported as successful.
type Store struct {
	mu     sync.Mutex
	path   string
	data   document
	logger *zap.Logger
}

// NewStore loads the catalog from path, seeding defaults when the file is
// missing, unreadable or has no sources and mediums at all.
func NewStore(path string, logger *zap.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reload reads the file back from disk, replacing in-memory state.
// Used at startup; call again whenever freshness matters.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.logger.Info("Catalog file missing, seeding defaults", zap.String("path", s.path))
		s.data = defaultDocument()
		return s.flush()
	}
	if err != nil {
		return fmt.Errorf("failed to read catalog file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		s.logger.Warn("Catalog file is corrupt, seeding defaults", zap.Error(err))
		s.data = defaultDocument()
		return s.flush()
	}

	normalize(&doc)
	if len(doc.Sources) == 0 && len(doc.Mediums) == 0 {
		s.logger.Info("Catalog file is empty, seeding defaults", zap.String("path", s.path))
		s.data = defaultDocument()
		return s.flush()
	}

	s.data = doc
	return nil
}

// Items returns a copy of the category's items
func (s *Store) Items(categoryKey string) []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.getItems(categoryKey)
	if !ok {
		return nil
	}
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out
}

// Add inserts a new item into the category. Returns false without touching
// the file when an item with the same value already exists there.
func (s *Store) Add(categoryKey, name, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.getItems(categoryKey)
	if !ok {
		return false, fmt.Errorf("unknown catalog category: %s", categoryKey)
	}

	for _, item := range items {
		if item.Value == value {
			return false, nil
		}
	}

	s.setItems(categoryKey, append(items, domain.Item{Name: name, Value: value}))
	if err := s.flush(); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the item with the given value from the category.
// Returns false when no such item exists; nothing is written in that case.
func (s *Store) Delete(categoryKey, value string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.getItems(categoryKey)
	if !ok {
		return false, fmt.Errorf("unknown catalog category: %s", categoryKey)
	}

	for i, item := range items {
		if item.Value == value {
			s.setItems(categoryKey, append(items[:i], items[i+1:]...))
			if err := s.flush(); err != nil {
				return false, err
			}
			return true, nil
		}
	}

	return false, nil
}

// getItems resolves a category key to its items. Callers must hold the lock.
func (s *Store) getItems(categoryKey string) ([]domain.Item, bool) {
	switch categoryKey {
	case CategorySource:
		return s.data.Sources, true
	case CategorySourceOther:
		return s.data.SourcesOther, true
	case CategoryMedium:
		return s.data.Mediums, true
	case CategoryCampaignSPB, CategoryCampaignMSK, CategoryCampaignReg, CategoryCampaignForgn:
		region := strings.TrimPrefix(categoryKey, "campaign_")
		return s.data.Campaigns[region], true
	}
	return nil, false
}

// setItems replaces a category's items. Callers must hold the lock and pass
// a key already validated by getItems.
func (s *Store) setItems(categoryKey string, items []domain.Item) {
	switch categoryKey {
	case CategorySource:
		s.data.Sources = items
	case CategorySourceOther:
		s.data.SourcesOther = items
	case CategoryMedium:
		s.data.Mediums = items
	default:
		region := strings.TrimPrefix(categoryKey, "campaign_")
		s.data.Campaigns[region] = items
	}
}

// flush writes the document to disk. Callers must hold the lock.
func (s *Store) flush() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog file: %w", err)
	}
	return nil
}

// normalize fills in keys a hand-edited file may have dropped
func normalize(doc *document) {
	if doc.Sources == nil {
		doc.Sources = []domain.Item{}
	}
	if doc.SourcesOther == nil {
		doc.SourcesOther = []domain.Item{}
	}
	if doc.Mediums == nil {
		doc.Mediums = []domain.Item{}
	}
	if doc.Campaigns == nil {
		doc.Campaigns = make(map[string][]domain.Item)
	}
	for _, region := range CampaignRegions {
		if doc.Campaigns[region] == nil {
			doc.Campaigns[region] = []domain.Item{}
		}
	}
}

func defaultDocument() document {
	return document{
		Sources: []domain.Item{
			{Name: "VK", Value: "vk"},
			{Name: "Telegram", Value: "telegram"},
			{Name: "Yandex", Value: "yandex"},
			{Name: "Google", Value: "google"},
			{Name: "2GIS", Value: "2gis"},
		},
		SourcesOther: []domain.Item{
			{Name: "Партнер", Value: "partner"},
			{Name: "Блогер", Value: "blogger"},
			{Name: "Сайт", Value: "site"},
		},
		Mediums: []domain.Item{
			{Name: "CPC", Value: "cpc"},
			{Name: "Social", Value: "social"},
			{Name: "Email", Value: "email"},
			{Name: "Post", Value: "post"},
			{Name: "Story", Value: "story"},
		},
		Campaigns: map[string][]domain.Item{
			"spb": {
				{Name: "Спектакли", Value: "spectacle"},
				{Name: "Концерты", Value: "concert"},
				{Name: "Выставки", Value: "exhibition"},
			},
			"msk": {
				{Name: "Театры", Value: "theatre_msk"},
				{Name: "Стендап", Value: "standup_msk"},
			},
			"regions": {
				{Name: "Афиша ЕКБ", Value: "afisha_ekb"},
				{Name: "Афиша НСК", Value: "afisha_nsk"},
			},
			"foreign": {
				{Name: "Dubai Events", Value: "dubai_events"},
			},
		},
	}
}
