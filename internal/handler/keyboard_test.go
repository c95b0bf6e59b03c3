package handler

import (
	"fmt"
	"testing"

	"utmbot/internal/domain"

	"github.com/stretchr/testify/assert"
)

func regionItems(n int) []domain.Item {
	items := make([]domain.Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.Item{
			Name:  fmt.Sprintf("Город %d", i),
			Value: fmt.Sprintf("city_%d", i),
		})
	}
	return items
}

func TestCampaignPage(t *testing.T) {
	tests := []struct {
		name        string
		region      string
		count       int
		page        int
		wantVisible int
		wantMore    bool
	}{
		{
			name:        "non regions bucket never paginates",
			region:      "spb",
			count:       25,
			page:        1,
			wantVisible: 25,
			wantMore:    false,
		},
		{
			name:        "regions short list fits one page",
			region:      "regions",
			count:       9,
			page:        1,
			wantVisible: 9,
			wantMore:    false,
		},
		{
			name:        "regions long list first page",
			region:      "regions",
			count:       14,
			page:        1,
			wantVisible: 9,
			wantMore:    true,
		},
		{
			name:        "regions long list second page shows remainder",
			region:      "regions",
			count:       14,
			page:        2,
			wantVisible: 5,
			wantMore:    false,
		},
		{
			name:        "regions short list ignores page two",
			region:      "regions",
			count:       4,
			page:        2,
			wantVisible: 4,
			wantMore:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			visible, hasMore := campaignPage(tt.region, regionItems(tt.count), tt.page)
			assert.Len(t, visible, tt.wantVisible)
			assert.Equal(t, tt.wantMore, hasMore)
		})
	}
}

func TestCampaignPage_SecondPageContent(t *testing.T) {
	items := regionItems(12)

	first, _ := campaignPage("regions", items, 1)
	second, _ := campaignPage("regions", items, 2)

	assert.Equal(t, items[:9], first)
	assert.Equal(t, items[9:], second)
}

func TestCampaignButtonText(t *testing.T) {
	tests := []struct {
		name     string
		region   string
		input    string
		expected string
	}{
		{
			name:     "spb names untouched",
			region:   "spb",
			input:    "Все позиции в Санкт-Петербурге",
			expected: "Все позиции в Санкт-Петербурге",
		},
		{
			name:     "regions prefix shortened",
			region:   "regions",
			input:    "Все позиции в Казани",
			expected: "Всё в Казани",
		},
		{
			name:     "long regions name drops prefix entirely",
			region:   "regions",
			input:    "Все позиции в Нижнем Новгороде",
			expected: "Нижнем Новгороде",
		},
		{
			name:     "foreign prefix shortened",
			region:   "foreign",
			input:    "Все позиции в Дубае",
			expected: "Всё в Дубае",
		},
		{
			name:     "plain name untouched",
			region:   "regions",
			input:    "Афиша ЕКБ",
			expected: "Афиша ЕКБ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, campaignButtonText(tt.region, tt.input))
		})
	}
}
