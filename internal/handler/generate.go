package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"utmbot/internal/catalog"
	"utmbot/internal/domain"
	"utmbot/internal/shortener"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// startLinkFlow begins a fresh link-generation flow from a pasted URL.
// A previous unfinished flow for the same user is discarded.
func (h *Handler) startLinkFlow(c tele.Context, baseURL string) error {
	userID := c.Sender().ID

	sources := h.catalog.Items(catalog.CategorySource)
	if len(sources) == 0 {
		return c.Send("❌ Список utm_source пуст. Добавьте метки через управление UTM.")
	}

	h.sessions.StartLink(userID, baseURL)
	h.logger.Info("Link flow started", zap.Int64("user_id", userID))

	return c.Send("Выберите источник (utm_source):", sourcesMarkup(sources))
}

// handleOtherSources switches the source list to the secondary catalog
func (h *Handler) handleOtherSources(c tele.Context) error {
	userID := c.Sender().ID
	if h.sessions.Link(userID) == nil {
		return h.expiredFlowAlert(c)
	}

	items := h.catalog.Items(catalog.CategorySourceOther)
	if len(items) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "Дополнительных источников пока нет.",
			ShowAlert: true,
		})
	}

	if err := h.handleEditError(c.Edit("Выберите источник (utm_source):", otherSourcesMarkup(items)), c, userID); err != nil {
		return c.Send("Выберите источник (utm_source):", otherSourcesMarkup(items))
	}
	return c.Respond()
}

// handleSelectSource stores utm_source and moves on to utm_medium
func (h *Handler) handleSelectSource(c tele.Context, value string) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	link.Source = value
	link.AwaitingDate = false
	link.AwaitingContent = false

	mediums := h.catalog.Items(catalog.CategoryMedium)
	if len(mediums) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ Список utm_medium пуст. Добавьте метки через управление UTM.",
			ShowAlert: true,
		})
	}

	text := fmt.Sprintf("Источник (utm_source) выбран: %s\n\nВыберите тип трафика (utm_medium):", value)
	if err := h.handleEditError(c.Edit(text, mediumsMarkup(mediums)), c, userID); err != nil {
		return c.Send(text, mediumsMarkup(mediums))
	}
	return c.Respond()
}

// handleSelectMedium stores utm_medium and shows the campaign groups
func (h *Handler) handleSelectMedium(c tele.Context, value string) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	link.Medium = value
	link.AwaitingDate = false
	link.AwaitingContent = false

	text := fmt.Sprintf("Тип трафика (utm_medium) выбран: %s\n\nВыберите группу кампаний:", value)
	if err := h.handleEditError(c.Edit(text, campaignGroupsMarkup()), c, userID); err != nil {
		return c.Send(text, campaignGroupsMarkup())
	}
	return c.Respond()
}

// handleCampaignGroup shows the campaigns of the chosen region bucket
func (h *Handler) handleCampaignGroup(c tele.Context, region string) error {
	return h.showCampaigns(c, region, 1)
}

// handleCampaignPage switches between pages of the regions bucket
func (h *Handler) handleCampaignPage(c tele.Context, region, pageArg string) error {
	page := 1
	if pageArg == "2" {
		page = 2
	}
	return h.showCampaigns(c, region, page)
}

func (h *Handler) showCampaigns(c tele.Context, region string, page int) error {
	userID := c.Sender().ID
	if h.sessions.Link(userID) == nil {
		return h.expiredFlowAlert(c)
	}

	categoryKey, ok := catalog.CampaignCategory(region)
	if !ok {
		h.logger.Warn("Unknown campaign region", zap.String("region", region))
		return c.Respond()
	}

	items := h.catalog.Items(categoryKey)
	if len(items) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "В этой группе пока нет меток.",
			ShowAlert: true,
		})
	}

	text := "Выберите кампанию (utm_campaign):"
	markup := campaignsMarkup(region, items, page)
	if err := h.handleEditError(c.Edit(text, markup), c, userID); err != nil {
		return c.Send(text, markup)
	}
	return c.Respond()
}

// handleSelectCampaign stores utm_campaign and asks about utm_content
func (h *Handler) handleSelectCampaign(c tele.Context, value string) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	link.Campaign = value
	link.AwaitingDate = false
	link.AwaitingContent = false

	text := fmt.Sprintf("Кампания (utm_campaign) выбрана: %s\n\nДобавить дату к utm_content?", value)
	if err := h.handleEditError(c.Edit(text, dateChoiceMarkup()), c, userID); err != nil {
		return c.Send(text, dateChoiceMarkup())
	}
	return c.Respond()
}

// handleDateChoice resolves the utm_content branch: a relative date, a manual
// date, a fully manual utm_content, or no date at all
func (h *Handler) handleDateChoice(c tele.Context, choice string) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	switch choice {
	case "today", "tomorrow", "dayafter":
		offset := map[string]int{"today": 0, "tomorrow": 1, "dayafter": 2}[choice]
		link.Date = time.Now().AddDate(0, 0, offset).Format("2006-01-02")
		return h.finalize(c, link)
	case "none":
		link.Date = ""
		return h.finalize(c, link)
	case "manual":
		link.AwaitingDate = true
		link.AwaitingContent = false
		text := "Введите дату в формате YYYY-MM-DD (например: 2025-10-10)"
		if err := h.handleEditError(c.Edit(text), c, userID); err != nil {
			return c.Send(text)
		}
		return c.Respond()
	case "manual_content":
		link.AwaitingContent = true
		link.AwaitingDate = false
		text := "Введите utm_content вручную:"
		if err := h.handleEditError(c.Edit(text, manualContentMarkup()), c, userID); err != nil {
			return c.Send(text, manualContentMarkup())
		}
		return c.Respond()
	}

	h.logger.Warn("Unknown date choice", zap.String("choice", choice))
	return c.Respond()
}

// handleManualDate validates a hand-typed date and finishes the flow
func (h *Handler) handleManualDate(c tele.Context, link *domain.LinkState, text string) error {
	if _, err := time.Parse("2006-01-02", text); err != nil {
		return c.Send("Неверный формат даты. Введите дату в формате YYYY-MM-DD (например: 2025-10-10)")
	}

	link.AwaitingDate = false
	link.Date = text
	return h.finalize(c, link)
}

// handleManualContent takes a hand-typed utm_content and finishes the flow
func (h *Handler) handleManualContent(c tele.Context, link *domain.LinkState, text string) error {
	if text == "" {
		return c.Send("utm_content не может быть пустым. Попробуйте ещё раз.")
	}

	link.AwaitingContent = false
	link.ManualContent = text
	return h.finalize(c, link)
}

// handleContentBack returns from the manual-content prompt to the date choice
func (h *Handler) handleContentBack(c tele.Context) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	link.AwaitingContent = false

	text := "Добавить дату к utm_content?"
	if err := h.handleEditError(c.Edit(text, dateChoiceMarkup()), c, userID); err != nil {
		return c.Send(text, dateChoiceMarkup())
	}
	return c.Respond()
}

// handleBack steps backwards through the link flow
func (h *Handler) handleBack(c tele.Context, target string) error {
	userID := c.Sender().ID
	link := h.sessions.Link(userID)
	if link == nil {
		return h.expiredFlowAlert(c)
	}

	link.AwaitingDate = false
	link.AwaitingContent = false

	var text string
	var markup *tele.ReplyMarkup
	switch target {
	case "source":
		link.Source = ""
		text = "Выберите источник (utm_source):"
		markup = sourcesMarkup(h.catalog.Items(catalog.CategorySource))
	case "medium":
		link.Medium = ""
		text = "Выберите тип трафика (utm_medium):"
		markup = mediumsMarkup(h.catalog.Items(catalog.CategoryMedium))
	case "campaign":
		link.Campaign = ""
		text = "Выберите группу кампаний:"
		markup = campaignGroupsMarkup()
	default:
		h.logger.Warn("Unknown back target", zap.String("target", target))
		return c.Respond()
	}

	if err := h.handleEditError(c.Edit(text, markup), c, userID); err != nil {
		return c.Send(text, markup)
	}
	return c.Respond()
}

// finalize builds, shortens and stores the link, then tears the session down.
// The session is cleared on failure too: the user restarts by pasting the URL.
func (h *Handler) finalize(c tele.Context, link *domain.LinkState) error {
	userID := c.Sender().ID
	defer h.sessions.ClearIf(userID, domain.FlowLinkGeneration)

	result, err := h.links.Generate(userID, link)
	if err != nil {
		if c.Callback() != nil {
			c.Respond()
		}
		if errors.Is(err, shortener.ErrNoResult) {
			return c.Send("❌ Не удалось сократить ссылку. Попробуйте позже.")
		}
		return c.Send("❌ Ошибка при обращении к сервису сокращения. Попробуйте позже.")
	}

	text := strings.Join([]string{
		"✅ Результаты генерации ссылок:",
		"🔗 Исходная:\n" + result.BaseURL,
		"🧩 С UTM:\n" + result.UTMURL,
		"✂️ Сокращённая:\n" + result.ShortURL,
	}, "\n\n")

	if c.Callback() != nil {
		if err := h.handleEditError(c.Edit(text, resultMarkup()), c, userID); err != nil {
			return c.Send(text, resultMarkup())
		}
		return c.Respond()
	}
	return c.Send(text, resultMarkup())
}

// expiredFlowAlert tells the user a button from a dead flow was pressed
func (h *Handler) expiredFlowAlert(c tele.Context) error {
	return c.Respond(&tele.CallbackResponse{
		Text:      "Сессия генерации не найдена. Отправьте ссылку заново.",
		ShowAlert: true,
	})
}
