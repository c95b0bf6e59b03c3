package handler

import (
	"fmt"
	"regexp"
	"strings"

	"utmbot/internal/catalog"
	"utmbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Values become URL query parts, so only a safe subset is allowed
var valuePattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

const managePanelText = "🛠 Панель управления UTM-метками.\n\nВыберите категорию. Для выхода напишите «отмена» или используйте /cancel."

// startCatalogManagement opens the catalog management panel
func (h *Handler) startCatalogManagement(c tele.Context) error {
	userID := c.Sender().ID

	h.sessions.StartCatalog(userID)
	h.logger.Info("Catalog management started", zap.Int64("user_id", userID))

	return c.Send(managePanelText, categoriesMarkup())
}

// exitCatalogMode leaves catalog management; a no-op when it is not active
func (h *Handler) exitCatalogMode(c tele.Context) error {
	userID := c.Sender().ID

	if !h.sessions.ClearIf(userID, domain.FlowCatalogManagement) {
		return c.Send("Режим управления UTM-метками не активен.")
	}
	return c.Send("Вы вышли из режима управления UTM-метками.", mainMenuMarkup())
}

// handleManageCategory shows the action menu for the chosen category
func (h *Handler) handleManageCategory(c tele.Context, categoryKey string) error {
	userID := c.Sender().ID

	cat := h.sessions.Catalog(userID)
	if cat == nil {
		cat = h.sessions.StartCatalog(userID)
	}
	cat.Category = categoryKey
	cat.Step = domain.CatalogChoosingAction
	cat.PendingName = ""

	text := fmt.Sprintf("Категория: %s\n\nВыберите действие:", catalog.CategoryTitle(categoryKey))
	if err := h.handleEditError(c.Edit(text, categoryActionsMarkup(categoryKey)), c, userID); err != nil {
		return c.Send(text, categoryActionsMarkup(categoryKey))
	}
	return c.Respond()
}

// handleViewItems lists the category's items read-only
func (h *Handler) handleViewItems(c tele.Context, categoryKey string) error {
	userID := c.Sender().ID

	items := h.catalog.Items(categoryKey)

	var text string
	if len(items) == 0 {
		text = "В этой категории пока нет меток."
	} else {
		lines := make([]string, 0, len(items)+1)
		lines = append(lines, fmt.Sprintf("Метки категории %s:", catalog.CategoryTitle(categoryKey)))
		for _, item := range items {
			lines = append(lines, fmt.Sprintf("• %s — %s", item.Name, item.Value))
		}
		text = strings.Join(lines, "\n")
	}

	if err := h.handleEditError(c.Edit(text, viewItemsMarkup(categoryKey)), c, userID); err != nil {
		return c.Send(text, viewItemsMarkup(categoryKey))
	}
	return c.Respond()
}

// handleAddItemPrompt switches the flow to collecting a new item's name
func (h *Handler) handleAddItemPrompt(c tele.Context, categoryKey string) error {
	userID := c.Sender().ID

	cat := h.sessions.Catalog(userID)
	if cat == nil {
		cat = h.sessions.StartCatalog(userID)
	}
	cat.Category = categoryKey
	cat.Step = domain.CatalogWaitingName
	cat.PendingName = ""

	text := "Введите название новой метки (как она будет показана на кнопке):"
	if err := h.handleEditError(c.Edit(text), c, userID); err != nil {
		return c.Send(text)
	}
	return c.Respond()
}

// handleDeleteItemPrompt shows one delete button per item
func (h *Handler) handleDeleteItemPrompt(c tele.Context, categoryKey string) error {
	userID := c.Sender().ID

	items := h.catalog.Items(categoryKey)
	if len(items) == 0 {
		return c.Respond(&tele.CallbackResponse{
			Text:      "В этой категории пока нет меток.",
			ShowAlert: true,
		})
	}

	text := "Выберите метку для удаления:"
	if err := h.handleEditError(c.Edit(text, deleteItemsMarkup(categoryKey, items)), c, userID); err != nil {
		return c.Send(text, deleteItemsMarkup(categoryKey, items))
	}
	return c.Respond()
}

// handleDeleteItem removes the item and refreshes the delete list
func (h *Handler) handleDeleteItem(c tele.Context, categoryKey, value string) error {
	userID := c.Sender().ID

	deleted, err := h.catalog.Delete(categoryKey, value)
	if err != nil {
		h.logger.Error("Failed to delete catalog item",
			zap.Error(err),
			zap.String("category", categoryKey),
			zap.String("value", value),
		)
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка при удалении!", ShowAlert: true})
	}
	if !deleted {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Ошибка при удалении!", ShowAlert: true})
	}

	c.Respond(&tele.CallbackResponse{Text: "✅ Метка удалена!"})

	items := h.catalog.Items(categoryKey)
	if len(items) == 0 {
		if cat := h.sessions.Catalog(userID); cat != nil {
			cat.Category = ""
			cat.Step = ""
			cat.PendingName = ""
		}
		text := "Все метки в этой категории были удалены."
		if err := h.handleEditError(c.Edit(text, categoriesMarkup()), c, userID); err != nil {
			return c.Send(text, categoriesMarkup())
		}
		return nil
	}

	text := "Выберите метку для удаления:"
	if err := h.handleEditError(c.Edit(text, deleteItemsMarkup(categoryKey, items)), c, userID); err != nil {
		return c.Send(text, deleteItemsMarkup(categoryKey, items))
	}
	return nil
}

// handleBackToCategories returns to the category chooser
func (h *Handler) handleBackToCategories(c tele.Context) error {
	userID := c.Sender().ID

	if cat := h.sessions.Catalog(userID); cat != nil {
		cat.Category = ""
		cat.Step = ""
		cat.PendingName = ""
	}

	if err := h.handleEditError(c.Edit(managePanelText, categoriesMarkup()), c, userID); err != nil {
		return c.Send(managePanelText, categoriesMarkup())
	}
	return c.Respond()
}

// handleBackToManage returns to the category's action menu
func (h *Handler) handleBackToManage(c tele.Context, categoryKey string) error {
	return h.handleManageCategory(c, categoryKey)
}

// handleExitManage leaves catalog management from the inline keyboard
func (h *Handler) handleExitManage(c tele.Context) error {
	c.Respond()
	return h.exitCatalogMode(c)
}

// handleCatalogName stores the display name and asks for the value
func (h *Handler) handleCatalogName(c tele.Context, cat *domain.CatalogState, text string) error {
	if text == "" {
		return c.Send("Название не должно быть пустым. Введите название метки:")
	}

	cat.PendingName = text
	cat.Step = domain.CatalogWaitingValue
	return c.Send("Введите значение метки (латиница, цифры, точка, дефис, подчёркивание):")
}

// handleCatalogValue validates the value and writes the item to the catalog
func (h *Handler) handleCatalogValue(c tele.Context, cat *domain.CatalogState, text string) error {
	if !valuePattern.MatchString(text) {
		return c.Send("Значение может содержать только латиницу, цифры и символы . _ -\nВведите значение ещё раз:")
	}

	added, err := h.catalog.Add(cat.Category, cat.PendingName, text)
	if err != nil {
		h.logger.Error("Failed to add catalog item",
			zap.Error(err),
			zap.String("category", cat.Category),
			zap.String("value", text),
		)
		return c.Send(internalErrorMessage)
	}

	// Either way the flow lands back on the category chooser
	cat.Category = ""
	cat.Step = ""
	cat.PendingName = ""

	if !added {
		return c.Send(
			"❌ Ошибка! Возможно, метка с таким значением уже существует.",
			categoriesMarkup(),
		)
	}
	return c.Send(
		"✅ Успешно добавлено! Выберите категорию:",
		categoriesMarkup(),
	)
}
