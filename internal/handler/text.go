package handler

import (
	"fmt"
	"strconv"
	"strings"

	"utmbot/internal/domain"
	"utmbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// digitsOnly reports whether s is non-empty and consists of ASCII digits
func digitsOnly(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// isCancelWord matches the free-text ways to leave catalog management
func isCancelWord(text string) bool {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "отмена", "cancel", "выход", "stop":
		return true
	}
	return false
}

// handleText routes free text by the user's session state
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := strings.TrimSpace(c.Text())

	if h.sessions.IsAwaitingPassword(userID) {
		return h.handlePasswordSubmission(c, text)
	}

	switch h.sessions.Flow(userID) {
	case domain.FlowPasswordChange:
		return h.handleNewPassword(c, text)
	case domain.FlowUserDeletion:
		return h.handleDeletionID(c, text)
	}

	switch text {
	case menuSendLink:
		h.sessions.Clear(userID)
		return c.Send("Отправьте ссылку, для которой нужно сгенерировать UTM-метки.")
	case menuManageUTM:
		return h.startCatalogManagement(c)
	case menuHistory:
		return h.handleHistory(c)
	case menuSettings:
		return h.handleSettingsMenu(c)
	}

	if isCancelWord(text) {
		return h.exitCatalogMode(c)
	}

	if cat := h.sessions.Catalog(userID); cat != nil {
		switch cat.Step {
		case domain.CatalogWaitingName:
			return h.handleCatalogName(c, cat, text)
		case domain.CatalogWaitingValue:
			return h.handleCatalogValue(c, cat, text)
		}
		// Browsing the panel takes no text input; anything else falls
		// through and may reclaim the session for another flow
	}

	if strings.HasPrefix(text, "http://") || strings.HasPrefix(text, "https://") {
		return h.startLinkFlow(c, text)
	}

	if link := h.sessions.Link(userID); link != nil {
		if link.AwaitingDate {
			return h.handleManualDate(c, link, text)
		}
		if link.AwaitingContent {
			return h.handleManualContent(c, link, text)
		}
	}

	// Unrecognized text outside of any flow is ignored
	return nil
}

// handlePasswordSubmission checks the access password entered after /start
func (h *Handler) handlePasswordSubmission(c tele.Context, password string) error {
	userID := c.Sender().ID

	verdict, remaining, err := h.auth.SubmitPassword(userID, c.Sender().Username, password)
	if err != nil {
		h.logger.Error("Failed to verify password", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(internalErrorMessage)
	}

	switch verdict {
	case service.PasswordAccepted:
		h.sessions.ForgetPassword(userID)
		h.logger.Info("User authorized", zap.Int64("user_id", userID))
		return c.Send(
			"✅ Пароль принят! Теперь вы можете пользоваться ботом.",
			mainMenuMarkup(),
		)
	case service.PasswordLockedOut:
		h.sessions.ForgetPassword(userID)
		h.logger.Info("User banned after failed attempts", zap.Int64("user_id", userID))
		return c.Send("❌ Пароль неверный. Лимит попыток исчерпан, вы заблокированы.")
	default:
		return c.Send(fmt.Sprintf("❌ Пароль неверный. Осталось попыток: %d.", remaining))
	}
}

// handleNewPassword stores the text as the new shared bot password
func (h *Handler) handleNewPassword(c tele.Context, text string) error {
	userID := c.Sender().ID

	if strings.EqualFold(text, "отмена") {
		h.sessions.ClearIf(userID, domain.FlowPasswordChange)
		return c.Send("Действие отменено.", mainMenuMarkup())
	}
	if text == "" {
		return c.Send("Пароль не должен быть пустым. Введите новый пароль или напишите «отмена».")
	}

	if err := h.auth.SetPassword(text); err != nil {
		h.logger.Error("Failed to update password", zap.Error(err))
		return c.Send(internalErrorMessage)
	}
	h.sessions.ClearIf(userID, domain.FlowPasswordChange)

	h.logger.Info("Bot password changed", zap.Int64("user_id", userID))
	return c.Send(
		"🔐 Пароль обновлён. Сообщите команде о новых данных для доступа.",
		mainMenuMarkup(),
	)
}

// handleDeletionID treats the text as a user ID to remove from the access lists
func (h *Handler) handleDeletionID(c tele.Context, text string) error {
	userID := c.Sender().ID

	if strings.EqualFold(text, "отмена") {
		h.sessions.ClearIf(userID, domain.FlowUserDeletion)
		return c.Send("Удаление отменено.", mainMenuMarkup())
	}
	if !digitsOnly(text) {
		return c.Send("ID пользователя должен содержать только цифры. Введите ID ещё раз или напишите «отмена».")
	}

	targetID, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return c.Send("ID пользователя должен содержать только цифры. Введите ID ещё раз или напишите «отмена».")
	}

	deleted, err := h.auth.DeleteUser(targetID)
	if err != nil {
		h.logger.Error("Failed to delete user", zap.Error(err), zap.Int64("target_id", targetID))
		return c.Send(internalErrorMessage)
	}
	h.sessions.ClearIf(userID, domain.FlowUserDeletion)

	if !deleted {
		return c.Send(
			"Пользователь с таким ID не найден среди активных или заблокированных.",
			mainMenuMarkup(),
		)
	}

	h.logger.Info("User deleted",
		zap.Int64("target_id", targetID),
		zap.Int64("by_user_id", userID),
	)
	return c.Send(fmt.Sprintf("✅ Пользователь %d удалён из базы.", targetID), mainMenuMarkup())
}
