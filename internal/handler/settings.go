package handler

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Timestamps are shown in Moscow time, the team's working timezone
var moscowTZ = time.FixedZone("MSK", 3*3600)

const userListLimit = 50

func formatTimestamp(t time.Time) string {
	return t.In(moscowTZ).Format("2006-01-02 15:04") + " МСК"
}

func formatUsername(username string) string {
	if username == "" {
		return "(без username)"
	}
	return "@" + username
}

// handleSettingsMenu shows the settings inline menu
func (h *Handler) handleSettingsMenu(c tele.Context) error {
	return c.Send("⚙️ Настройки. Выберите действие:", settingsMarkup())
}

// handleSettingsAction dispatches the settings inline buttons
func (h *Handler) handleSettingsAction(c tele.Context, action string) error {
	userID := c.Sender().ID

	switch action {
	case "change_password":
		h.sessions.ArmPasswordChange(userID)
		text := "Введите новый пароль бота. Для отмены напишите «отмена»."
		if err := h.handleEditError(c.Edit(text), c, userID); err != nil {
			return c.Send(text)
		}
		return c.Respond()
	case "view_users":
		return h.handleViewUsers(c)
	case "delete_user":
		h.sessions.ArmUserDeletion(userID)
		text := "Введите ID пользователя, которого нужно удалить. Для отмены напишите «отмена»."
		if err := h.handleEditError(c.Edit(text), c, userID); err != nil {
			return c.Send(text)
		}
		return c.Respond()
	case "utm_manage":
		c.Respond()
		return h.startCatalogManagement(c)
	case "exit":
		// Drop the inline keyboard, keep the message
		if _, err := h.bot.EditReplyMarkup(c.Message(), nil); err != nil {
			h.logger.Debug("Failed to remove settings keyboard", zap.Error(err))
		}
		return c.Respond()
	}

	h.logger.Warn("Unknown settings action", zap.String("action", action))
	return c.Respond()
}

// handleViewUsers lists authorized and banned users
func (h *Handler) handleViewUsers(c tele.Context) error {
	userID := c.Sender().ID

	authorized, err := h.auth.ListAuthorized()
	if err != nil {
		h.logger.Error("Failed to list authorized users", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: internalErrorMessage, ShowAlert: true})
	}
	banned, err := h.auth.ListBanned()
	if err != nil {
		h.logger.Error("Failed to list banned users", zap.Error(err))
		return c.Respond(&tele.CallbackResponse{Text: internalErrorMessage, ShowAlert: true})
	}

	var lines []string

	lines = append(lines, fmt.Sprintf("👥 Пользователи с доступом: %d", len(authorized)))
	// Lists arrive newest-first, so the head is the most recent slice
	shown := authorized
	if len(shown) > userListLimit {
		shown = shown[:userListLimit]
	}
	for _, u := range shown {
		lines = append(lines, fmt.Sprintf("• %d %s, с %s", u.UserID, formatUsername(u.Username), formatTimestamp(u.AuthorizedAt)))
	}
	if len(authorized) > userListLimit {
		lines = append(lines, fmt.Sprintf("… показаны последние %d записей", userListLimit))
	}

	lines = append(lines, "", fmt.Sprintf("⛔️ Заблокированные: %d", len(banned)))
	shownBanned := banned
	if len(shownBanned) > userListLimit {
		shownBanned = shownBanned[:userListLimit]
	}
	for _, u := range shownBanned {
		lines = append(lines, fmt.Sprintf("• %d %s, %s", u.UserID, formatUsername(u.Username), formatTimestamp(u.BannedAt)))
	}
	if len(banned) > userListLimit {
		lines = append(lines, fmt.Sprintf("… показаны последние %d записей", userListLimit))
	}

	text := strings.Join(lines, "\n")
	if err := h.handleEditError(c.Edit(text, settingsMarkup()), c, userID); err != nil {
		return c.Send(text, settingsMarkup())
	}
	return c.Respond()
}

// handleHistory shows the user's recently generated links
func (h *Handler) handleHistory(c tele.Context) error {
	userID := c.Sender().ID

	entries, err := h.links.History(userID, 20)
	if err != nil {
		h.logger.Error("Failed to load history", zap.Error(err), zap.Int64("user_id", userID))
		return c.Send(internalErrorMessage)
	}

	if len(entries) == 0 {
		return c.Send("Пока нет сохранённых ссылок. Сначала сгенерируйте UTM.")
	}

	lines := []string{"🧾 Последние сохранённые ссылки:"}
	for i, e := range entries {
		lines = append(lines, fmt.Sprintf("%d. %s — исходная: %s", i+1, e.ShortURL, e.BaseURL))
	}
	return c.Send(strings.Join(lines, "\n"))
}
