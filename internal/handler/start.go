package handler

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const internalErrorMessage = "Произошла ошибка. Попробуйте позже."

// handleStart handles /start command
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	banned, err := h.auth.IsBanned(userID)
	if err != nil {
		h.logger.Error("Failed to check ban status", zap.Error(err))
		return c.Send(internalErrorMessage)
	}
	if banned {
		h.sessions.ForgetPassword(userID)
		return c.Send("⛔️ Доступ к боту запрещён.")
	}

	authorized, err := h.auth.IsAuthorized(userID)
	if err != nil {
		h.logger.Error("Failed to check authorization", zap.Error(err))
		return c.Send(internalErrorMessage)
	}

	if authorized {
		h.sessions.ForgetPassword(userID)
		h.sessions.Clear(userID)
		// Refresh the stored username on every return
		if err := h.auth.Authorize(userID, c.Sender().Username); err != nil {
			h.logger.Warn("Failed to refresh authorized user", zap.Error(err))
		}
		return c.Send(
			"👋 С возвращением! Выберите действие на клавиатуре.",
			mainMenuMarkup(),
		)
	}

	h.sessions.Clear(userID)
	h.sessions.AwaitPassword(userID)
	return c.Send(
		"🔒 Бот доступен только для сотрудников.\nВведите пароль, чтобы начать работу.",
		removeKeyboardMarkup(),
	)
}
