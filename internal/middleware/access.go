package middleware

import (
	"utmbot/internal/service"
	"utmbot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	bannedNotice   = "⛔️ Доступ к боту запрещён."
	passwordNotice = "🔐 Введите пароль командой /start, чтобы получить доступ к боту."
)

// AccessControl gates every incoming event. Banned users are turned away
// with a fixed notice. /start and password submissions pass without
// authorization; everything else requires the sender to be authorized.
func AccessControl(authService *service.AuthService, sessions *session.Store, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			sender := c.Sender()
			if sender == nil {
				return next(c)
			}
			userID := sender.ID

			banned, err := authService.IsBanned(userID)
			if err != nil {
				logger.Error("Failed to check ban status in middleware", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}
			if banned {
				// A banned user has no business holding a password prompt
				sessions.ForgetPassword(userID)
				return deny(c, bannedNotice)
			}

			// The greeting is the only handler that never requires auth
			if c.Message() != nil && c.Text() == "/start" {
				return next(c)
			}

			authorized, err := authService.IsAuthorized(userID)
			if err != nil {
				logger.Error("Failed to check authorization in middleware", zap.Error(err))
				return c.Send("Произошла ошибка. Попробуйте позже.")
			}
			if authorized {
				return next(c)
			}

			// An unauthenticated user who was prompted for the password gets
			// their text through: it is the password submission itself
			if c.Callback() == nil && sessions.IsAwaitingPassword(userID) {
				return next(c)
			}

			return deny(c, passwordNotice)
		}
	}
}

// deny sends the notice and drops the event. Button presses get an alert so
// the spinner on the client goes away.
func deny(c tele.Context, text string) error {
	if c.Callback() != nil {
		return c.Respond(&tele.CallbackResponse{Text: text, ShowAlert: true})
	}
	return c.Send(text)
}
