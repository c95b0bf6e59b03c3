package handler

import (
	"utmbot/internal/catalog"
	"utmbot/internal/service"
	"utmbot/internal/session"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Main menu reply-keyboard labels
const (
	menuSendLink  = "Отправить ссылку"
	menuManageUTM = "Добавить UTM"
	menuHistory   = "Посмотреть историю"
	menuSettings  = "Настройки"
)

// Handler drives all bot conversations: the password gate, the
// link-generation flow, catalog management and the settings sub-flows
type Handler struct {
	bot      *tele.Bot
	auth     *service.AuthService
	links    *service.LinkService
	catalog  *catalog.Store
	sessions *session.Store
	logger   *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	auth *service.AuthService,
	links *service.LinkService,
	catalogStore *catalog.Store,
	sessions *session.Store,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:      bot,
		auth:     auth,
		links:    links,
		catalog:  catalogStore,
		sessions: sessions,
		logger:   logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/cancel", h.handleCancel)
	h.bot.Handle("/manage_utm", h.handleManageCommand)

	// Free text, routed by session state
	h.bot.Handle(tele.OnText, h.handleText)

	// All inline buttons go through one dispatcher
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// handleCancel exits catalog-management mode; a no-op when it is not active
func (h *Handler) handleCancel(c tele.Context) error {
	return h.exitCatalogMode(c)
}

// handleManageCommand opens the catalog management panel
func (h *Handler) handleManageCommand(c tele.Context) error {
	return h.startCatalogManagement(c)
}
