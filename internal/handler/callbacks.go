package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// callbackArgs splits cleaned callback data into its positional arguments
func callbackArgs(data string) []string {
	if data == "" {
		return nil
	}
	return strings.Split(data, "|")
}

// callbackArg returns the argument at index i, or "" when absent
func callbackArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// handleEditError handles errors from c.Edit() - if message is not modified, just acknowledge callback
// Otherwise, acknowledge callback and return error so caller can send new message
func (h *Handler) handleEditError(err error, c tele.Context, userID int64) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	// If message is not modified, it was already edited by another callback
	if strings.Contains(errStr, "message is not modified") {
		h.logger.Debug("Message already modified by another callback, acknowledging",
			zap.Int64("user_id", userID),
			zap.String("callback_id", c.Callback().ID),
		)
		c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("user_id", userID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// handleCallback handles ALL callback queries
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	// Clean data from all non-printable characters
	args := callbackArgs(cleanCallbackData(callback.Data))
	h.logger.Info("handleCallback: Processing callback",
		zap.String("unique", callback.Unique),
		zap.Strings("args", args),
		zap.Int64("user_id", c.Sender().ID),
	)

	switch callback.Unique {
	case "src":
		return h.handleSelectSource(c, callbackArg(args, 0))
	case "srcgrp":
		return h.handleOtherSources(c)
	case "med":
		return h.handleSelectMedium(c, callbackArg(args, 0))
	case "campgrp":
		return h.handleCampaignGroup(c, callbackArg(args, 0))
	case "camppage":
		return h.handleCampaignPage(c, callbackArg(args, 0), callbackArg(args, 1))
	case "camp":
		return h.handleSelectCampaign(c, callbackArg(args, 0))
	case "adddate":
		return h.handleDateChoice(c, callbackArg(args, 0))
	case "content":
		return h.handleContentBack(c)
	case "back":
		return h.handleBack(c, callbackArg(args, 0))
	case "manage_category":
		return h.handleManageCategory(c, callbackArg(args, 0))
	case "view_items":
		return h.handleViewItems(c, callbackArg(args, 0))
	case "add_item_prompt":
		return h.handleAddItemPrompt(c, callbackArg(args, 0))
	case "delete_item_prompt":
		return h.handleDeleteItemPrompt(c, callbackArg(args, 0))
	case "delete_item":
		return h.handleDeleteItem(c, callbackArg(args, 0), callbackArg(args, 1))
	case "back_to_categories":
		return h.handleBackToCategories(c)
	case "back_to_manage":
		return h.handleBackToManage(c, callbackArg(args, 0))
	case "exit_manage":
		return h.handleExitManage(c)
	case "settings":
		return h.handleSettingsAction(c, callbackArg(args, 0))
	}

	// If it's not handled, acknowledge it anyway
	h.logger.Warn("Unhandled callback in handleCallback",
		zap.String("unique", callback.Unique),
		zap.Strings("args", args),
	)
	return c.Respond()
}
