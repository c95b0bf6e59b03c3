package handler

import (
	"strings"

	"utmbot/internal/catalog"
	"utmbot/internal/domain"

	tele "gopkg.in/telebot.v3"
)

// The regions campaign bucket shows this many items before "show more"
const campaignPageSize = 9

// mainMenuMarkup returns the persistent reply keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(menu.Text(menuSendLink)),
		menu.Row(menu.Text(menuManageUTM), menu.Text(menuHistory)),
		menu.Row(menu.Text(menuSettings)),
	)
	return menu
}

// removeKeyboardMarkup clears the reply keyboard while the password is pending
func removeKeyboardMarkup() *tele.ReplyMarkup {
	return &tele.ReplyMarkup{RemoveKeyboard: true}
}

// pairRows lays buttons out two per row
func pairRows(markup *tele.ReplyMarkup, buttons []tele.Btn) []tele.Row {
	var rows []tele.Row
	for i := 0; i < len(buttons); i += 2 {
		if i+1 < len(buttons) {
			rows = append(rows, markup.Row(buttons[i], buttons[i+1]))
		} else {
			rows = append(rows, markup.Row(buttons[i]))
		}
	}
	return rows
}

// sourcesMarkup renders the utm_source list. Telegram gets its own row on
// top, the rest go in pairs, with the "other sources" branch at the end.
func sourcesMarkup(sources []domain.Item) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	var buttons []tele.Btn
	for _, item := range sources {
		if item.Value == "telegram" {
			rows = append(rows, markup.Row(markup.Data(item.Name, "src", item.Value)))
			continue
		}
		buttons = append(buttons, markup.Data(item.Name, "src", item.Value))
	}
	buttons = append(buttons, markup.Data("Другое...", "srcgrp", "other"))

	rows = append(rows, pairRows(markup, buttons)...)
	markup.Inline(rows...)
	return markup
}

// otherSourcesMarkup renders the secondary source list
func otherSourcesMarkup(sources []domain.Item) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var buttons []tele.Btn
	for _, item := range sources {
		buttons = append(buttons, markup.Data(item.Name, "src", item.Value))
	}

	rows := pairRows(markup, buttons)
	rows = append(rows, markup.Row(markup.Data("⬅️ Назад", "back", "source")))
	markup.Inline(rows...)
	return markup
}

// mediumsMarkup renders the utm_medium list
func mediumsMarkup(mediums []domain.Item) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var buttons []tele.Btn
	for _, item := range mediums {
		buttons = append(buttons, markup.Data(item.Name, "med", item.Value))
	}

	rows := pairRows(markup, buttons)
	rows = append(rows, markup.Row(markup.Data("⬅️ Назад", "back", "source")))
	markup.Inline(rows...)
	return markup
}

// campaignGroupsMarkup renders the four fixed region buckets
func campaignGroupsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("📍 СПБ", "campgrp", "spb"),
			markup.Data("🏙 МСК", "campgrp", "msk"),
		),
		markup.Row(
			markup.Data("🌍 Регионы", "campgrp", "regions"),
			markup.Data("🌐 Зарубежье", "campgrp", "foreign"),
		),
		markup.Row(markup.Data("⬅️ Назад", "back", "medium")),
	)
	return markup
}

// campaignPage slices the bucket's items for the requested page. Only the
// regions bucket paginates; every other bucket fits on one page.
func campaignPage(region string, items []domain.Item, page int) (visible []domain.Item, hasMore bool) {
	if region != "regions" {
		return items, false
	}
	if page <= 1 {
		if len(items) > campaignPageSize {
			return items[:campaignPageSize], true
		}
		return items, false
	}
	if len(items) <= campaignPageSize {
		return items, false
	}
	return items[campaignPageSize:], false
}

// campaignButtonText trims verbose region names down to button size
func campaignButtonText(region, name string) string {
	if region != "regions" && region != "foreign" {
		return name
	}
	short := strings.Replace(name, "Все позиции в ", "Всё в ", 1)
	if len([]rune(short)) > 20 {
		short = strings.Replace(short, "Всё в ", "", 1)
	}
	return short
}

// campaignsMarkup renders a page of the bucket's campaigns
func campaignsMarkup(region string, items []domain.Item, page int) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	visible, hasMore := campaignPage(region, items, page)

	var buttons []tele.Btn
	for _, item := range visible {
		buttons = append(buttons, markup.Data(campaignButtonText(region, item.Name), "camp", item.Value))
	}

	rows := pairRows(markup, buttons)
	if hasMore {
		rows = append(rows, markup.Row(markup.Data("Показать еще 📜", "camppage", region, "2")))
	}
	if region == "regions" && page > 1 {
		rows = append(rows, markup.Row(markup.Data("⬅️ Назад", "camppage", region, "1")))
	} else {
		rows = append(rows, markup.Row(markup.Data("⬅️ Назад", "back", "campaign")))
	}
	markup.Inline(rows...)
	return markup
}

// dateChoiceMarkup renders the utm_content date/manual branch
func dateChoiceMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(
			markup.Data("Сегодня", "adddate", "today"),
			markup.Data("Завтра", "adddate", "tomorrow"),
			markup.Data("Послезавтра", "adddate", "dayafter"),
		),
		markup.Row(
			markup.Data("Ввести вручную", "adddate", "manual"),
			markup.Data("Без даты", "adddate", "none"),
		),
		markup.Row(markup.Data("Вписать utm_content вручную", "adddate", "manual_content")),
		markup.Row(markup.Data("⬅️ Назад", "back", "campaign")),
	)
	return markup
}

// manualContentMarkup carries the way back from the manual-content prompt
func manualContentMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("⬅️ Назад", "content", "back")))
	return markup
}

// resultMarkup attaches the fixed external link to the generation result
func resultMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(tele.Btn{
		Text:   "Открыть API Gorbilet",
		WebApp: &tele.WebApp{URL: "https://gorbilet.com/api"},
	}))
	return markup
}

// categoriesMarkup renders the catalog management category chooser
func categoriesMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	for _, cat := range catalog.Categories() {
		rows = append(rows, markup.Row(markup.Data(cat.Title, "manage_category", cat.Key)))
	}
	rows = append(rows, markup.Row(markup.Data("Выйти", "exit_manage")))
	markup.Inline(rows...)
	return markup
}

// categoryActionsMarkup renders the view/add/delete menu for a category
func categoryActionsMarkup(categoryKey string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("👁 Просмотреть метки", "view_items", categoryKey)),
		markup.Row(markup.Data("➕ Добавить метку", "add_item_prompt", categoryKey)),
		markup.Row(markup.Data("➖ Удалить метку", "delete_item_prompt", categoryKey)),
		markup.Row(markup.Data("⬅️ Назад к категориям", "back_to_categories")),
	)
	return markup
}

// deleteItemsMarkup renders one delete button per item
func deleteItemsMarkup(categoryKey string, items []domain.Item) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}

	var rows []tele.Row
	for _, item := range items {
		label := "❌ " + item.Name + " (" + item.Value + ")"
		rows = append(rows, markup.Row(markup.Data(label, "delete_item", categoryKey, item.Value)))
	}
	rows = append(rows, markup.Row(markup.Data("⬅️ Назад", "back_to_manage", categoryKey)))
	markup.Inline(rows...)
	return markup
}

// viewItemsMarkup renders the back control under a read-only item list
func viewItemsMarkup(categoryKey string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(markup.Row(markup.Data("⬅️ Назад", "back_to_manage", categoryKey)))
	return markup
}

// settingsMarkup renders the settings inline menu
func settingsMarkup() *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{}
	markup.Inline(
		markup.Row(markup.Data("🔐 Изменить пароль бота", "settings", "change_password")),
		markup.Row(markup.Data("👥 Посмотреть пользователей", "settings", "view_users")),
		markup.Row(markup.Data("🗑 Удалить пользователя", "settings", "delete_user")),
		markup.Row(markup.Data("⚙️ Управление UTM", "settings", "utm_manage")),
		markup.Row(markup.Data("❌ Закрыть", "settings", "exit")),
	)
	return markup
}
