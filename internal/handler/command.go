package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	"guardian-bot/internal/messages"
	"guardian-bot/internal/metrics"
	"guardian-bot/internal/repository"
)

func (h *Handler) handleCommand(ctx context.Context, msg *models.Message) {
	if !h.isAdmin(msg.From.ID) {
		h.denyNonAdmin(ctx, msg)
		return
	}

	parts := strings.Fields(msg.Text)
	command := strings.ToLower(parts[0])
	// commands in groups may carry the bot mention: /warn@guardian_bot
	if i := strings.Index(command, "@"); i > 0 {
		command = command[:i]
	}
	args := parts[1:]

	h.logger.Info("Admin command", "command", command, "admin_id", msg.From.ID, "chat_id", msg.Chat.ID)
	metrics.IncBotAction("admin_command")

	switch command {
	case "/warn":
		h.handleWarn(ctx, msg, args)
	case "/warnings":
		h.handleWarnings(ctx, msg, args)
	case "/set_warning_limit":
		h.handleSetWarningLimit(ctx, msg, args)
	case "/set_flood_limit":
		h.handleSetFloodLimit(ctx, msg, args)
	case "/protection":
		h.handleProtection(ctx, msg, args)
	case "/add_link_whitelist":
		h.handleWhitelist(ctx, msg, args, command, true)
	case "/del_link_whitelist":
		h.handleWhitelist(ctx, msg, args, command, false)
	case "/add_keyword":
		h.handleKeyword(ctx, msg, args, command, true)
	case "/del_keyword":
		h.handleKeyword(ctx, msg, args, command, false)
	case "/lock_group":
		h.handleLock(ctx, msg, true)
	case "/unlock_group":
		h.handleLock(ctx, msg, false)
	case "/check_settings":
		h.handleCheckSettings(ctx, msg)
	default:
		h.logger.Debug("Unknown command ignored", "command", command)
	}
}

func (h *Handler) handleWarn(ctx context.Context, msg *models.Message, args []string) {
	if len(args) < 1 {
		h.reply(ctx, msg.Chat.ID, messages.MsgWarnUsage)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(ctx, msg.Chat.ID, messages.MsgWarnUsage)
		return
	}
	reason := "No reason given"
	if len(args) > 1 {
		reason = strings.Join(args[1:], " ")
	}

	count, escalated, err := h.svc.IssueWarning(ctx, userID, msg.Chat.ID, msg.From.ID, reason)
	if err != nil {
		h.logger.Error("Failed to issue warning", "user_id", userID, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}

	h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWarnIssued, userID, count))
	if escalated {
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWarnEscalated, userID, count))
	}
}

func (h *Handler) handleWarnings(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 1 {
		h.reply(ctx, msg.Chat.ID, messages.MsgWarningsUsage)
		return
	}
	userID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(ctx, msg.Chat.ID, messages.MsgWarningsUsage)
		return
	}

	warnings, err := h.svc.ListWarnings(ctx, userID)
	if err != nil {
		h.logger.Error("Failed to list warnings", "user_id", userID, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}
	if len(warnings) == 0 {
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgNoWarnings, userID))
		return
	}

	lines := lo.Map(warnings, func(w repository.Warning, i int) string {
		return fmt.Sprintf("%d. group %d, by admin %d: %s (%s)",
			i+1, w.GroupID, w.AdminID, w.Reason, w.CreatedAt.Format("2006-01-02 15:04"))
	})
	h.reply(ctx, msg.Chat.ID, fmt.Sprintf("Warnings for user %d:\n%s", userID, strings.Join(lines, "\n")))
}

func (h *Handler) handleSetWarningLimit(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 1 {
		h.reply(ctx, msg.Chat.ID, messages.MsgSetWarningUsage)
		return
	}
	limit, err := strconv.Atoi(args[0])
	if err != nil || limit < 1 {
		h.reply(ctx, msg.Chat.ID, messages.MsgNumbersPositive)
		return
	}
	if err := h.svc.SetWarningLimit(ctx, msg.From.ID, limit); err != nil {
		h.logger.Error("Failed to set warning limit", "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}
	h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWarningLimitSet, limit))
}

func (h *Handler) handleSetFloodLimit(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 2 {
		h.reply(ctx, msg.Chat.ID, messages.MsgSetFloodUsage)
		return
	}
	limit, err1 := strconv.Atoi(args[0])
	seconds, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || limit < 1 || seconds < 1 {
		h.reply(ctx, msg.Chat.ID, messages.MsgNumbersPositive)
		return
	}
	if err := h.svc.SetFloodLimit(ctx, msg.From.ID, limit, seconds); err != nil {
		h.logger.Error("Failed to set flood limit", "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}
	h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgFloodLimitSet, limit, seconds))
}

func (h *Handler) handleProtection(ctx context.Context, msg *models.Message, args []string) {
	if len(args) != 2 || (args[1] != "on" && args[1] != "off") {
		h.reply(ctx, msg.Chat.ID, messages.MsgProtectionUsage)
		return
	}
	feature := strings.ToLower(args[0])
	enabled := args[1] == "on"

	if err := h.svc.ToggleProtection(ctx, msg.From.ID, feature, enabled); err != nil {
		h.logger.Error("Failed to toggle protection", "feature", feature, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgProtectionUnknown)
		return
	}
	h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgProtectionToggled, feature, args[1]))
}

func (h *Handler) handleWhitelist(ctx context.Context, msg *models.Message, args []string, command string, add bool) {
	if len(args) != 1 {
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWhitelistUsage, command))
		return
	}
	link := args[0]

	var changed bool
	var err error
	if add {
		changed, err = h.svc.AddWhitelistLink(ctx, msg.From.ID, link)
	} else {
		changed, err = h.svc.RemoveWhitelistLink(ctx, msg.From.ID, link)
	}
	if err != nil {
		h.logger.Error("Whitelist update failed", "link", link, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}

	switch {
	case add && changed:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWhitelistAdded, link))
	case add:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWhitelistExists, link))
	case changed:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWhitelistRemoved, link))
	default:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgWhitelistMissing, link))
	}
}

func (h *Handler) handleKeyword(ctx context.Context, msg *models.Message, args []string, command string, add bool) {
	if len(args) != 1 {
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgKeywordUsage, command))
		return
	}
	keyword := strings.ToLower(args[0])

	var changed bool
	var err error
	if add {
		changed, err = h.svc.AddKeyword(ctx, msg.From.ID, keyword)
	} else {
		changed, err = h.svc.RemoveKeyword(ctx, msg.From.ID, keyword)
	}
	if err != nil {
		h.logger.Error("Keyword update failed", "keyword", keyword, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}

	switch {
	case add && changed:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgKeywordAdded, keyword))
	case add:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgKeywordExists, keyword))
	case changed:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgKeywordRemoved, keyword))
	default:
		h.reply(ctx, msg.Chat.ID, fmt.Sprintf(messages.MsgKeywordMissing, keyword))
	}
}

func (h *Handler) handleLock(ctx context.Context, msg *models.Message, lock bool) {
	if !isGroupChat(msg.Chat) {
		h.reply(ctx, msg.Chat.ID, "This command only works in a group chat.")
		return
	}

	var err error
	if lock {
		err = h.svc.LockGroup(ctx, msg.From.ID, msg.Chat.ID)
	} else {
		err = h.svc.UnlockGroup(ctx, msg.From.ID, msg.Chat.ID)
	}
	if err != nil {
		h.logger.Error("Failed to change lock mode", "chat_id", msg.Chat.ID, "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}

	if lock {
		h.reply(ctx, msg.Chat.ID, messages.MsgGroupLocked)
	} else {
		h.reply(ctx, msg.Chat.ID, messages.MsgGroupUnlocked)
	}
}

func (h *Handler) handleCheckSettings(ctx context.Context, msg *models.Message) {
	overview, err := h.svc.ProtectionOverview(ctx, msg.Chat.ID)
	if err != nil {
		h.logger.Error("Failed to read settings", "error", err)
		h.reply(ctx, msg.Chat.ID, messages.MsgOperationFailed)
		return
	}

	links, err := h.svc.ListWhitelistLinks(ctx)
	if err != nil {
		h.logger.Error("Failed to list whitelist", "error", err)
	}
	keywords, err := h.svc.ListKeywords(ctx)
	if err != nil {
		h.logger.Error("Failed to list keywords", "error", err)
	}

	onOff := func(b bool) string {
		if b {
			return "ON"
		}
		return "OFF"
	}

	var sb strings.Builder
	sb.WriteString("Current protection settings:\n")
	fmt.Fprintf(&sb, "- Link protection: %s\n", onOff(overview.LinkProtection))
	fmt.Fprintf(&sb, "- Invite protection: %s\n", onOff(overview.InviteProtection))
	fmt.Fprintf(&sb, "- Keyword protection: %s\n", onOff(overview.KeywordProtection))
	fmt.Fprintf(&sb, "- Media spam protection: %s\n", onOff(overview.MediaSpamProtection))
	fmt.Fprintf(&sb, "- Flood protection: %s (%d msgs / %s)\n",
		onOff(overview.FloodProtection), overview.FloodMessageLimit, overview.FloodTimeWindow)
	fmt.Fprintf(&sb, "- Warning limit: %d\n", overview.WarningLimit)
	fmt.Fprintf(&sb, "- This group locked: %s\n", onOff(overview.GroupLocked))
	fmt.Fprintf(&sb, "- Whitelisted links: %s\n", listOrNone(links))
	fmt.Fprintf(&sb, "- Forbidden keywords: %s", listOrNone(keywords))

	h.reply(ctx, msg.Chat.ID, sb.String())
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}
