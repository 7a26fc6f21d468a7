package messages

// Reasons reported by pipeline filters.
const (
	MsgReasonGroupLocked   = "the group is in read-only mode"
	MsgReasonLink          = "contains a link that is not whitelisted"
	MsgReasonInviteLink    = "contains a group invite link"
	MsgReasonKeyword       = "contains a forbidden keyword"
	MsgReasonMediaSpam     = "contains media without a caption"
	MsgReasonFlood         = "too many messages in a short time"
)

// Notifications sent to the chat after a deletion. The %s is a sender mention.
const (
	MsgLinkDeleted      = "%s, your message was removed because it contains a link. Please do not post links in this group."
	MsgInviteDeleted    = "%s, your message was removed because it contains a group invite link. Please do not post invites here."
	MsgKeywordDeleted   = "%s, your message was removed because it contains a forbidden keyword."
	MsgMediaSpamDeleted = "%s, your message was removed because it contains media without a caption. Please add a description."
	MsgFloodDeleted     = "%s, you are sending messages too fast. Please slow down. Your message was removed."
)

// Admin command replies.
const (
	MsgNotAdmin            = "Sorry, you do not have access to this command."
	MsgWarnUsage           = "Usage: /warn <user_id> [reason]"
	MsgWarnIssued          = "User %d has been warned. Total warnings: %d."
	MsgWarnEscalated       = "User %d has reached the warning limit (%d). Manual action may be required (mute/kick)."
	MsgWarningsUsage       = "Usage: /warnings <user_id>"
	MsgNoWarnings          = "User %d has no warnings."
	MsgSetWarningUsage     = "Usage: /set_warning_limit <count>"
	MsgWarningLimitSet     = "Warning limit set to %d."
	MsgSetFloodUsage       = "Usage: /set_flood_limit <messages> <seconds>"
	MsgFloodLimitSet       = "Flood limit set to %d messages per %d seconds."
	MsgNumbersPositive     = "Both values must be positive numbers."
	MsgProtectionUsage     = "Usage: /protection <link|invite|keyword|media|flood> <on|off>"
	MsgProtectionUnknown   = "Unknown protection feature."
	MsgProtectionToggled   = "Protection %q set to %s."
	MsgWhitelistUsage      = "Usage: %s <link>"
	MsgWhitelistAdded      = "Link %q added to the whitelist."
	MsgWhitelistExists     = "Link %q is already in the whitelist."
	MsgWhitelistRemoved    = "Link %q removed from the whitelist."
	MsgWhitelistMissing    = "Link %q is not in the whitelist."
	MsgKeywordUsage        = "Usage: %s <keyword>"
	MsgKeywordAdded        = "Keyword %q added to the forbidden list."
	MsgKeywordExists       = "Keyword %q is already forbidden."
	MsgKeywordRemoved      = "Keyword %q removed from the forbidden list."
	MsgKeywordMissing      = "Keyword %q is not in the forbidden list."
	MsgGroupLocked         = "The group is now in read-only mode. Only admins can send messages."
	MsgGroupUnlocked       = "The group is no longer in read-only mode."
	MsgOperationFailed     = "The operation failed, please try again."
)
