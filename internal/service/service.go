package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"guardian-bot/internal/metrics"
	"guardian-bot/internal/pipeline"
	"guardian-bot/internal/pipeline/filters"
	"guardian-bot/internal/ratelimit"
	"guardian-bot/internal/repository"
	"guardian-bot/internal/settings"
)

// Effects is the transport surface the moderation core invokes. Both calls
// are best-effort: failures are logged, never retried by the core.
type Effects interface {
	DeleteMessage(ctx context.Context, chatID int64, messageID int) error
	Notify(ctx context.Context, chatID int64, text string) error
}

type Service interface {
	ModerateMessage(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error)
	LogChatMessage(ctx context.Context, payload pipeline.Payload)

	IssueWarning(ctx context.Context, userID, groupID, adminID int64, reason string) (count int, escalated bool, err error)
	ListWarnings(ctx context.Context, userID int64) ([]repository.Warning, error)

	ToggleProtection(ctx context.Context, adminID int64, feature string, enabled bool) error
	SetFloodLimit(ctx context.Context, adminID int64, limit, seconds int) error
	SetWarningLimit(ctx context.Context, adminID int64, limit int) error
	LockGroup(ctx context.Context, adminID, chatID int64) error
	UnlockGroup(ctx context.Context, adminID, chatID int64) error
	ProtectionOverview(ctx context.Context, chatID int64) (Overview, error)

	AddWhitelistLink(ctx context.Context, adminID int64, link string) (bool, error)
	RemoveWhitelistLink(ctx context.Context, adminID int64, link string) (bool, error)
	ListWhitelistLinks(ctx context.Context) ([]string, error)
	AddKeyword(ctx context.Context, adminID int64, keyword string) (bool, error)
	RemoveKeyword(ctx context.Context, adminID int64, keyword string) (bool, error)
	ListKeywords(ctx context.Context) ([]string, error)

	StartLimiterSweep(ctx context.Context)
}

// Overview is the snapshot rendered by /check_settings.
type Overview struct {
	LinkProtection      bool
	InviteProtection    bool
	KeywordProtection   bool
	MediaSpamProtection bool
	FloodProtection     bool
	FloodMessageLimit   int
	FloodTimeWindow     time.Duration
	WarningLimit        int
	GroupLocked         bool
}

var _ Service = (*ModerationService)(nil)

type ModerationService struct {
	logger       *slog.Logger
	settings     *settings.Store
	registryRepo repository.RegistryRepository
	warningRepo  repository.WarningRepository
	auditRepo    repository.AdminActionRepository
	chatLogRepo  repository.ChatLogRepository
	limiter      *ratelimit.Limiter
	pipeline     *pipeline.Manager
	effects      Effects
	tracer       trace.Tracer
}

func NewModerationService(
	logger *slog.Logger,
	store *settings.Store,
	registryRepo repository.RegistryRepository,
	warningRepo repository.WarningRepository,
	auditRepo repository.AdminActionRepository,
	chatLogRepo repository.ChatLogRepository,
	effects Effects,
) *ModerationService {

	limiter := ratelimit.NewLimiter()

	// the flood filter goes last: it is the only stateful filter and must
	// not count messages an earlier filter already removed
	pm := pipeline.NewManager(logger,
		filters.NewLockFilter(store),
		filters.NewLinkFilter(store, registryRepo),
		filters.NewInviteFilter(store),
		filters.NewKeywordFilter(store, registryRepo),
		filters.NewMediaFilter(store),
		filters.NewFloodFilter(store, limiter),
	)

	return &ModerationService{
		logger:       logger,
		settings:     store,
		registryRepo: registryRepo,
		warningRepo:  warningRepo,
		auditRepo:    auditRepo,
		chatLogRepo:  chatLogRepo,
		limiter:      limiter,
		pipeline:     pm,
		effects:      effects,
		tracer:       otel.Tracer("service"),
	}
}

// ModerateMessage runs the event through the filter chain and, if a filter
// blocked it, performs the paired delete and notify effects. A failed delete
// does not resurrect the chain: the match already happened.
func (s *ModerationService) ModerateMessage(ctx context.Context, payload pipeline.Payload) (*pipeline.Result, error) {
	ctx, span := s.tracer.Start(ctx, "ModerateMessage")
	defer span.End()

	s.logger.Debug("Moderating message", "chat_id", payload.ChatID, "user_id", payload.SenderID)

	res := s.pipeline.Process(ctx, payload)
	if res.IsAllowed {
		return res, nil
	}

	s.logger.Info("Message blocked",
		"chat_id", payload.ChatID,
		"user_id", payload.SenderID,
		"filter", res.FilterName,
		"reason", res.Reason,
	)

	if res.ShouldDelete {
		if err := s.effects.DeleteMessage(ctx, payload.ChatID, payload.MessageID); err != nil {
			s.logger.Error("Failed to delete message",
				"chat_id", payload.ChatID, "message_id", payload.MessageID, "error", err)
		} else {
			metrics.IncDeletedMessages(res.FilterName)
		}
	}
	if res.ShouldNotify && res.Notification != "" {
		if err := s.effects.Notify(ctx, payload.ChatID, res.Notification); err != nil {
			s.logger.Error("Failed to notify chat", "chat_id", payload.ChatID, "error", err)
		} else {
			metrics.IncBotAction("notify")
		}
	}

	return res, nil
}

// LogChatMessage records the message text for the chat log, best-effort.
func (s *ModerationService) LogChatMessage(ctx context.Context, payload pipeline.Payload) {
	if payload.Text == "" {
		return
	}
	err := s.chatLogRepo.Add(ctx, payload.MessageID, payload.ChatID, payload.SenderID,
		payload.SenderName, payload.Text, payload.SentAt)
	if err != nil {
		s.logger.Warn("Failed to log chat message", "chat_id", payload.ChatID, "error", err)
	}
}

func (s *ModerationService) IssueWarning(ctx context.Context, userID, groupID, adminID int64, reason string) (int, bool, error) {
	ctx, span := s.tracer.Start(ctx, "IssueWarning")
	defer span.End()

	count, err := s.warningRepo.Add(ctx, userID, groupID, adminID, reason)
	if err != nil {
		return 0, false, err
	}
	metrics.WarningsIssued.Inc()
	s.audit(ctx, adminID, "issued warning", userID)

	limit, err := s.settings.WarningLimit()
	if err != nil {
		// the warning is already recorded, report it without escalation
		s.logger.Error("Failed to read warning limit", "error", err)
		return count, false, nil
	}

	escalated := count >= limit
	if escalated {
		metrics.Escalations.Inc()
		s.logger.Warn("User reached the warning limit",
			"user_id", userID, "group_id", groupID, "count", count, "limit", limit)
	}
	return count, escalated, nil
}

func (s *ModerationService) ListWarnings(ctx context.Context, userID int64) ([]repository.Warning, error) {
	ctx, span := s.tracer.Start(ctx, "ListWarnings")
	defer span.End()
	return s.warningRepo.ListByUser(ctx, userID)
}

// protectionKeys maps the admin-facing feature names to settings keys.
var protectionKeys = map[string]string{
	"link":    settings.KeyLinkProtection,
	"invite":  settings.KeyInviteProtection,
	"keyword": settings.KeyKeywordProtection,
	"media":   settings.KeyMediaSpamProtection,
	"flood":   settings.KeyFloodProtection,
}

func (s *ModerationService) ToggleProtection(ctx context.Context, adminID int64, feature string, enabled bool) error {
	ctx, span := s.tracer.Start(ctx, "ToggleProtection")
	defer span.End()

	key, ok := protectionKeys[feature]
	if !ok {
		return fmt.Errorf("unknown protection feature %q", feature)
	}
	if err := s.settings.SetToggle(key, enabled); err != nil {
		return err
	}
	s.audit(ctx, adminID, fmt.Sprintf("toggled %s to %v", key, enabled), 0)
	return nil
}

func (s *ModerationService) SetFloodLimit(ctx context.Context, adminID int64, limit, seconds int) error {
	ctx, span := s.tracer.Start(ctx, "SetFloodLimit")
	defer span.End()

	if err := s.settings.SetFloodLimits(limit, seconds); err != nil {
		return err
	}
	s.audit(ctx, adminID, fmt.Sprintf("set flood limit to %d/%ds", limit, seconds), 0)
	return nil
}

func (s *ModerationService) SetWarningLimit(ctx context.Context, adminID int64, limit int) error {
	ctx, span := s.tracer.Start(ctx, "SetWarningLimit")
	defer span.End()

	if err := s.settings.SetWarningLimit(limit); err != nil {
		return err
	}
	s.audit(ctx, adminID, fmt.Sprintf("set warning limit to %d", limit), 0)
	return nil
}

func (s *ModerationService) LockGroup(ctx context.Context, adminID, chatID int64) error {
	ctx, span := s.tracer.Start(ctx, "LockGroup")
	defer span.End()

	if err := s.settings.SetGroupLocked(chatID, true); err != nil {
		return err
	}
	s.audit(ctx, adminID, "locked group", chatID)
	return nil
}

func (s *ModerationService) UnlockGroup(ctx context.Context, adminID, chatID int64) error {
	ctx, span := s.tracer.Start(ctx, "UnlockGroup")
	defer span.End()

	if err := s.settings.SetGroupLocked(chatID, false); err != nil {
		return err
	}
	s.audit(ctx, adminID, "unlocked group", chatID)
	return nil
}

func (s *ModerationService) ProtectionOverview(ctx context.Context, chatID int64) (Overview, error) {
	_, span := s.tracer.Start(ctx, "ProtectionOverview")
	defer span.End()

	var o Overview
	var err error
	if o.LinkProtection, err = s.settings.LinkProtection(); err != nil {
		return o, err
	}
	if o.InviteProtection, err = s.settings.InviteProtection(); err != nil {
		return o, err
	}
	if o.KeywordProtection, err = s.settings.KeywordProtection(); err != nil {
		return o, err
	}
	if o.MediaSpamProtection, err = s.settings.MediaSpamProtection(); err != nil {
		return o, err
	}
	if o.FloodProtection, err = s.settings.FloodProtection(); err != nil {
		return o, err
	}
	if o.FloodMessageLimit, o.FloodTimeWindow, err = s.settings.FloodLimits(); err != nil {
		return o, err
	}
	if o.WarningLimit, err = s.settings.WarningLimit(); err != nil {
		return o, err
	}
	if o.GroupLocked, err = s.settings.GroupLocked(chatID); err != nil {
		return o, err
	}
	return o, nil
}

func (s *ModerationService) AddWhitelistLink(ctx context.Context, adminID int64, link string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "AddWhitelistLink")
	defer span.End()

	added, err := s.registryRepo.AddLink(link)
	if err != nil {
		return false, err
	}
	if added {
		s.audit(ctx, adminID, fmt.Sprintf("whitelisted link %q", link), 0)
	}
	return added, nil
}

func (s *ModerationService) RemoveWhitelistLink(ctx context.Context, adminID int64, link string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "RemoveWhitelistLink")
	defer span.End()

	removed, err := s.registryRepo.RemoveLink(link)
	if err != nil {
		return false, err
	}
	if removed {
		s.audit(ctx, adminID, fmt.Sprintf("removed whitelisted link %q", link), 0)
	}
	return removed, nil
}

func (s *ModerationService) ListWhitelistLinks(ctx context.Context) ([]string, error) {
	_, span := s.tracer.Start(ctx, "ListWhitelistLinks")
	defer span.End()
	return s.registryRepo.ListLinks()
}

func (s *ModerationService) AddKeyword(ctx context.Context, adminID int64, keyword string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "AddKeyword")
	defer span.End()

	added, err := s.registryRepo.AddKeyword(keyword)
	if err != nil {
		return false, err
	}
	if added {
		s.audit(ctx, adminID, fmt.Sprintf("added keyword %q", keyword), 0)
	}
	return added, nil
}

func (s *ModerationService) RemoveKeyword(ctx context.Context, adminID int64, keyword string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "RemoveKeyword")
	defer span.End()

	removed, err := s.registryRepo.RemoveKeyword(keyword)
	if err != nil {
		return false, err
	}
	if removed {
		s.audit(ctx, adminID, fmt.Sprintf("removed keyword %q", keyword), 0)
	}
	return removed, nil
}

func (s *ModerationService) ListKeywords(ctx context.Context) ([]string, error) {
	_, span := s.tracer.Start(ctx, "ListKeywords")
	defer span.End()
	return s.registryRepo.ListKeywords()
}

// StartLimiterSweep prunes idle flood windows every few minutes so the
// per-user table does not grow for the lifetime of the process.
func (s *ModerationService) StartLimiterSweep(ctx context.Context) {
	s.limiter.StartSweeper(ctx, 5*time.Minute, 10*time.Minute, func(removed, remaining int) {
		metrics.SetRateWindows(float64(remaining))
		if removed > 0 {
			s.logger.Debug("Pruned idle flood windows", "removed", removed, "remaining", remaining)
		}
	})
}

func (s *ModerationService) audit(ctx context.Context, adminID int64, action string, targetID int64) {
	if err := s.auditRepo.Add(ctx, adminID, action, targetID); err != nil {
		s.logger.Warn("Failed to record admin action", "admin_id", adminID, "action", action, "error", err)
	}
}
