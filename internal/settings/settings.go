// Package settings gives the stringly-typed settings table a typed surface.
// Filters and services never touch raw keys or "on"/"off" literals.
package settings

import (
	"fmt"
	"strconv"
	"time"

	"guardian-bot/internal/repository"
)

const (
	KeyLinkProtection      = "link_protection"
	KeyInviteProtection    = "invite_protection"
	KeyKeywordProtection   = "keyword_protection"
	KeyMediaSpamProtection = "media_spam_protection"
	KeyFloodProtection     = "flood_protection"
	KeyFloodMessageLimit   = "flood_message_limit"
	KeyFloodTimeWindow     = "flood_time_window"
	KeyWarningLimit        = "warning_limit"

	lockGroupPrefix = "lock_group_"

	on  = "on"
	off = "off"
)

const (
	DefaultFloodMessageLimit = 3
	DefaultFloodTimeWindow   = 5 // seconds
	DefaultWarningLimit      = 3
)

type Store struct {
	repo repository.SettingsRepository
}

func NewStore(repo repository.SettingsRepository) *Store {
	return &Store{repo: repo}
}

func LockGroupKey(chatID int64) string {
	return fmt.Sprintf("%s%d", lockGroupPrefix, chatID)
}

func (s *Store) toggle(key string) (bool, error) {
	value, err := s.repo.Get(key, off)
	if err != nil {
		return false, err
	}
	return value == on, nil
}

func (s *Store) integer(key string, defaultValue int) (int, error) {
	value, err := s.repo.Get(key, strconv.Itoa(defaultValue))
	if err != nil {
		return defaultValue, err
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		// a malformed row never disables the protection, the documented
		// default applies
		return defaultValue, nil
	}
	return n, nil
}

func (s *Store) LinkProtection() (bool, error)      { return s.toggle(KeyLinkProtection) }
func (s *Store) InviteProtection() (bool, error)    { return s.toggle(KeyInviteProtection) }
func (s *Store) KeywordProtection() (bool, error)   { return s.toggle(KeyKeywordProtection) }
func (s *Store) MediaSpamProtection() (bool, error) { return s.toggle(KeyMediaSpamProtection) }
func (s *Store) FloodProtection() (bool, error)     { return s.toggle(KeyFloodProtection) }

func (s *Store) GroupLocked(chatID int64) (bool, error) {
	return s.toggle(LockGroupKey(chatID))
}

func (s *Store) FloodLimits() (limit int, window time.Duration, err error) {
	limit, err = s.integer(KeyFloodMessageLimit, DefaultFloodMessageLimit)
	if err != nil {
		return 0, 0, err
	}
	seconds, err := s.integer(KeyFloodTimeWindow, DefaultFloodTimeWindow)
	if err != nil {
		return 0, 0, err
	}
	return limit, time.Duration(seconds) * time.Second, nil
}

func (s *Store) WarningLimit() (int, error) {
	return s.integer(KeyWarningLimit, DefaultWarningLimit)
}

func (s *Store) SetToggle(key string, enabled bool) error {
	value := off
	if enabled {
		value = on
	}
	return s.repo.Set(key, value)
}

func (s *Store) SetGroupLocked(chatID int64, locked bool) error {
	return s.SetToggle(LockGroupKey(chatID), locked)
}

func (s *Store) SetFloodLimits(limit, seconds int) error {
	if limit < 1 || seconds < 1 {
		return fmt.Errorf("flood limits must be positive, got %d/%d", limit, seconds)
	}
	if err := s.repo.Set(KeyFloodMessageLimit, strconv.Itoa(limit)); err != nil {
		return err
	}
	return s.repo.Set(KeyFloodTimeWindow, strconv.Itoa(seconds))
}

func (s *Store) SetWarningLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("warning limit must be positive, got %d", limit)
	}
	return s.repo.Set(KeyWarningLimit, strconv.Itoa(limit))
}
