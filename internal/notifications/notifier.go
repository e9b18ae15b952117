// internal/notifications/notifier.go - Alerting on validation failures with critical/standard channels
package notifications

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"windexer-jito/internal/config"
	"windexer-jito/internal/types"
)

type NotificationLevel int

const (
	LevelStandard NotificationLevel = iota
	LevelCritical
)

func (l NotificationLevel) String() string {
	if l == LevelCritical {
		return "CRITICAL"
	}
	return "STANDARD"
}

type Notifier struct {
	standardShoutrrr *ShoutrrrNotifier
	criticalShoutrrr *ShoutrrrNotifier
	logger           *slog.Logger

	muteRepeating bool
	muteWindow    time.Duration
	now           func() time.Time

	// Muting state
	mutex       sync.Mutex
	mutedAlerts map[string]time.Time
}

func New(cfg *config.Config, logger *slog.Logger) *Notifier {
	return newNotifier(
		NewShoutrrrNotifier(cfg.ShoutrrrURLs, logger),
		NewShoutrrrNotifier(cfg.CriticalShoutrrrURLs, logger),
		cfg.MuteRepeatingEvents,
		cfg.MuteWindow,
		logger,
	)
}

func newNotifier(standard, critical *ShoutrrrNotifier, muteRepeating bool, muteWindow time.Duration, logger *slog.Logger) *Notifier {
	return &Notifier{
		standardShoutrrr: standard,
		criticalShoutrrr: critical,
		logger:           logger,
		muteRepeating:    muteRepeating,
		muteWindow:       muteWindow,
		now:              time.Now,
		mutedAlerts:      make(map[string]time.Time),
	}
}

func (n *Notifier) Send(message, notificationType string) {
	n.SendWithLevel(message, notificationType, LevelStandard)
}

func (n *Notifier) SendCritical(message, notificationType string) {
	n.SendWithLevel(message, notificationType, LevelCritical)
}

func (n *Notifier) SendWithLevel(message, notificationType string, level NotificationLevel) {
	if n.muteRepeating && n.shouldMute(notificationType, level) {
		n.logger.Debug("Notification muted",
			"type", notificationType,
			"level", level,
			"message_preview", preview(message, 50))
		return
	}

	n.logger.Info("Sending notification",
		"type", notificationType,
		"level", level,
		"message_length", len(message))

	n.standardShoutrrr.Send(message)
	if level == LevelCritical {
		n.criticalShoutrrr.Send(message)
	}
}

// shouldMute reports whether a standard notification of this type went out
// within the mute window, and records the send otherwise. Critical
// notifications are never muted.
func (n *Notifier) shouldMute(notificationType string, level NotificationLevel) bool {
	if level == LevelCritical {
		return false
	}

	n.mutex.Lock()
	defer n.mutex.Unlock()

	now := n.now()
	if lastSent, exists := n.mutedAlerts[notificationType]; exists && now.Sub(lastSent) < n.muteWindow {
		return true
	}
	n.mutedAlerts[notificationType] = now
	return false
}

// IsCriticalNotification reports whether failures of this kind go to the
// critical channel as well.
func (n *Notifier) IsCriticalNotification(kind types.ErrorKind) bool {
	switch kind {
	case types.KindConsensus, types.KindReward, types.KindConfig:
		return true
	default:
		return false
	}
}

// ObserveValidation alerts on failed validations and on slots that did not
// reach consensus. Successful validations are silent.
func (n *Notifier) ObserveValidation(ev types.ValidationEvent) {
	switch ev.Outcome() {
	case "error":
		kind := types.KindOf(ev.Err)
		notificationType := kind.Label() + "_failure"
		message := fmt.Sprintf("Validation failed for slot %d\nStage: %s\nError: %v",
			ev.Data.Slot, strings.ToLower(kind.String()), ev.Err)
		if n.IsCriticalNotification(kind) {
			n.SendCritical(message, notificationType)
		} else {
			n.Send(message, notificationType)
		}
	case "invalid":
		message := fmt.Sprintf("Consensus not reached for slot %d\nConsensus: %.2f%%\nParticipating stake: %d",
			ev.Data.Slot, ev.Result.ConsensusPercentage, ev.Result.ParticipatingStake)
		n.Send(message, "consensus_not_reached")
	}
}

// preview returns at most limit bytes of message, cut on a rune boundary.
func preview(message string, limit int) string {
	if len(message) <= limit {
		return message
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(message[cut]) {
		cut--
	}
	return message[:cut]
}
