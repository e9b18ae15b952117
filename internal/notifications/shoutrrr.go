// internal/notifications/shoutrrr.go - Shoutrrr notification handling
package notifications

import (
	"log/slog"

	"github.com/containrrr/shoutrrr"
	shoutrrrtypes "github.com/containrrr/shoutrrr/pkg/types"
	"github.com/pkg/errors"
)

type sender interface {
	Send(message string, params *shoutrrrtypes.Params) []error
}

type ShoutrrrNotifier struct {
	senders []sender
	logger  *slog.Logger
}

// NewShoutrrrNotifier builds one sender per URL. URLs that fail to parse are
// logged and skipped.
func NewShoutrrrNotifier(urls []string, logger *slog.Logger) *ShoutrrrNotifier {
	var senders []sender

	for _, url := range urls {
		s, err := shoutrrr.CreateSender(url)
		if err != nil {
			logger.Warn("Failed to create Shoutrrr sender", "error", errors.WithMessage(err, redact(url)))
			continue
		}
		senders = append(senders, s)
	}

	return &ShoutrrrNotifier{
		senders: senders,
		logger:  logger,
	}
}

func (s *ShoutrrrNotifier) Enabled() bool {
	return s != nil && len(s.senders) > 0
}

func (s *ShoutrrrNotifier) Send(message string) {
	if s == nil {
		return
	}
	for _, snd := range s.senders {
		for _, err := range snd.Send(message, nil) {
			if err != nil {
				s.logger.Warn("Failed to send Shoutrrr notification", "error", err)
			}
		}
	}
}

// redact keeps only the service scheme so tokens embedded in URLs never reach
// the logs.
func redact(url string) string {
	for i := 0; i+2 < len(url); i++ {
		if url[i:i+3] == "://" {
			return url[:i] + "://***"
		}
	}
	return "***"
}
