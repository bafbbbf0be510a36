package monitoring

import (
	"github.com/rs/zerolog/log"
)

// Alert raises an operator-facing alert. For now it logs at error level;
// the log stream is what the alerting pipeline tails.
func Alert(message string, labels map[string]string) {
	log.Error().
		Str("alert", message).
		Fields(labels).
		Msg("ALERT")
}
