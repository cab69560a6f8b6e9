package signal

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

// handleUpdateLanguage changes the caller's preferred language. A payload
// without a language is ack-only: the current preference is echoed back
// and nothing changes.
func (ctl *Controller) handleUpdateLanguage(connID domain.ConnID, data json.RawMessage) {
	var p protocol.UpdateLanguagePreferencePayload
	if len(data) > 0 {
		if err := json.Unmarshal(data, &p); err != nil {
			log.Warn().Err(err).Str("module", "signal").Str("conn", string(connID)).Msg("bad language payload")
			return
		}
	}

	if p.Language != "" {
		if !ctl.Registry.UpdateLanguage(connID, p.Language) {
			return
		}
		ctl.send(connID, protocol.EventLanguagePreferenceUpdated, protocol.LanguagePreferenceUpdated{
			Language: p.Language,
		})
		return
	}

	s, ok := ctl.sender(connID)
	if !ok {
		return
	}
	ctl.send(connID, protocol.EventLanguagePreferenceUpdated, protocol.LanguagePreferenceUpdated{
		Language: s.PreferredLanguage,
	})
}
