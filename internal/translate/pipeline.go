// Package translate holds the attachment point for the real-time
// audio/translation stage. The stage itself is an external collaborator
// that negotiates its own message subset; the relay only guarantees it is
// attached once per connection, after registration and before any room
// events are relayed, with the shared registry by reference.
package translate

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// Noop satisfies core.Pipeline for deployments without a media stage.
type Noop struct{}

func (Noop) Attach(context.Context, domain.ConnID, core.SessionDirectory) {}

// Logged wraps a pipeline and records every attachment, mostly useful in
// debug mode to confirm the once-per-connection guarantee.
type Logged struct {
	Next core.Pipeline
}

func (p Logged) Attach(ctx context.Context, id domain.ConnID, sessions core.SessionDirectory) {
	lang := domain.DefaultLanguage
	if s, ok := sessions.Get(id); ok {
		lang = s.PreferredLanguage
	}
	log.Info().Str("module", "translate").Str("conn", string(id)).
		Str("language", lang).Msg("pipeline attached")
	if p.Next != nil {
		p.Next.Attach(ctx, id, sessions)
	}
}
