// Package signal is the event-handling core of the relay: it decodes
// inbound frames, resolves targets through the registry and room
// directory, and emits outbound frames into the transport. It keeps no
// state of its own.
package signal

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/adapters/ws"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/app"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/auth"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/config"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/core"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/protocol"
)

type Controller struct {
	Registry  *app.Registry
	Rooms     *app.Directory
	Hub       *ws.Hub
	Transport core.Transport
	Life      *app.Lifecycle
	Verifier  core.Verifier

	cfg      *config.Config
	upgrader websocket.Upgrader
}

func NewController(cfg *config.Config, reg *app.Registry, rooms *app.Directory, hub *ws.Hub, life *app.Lifecycle, verifier core.Verifier) *Controller {
	ctl := &Controller{
		Registry:  reg,
		Rooms:     rooms,
		Hub:       hub,
		Transport: hub,
		Life:      life,
		Verifier:  verifier,
		cfg:       cfg,
	}
	ctl.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			if len(cfg.AllowedOrigins) == 0 {
				return true
			}
			return lo.Contains(cfg.AllowedOrigins, r.Header.Get("Origin"))
		},
	}
	return ctl
}

func credentialFrom(c *gin.Context) string {
	if token := c.Query("token"); token != "" {
		return token
	}
	authz := c.GetHeader("Authorization")
	if len(authz) > 7 && authz[:7] == "Bearer " {
		return authz[7:]
	}
	return ""
}

// HandleWS admits one signaling connection: verify credential, upgrade,
// register, pump. Verification failure rejects the connection before any
// registry state exists.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	identity, err := ctl.Verifier.Verify(credentialFrom(c))
	if err != nil {
		status := "credential invalid"
		if errors.Is(err, auth.ErrNoCredential) {
			status = "no credential supplied"
		}
		log.Warn().Err(err).Str("module", "signal").Msg("connection rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": status})
		return
	}

	sock, err := ctl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}

	connID := domain.ConnID(uuid.NewString())
	conn := ctl.Hub.Add(connID, sock)
	ctl.Life.Admit(ctx, connID, identity)

	connCtx, cancel := context.WithCancel(ctx)
	go conn.WritePump(connCtx, ctl.cfg.PingPeriod)
	go func() {
		defer cancel()
		pongWait := ctl.cfg.PingPeriod * 10 / 9
		conn.ReadPump(connCtx, ctl.cfg.ReadLimit, pongWait, func(data []byte) {
			ctl.HandleEvent(connID, data)
		})
		ctl.Hub.Remove(connID)
		ctl.Life.OnDisconnect(connID)
	}()
}

// HandleEvent dispatches one inbound frame. Every failure here is
// non-fatal: malformed envelopes and unknown kinds are logged and
// absorbed, never crashing the connection.
func (ctl *Controller) HandleEvent(connID domain.ConnID, data []byte) {
	var env protocol.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(connID)).Msg("bad envelope")
		return
	}

	switch env.Event {
	case protocol.EventUpdateLanguagePreference:
		ctl.handleUpdateLanguage(connID, env.Data)
	case protocol.EventJoinRoom:
		ctl.handleJoinRoom(connID, env.Data)
	case protocol.EventLeaveRoom:
		ctl.handleLeaveRoom(connID, env.Data)
	case protocol.EventSendMessage:
		ctl.handleSendMessage(connID, env.Data)
	case protocol.EventTyping:
		ctl.handleTyping(connID, env.Data)
	case protocol.EventCallUser:
		ctl.handleCallUser(connID, env.Data)
	case protocol.EventAnswerCall:
		ctl.handleAnswerCall(connID, env.Data)
	case protocol.EventIceCandidate:
		ctl.handleIceCandidate(connID, env.Data)
	case protocol.EventEndCall:
		ctl.handleEndCall(connID, env.Data)
	case protocol.EventIncomingCallAck:
		ctl.handleIncomingCallAck(connID, env.Data)
	case protocol.EventJoinGroupCall:
		ctl.handleJoinGroupCall(connID, env.Data)
	case protocol.EventLeaveGroupCall:
		ctl.handleLeaveGroupCall(connID, env.Data)
	case protocol.EventGroupCallOffer:
		ctl.handleGroupCallOffer(connID, env.Data)
	case protocol.EventGroupCallAnswer:
		ctl.handleGroupCallAnswer(connID, env.Data)
	case protocol.EventGroupCallIceCandidate:
		ctl.handleGroupCallIceCandidate(connID, env.Data)
	case protocol.EventGroupCallSpeaking:
		ctl.handleGroupCallSpeaking(connID, env.Data)
	default:
		log.Warn().Str("module", "signal").Str("event", string(env.Event)).Msg("unknown event")
	}
}

// sender resolves the registry identity behind a connection. Events from
// a connection the registry no longer knows are dropped.
func (ctl *Controller) sender(connID domain.ConnID) (domain.Session, bool) {
	s, ok := ctl.Registry.Get(connID)
	if !ok {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).Msg("event from unregistered connection")
	}
	return s, ok
}

// send encodes and unicasts; reports whether the target channel is live.
func (ctl *Controller) send(connID domain.ConnID, kind protocol.EventKind, payload any) bool {
	frame, err := protocol.Encode(kind, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", string(kind)).Msg("encode")
		return false
	}
	return ctl.Transport.Unicast(connID, frame)
}

// decodePayload fills p from raw event data. A missing data object or a
// parse failure is a malformed event: the handler becomes a no-op.
func decodePayload(connID domain.ConnID, kind protocol.EventKind, data json.RawMessage, p any) bool {
	if len(data) == 0 {
		log.Warn().Str("module", "signal").Str("conn", string(connID)).
			Str("event", string(kind)).Msg("missing payload")
		return false
	}
	if err := json.Unmarshal(data, p); err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(connID)).
			Str("event", string(kind)).Msg("bad payload")
		return false
	}
	return true
}

func (ctl *Controller) broadcast(group string, kind protocol.EventKind, payload any, except domain.ConnID) {
	frame, err := protocol.Encode(kind, payload)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("event", string(kind)).Msg("encode")
		return
	}
	ctl.Transport.Broadcast(group, frame, except)
}
