package api

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/sqlc-dev/pqtype"

	"github.com/saeidalz13/battleship-solo/db/sqlc"
	mb "github.com/saeidalz13/battleship-solo/models/battleship"
	mc "github.com/saeidalz13/battleship-solo/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"

	StageDev  = "dev"
	StageProd = "prod"
)

type RequestProcessor struct {
	sessionManager mc.SessionManager
	matchManager   mb.MatchManager
	analytics      *sqlc.AnalyticsManager
	upgrader       websocket.Upgrader
	allowedOrigins map[string]bool
	stage          string
	ipnet          net.IPNet
}

type Option func(*RequestProcessor)

// WithStage restricts websocket origins to the allowed ones in prod.
func WithStage(stage string) Option {
	return func(rp *RequestProcessor) {
		rp.stage = stage
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(rp *RequestProcessor) {
		for _, origin := range origins {
			if origin == "" {
				continue
			}
			rp.allowedOrigins[origin] = true
		}
	}
}

// NewRequestProcessor wires the managers into a websocket handler. analytics
// may be nil, in which case no counters are recorded.
func NewRequestProcessor(
	sessionManager mc.SessionManager,
	matchManager mb.MatchManager,
	analytics *sqlc.AnalyticsManager,
	opts ...Option,
) *RequestProcessor {
	rp := &RequestProcessor{
		sessionManager: sessionManager,
		matchManager:   matchManager,
		analytics:      analytics,
		allowedOrigins: make(map[string]bool),
		stage:          StageDev,
		upgrader: websocket.Upgrader{
			// good average time since this is not a high-latency operation such as video streaming
			HandshakeTimeout: time.Second * 5,
			ReadBufferSize:   2048,
			WriteBufferSize:  2048,
		},
	}
	for _, opt := range opts {
		opt(rp)
	}

	rp.upgrader.CheckOrigin = rp.checkOrigin
	rp.ipnet = findServerIpNet()
	return rp
}

func (rp *RequestProcessor) checkOrigin(r *http.Request) bool {
	if rp.stage != StageProd {
		return true
	}
	return rp.allowedOrigins[r.Header.Get("Origin")]
}

// findServerIpNet returns the first non-loopback IPv4 network of this host.
// Hosts without one (CI containers mostly) fall back to loopback.
func findServerIpNet() net.IPNet {
	fallback := net.IPNet{IP: net.IPv4(127, 0, 0, 1), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warn().Err(err).Msg("failed to list interfaces; using loopback")
		return fallback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ipnet.IP.To4() != nil && !ipnet.IP.IsLoopback() {
				return *ipnet
			}
		}
	}

	return fallback
}

func (rp *RequestProcessor) ServerInet() pqtype.Inet {
	return pqtype.Inet{IPNet: rp.ipnet, Valid: true}
}

func (rp *RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := rp.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied to the client
		log.Warn().Err(err).Str("remote_addr", r.RemoteAddr).Msg("could not open websocket connection")
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	if sessionIdQuery == "" {
		log.Info().Str("remote_addr", conn.RemoteAddr().String()).Msg("new connection established")
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
		return
	}

	if err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
		log.Info().Err(err).Str("session_id", sessionIdQuery).Msg("reconnection rejected")

		msg := mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID)
		msg.AddErr(err, "session expired or does not exist")
		_ = conn.WriteJSON(msg)
		conn.Close()
	}
}

func (rp *RequestProcessor) recordAnalytics(record func(ctx context.Context, a *sqlc.AnalyticsManager, ip pqtype.Inet) error) {
	if rp.analytics == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// analytics never end a match
	if err := record(ctx, rp.analytics, rp.ServerInet()); err != nil {
		log.Error().Err(err).Msg("failed to record analytics")
	}
}

func (rp *RequestProcessor) processSessionRequests(session *mc.Session) {
	sessionId := session.Id()

	defer func() {
		if match := session.Match(); match != nil {
			rp.matchManager.TerminateMatch(match.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		log.Info().Str("session_id", sessionId).Msg("session closed")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		var signal mc.Signal
		if err := json.Unmarshal(payload, &signal); err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err = rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		req := NewRequest(payload)
		var respMsg interface{}

		switch signal.Code {
		case mc.CodeCreateMatch:
			match, msg := req.HandleCreateMatch(rp.matchManager)
			if !msg.Failed() {
				if previous := session.Match(); previous != nil {
					rp.matchManager.TerminateMatch(previous.Uuid())
				}
				session.SetMatch(match)
				rp.recordAnalytics(func(ctx context.Context, a *sqlc.AnalyticsManager, ip pqtype.Inet) error {
					return a.IncrementMatchesCreatedCount(ctx, ip)
				})
			}
			respMsg = msg

		case mc.CodeSetDifficulty:
			respMsg = req.HandleSetDifficulty(session.Match())

		case mc.CodePlaceShip:
			msg := req.HandlePlaceShip(session.Match())
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if !msg.Failed() && msg.Payload.Phase == mb.PhaseFiring {
				respMsg = mc.NewMessage[mc.NoPayload](mc.CodeStartFiring)
			}

		case mc.CodePlaceFleetRandomly:
			msg := req.HandlePlaceFleetRandomly(session.Match())
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if !msg.Failed() {
				respMsg = mc.NewMessage[mc.NoPayload](mc.CodeStartFiring)
			}

		case mc.CodeFire:
			msg := req.HandleFire(session.Match())
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if msg.Failed() || msg.Payload.Phase != mb.PhaseFinished {
				continue sessionLoop
			}

			endMsg := req.HandleEndMatch(session.Match())
			if !endMsg.Failed() {
				humanWon := endMsg.Payload.Winner == mb.PlayerHuman
				rp.recordAnalytics(func(ctx context.Context, a *sqlc.AnalyticsManager, ip pqtype.Inet) error {
					return a.IncrementWinsCount(ctx, ip, humanWon)
				})
			}
			respMsg = endMsg

		case mc.CodeRestartMatch:
			match, msg := req.HandleRestartMatch(rp.matchManager, session.Match())
			if !msg.Failed() {
				session.SetMatch(match)
				rp.recordAnalytics(func(ctx context.Context, a *sqlc.AnalyticsManager, ip pqtype.Inet) error {
					return a.IncrementMatchesRestartedCount(ctx, ip)
				})
			}
			respMsg = msg

		case mc.CodeMatchState:
			respMsg = req.HandleMatchState(session.Match())

		case mc.CodeEndMatch:
			// the client leaves; the deferred cleanup drops the match
			break sessionLoop

		default:
			msg := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			msg.AddError("", "invalid code in the incoming payload")
			respMsg = msg
		}

		if respMsg == nil {
			continue sessionLoop
		}
		if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
			break sessionLoop
		}
	}
}
