package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
	"github.com/rocketscienceinc/tictactoe/internal/notify"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512

	shutdownTimeout = 5 * time.Second
)

// Mirror - extra collaborators for a new session, e.g. the event feed.
// Either result may be nil.
type Mirror func(sessionID string) (usecase.Notifier, usecase.SoundPlayer)

type handler func(ctx context.Context, sess *session, msg *Message) error

// Server gives every WebSocket connection its own game screen. Both players
// share that screen, so a connection is one board, not one player.
type Server struct {
	logger   *slog.Logger
	mirror   Mirror
	upgrader websocket.Upgrader

	handlers map[string]handler
}

func New(logger *slog.Logger, mirror Mirror) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		mirror: mirror,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}

	server.handlers = map[string]handler{
		actionConnect: server.handleConnect,
		actionTurn:    server.handleGameTurn,
		actionReload:  server.handleGameReload,
	}

	return server
}

// Handler - the /ws route.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.serveWS)

	return mux
}

// Start - starts WebSocket server and shuts it down when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

type session struct {
	id     string
	conn   *websocket.Conn
	screen *usecase.Screen

	writeMu sync.Mutex
}

func (that *session) Notify(_ context.Context, toast entity.Toast) error {
	return that.sendMessage(actionToast, Payload{Toast: &toast})
}

func (that *session) Play(_ context.Context, cue entity.Cue) error {
	return that.sendMessage(actionSound, Payload{Cue: cue})
}

func (that *Server) newSession(conn *websocket.Conn) *session {
	sess := &session{
		id:   uuid.NewString(),
		conn: conn,
	}

	var (
		mirrorNotifier usecase.Notifier
		mirrorPlayer   usecase.SoundPlayer
	)
	if that.mirror != nil {
		mirrorNotifier, mirrorPlayer = that.mirror(sess.id)
	}

	logger := that.logger.With("session", sess.id)
	sess.screen = usecase.NewScreen(logger,
		notify.Toasts(sess, mirrorNotifier),
		notify.Cues(sess, mirrorPlayer),
	)

	return sess
}

// serveWS - upgrades the connection and runs its session until either side closes it.
func (that *Server) serveWS(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "serveWS")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	sess := that.newSession(conn)
	log = log.With("session", sess.id)
	log.Info("WebSocket connection established")

	ctx, cancel := context.WithCancel(req.Context())
	defer cancel()

	go that.keepAlive(ctx, sess)

	if err = that.handleMessages(ctx, sess); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// keepAlive - pings the peer and closes the connection once ctx is done.
func (that *Server) keepAlive(ctx context.Context, sess *session) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = sess.conn.Close()
			return
		case <-ticker.C:
			if err := sess.ping(); err != nil {
				that.logger.Debug("ping failed", "session", sess.id, "error", err)
				_ = sess.conn.Close()
				return
			}
		}
	}
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, sess *session) error {
	log := that.logger.With("method", "handleMessages", "session", sess.id)

	sess.conn.SetReadLimit(maxMessageSize)
	_ = sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	sess.conn.SetPongHandler(func(string) error {
		return sess.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := sess.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Warn("malformed message", "error", err)
			if err = sess.sendErrorResponse(actionError, "malformed message"); err != nil {
				return err
			}
			continue
		}

		handle, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)
			if err = sess.sendErrorResponse(message.Action, fmt.Sprintf("unknown action %q", message.Action)); err != nil {
				return err
			}
			continue
		}

		if err = handle(ctx, sess, &message); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}
