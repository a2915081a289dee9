package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe/internal/apperror"
	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/feed"
	"github.com/rocketscienceinc/tictactoe/internal/notify"
	"github.com/rocketscienceinc/tictactoe/internal/usecase"
	"github.com/rocketscienceinc/tictactoe/transport/rest"
	"github.com/rocketscienceinc/tictactoe/transport/terminal"
	"github.com/rocketscienceinc/tictactoe/transport/websocket"
)

// RunServer - serves /ping and the WebSocket screen until a signal arrives.
func RunServer(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	client, err := connectFeed(ctx, log, conf)
	if err != nil {
		return err
	}
	if client != nil {
		defer closeFeed(log, client)
	}

	logCollaborator := notify.NewLog(logger)
	mirror := func(sessionID string) (usecase.Notifier, usecase.SoundPlayer) {
		if client == nil {
			return logCollaborator, logCollaborator
		}

		publisher := feed.NewPublisher(client, conf.Redis.Channel, sessionID)
		return notify.Toasts(logCollaborator, publisher), notify.Cues(logCollaborator, publisher)
	}

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, mirror)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// RunTerminal - plays one hot-seat game in the terminal.
func RunTerminal(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	client, err := connectFeed(ctx, log, conf)
	if err != nil {
		return err
	}
	if client != nil {
		defer closeFeed(log, client)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create terminal screen: %w", err)
	}

	if err = screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal screen: %w", err)
	}
	defer screen.Fini()

	term := terminal.New(logger, screen)

	var (
		mirrorNotifier usecase.Notifier
		mirrorPlayer   usecase.SoundPlayer
	)
	if client != nil {
		publisher := feed.NewPublisher(client, conf.Redis.Channel, uuid.NewString())
		mirrorNotifier, mirrorPlayer = publisher, publisher
	}

	game := usecase.NewScreen(logger,
		notify.Toasts(term, mirrorNotifier),
		notify.Cues(term, mirrorPlayer),
	)

	return term.Run(ctx, game)
}

// RunWatch - prints every event on the feed channel as a JSON line.
func RunWatch(ctx context.Context, logger *slog.Logger, conf *config.Config, out io.Writer) error {
	log := logger.With("component", "app")

	if !conf.Redis.Enabled {
		return apperror.ErrFeedDisabled
	}

	ctx, cancel := withSignals(ctx, log)
	defer cancel()

	client, err := connectFeed(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeFeed(log, client)

	return watch(ctx, logger, client, conf.Redis.Channel, out)
}

func watch(ctx context.Context, logger *slog.Logger, client *redis.Client, channel string, out io.Writer) error {
	sub, err := feed.Subscribe(ctx, logger, client, channel)
	if err != nil {
		return fmt.Errorf("could not subscribe to event feed: %w", err)
	}
	defer sub.Close()

	encoder := json.NewEncoder(out)

	return sub.Run(ctx, func(event feed.Event) error {
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
		return nil
	})
}

// connectFeed - returns nil when the feed is disabled.
func connectFeed(ctx context.Context, log *slog.Logger, conf *config.Config) (*redis.Client, error) {
	if !conf.Redis.Enabled {
		return nil, nil //nolint:nilnil // a disabled feed is not an error
	}

	client, err := feed.Connect(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, fmt.Errorf("could not connect to event feed: %w", err)
	}

	log.Info("event feed connected", "addr", conf.Redis.GetRedisAddr(), "channel", conf.Redis.Channel)

	return client, nil
}

func closeFeed(log *slog.Logger, client *redis.Client) {
	if err := client.Close(); err != nil {
		log.Error("could not close event feed", "error", err)
	}
}

func withSignals(ctx context.Context, log *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigs)

		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
