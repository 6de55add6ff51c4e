package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"social-realtime/config"
	configRedis "social-realtime/config/redis"
	"social-realtime/internal/call"
	callUsecase "social-realtime/internal/call/usecase"
	"social-realtime/internal/chat"
	chatUsecase "social-realtime/internal/chat/usecase"
	"social-realtime/internal/directory"
	"social-realtime/internal/eventbus"
	eventbusRedis "social-realtime/internal/eventbus/delivery/redis"
	"social-realtime/internal/httpserver"
	"social-realtime/internal/notification"
	notificationUsecase "social-realtime/internal/notification/usecase"
	"social-realtime/internal/session"
	"social-realtime/internal/session/delivery/stomp"
	"social-realtime/pkg/jwt"
	"social-realtime/pkg/log"
	pkgRedis "social-realtime/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting realtime client...")

	// Principal
	identity, err := resolveIdentity(cfg.Credentials)
	if err != nil {
		logger.Errorf(ctx, "Failed to resolve identity: %v", err)
		return
	}
	userKey := strconv.FormatInt(identity.UserID, 10)
	ctx = logger.With(ctx, "user_id", userKey)
	logger.Infof(ctx, "Authenticated as %q", identity.Username)

	// Transport + session
	factory := stomp.NewFactory(logger, stomp.Config{
		URL:               cfg.Realtime.URL,
		HeartbeatIncoming: cfg.Realtime.HeartbeatIncoming,
		HeartbeatOutgoing: cfg.Realtime.HeartbeatOutgoing,
		ReconnectDelay:    cfg.Realtime.ReconnectDelay,
		HandshakeTimeout:  cfg.Realtime.HandshakeTimeout,
	}, nil)
	manager := session.New(logger, factory, nil, session.Options{
		MaxReconnectAttempts: cfg.Realtime.MaxReconnectAttempts,
		FlushRetryDelay:      cfg.Realtime.FlushRetryDelay,
	})

	// Display names
	var resolver directory.Resolver
	if cfg.API.BaseURL != "" {
		token := cfg.Credentials.Token
		resolver = directory.NewHTTPResolver(cfg.API.BaseURL, cfg.API.Timeout, func() string { return token })
	}
	names, err := directory.New(logger, cfg.API.NameCacheSize, resolver)
	if err != nil {
		logger.Errorf(ctx, "Failed to create name directory: %v", err)
		return
	}

	// Event bus, optionally mirrored through Redis
	bus := eventbus.New(logger)
	var (
		redisClient pkgRedis.IRedis
		bridge      eventbusRedis.Bridge
	)
	if cfg.Redis.Enabled {
		redisClient, err = configRedis.Connect(ctx, cfg.Redis)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
			return
		}
		defer configRedis.Disconnect()
		bridge = eventbusRedis.New(redisClient, bus, logger, userKey)
		logger.Info(ctx, "Redis client initialized")
	}

	// Consumers
	callUC := callUsecase.New(logger, call.Identity{UserID: identity.UserID, Username: identity.Username}, manager, names, bus, nil)
	defer callUC.Close()
	chatUC := chatUsecase.New(logger, manager, bus, names, identity.UserID)
	notificationUC := notificationUsecase.New(logger, manager, bus)

	wireConsumers(ctx, logger, cfg.Realtime, identity.UserID, bus, callUC, chatUC, notificationUC)

	if err := manager.SetCredentials(ctx, session.Credentials{UserID: userKey, Token: cfg.Credentials.Token}); err != nil {
		logger.Errorf(ctx, "Failed to start realtime session: %v", err)
		return
	}

	srv, err := httpserver.New(logger, httpserver.Config{
		Host:        cfg.Server.Host,
		Port:        cfg.Server.Port,
		Mode:        cfg.Server.Mode,
		Environment: cfg.Environment.Name,
		Session:     manager,
		Call:        callUC,
		Chat:        chatUC,
		Bridge:      bridge,
		Redis:       redisClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to create control server: %v", err)
		return
	}

	if err := srv.Run(ctx); err != nil {
		logger.Errorf(ctx, "Control server stopped: %v", err)
		return
	}
	logger.Info(ctx, "Realtime client stopped gracefully")
}

// resolveIdentity reads the principal from the token, letting explicit
// AUTH_USER_ID / AUTH_USERNAME values win.
func resolveIdentity(cfg config.CredentialsConfig) (jwt.Identity, error) {
	id, err := jwt.New(jwt.Config{SecretKey: cfg.JWTSecret}).Identify(cfg.Token)
	if err != nil && cfg.UserID == 0 {
		return jwt.Identity{}, err
	}
	if cfg.UserID != 0 {
		id.UserID = cfg.UserID
	}
	if cfg.Username != "" {
		id.Username = cfg.Username
	}
	return id, nil
}

func wireConsumers(
	ctx context.Context,
	logger log.Logger,
	cfg config.RealtimeConfig,
	userID int64,
	bus eventbus.Bus,
	callUC call.UseCase,
	chatUC chat.UseCase,
	notificationUC notification.UseCase,
) {
	callUC.OnIncoming(func(in call.Incoming) {
		logger.Infof(ctx, "Incoming call %s from %s on chat %d", in.SessionID, in.CallerName, in.ChatID)
	})
	callUC.OnEnded(func(sessionID string) {
		logger.Infof(ctx, "Call %s ended", sessionID)
	})

	bus.Subscribe(eventbus.UpdateUnreadCount, func(ctx context.Context, ev eventbus.Event) {
		var p eventbus.UnreadCountPayload
		if err := ev.Decode(&p); err == nil {
			logger.Debugf(ctx, "Unread messages: %d", p.UnreadCount)
		}
	})
	bus.Subscribe(eventbus.UpdateUnreadNotificationCount, func(ctx context.Context, ev eventbus.Event) {
		var p eventbus.UnreadNotificationCountPayload
		if err := ev.Decode(&p); err == nil {
			logger.Debugf(ctx, "Unread notifications: %d", p.UnreadCount)
		}
	})

	notificationUC.OnNotification(func(ctx context.Context, n notification.Notification) {
		logger.Infof(ctx, "Notification %d from %s: %s", n.ID, n.SenderName, n.Content)
	})
	if err := notificationUC.Watch(userID); err != nil {
		logger.Warnf(ctx, "Watch notifications: %v", err)
	}
	if err := chatUC.WatchUnread(userID); err != nil {
		logger.Warnf(ctx, "Watch unread count: %v", err)
	}

	for _, chatID := range cfg.WatchChats {
		if err := callUC.WatchChat(chatID); err != nil {
			logger.Warnf(ctx, "Watch calls on chat %d: %v", chatID, err)
		}
		if err := chatUC.Watch(chatID, func(ctx context.Context, ev chat.Event) {
			if ev.Typing() {
				logger.Debugf(ctx, "User %d is typing in chat %d", ev.UserID, ev.ChatID)
				return
			}
			logger.Infof(ctx, "Chat %d: %s: %s", ev.ChatID, ev.SenderName, ev.Content)
		}); err != nil {
			logger.Warnf(ctx, "Watch chat %d: %v", chatID, err)
		}
		if err := chatUC.WatchSpamStatus(chatID, func(ctx context.Context, s chat.SpamStatus) {
			logger.Infof(ctx, "Chat %d spam status: %s", s.ChatID, s.Status)
		}); err != nil {
			logger.Warnf(ctx, "Watch spam status of chat %d: %v", chatID, err)
		}
	}

	if cfg.AdminReports {
		if err := notificationUC.WatchReports(func(ctx context.Context, r notification.Report) {
			logger.Infof(ctx, "Report %d on %s %d: %s", r.ID, r.TargetType, r.TargetID, r.Reason)
		}); err != nil {
			logger.Warnf(ctx, "Watch admin reports: %v", err)
		}
	}
}
