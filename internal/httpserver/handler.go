package httpserver

import (
	callHTTP "social-realtime/internal/call/delivery/http"
	chatHTTP "social-realtime/internal/chat/delivery/http"
	"social-realtime/internal/middleware"
	sessionHTTP "social-realtime/internal/session/delivery/http"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() {
	mw := middleware.New(srv.logger)
	srv.gin.Use(mw.Recovery(), mw.Logging())
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	api := srv.gin.Group(Api)
	sessionHTTP.New(srv.session, srv.logger).RegisterRoutes(api)
	callHTTP.New(srv.callUC, srv.logger).RegisterRoutes(api)
	chatHTTP.New(srv.chatUC, srv.logger).RegisterRoutes(api)
}
