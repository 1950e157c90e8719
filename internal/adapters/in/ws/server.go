package ws

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// Server upgrades HTTP requests into gateway connections.
type Server struct {
	gateway  *Gateway
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewServer creates the websocket endpoint handler.
func NewServer(gateway *Gateway, logger *slog.Logger) *Server {
	return &Server{
		gateway: gateway,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Clients connect from mobile apps and browsers on other
			// origins; authentication is handled upstream.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "ws-server"),
	}
}

// Handle serves GET /ws. The optional userId and workerId query parameters
// identify the caller; a user identifier puts the connection straight into
// its user room. The handler blocks on the read pump for the lifetime of the
// connection.
func (s *Server) Handle(c echo.Context) error {
	socket, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return err
	}

	client := NewClient(uuid.NewString(), socket, s.logger)
	s.gateway.HandleConnect(client, c.QueryParam("userId"), c.QueryParam("workerId"))

	go client.WriteLoop()
	client.ReadLoop(c.Request().Context(), s.gateway)
	return nil
}
