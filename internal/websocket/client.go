package websocket

import (
	"io"
	"time"

	"github.com/Saksham932007/Attendance/internal/config"
	"github.com/Saksham932007/Attendance/internal/metrics"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// connSettings are the keepalive and size limits applied to one connection
type connSettings struct {
	readLimit  int64
	pongWait   time.Duration
	pingPeriod time.Duration
	writeWait  time.Duration
}

func settingsFrom(cfg *config.Config) connSettings {
	return connSettings{
		readLimit:  cfg.MaxMessageSize,
		pongWait:   cfg.PongWait,
		pingPeriod: cfg.PingPeriod,
		writeWait:  cfg.WriteWait,
	}
}

// Client is one dashboard connection subscribed to progress events
type Client struct {
	id       string
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	settings connSettings
	logger   zerolog.Logger
}

// NewClient creates a new Client for an upgraded connection
func NewClient(hub *Hub, conn *websocket.Conn, cfg *config.Config, logger zerolog.Logger) *Client {
	id := uuid.New().String()
	return &Client{
		id:       id,
		hub:      hub,
		conn:     conn,
		send:     make(chan []byte, queueSize),
		settings: settingsFrom(cfg),
		logger:   logger.With().Str("client_id", id).Logger(),
	}
}

// Start runs the connection's reader and writer
func (c *Client) Start() {
	go c.writeLoop()
	go c.readLoop()
}

// readLoop keeps pong handling alive and detects disconnects.
// Dashboards are listen-only, so inbound frames are discarded.
func (c *Client) readLoop() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(c.settings.readLimit)
	extend := func() error {
		return c.conn.SetReadDeadline(time.Now().Add(c.settings.pongWait))
	}
	extend()
	c.conn.SetPongHandler(func(string) error { return extend() })

	for {
		_, r, err := c.conn.NextReader()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				metrics.Get().RecordWebSocketError()
				c.logger.Warn().Err(err).Msg("websocket closed unexpectedly")
			}
			return
		}
		if _, err := io.Copy(io.Discard, r); err != nil {
			return
		}
	}
}

// writeLoop sends queued events, one text frame each, and pings on an interval
func (c *Client) writeLoop() {
	ping := time.NewTicker(c.settings.pingPeriod)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case event, open := <-c.send:
			if !open {
				c.write(websocket.CloseMessage, nil)
				return
			}
			if err := c.write(websocket.TextMessage, event); err != nil {
				metrics.Get().RecordWebSocketError()
				c.logger.Debug().Err(err).Msg("failed to write event")
				return
			}
		case <-ping.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(messageType int, data []byte) error {
	c.conn.SetWriteDeadline(time.Now().Add(c.settings.writeWait))
	return c.conn.WriteMessage(messageType, data)
}
