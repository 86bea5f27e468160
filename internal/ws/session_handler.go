package ws

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/playmatatu/cuptoss/internal/auth"
	"github.com/playmatatu/cuptoss/internal/config"
	"github.com/playmatatu/cuptoss/internal/game"
	"github.com/playmatatu/cuptoss/internal/protocol"
)

const replyTimeout = 2 * time.Second

// HandleSessionWebSocket upgrades GET /sessions/:id/ws?token=..&codec=json|msgpack and binds
// the connection to the session as its presenter.
func HandleSessionWebSocket(mgr *game.SessionManager, hub *Hub, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("id")
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}

		claims, err := auth.ParseSessionToken(cfg.JWTSecret, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if claims.SessionID != sessionID {
			c.JSON(http.StatusForbidden, gin.H{"error": "token does not match session"})
			return
		}

		s, err := mgr.GetSession(sessionID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[WS] Upgrade error: %v", err)
			return
		}

		client := newClient(conn, s, protocol.ParseCodec(c.Query("codec")))
		hub.register <- client
		s.Send(game.AttachCmd{ID: client.id, Presenter: client})

		go client.writePump()
		go client.readPump(hub)
	}
}

// readPump reads player input until the connection drops.
func (c *Client) readPump(hub *Hub) {
	defer func() {
		c.session.Send(game.DetachCmd{ID: c.id})
		hub.unregister <- c
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		kind, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[WS] unexpected close for session %s: %v", c.session.ID, err)
			}
			return
		}

		in, err := protocol.Decode(message, kind == websocket.BinaryMessage)
		if err != nil {
			c.sendError("Malformed message")
			continue
		}
		c.handleMessage(in)
	}
}

// handleMessage translates a client frame into a session command.
func (c *Client) handleMessage(in protocol.Inbound) {
	switch in.Type {
	case protocol.MsgStartRound:
		c.session.Send(game.StartRoundCmd{})

	case protocol.MsgLaunch:
		var data protocol.LaunchData
		if err := in.Bind(&data); err != nil {
			c.sendError("Invalid launch data")
			return
		}
		reply := make(chan error, 1)
		c.session.Send(game.LaunchCmd{Velocity: game.NewVec3(data.VX, data.VY, data.VZ), Reply: reply})
		c.awaitReply(reply)

	case protocol.MsgAim:
		var data protocol.AimData
		if err := in.Bind(&data); err != nil {
			c.sendError("Invalid aim data")
			return
		}
		reply := make(chan error, 1)
		c.session.Send(game.AimCmd{Point: game.NewVec3(data.X, 0, data.Z), Reply: reply})
		c.awaitReply(reply)

	case protocol.MsgReset:
		c.session.Send(game.ResetCmd{})

	case protocol.MsgExit:
		c.session.Send(game.AbortCmd{})

	case protocol.MsgGetState:
		reply := make(chan game.Snapshot, 1)
		if !c.session.Send(game.SnapshotCmd{Reply: reply}) {
			c.sendError("Session ended")
			return
		}
		select {
		case snap := <-reply:
			c.Present(game.EventState, snap)
		case <-time.After(replyTimeout):
			c.sendError("Session busy")
		}

	default:
		c.sendError("Unknown message type")
	}
}

func (c *Client) awaitReply(reply <-chan error) {
	select {
	case err := <-reply:
		if errors.Is(err, game.ErrInvalidInput) {
			c.sendError("Launch velocity out of range")
		} else if err != nil {
			c.sendError(err.Error())
		}
	case <-c.session.Done():
		c.sendError("Session ended")
	case <-time.After(replyTimeout):
		c.sendError("Session busy")
	}
}
