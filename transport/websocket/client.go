package websocket

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/alaasumrain/skribble-arabic/game/room"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Stroke batches are the largest
	// frames clients send.
	maxMessageSize = 64 * 1024

	// sendBufferSize is the per-connection outbound queue. Snapshot
	// broadcasts are bursty right after turn changes.
	sendBufferSize = 256

	// Chat is rate limited per connection; drawing strokes are not, they
	// arrive at canvas frequency by design.
	chatRatePerSec = 2
	chatBurst      = 5
)

// Client is one WebSocket connection.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	id   string
	ip   string
	send chan []byte

	chatLimiter *rate.Limiter
}

func newClient(hub *Hub, conn *websocket.Conn, id, ip string) *Client {
	return &Client{
		hub:         hub,
		conn:        conn,
		id:          id,
		ip:          ip,
		send:        make(chan []byte, sendBufferSize),
		chatLimiter: rate.NewLimiter(chatRatePerSec, chatBurst),
	}
}

// readPump pumps events from the connection into the game service. It owns
// the read side; when it returns the connection is unregistered, which
// doubles as the disconnect event.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Debug().Err(err).Str("conn", c.id).Msg("websocket read error")
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			log.Debug().Err(err).Str("conn", c.id).Msg("dropping malformed frame")
			continue
		}
		c.dispatch(env)
	}
}

// dispatch routes one inbound event to the game service. Errors that concern
// the sender come back as room-error events; everything else is silent.
func (c *Client) dispatch(env Envelope) {
	ctx := context.Background()
	svc := c.hub.service

	switch env.Event {
	case eventCreateRoom:
		var p createRoomPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		if err := svc.CreateRoom(ctx, c.id, p.PlayerName, p.Config); err != nil {
			log.Warn().Err(err).Str("conn", c.id).Msg("create-room failed")
			c.sendError(err)
		}

	case eventJoinRoom:
		var p joinRoomPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		if err := svc.JoinRoom(ctx, c.id, p.RoomID, p.PlayerName); err != nil {
			c.sendError(err)
		}

	case eventStartGame:
		svc.StartGame(ctx, c.id)

	case eventDrawingData:
		svc.SubmitStroke(ctx, c.id, env.Data)

	case eventChatMessage:
		if !c.chatLimiter.Allow() {
			return
		}
		var p chatPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return
		}
		svc.SubmitChat(ctx, c.id, p.Message)

	case eventClearCanvas:
		svc.ClearCanvas(ctx, c.id)

	case eventGetGameState:
		svc.SendState(ctx, c.id)

	default:
		log.Debug().Str("conn", c.id).Str("event", env.Event).Msg("unknown event")
	}
}

func (c *Client) sendError(err error) {
	c.hub.ToConn(c.id, room.EventRoomError, errorText(err))
}

// writePump pumps queued frames to the connection and keeps it alive with
// pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) closeSocket() {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
	c.conn.Close()
}
