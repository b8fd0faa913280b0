package mazeapi

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/mazeshare/service"
	"github.com/beka-birhanu/mazeshare/service/i"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const replyBuffer = 8

// stream upgrades to a websocket that pushes the session status after every
// change and accepts pointer, key and mode commands.
func (mc *MazeController) stream(ctx *gin.Context) {
	id, ws, ok := mc.workspace(ctx)
	if !ok {
		return
	}

	conn, err := mc.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		mc.logger.Warning(fmt.Sprintf("WebSocket upgrade failed for session %s: %v", id, err))
		return
	}
	defer conn.Close()

	updates, cancel := ws.Subscribe()
	defer cancel()

	replies := make(chan StreamMessage, replyBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		readCommands(conn, ws, replies)
	}()

	for {
		select {
		case status, open := <-updates:
			if !open {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session closed"))
				return
			}
			if err := conn.WriteJSON(StreamMessage{Type: "status", Status: &status}); err != nil {
				return
			}
		case reply := <-replies:
			if err := conn.WriteJSON(reply); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

// readCommands applies client messages until the connection fails. Replies that
// do not fit the buffer are dropped; the status stream still carries every change.
func readCommands(conn *websocket.Conn, ws i.Workspace, replies chan<- StreamMessage) {
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		reply, ok := applyMessage(ws, &msg)
		if !ok {
			continue
		}
		select {
		case replies <- reply:
		default:
		}
	}
}

// applyMessage runs one websocket command and returns the reply to send, if any.
func applyMessage(ws i.Workspace, msg *ClientMessage) (StreamMessage, bool) {
	switch msg.Type {
	case "pointer":
		// Pointer input outside edit mode is ignored, like a board that only reacts while editing.
		if _, err := applyPointer(ws, msg.Pointer); err != nil && !errors.Is(err, service.ErrWrongMode) {
			return StreamMessage{Type: "error", Error: err.Error()}, true
		}
		return StreamMessage{}, false
	case "key":
		outcome, err := ws.KeyPress(msg.Key)
		if err != nil {
			return StreamMessage{Type: "error", Error: err.Error()}, true
		}
		return StreamMessage{Type: "outcome", Outcome: outcome.String()}, true
	case "mode":
		if err := applyMode(ws, msg.Mode); err != nil {
			return StreamMessage{Type: "error", Error: err.Error()}, true
		}
		return StreamMessage{}, false
	default:
		return StreamMessage{Type: "error", Error: fmt.Sprintf("unknown message type %q", msg.Type)}, true
	}
}
