package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	. "WurmDuel/internal/game"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type liveConn struct {
	conn     *websocket.Conn
	binary   bool
	sendTick *time.Ticker
}

// send writes one outbound frame in the connection's wire format.
func (lc *liveConn) send(v interface{}) error {
	if !lc.binary {
		return lc.conn.WriteJSON(v)
	}
	msg, err := toProto(v)
	if err != nil {
		return err
	}
	return sendProtoMessage(lc.conn, msg)
}

func serveWS(h *Hub, settings WorldSettings, w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	roomID := query.Get("room")
	if roomID == "" {
		roomID = "default"
	}
	wantBot := query.Get("bot") == "1"

	room, err := h.GetRoom(roomID)
	if err != nil {
		log.Printf("room %s: %v", roomID, err)
		http.Error(w, "room unavailable", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("upgrade:", err)
		return
	}
	lc := &liveConn{
		conn:     conn,
		binary:   query.Get("format") == "proto",
		sendTick: time.NewTicker(time.Duration(float64(time.Second) / settings.BroadcastHz)),
	}

	room.Mu.Lock()
	player, err := room.JoinLocked(query.Get("name"))
	if err != nil {
		room.Mu.Unlock()
		_ = lc.send(OutboundMessage{Type: "error", Payload: errorDTO{Message: err.Error()}})
		lc.sendTick.Stop()
		conn.Close()
		return
	}
	if wantBot && player.Side == SidePlayer && !room.EnableBotLocked() {
		player.SendMessage("error", errorDTO{Message: "opponent seat is taken"})
	}
	playerID := player.ID
	room.Mu.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		defer cancel()
		for {
			msgType, data, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var inbound inboundMessage
			switch msgType {
			case websocket.BinaryMessage:
				if inbound, err = fromProto(data); err != nil {
					log.Printf("protobuf frame error: %v", err)
					continue
				}
			case websocket.TextMessage:
				if err := json.Unmarshal(data, &inbound); err != nil {
					log.Printf("invalid JSON message: %v", err)
					continue
				}
			default:
				log.Printf("Received unsupported WebSocket message type %d", msgType)
				continue
			}
			handleInbound(room, playerID, inbound)
		}
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-lc.sendTick.C:
				room.Mu.Lock()
				msg := buildStateLocked(room, playerID)
				var outbound []OutboundMessage
				if p := room.Players[playerID]; p != nil {
					outbound = p.ConsumePendingMessages()
				}
				room.Mu.Unlock()

				if err := lc.send(msg); err != nil {
					log.Printf("send error: %v", err)
					cancel()
					return
				}
				for _, event := range outbound {
					if err := lc.send(event); err != nil {
						log.Printf("send json event error: %v", err)
						cancel()
						return
					}
				}
			}
		}
	}()

	<-ctx.Done()
	lc.sendTick.Stop()
	conn.Close()

	room.Mu.Lock()
	room.LeaveLocked(playerID)
	room.Mu.Unlock()
}

func handleInbound(room *Room, playerID string, inbound inboundMessage) {
	room.Mu.Lock()
	defer room.Mu.Unlock()
	p := room.Players[playerID]
	if p == nil {
		return
	}

	switch inbound.Type {
	case "fire":
		var payload firePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			log.Printf("invalid fire payload: %v", err)
			p.SendMessage("error", errorDTO{Message: "invalid fire payload"})
			return
		}
		if err := room.FireLocked(playerID, payload.Weapon, payload.Angle, payload.Power); err != nil {
			log.Printf("room %s: fire rejected for %s: %v", room.ID, playerID, err)
			p.SendMessage("error", errorDTO{Message: err.Error()})
		}
	case "reset":
		var payload resetPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				log.Printf("invalid reset payload: %v", err)
				p.SendMessage("error", errorDTO{Message: "invalid reset payload"})
				return
			}
		}
		if err := room.ResetLocked(payload.Seed); err != nil {
			log.Printf("room %s: reset failed: %v", room.ID, err)
			p.SendMessage("error", errorDTO{Message: err.Error()})
		}
	default:
		log.Printf("unknown text message type: %s", inbound.Type)
		p.SendMessage("error", errorDTO{Message: "unknown message type " + inbound.Type})
	}
}
