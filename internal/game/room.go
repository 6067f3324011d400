package game

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
)

var ErrRoomFull = errors.New("room full")

// OutboundMessage packages queued websocket events.
type OutboundMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type Player struct {
	ID   string
	Name string
	Side Side

	pending []OutboundMessage
}

// SendMessage queues an event for the player's next state push.
func (p *Player) SendMessage(msgType string, payload interface{}) {
	p.pending = append(p.pending, OutboundMessage{Type: msgType, Payload: payload})
}

func (p *Player) ConsumePendingMessages() []OutboundMessage {
	out := p.pending
	p.pending = nil
	return out
}

type Room struct {
	ID      string
	Now     float64
	Game    *Game
	Players map[string]*Player
	Bot     *BallisticSolver
	Mu      sync.Mutex

	cfg            Config
	botReadyAt     float64
	executionTicks int
	stalled        bool
	lastPhase      Phase
}

func newRoom(id string, cfg Config) (*Room, error) {
	g, err := NewGame(cfg)
	if err != nil {
		return nil, fmt.Errorf("room %s: %w", id, err)
	}
	return &Room{
		ID:        id,
		Game:      g,
		cfg:       cfg,
		Players:   map[string]*Player{},
		lastPhase: g.Phase(),
	}, nil
}

// RoomInfo is returned by the API for the room list.
type RoomInfo struct {
	ID      string `json:"id"`
	Players int    `json:"players"`
	Bot     bool   `json:"bot"`
	Phase   string `json:"phase"`
	Seed    int64  `json:"seed"`
}

type Hub struct {
	Rooms map[string]*Room
	Mu    sync.Mutex
	cfg   Config
}

func NewHub(cfg Config) *Hub { return &Hub{Rooms: map[string]*Room{}, cfg: cfg} }

func (h *Hub) Config() Config { return h.cfg }

func (h *Hub) GetRoom(id string) (*Room, error) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	r, ok := h.Rooms[id]
	if !ok {
		var err error
		r, err = newRoom(id, h.cfg)
		if err != nil {
			return nil, err
		}
		h.Rooms[id] = r
		log.Printf("room %s created (seed %d)", id, r.Game.Seed())
	}
	return r, nil
}

// CleanupEmptyRooms drops rooms nobody is connected to.
func (h *Hub) CleanupEmptyRooms() {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, r := range h.Rooms {
		r.Mu.Lock()
		empty := len(r.Players) == 0
		r.Mu.Unlock()
		if empty {
			delete(h.Rooms, id)
			log.Printf("room %s removed (empty)", id)
		}
	}
}

func (h *Hub) ListRooms() []RoomInfo {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	out := make([]RoomInfo, 0, len(h.Rooms))
	for id, r := range h.Rooms {
		r.Mu.Lock()
		out = append(out, RoomInfo{
			ID:      id,
			Players: len(r.Players),
			Bot:     r.Bot != nil,
			Phase:   r.Game.Phase().String(),
			Seed:    r.Game.Seed(),
		})
		r.Mu.Unlock()
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Run ticks every room at the configured rate until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Duration(float64(time.Second) / h.cfg.tickHz()))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			h.Mu.Lock()
			rooms := make([]*Room, 0, len(h.Rooms))
			for _, r := range h.Rooms {
				rooms = append(rooms, r)
			}
			h.Mu.Unlock()
			for _, r := range rooms {
				r.Tick()
			}
		}
	}
}

func (r *Room) Tick() {
	r.Mu.Lock()
	defer r.Mu.Unlock()
	r.Now += 1.0 / r.cfg.tickHz()
	if r.stalled {
		// Frozen for inspection until ResetLocked.
		return
	}

	r.Game.Update()
	if r.Game.Phase() == PhaseExecution {
		r.executionTicks++
		if r.executionTicks >= r.Game.SimulateCeiling() {
			r.stalled = true
			log.Printf("room %s: shot still unresolved after %d ticks", r.ID, r.executionTicks)
		}
	} else {
		r.executionTicks = 0
	}

	for _, d := range r.Game.DrainDetonations() {
		log.Printf("room %s: %s detonation at (%.0f, %.0f) r=%.0f damaged=%v", r.ID, d.Outcome, d.At.X, d.At.Y, d.Radius, d.Damaged)
	}
	r.observePhaseLocked()
	r.updateBotLocked()
}

func (r *Room) observePhaseLocked() {
	phase := r.Game.Phase()
	if phase == r.lastPhase {
		return
	}
	r.lastPhase = phase
	if phase == PhaseGameOver {
		log.Printf("room %s: game over, winner %s", r.ID, r.Game.Winner())
		return
	}
	log.Printf("room %s: phase %s", r.ID, phase)
	if phase == PhaseResolution {
		r.botReadyAt = r.Now + r.cfg.botThink()
	}
}

func (r *Room) updateBotLocked() {
	if r.Bot == nil || r.Game.DueSide() != SideAI || r.Now < r.botReadyAt {
		return
	}
	action := r.Bot.Solve(r.Game.Wurm(SideAI), r.Game.Wurm(SidePlayer))
	if _, err := r.Game.Apply(SideAI, action); err != nil {
		log.Printf("room %s: bot fire: %v", r.ID, err)
		return
	}
	r.executionTicks = 0
}

// EnableBotLocked hands the AI seat to a ballistic solver if nobody holds it.
func (r *Room) EnableBotLocked() bool {
	if r.Bot != nil {
		return true
	}
	if r.seatTakenLocked(SideAI) {
		return false
	}
	r.Bot = NewBallisticSolver()
	r.botReadyAt = r.Now + r.cfg.botThink()
	return true
}

func (r *Room) seatTakenLocked(side Side) bool {
	for _, p := range r.Players {
		if p.Side == side {
			return true
		}
	}
	return false
}

func (r *Room) HumanPlayerCountLocked() int { return len(r.Players) }

// JoinLocked seats a new player on the first free side.
func (r *Room) JoinLocked(name string) (*Player, error) {
	for _, side := range []Side{SidePlayer, SideAI} {
		if r.seatTakenLocked(side) || (side == SideAI && r.Bot != nil) {
			continue
		}
		if name == "" {
			name = "Anon"
		}
		p := &Player{ID: NewID("p"), Name: name, Side: side}
		r.Players[p.ID] = p
		log.Printf("room %s: %s joined as %s", r.ID, p.ID, side)
		return p, nil
	}
	return nil, ErrRoomFull
}

func (r *Room) LeaveLocked(playerID string) {
	if _, ok := r.Players[playerID]; !ok {
		return
	}
	delete(r.Players, playerID)
	log.Printf("room %s: %s left", r.ID, playerID)
}

func (r *Room) FireLocked(playerID, weapon string, angle, power float64) error {
	p, ok := r.Players[playerID]
	if !ok {
		return ErrUnknownWurm
	}
	_, err := r.Game.Apply(p.Side, Action{Weapon: weapon, Angle: angle, Power: power})
	if err != nil {
		return err
	}
	r.executionTicks = 0
	r.stalled = false
	return nil
}

func (r *Room) ResetLocked(seed *int64) error {
	if err := r.Game.Reset(seed); err != nil {
		return err
	}
	if r.Bot != nil {
		r.Bot = NewBallisticSolver()
	}
	r.executionTicks = 0
	r.stalled = false
	r.lastPhase = r.Game.Phase()
	log.Printf("room %s: reset (seed %d)", r.ID, r.Game.Seed())
	return nil
}

func (r *Room) StalledLocked() bool { return r.stalled }
