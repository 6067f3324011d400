package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	. "WurmDuel/internal/game"
)

type weaponDTO struct {
	Name            string  `json:"name"`
	Radius          float64 `json:"radius"`
	Damage          float64 `json:"damage"`
	ExplosionRadius float64 `json:"explosion_radius"`
	Fuse            int     `json:"fuse"`
	Cluster         int     `json:"cluster"`
}

func newMux(h *Hub, settings WorldSettings) *http.ServeMux {
	settings = SanitizeWorldSettings(settings)
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/api/rooms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, h.ListRooms())
	})
	mux.HandleFunc("/api/weapons", func(w http.ResponseWriter, r *http.Request) {
		catalog := Weapons()
		out := make([]weaponDTO, 0, len(catalog))
		for _, wp := range catalog {
			out = append(out, weaponDTO{
				Name:            wp.Name,
				Radius:          wp.Radius,
				Damage:          wp.Damage,
				ExplosionRadius: wp.ExplosionRadius,
				Fuse:            wp.Fuse,
				Cluster:         wp.Cluster,
			})
		}
		writeJSON(w, out)
	})
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWS(h, settings, w, r)
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write json: %v", err)
	}
}

func formatSeed(seed int64) string { return strconv.FormatInt(seed, 10) }
