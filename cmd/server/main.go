package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/caarlos0/env/v11"
	"github.com/coder/websocket"

	"github.com/nocturne-rpg/threat-deck-engine/internal/protocol"
	"github.com/nocturne-rpg/threat-deck-engine/internal/web/views"
	"github.com/nocturne-rpg/threat-deck-engine/internal/ws"
)

// Config is the server configuration, read from the environment.
type Config struct {
	Addr       string `env:"ADDR" envDefault:":8080"`
	ContentDir string `env:"CONTENT_DIR"`
	StaticDir  string `env:"STATIC_DIR" envDefault:"internal/web/static"`
}

func main() {
	var config Config
	if err := env.Parse(&config); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	logger := NewLogger()

	content := NewContentManager(config.ContentDir, logger)
	if err := content.Load(); err != nil {
		log.Fatalf("failed to load content: %v", err)
	}

	hub := ws.NewHub()
	sequence := NewSequenceGenerator()
	broadcaster := NewBroadcaster(hub, sequence)
	session := NewLivePlaySession(content, broadcaster, logger)
	handlers := NewIntentHandlers(session, logger)

	mux := http.NewServeMux()
	fileServer := http.FileServer(http.Dir(config.StaticDir))
	mux.Handle("/static/", http.StripPrefix("/static/", fileServer))

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/stream", func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}
		hub.Add(conn)

		hello, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: sequence.Next(),
			EventID:  0,
			Type:     "Snapshot",
			Payload:  session.Snapshot(),
		})
		_ = conn.Write(context.Background(), websocket.MessageText, hello)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				_, data, err := c.Read(context.Background())
				if err != nil {
					return
				}
				if err := handlers.HandleMessage(data); err != nil {
					logger.Printf("intent failed: %v", err)
				}
			}
		}(conn)
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		if err := views.IndexPage(session.Snapshot()).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	log.Printf("listening on %s", config.Addr)
	log.Fatal(http.ListenAndServe(config.Addr, mux))
}
