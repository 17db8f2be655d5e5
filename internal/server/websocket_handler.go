// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Aljon0/AI-RB-API/internal/logger"
)

const (
	logSocketWriteWait = 10 * time.Second
	logSocketPongWait  = 60 * time.Second
	logSocketPingEvery = 30 * time.Second
)

// HandleLogSocket returns a handler for GET /ws/logs that streams log lines
// over a WebSocket connection. Only origins on the allow-list may connect.
func HandleLogSocket(allowedOrigins []string) http.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			// Same-origin requests carry no Origin header.
			return origin == "" || allowed[origin]
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Errorf("HandleLogSocket: failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()

		log.Printf("HandleLogSocket: client connected: %s", r.RemoteAddr)

		loggerInstance := logger.GetDefault()
		clientChan := loggerInstance.Subscribe()
		defer loggerInstance.Unsubscribe(clientChan)

		conn.SetReadDeadline(time.Now().Add(logSocketPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(logSocketPongWait))
			return nil
		})

		// Reader goroutine: detect client disconnect and pong replies.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		pingTicker := time.NewTicker(logSocketPingEvery)
		defer pingTicker.Stop()

		for {
			select {
			case logLine, ok := <-clientChan:
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(logSocketWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, []byte(logLine)); err != nil {
					logger.Warnf("HandleLogSocket: write failed for %s: %v", r.RemoteAddr, err)
					return
				}
			case <-pingTicker.C:
				conn.SetWriteDeadline(time.Now().Add(logSocketWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, []byte{}); err != nil {
					log.Printf("HandleLogSocket: ping failed for %s: %v", r.RemoteAddr, err)
					return
				}
			case <-done:
				log.Printf("HandleLogSocket: client disconnected: %s", r.RemoteAddr)
				return
			case <-r.Context().Done():
				return
			}
		}
	}
}
