// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import "net/http"

// Routes builds the HTTP handler tree, wrapped in the CORS middleware.
func Routes(skillsHandler *SkillsHandler, allowedOrigins []string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/get-skills-suggestions", skillsHandler.HandleSuggestions)
	mux.HandleFunc("/api/health", HandleHealth)
	mux.HandleFunc("/api/logs/stream", HandleLogStream)
	mux.HandleFunc("/ws/logs", HandleLogSocket(allowedOrigins))
	return CORSMiddleware(allowedOrigins, mux)
}
