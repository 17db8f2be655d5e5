// Copyright (c) 2025 Northbound System
// Author: Nicholas Skitch
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/Aljon0/AI-RB-API/internal/scheduler"
	"github.com/Aljon0/AI-RB-API/internal/skills"
)

// Submitter admits a skill lookup and returns the channel its terminal
// result arrives on. Satisfied by *scheduler.Scheduler.
type Submitter interface {
	Submit(title string) <-chan scheduler.Result
}

// SkillsHandler handles skill suggestion requests.
type SkillsHandler struct {
	queue Submitter
}

// NewSkillsHandler creates a new skills handler.
func NewSkillsHandler(queue Submitter) *SkillsHandler {
	return &SkillsHandler{queue: queue}
}

// SkillsRequest is the request body for a suggestion lookup.
type SkillsRequest struct {
	JobTitle string `json:"jobTitle"`
}

// SkillsResponse is the response body. Skills is always populated, even on
// error responses, so the client has something usable to render.
type SkillsResponse struct {
	Skills []string `json:"skills"`
	Error  string   `json:"error,omitempty"`
}

// HandleSuggestions handles POST /api/get-skills-suggestions.
// The connection is held open until the job is delivered by the scheduler.
func (h *SkillsHandler) HandleSuggestions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusMethodNotAllowed)
		json.NewEncoder(w).Encode(map[string]string{"error": "method not allowed"})
		return
	}

	var req SkillsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("HandleSuggestions: failed to decode body: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SkillsResponse{
			Error:  "Failed to process request",
			Skills: skills.Generic(),
		})
		return
	}

	title := strings.TrimSpace(req.JobTitle)
	if title == "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(SkillsResponse{
			Error:  "Job title is required",
			Skills: skills.Generic(),
		})
		return
	}

	log.Printf("HandleSuggestions: title=%q", title)

	res := <-h.queue.Submit(title)
	if res.Err != nil {
		log.Printf("HandleSuggestions: title=%q failed: %v", title, res.Err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(SkillsResponse{
			Error:  "Failed to get suggestions",
			Skills: res.Skills,
		})
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(SkillsResponse{Skills: res.Skills})
}
