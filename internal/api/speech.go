package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
)

type speechRequest struct {
	Text string `json:"text"`
}

type speechResponse struct {
	AudioContent string `json:"audioContent"`
	VoiceUsed    string `json:"voiceUsed,omitempty"`
}

func (s *Server) speak(w http.ResponseWriter, r *http.Request) {
	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "")
		return
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeError(w, http.StatusBadRequest, "text is required", "")
		return
	}
	if s.speech == nil {
		writeError(w, http.StatusInternalServerError, "speech provider is not configured", "")
		return
	}

	result, err := s.speech.Synthesize(r.Context(), text)
	if err != nil {
		log.Printf("speech: synthesis failed: %v", err)
		writeError(w, http.StatusInternalServerError, "speech synthesis failed", err.Error())
		return
	}

	writeJSONStatus(w, speechResponse{AudioContent: result.AudioContent, VoiceUsed: result.VoiceUsed}, http.StatusOK)
}
