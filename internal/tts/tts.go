package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// SynthesisError means both voice tiers were rejected by the provider.
type SynthesisError struct {
	Message string
}

func (e SynthesisError) Error() string {
	return "speech synthesis failed: " + e.Message
}

// Voice is one tier of synthesized speech with its tuning.
type Voice struct {
	Name         string
	SpeakingRate float64
	Pitch        float64
	VolumeGainDb float64
}

var (
	premiumVoice  = Voice{Name: "tr-TR-Wavenet-E", SpeakingRate: 1.05, Pitch: -1.0, VolumeGainDb: 1.5}
	standardVoice = Voice{Name: "tr-TR-Standard-A", SpeakingRate: 0.95, Pitch: 0}
)

type Result struct {
	AudioContent string
	VoiceUsed    string
}

type Synthesizer struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewSynthesizer(apiKey string) *Synthesizer {
	return &Synthesizer{
		apiKey:  apiKey,
		baseURL: "https://texttospeech.googleapis.com",
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// WithBaseURL overrides the provider endpoint. Used by tests.
func (s *Synthesizer) WithBaseURL(baseURL string) *Synthesizer {
	s.baseURL = strings.TrimRight(baseURL, "/")
	return s
}

type synthesizeRequest struct {
	Input struct {
		Text string `json:"text"`
	} `json:"input"`
	Voice struct {
		LanguageCode string `json:"languageCode"`
		Name         string `json:"name"`
	} `json:"voice"`
	AudioConfig struct {
		AudioEncoding string  `json:"audioEncoding"`
		SpeakingRate  float64 `json:"speakingRate,omitempty"`
		Pitch         float64 `json:"pitch,omitempty"`
		VolumeGainDb  float64 `json:"volumeGainDb,omitempty"`
	} `json:"audioConfig"`
}

type synthesizeResponse struct {
	AudioContent string `json:"audioContent"`
}

// Synthesize converts text to base64 MP3 audio. The premium voice is tried
// first; any provider rejection falls back to the standard voice once before
// giving up with the provider's own message.
func (s *Synthesizer) Synthesize(ctx context.Context, text string) (*Result, error) {
	if s.apiKey == "" {
		return nil, errors.New("missing TTS_API_KEY for speech provider")
	}

	audio, err := s.call(ctx, text, premiumVoice)
	if err == nil {
		return &Result{AudioContent: audio, VoiceUsed: premiumVoice.Name}, nil
	}
	log.Printf("tts: premium voice rejected, retrying standard: %v", err)

	audio, fallbackErr := s.call(ctx, text, standardVoice)
	if fallbackErr == nil {
		return &Result{AudioContent: audio, VoiceUsed: standardVoice.Name}, nil
	}
	return nil, SynthesisError{Message: fallbackErr.Error()}
}

func (s *Synthesizer) call(ctx context.Context, text string, voice Voice) (string, error) {
	payload := synthesizeRequest{}
	payload.Input.Text = text
	payload.Voice.LanguageCode = "tr-TR"
	payload.Voice.Name = voice.Name
	payload.AudioConfig.AudioEncoding = "MP3"
	payload.AudioConfig.SpeakingRate = voice.SpeakingRate
	payload.AudioConfig.Pitch = voice.Pitch
	payload.AudioConfig.VolumeGainDb = voice.VolumeGainDb

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	endpoint := s.baseURL + "/v1/text:synthesize?key=" + s.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("voice %s rejected (%s): %s", voice.Name, resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed synthesizeResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.AudioContent == "" {
		return "", fmt.Errorf("voice %s returned no audio", voice.Name)
	}
	return parsed.AudioContent, nil
}
