package llm

import "strings"

// Request and response shapes shared by the Gemini API and Vertex endpoints;
// both speak the generateContent protocol.

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func newGenerateRequest(prompt string, params Params) generateRequest {
	return generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{
			MaxOutputTokens: params.MaxOutputTokens,
			Temperature:     params.Temperature,
			TopP:            params.TopP,
		},
	}
}

type resultKind int

const (
	resultSuccess resultKind = iota
	resultEmpty
	resultMalformed
)

// extraction is the tagged outcome of decoding a provider response; only a
// success with non-empty text may proceed to the caller.
type extraction struct {
	kind resultKind
	text string
}

func extractText(parsed generateResponse) extraction {
	if len(parsed.Candidates) == 0 {
		return extraction{kind: resultMalformed}
	}
	var b strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		b.WriteString(p.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return extraction{kind: resultEmpty}
	}
	return extraction{kind: resultSuccess, text: text}
}

func (e extraction) unwrap() (string, error) {
	switch e.kind {
	case resultSuccess:
		return e.text, nil
	case resultEmpty:
		return "", GenerationError{Reason: "first candidate contained no text"}
	default:
		return "", GenerationError{Reason: "response carried no candidates"}
	}
}
