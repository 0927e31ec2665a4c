package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pavankontham/smart-maps/internal/models"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com"
	geminiModel   = "gemini-1.5-flash"
)

const systemPrompt = `You are EcoRoute Assistant, a helpful guide for sustainable transportation.
You help users plan eco-friendly routes, understand their carbon footprint, and adopt greener travel habits.
Keep answers concise and practical. When relevant, mention route types (fastest, shortest, eco-friendly) and vehicle choices.`

// ServiceInterface defines the eco assistant contract.
type ServiceInterface interface {
	Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error)
	EcoTips(location string, commuteKm float64) []models.EcoTip
}

// Service answers chat messages through the Gemini generative API, with
// canned fallback replies when the API is unconfigured or unreachable.
type Service struct {
	httpClient *http.Client
	apiKey     string
	baseURL    string
	now        func() time.Time
}

// NewService creates a new chat service. An empty apiKey puts the service
// in fallback-only mode.
func NewService(apiKey string) *Service {
	return &Service{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		apiKey:     apiKey,
		baseURL:    geminiBaseURL,
		now:        time.Now,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Chat produces a reply to the user's message. API failures never surface
// to the caller; the response degrades to a canned fallback instead.
func (s *Service) Chat(ctx context.Context, req models.ChatRequest) (*models.ChatResponse, error) {
	if s.apiKey == "" {
		return s.fallbackResponse(req.Message), nil
	}

	text, err := s.generate(ctx, buildPrompt(req))
	if err != nil {
		return s.fallbackResponse(req.Message), nil
	}

	return &models.ChatResponse{
		Success:     true,
		Response:    text,
		Suggestions: suggestionsFor(req.Message),
		Model:       geminiModel,
		Timestamp:   s.now().UTC(),
	}, nil
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, geminiModel, s.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini: unexpected status %d", resp.StatusCode)
	}

	var data geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(data.Candidates) == 0 || len(data.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(data.Candidates[0].Content.Parts[0].Text), nil
}

func buildPrompt(req models.ChatRequest) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	if len(req.Context) > 0 {
		b.WriteString("\n\nCurrent context:")
		for _, key := range []string{"location", "last_route", "vehicle_type", "route_type"} {
			if value := req.Context[key]; value != "" {
				fmt.Fprintf(&b, "\n- %s: %s", strings.ReplaceAll(key, "_", " "), value)
			}
		}
	}
	b.WriteString("\n\nUser: ")
	b.WriteString(req.Message)
	return b.String()
}

func (s *Service) fallbackResponse(message string) *models.ChatResponse {
	lower := strings.ToLower(message)

	response := "I can help you plan eco-friendly routes, estimate your carbon footprint, and find greener ways to travel. What would you like to know?"
	switch {
	case containsAny(lower, "route", "directions", "navigate"):
		response = "For the greenest trip, pick the eco-friendly route option. It favors steady speeds and avoids congestion, which can cut emissions by 10-20% compared to the fastest route."
	case containsAny(lower, "carbon", "emission", "co2", "footprint"):
		response = "Your carbon footprint depends on distance, vehicle, traffic, and weather. A typical petrol car emits about 0.21 kg of CO2 per km; an electric car about a quarter of that, and a bicycle none at all."
	case containsAny(lower, "traffic", "congestion"):
		response = "Heavy traffic can raise emissions by up to 40%. Travelling outside peak hours or taking an eco-friendly route helps both your journey time and the environment."
	case containsAny(lower, "weather", "rain", "forecast"):
		response = "Weather affects both safety and fuel efficiency. Rain and strong winds increase consumption, so plan extra time and drive smoothly in poor conditions."
	case containsAny(lower, "electric", "ev", "hybrid"):
		response = "Electric vehicles emit roughly 75% less CO2 per km than petrol cars, and hybrids roughly 40% less. If you drive often, switching is one of the biggest single reductions you can make."
	}

	return &models.ChatResponse{
		Success:     true,
		Response:    response,
		Suggestions: suggestionsFor(message),
		Fallback:    true,
		Timestamp:   s.now().UTC(),
	}
}

func suggestionsFor(message string) []models.ChatSuggestion {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "route", "directions", "navigate"):
		return []models.ChatSuggestion{
			{Text: "Compare eco-friendly vs fastest route"},
			{Text: "Check current traffic conditions"},
		}
	case containsAny(lower, "carbon", "emission", "co2", "footprint"):
		return []models.ChatSuggestion{
			{Text: "Estimate emissions for my commute"},
			{Text: "How do I reduce my footprint?"},
		}
	default:
		return []models.ChatSuggestion{
			{Text: "Plan an eco-friendly route"},
			{Text: "Show me eco driving tips"},
		}
	}
}

// defaultEcoTips are served when no personalization applies.
var defaultEcoTips = []models.EcoTip{
	{Title: "Choose eco-friendly routes", Text: "Routes with steady speeds and fewer stops can cut emissions by 10-20%.", Category: "routing"},
	{Title: "Maintain steady speeds", Text: "Driving between 40-60 km/h in the city is the most fuel-efficient range.", Category: "driving"},
	{Title: "Avoid peak hours", Text: "Stop-and-go traffic can raise fuel consumption by up to 40%.", Category: "timing"},
	{Title: "Keep tyres inflated", Text: "Under-inflated tyres increase fuel consumption by around 3%.", Category: "maintenance"},
	{Title: "Combine errands", Text: "A warm engine is more efficient, so one longer trip beats several short ones.", Category: "planning"},
}

// EcoTips returns sustainability tips, personalized to the user's commute
// when its length is known.
func (s *Service) EcoTips(location string, commuteKm float64) []models.EcoTip {
	tips := make([]models.EcoTip, 0, len(defaultEcoTips)+2)

	switch {
	case commuteKm > 0 && commuteKm < 5:
		tips = append(tips, models.EcoTip{
			Title:    "Your commute is cycling distance",
			Text:     fmt.Sprintf("At %.1f km, cycling your commute would save about %.1f kg of CO2 each trip.", commuteKm, commuteKm*0.21),
			Category: "personal",
		})
	case commuteKm >= 5 && commuteKm < 20:
		tips = append(tips, models.EcoTip{
			Title:    "Consider public transport",
			Text:     fmt.Sprintf("Taking transit for your %.1f km commute could cut your trip emissions by more than half.", commuteKm),
			Category: "personal",
		})
	case commuteKm >= 20:
		tips = append(tips, models.EcoTip{
			Title:    "Carpool your long commute",
			Text:     fmt.Sprintf("Sharing your %.1f km commute with one other person halves the per-person emissions.", commuteKm),
			Category: "personal",
		})
	}

	if location != "" {
		tips = append(tips, models.EcoTip{
			Title:    "Check local conditions",
			Text:     fmt.Sprintf("Check traffic and air quality around %s before you leave to pick the cleanest time to travel.", location),
			Category: "personal",
		})
	}

	return append(tips, defaultEcoTips...)
}

func containsAny(s string, substrings ...string) bool {
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
