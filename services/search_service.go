package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	config "github.com/notewala/gyan_notes/configs"
	"github.com/notewala/gyan_notes/database"
	"github.com/notewala/gyan_notes/models"
)

const aiSearchCandidates = 50
const aiSearchMaxResults = 10

func aiGatewayKey() string { return config.Config("AI_GATEWAY_API_KEY") }

func aiGatewayURL() string {
	if url := config.Config("AI_GATEWAY_URL"); url != "" {
		return url
	}
	return "https://ai.gateway.lovable.dev/v1/chat/completions"
}

func aiGatewayModel() string {
	if model := config.Config("AI_GATEWAY_MODEL"); model != "" {
		return model
	}
	return "google/gemini-2.5-flash"
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type searchCandidate struct {
	ID       uuid.UUID `json:"id"`
	Topic    string    `json:"topic"`
	Subject  string    `json:"subject"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
	Tags     []string  `json:"tags"`
}

// SearchNotes ranks the approved-note candidates against a free-text query
// with the AI gateway. The model is a pure ranking function here: any
// failure (rate limit, quota, malformed output) falls back to naive
// substring matching over topic and subject.
func SearchNotes(query string) ([]models.Note, error) {
	var candidates []models.Note
	err := database.DB.
		Where("status = ?", models.NoteStatusApproved).
		Order("trust_score desc").
		Limit(aiSearchCandidates).
		Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	ids, err := rankWithAI(query, candidates)
	if err != nil {
		log.Printf("AI search unavailable, using substring fallback: %v", err)
		return substringFallback(query, candidates), nil
	}

	byID := make(map[uuid.UUID]models.Note, len(candidates))
	for _, note := range candidates {
		byID[note.ID] = note
	}

	var ranked []models.Note
	for _, id := range ids {
		if note, ok := byID[id]; ok {
			ranked = append(ranked, note)
		}
		if len(ranked) >= aiSearchMaxResults {
			break
		}
	}
	if len(ranked) == 0 {
		return substringFallback(query, candidates), nil
	}
	return ranked, nil
}

func rankWithAI(query string, candidates []models.Note) ([]uuid.UUID, error) {
	apiKey := aiGatewayKey()
	if apiKey == "" {
		return nil, fmt.Errorf("AI gateway key not configured")
	}

	summaries := make([]searchCandidate, 0, len(candidates))
	for _, note := range candidates {
		summaries = append(summaries, searchCandidate{
			ID:       note.ID,
			Topic:    note.Topic,
			Subject:  note.Subject,
			Category: note.Category,
			Level:    note.Level,
			Tags:     note.Tags,
		})
	}
	candidateJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}

	payload := chatCompletionRequest{
		Model: aiGatewayModel(),
		Messages: []chatMessage{
			{
				Role:    "system",
				Content: `You are a search assistant for an educational notes platform. Match the user's question with the most relevant notes. Return ONLY a JSON array of note IDs in order of relevance, most relevant first, maximum 10. Format: ["id1","id2"]`,
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("User question: %q\n\nAvailable notes: %s", query, candidateJSON),
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest("POST", aiGatewayURL(), bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 20 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("AI gateway rate limited")
	}
	if resp.StatusCode == http.StatusPaymentRequired {
		return nil, fmt.Errorf("AI credits exhausted")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("AI gateway returned status %d", resp.StatusCode)
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return nil, err
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("AI gateway returned no choices")
	}

	return parseRankedIDs(completion.Choices[0].Message.Content)
}

// parseRankedIDs extracts the model's JSON id array, tolerating markdown
// code fences around it.
func parseRankedIDs(content string) ([]uuid.UUID, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	var raw []string
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("malformed AI output: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func substringFallback(query string, candidates []models.Note) []models.Note {
	needle := strings.ToLower(query)
	var matched []models.Note
	for _, note := range candidates {
		if strings.Contains(strings.ToLower(note.Topic), needle) ||
			strings.Contains(strings.ToLower(note.Subject), needle) {
			matched = append(matched, note)
		}
		if len(matched) >= aiSearchMaxResults {
			break
		}
	}
	return matched
}
