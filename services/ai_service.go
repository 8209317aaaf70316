package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/999NK/teste2nutria-sub000/logger"
	"github.com/999NK/teste2nutria-sub000/models"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// AIService wraps the Gemini API for plan generation and coach chat. Calls
// are blocking; the caller decides whether to retry.
type AIService struct {
	client  *genai.Client
	model   string
	history *ChatHistoryStore
}

func NewAIService(ctx context.Context, apiKey string, history *ChatHistoryStore) (*AIService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &AIService{
		client:  client,
		model:   "gemini-1.5-flash",
		history: history,
	}, nil
}

type generatedPlan struct {
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Days           json.RawMessage `json:"days"`
	TargetCalories int             `json:"target_calories"`
	TargetProtein  int             `json:"target_protein"`
	TargetCarbs    int             `json:"target_carbs"`
	TargetFat      int             `json:"target_fat"`
}

// GenerateNutritionPlan asks the model for a weekly meal schedule matching
// the user's profile and returns it as an unsaved Plan.
func (s *AIService) GenerateNutritionPlan(ctx context.Context, user *models.User) (*models.Plan, error) {
	prompt := fmt.Sprintf(`You are a nutrition coach. Create a 7-day meal plan for this person:
%s

REQUIREMENTS:
- Return ONLY valid JSON, no markdown, no explanations
- Use this exact structure:
{"name": "...", "description": "...", "target_calories": 0, "target_protein": 0, "target_carbs": 0, "target_fat": 0, "days": [{"day": "Monday", "meals": [{"name": "...", "time": "08:00", "description": "...", "calories": 0}]}]}
- target_calories is a whole number of kcal; targets for protein, carbs and fat are whole grams
- Cover all 7 days with breakfast, lunch, dinner and one snack each`, profileSummary(user))

	return s.generatePlan(ctx, user.ID, models.PlanTypeNutrition, prompt)
}

// GenerateWorkoutPlan asks the model for a weekly exercise schedule.
func (s *AIService) GenerateWorkoutPlan(ctx context.Context, user *models.User) (*models.Plan, error) {
	prompt := fmt.Sprintf(`You are a personal trainer. Create a 7-day workout plan for this person:
%s

REQUIREMENTS:
- Return ONLY valid JSON, no markdown, no explanations
- Use this exact structure:
{"name": "...", "description": "...", "days": [{"day": "Monday", "workouts": [{"name": "...", "sets": 0, "reps": 0, "duration_min": 0, "notes": "..."}]}]}
- Include rest days explicitly with an empty workouts array`, profileSummary(user))

	return s.generatePlan(ctx, user.ID, models.PlanTypeWorkout, prompt)
}

func (s *AIService) generatePlan(ctx context.Context, userID uint, planType models.PlanType, prompt string) (*models.Plan, error) {
	text, err := s.generateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var gp generatedPlan
	if err := json.Unmarshal([]byte(stripCodeFence(text)), &gp); err != nil {
		logger.Warn("AI plan response was not valid JSON",
			zap.String("type", string(planType)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to parse generated plan: %w", err)
	}
	if gp.Name == "" || len(gp.Days) == 0 {
		return nil, fmt.Errorf("generated plan is incomplete")
	}

	return &models.Plan{
		UserID:         userID,
		Type:           planType,
		Name:           gp.Name,
		Description:    gp.Description,
		Content:        gp.Days,
		TargetCalories: gp.TargetCalories,
		TargetProtein:  gp.TargetProtein,
		TargetCarbs:    gp.TargetCarbs,
		TargetFat:      gp.TargetFat,
	}, nil
}

// Chat answers a free-form coaching question, feeding the bounded per-user
// history back in as conversation context.
func (s *AIService) Chat(ctx context.Context, user *models.User, message string) (string, error) {
	history, err := s.history.Recent(ctx, user.ID)
	if err != nil {
		logger.Warn("failed to load chat history", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	var sb strings.Builder
	sb.WriteString("You are a friendly diet and fitness coach. Answer concisely and practically.\n\n")
	sb.WriteString("User profile:\n")
	sb.WriteString(profileSummary(user))
	if len(history) > 0 {
		sb.WriteString("\n\nConversation so far:\n")
		for _, msg := range history {
			sb.WriteString(fmt.Sprintf("%s: %s\n", msg.Role, msg.Content))
		}
	}
	sb.WriteString("\nuser: ")
	sb.WriteString(message)

	reply, err := s.generateText(ctx, sb.String())
	if err != nil {
		return "", err
	}

	now := time.Now()
	if err := s.history.Append(ctx, user.ID, ChatMessage{Role: "user", Content: message, At: now}); err != nil {
		logger.Warn("failed to store chat message", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	if err := s.history.Append(ctx, user.ID, ChatMessage{Role: "assistant", Content: reply, At: now}); err != nil {
		logger.Warn("failed to store chat reply", zap.Uint("user_id", user.ID), zap.Error(err))
	}
	return reply, nil
}

func (s *AIService) ClearChat(ctx context.Context, userID uint) error {
	return s.history.Clear(ctx, userID)
}

func (s *AIService) generateText(ctx context.Context, prompt string) (string, error) {
	model := s.client.GenerativeModel(s.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response part type")
	}
	return strings.TrimSpace(string(text)), nil
}

func profileSummary(user *models.User) string {
	return fmt.Sprintf(
		"- Weight: %.1f kg\n- Height: %.0f cm\n- Age: %d\n- Sex: %s\n- Activity level: %s\n- Goal: %s\n- Daily targets: %d kcal, %dg protein, %dg carbs, %dg fat",
		user.WeightKg, user.HeightCm, user.Age, user.Sex, user.ActivityLevel, user.Goal,
		user.TargetCalories, user.TargetProtein, user.TargetCarbs, user.TargetFat,
	)
}

// stripCodeFence removes a markdown ``` wrapper when the model ignores the
// plain-JSON instruction.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
