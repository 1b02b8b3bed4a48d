// Package coach implements the Broke Bot financial coaching conversation:
// persisted chat history, the owner's financial data rendered into the
// system instruction, and completion through Gemini.
package coach

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mlowther/centsy/internal/income"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a coaching conversation.
type Message struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"-"`
	Timestamp time.Time `json:"timestamp"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
}

type Repository interface {
	CreateMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, ownerID uuid.UUID) ([]Message, error)
}

// DataProvider supplies the financial data that goes into the system
// instruction.
type DataProvider interface {
	Transactions(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Transaction, error)
	IncomeSources(ctx context.Context, ownerID uuid.UUID) ([]*income.Source, error)
	SchoolPlan(ctx context.Context, ownerID uuid.UUID) (*school.Plan, error)
}

type Service struct {
	repo Repository
	llm  Completer
	data DataProvider
}

func NewService(repo Repository, llm Completer, data DataProvider) *Service {
	return &Service{repo: repo, llm: llm, data: data}
}

// History returns the owner's conversation, oldest first.
func (s *Service) History(ctx context.Context, ownerID uuid.UUID) ([]Message, error) {
	return s.repo.ListMessages(ctx, ownerID)
}

// Ask appends the question to the conversation, completes it against the
// owner's financial context and persists both turns. The assistant message
// is returned.
func (s *Service) Ask(ctx context.Context, ownerID uuid.UUID, question string) (*Message, error) {
	if question == "" {
		return nil, fmt.Errorf("question must not be empty")
	}

	history, err := s.repo.ListMessages(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("loading conversation: %w", err)
	}

	userMsg := &Message{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Role:      RoleUser,
		Content:   question,
	}

	if err := s.repo.CreateMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("saving question: %w", err)
	}

	instruction, err := s.systemInstruction(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	reply, err := s.llm.Complete(ctx, append(history, *userMsg), instruction)
	if err != nil {
		return nil, fmt.Errorf("completing conversation: %w", err)
	}

	assistantMsg := &Message{
		ID:        uuid.New(),
		OwnerID:   ownerID,
		Timestamp: time.Now(),
		Role:      RoleAssistant,
		Content:   reply,
	}

	if err := s.repo.CreateMessage(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("saving reply: %w", err)
	}

	return assistantMsg, nil
}

func (s *Service) systemInstruction(ctx context.Context, ownerID uuid.UUID) (string, error) {
	txs, err := s.data.Transactions(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("loading transactions for context: %w", err)
	}

	sources, err := s.data.IncomeSources(ctx, ownerID)
	if err != nil {
		return "", fmt.Errorf("loading income sources for context: %w", err)
	}

	plan, err := s.data.SchoolPlan(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, school.ErrNotFound) {
			return "", fmt.Errorf("loading school plan for context: %w", err)
		}

		plan = nil
	}

	return fmt.Sprintf(systemPromptTemplate, BuildContext(txs, sources, plan)), nil
}

const systemPromptTemplate = `### ROLE:

You are Broke Bot, an AI assistant for personal finance management. You help users with budget optimization, spending analysis, savings strategies, subscription management, and general financial advice. You use a harsh, sometimes verbally insensitive tone.

### CONTEXT:

Below is a full overview of the user's financial data from the database. Use it to provide the user with more relevant, detailed answers to their questions. Only reference specific transactions, amounts, and dates when relevant or when the user asks for them. Don't overuse financial figures - let the conversation flow naturally and only bring up specific data when it adds value to your response.

%s

### TASK:

Keep responses to one paragraph maximum. Brevity is critical - you will be scored on how concise you are and how relevant the information you provide is. Don't provide information just to provide information. Get to the point quickly and avoid unnecessary words. If asked about recent spending, bring up spending information. If asked something unrelated to finances, try to steer the conversation toward something relevant.

Match the user's energy in your responses. If a user asks a short, simple question, give a concise answer. If a user provides a detailed, long prompt, still keep your response to one paragraph maximum - be comprehensive but brief.

When mentioning any monetary amounts (including amounts from the context data above), always include the dollar sign (e.g., "$150" not "150").

Be direct and honest - tell the user what they need to hear, not what they want to hear. Base your advice on the user's actual spending patterns and income when relevant.

### RESTRICTIONS:

Write in plain text only - do not use markdown formatting (no **, __, *, or other markdown syntax). Never use emojis unless the user specifically asks for them. Never invent or assume financial details not provided in the context. Do not create "next steps" sections unless the user explicitly asks for action items. Keep responses natural and conversational, not structured like a formal document.`
