package coach

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlowther/centsy/internal/income"
	"github.com/mlowther/centsy/internal/ledger"
	"github.com/mlowther/centsy/internal/school"
)

type stubRepo struct {
	messages []Message
	createFn func(msg *Message) error
}

func (r *stubRepo) CreateMessage(ctx context.Context, msg *Message) error {
	if r.createFn != nil {
		if err := r.createFn(msg); err != nil {
			return err
		}
	}

	r.messages = append(r.messages, *msg)

	return nil
}

func (r *stubRepo) ListMessages(ctx context.Context, ownerID uuid.UUID) ([]Message, error) {
	return r.messages, nil
}

type stubCompleter struct {
	reply string
	err   error

	gotHistory     []Message
	gotInstruction string
}

func (c *stubCompleter) Complete(ctx context.Context, history []Message, systemInstruction string) (string, error) {
	c.gotHistory = history
	c.gotInstruction = systemInstruction

	return c.reply, c.err
}

type stubData struct {
	txs     []*ledger.Transaction
	sources []*income.Source
	plan    *school.Plan
	planErr error
}

func (d *stubData) Transactions(ctx context.Context, ownerID uuid.UUID) ([]*ledger.Transaction, error) {
	return d.txs, nil
}

func (d *stubData) IncomeSources(ctx context.Context, ownerID uuid.UUID) ([]*income.Source, error) {
	return d.sources, nil
}

func (d *stubData) SchoolPlan(ctx context.Context, ownerID uuid.UUID) (*school.Plan, error) {
	if d.planErr != nil {
		return nil, d.planErr
	}

	return d.plan, nil
}

func TestService_Ask(t *testing.T) {
	ownerID := uuid.New()

	repo := &stubRepo{messages: []Message{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleAssistant, Content: "what do you want"},
	}}
	llm := &stubCompleter{reply: "stop buying coffee"}
	data := &stubData{planErr: school.ErrNotFound}

	svc := NewService(repo, llm, data)

	msg, err := svc.Ask(context.Background(), ownerID, "how do I save money?")
	require.NoError(t, err)

	assert.Equal(t, RoleAssistant, msg.Role)
	assert.Equal(t, "stop buying coffee", msg.Content)
	assert.Equal(t, ownerID, msg.OwnerID)

	// Completion sees the prior turns plus the new question.
	require.Len(t, llm.gotHistory, 3)
	assert.Equal(t, "how do I save money?", llm.gotHistory[2].Content)

	assert.Contains(t, llm.gotInstruction, "You are Broke Bot")
	assert.Contains(t, llm.gotInstruction, "No transactions found.")

	// Both the question and the reply are persisted.
	require.Len(t, repo.messages, 4)
	assert.Equal(t, RoleUser, repo.messages[2].Role)
	assert.Equal(t, RoleAssistant, repo.messages[3].Role)
}

func TestService_Ask_EmptyQuestion(t *testing.T) {
	svc := NewService(&stubRepo{}, &stubCompleter{}, &stubData{})

	_, err := svc.Ask(context.Background(), uuid.New(), "")
	assert.Error(t, err)
}

func TestService_Ask_CompleterError(t *testing.T) {
	repo := &stubRepo{}
	llm := &stubCompleter{err: errors.New("model unavailable")}
	svc := NewService(repo, llm, &stubData{planErr: school.ErrNotFound})

	_, err := svc.Ask(context.Background(), uuid.New(), "hello?")
	require.Error(t, err)

	// The question is kept even when the reply fails.
	require.Len(t, repo.messages, 1)
	assert.Equal(t, RoleUser, repo.messages[0].Role)
}

func TestService_Ask_RepoError(t *testing.T) {
	repo := &stubRepo{createFn: func(msg *Message) error { return errors.New("db down") }}
	svc := NewService(repo, &stubCompleter{reply: "x"}, &stubData{})

	_, err := svc.Ask(context.Background(), uuid.New(), "hello?")
	assert.Error(t, err)
}
