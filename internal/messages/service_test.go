package messages_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-lending/internal/memory"
	"library-lending/internal/messages"
	"library-lending/internal/models"
)

type fixedClock struct {
	now time.Time
}

func (f fixedClock) Now() time.Time { return f.now }

var testTime = time.Date(2026, time.May, 20, 15, 0, 0, 0, time.UTC)

func newService() *messages.Service {
	return messages.NewService(memory.NewStore(), messages.WithClock(fixedClock{now: testTime}))
}

func Test_PostMessage_OpensThreadForUser(t *testing.T) {
	// arrange
	service := newService()

	// act
	created, err := service.PostMessage(context.Background(), "u1@example.com", models.PostMessageRequest{
		Title:    "Opening hours",
		Question: "Is the library open on Sundays?",
	})

	// assert
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.Closed)
	assert.Equal(t, testTime, created.CreatedAt)

	threads, err := service.ListByUser(context.Background(), "u1@example.com")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "Opening hours", threads[0].Title)
}

func Test_PostMessage_Fails_WithoutTitleOrQuestion(t *testing.T) {
	service := newService()

	_, err := service.PostMessage(context.Background(), "u1@example.com",
		models.PostMessageRequest{Title: "Only a title"})
	assert.ErrorIs(t, err, messages.ErrEmptyQuestion)

	_, err = service.PostMessage(context.Background(), "u1@example.com",
		models.PostMessageRequest{Question: "Only a question?"})
	assert.ErrorIs(t, err, messages.ErrEmptyQuestion)
}

func Test_AnswerMessage_ClosesThreadWithResponse(t *testing.T) {
	// arrange
	service := newService()
	created, err := service.PostMessage(context.Background(), "u1@example.com", models.PostMessageRequest{
		Title:    "Lost card",
		Question: "How do I replace my card?",
	})
	require.NoError(t, err)

	// act
	err = service.AnswerMessage(context.Background(), "admin@example.com", models.AdminAnswerRequest{
		ID:       created.ID,
		Response: "Visit the front desk.",
	})

	// assert
	require.NoError(t, err)

	threads, err := service.ListByUser(context.Background(), "u1@example.com")
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.True(t, threads[0].Closed)
	assert.Equal(t, "admin@example.com", threads[0].AdminEmail)
	assert.Equal(t, "Visit the front desk.", threads[0].Response)
}

func Test_AnswerMessage_Fails_ForUnknownThread(t *testing.T) {
	service := newService()

	err := service.AnswerMessage(context.Background(), "admin@example.com",
		models.AdminAnswerRequest{ID: "missing", Response: "..."})

	assert.ErrorIs(t, err, messages.ErrMessageNotFound)
}

func Test_OpenQuestions_ExcludesAnsweredThreads(t *testing.T) {
	service := newService()

	first, err := service.PostMessage(context.Background(), "u1@example.com",
		models.PostMessageRequest{Title: "First", Question: "Q1"})
	require.NoError(t, err)
	_, err = service.PostMessage(context.Background(), "u2@example.com",
		models.PostMessageRequest{Title: "Second", Question: "Q2"})
	require.NoError(t, err)

	require.NoError(t, service.AnswerMessage(context.Background(), "admin@example.com",
		models.AdminAnswerRequest{ID: first.ID, Response: "A1"}))

	open, err := service.OpenQuestions(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Second", open[0].Title)
}
