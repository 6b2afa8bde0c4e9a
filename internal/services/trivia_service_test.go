package services

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTriviaService(store *memStore) TriviaService {
	return NewTriviaService(fakeParticipantRepo{store}, fakePassRepo{store}, TriviaOptions{
		QuestionsPerGame: 3,
		QuestionsToWin:   2,
		PassTTL:          10 * time.Minute,
		Source:           rand.NewSource(7),
	}, logger.Discard())
}

func TestTrivia_QuestionsHideAnswers(t *testing.T) {
	svc := newTestTriviaService(newMemStore())

	questions := svc.Questions()
	require.Len(t, questions, 3)

	seen := map[string]bool{}
	for _, q := range questions {
		assert.Empty(t, q.CorrectOptionID)
		assert.Len(t, q.Options, 3)
		seen[q.ID] = true
	}
	assert.Len(t, seen, 3)
}

func TestTrivia_SubmitAnswers(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.participants[testPhone] = &models.Participant{PhoneNumber: testPhone, FullName: "Ana Gil"}
	svc := newTestTriviaService(store)

	tests := []struct {
		name    string
		answers map[string]string
		score   int
		passed  bool
	}{
		{"all correct", map[string]string{"q1": "a", "q2": "a", "q3": "c"}, 3, true},
		{"two correct", map[string]string{"q1": "A", "q2": "b", "q3": " c "}, 2, true},
		{"one correct", map[string]string{"q1": "a", "q2": "c", "q3": "a"}, 1, false},
		{"unknown questions ignored", map[string]string{"q9": "a", "q1": "a"}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.SubmitAnswers(ctx, &models.TriviaAnswers{PhoneNumber: testPhone, Answers: tt.answers}, testNow)
			require.NoError(t, err)
			assert.Equal(t, tt.score, result.Score)
			assert.Equal(t, 2, result.Required)
			assert.Equal(t, tt.passed, result.Passed)
			if !tt.passed {
				assert.Nil(t, result.Pass)
				return
			}
			require.NotNil(t, result.Pass)
			assert.NotEmpty(t, result.Pass.ID)
			assert.Equal(t, testNow.Add(10*time.Minute), result.Pass.ExpiresAt)

			stored, ok := store.passes[result.Pass.ID]
			require.True(t, ok)
			assert.Equal(t, testPhone, stored.PhoneNumber)
			assert.False(t, stored.Used)
		})
	}
}

func TestTrivia_SubmitAnswersUnknownParticipant(t *testing.T) {
	svc := newTestTriviaService(newMemStore())

	_, err := svc.SubmitAnswers(context.Background(), &models.TriviaAnswers{
		PhoneNumber: testPhone,
		Answers:     map[string]string{"q1": "a"},
	}, testNow)
	assert.ErrorIs(t, err, ErrParticipantNotFound)
}
