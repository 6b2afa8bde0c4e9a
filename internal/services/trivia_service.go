package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/internal/utils"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// DefaultTriviaQuestions is the question bank of the anniversary promotion
var DefaultTriviaQuestions = []models.TriviaQuestion{
	{
		ID:   "q1",
		Text: "¿Cuántos años cumplimos en Junio de 2025?",
		Options: []models.TriviaOption{
			{ID: "a", Text: "1 año"},
			{ID: "b", Text: "3 años"},
			{ID: "c", Text: "5 años"},
		},
		CorrectOptionID: "a",
	},
	{
		ID:   "q2",
		Text: "¿En qué avenida está nuestro local?",
		Options: []models.TriviaOption{
			{ID: "a", Text: "Av. Angelelli"},
			{ID: "b", Text: "Av. San Nicolás de Bari"},
			{ID: "c", Text: "Av. Facundo Quiroga"},
		},
		CorrectOptionID: "a",
	},
	{
		ID:   "q3",
		Text: "¿Qué productos principales vendemos?",
		Options: []models.TriviaOption{
			{ID: "a", Text: "Chocolates y Golosinas"},
			{ID: "b", Text: "Bebidas y Snacks"},
			{ID: "c", Text: "Parlantes y Electrónica"},
		},
		CorrectOptionID: "c",
	},
}

// TriviaResult is a scored submission. Pass is set only when the gate was passed.
type TriviaResult struct {
	Score    int              `json:"score"`
	Required int              `json:"required"`
	Passed   bool             `json:"passed"`
	Pass     *models.PlayPass `json:"pass,omitempty"`
}

// TriviaOptions configures the trivia gate
type TriviaOptions struct {
	Questions        []models.TriviaQuestion
	QuestionsPerGame int
	QuestionsToWin   int
	PassTTL          time.Duration
	Source           rand.Source
}

type triviaService struct {
	participantRepo repositories.ParticipantRepository
	passRepo        repositories.PlayPassRepository
	bank            map[string]models.TriviaQuestion
	questions       []models.TriviaQuestion
	perGame         int
	toWin           int
	passTTL         time.Duration
	log             *logger.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

// NewTriviaService creates a new TriviaService
func NewTriviaService(
	participantRepo repositories.ParticipantRepository,
	passRepo repositories.PlayPassRepository,
	opts TriviaOptions,
	log *logger.Logger,
) TriviaService {
	questions := opts.Questions
	if len(questions) == 0 {
		questions = DefaultTriviaQuestions
	}
	perGame := opts.QuestionsPerGame
	if perGame <= 0 || perGame > len(questions) {
		perGame = len(questions)
	}
	toWin := opts.QuestionsToWin
	if toWin <= 0 || toWin > perGame {
		toWin = perGame
	}
	ttl := opts.PassTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	src := opts.Source
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}

	bank := make(map[string]models.TriviaQuestion, len(questions))
	for _, q := range questions {
		bank[q.ID] = q
	}

	return &triviaService{
		participantRepo: participantRepo,
		passRepo:        passRepo,
		bank:            bank,
		questions:       questions,
		perGame:         perGame,
		toWin:           toWin,
		passTTL:         ttl,
		log:             log,
		rng:             rand.New(src),
	}
}

// Questions picks a game's worth of questions and shuffles their options
func (s *triviaService) Questions() []models.TriviaQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := s.rng.Perm(len(s.questions))[:s.perGame]
	out := make([]models.TriviaQuestion, 0, s.perGame)
	for _, i := range order {
		q := s.questions[i]
		options := append([]models.TriviaOption(nil), q.Options...)
		s.rng.Shuffle(len(options), func(a, b int) {
			options[a], options[b] = options[b], options[a]
		})
		out = append(out, models.TriviaQuestion{ID: q.ID, Text: q.Text, Options: options})
	}
	return out
}

// SubmitAnswers scores the answers of a registered participant
func (s *triviaService) SubmitAnswers(ctx context.Context, req *models.TriviaAnswers, now time.Time) (*TriviaResult, error) {
	phone := utils.CleanPhone(req.PhoneNumber)
	if _, err := s.participantRepo.FindByPhone(ctx, phone); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	score := 0
	for questionID, optionID := range req.Answers {
		q, ok := s.bank[questionID]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(optionID), q.CorrectOptionID) {
			score++
		}
	}

	result := &TriviaResult{Score: score, Required: s.toWin}
	if score < s.toWin {
		return result, nil
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate play pass id: %w", err)
	}
	pass := &models.PlayPass{
		ID:          id,
		PhoneNumber: phone,
		Score:       score,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.passTTL),
	}
	if err := s.passRepo.Create(ctx, pass); err != nil {
		return nil, fmt.Errorf("failed to store play pass: %w", err)
	}

	s.log.Entry().WithField("phone", phone).WithField("score", score).Info("trivia passed, play pass issued")
	result.Passed = true
	result.Pass = pass
	return result, nil
}
