package services

import (
	"math/rand"
	"sync"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
)

// RevealEngine performs the weighted prize draw. It holds no state besides its
// random source, which is guarded so one engine can serve concurrent requests.
type RevealEngine struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRevealEngine creates an engine drawing from src. A nil src seeds from the clock.
func NewRevealEngine(src rand.Source) *RevealEngine {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &RevealEngine{rng: rand.New(src)}
}

// Reveal picks one candidate with probability weight/Σweight. An empty list yields
// models.NoPrize. The result is always a member of candidates or the sentinel.
func (e *RevealEngine) Reveal(candidates []models.Prize) models.Prize {
	if len(candidates) == 0 {
		return models.NoPrize
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0.0
	for _, c := range candidates {
		total += float64(c.Weight)
	}

	r := e.rng.Float64() * total
	for _, c := range candidates {
		r -= float64(c.Weight)
		if r <= 0 && c.Weight > 0 {
			return c
		}
	}

	// float rounding left r above zero
	return candidates[e.rng.Intn(len(candidates))]
}

// Shuffle reorders candidates in place
func (e *RevealEngine) Shuffle(candidates []models.Prize) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
}
