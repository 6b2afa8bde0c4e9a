package services

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/pkg/fraudcheck"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory store whose mutex makes every operation, ClaimPrize
// included, serializable.
type memStore struct {
	mu           sync.Mutex
	prizes       map[string]*models.Prize
	claims       map[string]*models.ClaimRecord
	wins         map[string]*models.WinRecord
	participants map[string]*models.Participant
	alerts       []*models.FraudAlert
	passes       map[string]*models.PlayPass
	verifiers    map[string]*models.Verifier
	settings     *models.PromoSettings

	// transientClaims makes the next n ClaimPrize calls fail with ErrTransient
	transientClaims int
	claimErr        error
	claimCalls      int
	// claimGate holds ClaimPrize callers until all of them have arrived
	claimGate   *sync.WaitGroup
	alertErr    error
	winErr      error
	settingsErr error
}

func newMemStore() *memStore {
	return &memStore{
		prizes:       map[string]*models.Prize{},
		claims:       map[string]*models.ClaimRecord{},
		wins:         map[string]*models.WinRecord{},
		participants: map[string]*models.Participant{},
		passes:       map[string]*models.PlayPass{},
		verifiers:    map[string]*models.Verifier{},
	}
}

func (m *memStore) addPrize(id string, weight, stock int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prizes[id] = &models.Prize{ID: id, Name: strings.ToUpper(id[:1]) + id[1:], Weight: weight, Stock: stock}
}

func (m *memStore) stock(id string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prizes[id].Stock
}

func (m *memStore) claimCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.claims)
}

type fakePrizeRepo struct{ *memStore }

func (r fakePrizeRepo) FindAll(ctx context.Context) ([]*models.Prize, error) {
	return r.filter(func(*models.Prize) bool { return true }), nil
}

func (r fakePrizeRepo) FindByID(ctx context.Context, id string) (*models.Prize, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.prizes[strings.ToLower(id)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakePrizeRepo) FindDrawable(ctx context.Context) ([]*models.Prize, error) {
	return r.filter(func(p *models.Prize) bool { return p.Stock > 0 && p.Weight > 0 }), nil
}

func (r fakePrizeRepo) filter(keep func(*models.Prize) bool) []*models.Prize {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Prize{}
	for _, p := range r.prizes {
		if keep(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r fakePrizeRepo) Create(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prizes[prize.ID]; ok {
		return repositories.ErrDuplicate
	}
	cp := *prize
	r.prizes[prize.ID] = &cp
	return nil
}

func (r fakePrizeRepo) Update(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.prizes[prize.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	cp := *prize
	cp.CreatedAt = existing.CreatedAt
	r.prizes[prize.ID] = &cp
	return nil
}

func (r fakePrizeRepo) Upsert(ctx context.Context, prize *models.Prize) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *prize
	r.prizes[prize.ID] = &cp
	return nil
}

func (r fakePrizeRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.prizes[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(r.prizes, id)
	return nil
}

func (r fakePrizeRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.prizes)), nil
}

type fakeClaimRepo struct{ *memStore }

func (r fakeClaimRepo) FindByToken(ctx context.Context, token string) (*models.ClaimRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r fakeClaimRepo) FindRecent(ctx context.Context, limit int) ([]*models.ClaimRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.ClaimRecord{}
	for _, c := range r.claims {
		cp := *c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClaimedAt.After(out[j].ClaimedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r fakeClaimRepo) ClaimPrize(ctx context.Context, claim *models.ClaimRecord) (*models.Prize, error) {
	if r.claimGate != nil {
		r.claimGate.Done()
		r.claimGate.Wait()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.claimCalls++

	if r.claimErr != nil {
		return nil, r.claimErr
	}
	if r.transientClaims > 0 {
		r.transientClaims--
		return nil, repositories.ErrTransient
	}

	prize, ok := r.prizes[claim.PrizeID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if prize.Stock <= 0 {
		return nil, repositories.ErrNoStock
	}
	if _, exists := r.claims[claim.Token]; exists {
		return nil, repositories.ErrAlreadyClaimed
	}

	before := *prize
	cp := *claim
	r.claims[claim.Token] = &cp
	prize.Stock--
	return &before, nil
}

func (r fakeClaimRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.claims)), nil
}

func (r fakeClaimRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.claims))
	r.claims = map[string]*models.ClaimRecord{}
	return n, nil
}

type fakeWinRepo struct{ *memStore }

func (r fakeWinRepo) Create(ctx context.Context, win *models.WinRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.winErr != nil {
		return r.winErr
	}
	if _, ok := r.wins[win.Token]; ok {
		return repositories.ErrDuplicate
	}
	cp := *win
	r.wins[win.Token] = &cp
	return nil
}

func (r fakeWinRepo) FindByToken(ctx context.Context, token string) (*models.WinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wins[token]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r fakeWinRepo) FindByPhone(ctx context.Context, phone string) ([]*models.WinRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.WinRecord
	for _, w := range r.wins {
		if w.ParticipantPhone == phone {
			cp := *w
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r fakeWinRepo) MarkClaimed(ctx context.Context, token string, claimedAt time.Time, claimedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.wins[token]
	if !ok || w.Status != models.WinStatusWon {
		return repositories.ErrNotFound
	}
	w.Status = models.WinStatusClaimed
	w.ClaimedAt = &claimedAt
	w.ClaimedBy = claimedBy
	return nil
}

func (r fakeWinRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.wins)), nil
}

func (r fakeWinRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.wins))
	r.wins = map[string]*models.WinRecord{}
	return n, nil
}

type fakeParticipantRepo struct{ *memStore }

func (r fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.participants[p.PhoneNumber]; ok {
		return repositories.ErrDuplicate
	}
	cp := *p
	r.participants[p.PhoneNumber] = &cp
	return nil
}

func (r fakeParticipantRepo) FindByPhone(ctx context.Context, phone string) (*models.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[phone]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r fakeParticipantRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.participants)), nil
}

func (r fakeParticipantRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.participants))
	r.participants = map[string]*models.Participant{}
	return n, nil
}

type fakeAlertRepo struct{ *memStore }

func (r fakeAlertRepo) Create(ctx context.Context, alert *models.FraudAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.alertErr != nil {
		return r.alertErr
	}
	alert.ID = primitive.NewObjectID()
	cp := *alert
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r fakeAlertRepo) FindAll(ctx context.Context, onlyPending bool) ([]*models.FraudAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.FraudAlert{}
	for _, a := range r.alerts {
		if onlyPending && a.IsReviewed {
			continue
		}
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeAlertRepo) MarkReviewed(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == id {
			a.IsReviewed = true
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r fakeAlertRepo) CountPending(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, a := range r.alerts {
		if !a.IsReviewed {
			n++
		}
	}
	return n, nil
}

func (r fakeAlertRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.alerts))
	r.alerts = nil
	return n, nil
}

type fakePassRepo struct{ *memStore }

func (r fakePassRepo) Create(ctx context.Context, pass *models.PlayPass) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *pass
	r.passes[pass.ID] = &cp
	return nil
}

func (r fakePassRepo) Consume(ctx context.Context, id, phone string, now time.Time) (*models.PlayPass, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.passes[id]
	if !ok || p.Used || p.PhoneNumber != phone || !p.ExpiresAt.After(now) {
		return nil, repositories.ErrNotFound
	}
	p.Used = true
	cp := *p
	return &cp, nil
}

func (r fakePassRepo) DeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.passes))
	r.passes = map[string]*models.PlayPass{}
	return n, nil
}

type fakeVerifierRepo struct{ *memStore }

func (r fakeVerifierRepo) Create(ctx context.Context, v *models.Verifier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.verifiers[v.Username]; ok {
		return repositories.ErrDuplicate
	}
	v.ID = primitive.NewObjectID()
	cp := *v
	r.verifiers[v.Username] = &cp
	return nil
}

func (r fakeVerifierRepo) FindByUsername(ctx context.Context, username string) (*models.Verifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.verifiers[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (r fakeVerifierRepo) FindAll(ctx context.Context) ([]*models.Verifier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*models.Verifier{}
	for _, v := range r.verifiers {
		cp := *v
		out = append(out, &cp)
	}
	return out, nil
}

func (r fakeVerifierRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, v := range r.verifiers {
		if v.ID == id {
			delete(r.verifiers, name)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeSettingsRepo struct{ *memStore }

func (r fakeSettingsRepo) Get(ctx context.Context) (*models.PromoSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settingsErr != nil {
		return nil, r.settingsErr
	}
	if r.settings == nil {
		return nil, repositories.ErrNotFound
	}
	cp := *r.settings
	return &cp, nil
}

func (r fakeSettingsRepo) Save(ctx context.Context, s *models.PromoSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.settings = &cp
	return nil
}

// stubChecker returns a fixed verdict or error and counts calls
type stubChecker struct {
	verdict fraudcheck.Verdict
	err     error
	calls   int
}

func (c *stubChecker) CheckSubmission(ctx context.Context, s fraudcheck.Submission) (fraudcheck.Verdict, error) {
	c.calls++
	return c.verdict, c.err
}
