package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/sansol-promo-backend/internal/metrics"
	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/repositories"
	"github.com/ArowuTest/sansol-promo-backend/internal/utils"
	"github.com/ArowuTest/sansol-promo-backend/pkg/logger"
	"github.com/ArowuTest/sansol-promo-backend/pkg/qrtoken"
	"github.com/ArowuTest/sansol-promo-backend/pkg/smsgateway"
	"github.com/sirupsen/logrus"
)

// NoPrizeMessage is shown when nothing is left to draw
const NoPrizeMessage = "no prizes available, try later"

// RevealResult is the outcome of spending a play pass
type RevealResult struct {
	Won     bool              `json:"won"`
	Message string            `json:"message,omitempty"`
	Win     *models.WinRecord `json:"win,omitempty"`
}

type playService struct {
	participantRepo repositories.ParticipantRepository
	winRepo         repositories.WinRecordRepository
	passRepo        repositories.PlayPassRepository
	prizes          PrizeService
	settings        SettingsService
	engine          *RevealEngine
	sms             smsgateway.Gateway
	log             *logger.Logger
	metrics         *metrics.Metrics
}

// NewPlayService creates a new PlayService. sms may be nil to skip notifications.
func NewPlayService(
	participantRepo repositories.ParticipantRepository,
	winRepo repositories.WinRecordRepository,
	passRepo repositories.PlayPassRepository,
	prizes PrizeService,
	settings SettingsService,
	engine *RevealEngine,
	sms smsgateway.Gateway,
	log *logger.Logger,
	m *metrics.Metrics,
) PlayService {
	return &playService{
		participantRepo: participantRepo,
		winRepo:         winRepo,
		passRepo:        passRepo,
		prizes:          prizes,
		settings:        settings,
		engine:          engine,
		sms:             sms,
		log:             log,
		metrics:         m,
	}
}

// Reveal checks the participant may play, consumes the pass, draws a prize and
// writes the ledger entry for it
func (s *playService) Reveal(ctx context.Context, req *models.RevealRequest, now time.Time) (*RevealResult, error) {
	phone := utils.CleanPhone(req.PhoneNumber)
	entry := s.log.Entry().WithField("phone", phone)

	participant, err := s.participantRepo.FindByPhone(ctx, phone)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrParticipantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up participant: %w", err)
	}

	wins, err := s.winRepo.FindByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("failed to load participant wins: %w", err)
	}
	for _, w := range wins {
		if w.BlocksReplay(now) {
			return nil, ErrAlreadyPlayed
		}
	}

	days, err := s.settings.ValidityDays(ctx)
	if err != nil {
		return nil, err
	}

	candidates, err := s.prizes.DrawableCandidates(ctx)
	if err != nil {
		return nil, err
	}

	// past this point only the ledger write can fail with the pass spent
	if _, err := s.passRepo.Consume(ctx, req.PassID, phone, now); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidPass
		}
		return nil, fmt.Errorf("failed to consume play pass: %w", err)
	}

	s.engine.Shuffle(candidates)
	prize := s.engine.Reveal(candidates)
	if prize.IsNoPrize() {
		entry.Info("reveal found no drawable prizes")
		s.metrics.ObserveReveal("no_prize")
		return &RevealResult{Won: false, Message: NoPrizeMessage}, nil
	}

	issuedAt := time.UnixMilli(now.UnixMilli())
	win := &models.WinRecord{
		Token:            qrtoken.Issue(prize.ID, issuedAt.UnixMilli()),
		PrizeID:          prize.ID,
		PrizeName:        prize.Name,
		PrizeImageRef:    prize.ImageRef,
		ParticipantName:  participant.FullName,
		ParticipantPhone: participant.PhoneNumber,
		IssuedAt:         issuedAt,
		ExpiresAt:        issuedAt.Add(time.Duration(days) * 24 * time.Hour),
		Status:           models.WinStatusWon,
	}
	if err := s.winRepo.Create(ctx, win); err != nil {
		entry.WithFields(logrus.Fields{
			"prize_id": prize.ID,
			"token":    win.Token,
		}).WithError(err).Error("prize drawn but win record could not be written")
		return nil, fmt.Errorf("failed to record win: %w", err)
	}

	entry.WithFields(logrus.Fields{
		"prize_id": prize.ID,
		"token":    win.Token,
	}).Info("prize revealed")
	s.metrics.ObserveReveal("won")

	s.notify(ctx, win)
	return &RevealResult{Won: true, Win: win}, nil
}

// notify texts the code to the winner. Failures are logged only.
func (s *playService) notify(ctx context.Context, win *models.WinRecord) {
	if s.sms == nil {
		return
	}
	message := fmt.Sprintf("Sansol: ganaste %s. Tu código es %s, válido hasta el %s.",
		win.PrizeName, win.Token, win.ExpiresAt.Format("02/01/2006"))
	if _, err := s.sms.SendSMS(ctx, win.ParticipantPhone, message); err != nil {
		s.log.Entry().WithField("token", win.Token).WithError(err).Warn("failed to send win SMS")
	}
}

func (s *playService) GetWin(ctx context.Context, token string) (*models.WinRecord, error) {
	tok, err := qrtoken.Parse(token)
	if err != nil {
		return nil, newRedemptionError(CodeInvalidFormat, ErrInvalidFormat.Message, err)
	}
	win, err := s.winRepo.FindByToken(ctx, tok.String())
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrWinNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get win: %w", err)
	}
	return win, nil
}
