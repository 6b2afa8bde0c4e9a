package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/ArowuTest/sansol-promo-backend/internal/models"
	"github.com/ArowuTest/sansol-promo-backend/internal/services"
	"github.com/ArowuTest/sansol-promo-backend/pkg/qrtoken"
	"github.com/gin-gonic/gin"
)

const maxQRSize = 1024

// PlayHandler serves the trivia gate, the reveal and the participant's win
type PlayHandler struct {
	triviaService services.TriviaService
	playService   services.PlayService
}

// NewPlayHandler creates a new PlayHandler
func NewPlayHandler(triviaService services.TriviaService, playService services.PlayService) *PlayHandler {
	return &PlayHandler{
		triviaService: triviaService,
		playService:   playService,
	}
}

// Questions handles GET /trivia
func (h *PlayHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, h.triviaService.Questions())
}

// SubmitAnswers handles POST /trivia/answers
func (h *PlayHandler) SubmitAnswers(c *gin.Context) {
	var req models.TriviaAnswers
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.triviaService.SubmitAnswers(c.Request.Context(), &req, now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type revealResponse struct {
	*services.RevealResult
	QRURL string `json:"qrUrl,omitempty"`
}

// Reveal handles POST /reveal
func (h *PlayHandler) Reveal(c *gin.Context) {
	var req models.RevealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	result, err := h.playService.Reveal(c.Request.Context(), &req, now())
	if err != nil {
		respondError(c, err)
		return
	}
	resp := revealResponse{RevealResult: result}
	if result.Win != nil {
		resp.QRURL = "/api/v1/wins/" + url.PathEscape(result.Win.Token) + "/qr.png"
	}
	c.JSON(http.StatusOK, resp)
}

type winResponse struct {
	*models.WinRecord
	State models.WinState `json:"state"`
}

// GetWin handles GET /wins/:token
func (h *PlayHandler) GetWin(c *gin.Context) {
	win, err := h.playService.GetWin(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, winResponse{WinRecord: win, State: win.State(now())})
}

// WinQR handles GET /wins/:token/qr.png
func (h *PlayHandler) WinQR(c *gin.Context) {
	win, err := h.playService.GetWin(c.Request.Context(), c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	if size > maxQRSize {
		size = maxQRSize
	}
	png, err := qrtoken.PNG(win.Token, size)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, "image/png", png)
}
