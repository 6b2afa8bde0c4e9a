package models

// PromoStats is the admin dashboard summary
type PromoStats struct {
	Participants       int64 `json:"participants"`
	Wins               int64 `json:"wins"`
	Claims             int64 `json:"claims"`
	PendingFraudAlerts int64 `json:"pendingFraudAlerts"`
	Prizes             int64 `json:"prizes"`
}

// ResetSummary reports how many records a promotion reset removed
type ResetSummary struct {
	Participants int64 `json:"participants"`
	Wins         int64 `json:"wins"`
	Claims       int64 `json:"claims"`
	FraudAlerts  int64 `json:"fraudAlerts"`
	PlayPasses   int64 `json:"playPasses"`
}

// ResetRequest must carry the confirmation word
type ResetRequest struct {
	Confirmation string `json:"confirmation" binding:"required"`
}
