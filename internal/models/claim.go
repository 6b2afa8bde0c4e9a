package models

import "time"

// ClaimRecord is the append-only audit entry of a redeemed token. The token is the
// document key, so at most one claim can exist per token.
type ClaimRecord struct {
	Token     string    `bson:"_id" json:"token"`
	PrizeID   string    `bson:"prizeId" json:"prizeId"`
	PrizeName string    `bson:"prizeName" json:"prizeName"`
	ClaimedAt time.Time `bson:"claimedAt" json:"claimedAt"`
	ClaimedBy string    `bson:"claimedBy" json:"claimedBy"`
}

// RedeemRequest is the verifier payload carrying a scanned QR value
type RedeemRequest struct {
	Token string `json:"token" binding:"required,max=256"`
}
