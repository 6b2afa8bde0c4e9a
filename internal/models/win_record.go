package models

import "time"

// WinStatus is the ledger state of a won prize. Won -> Claimed is the only transition.
type WinStatus string

const (
	WinStatusWon     WinStatus = "won"
	WinStatusClaimed WinStatus = "claimed"
)

// WinState is the state shown to callers; Expired is derived, never stored.
type WinState string

const (
	WinStateWon     WinState = "WON"
	WinStateClaimed WinState = "CLAIMED"
	WinStateExpired WinState = "EXPIRED"
)

// WinRecord is the ledger entry written when a participant reveals a prize
type WinRecord struct {
	Token            string     `bson:"_id" json:"token"`
	PrizeID          string     `bson:"prizeId" json:"prizeId"`
	PrizeName        string     `bson:"prizeName" json:"prizeName"`
	PrizeImageRef    string     `bson:"prizeImageRef,omitempty" json:"prizeImageRef,omitempty"`
	ParticipantName  string     `bson:"participantName" json:"participantName"`
	ParticipantPhone string     `bson:"participantPhone" json:"participantPhone"`
	IssuedAt         time.Time  `bson:"issuedAt" json:"issuedAt"`
	ExpiresAt        time.Time  `bson:"expiresAt" json:"expiresAt"`
	Status           WinStatus  `bson:"status" json:"status"`
	ClaimedAt        *time.Time `bson:"claimedAt,omitempty" json:"claimedAt,omitempty"`
	ClaimedBy        string     `bson:"claimedBy,omitempty" json:"claimedBy,omitempty"`
}

// State derives the externally visible state at instant now
func (w *WinRecord) State(now time.Time) WinState {
	switch w.Status {
	case WinStatusClaimed:
		return WinStateClaimed
	default:
		if now.After(w.ExpiresAt) {
			return WinStateExpired
		}
		return WinStateWon
	}
}

// BlocksReplay reports whether this win prevents the participant from playing again:
// a claimed prize, or a won prize that is still redeemable.
func (w *WinRecord) BlocksReplay(now time.Time) bool {
	if w.PrizeID == "" || w.PrizeID == NoPrizeID {
		return false
	}
	return w.State(now) != WinStateExpired
}
