package models

import "time"

// NoPrizeID identifies the placeholder outcome returned when nothing can be drawn
const NoPrizeID = "nada-0"

// NoPrize is the sentinel reveal outcome for an empty candidate list
var NoPrize = Prize{ID: NoPrizeID, Name: "Sigue Intentando"}

// Prize is a catalog entry. ID is admin-assigned and stored lowercase.
type Prize struct {
	ID        string    `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	ImageRef  string    `bson:"imageRef,omitempty" json:"imageRef,omitempty"`
	Weight    int       `bson:"weight" json:"weight"`
	Stock     int       `bson:"stock" json:"stock"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// IsNoPrize reports whether p is the reveal sentinel
func (p Prize) IsNoPrize() bool {
	return p.ID == NoPrizeID
}

// Drawable reports whether p can take part in a reveal draw
func (p Prize) Drawable() bool {
	return p.Weight > 0 && p.Stock > 0 && !p.IsNoPrize()
}

// PrizeRequest is the admin payload for creating or updating a prize
type PrizeRequest struct {
	ID       string `json:"id" binding:"required,prizeid"`
	Name     string `json:"name" binding:"required,max=120"`
	ImageRef string `json:"imageRef" binding:"omitempty,max=2048"`
	Weight   int    `json:"weight" binding:"required,gt=0"`
	Stock    *int   `json:"stock" binding:"required,gte=0"`
}
