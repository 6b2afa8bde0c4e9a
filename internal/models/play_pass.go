package models

import "time"

// PlayPass unlocks a single reveal after the trivia gate is passed
type PlayPass struct {
	ID          string    `bson:"_id" json:"passId"`
	PhoneNumber string    `bson:"phoneNumber" json:"-"`
	Score       int       `bson:"score" json:"score"`
	IssuedAt    time.Time `bson:"issuedAt" json:"issuedAt"`
	ExpiresAt   time.Time `bson:"expiresAt" json:"expiresAt"`
	Used        bool      `bson:"used" json:"-"`
}

// RevealRequest is the payload to spend a play pass on a prize reveal
type RevealRequest struct {
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	PassID      string `json:"passId" binding:"required,max=64"`
}
