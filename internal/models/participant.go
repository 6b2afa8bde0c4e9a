package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Participant is a registered promotion participant, keyed by phone number
type Participant struct {
	PhoneNumber  string    `bson:"_id" json:"phoneNumber"`
	FullName     string    `bson:"fullName" json:"fullName"`
	ConsentGiven bool      `bson:"consentGiven" json:"consentGiven"`
	RegisteredAt time.Time `bson:"registeredAt" json:"registeredAt"`
}

// RegisterRequest is the public registration payload
type RegisterRequest struct {
	FullName    string `json:"fullName" binding:"required,min=3,max=120"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	Consent     *bool  `json:"consent" binding:"required"`
}

// FraudAlert records a registration rejected by the fraud check
type FraudAlert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FullName    string             `bson:"fullName" json:"fullName"`
	PhoneNumber string             `bson:"phoneNumber" json:"phoneNumber"`
	DetectedAt  time.Time          `bson:"detectedAt" json:"detectedAt"`
	Explanation string             `bson:"explanation" json:"explanation"`
	IsReviewed  bool               `bson:"isReviewed" json:"isReviewed"`
}
