package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Staff roles carried in JWT claims
const (
	RoleAdmin    = "admin"
	RoleVerifier = "verifier"
)

// LoginRequest defines the structure for staff login requests
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifierRequest is the admin payload for creating a verifier account
type VerifierRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64,alphanum"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// Verifier is a staff account allowed to redeem QR codes.
// Stored in the "verifiers" collection; Password holds a bcrypt hash.
type Verifier struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username  string             `bson:"username" json:"username"`
	Password  string             `bson:"password" json:"-"` // Store hashed password, omit from JSON responses
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// Session is the authenticated staff identity resolved from a JWT
type Session struct {
	Subject string `json:"subject"`
	Role    string `json:"role"`
}
