package model

import "github.com/golang-jwt/jwt/v5"

// HostClaims are JWT claims for host authentication
type HostClaims struct {
	HostID string `json:"hostId"`
	jwt.RegisteredClaims
}

// GuestClaims are JWT claims minted into magic links; party-scoped
type GuestClaims struct {
	PartyID      string `json:"partyId"`
	RespondentID string `json:"respondentId"`
	Email        string `json:"email"`
	jwt.RegisteredClaims
}

// LoginRequest is the request body for host login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned after successful host login
type LoginResponse struct {
	Token  string `json:"token"`
	HostID string `json:"hostId"`
}

// MagicLinkRequest asks for a guest sign-in link. Guests identify the
// party by its short join code, never by internal ids.
type MagicLinkRequest struct {
	JoinCode    string `json:"joinCode"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
}

// MagicLinkResponse carries the minted guest token; delivery by email is a
// collaborator concern.
type MagicLinkResponse struct {
	Token        string `json:"token"`
	RespondentID string `json:"respondentId"`
}
