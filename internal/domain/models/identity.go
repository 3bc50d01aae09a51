// internal/domain/models/identity.go
package models

import "time"

// Identity is the authenticated gardener's profile. In connected mode it is
// backed by a document in the identities collection and populated from the
// Google OAuth userinfo response; in local mode it is the synthetic demo
// gardener stored under the demo_user key.
type Identity struct {
	UID           string    `bson:"uid" json:"uid"`
	DisplayName   string    `bson:"display_name" json:"displayName"`
	Email         string    `bson:"email" json:"email"`
	PhotoURL      string    `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
	EmailVerified bool      `bson:"email_verified" json:"emailVerified"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
	LastLoginAt   time.Time `bson:"last_login_at" json:"lastLoginAt"`
}

// GardenerLevel buckets a gardener by how long they have been around.
// Used as the display level on chat messages.
func (i Identity) GardenerLevel() string {
	switch age := time.Since(i.CreatedAt); {
	case age > 2*365*24*time.Hour:
		return "Master Gardener"
	case age > 365*24*time.Hour:
		return "Green Thumb"
	case age > 90*24*time.Hour:
		return "Apprentice"
	default:
		return "Novice"
	}
}
