// internal/domain/models/chatmessage.go
package models

import "time"

// ChatMessage is one message in a grower channel. Append-only: members of a
// channel see every message, but nobody edits or deletes them.
type ChatMessage struct {
	ID        string    `bson:"message_id" json:"id"`
	Channel   string    `bson:"channel" json:"channel"`
	Text      string    `bson:"text" json:"text"`
	UserID    string    `bson:"user_id" json:"userId"`
	UserName  string    `bson:"user_name" json:"userName"`
	UserLevel string    `bson:"user_level" json:"userLevel"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}
