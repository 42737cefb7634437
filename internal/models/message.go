package models

import "time"

// Message is a question a user sends to the library administrators. An
// admin answering it fills in AdminEmail and Response and closes the
// thread; closed messages are never reopened.
type Message struct {
	ID         string    `json:"id" firestore:"id"`
	UserEmail  string    `json:"userEmail" firestore:"user_email"`
	Title      string    `json:"title" firestore:"title"`
	Question   string    `json:"question" firestore:"question"`
	AdminEmail string    `json:"adminEmail,omitempty" firestore:"admin_email"`
	Response   string    `json:"response,omitempty" firestore:"response"`
	Closed     bool      `json:"closed" firestore:"closed"`
	CreatedAt  time.Time `json:"-" firestore:"created_at"`
	UpdatedAt  time.Time `json:"-" firestore:"updated_at"`
}
