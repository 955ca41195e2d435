package models

import "time"

type User struct {
	UserID       string    `json:"id" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	IsAdmin      bool      `json:"isAdmin" bson:"is_admin"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}

type CustomCategory struct {
	Name string `json:"name" bson:"name"`
}
