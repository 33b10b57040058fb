package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

func (r Role) Valid() bool { return r == RoleDoctor || r == RolePatient }

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         Role               `bson:"role" json:"role"`
	Avatar       string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Language     string             `bson:"language" json:"language"`
	IsAvailable  bool               `bson:"is_available" json:"isAvailable"`
	LastSeen     time.Time          `bson:"last_seen" json:"lastSeen"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

// UserRef is the projection attached to outgoing messages. The full profile
// never rides along with a message.
type UserRef struct {
	ID     primitive.ObjectID `json:"id"`
	Name   string             `json:"name"`
	Avatar string             `json:"avatar,omitempty"`
}

func (u *User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
