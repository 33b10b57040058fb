package models

import "time"

// Media is a stored asset record: one S3 object plus its metadata.
type Media struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"user_id" json:"userId"`
	Key         string    `bson:"key" json:"key"`
	URL         string    `bson:"url,omitempty" json:"url,omitempty"`
	Thumbnail   string    `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	Type        FileType  `bson:"type" json:"type"`
	Size        int64     `bson:"size" json:"size"`
	ContentType string    `bson:"content_type" json:"contentType"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
}
