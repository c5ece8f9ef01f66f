package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:254;uniqueIndex" json:"email"`
	Username  string    `gorm:"size:150;uniqueIndex" json:"username"`
	FirstName string    `gorm:"size:150" json:"first_name"`
	LastName  string    `gorm:"size:150" json:"last_name"`
	Password  string    `json:"-"`
	Avatar    string    `json:"avatar,omitempty"`

	Recipes []*Recipe `gorm:"foreignKey:AuthorID"`
	Timestamp
}

type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SubscriberID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_author" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_subscriber_author" json:"author_id"`

	Subscriber *User `gorm:"foreignKey:SubscriberID"`
	Author     *User `gorm:"foreignKey:AuthorID"`
	Timestamp
}
