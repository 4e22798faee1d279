package model

import "time"

type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationListData struct {
	Items []Notification `json:"items"`
}

type UpdateNotificationRequest struct {
	Read *bool `json:"read"`
}
