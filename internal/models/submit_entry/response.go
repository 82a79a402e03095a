package models

import "time"

type SubmitEntryResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PhotoCount int       `json:"photoCount"`
	CreatedAt  time.Time `json:"createdAt"`
	Message    string    `json:"message"`
}
