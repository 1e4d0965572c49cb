package models

import "time"

// Strategy is the editable trading strategy the dashboard operates on.
type Strategy struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Code       string    `json:"code"`
	LastEdited time.Time `json:"lastEdited"`
	Tags       []string  `json:"tags"`
}
