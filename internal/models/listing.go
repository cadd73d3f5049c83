package models

import "time"

// Listing is one internship posting with normalized fields.
type Listing struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Company         string    `json:"company"`
	Location        string    `json:"location"`
	StipendText     string    `json:"stipend"`
	StipendAmount   int       `json:"stipend_amount"`
	Duration        string    `json:"duration"`
	PostingTimeText string    `json:"posting_time"`
	DaysOld         int       `json:"days_old"`
	Link            string    `json:"link"`
	Category        string    `json:"category"`
	FoundAt         time.Time `json:"found_at"`
}
