package response

import "time"

type Night struct {
	EventStartUTC time.Time `json:"event_start_utc"`
	EventEndUTC   time.Time `json:"event_end_utc"`
	IsSpecial     bool      `json:"is_special"`
	ArrivalByUTC  time.Time `json:"arrival_by_utc"`
	OpenLocal     string    `json:"open_local"`
	CloseLocal    string    `json:"close_local"`
	Source        string    `json:"source"`
}

type TableStatus string

const TableStatusFree TableStatus = "FREE"

type TableAvailability struct {
	TableID     int64       `json:"table_id"`
	TableNumber string      `json:"table_number"`
	Zone        string      `json:"zone"`
	Capacity    int         `json:"capacity"`
	MinDeposit  float64     `json:"min_deposit"`
	Status      TableStatus `json:"status"`
}
