package entity

// Table is a bookable physical table. Mutated only by admin tooling.
type Table struct {
	ID         int64   `db:"id"`
	ClubID     int64   `db:"club_id"`
	Zone       string  `db:"zone"`
	Number     string  `db:"table_number"`
	Capacity   int     `db:"capacity"`
	MinDeposit float64 `db:"min_deposit"`
	Active     bool    `db:"active"`
}
