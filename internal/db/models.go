package db

const CourtStatusActive = "active"

// Reservation is a row of the reservations table. Date and times travel as
// text ("2006-01-02", "15:04:05") so both drivers scan them the same way.
type Reservation struct {
	ID        int64  `db:"id" json:"id"`
	Date      string `db:"date" json:"date"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
	CourtID   int64  `db:"court_id" json:"court_id"`
	ClientID  *int64 `db:"client_id" json:"client_id"`
}

type Court struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// ScheduleEntry is a reservation joined with its client and court names.
// ClientName is nil when the reservation has no linked client.
type ScheduleEntry struct {
	Reservation
	ClientName *string `db:"client_name" json:"client_name"`
	CourtName  string  `db:"court_name" json:"court_name"`
}
