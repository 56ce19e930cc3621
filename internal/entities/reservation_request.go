package entities

// ReservationRequest is one candidate reservation of a batch. Zero values mean
// the field was not sent.
type ReservationRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	CourtID   int64  `json:"court_id"`
	ClientID  int64  `json:"client_id"`

	// DecodeErr is set when the item could not be read from the request.
	DecodeErr error `json:"-"`
}

// HasRequiredFields reports whether every field needed for an insert is present.
// start_time < end_time is left to the database.
func (r ReservationRequest) HasRequiredFields() bool {
	return r.Date != "" && r.StartTime != "" && r.EndTime != "" && r.CourtID != 0 && r.ClientID != 0
}
