package entities

// AvailabilityQuery asks whether [Start, End) is free on a court for a date.
type AvailabilityQuery struct {
	Date    string
	CourtID int64
	Start   string
	End     string
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

// ScheduleQuery bounds are inclusive.
type ScheduleQuery struct {
	StartDate string
	EndDate   string
}
