package api

import (
	jsoniter "github.com/json-iterator/go"

	"canchas/internal/db"
	"canchas/internal/entities"
)

const (
	msgInvalidFormat  = "Formato de datos inválido"
	msgConflict       = "Conflicto de horario: Ya existe una reserva en ese periodo"
	msgAllCreated     = "Todas las reservas fueron creadas"
	msgSomeNotCreated = "Algunas reservas no se pudieron procesar"
)

// Batch
type BatchRequest struct {
	Reservations *[]jsoniter.RawMessage `json:"reservations"`
}

// Items decodes every reservation on its own so one malformed entry does not
// reject its siblings.
func (b BatchRequest) Items() []entities.ReservationRequest {
	items := make([]entities.ReservationRequest, len(*b.Reservations))
	for i, raw := range *b.Reservations {
		var item entities.ReservationRequest
		if err := json.Unmarshal(raw, &item); err != nil {
			item = entities.ReservationRequest{DecodeErr: err}
		}
		items[i] = item
	}
	return items
}
type BatchResponse struct {
	Success  bool                 `json:"success"`
	Inserted []db.Reservation     `json:"inserted"`
	Errors   []entities.ItemError `json:"errors,omitempty"`
	Message  string               `json:"message"`
}

// Errors
type ErrorResponse struct {
	Error string `json:"error"`
}
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Health
type HealthResponse struct {
	Status string     `json:"status"`
	Pool   PoolStatus `json:"pool"`
}
type PoolStatus struct {
	Open      int   `json:"open"`
	InUse     int   `json:"in_use"`
	Idle      int   `json:"idle"`
	WaitCount int64 `json:"wait_count"`
}
