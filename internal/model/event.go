package model

import "time"

// Event is a sellable occasion with a fixed ticket capacity. Sold is a cached
// running total; the sale ledger is the ground truth it reconciles against.
type Event struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Date      string    `json:"date" db:"date"`
	Venue     string    `json:"venue" db:"venue"`
	Price     float64   `json:"price" db:"price"`
	Capacity  int       `json:"capacity" db:"capacity"`
	Sold      int       `json:"sold" db:"sold"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Remaining tickets still for sale.
func (e *Event) Remaining() int {
	return e.Capacity - e.Sold
}

// IsAvailable reports whether the event still has tickets for sale.
func (e *Event) IsAvailable() bool {
	return e.Remaining() > 0
}

// CreateEventRequest is the admin request for registering a new event.
type CreateEventRequest struct {
	Name     string  `json:"name" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Venue    string  `json:"venue" binding:"required"`
	Price    float64 `json:"price"`
	Capacity int     `json:"capacity" binding:"required"`
}

// EventResponse is the public view of an event, with remaining computed.
type EventResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Venue     string  `json:"venue"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Sold      int     `json:"sold"`
	Remaining int     `json:"remaining"`
}

func NewEventResponse(e *Event) *EventResponse {
	return &EventResponse{
		ID:        e.ID,
		Name:      e.Name,
		Date:      e.Date,
		Venue:     e.Venue,
		Price:     e.Price,
		Capacity:  e.Capacity,
		Sold:      e.Sold,
		Remaining: e.Remaining(),
	}
}

// EventReport aggregates one event's sales position.
type EventReport struct {
	EventID   int64   `json:"event_id"`
	Name      string  `json:"name"`
	Date      string  `json:"date"`
	Venue     string  `json:"venue"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Sold      int     `json:"sold"`
	Remaining int     `json:"remaining"`
	Revenue   float64 `json:"revenue"`
}
