package models

import "github.com/shopspring/decimal"

type Ticket struct {
	ID      uint            `gorm:"primaryKey"`
	Price   decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	UserID  uint            `gorm:"not null;index"`
	EventID uint            `gorm:"not null;index"`
	Event   *Event          `gorm:"foreignKey:EventID"`
}

type TicketResponse struct {
	ID      uint            `json:"id"`
	Price   decimal.Decimal `json:"price"`
	UserID  uint            `json:"user_id"`
	EventID uint            `json:"event_id"`
}

// UserTicketResponse is a ticket as listed for its holder, with the event
// it admits to.
type UserTicketResponse struct {
	ID    uint            `json:"id"`
	Price decimal.Decimal `json:"price"`
	Event EventSummary    `json:"event"`
}

func (t *Ticket) Response() TicketResponse {
	return TicketResponse{
		ID:      t.ID,
		Price:   t.Price,
		UserID:  t.UserID,
		EventID: t.EventID,
	}
}
