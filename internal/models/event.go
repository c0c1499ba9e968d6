package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Event struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"size:200;not null"`
	Date        time.Time       `gorm:"not null"`
	Location    string          `gorm:"size:200;not null"`
	Description *string         `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Category    string          `gorm:"size:100;not null"`
	Image       *string         `gorm:"size:500"`
	CreatedBy   uint            `gorm:"not null;index"`
	Creator     User            `gorm:"foreignKey:CreatedBy;constraint:OnDelete:RESTRICT;"`
	Tickets     []Ticket        `gorm:"constraint:OnDelete:CASCADE;"`
}

type EventResponse struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	Date        time.Time       `json:"date"`
	Location    string          `json:"location"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       *string         `json:"image"`
	CreatedBy   uint            `json:"created_by"`
}

// EventSummary is the event shape nested under a user's tickets; it leaves
// out price and category.
type EventSummary struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
}

func (e *Event) Response() EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.UTC(),
		Location:    e.Location,
		Description: e.Description,
		Price:       e.Price,
		Category:    e.Category,
		Image:       e.Image,
		CreatedBy:   e.CreatedBy,
	}
}

func (e *Event) Summary() EventSummary {
	return EventSummary{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.UTC(),
		Location:    e.Location,
		Description: e.Description,
		Image:       e.Image,
	}
}

// EventPatch carries a partial update. Only fields with Set true are
// written.
type EventPatch struct {
	Title       Optional[string]           `json:"title"`
	Date        Optional[string]           `json:"date"`
	Location    Optional[string]           `json:"location"`
	Image       Optional[*string]          `json:"image"`
	Description Optional[*string]          `json:"description"`
	Price       Optional[*decimal.Decimal] `json:"price"`
	Category    Optional[string]           `json:"category"`
}
