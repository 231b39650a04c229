package entity

import "time"

// Calificación permitida para una reseña.
const (
	MinRating = 1
	MaxRating = 5
)

// Review reseña de un producto. Un usuario reseña cada producto una sola vez.
type Review struct {
	ID        string
	ProductID string
	UserID    string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
