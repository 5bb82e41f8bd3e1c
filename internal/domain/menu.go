package domain

import "time"

type Meal string

const (
	MealLunch  Meal = "lunch"
	MealDinner Meal = "dinner"
)

// ProteinExchange records one substitution of the menu protein for an
// alternative on a given day and meal.
type ProteinExchange struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	UserName    string    `json:"user_name"`
	Date        time.Time `json:"date" validate:"required"`
	Meal        Meal      `json:"meal" validate:"required"`
	FromProtein string    `json:"from_protein" validate:"required"`
	ToProtein   string    `json:"to_protein" validate:"required"`
	Reason      string    `json:"reason,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
