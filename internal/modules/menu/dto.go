package menu

type RecordExchangeRequest struct {
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Meal        string `json:"meal" binding:"required"`
	FromProtein string `json:"from_protein" binding:"required"`
	ToProtein   string `json:"to_protein" binding:"required"`
	Reason      string `json:"reason"`
}
