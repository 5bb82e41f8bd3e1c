package menu

// DayMenu is one cafeteria day. The weekly menu is static catalog data
// maintained here, not user-editable through the API.
type DayMenu struct {
	Weekday string   `json:"weekday"`
	Lunch   MealPlan `json:"lunch"`
	Dinner  MealPlan `json:"dinner"`
}

type MealPlan struct {
	Protein      string   `json:"protein"`
	Alternatives []string `json:"alternatives"`
	Sides        []string `json:"sides"`
}

var weeklyMenu = []DayMenu{
	{
		Weekday: "monday",
		Lunch:   MealPlan{Protein: "Frango grelhado", Alternatives: []string{"Omelete", "Grão-de-bico"}, Sides: []string{"Arroz", "Feijão", "Salada"}},
		Dinner:  MealPlan{Protein: "Carne moída", Alternatives: []string{"Ovo cozido"}, Sides: []string{"Purê", "Legumes"}},
	},
	{
		Weekday: "tuesday",
		Lunch:   MealPlan{Protein: "Peixe assado", Alternatives: []string{"Frango desfiado", "Tofu"}, Sides: []string{"Arroz", "Feijão", "Farofa"}},
		Dinner:  MealPlan{Protein: "Strogonoff de frango", Alternatives: []string{"Omelete"}, Sides: []string{"Arroz", "Batata palha"}},
	},
	{
		Weekday: "wednesday",
		Lunch:   MealPlan{Protein: "Carne assada", Alternatives: []string{"Peixe grelhado", "Lentilha"}, Sides: []string{"Arroz", "Feijão", "Salada"}},
		Dinner:  MealPlan{Protein: "Frango à milanesa", Alternatives: []string{"Ovo frito"}, Sides: []string{"Macarrão", "Legumes"}},
	},
	{
		Weekday: "thursday",
		Lunch:   MealPlan{Protein: "Feijoada", Alternatives: []string{"Frango grelhado", "Grão-de-bico"}, Sides: []string{"Arroz", "Couve", "Laranja"}},
		Dinner:  MealPlan{Protein: "Peixe empanado", Alternatives: []string{"Omelete"}, Sides: []string{"Arroz", "Salada"}},
	},
	{
		Weekday: "friday",
		Lunch:   MealPlan{Protein: "Lasanha de carne", Alternatives: []string{"Lasanha de legumes", "Frango desfiado"}, Sides: []string{"Salada", "Pão de alho"}},
		Dinner:  MealPlan{Protein: "Hambúrguer", Alternatives: []string{"Hambúrguer de soja"}, Sides: []string{"Batata", "Salada"}},
	},
}

// WeeklyMenu returns the static cafeteria plan for the work week.
func (s *Service) WeeklyMenu() []DayMenu {
	return weeklyMenu
}
