package equipment

type SubmitRequest struct {
	Item          string `json:"item" binding:"required"`
	Justification string `json:"justification"`
	Urgency       string `json:"urgency"`
}

type DecideRequest struct {
	Approve bool `json:"approve"`
}
