package fine

type PayFineReq struct {
	CardToken string `json:"card_token" validate:"required,min=4"`
}
