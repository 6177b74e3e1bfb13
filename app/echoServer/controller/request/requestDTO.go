package request

type CreateRequestReq struct {
	EquipmentID int64  `json:"equipment_id" validate:"required,gt=0"`
	StartDate   string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

type ReviewReq struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}
