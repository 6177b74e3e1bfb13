package equipment

type CreateEquipmentReq struct {
	Name     string `json:"name" validate:"required,min=2,max=120"`
	Category string `json:"category" validate:"required,min=2,max=60"`
}
