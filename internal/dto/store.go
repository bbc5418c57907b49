package dto

type StoreCompetitorsRequest struct {
	StoreName string `query:"store_name" validate:"required"`
}

type StoreCreateRequest struct {
	StoreName      string `json:"store_name" validate:"required"`
	CompetitorName string `json:"competitor_name" validate:"required"`
}

type StoreDeleteByIDRequest struct {
	ID int `param:"id" validate:"required"`
}
