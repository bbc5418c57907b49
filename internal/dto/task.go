package dto

type TaskItemPayload struct {
	Category    string  `json:"category" validate:"required"`
	ProductName string  `json:"product_name" validate:"required"`
	ProductSpec string  `json:"product_spec"`
	Barcode     *string `json:"barcode"`
	Description *string `json:"description"`
	SortOrder   int     `json:"sort_order"`
}

type TaskCreateRequest struct {
	Title       string            `json:"title" validate:"required"`
	Date        string            `json:"date" validate:"required"`
	Description string            `json:"description"`
	Items       []TaskItemPayload `json:"items" validate:"dive"`
}

type TaskFindRequest struct {
	Date string `query:"date"`
}

type TaskFindByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type TaskUpdateRequest struct {
	ID          int     `param:"id" validate:"required"`
	Title       *string `json:"title"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type TaskCancelRequest struct {
	ID int `param:"id" validate:"required"`
}

type TaskDeleteByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type TaskTodayRequest struct {
	SurveyorId int `param:"surveyor_id" validate:"required"`
}
