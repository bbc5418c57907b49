package dto

type SurveyorCreateRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Name     string `json:"name" form:"name" validate:"required"`
	Phone    string `json:"phone" form:"phone"`
}

type SurveyorFindByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type SurveyorUpdateRequest struct {
	ID       int     `param:"id" validate:"required"`
	Name     *string `json:"name" form:"name"`
	Phone    *string `json:"phone" form:"phone"`
	IsActive *bool   `json:"is_active" form:"is_active"`
}

type SurveyorDeleteByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type SurveyorResetPasswordRequest struct {
	ID          int    `param:"id" validate:"required"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=6"`
}

type SurveyorStatsRequest struct {
	ID int `param:"id" validate:"required"`
}

type SurveyorTodayDetailsRequest struct {
	ID   int    `param:"id" validate:"required"`
	Date string `query:"date"`
}
