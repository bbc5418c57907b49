package dto

import "retail_survey/internal/model"

type RecordCreateRequest struct {
	ItemId        int      `json:"item_id" validate:"required"`
	SurveyorId    int      `json:"surveyor_id" validate:"required"`
	StoreName     string   `json:"store_name" validate:"required"`
	StoreAddress  *string  `json:"store_address"`
	Price         float64  `json:"price" validate:"required"`
	PromotionInfo *string  `json:"promotion_info"`
	Remark        *string  `json:"remark"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Photos        []string `json:"photos"`
}

type RecordFindRequest struct {
	SurveyorId int    `query:"surveyor_id"`
	TaskId     int    `query:"task_id"`
	Date       string `query:"date"`
}

type RecordFindByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type RecordUpdateRequest struct {
	ID            int      `param:"id" validate:"required"`
	StoreName     *string  `json:"store_name"`
	StoreAddress  *string  `json:"store_address"`
	Price         *float64 `json:"price"`
	PromotionInfo *string  `json:"promotion_info"`
	Remark        *string  `json:"remark"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
}

type RecordDeleteByIDRequest struct {
	ID int `param:"id" validate:"required"`
}

type RecordExportRequest struct {
	Format string `query:"format" validate:"required,oneof=excel pdf"`
	Date   string `query:"date"`
}

// RecordListItem carries one record together with the catalog categories
// of its product, resolved by product name.
type RecordListItem struct {
	*model.SurveyRecordEntityModel
	CategoryLevel1Name *string `json:"category_level1_name"`
	CategoryLevel2Name *string `json:"category_level2_name"`
}
