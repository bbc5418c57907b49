package record

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"time"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"
	"retail_survey/internal/repository"
	"retail_survey/pkg/storage"
	"retail_survey/pkg/util/general"
	"retail_survey/pkg/util/response"
	"retail_survey/pkg/util/trxmanager"

	"github.com/jung-kurt/gofpdf"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx *abstraction.Context, payload *dto.RecordCreateRequest) (map[string]interface{}, error)
	Find(ctx *abstraction.Context, payload *dto.RecordFindRequest) ([]*dto.RecordListItem, error)
	FindById(ctx *abstraction.Context, payload *dto.RecordFindByIDRequest) (*model.SurveyRecordEntityModel, error)
	Update(ctx *abstraction.Context, payload *dto.RecordUpdateRequest) (map[string]interface{}, error)
	Delete(ctx *abstraction.Context, payload *dto.RecordDeleteByIDRequest) (map[string]interface{}, error)
	Upload(ctx *abstraction.Context, file *multipart.FileHeader) (map[string]interface{}, error)
	Export(ctx *abstraction.Context, payload *dto.RecordExportRequest) (string, *bytes.Buffer, error)
}

type service struct {
	RecordRepository   repository.Record
	ItemRepository     repository.Item
	SurveyorRepository repository.Surveyor
	ProductRepository  repository.Product

	DB      *gorm.DB
	Storage *storage.Client
}

func NewService(f *factory.Factory) Service {
	return &service{
		RecordRepository:   f.RecordRepository,
		ItemRepository:     f.ItemRepository,
		SurveyorRepository: f.SurveyorRepository,
		ProductRepository:  f.ProductRepository,

		DB:      f.Db,
		Storage: f.Storage,
	}
}

func (s *service) Create(ctx *abstraction.Context, payload *dto.RecordCreateRequest) (map[string]interface{}, error) {
	data := new(model.SurveyRecordEntityModel)
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		if _, err := s.ItemRepository.FindById(ctx, payload.ItemId); err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "item not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		surveyor, err := s.SurveyorRepository.FindById(ctx, payload.SurveyorId)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "surveyor not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}
		if !surveyor.IsActive {
			return response.ErrorBuilder(http.StatusBadRequest, errors.New("bad_request"), "surveyor is deactivated")
		}

		data.Context = ctx
		data.ItemId = payload.ItemId
		data.SurveyorId = payload.SurveyorId
		data.StoreName = payload.StoreName
		data.StoreAddress = payload.StoreAddress
		data.Price = payload.Price
		data.PromotionInfo = payload.PromotionInfo
		data.Remark = payload.Remark
		data.Latitude = payload.Latitude
		data.Longitude = payload.Longitude

		if len(payload.Photos) > 0 {
			raw, err := json.Marshal(payload.Photos)
			if err != nil {
				return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
			}
			photos := string(raw)
			data.Photos = &photos
			data.PhotoPath = &payload.Photos[0]
		}

		if err := s.RecordRepository.Create(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"id":      data.ID,
		"message": "success create record!",
	}, nil
}

func (s *service) Find(ctx *abstraction.Context, payload *dto.RecordFindRequest) ([]*dto.RecordListItem, error) {
	var start, end *time.Time
	if payload.Date != "" {
		from, to, err := general.DayRange(payload.Date)
		if err != nil {
			return nil, response.ErrorBuilder(http.StatusBadRequest, err, "invalid date, expected YYYY-MM-DD")
		}
		start, end = &from, &to
	}

	data, err := s.RecordRepository.Find(ctx, payload.SurveyorId, payload.TaskId, start, end)
	if err != nil && err.Error() != "record not found" {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	names := make([]string, 0, len(data))
	seen := make(map[string]bool, len(data))
	for _, v := range data {
		if !seen[v.Item.ProductName] {
			seen[v.Item.ProductName] = true
			names = append(names, v.Item.ProductName)
		}
	}
	products, err := s.ProductRepository.FindByNames(ctx, names)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	byName := make(map[string]*model.ProductEntityModel, len(products))
	for _, p := range products {
		byName[p.Name] = p
	}

	items := make([]*dto.RecordListItem, 0, len(data))
	for _, v := range data {
		item := &dto.RecordListItem{SurveyRecordEntityModel: v}
		if p, ok := byName[v.Item.ProductName]; ok {
			item.CategoryLevel1Name = p.CategoryLevel1Name
			item.CategoryLevel2Name = p.CategoryLevel2Name
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *service) FindById(ctx *abstraction.Context, payload *dto.RecordFindByIDRequest) (*model.SurveyRecordEntityModel, error) {
	data, err := s.RecordRepository.FindById(ctx, payload.ID)
	if err != nil {
		if err.Error() == "record not found" {
			return nil, response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "record not found")
		}
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	return data, nil
}

func (s *service) Update(ctx *abstraction.Context, payload *dto.RecordUpdateRequest) (map[string]interface{}, error) {
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.RecordRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "record not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		newData := new(model.SurveyRecordEntityModel)
		newData.Context = ctx
		newData.ID = data.ID
		if payload.StoreName != nil {
			newData.StoreName = *payload.StoreName
		}
		if payload.Price != nil {
			newData.Price = *payload.Price
		}
		newData.StoreAddress = payload.StoreAddress
		newData.PromotionInfo = payload.PromotionInfo
		newData.Remark = payload.Remark
		newData.Latitude = payload.Latitude
		newData.Longitude = payload.Longitude

		if err := s.RecordRepository.Update(ctx, newData).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"message": "success update record!",
	}, nil
}

func (s *service) Delete(ctx *abstraction.Context, payload *dto.RecordDeleteByIDRequest) (map[string]interface{}, error) {
	var photos []string
	if err := trxmanager.New(s.DB).WithTrx(ctx, func(ctx *abstraction.Context) error {
		data, err := s.RecordRepository.FindById(ctx, payload.ID)
		if err != nil {
			if err.Error() == "record not found" {
				return response.ErrorBuilder(http.StatusNotFound, errors.New("not_found"), "record not found")
			}
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		if data.Photos != nil {
			if err := json.Unmarshal([]byte(*data.Photos), &photos); err != nil {
				logrus.Warnf("record %d carries unparsable photo list", data.ID)
			}
		}

		data.Context = ctx
		if err := s.RecordRepository.Delete(ctx, data).Error; err != nil {
			return response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
		}

		return nil
	}); err != nil {
		return nil, err
	}

	// blob cleanup stays best effort, the row is already gone
	for _, url := range photos {
		if err := s.Storage.DeletePhoto(context.Background(), url); err != nil {
			logrus.Warnf("failed delete photo %s: %s", url, err.Error())
		}
	}

	return map[string]interface{}{
		"message": "success delete record!",
	}, nil
}

func (s *service) Upload(ctx *abstraction.Context, file *multipart.FileHeader) (map[string]interface{}, error) {
	src, err := file.Open()
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusBadRequest, err, "error open uploaded file")
	}
	defer src.Close()

	url, err := s.Storage.StorePhoto(ctx.Request().Context(), file.Filename, file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		return nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	return map[string]interface{}{
		"url": url,
	}, nil
}

func (s *service) Export(ctx *abstraction.Context, payload *dto.RecordExportRequest) (string, *bytes.Buffer, error) {
	var start, end *time.Time
	date := payload.Date
	if date != "" {
		from, to, err := general.DayRange(date)
		if err != nil {
			return "", nil, response.ErrorBuilder(http.StatusBadRequest, err, "invalid date, expected YYYY-MM-DD")
		}
		start, end = &from, &to
	} else {
		date = general.DateNow()
	}

	data, err := s.RecordRepository.Find(ctx, 0, 0, start, end)
	if err != nil && err.Error() != "record not found" {
		return "", nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}

	if payload.Format == "pdf" {
		return s.exportPdf(date, data)
	}
	return s.exportExcel(date, data)
}

func (s *service) exportExcel(date string, data []*model.SurveyRecordEntityModel) (string, *bytes.Buffer, error) {
	f := excelize.NewFile()
	sheet := "Survey Records"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return "", nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headers := []string{"No", "Surveyor", "Product", "Category", "Store", "Price", "Promotion", "Remark", "Submitted At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	for i, v := range data {
		promotion := ""
		if v.PromotionInfo != nil {
			promotion = *v.PromotionInfo
		}
		remark := ""
		if v.Remark != nil {
			remark = *v.Remark
		}
		row := []interface{}{
			i + 1,
			v.Surveyor.Name,
			v.Item.ProductName,
			v.Item.Category,
			v.StoreName,
			v.Price,
			promotion,
			remark,
			general.FormatDateTime(v.CreatedAt),
		}
		for j, value := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return "", nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	filename := fmt.Sprintf("Survey Records (%s).xlsx", date)
	return filename, &buf, nil
}

func (s *service) exportPdf(date string, data []*model.SurveyRecordEntityModel) (string, *bytes.Buffer, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Survey Records (%s)", date))
	pdf.Ln(12)

	header := []string{"No", "Surveyor", "Product", "Category", "Store", "Price", "Submitted At"}
	colWidths := []float64{12, 40, 55, 40, 55, 30, 45}

	pdf.SetFont("Arial", "B", 10)
	xStart := pdf.GetX()
	yStart := pdf.GetY()
	headerHeight := 8.0
	for i, str := range header {
		pdf.Rect(xStart, yStart, colWidths[i], headerHeight, "D")
		pdf.MultiCell(colWidths[i], 5, str, "", "C", false)
		xStart += colWidths[i]
		pdf.SetXY(xStart, yStart)
	}
	pdf.Ln(headerHeight)
	pdf.SetFont("Arial", "", 9)

	for i, v := range data {
		row := []string{
			fmt.Sprintf("%d", i+1),
			v.Surveyor.Name,
			v.Item.ProductName,
			v.Item.Category,
			v.StoreName,
			fmt.Sprintf("%.2f", v.Price),
			general.FormatDateTime(v.CreatedAt),
		}

		startX := pdf.GetX()
		maxHeight := 0.0
		for j, txt := range row {
			lines := pdf.SplitLines([]byte(txt), colWidths[j])
			h := float64(len(lines)) * 5
			if h > maxHeight {
				maxHeight = h
			}
		}
		x := startX
		for j, txt := range row {
			y := pdf.GetY()
			pdf.Rect(x, y, colWidths[j], maxHeight, "D")
			pdf.MultiCell(colWidths[j], 5, txt, "", "L", false)
			x += colWidths[j]
			pdf.SetXY(x, y)
		}
		pdf.Ln(maxHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return "", nil, response.ErrorBuilder(http.StatusInternalServerError, err, "server_error")
	}
	filename := fmt.Sprintf("Survey Records (%s).pdf", date)
	return filename, &buf, nil
}
