package product

import (
	"fmt"
	"testing"

	"retail_survey/internal/abstraction"
	"retail_survey/internal/dto"
	"retail_survey/internal/factory"
	"retail_survey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (Service, *factory.Factory, *abstraction.Context) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.ProductEntityModel{}))

	f := &factory.Factory{Db: db}
	f.SetupRepository()

	return NewService(f), f, &abstraction.Context{}
}

func strptr(s string) *string { return &s }

func TestSeedLoadsOnlyOnce(t *testing.T) {
	svc, _, ctx := newTestService(t)

	payload := &dto.ProductSeedRequest{Products: []dto.ProductPayload{
		{Name: "cola", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("饮料")},
		{Name: "milk", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("乳制品")},
	}}

	result, err := svc.Seed(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 2, result["inserted"])
	assert.Equal(t, false, result["skipped"])

	result, err = svc.Seed(ctx, payload)
	require.NoError(t, err)
	assert.Equal(t, 0, result["inserted"])
	assert.Equal(t, true, result["skipped"])

	found, err := svc.Find(ctx, &dto.ProductFindRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, found["total"])
}

func TestCreateRejectsDuplicateName(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Create(ctx, &dto.ProductCreateRequest{ProductPayload: dto.ProductPayload{Name: "cola"}})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &dto.ProductCreateRequest{ProductPayload: dto.ProductPayload{Name: "cola"}})
	require.Error(t, err)
}

func TestFindPaginatesAndFilters(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Seed(ctx, &dto.ProductSeedRequest{Products: []dto.ProductPayload{
		{Name: "cola", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("饮料")},
		{Name: "sprite", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("饮料")},
		{Name: "cabbage", CategoryLevel1Name: strptr("生鲜"), CategoryLevel2Name: strptr("蔬菜")},
	}})
	require.NoError(t, err)

	found, err := svc.Find(ctx, &dto.ProductFindRequest{CategoryLevel1: "食品杂货", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, found["total"])
	assert.Len(t, found["items"].([]*model.ProductEntityModel), 1)

	found, err = svc.Find(ctx, &dto.ProductFindRequest{Search: "cabb"})
	require.NoError(t, err)
	assert.Equal(t, 1, found["total"])
}

func TestCategoriesByLevel(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Seed(ctx, &dto.ProductSeedRequest{Products: []dto.ProductPayload{
		{Name: "cola", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("饮料"), CategoryLevel3Name: strptr("碳酸饮料"), CategoryLevel4Name: strptr("可乐")},
		{Name: "milk", CategoryLevel1Name: strptr("食品杂货"), CategoryLevel2Name: strptr("乳制品")},
		{Name: "cabbage", CategoryLevel1Name: strptr("生鲜"), CategoryLevel2Name: strptr("蔬菜")},
		{Name: "orphan"},
	}})
	require.NoError(t, err)

	level1, err := svc.Categories(ctx, &dto.ProductCategoriesRequest{Level: 1})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"食品杂货", "生鲜"}, level1)

	level2, err := svc.Categories(ctx, &dto.ProductCategoriesRequest{Level: 2, Parent: "食品杂货"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"饮料", "乳制品"}, level2)

	level4, err := svc.Categories(ctx, &dto.ProductCategoriesRequest{Level: 4, Parent: "碳酸饮料"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"可乐"}, level4)

	_, err = svc.Categories(ctx, &dto.ProductCategoriesRequest{Level: 9})
	require.Error(t, err)
}

func TestSuggestMatchesNameAndBarcode(t *testing.T) {
	svc, _, ctx := newTestService(t)

	_, err := svc.Seed(ctx, &dto.ProductSeedRequest{Products: []dto.ProductPayload{
		{Name: "cola", Barcode: strptr("690123")},
		{Name: "sprite", Barcode: strptr("690456")},
	}})
	require.NoError(t, err)

	byName, err := svc.Suggest(ctx, &dto.ProductSuggestRequest{Keyword: "col"})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "cola", byName[0].Name)

	byBarcode, err := svc.Suggest(ctx, &dto.ProductSuggestRequest{Keyword: "690456"})
	require.NoError(t, err)
	require.Len(t, byBarcode, 1)
	assert.Equal(t, "sprite", byBarcode[0].Name)
}
