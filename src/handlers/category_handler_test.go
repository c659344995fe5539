package handlers

import (
	"strings"
	"testing"

	"finance-tracker-server/src/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateCategoryRequest(t *testing.T) {
	valid := models.CategoryRequest{Name: "Groceries", Type: models.CategoryTypeExpense}
	assert.Empty(t, validateCategoryRequest(&valid))

	income := models.CategoryRequest{Name: "Salary", Type: models.CategoryTypeIncome}
	assert.Empty(t, validateCategoryRequest(&income))

	empty := models.CategoryRequest{Name: "", Type: models.CategoryTypeExpense}
	assert.NotEmpty(t, validateCategoryRequest(&empty))

	blank := models.CategoryRequest{Name: "   ", Type: models.CategoryTypeExpense}
	assert.NotEmpty(t, validateCategoryRequest(&blank))

	long := models.CategoryRequest{Name: strings.Repeat("x", categoryNameMaxLen+1), Type: models.CategoryTypeExpense}
	assert.NotEmpty(t, validateCategoryRequest(&long))

	longDescription := models.CategoryRequest{
		Name:        "Misc",
		Description: strings.Repeat("x", categoryDescriptionMaxLen+1),
		Type:        models.CategoryTypeExpense,
	}
	assert.NotEmpty(t, validateCategoryRequest(&longDescription))

	maxDescription := models.CategoryRequest{
		Name:        "Misc",
		Description: strings.Repeat("x", categoryDescriptionMaxLen),
		Type:        models.CategoryTypeExpense,
	}
	assert.Empty(t, validateCategoryRequest(&maxDescription))

	// None is the default type and a legal one.
	untyped := models.CategoryRequest{Name: "Misc", Type: models.CategoryTypeNone}
	assert.Empty(t, validateCategoryRequest(&untyped))

	badType := models.CategoryRequest{Name: "Misc", Type: models.CategoryType(9)}
	assert.NotEmpty(t, validateCategoryRequest(&badType))
}

func TestValidateCategoryRequestTrimsName(t *testing.T) {
	req := models.CategoryRequest{Name: "  Rent  ", Type: models.CategoryTypeExpense}
	assert.Empty(t, validateCategoryRequest(&req))
	assert.Equal(t, "Rent", req.Name)
}
