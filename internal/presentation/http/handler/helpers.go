package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/shop-pos/pkg/apperror"
	"github.com/sangkips/shop-pos/pkg/pagination"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	dateLayout      = "2006-01-02"
	maxUploadBytes  = 32 << 20
)

// GetRole extracts the session role set by the manager auth middleware
func GetRole(c *gin.Context) string {
	return c.GetString("role")
}

func paginationParams(page, perPage int) *pagination.PaginationParams {
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

// parseDate parses a YYYY-MM-DD query value as midnight in loc.
// An empty value yields nil.
func parseDate(field, value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, loc)
	if err != nil {
		return nil, apperror.NewFieldError(field, field+" must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
