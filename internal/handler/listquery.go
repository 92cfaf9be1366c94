package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/vgc-platform/admin-api/internal/listview"
)

// ListQuery binds the query parameters shared by every list endpoint:
// filters, sort, and paging.
type ListQuery struct {
	listview.Criteria
	listview.Sort
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

func BindListQuery(c *gin.Context) (ListQuery, error) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		return ListQuery{}, err
	}
	return q, nil
}
