package apihelpers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const DEFAULT_PAGE_SIZE = 20

type PaginatedQuery struct {
	Page   int64
	Limit  int64
	Status string
}

func ParsePaginatedQueryFromCtx(c *gin.Context) (*PaginatedQuery, error) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil {
		return nil, err
	}

	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(DEFAULT_PAGE_SIZE)), 10, 64)
	if err != nil {
		return nil, err
	}

	return &PaginatedQuery{
		Page:   page,
		Limit:  limit,
		Status: c.DefaultQuery("status", ""),
	}, nil
}
