package apihelpers

import (
	"github.com/gin-gonic/gin"

	studydb "github.com/fieldwork-labs/fieldwork-backend/pkg/db/study"
)

// Every endpoint answers with the same envelope: {"success": bool, "data"|"error": ...}.

func SuccessResponse(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{"success": true, "data": data})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "error": message})
}

type PaginationResp struct {
	Current int64 `json:"current"`
	Pages   int64 `json:"pages"`
	Total   int64 `json:"total"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}

func PaginationRespFromInfos(infos *studydb.PaginationInfos) PaginationResp {
	if infos == nil {
		return PaginationResp{}
	}
	return PaginationResp{
		Current: infos.CurrentPage,
		Pages:   infos.TotalPages,
		Total:   infos.TotalCount,
		HasNext: infos.CurrentPage < infos.TotalPages,
		HasPrev: infos.CurrentPage > 1,
	}
}
