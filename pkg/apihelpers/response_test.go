package apihelpers

import (
	"testing"

	studydb "github.com/fieldwork-labs/fieldwork-backend/pkg/db/study"
)

func TestPaginationRespFromInfos(t *testing.T) {
	t.Run("nil infos", func(t *testing.T) {
		resp := PaginationRespFromInfos(nil)
		if resp.Total != 0 || resp.Pages != 0 || resp.HasNext || resp.HasPrev {
			t.Errorf("unexpected response for nil infos: %+v", resp)
		}
	})

	t.Run("middle page", func(t *testing.T) {
		resp := PaginationRespFromInfos(&studydb.PaginationInfos{
			TotalCount:  45,
			CurrentPage: 2,
			TotalPages:  3,
			PageSize:    20,
		})
		if resp.Current != 2 || resp.Pages != 3 || resp.Total != 45 {
			t.Errorf("unexpected response: %+v", resp)
		}
		if !resp.HasNext || !resp.HasPrev {
			t.Errorf("middle page should have next and prev: %+v", resp)
		}
	})

	t.Run("first page", func(t *testing.T) {
		resp := PaginationRespFromInfos(&studydb.PaginationInfos{
			TotalCount:  5,
			CurrentPage: 1,
			TotalPages:  1,
			PageSize:    20,
		})
		if resp.HasNext || resp.HasPrev {
			t.Errorf("single page should have neither next nor prev: %+v", resp)
		}
	})
}
