package apihandlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	globalinfosDB "github.com/fieldwork-labs/fieldwork-backend/pkg/db/global-infos"
	studyDB "github.com/fieldwork-labs/fieldwork-backend/pkg/db/study"
	userDB "github.com/fieldwork-labs/fieldwork-backend/pkg/db/user"
)

func HealthCheckHandle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type HttpEndpoints struct {
	studyDBConn       *studyDB.StudyDBService
	userDBConn        *userDB.UserDBService
	globalInfosDBConn *globalinfosDB.GlobalInfosDBService
	tokenSignKey      string
	tokenExpiresIn    time.Duration
}

func NewHTTPHandler(
	tokenSignKey string,
	tokenExpiresIn time.Duration,
	studyDBConn *studyDB.StudyDBService,
	userDBConn *userDB.UserDBService,
	globalInfosDBConn *globalinfosDB.GlobalInfosDBService,
) *HttpEndpoints {
	return &HttpEndpoints{
		tokenSignKey:      tokenSignKey,
		tokenExpiresIn:    tokenExpiresIn,
		studyDBConn:       studyDBConn,
		userDBConn:        userDBConn,
		globalInfosDBConn: globalInfosDBConn,
	}
}
