package study

import (
	studydb "github.com/fieldwork-labs/fieldwork-backend/pkg/db/study"
)

var (
	studyDBService *studydb.StudyDBService
)

func Init(
	studyDB *studydb.StudyDBService,
) {
	studyDBService = studyDB
}
