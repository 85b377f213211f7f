package study

import (
	"fmt"
	"time"
)

// generateSessionID builds a session identifier that embeds the study key,
// the participant and the start timestamp for traceability. Uniqueness per
// (studyKey, participantID) is guaranteed by the session collection index,
// not by this function.
func generateSessionID(studyKey string, participantID string, startedAt time.Time) string {
	return fmt.Sprintf("%s-%s-%d", studyKey, participantID, startedAt.Unix())
}
