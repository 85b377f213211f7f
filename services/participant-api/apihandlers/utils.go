package apihandlers

import (
	"math/rand"
	"time"
)

// slows down credential probing without leaking which check failed
func randomWait(minTimeSec int, maxTimeSec int) {
	time.Sleep(time.Duration(rand.Intn(maxTimeSec-minTimeSec)+minTimeSec) * time.Second)
}
