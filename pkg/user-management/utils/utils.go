package utils

import (
	"crypto/rand"
	"net/mail"
	"regexp"
	"strings"
	"time"

	b32 "encoding/base32"
)

const (
	PASSWORD_MIN_LEN = 8
	PASSWORD_MAX_LEN = 512
)

func SanitizeEmail(email string) string {
	email = strings.ToLower(email)
	email = strings.Trim(email, " \n\r")
	return email
}

// CheckEmailFormat to check if input string is a correct email address
func CheckEmailFormat(email string) bool {
	if len(email) > 254 {
		return false
	}
	_, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// additional regex check for correct email format
	emailRule := regexp.MustCompile(`^[a-zA-Z0-9._%+'-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	return emailRule.MatchString(email)
}

// CheckPasswordFormat to check if password fulfills password rules
func CheckPasswordFormat(password string) bool {
	pl := len(password)
	if pl < PASSWORD_MIN_LEN || pl > PASSWORD_MAX_LEN {
		return false
	}

	var res = 0

	lowercase := regexp.MustCompile("[a-z]")
	uppercase := regexp.MustCompile("[A-Z]")
	number := regexp.MustCompile(`\d`)
	symbol := regexp.MustCompile(`\W`)

	if lowercase.MatchString(password) {
		res++
	}
	if uppercase.MatchString(password) {
		res++
	}
	if number.MatchString(password) {
		res++
	}
	if symbol.MatchString(password) {
		res++
	}
	return res > 2
}

func GenerateUniqueTokenString() (string, error) {
	t := time.Now()
	ms := uint64(t.Unix())*1000 + uint64(t.Nanosecond()/int(time.Millisecond))

	token := make([]byte, 24)
	token[0] = byte(ms >> 40)
	token[1] = byte(ms >> 32)
	token[2] = byte(ms >> 24)
	token[3] = byte(ms >> 16)
	token[4] = byte(ms >> 8)
	token[5] = byte(ms)

	_, err := rand.Read(token[6:])
	if err != nil {
		return "", err
	}

	tokenStr := b32.StdEncoding.WithPadding(b32.NoPadding).EncodeToString(token)
	tokenStr = strings.ToLower(tokenStr)
	return tokenStr, nil
}

// HasMoreAttemptsRecently counts attempts within the window and compares with the limit
func HasMoreAttemptsRecently(attempts []int64, limit int, windowSeconds int64) bool {
	cutoff := time.Now().Unix() - windowSeconds

	count := 0
	for _, ts := range attempts {
		if ts > cutoff {
			count++
		}
	}
	return count >= limit
}

func RemoveAttemptsOlderThan(attempts []int64, maxAgeSeconds int64) []int64 {
	cutoff := time.Now().Unix() - maxAgeSeconds

	kept := make([]int64, 0, len(attempts))
	for _, ts := range attempts {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	return kept
}
