package utils

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GetUUID returns a fresh id for locally created documents.
func GetUUID() string {
	return uuid.NewString()
}

// TempID returns the placeholder id used when a customer could not be created
// on the commerce platform.
func TempID() string {
	return fmt.Sprintf("temp_%d", time.Now().UnixMilli())
}

// LocalDate formats t as the calendar day in t's own location (YYYY-MM-DD).
func LocalDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeekWindow returns the Sunday..Saturday date strings containing t.
func WeekWindow(t time.Time) (start, end string) {
	offset := int(t.Weekday())
	sunday := t.AddDate(0, 0, -offset)
	saturday := sunday.AddDate(0, 0, 6)
	return LocalDate(sunday), LocalDate(saturday)
}
