package booking

import (
	"regexp"
	"strconv"
	"strings"
)

const seatRow = "A"

var emailRX = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidEmail reports whether s is acceptable as a reservation email.
func ValidEmail(s string) bool {
	return emailRX.MatchString(s)
}

// SeatLabels returns the labels of a room with the given capacity:
// A1 through A<capacity>.
func SeatLabels(capacity int) []string {
	if capacity <= 0 {
		return nil
	}

	labels := make([]string, capacity)
	for i := range labels {
		labels[i] = seatRow + strconv.Itoa(i+1)
	}

	return labels
}

// seatInRoom reports whether label is one of SeatLabels(capacity). Only the
// canonical spelling is accepted, so "A+1" or "A01" never alias A1.
func seatInRoom(label string, capacity int) bool {
	digits, ok := strings.CutPrefix(label, seatRow)
	if !ok {
		return false
	}

	n, err := strconv.Atoi(digits)
	if err != nil || strconv.Itoa(n) != digits {
		return false
	}

	return n >= 1 && n <= capacity
}

// Seat is one cell of the seat grid as rendered at the seat step.
type Seat struct {
	Label    string
	Occupied bool
	Selected bool
}
