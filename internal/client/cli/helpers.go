package cli

import (
	"strconv"

	"github.com/iudanet/todokeeper/internal/models"
)

// parseID разбирает id задачи из аргумента командной строки
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, models.NewValidationError("id", "invalid todo id: "+strconv.Quote(arg))
	}
	return id, nil
}

// orDefault prefers the explicit value over the configured one.
func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
