package workbook

import (
	"fmt"

	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
)

func cellString(c quantity.Cell) string {
	switch v := c.(type) {
	case nil:
		return ""
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
