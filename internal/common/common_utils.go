package common

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"motofibra/catalog/internal/models/dtos"
)

var (
	ErrInvalidID     = errors.New("invalid id")
	ErrInvalidNumber = errors.New("invalid number")
)

// GetResponseTime formats the time elapsed since init as "<n>ms".
func GetResponseTime(init time.Time) string {
	return fmt.Sprintf("%dms", time.Since(init).Milliseconds())
}

// ParseID parses a positive part id from a path or query value.
func ParseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 || id > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return uint(id), nil
}

// ParseOptionalFloat treats an empty input as "not supplied". Anything else
// must be a finite number.
func ParseOptionalFloat(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidNumber, raw)
	}
	return &v, nil
}

// PartFilterFromQuery reads the list predicates from name, brand, category
// and client.
func PartFilterFromQuery(q url.Values) dtos.PartFilter {
	return dtos.PartFilter{
		NameContains: strings.TrimSpace(q.Get("name")),
		Brand:        q.Get("brand"),
		Category:     q.Get("category"),
		Client:       q.Get("client"),
	}
}
