package common

import (
	"net/url"
	"regexp"
	"testing"
	"time"

	"motofibra/catalog/internal/models/dtos"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)

	for _, raw := range []string{"", "0", "-3", "abc", "1.5", "99999999999"} {
		_, err := ParseID(raw)
		assert.ErrorIs(t, err, ErrInvalidID, raw)
	}
}

func TestParseOptionalFloat(t *testing.T) {
	v, err := ParseOptionalFloat("  ")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = ParseOptionalFloat("3,5")
	require.NoError(t, err)
	assert.Equal(t, 3.5, *v)

	v, err = ParseOptionalFloat("0")
	require.NoError(t, err)
	assert.Equal(t, 0.0, *v)

	for _, raw := range []string{"abc", "NaN", "Inf"} {
		_, err := ParseOptionalFloat(raw)
		assert.ErrorIs(t, err, ErrInvalidNumber, raw)
	}
}

func TestPartFilterFromQuery(t *testing.T) {
	q := url.Values{"name": {" pad "}, "brand": {"Yamaha"}, "client": {""}}
	assert.Equal(t, dtos.PartFilter{NameContains: "pad", Brand: "Yamaha"}, PartFilterFromQuery(q))
	assert.True(t, PartFilterFromQuery(url.Values{}).Empty())
}

func TestGetResponseTime(t *testing.T) {
	got := GetResponseTime(time.Now().Add(-1500 * time.Millisecond))
	assert.Regexp(t, regexp.MustCompile(`^1[5-9]\d\dms$`), got)
}
