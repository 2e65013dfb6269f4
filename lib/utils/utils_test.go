package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseSolrTime(t *testing.T) {

	parsed, err := ParseSolrTime("2021-03-15T10:20:30Z")

	assert.NoError(t, err, "expects no parse error")
	assert.Equal(t, time.Date(2021, 3, 15, 10, 20, 30, 0, time.UTC), parsed, "expects the parsed time")

	parsed, err = ParseSolrTime("2021-03-15T10:20:30.125Z")

	assert.NoError(t, err, "expects no parse error with milliseconds")
	assert.Equal(t, 125000000, parsed.Nanosecond(), "expects the millisecond fraction")

	_, err = ParseSolrTime("not a time")

	assert.Error(t, err, "expects a parse error on garbage")
}

func TestFormatSolrTime(t *testing.T) {

	value := time.Date(2021, 3, 15, 10, 20, 30, 0, time.FixedZone("BRT", -3*3600))

	assert.Equal(t, "2021-03-15T13:20:30Z", FormatSolrTime(value), "expects utc rendering")
}

func TestEscapeQueryChars(t *testing.T) {

	assert.Equal(t, `a\:b\ c\*`, EscapeQueryChars("a:b c*"), "expects syntax characters escaped")
	assert.Equal(t, "plain", EscapeQueryChars("plain"), "expects plain terms untouched")
}

func TestQuoteTerm(t *testing.T) {

	assert.Equal(t, `"the \"answer\""`, QuoteTerm(`the "answer"`), "expects embedded quotes escaped")
}
