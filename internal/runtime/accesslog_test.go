package runtime

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCombinedLine(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "https://idds.cern.ch/index.html", nil)
	request.RemoteAddr = "137.138.62.91:39124"
	request.RequestURI = "/index.html"
	request.Header.Set("Referer", "https://cern.ch/")
	request.Header.Set("User-Agent", "curl/8.5.0")

	requestTime := time.Date(2026, time.August, 25, 10, 30, 0, 0, time.UTC)
	line := formatCombinedLine(request, http.StatusOK, 1024, requestTime)

	expected := fmt.Sprintf(
		`137.138.62.91 - - [%s] "GET /index.html HTTP/1.1" 200 1024 "https://cern.ch/" "curl/8.5.0"`,
		requestTime.Format(combinedTimeLayout),
	)
	assert.Equal(t, expected, line)
}

func TestFormatCombinedLineEmptyValues(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "https://idds.cern.ch/", nil)
	request.RemoteAddr = "10.0.0.1:1234"
	request.RequestURI = "/"

	line := formatCombinedLine(request, http.StatusForbidden, 0, time.Now())

	assert.True(t, strings.HasPrefix(line, "10.0.0.1 - - ["))
	assert.Contains(t, line, `" 403 - "`)
}

func TestCombinedLogHandler(t *testing.T) {
	var buffer bytes.Buffer

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
	})

	handler := CombinedLogHandler(next, &buffer)
	recorder := doRequest(handler, "/missing")

	require.Equal(t, http.StatusNotFound, recorder.Code)

	line := strings.TrimSpace(buffer.String())
	assert.Contains(t, line, `" 404 9 "`)
}
