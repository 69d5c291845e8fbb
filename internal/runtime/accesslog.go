package runtime

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const combinedTimeLayout = "02/Jan/2006:15:04:05 -0700"

type statusRecorder struct {
	http.ResponseWriter
	status       int
	bytesWritten int64
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(data []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}

	written, err := r.ResponseWriter.Write(data)
	r.bytesWritten += int64(written)

	return written, err
}

// CombinedLogHandler appends an Apache "combined" format line to out for
// every handled request.
func CombinedLogHandler(next http.Handler, out io.Writer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(recorder, r)

		fmt.Fprintln(out, formatCombinedLine(r, recorder.status, recorder.bytesWritten, time.Now()))
	})
}

func formatCombinedLine(r *http.Request, status int, bytesWritten int64, requestTime time.Time) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)

	if err != nil {
		host = r.RemoteAddr
	}

	user := "-"

	if authUser, _, ok := r.BasicAuth(); ok && authUser != "" {
		user = authUser
	}

	if status == 0 {
		status = http.StatusOK
	}

	size := "-"

	if bytesWritten > 0 {
		size = fmt.Sprintf("%d", bytesWritten)
	}

	requestLine := fmt.Sprintf("%s %s %s", r.Method, r.RequestURI, r.Proto)

	return fmt.Sprintf(
		"%s - %s [%s] \"%s\" %d %s \"%s\" \"%s\"",
		host,
		user,
		requestTime.Format(combinedTimeLayout),
		escapeLogValue(requestLine),
		status,
		size,
		escapeLogValue(r.Referer()),
		escapeLogValue(r.UserAgent()),
	)
}

func escapeLogValue(value string) string {
	return strings.ReplaceAll(value, "\"", "\\\"")
}
