package response

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"strings"

	"social-realtime/pkg/errors"
	"social-realtime/pkg/log"

	"github.com/gin-gonic/gin"
)

// NewOKResp returns a new OK response with the given data.
func NewOKResp(data any) Resp {
	return Resp{
		ErrorCode: 0,
		Message:   MessageSuccess,
		Data:      data,
	}
}

// OK sends 200 JSON with data.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, NewOKResp(data))
}

// Unauthorized sends 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(parseError(errors.NewUnauthorizedHTTPError(), c, nil))
}

func parseError(err error, c *gin.Context, l log.Logger) (int, Resp) {
	switch parsedErr := err.(type) {
	case *errors.ValidationError:
		return http.StatusBadRequest, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Error(),
		}
	case *errors.ValidationErrorCollector:
		return http.StatusBadRequest, Resp{
			ErrorCode: ValidationErrorCode,
			Message:   ValidationErrorMsg,
			Errors:    parsedErr.Errors(),
		}
	case *errors.HTTPError:
		statusCode := parsedErr.StatusCode
		if statusCode == 0 {
			statusCode = http.StatusBadRequest
		}
		return statusCode, Resp{
			ErrorCode: parsedErr.Code,
			Message:   parsedErr.Message,
		}
	default:
		if l != nil && err != nil {
			l.Error(c.Request.Context(), buildInternalServerErrorReport(c, err.Error(), captureStackTrace()))
		}
		return http.StatusInternalServerError, Resp{
			ErrorCode: InternalServerErrorCode,
			Message:   DefaultErrorMessage,
		}
	}
}

// Error sends error response (status + JSON from parseError). Unknown errors
// are reported to l with the request and a backtrace.
func Error(c *gin.Context, err error, l log.Logger) {
	statusCode, resp := parseError(err, c, l)
	c.JSON(statusCode, resp)
}

// HttpError sends response for *errors.HTTPError.
func HttpError(c *gin.Context, err *errors.HTTPError) {
	statusCode, resp := parseError(err, c, nil)
	c.JSON(statusCode, resp)
}

// ErrorWithMap looks up err in eMap and sends corresponding HTTPError, else Error.
func ErrorWithMap(c *gin.Context, err error, eMap ErrorMapping, l log.Logger) {
	for target, httpErr := range eMap {
		if stderrors.Is(err, target) {
			Error(c, httpErr, nil)
			return
		}
	}
	Error(c, err, l)
}

// PanicError handles panic recovery and sends error response.
func PanicError(c *gin.Context, err any, l log.Logger) {
	if errVal, ok := err.(error); ok {
		Error(c, errVal, l)
		return
	}
	Error(c, fmt.Errorf("%v", err), l)
}

func captureStackTrace() []string {
	var pcs [DefaultStackTraceDepth]uintptr
	n := runtime.Callers(3, pcs[:])
	if n == 0 {
		return nil
	}
	var stackTrace []string
	for _, pc := range pcs[:n] {
		f := runtime.FuncForPC(pc)
		if f != nil {
			file, line := f.FileLine(pc)
			stackTrace = append(stackTrace, fmt.Sprintf("%s:%d %s", file, line, f.Name()))
		}
	}
	return stackTrace
}

func buildInternalServerErrorReport(c *gin.Context, errString string, backtrace []string) string {
	var body string
	if c.Request.Body != nil {
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err == nil {
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			body = string(bodyBytes)
		}
	}

	var sb strings.Builder
	sb.WriteString("control api error\n")
	fmt.Fprintf(&sb, "Route   : %s\n", c.Request.URL.String())
	fmt.Fprintf(&sb, "Method  : %s\n", c.Request.Method)
	if params := c.Request.URL.Query().Encode(); params != "" {
		fmt.Fprintf(&sb, "Params  : %s\n", params)
	}
	if body != "" {
		fmt.Fprintf(&sb, "Body    : %s\n", body)
	}
	fmt.Fprintf(&sb, "Error   : %s\n", errString)
	if len(backtrace) > 0 {
		sb.WriteString("Backtrace:\n")
		for i, line := range backtrace {
			fmt.Fprintf(&sb, "[%d]: %s\n", i, line)
		}
	}
	return sb.String()
}
