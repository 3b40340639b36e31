package middleware

import (
	"fmt"
	"runtime/debug"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/kirimin/internal/pkg/logger"
	"github.com/piresc/kirimin/internal/utils"
)

// PanicRecoveryWithZapMiddleware recovers from handler panics, records them
// on the New Relic transaction and answers 500.
func PanicRecoveryWithZapMiddleware(zapLogger *logger.ZapLogger) echo.MiddlewareFunc {
	if zapLogger == nil {
		panic("PanicRecoveryWithZapMiddleware requires a logger")
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = handlePanic(c, r, zapLogger)
				}
			}()

			return next(c)
		}
	}
}

func handlePanic(c echo.Context, r interface{}, zapLogger *logger.ZapLogger) error {
	stackTrace := string(debug.Stack())
	req := c.Request()

	userID := "anonymous"
	if uid := c.Get(ContextUserID); uid != nil {
		userID = fmt.Sprintf("%v", uid)
	}
	requestID := requestIDFrom(c)

	fields := []logger.Field{
		logger.Any("panic_value", r),
		logger.String("panic_type", fmt.Sprintf("%T", r)),
		logger.String("stack_trace", stackTrace),
		logger.String("method", req.Method),
		logger.String("path", req.URL.Path),
		logger.String("client_ip", c.RealIP()),
		logger.String("user_id", userID),
		logger.String("request_id", requestID),
	}

	if txn := newrelic.FromContext(req.Context()); txn != nil {
		txn.NoticeError(newrelic.Error{
			Message: fmt.Sprintf("Panic recovered: %v", r),
			Class:   "PanicError",
			Attributes: map[string]interface{}{
				"panic.type":  fmt.Sprintf("%T", r),
				"http.method": req.Method,
				"http.path":   req.URL.Path,
				"user_id":     userID,
				"request_id":  requestID,
			},
		})
		txn.AddAttribute("panic.recovered", true)
		zapLogger.WithNewRelicContext(txn).Error("Panic recovered during request processing", fields...)
	} else {
		zapLogger.Error("Panic recovered during request processing", fields...)
	}

	if c.Response().Committed {
		return nil
	}
	return utils.InternalServerErrorResponse(c, "An unexpected error occurred while processing your request")
}

func requestIDFrom(c echo.Context) string {
	if requestID := c.Response().Header().Get(echo.HeaderXRequestID); requestID != "" {
		return requestID
	}
	return c.Request().Header.Get(echo.HeaderXRequestID)
}
