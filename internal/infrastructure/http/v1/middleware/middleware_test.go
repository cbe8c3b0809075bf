package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"negocio/internal/core/apperror"
	appctx "negocio/internal/core/context"
	"negocio/pkg/logger"
)

type staticValidator map[string]string

func (v staticValidator) ValidateToken(token string) (*appctx.UserContext, error) {
	if uid, ok := v[token]; ok {
		return &appctx.UserContext{UserID: uid}, nil
	}
	return nil, errors.New("bad token")
}

func engine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Trace(), Logger(logger.Nop()), ErrorHandler(), Recovery())
	r.Use(mw...)
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestAuth(t *testing.T) {
	r := engine(Auth(staticValidator{"good": "user-1"}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, appctx.GetUserID(c.Request.Context()))
	})

	w := get(r, "/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperror.CodeUnauthorized, body(t, w)["code"])

	w = get(r, "/me", map[string]string{"Authorization": "Basic abc"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = get(r, "/me", map[string]string{"Authorization": "Bearer forged"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotContains(t, w.Body.String(), "bad token")

	w = get(r, "/me", map[string]string{"Authorization": "bearer good"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-1", w.Body.String())
}

func TestOptionalAuth(t *testing.T) {
	r := engine(OptionalAuth(staticValidator{"good": "user-1"}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, "["+appctx.GetUserID(c.Request.Context())+"]")
	})

	assert.Equal(t, "[]", get(r, "/me", nil).Body.String())
	assert.Equal(t, "[]", get(r, "/me", map[string]string{"Authorization": "Bearer forged"}).Body.String())
	assert.Equal(t, "[user-1]", get(r, "/me", map[string]string{"Authorization": "Bearer good"}).Body.String())
}

func TestErrorHandler_RendersAppError(t *testing.T) {
	r := engine()
	r.GET("/stock", func(c *gin.Context) {
		_ = c.Error(apperror.NewInsufficientStock("Laptop HP", 3, 1))
	})

	w := get(r, "/stock", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	b := body(t, w)
	assert.Equal(t, apperror.CodeInsufficientStock, b["code"])
	details := b["details"].(map[string]any)
	assert.EqualValues(t, 3, details["requested"])
	assert.EqualValues(t, 1, details["available"])
}

func TestErrorHandler_HidesUnknownErrors(t *testing.T) {
	r := engine()
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("pq: password authentication failed"))
	})

	w := get(r, "/boom", map[string]string{HeaderRequestID: "req-42"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
	b := body(t, w)
	assert.Equal(t, apperror.CodeInternal, b["code"])
	assert.Equal(t, "req-42", b["details"].(map[string]any)["request_id"])
}

func TestRecovery_PanicBecomesInternalError(t *testing.T) {
	r := engine()
	r.GET("/panic", func(c *gin.Context) { panic("nil map write") })

	w := get(r, "/panic", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, apperror.CodeInternal, body(t, w)["code"])
	assert.NotContains(t, w.Body.String(), "nil map")
}

func TestTrace_EchoesOrGeneratesIDs(t *testing.T) {
	r := engine()
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, appctx.GetTraceID(c.Request.Context()))
	})

	w := get(r, "/ping", map[string]string{HeaderTraceID: "trace-1"})
	assert.Equal(t, "trace-1", w.Header().Get(HeaderTraceID))
	assert.Equal(t, "trace-1", w.Body.String())
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = get(r, "/ping", nil)
	assert.NotEmpty(t, w.Header().Get(HeaderTraceID))
	assert.Equal(t, w.Header().Get(HeaderTraceID), w.Body.String())
}
