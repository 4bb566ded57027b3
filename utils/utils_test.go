package utils

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn", "json")

	log.Info("hidden")
	log.Warn("shown", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "v", line["k"])

	buf.Reset()
	NewLogger(&buf, "debug", "text").Debug("plain")
	assert.Contains(t, buf.String(), "msg=plain")
}

func TestJSONHelpers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	JSONError(c, http.StatusBadRequest, "Missing required fields")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Missing required fields"}`, w.Body.String())

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	JSONSuccess(c, http.StatusCreated, "done", gin.H{"id": "x"})
	assert.JSONEq(t, `{"success":true,"message":"done","id":"x"}`, w.Body.String())
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j**e@e******.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "a*@b.io", MaskEmail("ab@b.io"))
	assert.Equal(t, "a@x*.org", MaskEmail("a@xy.org"))
	assert.Equal(t, "not-an-email", MaskEmail("not-an-email"))
}
