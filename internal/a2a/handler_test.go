package a2a

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

type fakeStudio struct {
	products []models.Product
	last     studio.GenerateInput
}

func (f *fakeStudio) Products() []models.Product { return f.products }

func (f *fakeStudio) Generate(_ context.Context, in studio.GenerateInput) (generator.Result, error) {
	f.last = in
	for _, p := range f.products {
		if p.ID == in.ProductID {
			content := generator.Generate(generator.Request{
				Product:     p,
				ContentType: generator.ParseContentType(in.ContentType),
				Tone:        generator.ParseTone(in.Tone),
				Length:      generator.ParseLength(in.Length),
			})
			return generator.Describe(content, generator.ParseLength(in.Length)), nil
		}
	}
	return generator.Result{}, studio.ErrProductNotFound
}

type rpcResult struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      any         `json:"id"`
	Result  *TaskResult `json:"result"`
	Error   *RPCError   `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *fakeStudio) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fs := &fakeStudio{products: []models.Product{{
		ID:          "aura_helena",
		Name:        "Aura Eau de Parfum",
		Category:    "Perfumería",
		Description: "Fragancia única con notas de vainilla",
	}}}
	h := NewA2AHandler(fs, zap.NewNop())

	r := gin.New()
	r.POST("/a2a/content", h.HandleContent)
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	return r, fs
}

func post(t *testing.T, r http.Handler, body string) rpcResult {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/a2a/content", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var res rpcResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func messageBody(method string, parts string) string {
	return `{"jsonrpc":"2.0","id":"req-1","method":"` + method + `","params":{"message":{"kind":"message","role":"user","parts":` + parts + `}}}`
}

func TestHandleContent_TextParams(t *testing.T) {
	r, fs := setupRouter(t)

	res := post(t, r, messageBody("message/send",
		`[{"kind":"text","text":"product: aura_helena, platform: Instagram, type: educativo, tone: casual, length: corto"}]`))

	require.Nil(t, res.Error)
	require.NotNil(t, res.Result)
	assert.Equal(t, "req-1", res.ID)
	assert.Equal(t, StateCompleted, res.Result.Status.State)
	assert.Equal(t, "task", res.Result.Kind)
	assert.Equal(t, studio.GenerateInput{
		ProductID:   "aura_helena",
		Platform:    "Instagram",
		ContentType: "educativo",
		Tone:        "casual",
		Length:      "corto",
	}, fs.last)

	require.Len(t, res.Result.Artifacts, 1)
	artifact := res.Result.Artifacts[0]
	assert.Equal(t, "Generated Content", artifact.Name)
	require.Len(t, artifact.Parts, 2)
	assert.Contains(t, artifact.Parts[0].Text, "Aura Eau de Parfum")
	assert.Equal(t, "data", artifact.Parts[1].Kind)
	assert.Equal(t, artifact.Parts[0].Text, res.Result.Status.Message.Parts[0].Text)
}

func TestHandleContent_DataPart(t *testing.T) {
	r, fs := setupRouter(t)

	res := post(t, r, messageBody("agent/task",
		`[{"kind":"data","data":{"product_id":"aura_helena","tone":"elegante","length":"muy_largo"}}]`))

	require.NotNil(t, res.Result)
	assert.Equal(t, StateCompleted, res.Result.Status.State)
	assert.Equal(t, "elegante", fs.last.Tone)
	assert.Equal(t, "muy_largo", fs.last.Length)
}

func TestHandleContent_HistoryDataPart(t *testing.T) {
	r, fs := setupRouter(t)

	res := post(t, r, messageBody("message/send",
		`[{"kind":"data","data":[{"kind":"text","text":"<p>product: ghost</p>"},{"kind":"text","text":"<p>product: aura_helena, tone: divertido</p>"},{"kind":"text","text":""}]}]`))

	require.NotNil(t, res.Result)
	assert.Equal(t, StateCompleted, res.Result.Status.State)
	assert.Equal(t, "aura_helena", fs.last.ProductID)
	assert.Equal(t, "divertido", fs.last.Tone)
}

func TestHandleContent_MissingProductAsksForInput(t *testing.T) {
	r, _ := setupRouter(t)

	res := post(t, r, messageBody("message/send", `[{"kind":"text","text":"tone: casual"}]`))

	require.NotNil(t, res.Result)
	assert.Equal(t, StateInputRequired, res.Result.Status.State)
	assert.Contains(t, res.Result.Status.Message.Parts[0].Text, "aura_helena")
	assert.Empty(t, res.Result.Artifacts)
}

func TestHandleContent_UnknownProductFails(t *testing.T) {
	r, _ := setupRouter(t)

	res := post(t, r, messageBody("message/send", `[{"kind":"text","text":"product: ghost"}]`))

	require.NotNil(t, res.Result)
	assert.Equal(t, StateFailed, res.Result.Status.State)
	assert.Contains(t, res.Result.Status.Message.Parts[0].Text, `"ghost"`)
}

func TestHandleContent_ListProducts(t *testing.T) {
	r, _ := setupRouter(t)

	res := post(t, r, messageBody("message/send", `[{"kind":"text","text":"Productos"}]`))

	require.NotNil(t, res.Result)
	assert.Equal(t, StateCompleted, res.Result.Status.State)
	require.Len(t, res.Result.Artifacts, 1)
	assert.Equal(t, "Catalog Products", res.Result.Artifacts[0].Name)
	assert.Contains(t, res.Result.Artifacts[0].Parts[0].Text, "aura_helena: Aura Eau de Parfum (Perfumería)")
}

func TestHandleContent_KeepsCallerTaskID(t *testing.T) {
	r, _ := setupRouter(t)

	res := post(t, r, `{"jsonrpc":"2.0","id":7,"method":"message/send","params":{"message":{"kind":"message","role":"user","taskId":"task-42","contextId":"ctx-1","parts":[{"kind":"text","text":"product: aura_helena"}]}}}`)

	require.NotNil(t, res.Result)
	assert.Equal(t, float64(7), res.ID)
	assert.Equal(t, "task-42", res.Result.ID)
	assert.Equal(t, "ctx-1", res.Result.ContextID)
}

func TestHandleContent_DirectMessage(t *testing.T) {
	r, _ := setupRouter(t)

	res := post(t, r, `{"message":{"kind":"message","role":"user","parts":[{"kind":"text","text":"product: aura_helena"}]}}`)

	require.NotNil(t, res.Result)
	assert.Equal(t, StateCompleted, res.Result.Status.State)
}

func TestHandleContent_RPCErrors(t *testing.T) {
	r, _ := setupRouter(t)

	tests := []struct {
		name string
		body string
		code int
	}{
		{"malformed json", `{"jsonrpc":`, CodeParseError},
		{"wrong version", `{"jsonrpc":"1.0","id":"1","method":"message/send","params":{}}`, CodeInvalidRequest},
		{"unknown method", `{"jsonrpc":"2.0","id":"1","method":"tasks/cancel","params":{}}`, CodeMethodNotFound},
		{"missing params", `{"jsonrpc":"2.0","id":"1","method":"message/send"}`, CodeInvalidParams},
		{"bad params", `{"jsonrpc":"2.0","id":"1","method":"message/send","params":{"message":"hola"}}`, CodeInvalidParams},
		{"empty direct message", `{}`, CodeInvalidRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := post(t, r, tt.body)
			require.NotNil(t, res.Error)
			assert.Equal(t, tt.code, res.Error.Code)
			assert.Nil(t, res.Result)
		})
	}
}

func TestServeAgentCard(t *testing.T) {
	r, _ := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var card map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "Content Studio Agent", card["name"])
}
