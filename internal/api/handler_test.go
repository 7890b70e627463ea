package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/content-studio-agent/internal/generator"
	"github.com/BerylCAtieno/content-studio-agent/internal/models"
	"github.com/BerylCAtieno/content-studio-agent/internal/store"
	"github.com/BerylCAtieno/content-studio-agent/internal/studio"
)

var testNow = time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	clock := func() time.Time { return testNow }
	s, err := studio.New(store.NewMemory(), generator.New(generator.WithDelay(0, 0)), zap.NewNop(),
		studio.WithClock(clock),
		studio.WithRuleTestDelay(time.Millisecond),
	)
	require.NoError(t, err)
	require.NoError(t, s.Init(context.Background()))

	h := NewHandler(s, zap.NewNop())
	h.now = clock

	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestGetMeAndDashboard(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/api/me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user_demo_boticario", decode[models.User](t, w).ID)

	w = do(t, r, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, w.Code)
	d := decode[studio.Dashboard](t, w)
	assert.Equal(t, 4, d.Stats.Products)
	assert.Equal(t, 1, d.Stats.ActiveRules)
	assert.Equal(t, "Ahora", d.Activity[0].Time)
}

func TestGenerate(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/generate",
		`{"product_id":"aura_helena","platform":"instagram","content_type":"promocional","tone":"profesional","length":"medio"}`)
	require.Equal(t, http.StatusOK, w.Code)
	res := decode[generator.Result](t, w)
	assert.Equal(t, generator.Band{Min: 80, Max: 150}, res.Band)
	assert.Equal(t, generator.CountWords(res.Content), res.Words)
	assert.True(t, res.Band.Contains(res.Words))
	assert.False(t, res.Shortfall)
	assert.Contains(t, res.Content, "Aura Eau de Parfum by Helena Coelho")

	w = do(t, r, http.MethodPost, "/api/generate", `{"product_id":"ghost"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, decode[ErrorResponse](t, w).Error, "product not found")

	w = do(t, r, http.MethodPost, "/api/generate", `{"product_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/products", `{"name":"Nativa SPA","category":"Cuidado Corporal","description":"Aceite corporal","stock":30}`)
	require.Equal(t, http.StatusCreated, w.Code)
	p := decode[productView](t, w)
	assert.True(t, strings.HasPrefix(p.ID, "product_"))
	assert.False(t, p.LowStock)

	w = do(t, r, http.MethodPost, "/api/products", `{"name":"Sin categoría","description":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, "/api/products/"+p.ID, `{"name":"Nativa SPA Ameixa","category":"Cuidado Corporal","description":"Aceite","stock":8}`)
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[productView](t, w)
	assert.Equal(t, "Nativa SPA Ameixa", updated.Name)
	assert.True(t, updated.LowStock)

	w = do(t, r, http.MethodGet, "/api/products", "")
	catalog := decode[[]productView](t, w)
	require.Len(t, catalog, 5)
	low := 0
	for _, item := range catalog {
		if item.LowStock {
			low++
			assert.Equal(t, p.ID, item.ID)
		}
	}
	assert.Equal(t, 1, low)
	assert.Contains(t, w.Body.String(), `"low_stock":true`)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/products/"+p.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/products/"+p.ID, "").Code)
}

func TestPostEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/posts", `{"content":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/posts", `{"content":"Nuevo aroma","platform":"myspace"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown platform")

	w = do(t, r, http.MethodPost, "/api/posts", `{"content":"Nuevo aroma","product_id":"aura_helena","platform":"instagram"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	post := decode[models.Post](t, w)
	assert.Equal(t, models.PostStatusDraft, post.Status)

	w = do(t, r, http.MethodPost, "/api/posts/"+post.ID+"/publish", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.PostStatusPublished, decode[models.Post](t, w).Status)

	w = do(t, r, http.MethodGet, "/api/posts", "")
	assert.Len(t, decode[[]models.Post](t, w), 1)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/posts/"+post.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/posts/"+post.ID+"/publish", "").Code)
}

func TestScheduleAndCalendar(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/schedule", `{"content":"Promo","platform":"facebook"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/schedule", `{"content":"Promo","platform":"orkut","scheduled_date":"2025-03-14T18:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/schedule", `{"content":"Promo","platform":"facebook","scheduled_date":"2025-03-14T18:00:00Z"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	item := decode[models.ScheduledPost](t, w)

	w = do(t, r, http.MethodGet, "/api/schedule?upcoming=true&limit=5", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]models.ScheduledPost](t, w), 1)

	w = do(t, r, http.MethodGet, "/api/calendar", "")
	require.Equal(t, http.StatusOK, w.Code)
	view := decode[studio.CalendarView](t, w)
	assert.Equal(t, "Marzo 2025", view.Label)
	assert.Len(t, view.Days, 42)

	w = do(t, r, http.MethodGet, "/api/calendar?year=2025&month=0", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Diciembre 2024", decode[studio.CalendarView](t, w).Label)

	assert.Equal(t, http.StatusBadRequest, do(t, r, http.MethodGet, "/api/calendar?month=marzo", "").Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/schedule/"+item.ID, "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodDelete, "/api/schedule/"+item.ID, "").Code)
}

func TestRuleEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodGet, "/api/rules", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Rules []ruleView             `json:"rules"`
		Stats studio.AutomationStats `json:"stats"`
	}](t, w)
	require.Len(t, list.Rules, 2)
	assert.Equal(t, "Programación temporal", list.Rules[0].TriggerText)
	assert.Equal(t, 24, list.Stats.TotalExecutions)

	w = do(t, r, http.MethodPost, "/api/rules/rule_engagement_response/toggle", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[ruleView](t, w).Active)

	w = do(t, r, http.MethodPost, "/api/rules/rule_engagement_response/evaluate", `{"metrics":{"likes":120}}`)
	require.Equal(t, http.StatusOK, w.Code)
	eval := decode[map[string]any](t, w)
	assert.Equal(t, true, eval["executed"])

	w = do(t, r, http.MethodPost, "/api/rules/rule_posts_matutinos/evaluate", `{"metrics":{}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/rules/rule_posts_matutinos/test", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 25, decode[ruleView](t, w).ExecutionCount)

	w = do(t, r, http.MethodPost, "/api/rules", `{"name":"Mala","trigger":"engagement","action":"create_post","condition":"metrics.likes +"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusNoContent, do(t, r, http.MethodDelete, "/api/rules/rule_posts_matutinos", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/rules/rule_posts_matutinos/toggle", "").Code)
}

func TestConnectionEndpoints(t *testing.T) {
	r := setupRouter(t)

	w := do(t, r, http.MethodPost, "/api/connections/instagram/connect", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, decode[models.APIConnection](t, w).Connected)

	w = do(t, r, http.MethodGet, "/api/connections", "")
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Connections []models.APIConnection `json:"connections"`
		Stats       studio.ConnectionStats `json:"stats"`
	}](t, w)
	assert.Len(t, list.Connections, 4)
	assert.Equal(t, 1, list.Stats.Connected)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/connections/instagram/disconnect", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/connections/myspace/connect", "").Code)
}
