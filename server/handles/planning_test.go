package handles

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/internal/pdfrender"
)

func testContext(t *testing.T, method, target, body string, user *model.User) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req = req.WithContext(context.WithValue(req.Context(), conf.UserKey, user))
	}
	c.Request = req
	return c, w
}

func TestExportAbortsBeforeGenerationWhenRendererDown(t *testing.T) {
	var renderCalls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		atomic.AddInt32(&renderCalls, 1)
	}))
	defer ts.Close()
	Renderer = pdfrender.NewClient(conf.Renderer{URL: ts.URL, TimeoutSeconds: 5})

	c, w := testContext(t, http.MethodPost, "/api/planning/export-pdf", "", &model.User{ID: 1, Role: model.ADMIN})
	ExportPlanningPDF(c)

	assert.Contains(t, w.Body.String(), `"code":503`)
	assert.Equal(t, int32(0), atomic.LoadInt32(&renderCalls), "generation must not be attempted after a failed health check")
}

func TestHandlersRequireSession(t *testing.T) {
	handlers := map[string]gin.HandlerFunc{
		"create": CreateTask,
		"update": UpdateTask,
		"patch":  PatchTask,
		"delete": DeleteTask,
		"list":   ListTasks,
		"export": ExportPlanningPDF,
	}
	for name, h := range handlers {
		t.Run(name, func(t *testing.T) {
			c, w := testContext(t, http.MethodPost, "/api/planning/tasks", "", nil)
			h(c)
			assert.Contains(t, w.Body.String(), `"code":401`)
		})
	}
}

func TestInvalidateTaskWeeksCoversEveryTouchedWeek(t *testing.T) {
	l, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)
	weekCache.InvalidateAll()
	// week 2 cached without the task, as after listing before the move
	weekCache.Put("2025-06-02", []model.PlanningTask{{ID: "t1"}})
	weekCache.Put("2025-06-09", []model.PlanningTask{})

	// reschedule lands the task across the boundary: Sat 06-07 to Mon 06-09
	start := time.Date(2025, time.June, 7, 7, 30, 0, 0, l)
	end := time.Date(2025, time.June, 9, 16, 30, 0, 0, l)
	invalidateTaskWeeks("t1", start, end)

	_, ok := weekCache.Get("2025-06-02")
	assert.False(t, ok, "start week must be dropped")
	_, ok = weekCache.Get("2025-06-09")
	assert.False(t, ok, "end week must be dropped even though the task was not in its snapshot")
}

func TestPatchTaskRejectsUnknownAction(t *testing.T) {
	user := &model.User{ID: 1, Role: model.ADMIN}

	c, w := testContext(t, http.MethodPatch, "/api/planning/tasks/t1", `{"action":"rename"}`, user)
	c.Params = gin.Params{{Key: "id", Value: "t1"}}
	PatchTask(c)
	assert.Contains(t, w.Body.String(), `"code":400`)

	c, w = testContext(t, http.MethodPatch, "/api/planning/tasks/t1", `{"action":"removeDay"}`, user)
	c.Params = gin.Params{{Key: "id", Value: "t1"}}
	PatchTask(c)
	// removeDay on a non-synthetic id needs an explicit date
	assert.Contains(t, w.Body.String(), `"code":400`)
}

func TestCreateTaskValidation(t *testing.T) {
	user := &model.User{ID: 1, Role: model.ADMIN}

	// title is required
	c, w := testContext(t, http.MethodPost, "/api/planning/tasks", `{"date":"2025-06-02"}`, user)
	CreateTask(c)
	assert.Contains(t, w.Body.String(), `"code":400`)

	// malformed anchor date
	c, w = testContext(t, http.MethodPost, "/api/planning/tasks", `{"title":"x","date":"junk"}`, user)
	CreateTask(c)
	assert.Contains(t, w.Body.String(), `"code":400`)

	// neither date nor start/end
	c, w = testContext(t, http.MethodPost, "/api/planning/tasks", `{"title":"x"}`, user)
	CreateTask(c)
	assert.Contains(t, w.Body.String(), `"code":400`)
}

func TestUpdateTaskValidation(t *testing.T) {
	user := &model.User{ID: 1, Role: model.ADMIN}
	c, w := testContext(t, http.MethodPut, "/api/planning/tasks/t1", `{"title":"x","status":"BOGUS","start":"2025-06-02T07:30:00Z","end":"2025-06-02T16:30:00Z"}`, user)
	c.Params = gin.Params{{Key: "id", Value: "t1"}}
	UpdateTask(c)
	require.Contains(t, w.Body.String(), `"code":400`)
}
