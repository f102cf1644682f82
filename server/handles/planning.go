package handles

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/db"
	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/internal/pdfrender"
	"github.com/batiplan/batiplan/internal/planning"
	"github.com/batiplan/batiplan/server/common"
)

const dateLayout = "2006-01-02"

// Renderer is the remote PDF service client, wired at server init.
var Renderer *pdfrender.Client

var weekCache = planning.NewWeekCache()

func getUserInfo(c *gin.Context) (bool, uint, bool) {
	if user, ok := c.Request.Context().Value(conf.UserKey).(*model.User); ok {
		return user.IsAdmin(), user.ID, true
	}
	return false, 0, false
}

func ListChantiers(c *gin.Context) {
	chantiers, err := db.ListChantiers(c.Request.Context())
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, chantiers)
}

func ListOuvriers(c *gin.Context) {
	ouvriers, err := db.ListOuvriers(c.Request.Context())
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, ouvriers)
}

func ListSousTraitants(c *gin.Context) {
	sousTraitants, err := db.ListSousTraitants(c.Request.Context())
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, sousTraitants)
}

func ListSavTickets(c *gin.Context) {
	tickets, err := db.ListSavTickets(c.Request.Context())
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	common.SuccessResp(c, tickets)
}

// TaskReq carries both creation forms: a materialized multi-day request
// (date + segment + duration) or an explicit start/end interval, as used by
// drag and drop reschedules.
type TaskReq struct {
	Title             string     `json:"title" binding:"required"`
	Description       string     `json:"description"`
	Date              string     `json:"date"`
	Segment           string     `json:"segment"`
	DurationDays      int        `json:"durationDays"`
	Start             *time.Time `json:"start"`
	End               *time.Time `json:"end"`
	Status            string     `json:"status"`
	ChantierID        *uint      `json:"chantierId"`
	SavTicketID       *uint      `json:"savTicketId"`
	OuvrierIDs        []uint     `json:"ouvrierIds"`
	SousTraitantIDs   []uint     `json:"sousTraitantIds"`
	DuplicateNextWeek bool       `json:"duplicateNextWeek"`
}

func (r *TaskReq) materializeRequest(anchor time.Time) planning.MaterializeRequest {
	seg := planning.Segment(r.Segment)
	if r.Segment == "" {
		seg = planning.SegmentFull
	}
	return planning.MaterializeRequest{
		Title:           r.Title,
		Description:     r.Description,
		Anchor:          anchor,
		Segment:         seg,
		DurationDays:    r.DurationDays,
		Status:          model.TaskStatus(r.Status),
		ChantierID:      r.ChantierID,
		SavTicketID:     r.SavTicketID,
		OuvrierIDs:      r.OuvrierIDs,
		SousTraitantIDs: r.SousTraitantIDs,
	}
}

func assignResources(t *model.PlanningTask, ouvrierIDs, sousTraitantIDs []uint) {
	for _, id := range ouvrierIDs {
		t.Ouvriers = append(t.Ouvriers, model.OuvrierInterne{ID: id})
	}
	for _, id := range sousTraitantIDs {
		t.SousTraitants = append(t.SousTraitants, model.SousTraitant{ID: id})
	}
}

// invalidateTaskWeeks drops every cached week a task's interval touches, so
// reschedules across a week boundary never leave a stale snapshot behind.
func invalidateTaskWeeks(taskID string, start, end time.Time) {
	weekCache.InvalidateTask(taskID)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 7) {
		weekCache.InvalidateWeek(day)
	}
	weekCache.InvalidateWeek(end)
}

func materializer() *planning.Materializer {
	policy, err := planning.ParseOverbookingPolicy(conf.Conf.Planning.OverbookingPolicy)
	if err != nil {
		policy = planning.OverbookingAllow
	}
	return planning.NewMaterializer(db.TaskStore{}, policy)
}

// CreateTask creates either a single explicit-interval task or a multi-day
// materialization. Partial failures of the latter are reported as an error
// after every day was attempted; already-created rows stay.
func CreateTask(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	var req TaskReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	ctx := c.Request.Context()
	if req.Date != "" {
		anchor, err := time.ParseInLocation(dateLayout, req.Date, planning.Location())
		if err != nil {
			common.ErrorResp(c, errors.Wrap(err, "invalid date"), 400)
			return
		}
		m := materializer()
		res, err := m.Materialize(ctx, req.materializeRequest(anchor))
		var dup *planning.MaterializeResult
		if err == nil && req.DuplicateNextWeek {
			d, dupErr := m.DuplicateNextWeek(ctx, req.materializeRequest(anchor))
			dup = &d
			err = dupErr
		}
		for _, day := range planning.ExpandDays(anchor, max(req.DurationDays, 1)+7) {
			weekCache.InvalidateWeek(day)
		}
		if err != nil {
			common.ErrorResp(c, errors.Wrapf(err, "created %d task(s) before failure", res.Created), 500, true)
			return
		}
		data := gin.H{"firstTaskId": res.FirstTaskID, "created": res.Created, "days": res.Days}
		if dup != nil {
			data["duplicatedNextWeek"] = dup.Created
		}
		common.SuccessResp(c, data)
		return
	}
	if req.Start == nil || req.End == nil {
		common.ErrorStrResp(c, "either date or start/end must be set", 400)
		return
	}
	status := model.TaskStatus(req.Status)
	if status == "" {
		status = model.StatusPrevu
	}
	if !status.Valid() {
		common.ErrorStrResp(c, "invalid status", 400)
		return
	}
	t := &model.PlanningTask{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Start:       *req.Start,
		End:         *req.End,
		Status:      status,
		ChantierID:  req.ChantierID,
		SavTicketID: req.SavTicketID,
	}
	assignResources(t, req.OuvrierIDs, req.SousTraitantIDs)
	if err := db.CreateTask(ctx, t); err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	invalidateTaskWeeks(t.ID, t.Start, t.End)
	common.SuccessResp(c, gin.H{"firstTaskId": t.ID, "created": 1, "days": 1})
}

// UpdateTask rewrites one task row, assignments included. Synthetic slice
// ids resolve to their backing task.
func UpdateTask(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	ref := planning.ParseTaskRef(c.Param("id"))
	var req TaskReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	if req.Start == nil || req.End == nil {
		common.ErrorStrResp(c, "start and end are required", 400)
		return
	}
	status := model.TaskStatus(req.Status)
	if status == "" {
		status = model.StatusPrevu
	}
	if !status.Valid() {
		common.ErrorStrResp(c, "invalid status", 400)
		return
	}
	t := &model.PlanningTask{
		ID:          ref.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Start:       *req.Start,
		End:         *req.End,
		Status:      status,
		ChantierID:  req.ChantierID,
		SavTicketID: req.SavTicketID,
	}
	assignResources(t, req.OuvrierIDs, req.SousTraitantIDs)
	if err := db.UpdateTask(c.Request.Context(), t); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.ErrorStrResp(c, "task not found", 404)
			return
		}
		common.ErrorResp(c, err, 500, true)
		return
	}
	invalidateTaskWeeks(ref.TaskID, t.Start, t.End)
	common.SuccessResp(c)
}

type PatchTaskReq struct {
	Action string `json:"action" binding:"required"`
	Date   string `json:"date"`
}

// PatchTask handles partial mutations. The only supported action is
// removeDay, which shrinks the task's coverage by the given day.
func PatchTask(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	ref := planning.ParseTaskRef(c.Param("id"))
	var req PatchTaskReq
	if err := c.ShouldBind(&req); err != nil {
		common.ErrorResp(c, err, 400)
		return
	}
	if req.Action != "removeDay" {
		common.ErrorStrResp(c, "unsupported action", 400)
		return
	}
	dateStr := req.Date
	if dateStr == "" {
		dateStr = ref.Date
	}
	if dateStr == "" {
		common.ErrorStrResp(c, "date is required", 400)
		return
	}
	day, err := time.ParseInLocation(dateLayout, dateStr, planning.Location())
	if err != nil {
		common.ErrorResp(c, errors.Wrap(err, "invalid date"), 400)
		return
	}
	if err := db.RemoveTaskDay(c.Request.Context(), ref.TaskID, day); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.ErrorStrResp(c, "task not found", 404)
			return
		}
		common.ErrorResp(c, err, 500, true)
		return
	}
	weekCache.InvalidateTask(ref.TaskID)
	common.SuccessResp(c)
}

// DeleteTask removes a task. A synthetic day-slice id removes only that day
// of the backing task; a plain id deletes the whole row.
func DeleteTask(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	ref := planning.ParseTaskRef(c.Param("id"))
	ctx := c.Request.Context()
	var err error
	if ref.IsSlice() {
		var day time.Time
		day, err = ref.Day(planning.Location())
		if err == nil {
			err = db.RemoveTaskDay(ctx, ref.TaskID, day)
		}
	} else {
		err = db.DeleteTask(ctx, ref.TaskID)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.ErrorStrResp(c, "task not found", 404)
			return
		}
		common.ErrorResp(c, err, 500, true)
		return
	}
	weekCache.InvalidateTask(ref.TaskID)
	common.SuccessResp(c)
}

// ListTasks returns tasks overlapping [from, to). Defaults to the current
// and following week. Exact single-week queries go through the snapshot
// cache.
func ListTasks(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	loc := planning.Location()
	now := time.Now().In(loc)
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 14)
	var err error
	if s := c.Query("from"); s != "" {
		from, err = time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			common.ErrorResp(c, errors.Wrap(err, "invalid from"), 400)
			return
		}
		to = from.AddDate(0, 0, 7)
	}
	if s := c.Query("to"); s != "" {
		to, err = time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			common.ErrorResp(c, errors.Wrap(err, "invalid to"), 400)
			return
		}
	}
	singleWeek := planning.WeekKeyOf(from) == from.Format(dateLayout) && to.Equal(from.AddDate(0, 0, 7))
	if singleWeek {
		if tasks, ok := weekCache.Get(planning.WeekKeyOf(from)); ok {
			common.SuccessResp(c, common.PageResp{Content: tasks, Total: int64(len(tasks))})
			return
		}
	}
	tasks, err := db.ListTasksBetween(c.Request.Context(), from, to)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	if singleWeek {
		weekCache.Put(planning.WeekKeyOf(from), tasks)
	}
	common.SuccessResp(c, common.PageResp{Content: tasks, Total: int64(len(tasks))})
}

// ExportPlanningPDF renders the two-week resource grid through the remote
// service. A failed health check aborts before any generation call, and no
// retry is attempted.
func ExportPlanningPDF(c *gin.Context) {
	if _, _, ok := getUserInfo(c); !ok {
		common.ErrorStrResp(c, "user invalid", 401)
		return
	}
	ctx := c.Request.Context()
	if err := Renderer.Health(ctx); err != nil {
		common.ErrorResp(c, err, 503, true)
		return
	}
	loc := planning.Location()
	now := time.Now().In(loc)
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.AddDate(0, 0, -offset).Date()
	weekStart := time.Date(y, m, d, 0, 0, 0, 0, loc)

	ouvriers, err := db.ListOuvriers(ctx)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	sousTraitants, err := db.ListSousTraitants(ctx)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	chantiers, err := db.ListChantiers(ctx)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	tasks, err := db.ListTasksBetween(ctx, weekStart, weekStart.AddDate(0, 0, 14))
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	html, err := pdfrender.BuildPlanningHTML(pdfrender.GridInput{
		WeekStart:     weekStart,
		Ouvriers:      ouvriers,
		SousTraitants: sousTraitants,
		Chantiers:     chantiers,
		Tasks:         tasks,
	})
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	pdf, err := Renderer.RenderHTML(ctx, html)
	if err != nil {
		common.ErrorResp(c, err, 500, true)
		return
	}
	c.Header("Content-Disposition", `attachment; filename=`+pdfrender.ExportFilename(now))
	c.Data(200, "application/pdf", pdf)
}
