package pdfrender

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/pkg/errors"

	"github.com/batiplan/batiplan/internal/model"
	"github.com/batiplan/batiplan/internal/planning"
	"github.com/batiplan/batiplan/pkg/utils"
)

const defaultCellColor = "#9e9e9e"

// GridInput is everything the two-week planning document needs: the Monday
// anchoring the current week, the assignable resources and the tasks of
// [WeekStart, WeekStart+14d).
type GridInput struct {
	WeekStart     time.Time
	Ouvriers      []model.OuvrierInterne
	SousTraitants []model.SousTraitant
	Chantiers     []model.Chantier
	Tasks         []model.PlanningTask
}

type gridEntry struct {
	Title   string
	Segment string
	Color   string
}

type gridCell struct {
	Entries []gridEntry
}

type gridRow struct {
	Resource string
	Cells    []gridCell
}

type gridWeek struct {
	Label string
	Days  []string
	Rows  []gridRow
}

type gridDoc struct {
	Weeks []gridWeek
}

func segmentLabel(seg planning.Segment) string {
	switch seg {
	case planning.SegmentAM:
		return "matin"
	case planning.SegmentPM:
		return "après-midi"
	}
	return "journée"
}

func buildRow(name string, days []time.Time, tasks []model.PlanningTask, member func(t *model.PlanningTask) bool, colors map[uint]string) gridRow {
	row := gridRow{Resource: name, Cells: make([]gridCell, len(days))}
	for i, day := range days {
		for j := range tasks {
			t := &tasks[j]
			if !member(t) {
				continue
			}
			seg := planning.SegmentOf(t.Start, t.End, day)
			if seg == planning.SegmentNone {
				continue
			}
			color := defaultCellColor
			if t.ChantierID != nil {
				if c, ok := colors[*t.ChantierID]; ok {
					color = c
				}
			}
			row.Cells[i].Entries = append(row.Cells[i].Entries, gridEntry{
				Title:   t.Title,
				Segment: segmentLabel(seg),
				Color:   color,
			})
		}
	}
	return row
}

func buildWeek(weekStart time.Time, in GridInput, colors map[uint]string) gridWeek {
	// Monday through Saturday, Sundays are never planned.
	days := make([]time.Time, 0, 6)
	for i := 0; i < 6; i++ {
		days = append(days, weekStart.AddDate(0, 0, i))
	}
	week := gridWeek{
		Label: fmt.Sprintf("Semaine du %s", weekStart.Format("02/01/2006")),
		Days:  utils.MustSliceConvert(days, func(d time.Time) string { return d.Format("Mon 02/01") }),
	}
	for _, o := range in.Ouvriers {
		id := o.ID
		week.Rows = append(week.Rows, buildRow(o.DisplayName(), days, in.Tasks, func(t *model.PlanningTask) bool {
			return utils.SliceContains(t.OuvrierIDs(), id)
		}, colors))
	}
	for _, s := range in.SousTraitants {
		id := s.ID
		week.Rows = append(week.Rows, buildRow(s.DisplayName(), days, in.Tasks, func(t *model.PlanningTask) bool {
			return utils.SliceContains(t.SousTraitantIDs(), id)
		}, colors))
	}
	return week
}

var planningTemplate = template.Must(template.New("planning").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Helvetica, Arial, sans-serif; font-size: 10px; }
  h2 { margin: 4px 0 8px 0; }
  table { width: 100%; border-collapse: collapse; table-layout: fixed; }
  th, td { border: 1px solid #444; padding: 3px; vertical-align: top; }
  th.resource, td.resource { width: 14%; text-align: left; }
  .entry { border-radius: 3px; padding: 2px 3px; margin-bottom: 2px; color: #fff; }
  .segment { font-size: 8px; }
  .week { page-break-after: always; }
  .week:last-child { page-break-after: auto; }
</style>
</head>
<body>
{{- range .Weeks}}
<div class="week">
<h2>{{.Label}}</h2>
<table>
<tr><th class="resource">Ressource</th>{{range .Days}}<th>{{.}}</th>{{end}}</tr>
{{- range .Rows}}
<tr><td class="resource">{{.Resource}}</td>
{{- range .Cells}}
<td>{{range .Entries}}<div class="entry" style="background:{{.Color}}">{{.Title}}<div class="segment">{{.Segment}}</div></div>{{end}}</td>
{{- end}}
</tr>
{{- end}}
</table>
</div>
{{- end}}
</body>
</html>
`))

// BuildPlanningHTML renders the fixed-layout document: one page per week,
// resources as rows, days as columns, cells color-coded per chantier.
func BuildPlanningHTML(in GridInput) (string, error) {
	colors := make(map[uint]string, len(in.Chantiers))
	for _, c := range in.Chantiers {
		if c.Couleur != "" {
			colors[c.ID] = c.Couleur
		}
	}
	doc := gridDoc{
		Weeks: []gridWeek{
			buildWeek(in.WeekStart, in, colors),
			buildWeek(in.WeekStart.AddDate(0, 0, 7), in, colors),
		},
	}
	var buf bytes.Buffer
	if err := planningTemplate.Execute(&buf, doc); err != nil {
		return "", errors.WithStack(err)
	}
	return buf.String(), nil
}

// ExportFilename names the attachment after the export date.
func ExportFilename(day time.Time) string {
	return "planning-ressources-" + day.Format("2006-01-02") + ".pdf"
}
