package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/metinatakli/movie-booking-web/internal/apiclient"
	"github.com/metinatakli/movie-booking-web/internal/report"
	"github.com/oapi-codegen/runtime/types"
)

const MsgReportUnavailable = "The report could not be loaded."

type reportForm struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02,date_gtefield=StartDate"`
}

type reportsPage struct {
	Form      reportForm
	Errors    map[string]string
	LoadError string
	Loaded    bool
	Summary   report.Summary
	Bars      report.BarChart
	Pie       report.PieChart
}

type reportResponse struct {
	StartDate types.Date `json:"startDate"`
	EndDate   types.Date `json:"endDate"`
	report.Summary
}

func reportFormFromQuery(r *http.Request) reportForm {
	query := r.URL.Query()

	return reportForm{
		StartDate: query.Get("startDate"),
		EndDate:   query.Get("endDate"),
	}
}

// dateRange parses a form that already passed validation.
func (f reportForm) dateRange() (types.Date, types.Date, error) {
	start, err := time.Parse(types.DateFormat, f.StartDate)
	if err != nil {
		return types.Date{}, types.Date{}, err
	}

	end, err := time.Parse(types.DateFormat, f.EndDate)
	if err != nil {
		return types.Date{}, types.Date{}, err
	}

	return types.Date{Time: start}, types.Date{Time: end}, nil
}

func (app *Application) loadReport(ctx context.Context, start, end types.Date) (report.Summary, error) {
	reservations, err := app.reservationService.InRange(ctx, start.Time, end.Time)
	if err != nil {
		return report.Summary{}, fmt.Errorf("load report %s..%s: %w", start.Format(types.DateFormat), end.Format(types.DateFormat), err)
	}

	return report.Summarize(reservations), nil
}

func (app *Application) ShowReport(w http.ResponseWriter, r *http.Request) {
	page := reportsPage{Form: reportFormFromQuery(r)}
	status := http.StatusOK

	if page.Form.StartDate != "" || page.Form.EndDate != "" {
		status = app.fillReport(r, &page)
	}

	data := app.newTemplateData(r)
	data.Page = page

	app.render(w, r, status, pageReports, data)
}

func (app *Application) fillReport(r *http.Request, page *reportsPage) int {
	if err := app.validator.Struct(page.Form); err != nil {
		page.Errors = validationMessages(err)
		return http.StatusUnprocessableEntity
	}

	start, end, err := page.Form.dateRange()
	if err != nil {
		page.Errors = map[string]string{"form": err.Error()}
		return http.StatusUnprocessableEntity
	}

	summary, err := app.loadReport(r.Context(), start, end)
	if err != nil {
		app.logError(r, err)
		page.LoadError = apiclient.ErrorMessage(err, MsgReportUnavailable)
		return http.StatusOK
	}

	page.Loaded = true
	page.Summary = summary
	page.Bars = report.NewBarChart(summary.ByMovie)
	page.Pie = report.NewPieChart(summary.ByTime)

	return http.StatusOK
}

func (app *Application) GetReportData(w http.ResponseWriter, r *http.Request) {
	form := reportFormFromQuery(r)

	if err := app.validator.Struct(form); err != nil {
		app.failedValidationResponse(w, r, validationMessages(err))
		return
	}

	start, end, err := form.dateRange()
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"form": err.Error()})
		return
	}

	summary, err := app.loadReport(r.Context(), start, end)
	if err != nil {
		app.logError(r, err)
		app.errorResponse(w, r, backendErrorStatus(err), apiclient.ErrorMessage(err, ErrBackendFailure))
		return
	}

	resp := reportResponse{
		StartDate: start,
		EndDate:   end,
		Summary:   summary,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorJSON(w, r, err)
	}
}
