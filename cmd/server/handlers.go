package main

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/timeclock/attendance"
	"github.com/dmitrymomot/timeclock/auth"
	"github.com/dmitrymomot/timeclock/core/handler"
	"github.com/dmitrymomot/timeclock/core/logger"
	"github.com/dmitrymomot/timeclock/core/response"
	"github.com/dmitrymomot/timeclock/core/session"
	"github.com/dmitrymomot/timeclock/core/sessiontransport"
	"github.com/dmitrymomot/timeclock/middleware"
)

type loginRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

type actionRequest struct {
	Action string `form:"actionBtn"`
}

type addEmployeeRequest struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// LoginPageData is the data structure for the login page template.
type LoginPageData struct {
	Title   string
	Error   string
	Message string
}

// ActionView is one dashboard button with its recorded state.
type ActionView struct {
	Label string
	Done  bool
	At    string
}

// DashboardPageData is the data structure for the employee dashboard.
type DashboardPageData struct {
	Title    string
	Username string
	Error    string
	Message  string
	Actions  []ActionView
}

// LogRow is one formatted log entry for the admin table.
type LogRow struct {
	Date     string
	Username string
	Start    string
	Break    string
	OnSeat   string
	Leave    string
}

// LogsPageData is the data structure for the admin logs page.
type LogsPageData struct {
	Title  string
	Error  string
	Counts attendance.LiveCounts
	Rows   []LogRow
}

// AddEmployeePageData is the data structure for the registration form.
type AddEmployeePageData struct {
	Title   string
	Error   string
	Message string
}

// dashboardActions pairs each button label with the timesheet field it
// records into. Both break buttons share one field, so pressing either
// marks both as used.
var dashboardActions = []struct {
	Label string
	Field attendance.Field
}{
	{attendance.ActionStart, attendance.FieldStart},
	{attendance.ActionBreak15, attendance.FieldBreak},
	{attendance.ActionBreak30, attendance.FieldBreak},
	{attendance.ActionBackAtSeat, attendance.FieldOnSeat},
	{attendance.ActionLeave, attendance.FieldLeave},
}

const timeDisplayFormat = "03:04 PM"

// loginPage renders the login form. A visitor who still carries a valid
// session is logged out first, so revisiting the login page always ends
// the current session.
func loginPage(log *slog.Logger, tmpl *template.Template, registry *session.Registry, transport *sessiontransport.Cookie) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		data := LoginPageData{Title: "Login"}

		sess, err := transport.Load(ctx.Request())
		if err != nil {
			return response.Template(tmpl, data)
		}

		if err := registry.Logout(ctx, sess.Username); err != nil {
			log.ErrorContext(ctx, "failed to release session on login revisit",
				slog.String("username", sess.Username), logger.Error(err))
		}
		data.Message = "You have been logged out."

		return func(w http.ResponseWriter, r *http.Request) error {
			transport.Clear(w)
			return response.Template(tmpl, data)(w, r)
		}
	}
}

// loginSubmit authenticates the user and claims their session slot.
// Admins land on the logs page, everyone else on the dashboard.
func loginSubmit(tmpl *template.Template, registry *session.Registry, transport *sessiontransport.Cookie) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var req loginRequest
		if err := ctx.Bind(&req); err != nil {
			return response.Error(response.ErrBadRequest.WithError(err))
		}

		sess, err := registry.Login(ctx, req.Username, req.Password)
		if err != nil {
			data := LoginPageData{Title: "Login"}
			switch {
			case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrEmptyCredentials):
				data.Error = "Invalid username or password."
			case errors.Is(err, session.ErrAlreadyLoggedIn):
				data.Error = "This user is already logged in on another device."
			default:
				return response.Error(response.ErrServiceUnavailable.WithError(err))
			}
			return response.Template(tmpl, data)
		}

		target := "/user-dashboard"
		if sess.Role == auth.RoleAdmin {
			target = "/logs"
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			if err := transport.Save(w, sess); err != nil {
				return err
			}
			return response.Redirect(target)(w, r)
		}
	}
}

// logout releases the session slot and clears the cookie. Safe to call
// without a session.
func logout(log *slog.Logger, registry *session.Registry, transport *sessiontransport.Cookie) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		if sess, err := transport.Load(ctx.Request()); err == nil {
			if err := registry.Logout(ctx, sess.Username); err != nil {
				log.ErrorContext(ctx, "failed to release session on logout",
					slog.String("username", sess.Username), logger.Error(err))
			}
		}

		return func(w http.ResponseWriter, r *http.Request) error {
			transport.Clear(w)
			return response.Redirect("/")(w, r)
		}
	}
}

// dashboardPage shows the employee's action buttons with their recorded
// state for the current day.
func dashboardPage(tmpl *template.Template, svc *attendance.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, _ := middleware.CurrentSession(ctx)

		sheet, err := svc.Today(ctx, sess.Username)
		if err != nil {
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		return response.Template(tmpl, dashboardData(sess.Username, sheet, "", ""))
	}
}

// dashboardSubmit records the pressed action and re-renders the dashboard.
// Pressing an already recorded action is a silent no-op.
func dashboardSubmit(tmpl *template.Template, svc *attendance.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		sess, _ := middleware.CurrentSession(ctx)

		var req actionRequest
		if err := ctx.Bind(&req); err != nil {
			return response.Error(response.ErrBadRequest.WithError(err))
		}

		var errMsg, message string
		switch err := svc.RecordAction(ctx, sess.Username, req.Action); {
		case err == nil:
			message = "Recorded."
		case errors.Is(err, attendance.ErrUnknownAction):
			errMsg = "Unknown action."
		case errors.Is(err, attendance.ErrInvalidTransition):
			errMsg = "That action is not available yet."
		default:
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		sheet, err := svc.Today(ctx, sess.Username)
		if err != nil {
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		return response.Template(tmpl, dashboardData(sess.Username, sheet, errMsg, message))
	}
}

func dashboardData(username string, sheet attendance.Timesheet, errMsg, message string) DashboardPageData {
	data := DashboardPageData{
		Title:    "Dashboard",
		Username: username,
		Error:    errMsg,
		Message:  message,
		Actions:  make([]ActionView, 0, len(dashboardActions)),
	}

	for _, a := range dashboardActions {
		view := ActionView{Label: a.Label}
		if at := sheet.FieldTime(a.Field); at != nil {
			view.Done = true
			view.At = at.Format(timeDisplayFormat)
		}
		data.Actions = append(data.Actions, view)
	}

	return data
}

// logsPage renders all log entries with live presence counts for admins.
func logsPage(tmpl *template.Template, svc *attendance.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		entries, err := svc.Logs(ctx)
		if err != nil {
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		data := LogsPageData{
			Title:  "Logs",
			Counts: attendance.LiveStatus(entries),
			Rows:   make([]LogRow, 0, len(entries)),
		}
		for _, e := range entries {
			data.Rows = append(data.Rows, LogRow{
				Date:     e.Date.Format("2006-01-02"),
				Username: e.Username,
				Start:    formatTimestamp(e.Start),
				Break:    formatTimestamp(e.Break),
				OnSeat:   formatTimestamp(e.OnSeat),
				Leave:    formatTimestamp(e.Leave),
			})
		}

		return response.Template(tmpl, data)
	}
}

// liveStatus returns current presence counts as JSON for the admin widget.
func liveStatus(svc *attendance.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		counts, err := svc.LiveStatus(ctx)
		if err != nil {
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}
		return response.JSON(counts)
	}
}

// downloadLogs streams the styled XLSX export. With no logs recorded the
// admin gets a friendly message instead of an empty file.
func downloadLogs(tmpl *template.Template, svc *attendance.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		data, filename, err := svc.Export(ctx)
		if err != nil {
			if errors.Is(err, attendance.ErrNoLogs) {
				return response.Template(tmpl, LogsPageData{
					Title: "Logs",
					Error: "There are no logs to download yet.",
				})
			}
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		return response.Attachment(data, filename,
			"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	}
}

// addEmployeePage renders the employee registration form.
func addEmployeePage(tmpl *template.Template) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		return response.Template(tmpl, AddEmployeePageData{Title: "Add Employee"})
	}
}

// addEmployeeSubmit registers a new employee account.
func addEmployeeSubmit(tmpl *template.Template, authSvc *auth.Service) handler.HandlerFunc[*Context] {
	return func(ctx *Context) handler.Response {
		var req addEmployeeRequest
		if err := ctx.Bind(&req); err != nil {
			return response.Error(response.ErrBadRequest.WithError(err))
		}

		data := AddEmployeePageData{Title: "Add Employee"}
		switch err := authSvc.CreateEmployee(ctx, req.Username, req.Password); {
		case err == nil:
			data.Message = "Employee created."
		case errors.Is(err, auth.ErrEmptyCredentials):
			data.Error = "Username and password are required."
		case errors.Is(err, auth.ErrDuplicateUser):
			data.Error = "That username is already taken."
		default:
			return response.Error(response.ErrServiceUnavailable.WithError(err))
		}

		return response.Template(tmpl, data)
	}
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeDisplayFormat)
}
