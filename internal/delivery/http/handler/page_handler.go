package handler

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"hospitron/internal/converter"
	"hospitron/internal/delivery/dto"
	"hospitron/internal/delivery/http/middleware"
	"hospitron/internal/domain/entity"
	"hospitron/internal/presenter"
	"hospitron/internal/usecase"
	"hospitron/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	defaultRenderWait = 3 * time.Second
	refreshSeconds    = 1
	skeletonRows      = 3
)

var pageNames = []string{"login", "dashboard", "appointments", "appointment_detail"}

// pageData is the model shared by every page template.
type pageData struct {
	Title       string
	User        *dto.UserResponse
	AutoRefresh int

	Error     string
	Email     string
	LoginHint string

	Dashboard *dto.DashboardResponse
	List      *usecase.ListViewModel
	Skeleton  []struct{}
	Card      *presenter.AppointmentCard
	BackURL   string
}

// PageHandler renders the server-side dashboard.
type PageHandler struct {
	log              *logrus.Logger
	authUsecase      usecase.AuthUsecase
	dashboardUsecase usecase.DashboardUsecase
	listUsecase      usecase.AppointmentListUsecase
	authMiddleware   *middleware.AuthMiddleware
	validator        *validator.CustomValidator
	loginHint        string
	renderWait       time.Duration
	pages            map[string]*template.Template
}

func NewPageHandler(
	log *logrus.Logger,
	authUsecase usecase.AuthUsecase,
	dashboardUsecase usecase.DashboardUsecase,
	listUsecase usecase.AppointmentListUsecase,
	authMiddleware *middleware.AuthMiddleware,
	validator *validator.CustomValidator,
	loginHint string,
) (*PageHandler, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &PageHandler{
		log:              log,
		authUsecase:      authUsecase,
		dashboardUsecase: dashboardUsecase,
		listUsecase:      listUsecase,
		authMiddleware:   authMiddleware,
		validator:        validator,
		loginHint:        loginHint,
		renderWait:       defaultRenderWait,
		pages:            pages,
	}, nil
}

// LoginPage sends signed-in visitors straight to the dashboard.
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(h.authMiddleware.CookieName()); err == nil && cookie.Value != "" {
		if _, err := h.authUsecase.Authenticate(r.Context(), cookie.Value); err == nil {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}
	}

	h.render(w, http.StatusOK, "login", &pageData{Title: "Sign In", LoginHint: h.loginHint})
}

func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, "login", &pageData{Title: "Sign In", Error: "Invalid form submission", LoginHint: h.loginHint})
		return
	}

	req := dto.LoginRequest{
		Email:    r.PostForm.Get("email"),
		Password: r.PostForm.Get("password"),
	}
	data := &pageData{Title: "Sign In", Email: req.Email, LoginHint: h.loginHint}

	if err := h.validator.Validate(&req); err != nil {
		data.Error = "Please enter a valid email and password"
		h.render(w, http.StatusBadRequest, "login", data)
		return
	}

	login, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			data.Error = "Invalid email or password"
			h.render(w, http.StatusUnauthorized, "login", data)
			return
		}
		data.Error = "Login failed. Please try again."
		h.render(w, http.StatusInternalServerError, "login", data)
		return
	}

	h.authMiddleware.SetCookie(w, login.Token, login.ExpiresAt)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session, ok := middleware.GetSessionFromContext(r.Context()); ok {
		if err := h.authUsecase.Logout(r.Context(), session.ID, session.User.ID); err != nil {
			h.log.Warnf("Failed to logout: %+v", err)
		}
	}

	h.authMiddleware.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PageHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.render(w, http.StatusOK, "dashboard", &pageData{
		Title:     "Dashboard",
		User:      converter.UserToResponse(&session.User),
		Dashboard: h.dashboardUsecase.Overview(r.Context(), session.User),
	})
}

// Appointments applies the query to the session's list view, waits briefly
// for the fetch and renders whatever state the view is in. A view still
// loading renders the skeleton and refreshes itself.
func (h *PageHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := h.listUsecase.View(session.ID, session.User.ID)
	q := r.URL.Query()
	view.Apply(r.Context(), usecase.ListQuery{
		DoctorID: q.Get("doctor_id"),
		Date:     q.Get("date"),
		Status:   q.Get("status"),
		Search:   q.Get("q"),
	})

	h.renderList(w, r, session.User, view)
}

func (h *PageHandler) RetryAppointments(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := h.listUsecase.View(session.ID, session.User.ID)
	view.Retry(r.Context())

	vm := view.Render()
	http.Redirect(w, r, listURL(vm), http.StatusSeeOther)
}

func (h *PageHandler) AppointmentDetail(w http.ResponseWriter, r *http.Request) {
	session, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	view := h.listUsecase.View(session.ID, session.User.ID)
	// A direct link may arrive before the first fetch.
	current := view.Render()
	view.Apply(r.Context(), usecase.ListQuery{Search: current.Search})
	h.wait(r.Context(), view)

	data := &pageData{
		Title:   "Appointment",
		User:    converter.UserToResponse(&session.User),
		BackURL: listURL(current),
	}
	status := http.StatusOK
	if _, found := view.Select(mux.Vars(r)["id"]); found {
		data.Card = view.Render().Selected
	} else {
		status = http.StatusNotFound
	}

	h.render(w, status, "appointment_detail", data)
}

func (h *PageHandler) renderList(w http.ResponseWriter, r *http.Request, user entity.User, view *usecase.AppointmentListView) {
	h.wait(r.Context(), view)

	vm := view.Render()
	data := &pageData{
		Title: "Appointments",
		User:  converter.UserToResponse(&user),
		List:  &vm,
	}
	if vm.Phase == usecase.ListLoading {
		data.AutoRefresh = refreshSeconds
		data.Skeleton = make([]struct{}, skeletonRows)
	}

	h.render(w, http.StatusOK, "appointments", data)
}

func (h *PageHandler) wait(ctx context.Context, view *usecase.AppointmentListView) {
	waitCtx, cancel := context.WithTimeout(ctx, h.renderWait)
	defer cancel()
	view.Wait(waitCtx)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data *pageData) {
	var buf bytes.Buffer
	if err := h.pages[name].ExecuteTemplate(&buf, "layout", data); err != nil {
		h.log.Errorf("Failed to render %s page: %+v", name, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// listURL rebuilds the list address for the view's current filter.
func listURL(vm usecase.ListViewModel) string {
	values := url.Values{}
	values.Set("doctor_id", vm.DoctorID)
	values.Set("date", vm.Date)
	values.Set("status", vm.Status)
	if vm.Search != "" {
		values.Set("q", vm.Search)
	}
	return "/appointments?" + values.Encode()
}
