package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/desertthunder/festa/internal/models"
	"github.com/desertthunder/festa/internal/panels"
	"github.com/desertthunder/festa/internal/shared"
)

//go:embed templates/*.html
var templates embed.FS

const serviceName = "festa-web"

// Server renders the dashboard and maps form posts onto panel operations.
type Server struct {
	dash   *panels.Dashboard
	logger *slog.Logger
	engine *gin.Engine

	mu      sync.Mutex
	mounted bool
	notice  string // rejected operations that raised no panel alert
}

// page is the data handed to index.html.
type page struct {
	Parties     panels.PartyState
	Attendees   panels.AttendeeState
	Alert       string
	PartyName   string
	DraftTitle  string
	GeneratedAt time.Time
}

// NewServer builds the gin engine over dash. A nil logger discards output.
func NewServer(dash *panels.Dashboard, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{dash: dash, logger: slog.New(logger).WithGroup("http")}

	tmpl := template.Must(template.New("").Funcs(template.FuncMap{
		"date":  formatDate,
		"yesno": shared.YesNo,
	}).ParseFS(templates, "templates/*.html"))

	mux := gin.New()
	mux.SetHTMLTemplate(tmpl)
	mux.Use(
		sloggin.NewWithConfig(s.logger, sloggin.Config{
			DefaultLevel:     slog.LevelInfo,
			ClientErrorLevel: slog.LevelWarn,
			ServerErrorLevel: slog.LevelError,
		}),
		gin.Recovery(),
		otelgin.Middleware(serviceName),
		slogAddTraceAttributes,
	)

	mux.GET("/", s.index)
	mux.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	mux.POST("/refresh", s.refresh)
	mux.POST("/parties", s.createParty)
	mux.POST("/parties/:id/select", s.selectParty)
	mux.POST("/parties/:id/edit", s.beginEdit)
	mux.POST("/parties/:id/delete", s.deleteParty)
	mux.POST("/party-edit", s.commitEdit)
	mux.POST("/party-edit/cancel", s.cancelEdit)
	mux.POST("/selection/clear", s.clearSelection)

	mux.POST("/attendees/new", s.openCreate)
	mux.POST("/attendees/:id/edit", s.openEdit)
	mux.POST("/attendees/:id/delete", s.deleteAttendee)
	mux.POST("/draft", s.saveDraft)
	mux.POST("/draft/cancel", s.closeDraft)

	mux.POST("/alert/dismiss", s.dismissAlert)

	s.engine = mux
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}

func slogAddTraceAttributes(c *gin.Context) {
	sc := trace.SpanFromContext(c.Request.Context()).SpanContext()
	sloggin.AddCustomAttributes(c, slog.String("trace-id", sc.TraceID().String()))
	sloggin.AddCustomAttributes(c, slog.String("span-id", sc.SpanID().String()))
	c.Next()
}

// perform runs a panel operation in a span and redirects back to the dashboard.
// Service failures are recorded as panel alerts; any other rejection becomes the page notice.
func (s *Server) perform(c *gin.Context, name string, fn func(ctx context.Context) error) {
	ctx, span := tracer.Start(c.Request.Context(), name)
	defer span.End()

	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.WarnContext(ctx, "panel operation failed", "op", name, "error", err)

		var opErr *panels.OpError
		if !errors.As(err, &opErr) {
			s.mu.Lock()
			s.notice = err.Error()
			s.mu.Unlock()
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// mount loads the party list the first time the dashboard is rendered.
// Later renders reuse the panel state; mutations and POST /refresh re-fetch it.
func (s *Server) mount(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mounted {
		return
	}
	if err := s.dash.Mount(ctx); err != nil {
		s.logger.WarnContext(ctx, "failed to load parties", "error", err)
		return
	}
	s.mounted = true
}

func paramID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "invalid id %q", c.Param("id"))
		return 0, false
	}
	return id, true
}

func (s *Server) index(c *gin.Context) {
	s.mount(c.Request.Context())

	p := page{
		Parties:     s.dash.Parties.State(),
		Attendees:   s.dash.Attendees.State(),
		Alert:       s.dash.Alert(),
		GeneratedAt: time.Now(),
	}
	if p.Alert == "" {
		s.mu.Lock()
		p.Alert = s.notice
		s.mu.Unlock()
	}
	if p.Attendees.Visible {
		if party, ok := s.dash.Parties.Party(p.Attendees.PartyID); ok {
			p.PartyName = party.Name
		}
	}
	if d := p.Attendees.Draft; d != nil {
		p.DraftTitle = "Edit attendee"
		if d.IsNew() {
			p.DraftTitle = "New attendee"
		}
	}

	c.HTML(http.StatusOK, "index.html", p)
}

// refresh re-fetches the party list and, when a party is selected, its attendees.
func (s *Server) refresh(c *gin.Context) {
	s.perform(c, "web.refresh", func(ctx context.Context) error {
		err := s.dash.Mount(ctx)
		if err == nil {
			s.mu.Lock()
			s.mounted = true
			s.mu.Unlock()
		}
		if s.dash.Attendees.State().Visible {
			err = errors.Join(err, s.dash.Attendees.Refresh(ctx))
		}
		return err
	})
}

func (s *Server) createParty(c *gin.Context) {
	s.dash.Parties.SetNewName(c.PostForm("name"))
	s.perform(c, "web.createParty", s.dash.CreateParty)
}

func (s *Server) selectParty(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.perform(c, "web.selectParty", func(ctx context.Context) error {
		return s.dash.Select(ctx, id)
	})
}

func (s *Server) beginEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.perform(c, "web.beginEdit", func(context.Context) error {
		return s.dash.Parties.BeginEdit(id)
	})
}

func (s *Server) commitEdit(c *gin.Context) {
	s.dash.Parties.SetEditName(c.PostForm("name"))
	s.perform(c, "web.commitEdit", s.dash.Parties.CommitEdit)
}

func (s *Server) cancelEdit(c *gin.Context) {
	s.dash.Parties.CancelEdit()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) deleteParty(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.perform(c, "web.deleteParty", func(ctx context.Context) error {
		return s.dash.DeleteParty(ctx, id)
	})
}

func (s *Server) clearSelection(c *gin.Context) {
	s.dash.ClearSelection()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) openCreate(c *gin.Context) {
	s.perform(c, "web.openCreate", func(context.Context) error {
		return s.dash.Attendees.OpenCreate()
	})
}

func (s *Server) openEdit(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	a, found := s.dash.Attendees.Attendee(id)
	if !found {
		c.String(http.StatusNotFound, "attendee %d is not loaded", id)
		return
	}
	s.perform(c, "web.openEdit", func(context.Context) error {
		return s.dash.Attendees.OpenEdit(a)
	})
}

func (s *Server) deleteAttendee(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	s.perform(c, "web.deleteAttendee", func(ctx context.Context) error {
		return s.dash.Attendees.Delete(ctx, id)
	})
}

// saveDraft copies the modal form into the draft, then saves it.
// Unchecked boxes are absent from the form, so every toggle is taken from the post.
func (s *Server) saveDraft(c *gin.Context) {
	s.perform(c, "web.saveDraft", func(ctx context.Context) error {
		if err := s.dash.Attendees.UpdateDraft(func(f *models.AttendeeFields) {
			f.Name = c.PostForm("name")
			f.FullName = c.PostForm("fullName")
			f.PhotoURL = strings.TrimSpace(c.PostForm("photoUrl"))
			f.Age = models.ParseAge(c.PostForm("age"))
			f.Host = c.PostForm("host") != ""
			f.Present = c.PostForm("present") != ""
			f.Invited = c.PostForm("invited") != ""
		}); err != nil {
			return err
		}
		return s.dash.Attendees.Save(ctx)
	})
}

func (s *Server) closeDraft(c *gin.Context) {
	s.dash.Attendees.Close()
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) dismissAlert(c *gin.Context) {
	s.dash.DismissAlert()
	s.mu.Lock()
	s.notice = ""
	s.mu.Unlock()
	c.Redirect(http.StatusSeeOther, "/")
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "no date"
	}
	return t.Local().Format("2006-01-02 15:04")
}
