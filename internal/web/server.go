// Package web serves the shopping list as a single HTML page with a form
// and one row per item. Every action posts back and redirects to the page.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/idilsaglam/shoplist/internal/liststore"
	"github.com/idilsaglam/shoplist/internal/model"
)

//go:embed templates/*
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

type renderer struct{ t *template.Template }

func (r renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.t.ExecuteTemplate(w, name, data)
}

// Server owns the echo instance. Handlers touching the store run one at a
// time, matching the store's single-writer contract.
type Server struct {
	mu    sync.Mutex
	store *liststore.Store
	log   *zap.Logger
	echo  *echo.Echo
}

func New(s *liststore.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	srv := &Server{
		store: s,
		log:   log,
		echo:  echo.New(),
	}
	e := srv.echo
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer{template.Must(template.ParseFS(templateFS, "templates/index.gohtml"))}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
			)
			return nil
		},
	}))
	e.Use(srv.serialize)

	e.GET("/", srv.index)
	e.POST("/items", srv.addItem)
	e.POST("/items/toggle", srv.toggleItem)
	e.POST("/items/remove", srv.removeItem)
	e.POST("/clear", srv.clearList)
	e.GET("/api/items", srv.listItems)
	return srv
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.echo }

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() { errCh <- s.echo.Start(addr) }()
	s.log.Info("serving shopping list", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.echo.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) serialize(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		defer s.mu.Unlock()
		return next(c)
	}
}

type formValues struct {
	Name, Quantity, ImageURL string
}

type pageData struct {
	Items   []model.Item
	Bought  int
	Pending int
	Error   string
	Form    formValues
}

func (s *Server) render(c echo.Context, status int, errMsg string, form formValues) error {
	b, p := s.store.Stats()
	return c.Render(status, "index.gohtml", pageData{
		Items:   s.store.Items(),
		Bought:  b,
		Pending: p,
		Error:   errMsg,
		Form:    form,
	})
}

func (s *Server) index(c echo.Context) error {
	return s.render(c, http.StatusOK, "", formValues{})
}

func (s *Server) addItem(c echo.Context) error {
	form := formValues{
		Name:     c.FormValue("item"),
		Quantity: c.FormValue("quantity"),
		ImageURL: c.FormValue("image-url"),
	}
	err := s.store.AddInput(form.Name, form.Quantity, form.ImageURL)
	if errors.Is(err, liststore.ErrEmptyName) || errors.Is(err, liststore.ErrInvalidQuantity) {
		s.log.Debug("add rejected", zap.Error(err))
		return s.render(c, http.StatusUnprocessableEntity, err.Error(), form)
	}
	if err != nil {
		return s.saveFailed(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) toggleItem(c echo.Context) error {
	if err := s.store.ToggleBought(c.FormValue("name")); err != nil {
		return s.saveFailed(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) removeItem(c echo.Context) error {
	if err := s.store.Remove(c.FormValue("name")); err != nil {
		return s.saveFailed(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) clearList(c echo.Context) error {
	if err := s.store.Clear(); err != nil {
		return s.saveFailed(err)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) listItems(c echo.Context) error {
	b, err := s.store.Snapshot()
	if err != nil {
		return err
	}
	return c.JSONBlob(http.StatusOK, b)
}

func (s *Server) saveFailed(err error) error {
	s.log.Error("action failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "could not save the list")
}
