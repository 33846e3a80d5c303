// Package server exposes the generation facade as a small JSON API
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/talecraft/internal/generation"
	"github.com/yourusername/talecraft/internal/modes"
)

// Generator is the part of the facade the server needs
type Generator interface {
	Generate(ctx context.Context, req generation.Request) generation.Result
}

// GenerateReq is the body of POST /api/generate
type GenerateReq struct {
	Mode   string            `json:"mode"`
	Fields map[string]string `json:"fields"`
}

type fieldView struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Placeholder string   `json:"placeholder,omitempty"`
	Required    bool     `json:"required"`
	Multiline   bool     `json:"multiline,omitempty"`
	Choices     []string `json:"choices,omitempty"`
}

type modeView struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Action      string      `json:"action"`
	Fields      []fieldView `json:"fields"`
}

// NewRouter builds the gin engine
func NewRouter(gen Generator, log *slog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/modes", func(c *gin.Context) {
		specs := modes.All()
		out := make([]modeView, 0, len(specs))
		for _, s := range specs {
			out = append(out, toModeView(s))
		}
		c.JSON(http.StatusOK, out)
	})

	r.POST("/api/generate", func(c *gin.Context) {
		var req GenerateReq
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		mode, err := modes.Parse(req.Mode)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "modes": modes.Names()})
			return
		}

		res := gen.Generate(c.Request.Context(), generation.Request{Mode: mode, Fields: req.Fields})
		switch res.Kind {
		case 0:
			c.JSON(http.StatusOK, gin.H{"mode": mode, "text": res.Text})
		case generation.InvalidInput:
			c.JSON(http.StatusUnprocessableEntity, gin.H{"kind": res.Kind.String(), "message": res.Message})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"kind": res.Kind.String(), "message": res.Message})
		}
	})

	return r
}

func toModeView(s modes.Spec) modeView {
	fields := make([]fieldView, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, fieldView{
			Name:        f.Name,
			Label:       f.Label,
			Placeholder: f.Placeholder,
			Required:    f.Required,
			Multiline:   f.Multiline,
			Choices:     f.Choices,
		})
	}
	return modeView{
		ID:          string(s.Mode),
		Title:       s.Title,
		Description: s.Description,
		Action:      s.Action,
		Fields:      fields,
	}
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// Run serves the router on addr until ctx is cancelled
func Run(ctx context.Context, addr string, gen Generator, log *slog.Logger) error {
	gin.SetMode(gin.ReleaseMode)
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(gen, log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
