package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/nativedeps/pkg/buildinfo"
	nderrors "github.com/matzehuels/nativedeps/pkg/errors"
	"github.com/matzehuels/nativedeps/pkg/graph"
	"github.com/matzehuels/nativedeps/pkg/resolve"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr string
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve [manifest]",
		Short: "Serve resolutions over a read-only HTTP API",
		Long: `Resolve a manifest once and serve the results as JSON.

Endpoints:
  GET /healthz                         liveness
  GET /version                         build information
  GET /binaries                        binary summaries
  GET /binaries/{name}                 full resolution
  GET /binaries/{name}/configurations  coordinates per host configuration
  GET /graph.dot                       binary/library graph (DOT)
  GET /graph.json                      binary/library graph (JSON)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, out, err := c.loadResolutions(manifestPath(args), "")
			if err != nil {
				return err
			}
			return c.runServe(cmd.Context(), opts.addr, newServer(out, c.Logger))
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		c.Logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// HTTP Handlers
// =============================================================================

// binarySummary is the list entry for GET /binaries.
type binarySummary struct {
	Name          string `json:"name"`
	Platform      string `json:"platform"`
	BuildType     string `json:"buildType"`
	Test          bool   `json:"test"`
	Local         int    `json:"local"`
	Libraries     int    `json:"libraries"`
	Registrations int    `json:"registrations"`
}

type server struct {
	order  []string
	byName map[string]*resolve.Resolution
	graph  *graph.Graph
}

// newServer builds the router over a fixed set of resolutions.
func newServer(out []*resolve.Resolution, logger *log.Logger) http.Handler {
	s := &server{byName: make(map[string]*resolve.Resolution, len(out))}
	for _, res := range out {
		s.order = append(s.order, res.Binary.Name)
		s.byName[res.Binary.Name] = res
	}
	if g, err := graph.Build(out); err == nil {
		s.graph = g
	} else {
		logger.Warn("graph unavailable", "err", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		writeJSONResponse(w, http.StatusOK, buildinfo.Current())
	})
	r.Get("/graph.dot", s.handleGraphDOT)
	r.Get("/graph.json", s.handleGraphJSON)
	r.Route("/binaries", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleBinary)
			r.Get("/configurations", s.handleConfigurations)
		})
	})
	return r
}

// requestLogger attaches logger to each request context and logs the
// request at debug level.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), logger)))
			logger.Debug("request", "method", r.Method, "path", r.URL.Path,
				"status", ww.Status(), "id", middleware.GetReqID(r.Context()),
				"duration", time.Since(start).Round(time.Microsecond))
		})
	}
}

func (s *server) handleList(w http.ResponseWriter, _ *http.Request) {
	out := make([]binarySummary, 0, len(s.order))
	for _, name := range s.order {
		res := s.byName[name]
		out = append(out, binarySummary{
			Name:          name,
			Platform:      res.Binary.Platform,
			BuildType:     res.Binary.BuildType,
			Test:          res.Test,
			Local:         len(res.Local),
			Libraries:     len(res.Libraries),
			Registrations: len(res.Registrations),
		})
	}
	writeJSONResponse(w, http.StatusOK, out)
}

func (s *server) lookup(w http.ResponseWriter, r *http.Request) (*resolve.Resolution, bool) {
	name := chi.URLParam(r, "name")
	res, ok := s.byName[name]
	if !ok {
		loggerFromContext(r.Context()).Debug("unknown binary", "name", name)
		writeError(w, nderrors.New(nderrors.ErrCodeNotFound, "binary %q not found", name))
	}
	return res, ok
}

func (s *server) handleBinary(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.lookup(w, r); ok {
		writeJSONResponse(w, http.StatusOK, res)
	}
}

func (s *server) handleConfigurations(w http.ResponseWriter, r *http.Request) {
	if res, ok := s.lookup(w, r); ok {
		writeJSONResponse(w, http.StatusOK, res.ByConfiguration())
	}
}

func (s *server) handleGraphDOT(w http.ResponseWriter, _ *http.Request) {
	if s.graph == nil {
		writeError(w, nderrors.New(nderrors.ErrCodeNotFound, "graph not available"))
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz")
	_, _ = w.Write([]byte(graph.ToDOT(s.graph, graph.Options{})))
}

func (s *server) handleGraphJSON(w http.ResponseWriter, _ *http.Request) {
	if s.graph == nil {
		writeError(w, nderrors.New(nderrors.ErrCodeNotFound, "graph not available"))
		return
	}
	writeJSONResponse(w, http.StatusOK, graph.Export(s.graph))
}

func writeJSONResponse(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps coded errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch nderrors.GetCode(err) {
	case nderrors.ErrCodeNotFound, nderrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case nderrors.ErrCodeInternal, "":
	default:
		status = http.StatusBadRequest
	}
	writeJSONResponse(w, status, map[string]string{
		"code":  string(nderrors.GetCode(err)),
		"error": nderrors.UserMessage(err),
	})
}
