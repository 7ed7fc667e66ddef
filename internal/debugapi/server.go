// Package debugapi exposes a small read-only HTTP surface for inspecting
// discovery results and torrent file listings while a cast session runs,
// bound only when --debug-api is passed. Grounded on the teacher's
// internal/api/router.go (gin.New + cors.New wiring) and torrents.go
// (handler shape), narrowed from the teacher's full movies/tv/history/
// stream REST surface down to the two operations castbox's own domain
// still has a use for.
package debugapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/adntgv/castbox/internal/discovery"
	"github.com/adntgv/castbox/internal/torrentstream"
)

const discoveryTimeout = 5 * time.Second

// Server is the debug HTTP API. It holds no mutable session state of its
// own; every request is served on demand against the torrent engine and
// mDNS resolver it was built with.
type Server struct {
	router   *gin.Engine
	torrentC *torrentstream.Client
}

// New builds a debug API server. torrentC may be nil if the running cast
// session has no torrent-backed entry queued; /torrents/files then
// answers 503.
func New(torrentC *torrentstream.Client) *Server {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
	}))

	s := &Server{router: r, torrentC: torrentC}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/debug")
	{
		api.GET("/devices", s.listDevices)
		api.GET("/torrents/files", s.listTorrentFiles)
	}
}

// Run starts the server listening on addr (e.g. "127.0.0.1:9090"),
// blocking until the context is cancelled or ListenAndServe fails.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// listDevices handles GET /debug/devices, browsing mDNS for
// discoveryTimeout and reporting every Cast device found.
func (s *Server) listDevices(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), discoveryTimeout)
	defer cancel()

	devices, err := discovery.Discover(ctx, discoveryTimeout)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"devices": devices})
}

// listTorrentFiles handles GET /debug/torrents/files?uri=<magnet-or-path>,
// listing the files inside a torrent without selecting or downloading any
// of them, so a caller can pick a FileIndexOverride ahead of `cast`.
func (s *Server) listTorrentFiles(c *gin.Context) {
	if s.torrentC == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "torrent engine not running"})
		return
	}

	uri := c.Query("uri")
	if uri == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'uri' is required"})
		return
	}

	files, err := torrentstream.ListFiles(c.Request.Context(), s.torrentC, uri)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}
