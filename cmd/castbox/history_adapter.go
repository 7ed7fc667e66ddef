package main

import (
	"net"
	"net/http"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/adntgv/castbox/internal/historydb"
	"github.com/adntgv/castbox/internal/httpserve"
)

// historyAdapter narrows *historydb.DB (which reports errors) down to
// supervisor.HistoryStore (which never does) — the supervisor logs and
// moves on rather than threading a resume-store failure through its
// event loop.
type historyAdapter struct {
	db *historydb.DB
}

func (h *historyAdapter) LoadPosition(key string) (float64, bool) {
	pos, ok, err := h.db.LoadPosition(historydb.ContentKey(key))
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("historydb: load position failed")
		return 0, false
	}
	return pos.Position, ok
}

func (h *historyAdapter) SavePosition(key string, position, duration float64) {
	title := filepath.Base(key)
	if err := h.db.SavePosition(historydb.ContentKey(key), title, position, duration); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("historydb: save position failed")
	}
}

// httpServeOn runs srv on an already-bound listener, blocking until it
// errors or the listener is closed.
func httpServeOn(ln net.Listener, srv *httpserve.Server) error {
	return http.Serve(ln, srv)
}
