package debugapi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListTorrentFilesWithoutEngineReturns503(t *testing.T) {
	s := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/debug/torrents/files?uri=magnet:?xt=foo", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestListTorrentFilesWithoutURIOrEngineIsRejected(t *testing.T) {
	s := New(nil)

	req := httptest.NewRequest(http.MethodGet, "/debug/torrents/files", nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusServiceUnavailable && rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 503 or 400", rec.Code)
	}
}
