package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

func trackRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewTrackHandler(db)
	r.GET("/tracks", h.GetTracks)
	r.GET("/tracks/:id", h.GetTrack)
	r.PUT("/tracks/:id", h.UpdateTrack)
	r.DELETE("/tracks/:id", h.DeleteTrack)
	r.POST("/tracks/:id/play", h.RecordPlay)
	return r
}

func seedTracks(t *testing.T, db *gorm.DB) []models.Track {
	t.Helper()
	tracks := []models.Track{
		{Title: "Cruel Summer", Artist: "Taylor Swift", Album: "Lover", Duration: 178, PlayCount: 40, FilePath: "/music/cruel.mp3"},
		{Title: "Anti-Hero", Artist: "Taylor Swift", Album: "Midnights", Duration: 200, PlayCount: 55, FilePath: "/music/antihero.mp3"},
		{Title: "Flowers", Artist: "Miley Cyrus", Album: "Endless Summer Vacation", Duration: 193, PlayCount: 12, FilePath: "/music/flowers.mp3"},
	}
	if err := db.Create(&tracks).Error; err != nil {
		t.Fatalf("seed tracks: %v", err)
	}
	return tracks
}

type trackListResp struct {
	Data []LibraryTrack `json:"data"`
	Meta struct {
		Total  int64 `json:"total"`
		Limit  int   `json:"limit"`
		Offset int   `json:"offset"`
	} `json:"meta"`
}

func TestGetTracks_Search(t *testing.T) {
	db := setupTestDB(t)
	seedTracks(t, db)
	r := trackRouter(db)

	// Case-insensitive match against the artist column
	w := doJSON(r, "GET", "/tracks?search=taylor", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp trackListResp
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Meta.Total != 2 || len(resp.Data) != 2 {
		t.Fatalf("taylor search: total=%d len=%d, want 2/2", resp.Meta.Total, len(resp.Data))
	}
	for _, tr := range resp.Data {
		if tr.Artist != "Taylor Swift" {
			t.Errorf("unexpected artist %q in search results", tr.Artist)
		}
	}

	// Title matches count too
	w = doJSON(r, "GET", "/tracks?search=FLOWERS", "")
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Meta.Total != 1 {
		t.Errorf("FLOWERS search total = %d, want 1", resp.Meta.Total)
	}
}

func TestGetTracks_SortAndPaging(t *testing.T) {
	db := setupTestDB(t)
	seedTracks(t, db)
	r := trackRouter(db)

	// Most played first
	w := doJSON(r, "GET", "/tracks?sort=plays", "")
	var resp trackListResp
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 3 {
		t.Fatalf("got %d tracks, want 3", len(resp.Data))
	}
	if resp.Data[0].Title != "Anti-Hero" {
		t.Errorf("top played = %q, want Anti-Hero", resp.Data[0].Title)
	}

	// Alphabetical
	w = doJSON(r, "GET", "/tracks?sort=alphabetical", "")
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Data[0].Title != "Anti-Hero" || resp.Data[2].Title != "Flowers" {
		t.Errorf("alphabetical order wrong: %q ... %q", resp.Data[0].Title, resp.Data[2].Title)
	}

	// Paging keeps the full count in meta
	w = doJSON(r, "GET", "/tracks?limit=2&offset=2", "")
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data) != 1 || resp.Meta.Total != 3 {
		t.Errorf("page 2: len=%d total=%d, want 1/3", len(resp.Data), resp.Meta.Total)
	}
}

func TestRecordPlay(t *testing.T) {
	db := setupTestDB(t)
	tracks := seedTracks(t, db)
	r := trackRouter(db)

	id := tracks[2].ID // Flowers, 12 plays

	for i := 0; i < 2; i++ {
		w := doJSON(r, "POST", "/tracks/"+itoa(id)+"/play", "")
		if w.Code != http.StatusOK {
			t.Fatalf("play %d status = %d, want 200 (body %s)", i+1, w.Code, w.Body.String())
		}
	}

	var track models.Track
	db.First(&track, id)
	if track.PlayCount != 14 {
		t.Errorf("PlayCount = %d, want 14", track.PlayCount)
	}
	if track.LastPlayed == nil {
		t.Error("LastPlayed should be set after a play")
	}

	// Each play appends one history row; these feed Recently Played
	var history int64
	db.Model(&models.PlayHistory{}).Where("track_id = ?", id).Count(&history)
	if history != 2 {
		t.Errorf("play_histories rows = %d, want 2", history)
	}

	// Unknown track
	w := doJSON(r, "POST", "/tracks/99999/play", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown track play status = %d, want 404", w.Code)
	}
}

func TestUpdateTrack_ProtectedFields(t *testing.T) {
	db := setupTestDB(t)
	tracks := seedTracks(t, db)
	r := trackRouter(db)

	id := tracks[0].ID
	w := doJSON(r, "PUT", "/tracks/"+itoa(id), `{"title": "Cruel Summer (Live)", "play_count": 9999, "file_path": "/evil"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	var track models.Track
	db.First(&track, id)
	if track.Title != "Cruel Summer (Live)" {
		t.Errorf("Title = %q, want updated value", track.Title)
	}
	if track.PlayCount != 40 || track.FilePath != "/music/cruel.mp3" {
		t.Errorf("read-only fields changed: plays=%d path=%q", track.PlayCount, track.FilePath)
	}

	w = doJSON(r, "PUT", "/tracks/99999", `{"title": "x"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing track update status = %d, want 404", w.Code)
	}
}

func TestDeleteTrack(t *testing.T) {
	db := setupTestDB(t)
	tracks := seedTracks(t, db)
	r := trackRouter(db)

	// Give the track a playlist membership that must be cleaned up
	playlist := models.Playlist{Name: "Summer"}
	db.Create(&playlist)
	db.Create(&models.PlaylistTrack{PlaylistID: playlist.ID, TrackID: tracks[0].ID, SortOrder: 0})

	w := doJSON(r, "DELETE", "/tracks/"+itoa(tracks[0].ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200", w.Code)
	}

	var links int64
	db.Model(&models.PlaylistTrack{}).Where("track_id = ?", tracks[0].ID).Count(&links)
	if links != 0 {
		t.Errorf("playlist links remaining = %d, want 0", links)
	}

	// Soft-deleted rows are invisible and a second delete is a 404
	w = doJSON(r, "GET", "/tracks/"+itoa(tracks[0].ID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", w.Code)
	}
	w = doJSON(r, "DELETE", "/tracks/"+itoa(tracks[0].ID), "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
