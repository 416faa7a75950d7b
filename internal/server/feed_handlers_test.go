package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"plume/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedServerPosts(t *testing.T, db *gorm.DB, authorID uint, n int) {
	t.Helper()
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		post := &models.Post{Text: fmt.Sprintf("post %d", i), AuthorID: authorID, PubDate: base.Add(time.Duration(i) * time.Minute)}
		require.NoError(t, db.Create(post).Error)
	}
}

func TestGetHomeFeed_Pagination(t *testing.T) {
	s, db := setupTestServer(t)
	app := testApp(s)

	author := seedServerUser(t, db, "writer", false)
	seedServerPosts(t, db, author.ID, 13)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/feed", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["posts"], 10)
	assert.EqualValues(t, 1, payload["number"])
	assert.EqualValues(t, 13, payload["total_items"])
	assert.EqualValues(t, 2, payload["total_pages"])
	assert.Equal(t, true, payload["has_next"])

	resp, payload = doJSON(t, app, http.MethodGet, "/api/feed?page=2", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["posts"], 3)
	assert.Equal(t, false, payload["has_next"])
}

func TestGetHomeFeed_ClampsAndDefaults(t *testing.T) {
	s, db := setupTestServer(t)
	app := testApp(s)

	author := seedServerUser(t, db, "writer", false)
	seedServerPosts(t, db, author.ID, 13)

	// Page far past the end lands on the last page.
	resp, payload := doJSON(t, app, http.MethodGet, "/api/feed?page=99", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, payload["number"])
	assert.Len(t, payload["posts"], 3)

	// Garbage page parameter means page one.
	resp, payload = doJSON(t, app, http.MethodGet, "/api/feed?page=banana", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, payload["number"])
}

func TestGetGroupFeed(t *testing.T) {
	s, db := setupTestServer(t)
	app := testApp(s)

	author := seedServerUser(t, db, "writer", false)
	group := &models.Group{Title: "Letters", Slug: "letters"}
	require.NoError(t, db.Create(group).Error)

	post := &models.Post{Text: "in group", AuthorID: author.ID, GroupID: &group.ID, PubDate: time.Now()}
	require.NoError(t, db.Create(post).Error)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/groups/letters/posts", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["posts"], 1)
	group2, ok := payload["group"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "letters", group2["slug"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/groups/missing/posts", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetProfileFeed(t *testing.T) {
	s, db := setupTestServer(t)
	app := testApp(s)

	author := seedServerUser(t, db, "writer", false)
	viewer := seedServerUser(t, db, "viewer", false)
	seedServerPosts(t, db, author.ID, 3)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/users/writer/posts", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 3, payload["post_count"])
	assert.Equal(t, false, payload["following"])

	require.NoError(t, db.Create(&models.Follow{UserID: viewer.ID, AuthorID: author.ID}).Error)

	// The viewer's token switches the following flag.
	resp, payload = doJSON(t, app, http.MethodGet, "/api/users/writer/posts", nil, authToken(t, viewer.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["following"])

	resp, _ = doJSON(t, app, http.MethodGet, "/api/users/ghost/posts", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetFollowingFeed(t *testing.T) {
	s, db := setupTestServer(t)
	app := testApp(s)

	viewer := seedServerUser(t, db, "viewer", false)
	followed := seedServerUser(t, db, "followed", false)
	stranger := seedServerUser(t, db, "stranger", false)
	seedServerPosts(t, db, followed.ID, 2)
	seedServerPosts(t, db, stranger.ID, 2)
	require.NoError(t, db.Create(&models.Follow{UserID: viewer.ID, AuthorID: followed.ID}).Error)

	resp, payload := doJSON(t, app, http.MethodGet, "/api/feed/following", nil, authToken(t, viewer.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, payload["posts"], 2)
	assert.EqualValues(t, 2, payload["total_items"])
}
