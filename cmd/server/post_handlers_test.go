package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"example.com/socialhub/internal/models"
)

func seedUser(t *testing.T, s *Server, id, username string) string {
	t.Helper()
	if _, err := s.store.CreateUser(t.Context(), models.User{ID: id, Username: username, Password: "pw"}); err != nil {
		t.Fatalf("seeding user failed: %v", err)
	}
	return makeTestJWT(id, username)
}

// text over 500 characters is rejected, with or without an image
func TestCreatePost_TextTooLong(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	long := strings.Repeat("a", 501)

	for _, body := range []map[string]any{
		{"text": long},
		{"text": long, "file": "data:image/png;base64,AAAA"},
	} {
		resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/post/create", body, token, http.StatusBadRequest)
		resp.Body.Close()
	}
}

func TestCreatePost_TextOnly(t *testing.T) {
	s, mockStore, mockImages, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	body := map[string]any{"text": "hello world"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/post/create", body, token, http.StatusCreated)
	defer resp.Body.Close()

	var res map[string]models.Post
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	created := res["newPost"]
	if created.Text != "hello world" || created.AuthorID != "u1" {
		t.Fatalf("unexpected post: %+v", created)
	}
	if created.Img != "" {
		t.Fatalf("text-only post has img %q", created.Img)
	}
	if len(mockImages.Uploads) != 0 {
		t.Fatalf("expected no uploads, got %d", len(mockImages.Uploads))
	}
	if _, ok := mockStore.Posts[created.ID]; !ok {
		t.Fatal("post not persisted")
	}
}

func TestCreatePost_WithImage(t *testing.T) {
	s, _, mockImages, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	body := map[string]any{"text": "with pic", "file": "data:image/png;base64,AAAA"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/post/create", body, token, http.StatusCreated)
	defer resp.Body.Close()

	var res map[string]models.Post
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if res["newPost"].Img == "" {
		t.Fatal("expected hosted image URL on post")
	}
	if len(mockImages.Uploads) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(mockImages.Uploads))
	}
}

func TestCreatePost_UploadFailure(t *testing.T) {
	s, mockStore, mockImages, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockImages.ShouldFail = true

	body := map[string]any{"text": "with pic", "file": "data:image/png;base64,AAAA"}
	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/post/create", body, token, http.StatusInternalServerError)
	resp.Body.Close()

	if len(mockStore.Posts) != 0 {
		t.Fatalf("post persisted despite failed upload")
	}
}

func TestCreatePost_Empty(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	resp := sendJSONRequest(t, http.MethodPost, ts.URL+"/api/v1/post/create", map[string]any{}, token, http.StatusBadRequest)
	resp.Body.Close()
}

// fetching a post includes its likes and replies
func TestGetPost(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	seedUser(t, s, "u1", "alice")
	post, _ := mockStore.CreatePost(t.Context(), models.Post{ID: "p1", AuthorID: "u1", Text: "hi"})
	mockStore.ToggleLike(t.Context(), "u1", post.ID)
	mockStore.CreateReply(t.Context(), models.Reply{ID: "r1", UserID: "u1", Username: "alice", Text: "nice", PostID: post.ID})

	resp := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/v1/post/"+post.ID, nil, "", http.StatusOK)
	defer resp.Body.Close()

	var res map[string]models.Post
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got := res["post"]
	if len(got.Likes) != 1 || len(got.Replies) != 1 {
		t.Fatalf("expected 1 like and 1 reply, got %d/%d", len(got.Likes), len(got.Replies))
	}
}

func TestGetPost_NotFound(t *testing.T) {
	_, _, _, ts := setupTestServer(t)
	defer ts.Close()

	resp := sendJSONRequest(t, http.MethodGet, ts.URL+"/api/v1/post/ghost", nil, "", http.StatusNotFound)
	resp.Body.Close()
}

// only the author may delete a post
func TestDeletePost_NotOwner(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	seedUser(t, s, "u1", "alice")
	bobToken := seedUser(t, s, "u2", "bob")
	mockStore.CreatePost(t.Context(), models.Post{ID: "p1", AuthorID: "u1", Text: "hi"})

	resp := sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/v1/post/p1", nil, bobToken, http.StatusUnauthorized)
	resp.Body.Close()

	if _, ok := mockStore.Posts["p1"]; !ok {
		t.Fatal("post was deleted by a non-owner")
	}
}

// owner delete removes the row and issues exactly one image destroy call
func TestDeletePost_OwnerWithImage(t *testing.T) {
	s, mockStore, mockImages, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockStore.CreatePost(t.Context(), models.Post{
		ID:       "p1",
		AuthorID: "u1",
		Text:     "hi",
		Img:      "https://res.example.com/image/upload/v1/abc123.png",
	})

	resp := sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/v1/post/p1", nil, token, http.StatusOK)
	resp.Body.Close()

	if _, ok := mockStore.Posts["p1"]; ok {
		t.Fatal("post row still present")
	}
	if len(mockImages.Destroyed) != 1 {
		t.Fatalf("expected 1 destroy call, got %d", len(mockImages.Destroyed))
	}
	if mockImages.Destroyed[0] != "abc123" {
		t.Fatalf("destroy public id = %q, want abc123", mockImages.Destroyed[0])
	}
}

// a failed image destroy never blocks the row deletion
func TestDeletePost_ImageDestroyFailure(t *testing.T) {
	s, mockStore, mockImages, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockImages.ShouldFail = true
	mockStore.CreatePost(t.Context(), models.Post{
		ID:       "p1",
		AuthorID: "u1",
		Img:      "https://res.example.com/image/upload/v1/abc123.png",
	})

	resp := sendJSONRequest(t, http.MethodDelete, ts.URL+"/api/v1/post/p1", nil, token, http.StatusOK)
	resp.Body.Close()

	if _, ok := mockStore.Posts["p1"]; ok {
		t.Fatal("post row still present after delete with failed image destroy")
	}
}

// alternating like calls cancel out: after 2N calls no like rows remain
func TestLikeToggle(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockStore.CreatePost(t.Context(), models.Post{ID: "p1", AuthorID: "u1", Text: "hi"})

	const n = 3
	for i := 0; i < 2*n; i++ {
		resp := sendJSONRequest(t, http.MethodPut, ts.URL+"/api/v1/post/like/p1", nil, token, http.StatusOK)
		resp.Body.Close()
	}

	if len(mockStore.Likes) != 0 {
		t.Fatalf("expected 0 like rows after %d alternating calls, got %d", 2*n, len(mockStore.Likes))
	}
}

func TestLike_MissingPost(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	resp := sendJSONRequest(t, http.MethodPut, ts.URL+"/api/v1/post/like/ghost", nil, token, http.StatusNotFound)
	resp.Body.Close()
}

// empty reply text is rejected before any row is created
func TestReply_EmptyText(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockStore.CreatePost(t.Context(), models.Post{ID: "p1", AuthorID: "u1", Text: "hi"})

	body := map[string]any{"userId": "u1", "username": "alice", "text": ""}
	resp := sendJSONRequest(t, http.MethodPut, ts.URL+"/api/v1/post/reply/p1", body, token, http.StatusBadRequest)
	resp.Body.Close()

	if len(mockStore.Replies["p1"]) != 0 {
		t.Fatalf("reply row created despite empty text")
	}
}

func TestReply_MissingPost(t *testing.T) {
	s, _, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")

	body := map[string]any{"userId": "u1", "username": "alice", "text": "hello"}
	resp := sendJSONRequest(t, http.MethodPut, ts.URL+"/api/v1/post/reply/ghost", body, token, http.StatusNotFound)
	resp.Body.Close()
}

// reply persists the denormalized author fields straight from the body
func TestReply_Create(t *testing.T) {
	s, mockStore, _, ts := setupTestServer(t)
	defer ts.Close()

	token := seedUser(t, s, "u1", "alice")
	mockStore.CreatePost(t.Context(), models.Post{ID: "p1", AuthorID: "u1", Text: "hi"})

	body := map[string]any{
		"userId":         "u9",
		"username":       "mallory",
		"userProfilePic": "https://res.example.com/m.png",
		"text":           "first!",
	}
	resp := sendJSONRequest(t, http.MethodPut, ts.URL+"/api/v1/post/reply/p1", body, token, http.StatusCreated)
	defer resp.Body.Close()

	var created models.Reply
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if created.UserID != "u9" || created.Username != "mallory" || created.PostID != "p1" {
		t.Fatalf("unexpected reply: %+v", created)
	}
	if len(mockStore.Replies["p1"]) != 1 {
		t.Fatalf("expected 1 reply row, got %d", len(mockStore.Replies["p1"]))
	}
}
