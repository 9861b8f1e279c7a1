package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/socialhub/internal/imagehost"
	"example.com/socialhub/internal/middleware"
	"example.com/socialhub/internal/models"
	"example.com/socialhub/internal/store"
	"github.com/google/uuid"
)

const maxPostTextLength = 500

// createPostHandler persists a post, uploading the attached image first when
// one is supplied. A post needs text or an image; both fields are optional
// individually.
func (s *Server) createPostHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Text string `json:"text"`
		File string `json:"file"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/posts", "Invalid request body", err)
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if len(body.Text) > maxPostTextLength {
		logg.Info("http/posts", "Post text too long for user_id="+userID)
		writeMsg(w, http.StatusBadRequest, "Text must be less than 500 characters")
		return
	}

	if body.Text == "" && body.File == "" {
		writeMsg(w, http.StatusBadRequest, "Post must contain text or an image")
		return
	}

	var imgURL string
	if body.File != "" {
		url, err := s.images.Upload(r.Context(), body.File)
		if err != nil {
			logg.Error("http/posts", "Image upload failed", err)
			writeMsg(w, http.StatusInternalServerError, "Failed to upload image to Cloudinary.")
			return
		}
		imgURL = url
	}

	post := models.Post{
		ID:       uuid.NewString(),
		AuthorID: userID,
		Text:     body.Text,
		Img:      imgURL,
	}

	created, err := s.store.CreatePost(r.Context(), post)
	if err != nil {
		logg.Error("http/posts", "Failed to save post", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/posts", "Post created successfully by user_id="+userID)
	writeJSON(w, http.StatusCreated, map[string]models.Post{"newPost": created})
}

// getPostHandler returns a post with its likes and replies.
func (s *Server) getPostHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Post not found")
			return
		}
		logg.Error("http/posts", "Failed to fetch post", err)
		writeMsg(w, http.StatusInternalServerError, "Error while fetching Post")
		return
	}

	writeJSON(w, http.StatusOK, map[string]models.Post{"post": post})
}

// deletePostHandler removes the caller's post. When the post carries an
// image, one signed destroy call goes to the image host first; a failed
// destroy is logged and never blocks the row deletion.
func (s *Server) deletePostHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	post, err := s.store.GetPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Post not found")
			return
		}
		logg.Error("http/posts", "Failed to fetch post for deletion", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	if post.AuthorID != userID {
		logg.Info("http/posts", "Rejected delete of foreign post, user_id="+userID)
		writeMsg(w, http.StatusUnauthorized, "Unauthorized to delete post")
		return
	}

	if post.Img != "" {
		publicID := imagehost.PublicIDFromURL(post.Img)
		if err := s.images.Destroy(r.Context(), publicID); err != nil {
			logg.Error("http/posts", "Image destroy failed, continuing with post deletion", err)
		}
	}

	if err := s.store.DeletePost(r.Context(), id); err != nil {
		logg.Error("http/posts", "Failed to delete post", err)
		writeMsg(w, http.StatusInternalServerError, "An error occurred while deleting the post.")
		return
	}

	logg.Info("http/posts", "Post deleted by user_id="+userID)
	writeMsg(w, http.StatusOK, "Post deleted successfully.")
}

// likePostHandler toggles the caller's like on the post.
func (s *Server) likePostHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if _, err := s.store.GetPost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Post not found")
			return
		}
		logg.Error("http/likes", "Failed to fetch post for like", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	liked, err := s.store.ToggleLike(r.Context(), userID, id)
	if err != nil {
		logg.Error("http/likes", "Failed to toggle like", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	if liked {
		writeMsg(w, http.StatusOK, "Post liked successfully")
		return
	}
	writeMsg(w, http.StatusOK, "Post unliked successfully")
}

// replyPostHandler creates a reply on the post. The author fields come from
// the request body, not the token; that behavior is part of the published
// contract.
func (s *Server) replyPostHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		UserID     string `json:"userId"`
		Username   string `json:"username"`
		ProfilePic string `json:"userProfilePic"`
		Text       string `json:"text"`
	}
	var body req

	id := r.PathValue("id")

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/replies", "Invalid request body", err)
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	if body.Text == "" {
		writeMsg(w, http.StatusBadRequest, "Reply text cannot be empty")
		return
	}

	if _, err := s.store.GetPost(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "Post not found")
			return
		}
		logg.Error("http/replies", "Failed to fetch post for reply", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	reply := models.Reply{
		ID:         uuid.NewString(),
		UserID:     body.UserID,
		Username:   body.Username,
		ProfilePic: body.ProfilePic,
		Text:       body.Text,
		PostID:     id,
	}

	created, err := s.store.CreateReply(r.Context(), reply)
	if err != nil {
		logg.Error("http/replies", "Failed to create reply", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/replies", "Reply created on post_id="+id)
	writeJSON(w, http.StatusCreated, created)
}
