package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"example.com/socialhub/internal/middleware"
	"example.com/socialhub/internal/models"
	"example.com/socialhub/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// signToken issues an HS256 token embedding the user's id and username.
func (s *Server) signToken(u models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       u.ID,
		"username": u.Username,
		"exp":      time.Now().Add(s.cfg.TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.cfg.SecretKey))
}

// signupHandler creates a user account and returns a signed token as plain
// text. Any failure answers 411 with a fixed text body; that response is part
// of the published contract and is kept as-is.
func (s *Server) signupHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Name       string `json:"name"`
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		ProfilePic string `json:"profilePic"`
		Bio        string `json:"bio"`
		IsFrozen   bool   `json:"isFrozen"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/signup", "Invalid request body", err)
		signupFailed(w)
		return
	}
	defer r.Body.Close()

	if body.Username == "" || body.Password == "" {
		logg.Info("http/signup", "Missing username or password")
		signupFailed(w)
		return
	}

	user := models.User{
		ID:         uuid.NewString(),
		Name:       body.Name,
		Email:      body.Email,
		Username:   body.Username,
		Password:   body.Password,
		ProfilePic: body.ProfilePic,
		Bio:        body.Bio,
		IsFrozen:   body.IsFrozen,
	}

	created, err := s.store.CreateUser(r.Context(), user)
	if err != nil {
		logg.Error("http/signup", "Failed to create user", err)
		signupFailed(w)
		return
	}

	tokenStr, err := s.signToken(created)
	if err != nil {
		logg.Error("http/signup", "Failed to sign token", err)
		signupFailed(w)
		return
	}

	logg.Info("http/signup", "User signed up successfully (username anonymized)")
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(tokenStr))
}

func signupFailed(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusLengthRequired)
	w.Write([]byte("Invalid! Error Occured"))
}

// signinHandler matches username and password exactly and returns a signed
// token as plain text.
func (s *Server) signinHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/signin", "Invalid request body", err)
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	user, err := s.store.GetUserByCredentials(r.Context(), body.Username, body.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logg.Info("http/signin", "Credentials did not match any user")
			writeMsg(w, http.StatusForbidden, "Incorrect credentials, user not found!")
			return
		}
		logg.Error("http/signin", "Failed to query user by credentials", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	tokenStr, err := s.signToken(user)
	if err != nil {
		logg.Error("http/signin", "Failed to sign token", err)
		writeMsg(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	logg.Info("http/signin", "User signed in successfully (username anonymized)")
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(tokenStr))
}

// profileHandler looks a user up by id or username. The projection includes
// the stored password, which is observable behavior of the API.
func (s *Server) profileHandler(w http.ResponseWriter, r *http.Request) {
	query := r.PathValue("query")

	user, err := s.store.GetUserByIDOrUsername(r.Context(), query)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/profile", "Failed to query user profile", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/profile", "Profile retrieved (username anonymized)")
	writeJSON(w, http.StatusOK, user)
}

// followHandler toggles the follow relation towards the target user.
func (s *Server) followHandler(w http.ResponseWriter, r *http.Request) {
	targetID := r.PathValue("id")

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if targetID == userID {
		writeMsg(w, http.StatusBadRequest, "You cannot follow yourself")
		return
	}

	if _, err := s.store.GetUserByID(r.Context(), targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/follow", "Failed to query follow target", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	followed, err := s.store.ToggleFollow(r.Context(), userID, targetID)
	if err != nil {
		logg.Error("http/follow", "Failed to toggle follow relationship", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	if followed {
		logg.Info("http/follow", "Follow created (user IDs anonymized)")
		writeMsg(w, http.StatusOK, "User followed successfully")
		return
	}
	logg.Info("http/follow", "Follow removed (user IDs anonymized)")
	writeMsg(w, http.StatusOK, "User unfollowed successfully")
}

// updateHandler overwrites the caller's profile fields unconditionally.
func (s *Server) updateHandler(w http.ResponseWriter, r *http.Request) {
	type req struct {
		Name       string `json:"name"`
		Username   string `json:"username"`
		Email      string `json:"email"`
		Password   string `json:"password"`
		ProfilePic string `json:"profilePic"`
		Bio        string `json:"bio"`
	}
	var body req

	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		logg.Error("http/update", "Invalid request body", err)
		writeMsg(w, http.StatusBadRequest, "invalid request body")
		return
	}
	defer r.Body.Close()

	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	update := models.User{
		ID:         userID,
		Name:       body.Name,
		Username:   body.Username,
		Email:      body.Email,
		Password:   body.Password,
		ProfilePic: body.ProfilePic,
		Bio:        body.Bio,
	}

	if err := s.store.UpdateUser(r.Context(), update); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/update", "Failed to update user", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/update", "Profile updated (user id anonymized)")
	writeJSON(w, http.StatusOK, map[string]string{
		"id":  userID,
		"msg": "User updated successfully",
	})
}

// freezeHandler marks the caller's account frozen. Freezing does not block a
// later signin.
func (s *Server) freezeHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeMsg(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := s.store.FreezeUser(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusNotFound, "User not found")
			return
		}
		logg.Error("http/freeze", "Failed to freeze user", err)
		writeMsg(w, http.StatusInternalServerError, "An exception has occurred")
		return
	}

	logg.Info("http/freeze", "Account frozen (user id anonymized)")
	writeMsg(w, http.StatusOK, "Account frozen successfully")
}
