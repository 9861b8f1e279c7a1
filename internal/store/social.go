package store

import (
	"context"
	"errors"

	"example.com/socialhub/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// --- Follow operations ---

// ToggleFollow creates the follow relation if absent, removes it otherwise.
// The conditional insert rides on the UNIQUE(follower_id, following_id)
// constraint, so two concurrent toggles can never both insert. Returns true
// when the caller now follows the target.
func (s *Store) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
		INSERT INTO follows (id, follower_id, following_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (follower_id, following_id) DO NOTHING`,
		uuid.NewString(), followerID, followingID,
	)
	if err != nil {
		logg.Error("store", "Failed to toggle follow relationship", err)
		return false, err
	}
	if tag.RowsAffected() > 0 {
		logg.Info("store", "Follow relationship created (user IDs anonymized)")
		return true, nil
	}

	_, err = s.Pool.Exec(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`,
		followerID, followingID,
	)
	if err != nil {
		logg.Error("store", "Failed to remove follow relationship", err)
		return false, err
	}

	logg.Info("store", "Follow relationship removed (user IDs anonymized)")
	return false, nil
}

// --- Post operations ---

func (s *Store) CreatePost(ctx context.Context, p models.Post) (models.Post, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO posts (id, author_id, text, img)
		VALUES ($1, $2, $3, $4)
		RETURNING id, author_id, text, img, created_at, updated_at`,
		p.ID, p.AuthorID, p.Text, p.Img,
	)

	var created models.Post
	if err := row.Scan(&created.ID, &created.AuthorID, &created.Text,
		&created.Img, &created.Created, &created.Updated); err != nil {
		logg.Error("store", "Failed to create post", err)
		return models.Post{}, err
	}

	logg.Info("store", "Post created (post content anonymized)")
	return created, nil
}

// GetPost returns the post together with its likes and replies.
func (s *Store) GetPost(ctx context.Context, id string) (models.Post, error) {
	row := s.Pool.QueryRow(ctx, `
		SELECT id, author_id, text, img, created_at, updated_at
		FROM posts WHERE id = $1`, id)

	var p models.Post
	err := row.Scan(&p.ID, &p.AuthorID, &p.Text, &p.Img, &p.Created, &p.Updated)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Post{}, ErrNotFound
	}
	if err != nil {
		logg.Error("store", "Failed to query post", err)
		return models.Post{}, err
	}

	if p.Likes, err = s.getLikes(ctx, id); err != nil {
		return models.Post{}, err
	}
	if p.Replies, err = s.getReplies(ctx, id); err != nil {
		return models.Post{}, err
	}
	return p, nil
}

func (s *Store) getLikes(ctx context.Context, postID string) ([]models.Like, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, post_id, created_at
		FROM likes WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		logg.Error("store", "Failed to query likes", err)
		return nil, err
	}
	defer rows.Close()

	var res []models.Like
	for rows.Next() {
		var l models.Like
		if err := rows.Scan(&l.ID, &l.UserID, &l.PostID, &l.Created); err != nil {
			return nil, err
		}
		res = append(res, l)
	}
	return res, rows.Err()
}

func (s *Store) getReplies(ctx context.Context, postID string) ([]models.Reply, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT id, user_id, username, user_profile_pic, text, post_id, created_at
		FROM replies WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		logg.Error("store", "Failed to query replies", err)
		return nil, err
	}
	defer rows.Close()

	var res []models.Reply
	for rows.Next() {
		var r models.Reply
		if err := rows.Scan(&r.ID, &r.UserID, &r.Username, &r.ProfilePic,
			&r.Text, &r.PostID, &r.Created); err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, rows.Err()
}

// DeletePost removes the post row; likes and replies cascade in the schema.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	tag, err := s.Pool.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		logg.Error("store", "Failed to delete post", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	logg.Info("store", "Post deleted (post id anonymized)")
	return nil
}

// ToggleLike mirrors ToggleFollow on the UNIQUE(user_id, post_id) constraint.
// Returns true when the post is now liked by the user.
func (s *Store) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	tag, err := s.Pool.Exec(ctx, `
		INSERT INTO likes (id, user_id, post_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, post_id) DO NOTHING`,
		uuid.NewString(), userID, postID,
	)
	if err != nil {
		logg.Error("store", "Failed to toggle like", err)
		return false, err
	}
	if tag.RowsAffected() > 0 {
		logg.Info("store", "Like created (IDs anonymized)")
		return true, nil
	}

	_, err = s.Pool.Exec(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`, userID, postID)
	if err != nil {
		logg.Error("store", "Failed to remove like", err)
		return false, err
	}

	logg.Info("store", "Like removed (IDs anonymized)")
	return false, nil
}

// --- Reply operations ---

func (s *Store) CreateReply(ctx context.Context, r models.Reply) (models.Reply, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO replies (id, user_id, username, user_profile_pic, text, post_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, username, user_profile_pic, text, post_id, created_at`,
		r.ID, r.UserID, r.Username, r.ProfilePic, r.Text, r.PostID,
	)

	var created models.Reply
	if err := row.Scan(&created.ID, &created.UserID, &created.Username,
		&created.ProfilePic, &created.Text, &created.PostID, &created.Created); err != nil {
		logg.Error("store", "Failed to create reply", err)
		return models.Reply{}, err
	}

	logg.Info("store", "Reply created (content anonymized)")
	return created, nil
}

// --- Message operations ---

func (s *Store) CreateMessage(ctx context.Context, m models.Message) (models.Message, error) {
	row := s.Pool.QueryRow(ctx, `
		INSERT INTO messages (id, sender_id, receiver_id, content, img)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, sender_id, receiver_id, content, img, read, created_at`,
		m.ID, m.SenderID, m.ReceiverID, m.Content, m.Img,
	)

	var created models.Message
	if err := row.Scan(&created.ID, &created.SenderID, &created.ReceiverID,
		&created.Content, &created.Img, &created.Read, &created.Created); err != nil {
		logg.Error("store", "Failed to create message", err)
		return models.Message{}, err
	}

	logg.Info("store", "Message created (content anonymized)")
	return created, nil
}

// GetConversation returns all messages between two users, oldest first, and
// marks the ones addressed to userID as read.
func (s *Store) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if _, err := s.Pool.Exec(ctx, `
		UPDATE messages SET read = TRUE
		WHERE receiver_id = $1 AND sender_id = $2 AND NOT read`,
		userID, otherID,
	); err != nil {
		logg.Error("store", "Failed to mark messages read", err)
		return nil, err
	}

	rows, err := s.Pool.Query(ctx, `
		SELECT id, sender_id, receiver_id, content, img, read, created_at
		FROM messages
		WHERE (sender_id = $1 AND receiver_id = $2)
		   OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at`,
		userID, otherID,
	)
	if err != nil {
		logg.Error("store", "Failed to query conversation", err)
		return nil, err
	}
	defer rows.Close()

	var res []models.Message
	for rows.Next() {
		var m models.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID,
			&m.Content, &m.Img, &m.Read, &m.Created); err != nil {
			return nil, err
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		logg.Error("store", "Failed to read conversation rows", err)
		return nil, err
	}

	logg.Info("store", "Conversation retrieved (IDs and content anonymized)")
	return res, nil
}
