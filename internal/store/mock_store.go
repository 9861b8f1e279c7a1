package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"example.com/socialhub/internal/models"
)

// MockStore simulates Postgres operations for testing. Follows and likes are
// keyed by their composite pair, mirroring the unique constraints.
type MockStore struct {
	Users      map[string]models.User
	Follows    map[string]models.Follow // key follower|following
	Posts      map[string]models.Post
	Likes      map[string]models.Like // key user|post
	Replies    map[string][]models.Reply
	Messages   []models.Message
	ShouldFail bool // flag to simulate failures
}

// NewMock initializes a new mock store
func NewMock() *MockStore {
	return &MockStore{
		Users:   make(map[string]models.User),
		Follows: make(map[string]models.Follow),
		Posts:   make(map[string]models.Post),
		Likes:   make(map[string]models.Like),
		Replies: make(map[string][]models.Reply),
	}
}

func (m *MockStore) Close() {}

func pairKey(a, b string) string { return a + "|" + b }

func (m *MockStore) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: create user failed")
	}
	for _, existing := range m.Users {
		if existing.Username == u.Username {
			return models.User{}, ErrDuplicate
		}
	}
	u.Created = time.Now()
	u.Updated = u.Created
	m.Users[u.ID] = u
	return u, nil
}

func (m *MockStore) GetUserByCredentials(ctx context.Context, username, password string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: get user failed")
	}
	for _, u := range m.Users {
		if u.Username == username && u.Password == password {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MockStore) GetUserByIDOrUsername(ctx context.Context, query string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: get user failed")
	}
	if u, ok := m.Users[query]; ok {
		return u, nil
	}
	for _, u := range m.Users {
		if u.Username == query {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *MockStore) GetUserByID(ctx context.Context, id string) (models.User, error) {
	if m.ShouldFail {
		return models.User{}, errors.New("mock: get user failed")
	}
	if u, ok := m.Users[id]; ok {
		return u, nil
	}
	return models.User{}, ErrNotFound
}

func (m *MockStore) UpdateUser(ctx context.Context, u models.User) error {
	if m.ShouldFail {
		return errors.New("mock: update user failed")
	}
	existing, ok := m.Users[u.ID]
	if !ok {
		return ErrNotFound
	}
	u.Created = existing.Created
	u.IsFrozen = existing.IsFrozen
	u.Updated = time.Now()
	m.Users[u.ID] = u
	return nil
}

func (m *MockStore) FreezeUser(ctx context.Context, id string) error {
	if m.ShouldFail {
		return errors.New("mock: freeze user failed")
	}
	u, ok := m.Users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsFrozen = true
	m.Users[id] = u
	return nil
}

func (m *MockStore) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	if m.ShouldFail {
		return false, errors.New("mock: toggle follow failed")
	}
	key := pairKey(followerID, followingID)
	if _, ok := m.Follows[key]; ok {
		delete(m.Follows, key)
		return false, nil
	}
	m.Follows[key] = models.Follow{
		ID:          fmt.Sprintf("follow_%d", len(m.Follows)+1),
		FollowerID:  followerID,
		FollowingID: followingID,
		Created:     time.Now(),
	}
	return true, nil
}

func (m *MockStore) CreatePost(ctx context.Context, p models.Post) (models.Post, error) {
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: create post failed")
	}
	p.Created = time.Now()
	p.Updated = p.Created
	m.Posts[p.ID] = p
	return p, nil
}

func (m *MockStore) GetPost(ctx context.Context, id string) (models.Post, error) {
	if m.ShouldFail {
		return models.Post{}, errors.New("mock: get post failed")
	}
	p, ok := m.Posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	for _, l := range m.Likes {
		if l.PostID == id {
			p.Likes = append(p.Likes, l)
		}
	}
	p.Replies = m.Replies[id]
	return p, nil
}

func (m *MockStore) DeletePost(ctx context.Context, id string) error {
	if m.ShouldFail {
		return errors.New("mock: delete post failed")
	}
	if _, ok := m.Posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.Posts, id)
	for key, l := range m.Likes {
		if l.PostID == id {
			delete(m.Likes, key)
		}
	}
	delete(m.Replies, id)
	return nil
}

func (m *MockStore) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	if m.ShouldFail {
		return false, errors.New("mock: toggle like failed")
	}
	key := pairKey(userID, postID)
	if _, ok := m.Likes[key]; ok {
		delete(m.Likes, key)
		return false, nil
	}
	m.Likes[key] = models.Like{
		ID:      fmt.Sprintf("like_%d", len(m.Likes)+1),
		UserID:  userID,
		PostID:  postID,
		Created: time.Now(),
	}
	return true, nil
}

func (m *MockStore) CreateReply(ctx context.Context, r models.Reply) (models.Reply, error) {
	if m.ShouldFail {
		return models.Reply{}, errors.New("mock: create reply failed")
	}
	r.Created = time.Now()
	m.Replies[r.PostID] = append(m.Replies[r.PostID], r)
	return r, nil
}

func (m *MockStore) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	if m.ShouldFail {
		return models.Message{}, errors.New("mock: create message failed")
	}
	msg.Created = time.Now()
	m.Messages = append(m.Messages, msg)
	return msg, nil
}

func (m *MockStore) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	if m.ShouldFail {
		return nil, errors.New("mock: get conversation failed")
	}
	var res []models.Message
	for i := range m.Messages {
		msg := &m.Messages[i]
		between := (msg.SenderID == userID && msg.ReceiverID == otherID) ||
			(msg.SenderID == otherID && msg.ReceiverID == userID)
		if !between {
			continue
		}
		if msg.ReceiverID == userID {
			msg.Read = true
		}
		res = append(res, *msg)
	}
	return res, nil
}

// ---------------------------------------------
// MockStoreFail always returns errors for negative tests
type MockStoreFail struct{}

func (m *MockStoreFail) Close() {}

func (m *MockStoreFail) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	return models.User{}, errors.New("mock store create user failed")
}

func (m *MockStoreFail) GetUserByCredentials(ctx context.Context, username, password string) (models.User, error) {
	return models.User{}, errors.New("mock store get user by credentials failed")
}

func (m *MockStoreFail) GetUserByIDOrUsername(ctx context.Context, query string) (models.User, error) {
	return models.User{}, errors.New("mock store get user failed")
}

func (m *MockStoreFail) GetUserByID(ctx context.Context, id string) (models.User, error) {
	return models.User{}, errors.New("mock store get user by id failed")
}

func (m *MockStoreFail) UpdateUser(ctx context.Context, u models.User) error {
	return errors.New("mock store update user failed")
}

func (m *MockStoreFail) FreezeUser(ctx context.Context, id string) error {
	return errors.New("mock store freeze user failed")
}

func (m *MockStoreFail) ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error) {
	return false, errors.New("mock store toggle follow failed")
}

func (m *MockStoreFail) CreatePost(ctx context.Context, p models.Post) (models.Post, error) {
	return models.Post{}, errors.New("mock store create post failed")
}

func (m *MockStoreFail) GetPost(ctx context.Context, id string) (models.Post, error) {
	return models.Post{}, errors.New("mock store get post failed")
}

func (m *MockStoreFail) DeletePost(ctx context.Context, id string) error {
	return errors.New("mock store delete post failed")
}

func (m *MockStoreFail) ToggleLike(ctx context.Context, userID, postID string) (bool, error) {
	return false, errors.New("mock store toggle like failed")
}

func (m *MockStoreFail) CreateReply(ctx context.Context, r models.Reply) (models.Reply, error) {
	return models.Reply{}, errors.New("mock store create reply failed")
}

func (m *MockStoreFail) CreateMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	return models.Message{}, errors.New("mock store create message failed")
}

func (m *MockStoreFail) GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error) {
	return nil, errors.New("mock store get conversation failed")
}
