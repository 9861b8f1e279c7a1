package models

import "time"

// User is the account record. Password is stored and served as-is; the
// profile endpoint exposes it, which is part of the observable contract.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	Password   string    `json:"password"`
	ProfilePic string    `json:"profilePic"`
	Bio        string    `json:"bio"`
	IsFrozen   bool      `json:"isFrozen"`
	Created    time.Time `json:"createdAt"`
	Updated    time.Time `json:"updatedAt"`
}

// Follow links a follower to the user they follow. (follower, following)
// is unique in the database, which is what makes the toggle race-free.
type Follow struct {
	ID          string    `json:"id"`
	FollowerID  string    `json:"followerId"`
	FollowingID string    `json:"followingId"`
	Created     time.Time `json:"createdAt"`
}

type Post struct {
	ID       string    `json:"id"`
	AuthorID string    `json:"postedById"`
	Text     string    `json:"text"`
	Img      string    `json:"img"`
	Created  time.Time `json:"createdAt"`
	Updated  time.Time `json:"updatedAt"`
	Likes    []Like    `json:"likes,omitempty"`
	Replies  []Reply   `json:"replies,omitempty"`
}

// Like is unique per (user, post).
type Like struct {
	ID      string    `json:"id"`
	UserID  string    `json:"userId"`
	PostID  string    `json:"postId"`
	Created time.Time `json:"createdAt"`
}

// Reply carries denormalized author fields so reads need no join.
type Reply struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Username   string    `json:"username"`
	ProfilePic string    `json:"userProfilePic"`
	Text       string    `json:"text"`
	PostID     string    `json:"postId"`
	Created    time.Time `json:"createdAt"`
}

type Message struct {
	ID         string    `json:"id"`
	SenderID   string    `json:"senderId"`
	ReceiverID string    `json:"receiverId"`
	Content    string    `json:"content"`
	Img        string    `json:"img,omitempty"`
	Read       bool      `json:"read"`
	Created    time.Time `json:"createdAt"`
}
