package users

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "users"

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

type UpsertUser struct {
	UID         string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Profile is the stub stored under users/{uid}.
type Profile struct {
	UID         string    `firestore:"uid" json:"uid"`
	Email       string    `firestore:"email,omitempty" json:"email,omitempty"`
	DisplayName string    `firestore:"displayName,omitempty" json:"displayName,omitempty"`
	PhotoURL    string    `firestore:"photoURL,omitempty" json:"photoURL,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt" json:"createdAt"`
}

// EnsureUser upserts the profile stub for an authenticated identity. Claims
// already stored are kept when the token carries empty values; createdAt is
// written once.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) error {
	if u.UID == "" {
		return fmt.Errorf("uid required")
	}

	doc := r.fs.Collection(collection).Doc(u.UID)

	snap, err := doc.Get(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("ensure user: %w", err)
	}

	if !snap.Exists() {
		_, err := doc.Create(ctx, Profile{
			UID:         u.UID,
			Email:       u.Email,
			DisplayName: u.DisplayName,
			PhotoURL:    u.PhotoURL,
			CreatedAt:   time.Now().UTC(),
		})
		// A concurrent first request may have created it already.
		if err != nil && status.Code(err) != codes.AlreadyExists {
			return fmt.Errorf("ensure user: %w", err)
		}
		return nil
	}

	updates := mergeUpdates(u)
	if len(updates) == 0 {
		return nil
	}
	if _, err := doc.Update(ctx, updates); err != nil {
		return fmt.Errorf("ensure user: %w", err)
	}
	return nil
}

func mergeUpdates(u UpsertUser) []firestore.Update {
	var updates []firestore.Update
	if u.Email != "" {
		updates = append(updates, firestore.Update{Path: "email", Value: u.Email})
	}
	if u.DisplayName != "" {
		updates = append(updates, firestore.Update{Path: "displayName", Value: u.DisplayName})
	}
	if u.PhotoURL != "" {
		updates = append(updates, firestore.Update{Path: "photoURL", Value: u.PhotoURL})
	}
	return updates
}
