package projects

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "projects"

// ErrNotFound covers both a missing document and an ownership mismatch; the
// caller is never told which.
var ErrNotFound = errors.New("project not found")

type Feature struct {
	Title       string `firestore:"title" json:"title"`
	Description string `firestore:"description" json:"description"`
}

// Project is immutable after creation except for wholesale feature
// replacement. CreatedAt is server-assigned.
type Project struct {
	ID            string    `firestore:"-" json:"id"`
	UserID        string    `firestore:"userId" json:"userId"`
	Name          string    `firestore:"name" json:"name"`
	OriginalIdea  string    `firestore:"originalIdea" json:"originalIdea"`
	FinalSummary  string    `firestore:"finalSummary" json:"finalSummary"`
	SetupPrompt   string    `firestore:"setupPrompt" json:"setupPrompt"`
	FileStructure string    `firestore:"fileStructure" json:"fileStructure"`
	Features      []Feature `firestore:"features" json:"features"`
	CreatedAt     time.Time `firestore:"createdAt,serverTimestamp" json:"createdAt"`
}

type Repo struct {
	fs *firestore.Client
}

func NewRepo(fs *firestore.Client) *Repo {
	return &Repo{fs: fs}
}

func (r *Repo) Save(ctx context.Context, ownerID string, p Project) (string, error) {
	if p.Name == "" {
		return "", fmt.Errorf("name required")
	}
	p.UserID = ownerID

	doc := r.fs.Collection(collection).NewDoc()
	if _, err := doc.Create(ctx, p); err != nil {
		return "", fmt.Errorf("save project: %w", err)
	}
	return doc.ID, nil
}

func (r *Repo) List(ctx context.Context, ownerID string) ([]Project, error) {
	iter := r.fs.Collection(collection).Where("userId", "==", ownerID).Documents(ctx)
	defer iter.Stop()

	out := make([]Project, 0, 16)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list projects: %w", err)
		}

		var p Project
		if err := snap.DataTo(&p); err != nil {
			return nil, fmt.Errorf("decode project %s: %w", snap.Ref.ID, err)
		}
		p.ID = snap.Ref.ID
		out = append(out, p)
	}

	// Newest first. Sorted here rather than in the query so no composite
	// index is needed.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id, ownerID string) (*Project, error) {
	snap, err := r.fs.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var p Project
	if err := snap.DataTo(&p); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", id, err)
	}
	p.ID = snap.Ref.ID

	if p.UserID != ownerID {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *Repo) Delete(ctx context.Context, id, ownerID string) error {
	// Ownership re-checked server-side regardless of what the caller claims.
	if _, err := r.Get(ctx, id, ownerID); err != nil {
		return err
	}

	if _, err := r.fs.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// ReplaceFeatures swaps the stored feature sequence wholesale. The rest of
// the record stays untouched.
func (r *Repo) ReplaceFeatures(ctx context.Context, id, ownerID string, features []Feature) error {
	if _, err := r.Get(ctx, id, ownerID); err != nil {
		return err
	}

	_, err := r.fs.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "features", Value: features},
	})
	if err != nil {
		return fmt.Errorf("replace features: %w", err)
	}
	return nil
}
