package store

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore keeps each key as a document in one collection. The value is
// stored in the "value" field.
type Firestore struct {
	client     *firestore.Client
	collection string
}

type firestoreEntry struct {
	Value []byte `firestore:"value"`
}

// OpenFirestore creates a client for projectID. credentialsFile may be empty
// to use application default credentials.
func OpenFirestore(ctx context.Context, projectID, collection, credentialsFile string) (*Firestore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("create firestore client: %w", err)
	}
	return NewFirestore(client, collection), nil
}

func NewFirestore(client *firestore.Client, collection string) *Firestore {
	if collection == "" {
		collection = "cache"
	}
	return &Firestore{client: client, collection: collection}
}

func (f *Firestore) Get(ctx context.Context, key string) ([]byte, error) {
	doc, err := f.client.Collection(f.collection).Doc(docID(key)).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}

	var entry firestoreEntry
	if err := doc.DataTo(&entry); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	return entry.Value, nil
}

func (f *Firestore) Put(ctx context.Context, key string, value []byte) error {
	_, err := f.client.Collection(f.collection).Doc(docID(key)).Set(ctx, firestoreEntry{Value: value})
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) Delete(ctx context.Context, key string) error {
	if _, err := f.client.Collection(f.collection).Doc(docID(key)).Delete(ctx); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (f *Firestore) Close() error {
	return f.client.Close()
}

// docID makes key usable as a document id; '/' would address a subcollection.
func docID(key string) string {
	return strings.ReplaceAll(key, "/", "_")
}
