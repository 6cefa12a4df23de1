package repository

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"rugstore/internal/domain/raw"
	"rugstore/pkg/errors"
)

type firestoreStores struct {
	client *firestore.Client
}

func NewFirestoreStores(client *firestore.Client) Stores {
	return &firestoreStores{client: client}
}

func (s *firestoreStores) Collection(name string) DocumentStore {
	return &firestoreDocumentStore{client: s.client, name: name}
}

type firestoreDocumentStore struct {
	client *firestore.Client
	name   string
}

func (s *firestoreDocumentStore) col() *firestore.CollectionRef {
	return s.client.Collection(s.name)
}

func (s *firestoreDocumentStore) NewID() string {
	return s.col().NewDoc().ID
}

func (s *firestoreDocumentStore) Get(ctx context.Context, id string) (raw.Document, error) {
	if id == "" {
		return nil, errors.NotFound(s.name, nil)
	}
	doc, err := s.col().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound(s.name, err)
		}
		return nil, errors.Internal("Failed to get document from "+s.name, err)
	}
	return doc.Data(), nil
}

func (s *firestoreDocumentStore) FindOne(ctx context.Context, field string, value any) (Snapshot, error) {
	iter := s.col().Where(field, "==", value).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return Snapshot{}, errors.NotFound(s.name, nil)
		}
		return Snapshot{}, errors.Internal("Failed to query "+s.name, err)
	}
	return Snapshot{ID: doc.Ref.ID, Data: doc.Data()}, nil
}

func (s *firestoreDocumentStore) All(ctx context.Context) ([]Snapshot, error) {
	iter := s.col().Documents(ctx)
	defer iter.Stop()

	snapshots := []Snapshot{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate "+s.name, err)
		}
		snapshots = append(snapshots, Snapshot{ID: doc.Ref.ID, Data: doc.Data()})
	}
	return snapshots, nil
}

func (s *firestoreDocumentStore) Set(ctx context.Context, id string, doc raw.Document) error {
	if _, err := s.col().Doc(id).Set(ctx, doc); err != nil {
		return errors.Internal("Failed to write to "+s.name, err)
	}
	return nil
}

// SetAll commits docs in transactions of at most maxBatchWrites writes.
func (s *firestoreDocumentStore) SetAll(ctx context.Context, docs []Snapshot) error {
	for start := 0; start < len(docs); start += maxBatchWrites {
		end := start + maxBatchWrites
		if end > len(docs) {
			end = len(docs)
		}
		chunk := docs[start:end]

		err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
			for _, d := range chunk {
				if err := tx.Set(s.col().Doc(d.ID), d.Data); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return errors.Internal("Failed to batch write to "+s.name, err)
		}
	}
	return nil
}

func (s *firestoreDocumentStore) Delete(ctx context.Context, id string) error {
	if _, err := s.col().Doc(id).Delete(ctx); err != nil {
		return errors.Internal("Failed to delete from "+s.name, err)
	}
	return nil
}
