package store

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// FirestoreStore backs the Store contract with Cloud Firestore. Set-union
// merges and increments map onto Firestore's atomic field transforms, and
// Mutate runs inside a Firestore transaction.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	doc := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		if _, ok := v.(serverNow); ok {
			v = firestore.ServerTimestamp
		}
		doc[k] = v
	}
	doc["createdAt"] = firestore.ServerTimestamp
	doc["updatedAt"] = firestore.ServerTimestamp

	ref, _, err := s.client.Collection(collection).Add(ctx, doc)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (*Snapshot, error) {
	ds, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &Snapshot{ID: ds.Ref.ID, decode: ds.DataTo}, nil
}

func (s *FirestoreStore) FindOne(ctx context.Context, collection string, filters ...Filter) (*Snapshot, error) {
	query := s.query(collection, filters)
	docs, err := query.Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &Snapshot{ID: docs[0].Ref.ID, decode: docs[0].DataTo}, nil
}

func (s *FirestoreStore) FindAll(ctx context.Context, collection string, filters ...Filter) ([]Snapshot, error) {
	var snaps []Snapshot
	it := s.query(collection, filters).Documents(ctx)
	defer it.Stop()
	for {
		ds, err := it.Next()
		if err == iterator.Done {
			return snaps, nil
		}
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, Snapshot{ID: ds.Ref.ID, decode: ds.DataTo})
	}
}

func (s *FirestoreStore) Update(ctx context.Context, collection, id string, ops ...Op) error {
	_, err := s.client.Collection(collection).Doc(id).Update(ctx, firestoreUpdates(ops))
	return err
}

func (s *FirestoreStore) Mutate(ctx context.Context, collection, id string, fn func(snap *Snapshot) ([]Op, error)) error {
	ref := s.client.Collection(collection).Doc(id)
	return s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ds, err := tx.Get(ref)
		if err != nil {
			return err
		}
		ops, err := fn(&Snapshot{ID: ds.Ref.ID, decode: ds.DataTo})
		if err != nil {
			return err
		}
		return tx.Update(ref, firestoreUpdates(ops))
	})
}

func (s *FirestoreStore) Delete(ctx context.Context, collection, id string) error {
	_, err := s.client.Collection(collection).Doc(id).Delete(ctx)
	return err
}

func (s *FirestoreStore) query(collection string, filters []Filter) firestore.Query {
	query := s.client.Collection(collection).Query
	for _, f := range filters {
		query = query.Where(f.Field, "==", f.Value)
	}
	return query
}

func firestoreUpdates(ops []Op) []firestore.Update {
	updates := make([]firestore.Update, 0, len(ops)+1)
	for _, op := range ops {
		u := firestore.Update{Path: op.Field}
		switch op.kind {
		case opSet:
			u.Value = op.Value
		case opUnion:
			values := op.Value.([]string)
			elems := make([]any, len(values))
			for i, v := range values {
				elems[i] = v
			}
			u.Value = firestore.ArrayUnion(elems...)
		case opIncrement:
			u.Value = firestore.Increment(op.Value.(int64))
		case opNow:
			u.Value = firestore.ServerTimestamp
		}
		updates = append(updates, u)
	}
	return append(updates, firestore.Update{Path: "updatedAt", Value: firestore.ServerTimestamp})
}
