package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"

	"listkit/core/snapshot"
)

const objectSuffix = ".json"

// exportDocument is the JSON shape of a board export.
type exportDocument struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	SavedAt  time.Time       `json:"saved_at"`
	Sections []exportSection `json:"sections"`
}

type exportSection struct {
	ID    string   `json:"id"`
	Items []string `json:"items"`
}

// Archive exports board snapshots to object storage as JSON documents.
type Archive struct {
	client Client
	bucket string
}

// NewArchive creates an Archive on the given client and bucket.
func NewArchive(client Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// EnsureBucket creates the bucket if it does not exist yet.
func (a *Archive) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Export uploads the snapshot as <id>.json, overwriting any previous export.
func (a *Archive) Export(ctx context.Context, id, name string, snap *snapshot.Snapshot) error {
	doc := exportDocument{
		ID:      id,
		Name:    name,
		SavedAt: time.Now().UTC(),
	}
	for _, sec := range snap.SectionIdentifiers() {
		items, err := snap.ItemIdentifiers(sec)
		if err != nil {
			return err
		}
		es := exportSection{ID: string(sec), Items: make([]string, 0, len(items))}
		for _, it := range items {
			es.Items = append(es.Items, string(it))
		}
		doc.Sections = append(doc.Sections, es)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}

	_, err = a.client.PutObject(ctx, a.bucket, id+objectSuffix,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to upload export: %w", err)
	}
	return nil
}

// Import downloads an export and rebuilds its snapshot.
func (a *Archive) Import(ctx context.Context, id string) (string, *snapshot.Snapshot, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, id+objectSuffix, minio.GetObjectOptions{})
	if err != nil {
		return "", nil, fmt.Errorf("failed to download export: %w", err)
	}
	defer obj.Close()

	var doc exportDocument
	if err := json.NewDecoder(obj).Decode(&doc); err != nil {
		return "", nil, fmt.Errorf("failed to decode export: %w", err)
	}

	snap := snapshot.New()
	for _, sec := range doc.Sections {
		if err := snap.AppendSections(snapshot.SectionID(sec.ID)); err != nil {
			return "", nil, err
		}
		for _, it := range sec.Items {
			if err := snap.AppendItems(snapshot.SectionID(sec.ID), snapshot.ItemID(it)); err != nil {
				return "", nil, err
			}
		}
	}

	return doc.Name, snap, nil
}

// List returns the ids of all exports in the bucket.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	var ids []string
	for obj := range a.client.ListObjects(ctx, a.bucket, minio.ListObjectsOptions{Recursive: true}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list exports: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, objectSuffix) {
			ids = append(ids, strings.TrimSuffix(obj.Key, objectSuffix))
		}
	}
	return ids, nil
}

// Remove deletes an export.
func (a *Archive) Remove(ctx context.Context, id string) error {
	if err := a.client.RemoveObject(ctx, a.bucket, id+objectSuffix, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove export: %w", err)
	}
	return nil
}
