package archive_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"listkit/core/archive"
	"listkit/core/archive/mocks"
	"listkit/core/snapshot"
)

func choresSnapshot(t *testing.T) *snapshot.Snapshot {
	t.Helper()
	snap := snapshot.New()
	assert.NoError(t, snap.AppendSections("todo", "done"))
	assert.NoError(t, snap.AppendItems("todo", "wash", "cook"))
	assert.NoError(t, snap.AppendItems("done", "sleep"))
	return snap
}

func TestArchive_ExportAndImportRoundTrip(t *testing.T) {
	client := new(mocks.Client)
	arc := archive.NewArchive(client, "boards")
	ctx := context.Background()
	snap := choresSnapshot(t)

	// Capture the uploaded payload so the import can read it back.
	var payload []byte
	client.On("PutObject", ctx, "boards", "board-1.json",
		mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			data, err := io.ReadAll(args.Get(3).(io.Reader))
			assert.NoError(t, err)
			payload = data
			assert.Equal(t, int64(len(data)), args.Get(4).(int64))
		}).
		Return(minio.UploadInfo{}, nil)

	assert.NoError(t, arc.Export(ctx, "board-1", "Chores", snap))

	client.On("GetObject", ctx, "boards", "board-1.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(payload)), nil)

	name, loaded, err := arc.Import(ctx, "board-1")
	assert.NoError(t, err)
	assert.Equal(t, "Chores", name)
	assert.True(t, loaded.Equal(snap))
	client.AssertExpectations(t)
}

func TestArchive_ImportDownloadError(t *testing.T) {
	client := new(mocks.Client)
	arc := archive.NewArchive(client, "boards")

	client.On("GetObject", mock.Anything, "boards", "missing.json", mock.Anything).
		Return(nil, assert.AnError)

	_, _, err := arc.Import(context.Background(), "missing")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestArchive_List(t *testing.T) {
	client := new(mocks.Client)
	arc := archive.NewArchive(client, "boards")

	ch := make(chan minio.ObjectInfo, 3)
	ch <- minio.ObjectInfo{Key: "board-1.json"}
	ch <- minio.ObjectInfo{Key: "board-2.json"}
	ch <- minio.ObjectInfo{Key: "notes.txt"}
	close(ch)

	client.On("ListObjects", mock.Anything, "boards", mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	ids, err := arc.List(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"board-1", "board-2"}, ids)
}

func TestArchive_EnsureBucket(t *testing.T) {
	t.Run("AlreadyExists", func(t *testing.T) {
		client := new(mocks.Client)
		arc := archive.NewArchive(client, "boards")

		client.On("BucketExists", mock.Anything, "boards").Return(true, nil)

		assert.NoError(t, arc.EnsureBucket(context.Background()))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Creates", func(t *testing.T) {
		client := new(mocks.Client)
		arc := archive.NewArchive(client, "boards")

		client.On("BucketExists", mock.Anything, "boards").Return(false, nil)
		client.On("MakeBucket", mock.Anything, "boards", mock.Anything).Return(nil)

		assert.NoError(t, arc.EnsureBucket(context.Background()))
		client.AssertExpectations(t)
	})
}

func TestArchive_Remove(t *testing.T) {
	client := new(mocks.Client)
	arc := archive.NewArchive(client, "boards")

	client.On("RemoveObject", mock.Anything, "boards", "board-1.json", mock.Anything).
		Return(nil)

	assert.NoError(t, arc.Remove(context.Background(), "board-1"))
	client.AssertExpectations(t)
}
