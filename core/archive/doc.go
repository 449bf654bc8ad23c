// Package archive provides object storage backed exports of board layouts.
//
// It wraps the MinIO Go client to provide a simplified interface for common operations
// like checking bucket existence, uploading files, and listing objects. This abstraction
// supports both AWS S3 and self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/archive/mocks).
//
// # Exports
//
// The Archive type sits on top of the Client and stores one JSON document per
// board, keyed by the board id. An export records the ordered sections and the
// ordered items of each section, enough to rebuild the snapshot on import.
//
// # Usage
//
//	client, err := archive.NewClient(config)
//	arc := archive.NewArchive(client, config.Bucket)
//	err = arc.Export(ctx, boardID, name, snap)
package archive
