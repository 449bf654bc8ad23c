// Package board exposes reconciled list boards over HTTP.
//
// A board is a named, sectioned list managed by a data source. Clients mutate
// the board through the API and receive the computed operation plan in the
// response, which tells a remote renderer exactly which rows to insert,
// delete, move, reconfigure or reload.
//
// # Components
//
//   - Service: Owns the in-memory boards and delegates to the data source,
//     the database store and the object storage archive.
//   - Handler: Exposes HTTP endpoints for board mutations.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - POST   /boards                           : Create a board.
//   - GET    /boards                           : List boards.
//   - GET    /boards/:id                       : Get the current layout.
//   - PUT    /boards/:id/layout                : Diff against a target layout.
//   - POST   /boards/:id/sections/:section/items   : Append rows.
//   - DELETE /boards/:id/items                 : Delete rows.
//   - POST   /boards/:id/items/:item/move      : Move a row to another section.
//   - POST   /boards/:id/sections/:section/shuffle : Shuffle a section.
//   - POST   /boards/:id/items/reconfigure     : Mark rows for reconfigure.
//   - POST   /boards/:id/items/reload          : Mark rows for reload.
//   - POST   /boards/:id/reorder               : Propose an interactive move.
//   - POST   /boards/:id/save, /boards/:id/load     : Database persistence.
//   - POST   /boards/:id/export, /boards/:id/import : Object storage exports.
package board
