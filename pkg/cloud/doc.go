// Package cloud defines the serialization format of a finished tag cloud.
//
// A [Layout] records the parameters a cloud was built with (center, spiral
// steps, compaction policy) together with the placed tags in placement
// order and summary statistics. It is the hand-off point between the
// layouter and every renderer, and the JSON document the CLI writes and the
// HTTP API returns.
//
// Because placement is deterministic, a Layout also carries enough
// information to rebuild its session with [Layout.Replay].
package cloud
