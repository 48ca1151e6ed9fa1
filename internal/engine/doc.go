// Package engine implements the transaction-processing core.
//
// The engine:
//   - Partitions client accounts across shard workers (client id mod shard
//     count); each shard is the sole mutator of its accounts
//   - Preserves per-client event order end-to-end; events for different
//     clients may be applied concurrently
//   - Aborts the whole run on the first invalid-input or overflow condition
//     and produces no balance snapshot for an aborted run
//   - Silently absorbs partner errors (unknown tx references, insufficient
//     funds, mutations against locked accounts), counting them in Stats
package engine
