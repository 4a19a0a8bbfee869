// Package store 提供 core.Store / core.KeyValueStore 的实现，以及基于它们的投票存储适配器。
//
// 接口定义在 core 包，此包只包含实现：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	votes := store.NewVoteAdapter(kv, store.WithKeyPrefix("powerrank"))
package store
