// Package query caches read-only backend calls.
//
// Results are JSON encoded into a cache.Store under a namespaced key. Each namespace
// has a generation counter; Invalidate bumps it so every key of the namespace
// misses on the next read. Concurrent misses on the same key share one backend call.
//
//	posts, err := query.Fetch(ctx, q, "posts", query.Key("list", page, search),
//	    func(ctx context.Context) (apiclient.Page[services.Post], error) {
//	        return svc.Posts.List(ctx, services.ListParams{Page: page, Search: search})
//	    })
//
//	// after a mutation
//	_ = q.Invalidate(ctx, "posts")
//
// Only cache responses that do not depend on the caller's token: keys are shared
// between visitors.
//
// # Background refetch
//
// Refetch registers a cron job that reloads a key ahead of expiry, so hot pages
// keep serving warm data:
//
//	_, err := query.Refetch(q, "@every 1m", "categories", "all", loadCategories)
//	err = app.Run(addr,
//	    blogfront.StartupHook(q.StartFunc()),
//	    blogfront.ShutdownHook(q.Shutdown()),
//	)
package query
