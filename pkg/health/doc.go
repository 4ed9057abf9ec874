// Package health serves liveness and readiness probes.
//
// Readiness runs every registered check concurrently under one timeout. The
// front end registers the backend API reachability and, when configured, Redis.
//
//	checks := health.Checks{
//		"backend": health.HTTPCheck(nil, cfg.APIURL+"/api/posts?limit=1"),
//		"redis":   redis.Healthcheck(client),
//	}
//	r.Get("/health/ready", health.ReadinessHandler(checks, health.WithTimeout(2*time.Second)))
//
// Responses are plain text unless the client asks for JSON with ?format=json or
// an Accept header.
package health
