// Package sse streams published SLI samples to admin clients over
// Server-Sent Events.
//
// The Hub fans each sample out to every connected client, optionally
// filtered to a single SLI. It plugs into the pipelines as their
// sample listener and into the admin server as a Gin handler:
//
//	hub := sse.NewHub(log)
//	go hub.Run()
//	engine.GET("/slis/stream", sse.Handler(hub))
package sse
