// Package di provides a small dependency injection container for wiring
// the daemon. Components register lazy constructors under string keys
// and are built on first resolve; resolution is type-safe through the
// generic helpers.
//
// # Registration
//
//	c.Register(di.BackendClient, func() (any, error) {
//	    return backend.NewClient(cfg.Backend, log), nil
//	})
//
// # Resolution
//
//	client := di.MustResolve[backend.Querier](c, di.BackendClient)
package di
