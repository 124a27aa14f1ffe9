// Package producer generates a continuous stream of row-level changes for change-data-capture
// consumers to observe.
//
// The package defines the record generators, the operation executor and the scheduler loop.
// Storage is reached through the Store and UnitOfWork interfaces, so the core stays free of
// database drivers; see the sqlengine package for the PostgreSQL and Oracle implementations.
//
// Each cycle of the loop draws one of three operations with fixed relative weights:
//   - insert a user (2)
//   - update a random user's status (1)
//   - insert an activity for a random user (5)
//
// Applied operations are committed and logged with a running sequence number. Operations whose
// precondition is unmet (no user exists yet) or that hit a uniqueness violation are no-ops; any
// other failure rolls the unit of work back and the loop carries on.
//
// Typical usage:
//
//	store, err := sqlengine.Connect(ctx, cfg)
//	if err != nil {
//		// fatal startup error
//	}
//
//	generator, err := producer.NewGenerator(
//		store,
//		producer.WithInterval(3*time.Second),
//		producer.WithLogger(logger),
//	)
//
//	summary, err := generator.Run(ctx) // returns when ctx is canceled
package producer
