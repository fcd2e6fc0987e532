// Package engine validates data against a compiled rule tree and produces a
// result tree of the same shape.
//
// Traversal is driven by the rule, not by the data. A missing object is an
// empty mapping, a missing collection has zero items, a missing field is the
// empty value; so Validate(r, nil) always returns a fully shaped tree with
// required and minItems failures where the rule asks for them.
//
// Every check outcome is a *async.Future[bool]. The engine first schedules all
// checks of the tree, then waits for every future, and only then aggregates
// HasErrors bottom up. Asynchronous checks (lookups against Redis or Postgres)
// may therefore complete in any order without affecting the result, and no
// caller ever sees a partially settled tree.
//
//	eng := engine.New(engine.WithLogger(log), engine.WithCheckTimeout(2*time.Second))
//	res := eng.Validate(ctx, personRule, data)
//	if res.HasErrors {
//	    return res.Err()
//	}
//
// A check that panics, returns an error or outlives the check timeout is
// recorded as failed with the error text in Params["error"]; its siblings are
// unaffected.
package engine
