package app

import "github.com/okian/mentorboard/pkg/metrics"

// run executes the snapshot -> apply -> commit protocol shared by mutating
// operations that touch cached state before the store confirms. When commit
// fails, restore puts the cache back exactly as captured, so a failed write
// can never leave partial optimistic state behind.
func run[S any](op string, snapshot func() S, apply func(), commit func() error, restore func(S)) error {
	snap := snapshot()
	apply()
	if err := commit(); err != nil {
		restore(snap)
		metrics.RecordRollback(op)
		return err
	}
	return nil
}
