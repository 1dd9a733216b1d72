package postgres

import "errors"

// ErrConflict is returned when a compare-and-swap update observed a stale
// lock_version. Two concurrent read-modify-write cycles on the same user's
// state document resolve as one winner and one conflict; callers retry by
// re-reading.
var ErrConflict = errors.New("state conflict: concurrent update detected")
