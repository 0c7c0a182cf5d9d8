// Package split holds the original split configuration type.
//
// Deprecated: use package splitter.
package split

import "github.com/jrhy/versioned/splitter"

// Option configures how a split is performed.
//
// Deprecated: use splitter.Option.
type Option = splitter.Option
