// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package modifier

import "github.com/btcsuite/btclog"

// log is the package-level logger, disabled until a caller installs one via
// UseLogger.
var log = btclog.Disabled

// UseLogger sets the package-wide logger used by ComputeNextStakeModifier
// and its helpers.
func UseLogger(logger btclog.Logger) {
	log = logger
}
