// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package kernel

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// UseLogger sets the package-wide logger used by the kernel hash checks.
func UseLogger(logger btclog.Logger) {
	log = logger
}
