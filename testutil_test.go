// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathrules

package gitattr

import "k8s.io/klog/v2"

// testLogger returns a discard-everything logger for tests that need
// to pass one but don't assert on log output.
func testLogger() klog.Logger {
	return klog.Background()
}
