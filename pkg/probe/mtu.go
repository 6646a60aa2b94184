/*
 * Copyright 2026 the Tiki2 Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package probe

import (
	"context"
	"net"
	"time"
)

const (
	mtuSearchLow  = 500
	mtuSearchHigh = 1500
	mtuProbeAddr  = "8.8.8.8:53"
)

// MTUDiscoverer finds the largest payload size that transmits without
// error by binary search over the 500..1500 range. The result feeds the
// config generator's MTU parameter; zero means discovery failed.
type MTUDiscoverer struct {
	Timeout time.Duration
	// Addr overrides the probe destination, used by tests.
	Addr string
}

func (d *MTUDiscoverer) Discover(ctx context.Context) int {
	addr := d.Addr
	if addr == "" {
		addr = mtuProbeAddr
	}

	timeout := d.Timeout
	if timeout == 0 {
		timeout = 2 * time.Second
	}

	low, high := mtuSearchLow, mtuSearchHigh
	best := 0

	for low <= high {
		if ctx.Err() != nil {
			return best
		}

		mid := (low + high) / 2

		if d.transmits(ctx, addr, mid, timeout) {
			best = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	return best
}

func (d *MTUDiscoverer) transmits(ctx context.Context, addr string, size int, timeout time.Duration) bool {
	probeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var dialer net.Dialer

	conn, err := dialer.DialContext(probeCtx, "tcp", addr)
	if err != nil {
		return false
	}
	defer func() { _ = conn.Close() }()

	_ = conn.SetWriteDeadline(time.Now().Add(timeout))

	_, err = conn.Write(make([]byte, size))

	return err == nil
}
