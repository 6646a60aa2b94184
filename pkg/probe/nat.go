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
	"strings"
	"time"

	"github.com/pion/stun/v3"

	"github.com/haniyekshm2003-stack/Tiki2/pkg/logger"
	"github.com/haniyekshm2003-stack/Tiki2/pkg/models"
)

// STUNClassifier infers the NAT class by comparing the XOR-MAPPED-ADDRESS
// reported by multiple STUN servers. Differing mappings across servers
// indicate endpoint-dependent mapping (strict); a mapping equal to the
// local address means no NAT at all.
type STUNClassifier struct {
	Servers []string
	Timeout time.Duration
	Logger  logger.Logger
}

var _ NATClassifier = (*STUNClassifier)(nil)

func NewSTUNClassifier(servers []string, timeout time.Duration, log logger.Logger) *STUNClassifier {
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &STUNClassifier{Servers: servers, Timeout: timeout, Logger: log}
}

func (c *STUNClassifier) Classify(ctx context.Context) models.NATClass {
	if len(c.Servers) == 0 {
		return models.NATUnknown
	}

	mapped := make([]string, 0, len(c.Servers))

	for _, server := range c.Servers {
		addr, err := c.query(ctx, server)
		if err != nil {
			c.Logger.Debug().Err(err).Str("server", server).Msg("STUN query failed")
			continue
		}

		mapped = append(mapped, addr)
	}

	if len(mapped) == 0 {
		return models.NATUnknown
	}

	for _, addr := range mapped[1:] {
		if addr != mapped[0] {
			return models.NATStrict
		}
	}

	if local, err := localIP(); err == nil {
		if host, _, splitErr := net.SplitHostPort(mapped[0]); splitErr == nil && host == local {
			return models.NATOpen
		}
	}

	return models.NATModerate
}

func (c *STUNClassifier) query(ctx context.Context, server string) (string, error) {
	uriStr := strings.TrimSpace(server)
	if !strings.HasPrefix(uriStr, "stun:") {
		uriStr = "stun:" + uriStr
	}

	uri, err := stun.ParseURI(uriStr)
	if err != nil {
		return "", err
	}

	client, err := stun.DialURI(uri, &stun.DialConfig{})
	if err != nil {
		return "", err
	}
	defer func() { _ = client.Close() }()

	msg := stun.MustBuild(stun.TransactionID, stun.BindingRequest)

	result := make(chan stun.XORMappedAddress, 1)
	fail := make(chan error, 1)

	go func() {
		var addr stun.XORMappedAddress

		doErr := client.Do(msg, func(res stun.Event) {
			if res.Error != nil {
				fail <- res.Error
				return
			}

			if getErr := addr.GetFrom(res.Message); getErr != nil {
				fail <- getErr
				return
			}

			result <- addr
		})
		if doErr != nil {
			fail <- doErr
		}
	}()

	queryCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()

	select {
	case addr := <-result:
		return addr.String(), nil
	case err := <-fail:
		return "", err
	case <-queryCtx.Done():
		return "", queryCtx.Err()
	}
}

// localIP finds the preferred outbound interface address without sending
// any traffic.
func localIP() (string, error) {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer func() { _ = conn.Close() }()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok {
		return "", errUnexpectedProto
	}

	return addr.IP.String(), nil
}
