// Copyright (c) 2025 Grep Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package collector

import (
	"crypto/tls"
	"fmt"
	"net/url"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"
)

// InvalidEndpointError occurs when a collector endpoint can not be
// parsed as a URL.
type InvalidEndpointError struct {
	Endpoint string
	Cause    error
}

// Error implements the [builtin.error] interface.
func (e InvalidEndpointError) Error() string {
	return fmt.Sprintf("invalid collector endpoint %q: %s", e.Endpoint, e.Cause)
}

// Unwrap implements the implicit interface used by [errors.Is] and [errors.As].
func (e InvalidEndpointError) Unwrap() error {
	return e.Cause
}

// NewGRPCConn returns a client connection to the Grep collector at the
// given endpoint URL. TLS is used for "https" endpoints and plaintext
// for everything else. Connecting is lazy; the connection is established
// on first use.
func NewGRPCConn(endpoint string, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, InvalidEndpointError{Endpoint: endpoint, Cause: err}
	}

	creds := insecure.NewCredentials()
	if u.Scheme == "https" {
		creds = credentials.NewTLS(&tls.Config{MinVersion: tls.VersionTLS12})
	}

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(creds)}, opts...)
	return grpc.NewClient(u.Host, opts...)
}
