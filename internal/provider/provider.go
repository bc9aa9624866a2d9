// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package provider queries the public nature APIs and normalizes their
// divergent schemas into the shared Feature model. Each provider client
// calls exactly one endpoint; the category resolvers compose clients
// into ordered fallback chains with short-circuit on the first usable
// result.
package provider

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/richmalloy/naturedash/pkg/types"
)

// Attempt error taxonomy. All three are locally recovered inside a
// fallback chain by advancing to the next client; only exhaustion of
// the chain surfaces, and then only as a no-data outcome, never as an
// error to the caller.
var (
	// ErrUnavailable marks a network failure or non-2xx status.
	ErrUnavailable = errors.New("provider unavailable")

	// ErrEmpty marks a valid response with zero usable records.
	ErrEmpty = errors.New("provider returned no usable records")

	// ErrMalformed marks a response that did not match the expected schema.
	ErrMalformed = errors.New("malformed provider response")
)

// Client fetches raw data for one category from one endpoint and
// normalizes it. Implementations return ErrEmpty (wrapped) when the call
// succeeded but yielded nothing usable.
type Client interface {
	Name() string
	Fetch(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig) ([]types.Feature, error)
}

// Outcome is the result of running one category's fallback chain.
type Outcome struct {
	Category types.Category
	Features []types.Feature
	Status   types.CategoryStatus

	// Source is the name of the client that produced the features,
	// empty when the chain was exhausted.
	Source string
}

// Chain is an ordered list of clients for one category, tried in
// sequence until one yields at least one usable record.
type Chain struct {
	Category types.Category
	Clients  []Client

	// Limit caps the features kept from a successful attempt. Zero
	// means no cap.
	Limit int

	// EmptyMessage is the category-specific line rendered when the
	// chain is exhausted with no data.
	EmptyMessage string
}

// Run executes the fallback chain. Errors and empty results advance to
// the next client; the first client with usable records short-circuits
// the rest. Exhaustion is contained: Run never returns an error, it
// reports a not-found status. Attempt failures are written to w as
// warnings.
func (c Chain) Run(ctx context.Context, center types.Coordinate, cfg types.ProviderConfig, w io.Writer) Outcome {
	for _, client := range c.Clients {
		features, err := client.Fetch(ctx, center, cfg)
		if err != nil {
			if !errors.Is(err, ErrEmpty) {
				fmt.Fprintf(w, "warning: %s %s failed: %v\n", c.Category, client.Name(), err)
			}
			continue
		}
		if len(features) == 0 {
			continue
		}
		if c.Limit > 0 && len(features) > c.Limit {
			features = features[:c.Limit]
		}
		return Outcome{
			Category: c.Category,
			Features: features,
			Status:   types.CategoryStatus{Found: true, Count: len(features)},
			Source:   client.Name(),
		}
	}

	return Outcome{
		Category: c.Category,
		Status:   types.CategoryStatus{Found: false, Count: 0},
	}
}
