package graph

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/relink"
)

// Violation is a detected mismatch between a foreign-key scalar and the
// object reference it mirrors. Violations are data, not errors: the caller
// decides severity.
type Violation struct {
	// Entity and Property identify the owning reference that diverged.
	Entity   string
	Property string
	// Field is the foreign-key scalar property.
	Field string
	// Want is the foreign key implied by the reference: the referenced
	// identity, or the empty sentinel when the reference is absent.
	Want any
	// Got is the actual foreign-key value.
	Got any
}

// String returns the violation in a human-readable form.
func (v Violation) String() string {
	return fmt.Sprintf("%s.%s: foreign key %s = %v, want %v", v.Entity, v.Property, v.Field, v.Got, v.Want)
}

// Validate checks every owner-side reference of n that carries a foreign-key
// scalar: a present reference must be mirrored by its identity, an absent
// one by the empty sentinel. All violations for the instance are collected;
// validation never fails fast on the first mismatch.
func (e *Engine) Validate(n Node) ([]Violation, error) {
	if isNil(n) {
		return nil, relink.NewContractError("Validate", "nil node")
	}
	ent := e.schema.Entity(n.Type())
	if ent == nil {
		return nil, relink.NewNotFoundError(n.Type())
	}
	var violations []Violation
	for _, r := range ent.Relationships {
		if !r.IsOwner() || !r.HasField() {
			continue
		}
		ref := n.Ref(r.Name)
		got := n.Value(r.Field)
		switch {
		case isNil(ref):
			if !isZero(got) {
				violations = append(violations, Violation{
					Entity:   r.Entity,
					Property: r.Name,
					Field:    r.Field,
					Want:     zeroOf(got),
					Got:      got,
				})
			}
		default:
			if want := ref.ID(); !reflect.DeepEqual(want, got) {
				violations = append(violations, Violation{
					Entity:   r.Entity,
					Property: r.Name,
					Field:    r.Field,
					Want:     want,
					Got:      got,
				})
			}
		}
	}
	return violations, nil
}

// ValidateAll validates many instances with bounded parallelism and returns
// the combined violation list in unspecified order. The caller must not
// mutate the instances while validation runs.
func (e *Engine) ValidateAll(ctx context.Context, nodes []Node) ([]Violation, error) {
	errg, ctx := errgroup.WithContext(ctx)
	errg.SetLimit(runtime.GOMAXPROCS(0))
	var (
		mu  sync.Mutex
		all []Violation
	)
	for _, n := range nodes {
		n := n
		errg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			vs, err := e.Validate(n)
			if err != nil {
				return err
			}
			if len(vs) > 0 {
				mu.Lock()
				all = append(all, vs...)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := errg.Wait(); err != nil {
		return nil, err
	}
	return all, nil
}

// isZero reports if a foreign-key value equals its empty sentinel.
func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
