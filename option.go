package memfile

import "fmt"

// An Option configures a File at construction.
type Option interface {
	applyTo(*File) error
}

// OpenFailureRate sets the probability that Open fails. The File must be
// using a Rates policy.
type OpenFailureRate float64

func (o OpenFailureRate) applyTo(f *File) error {
	r, ok := f.faults.(Rates)
	if !ok {
		return fmt.Errorf("cannot set open failure rate on %T policy", f.faults)
	}
	r.Open = float64(o)
	if err := r.Validate(); err != nil {
		return err
	}
	f.faults = r
	return nil
}

// CloseFailureRate sets the probability that Close fails. The File must be
// using a Rates policy.
type CloseFailureRate float64

func (o CloseFailureRate) applyTo(f *File) error {
	r, ok := f.faults.(Rates)
	if !ok {
		return fmt.Errorf("cannot set close failure rate on %T policy", f.faults)
	}
	r.Close = float64(o)
	if err := r.Validate(); err != nil {
		return err
	}
	f.faults = r
	return nil
}

// WithPolicy replaces the fault policy outright. A nil policy is rejected;
// use Never to disable failures.
func WithPolicy(p FaultPolicy) Option {
	return policyOption{p}
}

type policyOption struct {
	p FaultPolicy
}

func (o policyOption) applyTo(f *File) error {
	if o.p == nil {
		return fmt.Errorf("nil fault policy")
	}
	if r, ok := o.p.(Rates); ok {
		if err := r.Validate(); err != nil {
			return err
		}
	}
	f.faults = o.p
	return nil
}
