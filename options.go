package reactive

import "math"

// EqualFunc decides whether two values of type T should be treated as
// equal for the purposes of skipping a write or a recomputation. Supplying
// a custom EqualFunc is how a caller opts into structural comparison for
// types where == would be too strict (or too lax) as an equality check.
type EqualFunc[T any] func(a, b T) bool

// Enhancer runs whenever a new value is about to be stored, and may
// transform it before it lands (a common use is deep-freezing or
// defensive-copying a value on the way in). oldValue is the value being
// replaced.
type Enhancer[T any] func(newValue, oldValue T) T

// defaultEqual implements the default comparer: ordinary == equality,
// with float NaNs collapsed so that two NaNs compare equal to each other
// (mirroring how most reactive-signal libraries avoid an infinite
// "changed" loop when a value legitimately is NaN).
func defaultEqual[T comparable](a, b T) bool {
	if a == b {
		return true
	}
	if af, ok := any(a).(float64); ok {
		if bf, ok := any(b).(float64); ok {
			return math.IsNaN(af) && math.IsNaN(bf)
		}
	}
	if af, ok := any(a).(float32); ok {
		if bf, ok := any(b).(float32); ok {
			return math.IsNaN(float64(af)) && math.IsNaN(float64(bf))
		}
	}
	return false
}

// ObservableOption configures an ObservableValue at construction time.
type ObservableOption[T comparable] struct {
	Equal              EqualFunc[T]
	Enhancer           Enhancer[T]
	OnBecomeObserved   func()
	OnBecomeUnobserved func()
}

type observableConfig[T comparable] struct {
	equal              EqualFunc[T]
	enhancer           Enhancer[T]
	onBecomeObserved   func()
	onBecomeUnobserved func()
}

func applyObservableOptions[T comparable](opts []ObservableOption[T]) observableConfig[T] {
	var cfg observableConfig[T]
	for _, o := range opts {
		if o.Equal != nil {
			cfg.equal = o.Equal
		}
		if o.Enhancer != nil {
			cfg.enhancer = o.Enhancer
		}
		if o.OnBecomeObserved != nil {
			cfg.onBecomeObserved = o.OnBecomeObserved
		}
		if o.OnBecomeUnobserved != nil {
			cfg.onBecomeUnobserved = o.OnBecomeUnobserved
		}
	}
	return cfg
}

// ComputedOption configures a Computed at construction time.
type ComputedOption[T comparable] struct {
	Equal  EqualFunc[T]
	Setter func(T)
}

type computedConfig[T comparable] struct {
	equal  EqualFunc[T]
	setter func(T)
}

func applyComputedOptions[T comparable](opts []ComputedOption[T]) computedConfig[T] {
	var cfg computedConfig[T]
	for _, o := range opts {
		if o.Equal != nil {
			cfg.equal = o.Equal
		}
		if o.Setter != nil {
			cfg.setter = o.Setter
		}
	}
	return cfg
}

// ReactionOption configures a Reaction created via Autorun or AutorunContext.
type ReactionOption struct {
	Name    string
	OnPanic func(recovered any, stack []byte)
}

type reactionConfig struct {
	name    string
	onPanic func(recovered any, stack []byte)
}

func applyReactionOptions(opts []ReactionOption) reactionConfig {
	var cfg reactionConfig
	for _, o := range opts {
		if o.Name != "" {
			cfg.name = o.Name
		}
		if o.OnPanic != nil {
			cfg.onPanic = o.OnPanic
		}
	}
	return cfg
}
