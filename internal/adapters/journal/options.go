// Package journal defines the activity journal interface and errors.
package journal

// Option applies a configuration option to the RingJournal.
type Option func(*RingJournal)

// WithCapacity sets the maximum number of retained entries.
func WithCapacity(capacity int) Option {
	return func(j *RingJournal) {
		if capacity > 0 {
			j.capacity = capacity
		}
	}
}
