package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK       ItemStatus = "ok"
	StatusRejected ItemStatus = "rejected"
)

// Result is the outcome of validating or scoring one candidate in a batch.
type Result struct {
	id     string
	index  int
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(id string, index int) Result { return Result{id: id, index: index, status: StatusOK} }

// NewRejected creates a result for a candidate dropped from the batch.
func NewRejected(id string, index int, err error) Result {
	return Result{id: id, index: index, status: StatusRejected, err: err}
}

// ID returns the candidate identifier (may be empty when the input had none).
func (r Result) ID() string { return r.id }

// Index returns the candidate's position in the input batch.
func (r Result) Index() int { return r.index }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }
