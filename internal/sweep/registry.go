package sweep

import "context"

// Job is one maintenance task the sweep worker runs each cycle.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Registry holds the jobs a sweep cycle will run, keyed by name so the
// same job cannot be registered twice. Registration order is preserved.
type Registry struct {
	jobs  []Job
	names map[string]struct{}
}

// NewRegistry builds a registry preloaded with the provided jobs. Nil
// jobs and duplicate names are dropped.
func NewRegistry(jobs ...Job) *Registry {
	registry := &Registry{names: make(map[string]struct{})}
	for _, job := range jobs {
		registry.Register(job)
	}
	return registry
}

// Register adds a job unless one with the same name is already present.
func (r *Registry) Register(job Job) {
	if job == nil {
		return
	}
	if r.names == nil {
		r.names = make(map[string]struct{})
	}
	if _, dup := r.names[job.Name()]; dup {
		return
	}
	r.names[job.Name()] = struct{}{}
	r.jobs = append(r.jobs, job)
}

// Jobs returns the registered jobs in registration order.
func (r *Registry) Jobs() []Job {
	jobs := make([]Job, len(r.jobs))
	copy(jobs, r.jobs)
	return jobs
}
