package testing

import (
	"context"
	"io/ioutil"

	"github.com/go-sif/accum"
	"github.com/go-sif/accum/cluster"
	"github.com/go-sif/accum/logging"
)

// NewQuietContext creates an accum.Context which discards log output below WARN
func NewQuietContext(name string) (*accum.Context, error) {
	return accum.NewContext(&accum.ContextOptions{
		Name:   name,
		Logger: logging.NewLogger(ioutil.Discard, logging.WarnLevel),
	})
}

// LocalRunJob runs a Job against actx's accumulators on a local pool of numWorkers workers
func LocalRunJob(ctx context.Context, actx *accum.Context, job *cluster.Job, opts *cluster.Options, numWorkers int) (result *cluster.Result, err error) {
	// handle panics
	defer func() {
		if r := recover(); r != nil {
			if anErr, ok := r.(error); ok {
				err = anErr
			} else {
				panic(r)
			}
		}
	}()

	if opts == nil {
		opts = &cluster.Options{}
	}
	opts = cluster.CloneOptions(opts)
	opts.NumWorkers = numWorkers
	coordinator := cluster.NewCoordinator(actx, opts)
	return coordinator.Run(ctx, job)
}
