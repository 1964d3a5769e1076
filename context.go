package accum

import (
	"os"

	"github.com/go-sif/accum/codec"
	"github.com/go-sif/accum/logging"
	"github.com/go-sif/accum/params"
	uuid "github.com/gofrs/uuid"
	"github.com/sirupsen/logrus"
)

// ContextOptions are options for a Context
type ContextOptions struct {
	Name     string         // human-readable name of this Context, for diagnostics
	LogLevel string         // log level for the default Logger (defaults to $ACCUM_LOG_LEVEL, then INFO)
	Logger   *logrus.Logger // Logger to use instead of the default stderr Logger
}

// CloneContextOptions makes a copy of a ContextOptions
func CloneContextOptions(opts *ContextOptions) *ContextOptions {
	return &ContextOptions{
		Name:     opts.Name,
		LogLevel: opts.LogLevel,
		Logger:   opts.Logger,
	}
}

func ensureDefaultContextOptionsValues(opts *ContextOptions) {
	if len(opts.Name) == 0 {
		opts.Name = "accum"
	}
	if opts.Logger == nil {
		level, ok := logging.ParseLevel(opts.LogLevel)
		if !ok {
			level = logging.LevelFromEnv(logging.InfoLevel)
		}
		opts.Logger = logging.NewLogger(os.Stderr, level)
	}
}

// A Context is the driver side of a set of accumulators: it holds the Owner capability, and the
// Registry of every Accumulable created through it. Workers should only ever be handed Local buffers.
type Context struct {
	id       uuid.UUID
	opts     *ContextOptions
	owner    *Owner
	registry *Registry
	log      *logrus.Entry
}

// NewContext creates a Context with a fresh Owner and an empty Registry
func NewContext(opts *ContextOptions) (*Context, error) {
	if opts == nil {
		opts = &ContextOptions{}
	} else {
		opts = CloneContextOptions(opts)
	}
	ensureDefaultContextOptionsValues(opts)
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	owner, err := NewOwner()
	if err != nil {
		return nil, err
	}
	c := &Context{
		id:       id,
		opts:     opts,
		owner:    owner,
		registry: NewRegistry(owner),
		log:      opts.Logger.WithFields(logrus.Fields{"context": opts.Name, "context_id": id.String()}),
	}
	c.log.Debug("Context created")
	return c, nil
}

// ID returns the unique identifier of this Context
func (c *Context) ID() string {
	return c.id.String()
}

// Name returns the human-readable name of this Context
func (c *Context) Name() string {
	return c.opts.Name
}

// Owner returns the capability required to read or overwrite accumulator values
func (c *Context) Owner() *Owner {
	return c.owner
}

// Registry returns the Registry of all Accumulables created through this Context
func (c *Context) Registry() *Registry {
	return c.registry
}

// Logger returns the logger of this Context
func (c *Context) Logger() *logrus.Entry {
	return c.log
}

// NewAccumulable creates an Accumulable with the given initial value and reduction
func NewAccumulable[R, T any](c *Context, initial R, param AccumulableParam[R, T], name string, opts ...Option[R]) *Accumulable[R, T] {
	a := Register(c.registry, param, initial, name, opts...)
	c.log.WithField("accumulator", a.String()).Debug("Registered accumulable")
	return a
}

// NewAccumulator creates an Accumulator with the given initial value and reduction
func NewAccumulator[T any](c *Context, initial T, param AccumulatorParam[T], name string, opts ...Option[T]) *Accumulator[T] {
	a := RegisterAccumulator(c.registry, param, initial, name, opts...)
	c.log.WithField("accumulator", a.String()).Debug("Registered accumulator")
	return a
}

// IntAccumulator creates an integer-summing Accumulator, serializable as 8 little-endian bytes
func IntAccumulator(c *Context, initial int64, name string) *Accumulator[int64] {
	return NewAccumulator[int64](c, initial, params.Int(), name, WithCodec[int64](codec.Int64()))
}

// FloatAccumulator creates a float-summing Accumulator, serializable as 8 little-endian bytes
func FloatAccumulator(c *Context, initial float64, name string) *Accumulator[float64] {
	return NewAccumulator[float64](c, initial, params.Float(), name, WithCodec[float64](codec.Float64()))
}

// SnapshotAll returns the global value of every Accumulable in this Context, keyed by id
func (c *Context) SnapshotAll() (map[int64]interface{}, error) {
	snapshot, err := c.registry.SnapshotAll(c.owner)
	if err != nil {
		return nil, err
	}
	c.log.WithField("accumulators", len(snapshot)).Debug("Snapshotted accumulators")
	return snapshot, nil
}

// ResetAll returns every Accumulable in this Context to its zero value
func (c *Context) ResetAll() error {
	if err := c.registry.ResetAll(c.owner); err != nil {
		return err
	}
	c.log.WithField("accumulators", c.registry.Len()).Debug("Reset accumulators")
	return nil
}

// FinalizeAll marks every Accumulable in this Context as Finalized, at the end of a job
func (c *Context) FinalizeAll() error {
	return c.registry.FinalizeAll(c.owner)
}

// Close destroys every Accumulable in this Context
func (c *Context) Close() error {
	for _, id := range c.registry.IDs() {
		if err := c.registry.Unregister(c.owner, id); err != nil {
			return err
		}
	}
	c.log.Debug("Context closed")
	return nil
}
