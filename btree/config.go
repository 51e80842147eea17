package btree

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

const (
	// DefaultBlockSizeBits gives blocks of up to 32 children.
	DefaultBlockSizeBits = 5
	// MinBlockSizeBits is the smallest supported block size exponent.
	MinBlockSizeBits = 2
	// MaxBlockSizeBits is the largest supported block size exponent.
	MaxBlockSizeBits = 16
	// DefaultReversalCacheSize is the number of reversed nodes a context remembers.
	DefaultReversalCacheSize = 1024
)

// Config configures a Context.
//
// The zero value selects the defaults.
type Config struct {
	// BlockSizeBits is the base-2 exponent of the maximum block size.
	BlockSizeBits int
	// ReversalCacheSize bounds the cache of reversed nodes. The cache holds
	// weak references, it does not keep nodes alive. A negative value
	// disables the cache.
	ReversalCacheSize int
}

func (cfg Config) normalized() Config {
	if cfg.BlockSizeBits == 0 {
		cfg.BlockSizeBits = DefaultBlockSizeBits
	}
	if cfg.ReversalCacheSize == 0 {
		cfg.ReversalCacheSize = DefaultReversalCacheSize
	}
	return cfg
}

func (cfg Config) validate() error {
	cfg = cfg.normalized()
	if cfg.BlockSizeBits < MinBlockSizeBits || cfg.BlockSizeBits > MaxBlockSizeBits {
		return fmt.Errorf("%w: block size bits %d not in [%d,%d]", ErrInvalidConfig,
			cfg.BlockSizeBits, MinBlockSizeBits, MaxBlockSizeBits)
	}
	return nil
}

// Context carries the block size parameters shared by all nodes of a tree,
// together with a cache of reversed nodes.
//
// A Context is safe for concurrent use.
type Context struct {
	bits      int
	maxBlock  int
	minBlock  int
	reversals *lru.ARCCache // nil if disabled
}

// NewContext creates a context for cfg.
func NewContext(cfg Config) (*Context, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	ctx := &Context{
		bits:     cfg.BlockSizeBits,
		maxBlock: 1 << cfg.BlockSizeBits,
	}
	ctx.minBlock = ctx.maxBlock >> 1
	if cfg.ReversalCacheSize > 0 {
		cache, err := lru.NewARC(cfg.ReversalCacheSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		ctx.reversals = cache
	}
	tracer().Debugf("new context with block size %d..%d", ctx.minBlock, ctx.maxBlock)
	return ctx, nil
}

var (
	defaultContext     *Context
	defaultContextOnce sync.Once
)

// DefaultContext returns the context used when clients do not provide one.
// It is created on first use.
func DefaultContext() *Context {
	defaultContextOnce.Do(func() {
		ctx, err := NewContext(Config{})
		assert(err == nil, "default context configuration is invalid")
		defaultContext = ctx
	})
	return defaultContext
}

// BlockSizeBits returns the base-2 exponent of the maximum block size.
func (ctx *Context) BlockSizeBits() int {
	return ctx.bits
}

// MaxBlockSize is the maximum number of children of a block.
func (ctx *Context) MaxBlockSize() int {
	return ctx.maxBlock
}

// MinBlockSize is the minimum number of children of a non-boundary block.
func (ctx *Context) MinBlockSize() int {
	return ctx.minBlock
}

func (ctx *Context) String() string {
	return fmt.Sprintf("Context(bits=%d)", ctx.bits)
}
