package layout

import (
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wippyai/record-layout/abi"
)

// Calculator memoises Compute per distinct (fields, profile) pair. It is
// safe for concurrent use; concurrent requests for the same input share one
// computation. Returned layouts are copies owned by the caller.
type Calculator struct {
	mu    sync.RWMutex
	cache map[string]*Layout
	group singleflight.Group
	limit int
}

// NewCalculator returns a Calculator keeping at most limit layouts; zero
// means unbounded.
func NewCalculator(limit int) *Calculator {
	return &Calculator{
		cache: make(map[string]*Layout),
		limit: limit,
	}
}

// Calculate returns the layout of fields under p, computing it at most once
// per distinct input. Errors are not cached.
func (c *Calculator) Calculate(fields []FieldSpec, p abi.Profile) (*Layout, error) {
	key := Fingerprint(fields, p)

	c.mu.RLock()
	cached, ok := c.cache[key]
	c.mu.RUnlock()
	if ok {
		return cached.Clone(), nil
	}

	v, err, shared := c.group.Do(key, func() (any, error) {
		l, err := Compute(fields, p)
		if err != nil {
			return nil, err
		}
		c.store(key, l)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		Logger().Debug("shared layout computation", zap.String("profile", p.Name))
	}
	return v.(*Layout).Clone(), nil
}

func (c *Calculator) store(key string, l *Layout) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 && len(c.cache) >= c.limit {
		// Drop an arbitrary entry; the inputs are cheap to recompute.
		for k := range c.cache {
			delete(c.cache, k)
			break
		}
	}
	c.cache[key] = l
}

// Len returns the number of cached layouts.
func (c *Calculator) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Fingerprint encodes everything Compute reads from its inputs. The profile
// name is left out: presets with identical flags share entries.
func Fingerprint(fields []FieldSpec, p abi.Profile) string {
	var b strings.Builder
	b.Grow(16 + 24*len(fields))

	b.WriteString(strconv.FormatBool(p.Packed))
	b.WriteByte(',')
	b.WriteString(strconv.FormatBool(p.AllowStraddle))
	b.WriteByte(',')
	b.WriteString(p.BitOrder.String())
	b.WriteByte(',')
	b.WriteString(strconv.FormatBool(p.AllowOverlap))

	for _, f := range fields {
		b.WriteByte('|')
		b.WriteString(strconv.Quote(f.Name))
		b.WriteByte(':')
		b.WriteString(strconv.Quote(f.Type.Name))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.Type.SizeBits))
		b.WriteByte('/')
		b.WriteString(strconv.Itoa(f.Type.AlignBits))
		if w, ok := f.Width(); ok {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(w))
		}
	}
	return b.String()
}
