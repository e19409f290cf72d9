package witrecord

import (
	"go.bytecodealliance.org/wit"

	"github.com/wippyai/record-layout/abi"
)

// info is the Canonical ABI storage of a WIT type, in bytes.
type info struct {
	size, align uint32
}

// canon computes Canonical ABI sizes with a per-typedef cache.
type canon struct {
	cache map[*wit.TypeDef]info
}

func newCanon() *canon {
	return &canon{cache: make(map[*wit.TypeDef]info)}
}

func (c *canon) of(t wit.Type) (info, bool) {
	switch typ := t.(type) {
	case wit.U8, wit.S8, wit.Bool:
		return info{1, 1}, true
	case wit.U16, wit.S16:
		return info{2, 2}, true
	case wit.U32, wit.S32, wit.F32, wit.Char:
		return info{4, 4}, true
	case wit.U64, wit.S64, wit.F64:
		return info{8, 8}, true
	case wit.String:
		return info{8, 4}, true // [ptr: u32, len: u32]
	case *wit.TypeDef:
		return c.typeDef(typ)
	}
	return info{}, false
}

func (c *canon) typeDef(t *wit.TypeDef) (info, bool) {
	if cached, ok := c.cache[t]; ok {
		return cached, true
	}

	var (
		in info
		ok = true
	)
	switch kind := t.Kind.(type) {
	case *wit.Record:
		types := make([]wit.Type, len(kind.Fields))
		for i, f := range kind.Fields {
			types[i] = f.Type
		}
		in, ok = c.sequence(types)
	case *wit.Tuple:
		in, ok = c.sequence(kind.Types)
	case *wit.Variant:
		in, ok = c.variant(kind)
	case *wit.Enum:
		size := discriminantSize(len(kind.Cases))
		in = info{size, size}
	case *wit.List:
		in = info{8, 4}
	case *wit.Option:
		in, ok = c.tagged(kind.Type)
	case *wit.Result:
		in, ok = c.result(kind)
	case *wit.Flags:
		in = flagsInfo(len(kind.Flags))
	case wit.Type:
		in, ok = c.of(kind)
	default:
		ok = false
	}
	if !ok {
		return info{}, false
	}

	c.cache[t] = in
	return in, true
}

func (c *canon) sequence(types []wit.Type) (info, bool) {
	maxAlign := uint32(1)
	offset := uint32(0)
	for _, t := range types {
		in, ok := c.of(t)
		if !ok {
			return info{}, false
		}
		offset = alignTo(offset, in.align)
		if in.align > maxAlign {
			maxAlign = in.align
		}
		offset += in.size
	}
	return info{alignTo(offset, maxAlign), maxAlign}, true
}

func (c *canon) variant(v *wit.Variant) (info, bool) {
	if len(v.Cases) == 0 {
		return info{0, 1}, true
	}
	disc := discriminantSize(len(v.Cases))
	maxAlign, maxSize := disc, uint32(0)
	for _, cs := range v.Cases {
		if cs.Type == nil {
			continue
		}
		in, ok := c.of(cs.Type)
		if !ok {
			return info{}, false
		}
		maxAlign = max(maxAlign, in.align)
		maxSize = max(maxSize, in.size)
	}
	payload := alignTo(disc, maxAlign)
	return info{alignTo(payload+maxSize, maxAlign), maxAlign}, true
}

// tagged is a one-byte discriminant followed by an optional payload.
func (c *canon) tagged(t wit.Type) (info, bool) {
	in, ok := c.of(t)
	if !ok {
		return info{}, false
	}
	align := max(in.align, 1)
	payload := alignTo(1, align)
	return info{alignTo(payload+in.size, align), align}, true
}

func (c *canon) result(r *wit.Result) (info, bool) {
	var okInfo, errInfo info
	okInfo.align, errInfo.align = 1, 1
	if r.OK != nil {
		in, ok := c.of(r.OK)
		if !ok {
			return info{}, false
		}
		okInfo = in
	}
	if r.Err != nil {
		in, ok := c.of(r.Err)
		if !ok {
			return info{}, false
		}
		errInfo = in
	}
	align := max(okInfo.align, errInfo.align)
	payload := alignTo(1, align)
	return info{alignTo(payload+max(okInfo.size, errInfo.size), align), align}, true
}

// flagsInfo: one integer wide enough for all flags, or u32 words beyond 64.
func flagsInfo(n int) info {
	switch {
	case n == 0:
		return info{0, 1}
	case n <= 8:
		return info{1, 1}
	case n <= 16:
		return info{2, 2}
	case n <= 32:
		return info{4, 4}
	case n <= 64:
		return info{8, 8}
	}
	words := uint32((n + 31) / 32)
	return info{words * 4, 4}
}

func discriminantSize(cases int) uint32 {
	switch {
	case cases <= 1<<8:
		return 1
	case cases <= 1<<16:
		return 2
	}
	return 4
}

func alignTo(offset, align uint32) uint32 {
	return uint32(abi.AlignTo(int(offset), int(align)))
}
