package translate

import (
	"github.com/ezrec/rvjit/decode"
	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
)

// PageSize bounds a block: translation never crosses a page, so changing a
// page's contents invalidates only the blocks that started in it.
const PageSize = 4096

// maxInsns caps a block even inside one page.
const maxInsns = 512

// Translate builds the IR block starting at the hart's current PC. The hart
// supplies only translation-time state (flags, privilege, breakpoints,
// single-step); register contents are not consulted.
func Translate(h *hart.Hart, mem hart.Memory, pc uint64) *ir.Block {
	ctx := &Context{
		B:          ir.NewBlock(pc),
		PCFirst:    pc,
		PCNext:     pc,
		Frm:        -1,
		MemIdx:     h.MemIdx,
		Flags:      h.Flags,
		SingleStep: h.SingleStep,
	}

	limit := maxInsns
	if ctx.SingleStep {
		limit = 1
	}

	for n := 0; ; n++ {
		ctx.B.InsnStart(ctx.PCNext)

		if h.HasBreakpoint(ctx.PCNext) {
			// The breakpointed address must be covered by the block
			// so the cache invalidates it with this page.
			ctx.B.MovI(ir.PC, ctx.PCNext)
			ctx.B.Call(ir.HELPER_RAISE, ir.NoValue,
				ctx.B.ConstI(uint64(hart.CAUSE_DEBUG)))
			ctx.PCSucc = ctx.PCNext + 4
			ctx.Status = STATUS_NO_RETURN
		} else {
			word, err := mem.Fetch32(ctx.PCNext)
			if err != nil {
				ctx.PCSucc = ctx.PCNext + 4
				ctx.B.Mov(ir.BadAddr, ctx.B.ConstI(ctx.PCNext))
				ctx.raise(hart.CAUSE_FETCH_ACCESS)
			} else {
				translateOne(ctx, word)
			}
		}

		ctx.PCNext = ctx.PCSucc
		if ctx.Status != STATUS_NEXT {
			break
		}
		if n+1 >= limit || ctx.PCNext&^(PageSize-1) != pc&^(PageSize-1) {
			ctx.Status = STATUS_TOO_MANY
			break
		}
	}

	if ctx.Status == STATUS_TOO_MANY {
		ctx.gotoTB(ctx.PCNext)
	}

	ctx.B.End = ctx.PCNext
	return ctx.B
}

// translateOne decodes and dispatches a single instruction, advancing PCSucc.
func translateOne(ctx *Context, word uint32) {
	in, err := decode.Decode(word)
	if err != nil {
		ctx.PCSucc = ctx.PCNext + decode.InsnLen(word)
		ctx.raise(hart.CAUSE_ILLEGAL_INSN)
		return
	}
	ctx.PCSucc = ctx.PCNext + in.Len

	gen, ok := handlers[in.Kind]
	if !ok {
		ctx.raise(hart.CAUSE_ILLEGAL_INSN)
		return
	}
	if in.Len == 2 && !ctx.Flags.Has(hart.FLAG_RVC) {
		ctx.raise(hart.CAUSE_ILLEGAL_INSN)
		return
	}
	if !ctx.Flags.Has(gen.need) {
		ctx.raise(hart.CAUSE_ILLEGAL_INSN)
		return
	}
	gen.fn(ctx, in)
}
