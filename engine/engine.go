package engine

import (
	"errors"
	"log"

	"github.com/ezrec/rvjit/hart"
	"github.com/ezrec/rvjit/ir"
	"github.com/ezrec/rvjit/translate"
)

// Engine caches translated blocks and executes them.
type Engine struct {
	Mem hart.Memory

	// OnEcall handles environment calls. Execution resumes after the
	// ecall unless the handler returns an error; ErrHalt stops Run
	// cleanly.
	OnEcall func(h *hart.Hart) error

	Verbose bool

	blocks map[translate.Key]*ir.Block
}

// New creates an engine over the given guest memory.
func New(mem hart.Memory) *Engine {
	return &Engine{
		Mem:    mem,
		blocks: map[translate.Key]*ir.Block{},
	}
}

// Block returns the translation for the hart's current state, translating on
// a cache miss.
func (e *Engine) Block(h *hart.Hart) *ir.Block {
	key := translate.KeyFor(h)
	b := e.blocks[key]
	if b == nil {
		b = translate.Translate(h, e.Mem, h.PC)
		e.blocks[key] = b
		if e.Verbose {
			log.Printf("rvjit: translate:\n%v", b)
		}
	}
	return b
}

// Flush drops every cached block, forcing retranslation. Required after
// guest code is modified or breakpoints change.
func (e *Engine) Flush() {
	clear(e.blocks)
}

// Step executes one block. A nil trap means the block left through normal
// control flow and the hart's PC names the next instruction.
func (e *Engine) Step(h *hart.Hart) (*hart.Trap, error) {
	return e.exec(e.Block(h), h)
}

// Run executes blocks until a trap the engine cannot absorb. Environment
// calls go to OnEcall; anything else is returned to the caller with the
// hart's state synced to the trapping instruction.
func (e *Engine) Run(h *hart.Hart) (*hart.Trap, error) {
	for {
		trap, err := e.Step(h)
		if err != nil {
			return trap, err
		}
		if trap == nil {
			continue
		}

		if trap.Cause == hart.CAUSE_ECALL_U && e.OnEcall != nil {
			if err := e.OnEcall(h); err != nil {
				if errors.Is(err, ErrHalt) {
					return nil, nil
				}
				return nil, err
			}
			h.PC += 4
			continue
		}

		if e.Verbose {
			log.Printf("rvjit: trap at %#x: %v", h.PC, trap)
		}
		return trap, nil
	}
}
