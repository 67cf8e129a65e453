package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/rvjit/asm"
	"github.com/ezrec/rvjit/engine"
	"github.com/ezrec/rvjit/hart"
)

// Environment call numbers, in register a7. The subset of the Linux RV64
// convention the runner understands.
const (
	SYS_WRITE = 64
	SYS_EXIT  = 93
)

func main() {
	var compile string
	var binary string
	var output string
	var save bool
	var memSize int
	var verbose bool
	var singleStep bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&binary, "b", "", "raw guest image to load")
	flag.StringVar(&output, "o", "", "write the assembled image to a file")
	flag.BoolVar(&save, "s", false, "save the image, do not execute")
	flag.IntVar(&memSize, "m", 1<<20, "guest memory size in bytes")
	flag.BoolVar(&verbose, "v", false, "verbose mode")
	flag.BoolVar(&singleStep, "step", false, "log every instruction block")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	h := hart.New()
	mem := hart.NewRAM(0, memSize)

	switch {
	case len(compile) != 0:
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		a := &asm.Assembler{Verbose: verbose}
		for attr, val := range h.Defines() {
			a.Predefine(attr, val)
		}
		prog, err := a.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}

		image := prog.Binary()
		if len(output) != 0 {
			if err := os.WriteFile(output, image, 0o644); err != nil {
				log.Fatalf("%v: %v", output, err)
			}
		}
		if err := mem.WriteBytes(prog.Org, image); err != nil {
			log.Fatalf("%v: image does not fit guest memory: %v", compile, err)
		}
		h.PC = prog.Org

	case len(binary) != 0:
		image, err := os.ReadFile(binary)
		if err != nil {
			log.Fatalf("%v: %v", binary, err)
		}
		if err := mem.WriteBytes(0, image); err != nil {
			log.Fatalf("%v: image does not fit guest memory: %v", binary, err)
		}

	default:
		log.Fatalf("%v: nothing to run; use -c or -b", os.Args[0])
	}

	if save {
		return
	}

	h.SingleStep = singleStep

	exitCode := 0
	eng := engine.New(mem)
	eng.Verbose = verbose
	eng.OnEcall = func(h *hart.Hart) error {
		switch h.X[17] {
		case SYS_WRITE:
			addr, count := h.X[11], h.X[12]
			buf := make([]byte, count)
			for n := range count {
				value, err := mem.Load(addr+n, 1)
				if err != nil {
					return err
				}
				buf[n] = byte(value)
			}
			if _, err := os.Stdout.Write(buf); err != nil {
				return err
			}
			h.X[10] = count
			return nil
		case SYS_EXIT:
			exitCode = int(h.X[10])
			return engine.ErrHalt
		default:
			return engine.ErrBadEcall(h.X[17])
		}
	}

	for {
		trap, err := eng.Run(h)
		if err != nil {
			log.Fatalf("pc=%#x: %v", h.PC, err)
		}
		if trap == nil {
			break
		}
		if trap.Cause == hart.CAUSE_DEBUG {
			log.Printf("pc=%#x: debug trap", h.PC)
			continue
		}
		log.Fatalf("pc=%#x: %v", h.PC, trap)
	}

	os.Exit(exitCode)
}
