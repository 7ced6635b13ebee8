package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	bitfield "github.com/TECREA/BitField"
	"github.com/zeebo/errs"
	"github.com/zeebo/mon"
	"github.com/zeebo/mon/monhandler"
	"github.com/zeebo/pcg"
)

var (
	nbits = flag.Uint("bits", 1<<20, "bit capacity of the field")
	ops   = flag.Uint("ops", 1000000, "number of random field writes")
	wait  = flag.Bool("wait", false, "serve mon stats until ctrl+c when done")

	rng pcg.T
)

func stats() {
	defer fmt.Println()

	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()

	mon.Times(func(name string, state *mon.State) bool {
		sum, avg := state.Average()
		fmt.Fprintf(tw, "%s\t%v\t%v\t%v\n",
			name, state.Total(), time.Duration(sum), time.Duration(avg))
		return true
	})
}

func main() {
	flag.Parse()

	defer stats()
	go http.ListenAndServe(":8080", monhandler.Handler{})

	if err := run(); err != nil {
		log.Fatalf("%+v", err)
	}
}

var (
	putThunk mon.Thunk
	getThunk mon.Thunk
)

func run() error {
	fh, err := os.CreateTemp("", "bitfield-check-")
	if err != nil {
		return errs.Wrap(err)
	}
	defer fh.Close()
	defer os.Remove(fh.Name())

	ff, err := bitfield.OpenFile(fh, *nbits)
	if err != nil {
		return errs.Wrap(err)
	}
	defer ff.Close()

	// writes go to slot-aligned offsets so no two shadow entries overlap;
	// later writes to the same slot clobber earlier ones and the shadow
	// keeps only the survivors.
	type write struct {
		index, bits uint
		value       uint32
	}
	shadow := make(map[uint]write)

	for i := uint(0); i < *ops; i++ {
		bits := uint(1 + rng.Uint32n(32))
		index := uint(rng.Uint32n(uint32(ff.Len()))) / 32 * 32
		value := rng.Uint32()
		if bits < 32 {
			value &= 1<<bits - 1
		}

		timer := putThunk.Start()
		err := ff.PutUintn(index, value, bits)
		timer.Stop(&err)
		if err != nil {
			return errs.Wrap(err)
		}

		shadow[index] = write{index: index, bits: bits, value: value}
	}

	fmt.Printf("auditing %d surviving fields\n", len(shadow))
	for _, w := range shadow {
		timer := getThunk.Start()
		got, err := ff.Uintn(w.index, w.bits)
		timer.Stop(&err)
		if err != nil {
			return errs.Wrap(err)
		}
		if got != w.value {
			return errs.New("mismatch at bit %d width %d: got %x want %x",
				w.index, w.bits, got, w.value)
		}
	}

	if err := ff.Sync(); err != nil {
		return errs.Wrap(err)
	}

	if *wait {
		fmt.Println("done. waiting for ctrl+c...")
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT)
		<-ch
		fmt.Println()
	}

	return nil
}
