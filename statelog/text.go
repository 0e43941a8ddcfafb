package statelog

import (
	"fmt"
	"io"
	"text/tabwriter"

	"restsim/shared"
)

// A TextSink writes one human-readable line per snapshot, aligned in
// columns: sequence number, chef, waiter and receptionist status, then one
// column per group.
type TextSink struct {
	wrt    *tabwriter.Writer
	header bool
	groups int
}

func NewTextSink(w io.Writer) *TextSink {
	return &TextSink{
		wrt: tabwriter.NewWriter(w, 4, 4, 2, ' ', 0),
	}
}

func (ts *TextSink) Save(s shared.Snapshot) error {
	if !ts.header {
		ts.header = true
		ts.groups = len(s.Groups)
		fmt.Fprint(ts.wrt, "SEQ\tCHEF\tWAITER\tRECEPT")
		for g := 0; g < ts.groups; g++ {
			fmt.Fprintf(ts.wrt, "\tGRP%d", g)
		}
		fmt.Fprint(ts.wrt, "\n")
	}
	fmt.Fprintf(ts.wrt, "%d\t%v\t%v\t%v", s.Seq, s.Chef, s.Waiter, s.Receptionist)
	for _, gs := range s.Groups {
		fmt.Fprintf(ts.wrt, "\t%v", gs)
	}
	fmt.Fprint(ts.wrt, "\n")
	return ts.wrt.Flush()
}
