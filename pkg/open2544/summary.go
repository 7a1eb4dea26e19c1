package open2544

import (
	"golang.org/x/text/message"
)

// RunSummary counts what a configuration pass produced.
type RunSummary struct {
	TxPorts     int
	Streams     int
	HeaderBytes int
	Modifiers   int
}

func (o *Open2544) PrintSummary(s RunSummary) {
	p := message.NewPrinter(message.MatchLanguage("en"))
	p.Printf("%d tx port(s), %d stream(s), %d header bytes, %d hardware modifier(s)\n",
		s.TxPorts, s.Streams, s.HeaderBytes, s.Modifiers)
}
