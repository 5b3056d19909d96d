package pdpatch_test

import (
	"fmt"
	"os"

	"github.com/ava12/pdpatch/facts"
	"github.com/ava12/pdpatch/parser"
)

func Example() {
	input := `#N canvas 0 50 450 300 12;
#X obj 30 27 adc~ 1 2 4;
#X obj 30 60 dac~;
#X obj 90 27 notein;
#X text 10 100 gain\; level\, \$1;
`
	p, e := parser.ParseString("example.pd", input)
	if e != nil {
		fmt.Println(e)
		return
	}

	report := facts.Collect(p)
	fmt.Println("adc:", report.AdcChannels, "dac:", report.DacChannels)
	fmt.Println("midi in:", report.MidiIn, "midi out:", report.MidiOut)
	if c := report.Canvas; c != nil {
		fmt.Println("canvas:", c.Pos, c.Size, c.Font)
	}
	_, _ = p.WriteTo(os.Stdout)

	// Output:
	// adc: 4 dac: 2
	// midi in: true midi out: false
	// canvas: [0 50] [450 300] 12
	//      0:   #s(#N) #s(canvas) #f(0) #f(50) #f(450) #f(300) #f(12)
	//      1:   #s(#X) #s(obj) #f(30) #f(27) #s(adc~) #f(1) #f(2) #f(4)
	//      2:   #s(#X) #s(obj) #f(30) #f(60) #s(dac~)
	//      3:   #s(#X) #s(obj) #f(90) #f(27) #s(notein)
	//      4:   #s(#X) #s(text) #f(10) #f(100) #s(gain;) #s(level,) #s($1)
}

func Example_error() {
	_, e := parser.ParseString("broken.pd", "#X obj 10 10 dac~;\n#X obj 10 40 adc~")
	fmt.Println(e)

	// Output:
	// premature end reading pd patch in broken.pd at line 2 col 1
}
