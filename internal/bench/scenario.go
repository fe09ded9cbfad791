package bench

import (
	"strings"

	"github.com/qntx/fifo"
)

// Scenario is a named script with the read values it must produce.
type Scenario struct {
	Name     string
	Capacity int
	Script   string
	Reads    []int
}

// ScenarioA fills a four-slot FIFO, overflows it, then drains it with one
// refill in between.
var ScenarioA = Scenario{
	Name:     "a",
	Capacity: 4,
	Script: `
push 1
push 2
push 3
push 4
push 5  # rejected: full
pop     # 1
push 5
pop
pop
pop
pop
`,
	Reads: []int{1, 2, 3, 4, 5},
}

// ScenarioB exercises a simultaneous write and read on a full one-slot FIFO.
var ScenarioB = Scenario{
	Name:     "b",
	Capacity: 1,
	Script: `
push 7
pushpop 8  # both accepted, count stays 1
pop
`,
	Reads: []int{7, 8},
}

var scenarios = map[string]Scenario{
	ScenarioA.Name: ScenarioA,
	ScenarioB.Name: ScenarioB,
}

// Lookup returns the scenario registered under name.
func Lookup(name string) (Scenario, bool) {
	s, ok := scenarios[strings.ToLower(name)]
	return s, ok
}

// Inputs parses the scenario script.
func (s Scenario) Inputs() ([]fifo.Input[int], error) {
	return ParseScript(strings.NewReader(s.Script))
}
