package scriptexec

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/txscript"
	"github.com/elliotchance/orderedmap/v2"
)

// profilerStage is the recognition state of the marker state machine.
type profilerStage uint8

const (
	// stagePending is the default stage: ordinary instructions are weighed.
	stagePending profilerStage = iota

	// stageWaitingForStartLabel follows a region start marker; the next
	// instruction must push the region label.
	stageWaitingForStartLabel

	// stageWaitingForStartDrop follows a start label; the next instruction
	// must be the drop opcode.
	stageWaitingForStartDrop

	// stageWaitingForEndLabel follows a region end marker.
	stageWaitingForEndLabel

	// stageWaitingForEndDrop follows an end label.
	stageWaitingForEndDrop
)

// regionFrame is one open region on the nesting stack.
type regionFrame struct {
	label       string
	startWeight int
}

// RegionStats summarizes the measurements collected for one region label.
type RegionStats struct {
	// Label is the region label as pushed in the marker triple.
	Label string

	// Count is the number of times the region was entered and closed.
	Count int

	// Total is the summed weight of all occurrences.
	Total int

	// Mean is the arithmetic mean weight per occurrence.
	Mean float64
}

// Profiler measures the per-region weight of an instruction stream.
//
// It consumes the same instructions as the interpreter but never touches
// stack or branch state; profiling is purely a side channel. Regions are
// delimited by marker triples (marker opcode, label push, drop opcode) that
// ordinary interpreters execute as an inert push-then-discard. Regions may
// nest to arbitrary depth and must close in LIFO order with matching
// labels.
//
// Feed instructions with Update or whole scripts with ProfileScript, then
// call Complete to verify the pass ended in a consistent state.
type Profiler struct {
	config       *profilerConfig
	stage        profilerStage
	pendingLabel string
	open         []regionFrame
	weight       int
	samples      *orderedmap.OrderedMap[string, []int]
}

// NewProfiler creates a profiler for one profiling pass.
func NewProfiler(opts ...ProfilerOption) *Profiler {
	config := defaultProfilerConfig()
	for _, opt := range opts {
		opt(config)
	}
	return &Profiler{
		config:  config,
		stage:   stagePending,
		samples: orderedmap.NewOrderedMap[string, []int](),
	}
}

// Update feeds one instruction to the recognition state machine.
//
// Marker opcodes, their label pushes, and their drops contribute no weight;
// instrumentation overhead is waived. Every other instruction is weighed:
// non-push opcodes count 1, pushes count their literal length plus the push
// opcode overhead of the serialized script form.
func (p *Profiler) Update(inst Instruction) error {
	if inst.IsPush() {
		return p.updatePush(inst.Data())
	}
	return p.updateOp(inst.Opcode())
}

func (p *Profiler) updatePush(data []byte) error {
	switch p.stage {
	case stageWaitingForStartLabel:
		p.pendingLabel = string(data)
		p.stage = stageWaitingForStartDrop
		return nil
	case stageWaitingForEndLabel:
		p.pendingLabel = string(data)
		p.stage = stageWaitingForEndDrop
		return nil
	case stageWaitingForStartDrop, stageWaitingForEndDrop:
		return ErrExpectedDrop
	default:
		p.weight += pushWeight(len(data))
		return nil
	}
}

func (p *Profiler) updateOp(opcode byte) error {
	switch p.stage {
	case stagePending:
		switch opcode {
		case p.config.startOpcode:
			p.stage = stageWaitingForStartLabel
		case p.config.endOpcode:
			p.stage = stageWaitingForEndLabel
		default:
			p.weight++
		}
		return nil

	case stageWaitingForStartLabel, stageWaitingForEndLabel:
		return ErrExpectedLabel

	case stageWaitingForStartDrop:
		if opcode != p.config.dropOpcode {
			return ErrExpectedDrop
		}
		p.open = append(p.open, regionFrame{
			label:       p.pendingLabel,
			startWeight: p.weight,
		})
		p.stage = stagePending
		return nil

	case stageWaitingForEndDrop:
		if opcode != p.config.dropOpcode {
			return ErrExpectedDrop
		}
		if len(p.open) == 0 {
			return &UnstartedRegionError{Label: p.pendingLabel}
		}
		top := p.open[len(p.open)-1]
		if top.label != p.pendingLabel {
			return &RegionMismatchError{Open: top.label, Label: p.pendingLabel}
		}
		deltas, _ := p.samples.Get(top.label)
		p.samples.Set(top.label, append(deltas, p.weight-top.startWeight))
		p.open = p.open[:len(p.open)-1]
		p.stage = stagePending
		return nil

	default:
		panic("scriptexec: unknown profiler stage")
	}
}

// ProfileScript feeds every instruction of a raw script through Update,
// decoding with txscript's tokenizer. It does not finalize the pass, so
// several scripts may be fed to one profiler; call Complete when done.
func (p *Profiler) ProfileScript(script []byte) error {
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	for tokenizer.Next() {
		if err := p.Update(tokenizedInstruction(&tokenizer)); err != nil {
			return err
		}
	}
	return tokenizer.Err()
}

// Complete verifies the profiling pass finished in a consistent state:
// no marker triple left unfinished and no region left open.
func (p *Profiler) Complete() error {
	if p.stage != stagePending {
		return ErrUnfinishedMarker
	}
	if len(p.open) > 0 {
		labels := make([]string, len(p.open))
		for i, frame := range p.open {
			labels[i] = frame.label
		}
		return &UnclosedRegionError{Labels: labels}
	}
	return nil
}

// Weight returns the cumulative weight of all ordinary instructions seen so
// far, marker overhead excluded.
func (p *Profiler) Weight() int {
	return p.weight
}

// Stats returns the per-label measurements in first-seen order.
func (p *Profiler) Stats() []RegionStats {
	stats := make([]RegionStats, 0, p.samples.Len())
	for el := p.samples.Front(); el != nil; el = el.Next() {
		total := 0
		for _, delta := range el.Value {
			total += delta
		}
		stats = append(stats, RegionStats{
			Label: el.Key,
			Count: len(el.Value),
			Total: total,
			Mean:  float64(total) / float64(len(el.Value)),
		})
	}
	return stats
}

// WriteStats writes the human-readable report, one line per label in
// first-seen order.
func (p *Profiler) WriteStats(w io.Writer) error {
	for _, st := range p.Stats() {
		_, err := fmt.Fprintf(w, "%s occurs %d times, resulting in total %d weight units, on average %v each.\n",
			st.Label, st.Count, st.Total, st.Mean)
		if err != nil {
			return err
		}
	}
	return nil
}

// RegionStart builds the script fragment opening a profiled region with
// this profiler's configured marker opcodes.
func (p *Profiler) RegionStart(label string) ([]byte, error) {
	return markerScript(p.config.startOpcode, label, p.config.dropOpcode)
}

// RegionEnd builds the script fragment closing a profiled region with this
// profiler's configured marker opcodes.
func (p *Profiler) RegionEnd(label string) ([]byte, error) {
	return markerScript(p.config.endOpcode, label, p.config.dropOpcode)
}

// RegionStart builds the script fragment opening a profiled region using
// the default marker opcodes: [OP_NOP9, push(label), OP_DROP].
func RegionStart(label string) ([]byte, error) {
	return markerScript(DefaultStartOpcode, label, DefaultDropOpcode)
}

// RegionEnd builds the script fragment closing a profiled region using the
// default marker opcodes: [OP_NOP10, push(label), OP_DROP].
func RegionEnd(label string) ([]byte, error) {
	return markerScript(DefaultEndOpcode, label, DefaultDropOpcode)
}

// MustRegionStart is like RegionStart but panics on error. Use only with
// labels known to fit a single push.
func MustRegionStart(label string) []byte {
	script, err := RegionStart(label)
	if err != nil {
		panic(err)
	}
	return script
}

// MustRegionEnd is like RegionEnd but panics on error.
func MustRegionEnd(label string) []byte {
	script, err := RegionEnd(label)
	if err != nil {
		panic(err)
	}
	return script
}

// markerScript builds one marker triple: the marker opcode, the label as a
// plain data push, and the drop opcode.
func markerScript(marker byte, label string, drop byte) ([]byte, error) {
	push, err := labelPush([]byte(label))
	if err != nil {
		return nil, err
	}
	script := make([]byte, 0, len(push)+2)
	script = append(script, marker)
	script = append(script, push...)
	script = append(script, drop)
	return script, nil
}

// labelPush encodes a label as a plain OP_DATA/OP_PUSHDATA push. The small
// integer opcodes are never used: a label must come back out of the decoder
// as the byte push it went in as, and OP_1 through OP_16 decode as plain
// opcodes, not data.
func labelPush(label []byte) ([]byte, error) {
	if len(label) > txscript.MaxScriptElementSize {
		return nil, fmt.Errorf("scriptexec: region label of %d bytes exceeds the %d-byte element limit",
			len(label), txscript.MaxScriptElementSize)
	}

	var push []byte
	switch {
	case len(label) <= 75:
		// Direct push; the opcode byte is the length itself (OP_DATA_1
		// through OP_DATA_75, with the empty label degenerating to OP_0).
		push = append(push, byte(len(label)))
	case len(label) <= 255:
		push = append(push, txscript.OP_PUSHDATA1, byte(len(label)))
	default:
		push = append(push, txscript.OP_PUSHDATA2, byte(len(label)), byte(len(label)>>8))
	}
	return append(push, label...), nil
}

// pushWeight returns the serialized weight of an ordinary byte push: the
// literal length plus the push opcode overhead of the target encoding.
func pushWeight(length int) int {
	switch {
	case length <= 75:
		// Direct push: one opcode from 0x01 to 0x4b.
		return length + 1
	case length <= 255:
		// OP_PUSHDATA1 plus a one-byte length.
		return length + 2
	case length <= 65535:
		// OP_PUSHDATA2 plus a two-byte length.
		return length + 3
	default:
		// OP_PUSHDATA4 plus a four-byte length.
		return length + 5
	}
}
