// Package schema holds the built-in parameter layouts of HCI commands,
// events, L2CAP signaling commands and ATT PDUs.
package schema

import (
	"github.com/pkg/errors"
	"github.com/rigado/hcitools/hci/att"
	"github.com/rigado/hcitools/hci/cmd"
	"github.com/rigado/hcitools/hci/evt"
	"github.com/rigado/hcitools/hci/l2cap"
	"github.com/rigado/hcitools/hci/param"
)

// Tables is a read-only schema repository. A nil param.Schema from any
// lookup means the packet kind has no known parameters.
type Tables struct {
	commands        map[cmd.Opcode]param.Schema
	events          map[evt.Code]param.Schema
	leMeta          map[evt.SubCode]param.Schema
	commandComplete map[cmd.Opcode]param.Schema
	signaling       map[l2cap.SignalingCode]param.Schema
	att             map[att.Opcode]param.Schema
}

var defaultTables = &Tables{
	commands:        commandTable,
	events:          eventTable,
	leMeta:          leMetaTable,
	commandComplete: commandCompleteTable,
	signaling:       signalingTable,
	att:             attTable,
}

// Default returns the built-in tables. They are shared and must not be
// modified.
func Default() *Tables { return defaultTables }

var rawReturn = param.Schema{param.Rest("Return_Parameters", hex)}

func (t *Tables) Command(op cmd.Opcode) param.Schema { return t.commands[op] }

func (t *Tables) Event(c evt.Code) param.Schema { return t.events[c] }

func (t *Tables) LEMeta(c evt.SubCode) param.Schema { return t.leMeta[c] }

// CommandComplete returns the return parameter layout for op. Opcodes
// without an entry get a single raw Return_Parameters field.
func (t *Tables) CommandComplete(op cmd.Opcode) param.Schema {
	if s, ok := t.commandComplete[op]; ok {
		return s
	}
	return rawReturn
}

func (t *Tables) Signaling(c l2cap.SignalingCode) param.Schema { return t.signaling[c] }

// ATT looks up op including its flags first, then its method.
func (t *Tables) ATT(op att.Opcode) param.Schema {
	if s, ok := t.att[op]; ok {
		return s
	}
	return t.att[op.Method()]
}

// Validate checks every schema in t for references to later or
// non-numeric fields.
func Validate(t *Tables) error {
	for op, s := range t.commands {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "command %v", op)
		}
	}
	for c, s := range t.events {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "event %v", c)
		}
	}
	for c, s := range t.leMeta {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "le meta %v", c)
		}
	}
	for op, s := range t.commandComplete {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "command complete %v", op)
		}
	}
	for c, s := range t.signaling {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "signaling %v", c)
		}
	}
	for op, s := range t.att {
		if err := param.Validate(s); err != nil {
			return errors.Wrapf(err, "att %v", op)
		}
	}
	return nil
}
