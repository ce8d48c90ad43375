// Package msg defines the open, extensible message protocol that layouts
// receive through Layout.HandleMessage.
//
// xmonad models messages as an existential SomeMessage wrapping any value
// with a runtime Typeable witness; handlers attempt a type-safe downcast.
// Go has no runtime reflection-free equivalent, so the core message kinds
// the reducer and built-in layouts understand are a closed tagged union,
// and a single Extension kind carries an opaque payload plus its
// reflect.Type for user-defined messages layouts may choose to recognise.
package msg

import "reflect"

// Kind identifies which message a Message carries.
type Kind int

const (
	// KindHide is sent when a workspace stops being visible.
	KindHide Kind = iota
	// KindReleaseResources is sent on shutdown/restart.
	KindReleaseResources
	// KindIncMasterN adjusts the master pane count by Delta.
	KindIncMasterN
	// KindShrink shrinks the master pane.
	KindShrink
	// KindExpand expands the master pane.
	KindExpand
	// KindNextLayout cycles to the next sub-layout (Choose).
	KindNextLayout
	// KindFirstLayout resets to the first sub-layout (Choose).
	KindFirstLayout
	// KindExtension carries a user- or event-defined payload.
	KindExtension
)

// Message is the value passed to Layout.HandleMessage. A layout that does
// not recognise a message should return (nil, nil) to signal "unhandled".
type Message struct {
	Kind  Kind
	Delta int // valid for KindIncMasterN

	ext    any
	extTyp reflect.Type
}

// Hide builds a KindHide message.
func Hide() Message { return Message{Kind: KindHide} }

// ReleaseResources builds a KindReleaseResources message.
func ReleaseResources() Message { return Message{Kind: KindReleaseResources} }

// IncMasterN builds a KindIncMasterN message with the given delta.
func IncMasterN(delta int) Message { return Message{Kind: KindIncMasterN, Delta: delta} }

// Shrink builds a KindShrink message.
func Shrink() Message { return Message{Kind: KindShrink} }

// Expand builds a KindExpand message.
func Expand() Message { return Message{Kind: KindExpand} }

// NextLayout builds a KindNextLayout message.
func NextLayout() Message { return Message{Kind: KindNextLayout} }

// FirstLayout builds a KindFirstLayout message.
func FirstLayout() Message { return Message{Kind: KindFirstLayout} }

// New wraps an arbitrary value (e.g. a raw X event) as an extension
// message. Layouts that want to observe it use As to attempt a downcast.
func New(v any) Message {
	return Message{Kind: KindExtension, ext: v, extTyp: reflect.TypeOf(v)}
}

// As attempts to downcast an extension message's payload into *out, in the
// style of the source's dynamic type witness match. It returns false if m
// does not carry an extension payload of the exact type pointed to by out.
func As(m Message, out any) bool {
	if m.Kind != KindExtension || m.ext == nil {
		return false
	}
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}
	if m.extTyp != rv.Elem().Type() {
		return false
	}
	rv.Elem().Set(reflect.ValueOf(m.ext))
	return true
}
