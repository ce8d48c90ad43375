package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
)

// ClientInfo is the subset of ICCCM hints the manage pipeline (spec.md
// §4.E) consults to decide whether a newly-mapped window should be
// floated instead of tiled, grounded on alexzeitgeist-cortile's
// store/client.go classification pass.
type ClientInfo struct {
	Class     string
	Instance  string
	Transient bool
	Dialog    bool
	Fixed     bool // WM_NORMAL_HINTS min==max size, matches a fixed-size dialog
}

// Classify reads WM_CLASS, WM_TRANSIENT_FOR and WM_NORMAL_HINTS for w. It
// tolerates a client that sets none of these (Classify never errors; a
// zero-value ClientInfo just means "tile it normally").
func (h *Hints) Classify(w xproto.Window) ClientInfo {
	var info ClientInfo

	if class, err := icccm.WmClassGet(h.xu, w); err == nil && class != nil {
		info.Class = class.Class
		info.Instance = class.Instance
	}

	if transientFor, err := icccm.WmTransientForGet(h.xu, w); err == nil && transientFor != 0 {
		info.Transient = true
	}

	if hints, err := icccm.WmNormalHintsGet(h.xu, w); err == nil && hints != nil {
		if hints.Flags&icccm.SizeHintPMinSize != 0 && hints.Flags&icccm.SizeHintPMaxSize != 0 {
			info.Fixed = hints.MinWidth == hints.MaxWidth && hints.MinHeight == hints.MaxHeight
		}
	}

	info.Dialog = info.Transient || info.Fixed
	return info
}

// WMHintsWantsFocus reports whether the client's WM_HINTS input field asks
// to receive input focus (some splash/tooltip windows set input=false).
func (h *Hints) WMHintsWantsFocus(w xproto.Window) bool {
	hints, err := icccm.WmHintsGet(h.xu, w)
	if err != nil || hints == nil {
		return true
	}
	if hints.Flags&icccm.HintInput == 0 {
		return true
	}
	return hints.Input
}

// Protocols returns the atoms w lists in its WM_PROTOCOLS property (nil if
// it cannot be read); Core.Kill looks for WM_DELETE_WINDOW among them,
// matching the teacher's manager/manager.go takeFocusProp check.
func (h *Hints) Protocols(w xproto.Window) []xproto.Atom {
	atoms, err := icccm.WmProtocolsGet(h.xu, w)
	if err != nil {
		return nil
	}
	out := make([]xproto.Atom, 0, len(atoms))
	for _, name := range atoms {
		atom, err := xproto.InternAtom(h.xu.Conn(), true, uint16(len(name)), name).Reply()
		if err == nil {
			out = append(out, atom.Atom)
		}
	}
	return out
}
