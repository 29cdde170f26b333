// Package keymap maps global key-down events to POS actions. It is a pure
// lookup — the browser sends the event context, this decides what (if
// anything) should happen, and the tab handler applies it.
package keymap

// Focusable input fields the two always-active shortcuts target.
const (
	FieldProductSearch  = "product-search"
	FieldCustomerSearch = "customer-search"
)

// Shortcut keys. Digits 1..5 switch tabs; F3/F4 move focus and keep working
// even while the cashier is typing somewhere else.
const (
	KeyFocusProductSearch  = "F3"
	KeyFocusCustomerSearch = "F4"
)

// Action is what a key event resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionSwitchTab
	ActionFocusProductSearch
	ActionFocusCustomerSearch
)

func (a Action) String() string {
	switch a {
	case ActionSwitchTab:
		return "switch-tab"
	case ActionFocusProductSearch:
		return "focus-product-search"
	case ActionFocusCustomerSearch:
		return "focus-customer-search"
	default:
		return "none"
	}
}

// KeyEvent is the context of one global key-down.
type KeyEvent struct {
	Key string
	// TypingInInput is true when focus sits inside any text input.
	TypingInInput bool
	// FocusField names the focused field when it is one this package knows.
	FocusField string
}

// Resolved is the outcome; Tab is set only for ActionSwitchTab.
type Resolved struct {
	Action Action
	Tab    int
}

// Resolve decides the action for a key event. The focus shortcuts intercept
// even while typing, except inside their own target field so they never eat
// normal editing keystrokes. Everything else is suppressed while typing.
func Resolve(ev KeyEvent) Resolved {
	switch ev.Key {
	case KeyFocusProductSearch:
		if ev.FocusField == FieldProductSearch {
			return Resolved{Action: ActionNone}
		}
		return Resolved{Action: ActionFocusProductSearch}
	case KeyFocusCustomerSearch:
		if ev.FocusField == FieldCustomerSearch {
			return Resolved{Action: ActionNone}
		}
		return Resolved{Action: ActionFocusCustomerSearch}
	}

	if ev.TypingInInput {
		return Resolved{Action: ActionNone}
	}

	if len(ev.Key) == 1 && ev.Key[0] >= '1' && ev.Key[0] <= '5' {
		return Resolved{Action: ActionSwitchTab, Tab: int(ev.Key[0] - '0')}
	}
	return Resolved{Action: ActionNone}
}

// Bindings is the static shortcut table served to the UI.
func Bindings() map[string]string {
	b := map[string]string{
		KeyFocusProductSearch:  ActionFocusProductSearch.String(),
		KeyFocusCustomerSearch: ActionFocusCustomerSearch.String(),
	}
	for k := byte('1'); k <= '5'; k++ {
		b[string(k)] = ActionSwitchTab.String()
	}
	return b
}
