package logic

// ScreenKind names a navigation state.
type ScreenKind string

const (
	ScreenHome     ScreenKind = "HOME"
	ScreenMenu     ScreenKind = "MENU"
	ScreenSettings ScreenKind = "SETTINGS"
	ScreenStatus   ScreenKind = "STATUS"
	ScreenExit     ScreenKind = "EXIT"
)

// UI is the navigation state. The concrete types are Home, Menu, Settings,
// Status and Exit; only Menu carries a selection.
type UI interface {
	Kind() ScreenKind
	ui()
}

// Home is the face screen.
type Home struct{}

// Menu lists the sub-screens with one of them selected.
type Menu struct {
	Selected MenuOption
}

// Settings is the settings sub-screen.
type Settings struct{}

// Status is the weather and time sub-screen.
type Status struct{}

// Exit is the exit sub-screen.
type Exit struct{}

func (Home) Kind() ScreenKind     { return ScreenHome }
func (Menu) Kind() ScreenKind     { return ScreenMenu }
func (Settings) Kind() ScreenKind { return ScreenSettings }
func (Status) Kind() ScreenKind   { return ScreenStatus }
func (Exit) Kind() ScreenKind     { return ScreenExit }

func (Home) ui()     {}
func (Menu) ui()     {}
func (Settings) ui() {}
func (Status) ui()   {}
func (Exit) ui()     {}

// MenuOption is one of the three menu entries.
type MenuOption uint8

const (
	OptionSettings MenuOption = iota
	OptionStatus
	OptionExit

	menuOptions = 3
)

// MenuOptions lists the entries in display order.
var MenuOptions = [menuOptions]MenuOption{OptionSettings, OptionStatus, OptionExit}

// Next returns the following entry, wrapping after the last one.
func (o MenuOption) Next() MenuOption {
	return (o + 1) % menuOptions
}

// Index returns the position of the entry in the menu.
func (o MenuOption) Index() int {
	return int(o % menuOptions)
}

func (o MenuOption) String() string {
	switch o % menuOptions {
	case OptionSettings:
		return "Settings"
	case OptionStatus:
		return "Status"
	default:
		return "Exit"
	}
}

// target returns the sub-screen the entry opens.
func (o MenuOption) target() UI {
	switch o % menuOptions {
	case OptionSettings:
		return Settings{}
	case OptionStatus:
		return Status{}
	default:
		return Exit{}
	}
}

// OnLongPress returns the state after a long press: the face opens the menu,
// the menu opens the selected entry and any sub-screen returns to the face.
func OnLongPress(state UI) UI {
	switch s := state.(type) {
	case Home:
		return Menu{Selected: OptionSettings}
	case Menu:
		return s.Selected.target()
	default:
		return Home{}
	}
}

// OnShortPress returns the state after a short press: the menu cycles its
// selection, sub-screens go back to the menu with the first entry selected
// and the face ignores it.
func OnShortPress(state UI) UI {
	switch s := state.(type) {
	case Menu:
		return Menu{Selected: s.Selected.Next()}
	case Settings, Status, Exit:
		return Menu{Selected: OptionSettings}
	default:
		return Home{}
	}
}

// Selection returns the menu selection index, or -1 when not in the menu.
func Selection(state UI) int {
	if m, ok := state.(Menu); ok {
		return m.Selected.Index()
	}
	return -1
}
