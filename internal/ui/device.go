package ui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/pleimann/duo-pad/internal/hid"
)

// DeviceID is a vendor/product pair as written to the config file
type DeviceID struct {
	VendorID  uint16
	ProductID uint16
}

func (id DeviceID) String() string {
	return fmt.Sprintf("0x%04X:0x%04X", id.VendorID, id.ProductID)
}

// IsZero reports whether no device is configured
func (id DeviceID) IsZero() bool {
	return id.VendorID == 0 && id.ProductID == 0
}

func idOf(d hid.DeviceInfo) DeviceID {
	return DeviceID{VendorID: d.VendorID, ProductID: d.ProductID}
}

// pickerModel runs the huh form inside its own program so esc and q cancel
// instead of moving focus
type pickerModel struct {
	form    *huh.Form
	aborted bool
}

func (m pickerModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return m, tea.Quit
	}
	return m, cmd
}

func (m pickerModel) View() string {
	if m.form.State == huh.StateCompleted {
		return ""
	}
	return m.form.View()
}

// SelectDevice asks which pad carries the two buttons. The configured
// device, if present, starts selected. A nil device means the user cancelled.
func SelectDevice(devices []hid.DeviceInfo, current DeviceID) (*hid.DeviceInfo, error) {
	if len(devices) == 0 {
		return nil, errors.New("no devices to select from")
	}

	choice := 0
	options := make([]huh.Option[int], len(devices))
	for i, d := range devices {
		if idOf(d) == current {
			choice = i
		}
		options[i] = huh.NewOption(deviceLabel(d, current), i)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select HID Device").
				Description("Choose the pad that carries the two buttons (esc to cancel)").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(pickerTheme()).WithShowHelp(false)

	final, err := tea.NewProgram(pickerModel{form: form}).Run()
	if err != nil {
		return nil, err
	}
	if final.(pickerModel).aborted {
		return nil, nil
	}

	return &devices[choice], nil
}

func deviceLabel(d hid.DeviceInfo, current DeviceID) string {
	label := DeviceIDStyle.Render(idOf(d).String()) + "  " + deviceName(d)
	if !current.IsZero() && idOf(d) == current {
		label += " " + Success("(configured)")
	}
	return label
}

func deviceName(d hid.DeviceInfo) string {
	name := orUnknown(d.Product)
	if d.Manufacturer != "" {
		name = d.Manufacturer + " " + name
	}
	return name
}

// PrintDeviceList prints the HID devices found, marking the configured one
func PrintDeviceList(devices []hid.DeviceInfo, current DeviceID) {
	if len(devices) == 0 {
		fmt.Println(Warning("No HID devices found"))
		return
	}

	fmt.Println()
	fmt.Println(Title("HID Devices"))
	fmt.Println(Muted(fmt.Sprintf("Found %d device(s)", len(devices))))
	fmt.Println()

	for _, d := range devices {
		marker := "  "
		if !current.IsZero() && idOf(d) == current {
			marker = Success("▸ ")
		}

		line := marker + DeviceIDStyle.Render(idOf(d).String()) + "  " + DeviceNameStyle.Render(orUnknown(d.Product))
		if d.Manufacturer != "" {
			line += " " + DeviceManufacturerStyle.Render("by "+d.Manufacturer)
		}
		fmt.Println(line)
		if d.Path != "" {
			fmt.Println("    " + Muted(d.Path))
		}
	}
	fmt.Println()

	if current.IsZero() {
		fmt.Println(Muted("No pad configured; run set-device to choose one"))
		fmt.Println()
	}
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown Device"
	}
	return s
}

// PrintDeviceSaved confirms that the pad was written to the config file
func PrintDeviceSaved(configPath string, id DeviceID, created bool) {
	headline := "Device configuration updated"
	if created {
		headline = "Device configuration created"
	}

	fmt.Println()
	fmt.Println(Success(headline))
	fmt.Println()
	fmt.Printf("  %s %s\n", Muted("Config:"), configPath)
	fmt.Printf("  %s %s\n", Muted("Device:"), DeviceIDStyle.Render(id.String()))
	if created {
		fmt.Printf("  %s %s\n", Muted("Buttons:"), "0 and 1, change alpha_button/beta_button to remap")
	}
	fmt.Println()
}

func pickerTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(ColorPanel)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorPrimary)

	return t
}
