package main

import (
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/muurk/yeelan/internal/config"
	"github.com/muurk/yeelan/internal/control"
	"github.com/muurk/yeelan/internal/discovery"
	"github.com/muurk/yeelan/internal/tui"
)

// Command flags
var (
	deviceAddr   string
	deviceID     string
	scanTimeout  int
	localPort    int
	outputFormat string
)

func init() {
	rootCmd.PersistentFlags().IntVar(&scanTimeout, "timeout", 3, "Discovery timeout in seconds")
	rootCmd.PersistentFlags().IntVar(&localPort, "port", discovery.DefaultLocalPort, "Local UDP port for the discovery socket")

	scanCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, compact, json)")

	showCmd.Flags().StringVar(&deviceID, "id", "", "Device ID of the light (required)")
	showCmd.Flags().StringVar(&outputFormat, "format", "detailed", "Output format (detailed, json)")
	_ = showCmd.MarkFlagRequired("id")

	setPowerCmd.Flags().StringVar(&deviceID, "id", "", "Device ID of the light")
	setPowerCmd.Flags().StringVar(&deviceAddr, "device", "", "Control endpoint host:port (skips discovery)")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(setPowerCmd)
	rootCmd.AddCommand(pickCmd)
}

// scanCmd discovers lights on the network
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan for Yeelight devices on the network",
	Long: `Scan for Yeelight devices using the multicast search protocol.

This command sends one search query to the Yeelight multicast group and
lists every light that answers within the timeout, deduplicated by
device ID. Discovered lights are remembered in the config registry so
nicknames survive address changes.`,
	Example: `  # Scan with the default 3-second timeout
  yeelan scan

  # Longer scan for sleepy networks
  yeelan scan --timeout 10

  # JSON output for scripting
  yeelan scan --format json`,
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	devices, err := discoverAll()
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	for _, device := range devices {
		registry.UpdateLightSeen(device.ID, device.Model, device.Location.String())
	}
	if len(devices) > 0 {
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save registry: %w", err)
		}
	}

	if len(devices) == 0 {
		fmt.Println("No lights found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Enable \"LAN Control\" for each light in the Yeelight app")
		fmt.Println("  - Check that the lights are on the same network segment")
		fmt.Println("  - Verify your firewall allows UDP port 1982")
		fmt.Println("  - Try increasing --timeout for slower networks")
		return nil
	}

	switch outputFormat {
	case "json":
		return printJSON(devices)
	case "compact":
		for _, device := range devices {
			fmt.Printf("%s  %s  %s  power=%s\n",
				device.ID, device.Model, device.Location, device.Power)
		}
	default:
		fmt.Printf("Found %d light(s):\n\n", len(devices))
		for i, device := range devices {
			printDevice(i+1, device, registry)
		}
		fmt.Println("Use 'yeelan show --id <id>' to view full light state")
		fmt.Println("Use 'yeelan set-power on|off --id <id>' to switch a light")
	}

	return nil
}

// showCmd displays the full advertised state of one light
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show one light's advertised state",
	Long: `Display the full advertised state of a single light.

The light is located by a fresh discovery session and matched by the
--id flag. Every advertised field is shown, including the color fields
that are inactive in the light's current color mode.`,
	Example: `  # Show a light by device ID
  yeelan show --id 0x000000000015243f

  # JSON output for scripting
  yeelan show --id 0x000000000015243f --format json`,
	RunE: runShow,
}

func runShow(cmd *cobra.Command, args []string) error {
	device, err := findByID(deviceID)
	if err != nil {
		return err
	}

	if outputFormat == "json" {
		return printJSON([]*discovery.Device{device})
	}

	fmt.Printf("Light %s\n", device.ID)
	fmt.Printf("  Name:        %s\n", device.Name)
	fmt.Printf("  Model:       %s\n", device.Model)
	fmt.Printf("  Firmware:    %d\n", device.FirmwareVersion)
	fmt.Printf("  Location:    %s\n", device.Location)
	fmt.Printf("  Power:       %s\n", device.Power)
	fmt.Printf("  Brightness:  %d%%\n", device.Brightness)
	fmt.Printf("  Color mode:  %s\n", device.ColorMode)
	fmt.Printf("  Color temp:  %dK\n", device.ColorTemp)
	fmt.Printf("  RGB:         %s\n", device.RGB)
	fmt.Printf("  Hue/Sat:     %d/%d\n", device.Hue, device.Sat)
	fmt.Printf("  Supports:    %v\n", device.SupportedCommands())

	return nil
}

// setPowerCmd switches a light on or off
var setPowerCmd = &cobra.Command{
	Use:   "set-power on|off",
	Short: "Switch a light on or off",
	Long: `Switch a light on or off over its TCP control stream.

The target is either a device ID (located by a fresh discovery session)
or a direct host:port control endpoint, which skips discovery entirely.`,
	Example: `  # Switch by device ID
  yeelan set-power on --id 0x000000000015243f

  # Switch by control endpoint, no discovery
  yeelan set-power off --device 192.168.0.42:55443`,
	Args: cobra.ExactArgs(1),
	RunE: runSetPower,
}

func runSetPower(cmd *cobra.Command, args []string) error {
	var on bool
	switch args[0] {
	case "on":
		on = true
	case "off":
		on = false
	default:
		return fmt.Errorf("power state must be \"on\" or \"off\", got %q", args[0])
	}

	location, err := resolveTarget()
	if err != nil {
		return err
	}

	conn, err := control.Dial(location)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	if err := conn.SetPower(on); err != nil {
		return fmt.Errorf("failed to set power: %w", err)
	}

	fmt.Printf("Light at %s switched %s\n", conn.RemoteAddr(), args[0])
	return nil
}

// pickCmd launches the interactive picker explicitly
var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick and toggle lights",
	RunE:  runPicker,
}

func runPicker(cmd *cobra.Command, args []string) error {
	return tui.Run(time.Duration(scanTimeout) * time.Second)
}

// discoverAll runs one discovery session with the --timeout and --port flags.
func discoverAll() ([]*discovery.Device, error) {
	group := &net.UDPAddr{
		IP:   net.ParseIP(discovery.MulticastAddr),
		Port: discovery.MulticastPort,
	}
	client, err := discovery.NewClientWithAddr(group, localPort)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	return client.Discover(time.Duration(scanTimeout) * time.Second)
}

// findByID runs a discovery session and picks out one light.
func findByID(id string) (*discovery.Device, error) {
	devices, err := discoverAll()
	if err != nil {
		return nil, fmt.Errorf("discovery failed: %w", err)
	}

	for _, device := range devices {
		if device.ID == id {
			return device, nil
		}
	}
	return nil, fmt.Errorf("no light with id %s answered within %ds", id, scanTimeout)
}

// resolveTarget turns the --device / --id flags into a control endpoint.
func resolveTarget() (*net.TCPAddr, error) {
	if deviceAddr != "" {
		return parseEndpoint(deviceAddr)
	}
	if deviceID != "" {
		device, err := findByID(deviceID)
		if err != nil {
			return nil, err
		}
		return device.Location, nil
	}
	return nil, fmt.Errorf("either --id or --device is required")
}

// parseEndpoint parses a host:port control endpoint.
func parseEndpoint(s string) (*net.TCPAddr, error) {
	host, portStr, err := net.SplitHostPort(s)
	if err != nil {
		return nil, fmt.Errorf("invalid device address %q: %w", s, err)
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil, fmt.Errorf("invalid device address %q: host must be an IP", s)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return nil, fmt.Errorf("invalid device address %q: bad port", s)
	}
	return &net.TCPAddr{IP: ip, Port: port}, nil
}

// deviceView is the JSON shape for one light.
type deviceView struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Model      string   `json:"model"`
	Firmware   uint8    `json:"fw_ver"`
	Location   string   `json:"location"`
	Power      string   `json:"power"`
	Brightness uint8    `json:"bright"`
	ColorMode  string   `json:"color_mode"`
	ColorTemp  uint16   `json:"ct"`
	RGB        string   `json:"rgb"`
	Hue        uint16   `json:"hue"`
	Sat        uint8    `json:"sat"`
	Support    []string `json:"support"`
}

func printJSON(devices []*discovery.Device) error {
	views := make([]deviceView, len(devices))
	for i, device := range devices {
		views[i] = deviceView{
			ID:         device.ID,
			Name:       device.Name,
			Model:      device.Model,
			Firmware:   device.FirmwareVersion,
			Location:   device.Location.String(),
			Power:      device.Power.String(),
			Brightness: device.Brightness,
			ColorMode:  device.ColorMode.String(),
			ColorTemp:  device.ColorTemp,
			RGB:        device.RGB.String(),
			Hue:        device.Hue,
			Sat:        device.Sat,
			Support:    device.SupportedCommands(),
		}
	}

	data, err := json.MarshalIndent(views, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printDevice(index int, device *discovery.Device, registry *config.Registry) {
	name := device.DisplayName()
	if known := registry.GetLight(device.ID); known != nil && known.Nickname != "" {
		name = known.Nickname
	}

	fmt.Printf("%d. %s\n", index, name)
	fmt.Printf("   ID:       %s\n", device.ID)
	fmt.Printf("   Model:    %s\n", device.Model)
	fmt.Printf("   Location: %s\n", device.Location)
	fmt.Printf("   Power:    %s (bright %d%%)\n", device.Power, device.Brightness)
	fmt.Println()
}
