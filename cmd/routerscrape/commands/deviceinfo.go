package commands

import (
	"fmt"
	"strings"

	"routerscrape/cmd/routerscrape/globals"
	"routerscrape/internal/extract"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	addJSONFlag(deviceInfoCmd)
	rootCmd.AddCommand(deviceInfoCmd)
}

func tripleRow(label string, t extract.Triple) table.Row {
	return table.Row{label, fmt.Sprintf("%s / %s %s", t.Low, t.High, t.Unit)}
}

var deviceInfoCmd = &cobra.Command{
	Use:   "device-info [--json]",
	Short: "Prints the device, LAN, wireless, WAN and ADSL sections of the device info page.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := globals.Get(cmd.Context()).Client.DeviceInfo(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return printJSON(info)
		}

		t := newTable()
		t.SetTitle("Device Information")
		t.AppendRows([]table.Row{
			{"Firmware Version", info.Device.FirmwareVersion},
			{"MAC Address", info.Device.MACAddress},
		})
		t.AppendSeparator()
		t.AppendRows([]table.Row{
			{"LAN IP Address", info.LAN.IPAddress},
			{"Subnet Mask", info.LAN.SubnetMask},
			{"DHCP Server", info.LAN.DHCPServer},
		})
		t.AppendSeparator()
		t.AppendRow(table.Row{"Wireless Clients", info.Wireless.ClientsNumber})
		for _, client := range info.Wireless.Clients {
			t.AppendRow(table.Row{"", strings.Join(client, "  ")})
		}
		t.AppendSeparator()
		for _, row := range info.WAN {
			t.AppendRow(table.Row{"WAN", strings.Join(row, "  ")})
		}
		t.AppendSeparator()
		line := info.ADSL.Line
		t.AppendRows([]table.Row{
			{"ADSL FwVer", info.ADSL.FwVer},
			{"ADSL HwVer", info.ADSL.HwVer},
			{"Line State", info.ADSL.LineState},
			{"Modulation", info.ADSL.Modulation},
			{"Annex Mode", info.ADSL.AnnexMode},
			tripleRow("SNR Margin", line.SNRMargin),
			tripleRow("Line Attenuation", line.LineAttenuation),
			tripleRow("Data Rate", line.DataRate),
			tripleRow("Max Rate", line.MaxRate),
			tripleRow("POWER", line.Power),
			{"CRC", fmt.Sprint(line.CRC)},
		})
		t.Render()
		return nil
	},
}
