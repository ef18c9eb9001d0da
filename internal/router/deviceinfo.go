package router

import (
	"fmt"
	"regexp"
	"strconv"

	"routerscrape/internal/extract"
)

// DeviceInfo is the status_deviceinfo page. JSON keys follow the headings
// shown by the router.
type DeviceInfo struct {
	Device   DeviceSection   `json:"Device Information"`
	LAN      LANSection      `json:"LAN"`
	Wireless WirelessSection `json:"Wireless"`
	// WAN is the connection table as rendered, header row included.
	WAN  [][]string  `json:"WAN"`
	ADSL ADSLSection `json:"ADSL"`
}

type DeviceSection struct {
	FirmwareVersion string `json:"Firmware Version"`
	MACAddress      string `json:"MAC Address"`
}

type LANSection struct {
	IPAddress  string `json:"IP Address"`
	SubnetMask string `json:"Subnet Mask"`
	DHCPServer string `json:"DHCP Server"`
}

type WirelessSection struct {
	ClientsNumber int `json:"Clients number"`
	// Clients holds one (ID, MAC) row per associated station.
	Clients [][]string `json:"Clients ID/MAC"`
}

type ADSLSection struct {
	FwVer      string      `json:"FwVer"`
	HwVer      string      `json:"HwVer"`
	LineState  string      `json:"Line State"`
	Modulation string      `json:"Modulation"`
	AnnexMode  string      `json:"Annex Mode"`
	Line       LineMetrics `json:"Downstream/Upstream"`
}

// LineMetrics are the downstream/upstream readings of the ADSL line.
type LineMetrics struct {
	SNRMargin       extract.Triple `json:"SNR Margin"`
	LineAttenuation extract.Triple `json:"Line Attenuation"`
	DataRate        extract.Triple `json:"Data Rate"`
	MaxRate         extract.Triple `json:"Max Rate"`
	Power           extract.Triple `json:"POWER"`
	CRC             []int64        `json:"CRC"`
}

// fieldReader collects the first error of a run of lookups so the
// assembler reads top to bottom.
type fieldReader struct {
	fields extract.TextMap
	err    error
}

func (r *fieldReader) text(label string) string {
	if r.err != nil {
		return ""
	}
	v, err := r.fields.Require(label)
	if err != nil {
		r.err = err
	}
	return v
}

func (r *fieldReader) triple(label string) extract.Triple {
	raw := r.text(label)
	if r.err != nil {
		return extract.Triple{}
	}
	t, err := extract.ParseTriple(raw)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", label, err)
	}
	return t
}

func (r *fieldReader) counts(label string) []int64 {
	raw := r.text(label)
	if r.err != nil {
		return nil
	}
	v, err := extract.ParseCountRun(raw)
	if err != nil {
		r.err = fmt.Errorf("%s: %w", label, err)
	}
	return v
}

// AssembleDeviceInfo builds the device info record from the innerText of the
// page body. Any expected label or section that is absent fails the whole
// record.
func AssembleDeviceInfo(text string, layout Layout) (DeviceInfo, error) {
	clientsPattern, err := regexp.Compile(layout.WirelessClientsPattern)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("wireless clients pattern: %w", err)
	}

	r := fieldReader{fields: extract.ParseKeyValueLines(text)}
	labels := layout.Labels

	var info DeviceInfo
	info.Device = DeviceSection{
		FirmwareVersion: r.text(labels.FirmwareVersion),
		MACAddress:      r.text(labels.MACAddress),
	}
	info.LAN = LANSection{
		IPAddress:  r.text(labels.IPAddress),
		SubnetMask: r.text(labels.SubnetMask),
		DHCPServer: r.text(labels.DHCPServer),
	}

	fwver, hwver := extract.Decompose(
		r.text(labels.ADSLFirmwareVersion),
		layout.FirmwarePrefix,
		layout.HardwareSeparator,
	)
	info.ADSL = ADSLSection{
		FwVer:      fwver,
		HwVer:      hwver,
		LineState:  r.text(labels.LineState),
		Modulation: r.text(labels.Modulation),
		AnnexMode:  r.text(labels.AnnexMode),
		Line: LineMetrics{
			SNRMargin:       r.triple(labels.SNRMargin),
			LineAttenuation: r.triple(labels.LineAttenuation),
			DataRate:        r.triple(labels.DataRate),
			MaxRate:         r.triple(labels.MaxRate),
			Power:           r.triple(labels.Power),
			CRC:             r.counts(labels.CRC),
		},
	}
	if r.err != nil {
		return DeviceInfo{}, r.err
	}

	match := clientsPattern.FindStringSubmatch(text)
	if len(match) < 2 {
		return DeviceInfo{}, fmt.Errorf(
			"%w: wireless client count (pattern %q)",
			extract.ErrMissingField, layout.WirelessClientsPattern,
		)
	}
	clientCount, err := strconv.Atoi(match[1])
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("%w: wireless client count %q", extract.ErrMalformedNumber, match[1])
	}

	clients, err := extract.SliceBetween(text, layout.ClientsStart, layout.ClientsEnd)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("wireless clients: %w", err)
	}
	info.Wireless = WirelessSection{
		ClientsNumber: clientCount,
		Clients:       nonNil(extract.ParseTabRows(clients)),
	}

	wan, err := extract.SliceBetween(text, layout.WANStart, layout.WANEnd)
	if err != nil {
		return DeviceInfo{}, fmt.Errorf("wan: %w", err)
	}
	info.WAN = nonNil(extract.ParseTabRows(wan))

	return info, nil
}

// keeps JSON output as [] instead of null for empty tables
func nonNil(rows [][]string) [][]string {
	if rows == nil {
		return [][]string{}
	}
	return rows
}
