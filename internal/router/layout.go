package router

import "routerscrape/internal/extract"

// Layout holds every label and marker tied to one vendor firmware's page
// text. Config files may override single fields, anything left empty keeps
// the DefaultLayout value.
type Layout struct {
	Version string `json:"version"`

	StatisticsColumns []extract.ColumnPair `json:"statistics_columns"`
	StatisticsLabels  []string             `json:"statistics_labels"`
	// KeepStatisticsHeader treats the first statistics row as data.
	KeepStatisticsHeader bool `json:"keep_statistics_header"`

	Labels DeviceLabels `json:"labels"`

	WANStart     string `json:"wan_start"`
	WANEnd       string `json:"wan_end"`
	ClientsStart string `json:"clients_start"`
	ClientsEnd   string `json:"clients_end"`

	WirelessClientsPattern string `json:"wireless_clients_pattern"`
	FirmwarePrefix         string `json:"firmware_prefix"`
	HardwareSeparator      string `json:"hardware_separator"`

	LogTimestampLayout string `json:"log_timestamp_layout"`
}

type DeviceLabels struct {
	FirmwareVersion     string `json:"firmware_version"`
	MACAddress          string `json:"mac_address"`
	IPAddress           string `json:"ip_address"`
	SubnetMask          string `json:"subnet_mask"`
	DHCPServer          string `json:"dhcp_server"`
	SNRMargin           string `json:"snr_margin"`
	LineAttenuation     string `json:"line_attenuation"`
	DataRate            string `json:"data_rate"`
	MaxRate             string `json:"max_rate"`
	Power               string `json:"power"`
	CRC                 string `json:"crc"`
	LineState           string `json:"line_state"`
	Modulation          string `json:"modulation"`
	AnnexMode           string `json:"annex_mode"`
	ADSLFirmwareVersion string `json:"adsl_firmware_version"`
}

// DefaultLayout matches the English firmware the scraper was written against.
func DefaultLayout() Layout {
	return Layout{
		Version: "v1",

		StatisticsColumns: []extract.ColumnPair{{Key: 1, Value: 2}, {Key: 3, Value: 4}},
		StatisticsLabels: []string{
			"Rx Drops Count",
			"Rx Errors Count",
			"Rx Frames Count",
			"Tx Drops Count",
			"Tx Errors Count",
			"Tx Frames Count",
		},

		Labels: DeviceLabels{
			FirmwareVersion:     "Firmware Version",
			MACAddress:          "MAC Address",
			IPAddress:           "IP Address",
			SubnetMask:          "Subnet Mask",
			DHCPServer:          "DHCP Server",
			SNRMargin:           "SNR Margin",
			LineAttenuation:     "Line Attenuation",
			DataRate:            "Data Rate",
			MaxRate:             "Max Rate",
			Power:               "POWER",
			CRC:                 "CRC",
			LineState:           "Line State",
			Modulation:          "Modulation",
			AnnexMode:           "Annex Mode",
			ADSLFirmwareVersion: "ADSL Firmware Version",
		},

		WANStart:     "\nWAN",
		WANEnd:       "\nADSL",
		ClientsStart: "\nID\tMAC\n",
		ClientsEnd:   "\nWAN",

		WirelessClientsPattern: `Wireless Clients number is\s*(\d+)`,
		FirmwarePrefix:         "FwVer:",
		HardwareSeparator:      " HwVer:",

		LogTimestampLayout: extract.LogTimestampLayout,
	}
}
