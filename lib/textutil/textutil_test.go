package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchName(t *testing.T) {
	candidates := []string{"Ethernet", "ADSL", "WLAN"}

	testCases := []struct {
		name     string
		expected string
		ok       bool
	}{
		{name: "wlan", expected: "WLAN", ok: true},
		{name: " Ether net ", expected: "Ethernet", ok: true},
		{name: "adsl", expected: "ADSL", ok: true},
		{name: "vdsl", ok: false},
	}

	for _, test := range testCases {
		got, ok := MatchName(test.name, candidates)
		require.Equal(t, test.ok, ok, test.name)
		require.Equal(t, test.expected, got, test.name)
	}
}
